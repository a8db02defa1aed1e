package character

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/textmoba/internal/game/skill"
)

// ID is a character handle. IDs are assigned in spawn order and never reused;
// the player is always spawned first and holds PlayerID.
type ID int

// PlayerID is the handle of the player character.
const PlayerID ID = 0

// BuffKind is what a buff does on each tick.
type BuffKind int

const (
	BuffHeal BuffKind = iota
	BuffDamage
)

// Buff is a periodic effect applied by the turn engine.
type Buff struct {
	Kind   BuffKind
	Amount int
	// Ticks is the number of turns the buff still fires, including the next one.
	Ticks int
	// Source is the character that applied the buff, credited for damage kills.
	Source ID
}

// Character is a live combatant. HP == 0 means dead; a live character is attached
// to exactly one node, named by Node.
type Character struct {
	ID    ID
	Class *Class
	Team  Team
	Row   Row
	// Node is the ID of the node the character stands on; empty when detached.
	Node string

	// Level is 0-based; it is displayed as Level+1.
	Level int
	XP    int
	HP    int
	Mana  int

	Skills []*Skill
	Buffs  []Buff
}

// New builds a level-0 character of class c with full hp and mana, standing in
// the class's default row and attached to no node.
//
// Precondition: c must be non-nil.
func New(id ID, c *Class, team Team) *Character {
	ch := &Character{
		ID:    id,
		Class: c,
		Team:  team,
		Row:   c.DefaultRow,
	}
	ch.HP = ch.MaxHP()
	ch.Mana = ch.MaxMana()
	return ch
}

// Name returns the display name: class name and team.
func (c *Character) Name() string {
	return fmt.Sprintf("%s (%s)", c.Class.Name, c.Team)
}

// IsPlayer reports whether c is the player character.
func (c *Character) IsPlayer() bool { return c.ID == PlayerID }

// Type returns the class type.
func (c *Character) Type() Type { return c.Class.Type }

// Alive reports whether c has hit points left.
func (c *Character) Alive() bool { return c.HP > 0 }

// MaxHP returns the hit point cap at the current level.
func (c *Character) MaxHP() int { return c.Class.MaxHPAt(c.Level) }

// MaxMana returns the mana cap at the current level.
func (c *Character) MaxMana() int { return c.Class.MaxManaAt(c.Level) }

// Damage returns basic attack damage at the current level.
func (c *Character) Damage() int { return c.Class.DamageAt(c.Level) }

// Range returns basic attack range at the current level.
func (c *Character) Range() int { return c.Class.RangeAt(c.Level) }

// EnemyTeam returns the team c fights against.
func (c *Character) EnemyTeam() Team { return c.Team.Enemy() }

// PlaceIndex returns c's lane slot on its node.
func (c *Character) PlaceIndex() int { return PlaceIndex(c.Team, c.Row) }

// LearnSkill gives c the skill model m at level.
//
// Postcondition: Returns the new skill instance, appended to c.Skills.
func (c *Character) LearnSkill(m *skill.Model, level int) *Skill {
	s := &Skill{Model: m, Level: level, Owner: c}
	c.Skills = append(c.Skills, s)
	return s
}

// Skill looks up an owned skill by model ID or display name, case-insensitively.
//
// Postcondition: Returns (skill, true) if found, or (nil, false) otherwise.
func (c *Character) Skill(name string) (*Skill, bool) {
	for _, s := range c.Skills {
		if strings.EqualFold(s.Model.ID, name) || strings.EqualFold(s.Model.Name, name) {
			return s, true
		}
	}
	return nil, false
}

// TickCooldowns decrements every non-zero skill cooldown by one.
func (c *Character) TickCooldowns() {
	for _, s := range c.Skills {
		if s.Cooldown > 0 {
			s.Cooldown--
		}
	}
}

// Skill is a skill model learned by a character at some level.
type Skill struct {
	Model *skill.Model
	// Level is 1-based; 0 means not learned.
	Level int
	// Cooldown is the number of turns left before the skill can be used again.
	Cooldown int
	Owner    *Character
}

// ID returns the model ID.
func (s *Skill) ID() string { return s.Model.ID }

// Name returns the model display name.
func (s *Skill) Name() string { return s.Model.Name }

// Shape returns the target shape at the learned level.
func (s *Skill) Shape() skill.Shape { return s.Model.Shape(s.Level) }

// Range returns the maximum lane distance at the learned level.
func (s *Skill) Range() int { return s.Model.Range(s.Level) }

// ManaCost returns the mana spent per use at the learned level.
func (s *Skill) ManaCost() int { return s.Model.ManaCost(s.Level) }

// CooldownTime returns the cooldown started by a use at the learned level.
func (s *Skill) CooldownTime() int { return s.Model.Cooldown(s.Level) }

// Effects resolves the effect list at the learned level.
func (s *Skill) Effects() []skill.Applied { return s.Model.EffectsAt(s.Level) }

// Usable reports whether the owner can use the skill now: owner alive, skill
// learned, cooldown elapsed and enough mana.
func (s *Skill) Usable() bool {
	return s.Owner.Alive() && s.Level > 0 && s.Cooldown == 0 && s.Owner.Mana >= s.ManaCost()
}

// TargetTeam returns the team the skill affects, decided by its first effect:
// damaging effects aim at the owner's enemies, everything else at the owner's team.
func (s *Skill) TargetTeam() Team {
	effects := s.Effects()
	if len(effects) > 0 && effects[0].Kind.Hostile() {
		return s.Owner.EnemyTeam()
	}
	return s.Owner.Team
}
