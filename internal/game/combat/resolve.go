package combat

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/skill"
)

// DisplayName is the name shown to the player, marking the player's own character.
func DisplayName(c *character.Character) string {
	if c.IsPlayer() {
		return c.Name() + " (you)"
	}
	return c.Name()
}

// announced reports whether arrivals and departures of c are narrated.
func announced(c *character.Character) bool {
	return !c.IsPlayer() && c.Type() != character.Building
}

// Move detaches c from its node, resets its row to the class default and
// attaches it to nodeID.
//
// Precondition: nodeID must name a node of the graph.
func (e *Engine) Move(c *character.Character, nodeID string) {
	if c.Node != "" {
		if announced(c) {
			e.emit(EventLeave, c.Node, false, "%s leaves the area.", DisplayName(c))
		}
		e.graph.Detach(c.Node, c.ID)
	}
	if err := e.graph.Attach(nodeID, c.ID); err != nil {
		panic(fmt.Sprintf("combat: move %d: %v", c.ID, err))
	}
	c.Node = nodeID
	c.Row = c.Class.DefaultRow
	if announced(c) {
		e.emit(EventEnter, nodeID, false, "%s enters the area.", DisplayName(c))
	}
}

// Place changes c's row.
func (e *Engine) Place(c *character.Character, row character.Row) {
	c.Row = row
	e.emit(EventPlace, c.Node, false, "%s moves to the %s row.", DisplayName(c), row)
}

// Attack resolves a basic attack: the attacker's damage stat dealt to target.
func (e *Engine) Attack(attacker, target *character.Character) {
	damage := attacker.Damage()
	e.logger.Debug("attack",
		zap.Int("turn", e.turn),
		zap.Int("attacker", int(attacker.ID)),
		zap.Int("target", int(target.ID)),
		zap.Int("damage", damage),
	)
	e.emit(EventAttack, attacker.Node, false, "%s attack %s for %d damage.",
		DisplayName(attacker), DisplayName(target), damage)
	e.DealDamage(target, damage, attacker)
}

// DealDamage removes amount hp from target. Damage that reaches the target's
// remaining hp kills it. source may be nil. Dead targets are ignored.
//
// Postcondition: amount >= hp leaves hp at 0 and runs the kill path exactly once.
func (e *Engine) DealDamage(target *character.Character, amount int, source *character.Character) {
	if !target.Alive() || amount < 0 {
		return
	}
	if amount >= target.HP {
		target.HP = 0
		e.Kill(target, source)
		return
	}
	target.HP -= amount
}

// Heal restores amount hp to target, capped at its max hp. Dead targets stay dead.
func (e *Engine) Heal(target *character.Character, amount int, _ *character.Character) {
	if !target.Alive() || amount < 0 {
		return
	}
	target.HP = min(target.HP+amount, target.MaxHP())
}

// Kill runs the death path of victim. Every hero on the victim's node that is
// not on the victim's team earns its xp worth. Heroes respawn on their team's
// base with full hp and no buffs; everything else leaves the match.
// killer may be nil.
func (e *Engine) Kill(victim, killer *character.Character) {
	if killer != nil {
		e.emit(EventKill, victim.Node, victim.Type() == character.Hero,
			"%s killed %s.", DisplayName(killer), DisplayName(victim))
	} else {
		e.emit(EventKill, victim.Node, victim.Type() == character.Hero,
			"%s killed.", DisplayName(victim))
	}
	fields := []zap.Field{
		zap.Int("turn", e.turn),
		zap.Int("victim", int(victim.ID)),
		zap.String("class", victim.Class.ID),
		zap.String("node", victim.Node),
	}
	if killer != nil {
		fields = append(fields, zap.Int("killer", int(killer.ID)))
	}
	e.logger.Info("kill", fields...)

	xp := e.rules.xpWorth(victim)
	for _, c := range e.Groups(victim.Node).All() {
		if c.Team == victim.Team || c.Type() != character.Hero {
			continue
		}
		e.GrantXP(c, xp)
	}

	victim.Buffs = nil
	if victim.Type() == character.Hero {
		if base := e.Base(victim.Team); base != "" {
			e.Move(victim, base)
		}
		victim.HP = victim.MaxHP()
		return
	}

	if victim.Node != "" {
		e.graph.Detach(victim.Node, victim.ID)
		victim.Node = ""
	}
	_ = e.reg.Remove(victim.ID)
	delete(e.policies, victim.ID)
}

// GrantXP gives xp to c. Characters without a next level gain nothing. A hero
// of a team allowed to level that reaches its threshold gains one level,
// keeping its hp and mana ratios and carrying the excess xp.
func (e *Engine) GrantXP(c *character.Character, xp int) {
	next := e.rules.nextLevel(c)
	if next == 0 {
		return
	}
	if c.IsPlayer() {
		e.emit(EventXP, c.Node, true, "%s gains %d xp.", DisplayName(c), xp)
	}
	c.XP += xp
	if c.XP < next || !e.rules.levelsUp(c.Team) {
		return
	}

	hpRatio := ratio(c.HP, c.MaxHP())
	manaRatio := ratio(c.Mana, c.MaxMana())
	c.Level++
	c.XP -= next
	e.emit(EventLevelUp, c.Node, true, "%s reaches lvl %d", DisplayName(c), c.Level+1)

	alive := c.Alive()
	c.HP = int(float64(c.MaxHP()) * hpRatio)
	c.Mana = int(float64(c.MaxMana()) * manaRatio)
	if alive && c.HP == 0 {
		c.HP = 1
	}
	if e.rules.nextLevel(c) == 0 {
		c.XP = 0
	}
	e.logger.Info("level up",
		zap.Int("turn", e.turn),
		zap.Int("id", int(c.ID)),
		zap.Int("level", c.Level),
	)
}

func ratio(v, maxV int) float64 {
	if maxV <= 0 {
		return 0
	}
	return float64(v) / float64(maxV)
}

// UseSkillOn spends the skill's mana, applies each of its effects in order to
// every target, then starts its cooldown. Damage and heal apply at once; damage
// and heal over time register a buff ticked by the turn engine.
//
// Postcondition: Returns false, changing nothing, if s is not usable.
func (e *Engine) UseSkillOn(s *character.Skill, targets []*character.Character) bool {
	if !s.Usable() {
		return false
	}
	owner := s.Owner
	node := owner.Node
	owner.Mana -= s.ManaCost()

	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, DisplayName(t))
	}
	e.emit(EventSkill, node, false, "%s uses %s on %s.", DisplayName(owner), s.Name(), strings.Join(names, ", "))
	e.logger.Debug("use skill",
		zap.Int("turn", e.turn),
		zap.Int("id", int(owner.ID)),
		zap.String("skill", s.ID()),
		zap.Int("targets", len(targets)),
	)

	ticks := max(1, s.CooldownTime())
	for _, effect := range s.Effects() {
		for _, t := range targets {
			// A target killed by an earlier effect is gone or back at its base.
			if !t.Alive() || t.Node != node {
				continue
			}
			switch effect.Kind {
			case skill.Damage:
				e.emit(EventDamage, node, false, "%s takes %d damage.", DisplayName(t), effect.Power)
				e.DealDamage(t, effect.Power, owner)
			case skill.Heal:
				e.emit(EventHeal, node, false, "%s recovers %d hp.", DisplayName(t), effect.Power)
				e.Heal(t, effect.Power, owner)
			case skill.DOT:
				t.Buffs = append(t.Buffs, character.Buff{Kind: character.BuffDamage, Amount: effect.Power, Ticks: ticks, Source: owner.ID})
			case skill.HOT:
				t.Buffs = append(t.Buffs, character.Buff{Kind: character.BuffHeal, Amount: effect.Power, Ticks: ticks, Source: owner.ID})
			}
		}
	}
	s.Cooldown = s.CooldownTime()
	return true
}
