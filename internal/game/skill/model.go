// Package skill defines skill templates: per-level target shapes, ranges,
// cooldowns, mana costs and effect lists.
//
// Levels are 1-indexed. Level 0 means "not learned" and always reports the
// sentinel values NoTarget, range 0, cooldown 0, NotLearnedManaCost and NoEffect.
// Levels beyond the last table entry reuse the last entry.
package skill

import "strings"

// NotLearnedManaCost is the mana cost reported for level 0, high enough that no
// character can pay it.
const NotLearnedManaCost = 999999

// Shape is the targeting shape of a skill at a given level.
type Shape int

const (
	NoTarget Shape = iota
	Self
	Single
	FrontRow
	BackRow
	AnyRow
	BothRows
)

var shapeNames = map[Shape]string{
	NoTarget: "no_target",
	Self:     "self",
	Single:   "single",
	FrontRow: "front_row",
	BackRow:  "back_row",
	AnyRow:   "any_row",
	BothRows: "both_rows",
}

// String returns the content-file spelling of the shape.
func (s Shape) String() string {
	if n, ok := shapeNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseShape parses a content-file target shape.
//
// Postcondition: Returns (shape, true) for a known name, or (NoTarget, false).
func ParseShape(s string) (Shape, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for shape, name := range shapeNames {
		if shape != NoTarget && name == s {
			return shape, true
		}
	}
	return NoTarget, false
}

// EffectKind is what an effect does to each target.
type EffectKind int

const (
	NoEffect EffectKind = iota
	Damage
	Heal
	DOT
	HOT
)

var effectNames = map[EffectKind]string{
	NoEffect: "none",
	Damage:   "damage",
	Heal:     "heal",
	DOT:      "dot",
	HOT:      "hot",
}

// String returns the content-file spelling of the effect kind.
func (k EffectKind) String() string {
	if n, ok := effectNames[k]; ok {
		return n
	}
	return "unknown"
}

// Hostile reports whether the effect targets the caster's enemies.
func (k EffectKind) Hostile() bool {
	return k == Damage || k == DOT
}

// ParseEffectKind parses a content-file effect kind.
//
// Postcondition: Returns (kind, true) for a known name, or (NoEffect, false).
func ParseEffectKind(s string) (EffectKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for kind, name := range effectNames {
		if name == s {
			return kind, true
		}
	}
	return NoEffect, false
}

// Effect is one entry of a skill's effect list, tabulated per level.
type Effect struct {
	Kinds  []EffectKind
	Powers []int
}

// Applied is an effect resolved at a concrete level.
type Applied struct {
	Kind  EffectKind
	Power int
}

// Model is an immutable skill template shared by every character owning the skill.
type Model struct {
	ID   string
	Name string

	Shapes    []Shape
	Ranges    []int
	Cooldowns []int
	ManaCosts []int
	Effects   []Effect
}

// at returns table[level-1], clamped to the last entry, or def when level is 0
// or the table is empty.
func at[T any](table []T, level int, def T) T {
	if level <= 0 || len(table) == 0 {
		return def
	}
	if level > len(table) {
		level = len(table)
	}
	return table[level-1]
}

// Shape returns the target shape at level.
func (m *Model) Shape(level int) Shape { return at(m.Shapes, level, NoTarget) }

// Range returns the maximum lane distance at level.
func (m *Model) Range(level int) int { return at(m.Ranges, level, 0) }

// Cooldown returns the number of turns the skill is unavailable after use at level.
func (m *Model) Cooldown(level int) int { return at(m.Cooldowns, level, 0) }

// ManaCost returns the mana spent per use at level.
func (m *Model) ManaCost(level int) int {
	if level <= 0 {
		return NotLearnedManaCost
	}
	return at(m.ManaCosts, level, NotLearnedManaCost)
}

// EffectsAt resolves every effect of the skill at level, in list order.
//
// Postcondition: len(result) == len(m.Effects); at level 0 every entry is NoEffect/0.
func (m *Model) EffectsAt(level int) []Applied {
	out := make([]Applied, len(m.Effects))
	for i, e := range m.Effects {
		out[i] = Applied{
			Kind:  at(e.Kinds, level, NoEffect),
			Power: at(e.Powers, level, 0),
		}
	}
	return out
}

// Levels returns the number of learnable levels described by the tables.
func (m *Model) Levels() int {
	n := max(len(m.Shapes), len(m.Ranges), len(m.Cooldowns), len(m.ManaCosts))
	for _, e := range m.Effects {
		n = max(n, len(e.Kinds), len(e.Powers))
	}
	return n
}
