// Package targeting resolves which characters a skill use affects.
//
// Every resolver returns no targets when the skill is not usable; callers that
// need to tell "cannot act" from "nothing in range" check Skill.Usable first.
// Calling a resolver that does not match the skill's shape is a programming
// error and panics.
package targeting

import (
	"fmt"

	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/groups"
	"github.com/cory-johannsen/textmoba/internal/game/skill"
)

func inRange(s *character.Skill, g *groups.Groups, cs []*character.Character) []*character.Character {
	var out []*character.Character
	for _, t := range cs {
		if g.Distance(s.Owner, t) <= s.Range() {
			out = append(out, t)
		}
	}
	return out
}

func mismatch(s *character.Skill, resolver string) string {
	return fmt.Sprintf("targeting: %s called for %s skill %q", resolver, s.Shape(), s.ID())
}

// Targets resolves the shapes that need no argument: Self, FrontRow, BackRow
// and BothRows. Row shapes return every member of the skill's target team in
// those rows within range, in partition order.
//
// Precondition: s.Shape() is not Single, AnyRow or NoTarget when s is usable.
func Targets(s *character.Skill, g *groups.Groups) []*character.Character {
	if !s.Usable() {
		return nil
	}
	team := s.TargetTeam()
	switch s.Shape() {
	case skill.Self:
		return []*character.Character{s.Owner}
	case skill.FrontRow:
		return inRange(s, g, g.Members(team, character.Front))
	case skill.BackRow:
		return inRange(s, g, g.Members(team, character.Back))
	case skill.BothRows:
		return inRange(s, g, append(g.Members(team, character.Back), g.Members(team, character.Front)...))
	default:
		panic(mismatch(s, "Targets"))
	}
}

// RowTargets resolves an AnyRow skill aimed at row.
//
// Precondition: s.Shape() == AnyRow when s is usable.
func RowTargets(s *character.Skill, g *groups.Groups, row character.Row) []*character.Character {
	if !s.Usable() {
		return nil
	}
	if s.Shape() != skill.AnyRow {
		panic(mismatch(s, "RowTargets"))
	}
	return inRange(s, g, g.Members(s.TargetTeam(), row))
}

// SingleTarget resolves a Single skill aimed at target. Team membership is not
// checked here.
//
// Precondition: s.Shape() == Single when s is usable.
func SingleTarget(s *character.Skill, g *groups.Groups, target *character.Character) []*character.Character {
	if !s.Usable() {
		return nil
	}
	if s.Shape() != skill.Single {
		panic(mismatch(s, "SingleTarget"))
	}
	return inRange(s, g, []*character.Character{target})
}

// NeedsTarget reports whether the shape must be resolved with RowTargets or
// SingleTarget instead of Targets.
func NeedsTarget(shape skill.Shape) bool {
	return shape == skill.Single || shape == skill.AnyRow || shape == skill.NoTarget
}
