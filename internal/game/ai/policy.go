// Package ai provides the decision policies of non-player characters: lane
// minions, towers and AI heroes.
//
// Policies read their surroundings and act through a World, which the turn
// engine implements. A policy whose character is dead or detached does nothing.
package ai

import (
	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/dice"
	"github.com/cory-johannsen/textmoba/internal/game/groups"
	"github.com/cory-johannsen/textmoba/internal/game/world"
)

// World is the view of a match a policy decides against, and the actions it may take.
type World interface {
	// Character resolves a handle.
	Character(id character.ID) (*character.Character, bool)
	// Groups snapshots the occupants of a node.
	Groups(nodeID string) *groups.Groups
	// Destination resolves a labeled path from a node.
	Destination(from string, dir world.Direction) (string, bool)
	// Base returns the ID of a team's fonxus node, or "" if it has none.
	Base(team character.Team) string
	// Move walks c to an adjacent node.
	Move(c *character.Character, nodeID string)
	// Place changes c's row.
	Place(c *character.Character, row character.Row)
	// Attack resolves a basic attack.
	Attack(attacker, target *character.Character)
	// Rand is the match's random source.
	Rand() dice.Source
}

// Policy is one of *Minion, *Tower or *Hero. The set is closed; the turn
// engine dispatches on the concrete type.
type Policy interface {
	policy()
}

func (*Minion) policy() {}
func (*Tower) policy()  {}
func (*Hero) policy()   {}

// memory is a remembered attack target, re-validated every turn.
type memory struct {
	target character.ID
	has    bool
}

func (m *memory) forget() { m.has = false }

// Target returns the remembered target handle, if any.
func (m *memory) Target() (character.ID, bool) { return m.target, m.has }

// acquire keeps the remembered target while it is alive, on self's node and in
// range; otherwise it picks the closest enemy and remembers that.
func (m *memory) acquire(w World, g *groups.Groups, self *character.Character) *character.Character {
	if m.has {
		if t, ok := w.Character(m.target); ok && t.Team != self.Team && g.Distance(self, t) <= self.Range() {
			return t
		}
	}
	t := g.PickClosestEnemy(self, -1, w.Rand())
	if t == nil {
		m.forget()
		return nil
	}
	m.target, m.has = t.ID, true
	return t
}

// move follows the label of team, falling back to the lane label.
//
// Postcondition: Returns true if a destination existed and c moved.
func move(w World, c *character.Character, team character.Team, lane character.Lane) bool {
	dest, ok := w.Destination(c.Node, world.Direction(team.String()))
	if !ok {
		dest, ok = w.Destination(c.Node, world.Direction(lane.String()))
	}
	if ok {
		w.Move(c, dest)
	}
	return ok
}

func active(c *character.Character) bool {
	return c != nil && c.Alive() && c.Node != ""
}
