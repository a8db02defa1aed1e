// Package world provides the map graph: nodes, labeled directed paths between
// them, and the set of characters standing on each node.
package world

import (
	"sort"

	"github.com/cory-johannsen/textmoba/internal/game/character"
)

// Direction is a path label. A single path may carry several labels, e.g. a
// lane name ("top") and the team whose base it leads toward ("red").
type Direction string

// Path is the set of labels leading from a node to one neighbor.
type Path struct {
	To         string
	Directions []Direction
}

// Marker is an optional team marker on a node.
type Marker struct {
	Team    character.Team
	Present bool
}

// Node is a location on the map. Its topology is fixed at load time; only the
// occupant set changes during play.
type Node struct {
	ID   string
	Name string
	// Pos is the presentation position of the node on the map.
	Pos [2]float64
	// Tower marks a node guarded by a tower of the given team.
	Tower Marker
	// Fonxus marks a team's base node.
	Fonxus Marker

	paths     map[string][]Direction
	occupants map[character.ID]struct{}
}

// NewNode creates a node with no paths and no occupants.
func NewNode(id, name string) *Node {
	return &Node{
		ID:        id,
		Name:      name,
		paths:     make(map[string][]Direction),
		occupants: make(map[character.ID]struct{}),
	}
}

// Paths returns every outgoing path ordered by destination ID.
//
// Postcondition: Returns a non-nil slice; label slices are copies.
func (n *Node) Paths() []Path {
	out := make([]Path, 0, len(n.paths))
	for to, dirs := range n.paths {
		out = append(out, Path{To: to, Directions: append([]Direction(nil), dirs...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].To < out[j].To })
	return out
}

// Destination returns the ID of the first neighbor, in destination ID order,
// whose path carries dir.
//
// Postcondition: Returns (nodeID, true) if a path matches, or ("", false).
func (n *Node) Destination(dir Direction) (string, bool) {
	for _, p := range n.Paths() {
		for _, d := range p.Directions {
			if d == dir {
				return p.To, true
			}
		}
	}
	return "", false
}

// Occupants returns the handles of every character on the node in ascending order.
//
// Postcondition: Returns a non-nil slice.
func (n *Node) Occupants() []character.ID {
	out := make([]character.ID, 0, len(n.occupants))
	for id := range n.occupants {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Has reports whether the character is on the node.
func (n *Node) Has(id character.ID) bool {
	_, ok := n.occupants[id]
	return ok
}
