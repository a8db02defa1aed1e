package world

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/textmoba/internal/game/character"
)

// Graph indexes every node by ID and tracks which characters stand where.
//
// A Graph is not safe for concurrent use; the turn engine is its only writer.
type Graph struct {
	nodes map[string]*Node
}

// NewGraph creates a Graph from the given nodes.
//
// Postcondition: Returns a Graph with all nodes indexed by ID, or an error on
// empty or duplicate IDs.
func NewGraph(nodes ...*Node) (*Graph, error) {
	g := &Graph{nodes: make(map[string]*Node, len(nodes))}
	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node ID must not be empty")
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node ID %q", n.ID)
		}
		g.nodes[n.ID] = n
	}
	return g, nil
}

// Connect adds labels in both directions between two nodes: fromDirs lead from
// from to to, toDirs lead back. Labels accumulate across calls.
//
// Precondition: Only called while loading.
// Postcondition: Returns an error if either node is unknown.
func (g *Graph) Connect(from, to string, fromDirs, toDirs []Direction) error {
	a, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("path from unknown node %q", from)
	}
	b, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("path to unknown node %q", to)
	}
	a.paths[to] = append(a.paths[to], fromDirs...)
	b.paths[from] = append(b.paths[from], toDirs...)
	return nil
}

// Node returns the node with the given ID.
//
// Postcondition: Returns (node, true) if found, or (nil, false) otherwise.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node ordered by ID.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Destination resolves a labeled move from a node.
//
// Postcondition: Returns (node, true) if from exists and a path carries dir,
// or (nil, false) otherwise.
func (g *Graph) Destination(from string, dir Direction) (*Node, bool) {
	n, ok := g.nodes[from]
	if !ok {
		return nil, false
	}
	to, ok := n.Destination(dir)
	if !ok {
		return nil, false
	}
	return g.nodes[to], true
}

// Fonxus returns the base node of team: the first node, in ID order, carrying a
// fonxus marker for it.
func (g *Graph) Fonxus(team character.Team) (*Node, bool) {
	for _, n := range g.Nodes() {
		if n.Fonxus.Present && n.Fonxus.Team == team {
			return n, true
		}
	}
	return nil, false
}

// Attach adds a character to a node's occupant set.
//
// Postcondition: Returns an error if the node is unknown.
func (g *Graph) Attach(nodeID string, id character.ID) error {
	n, ok := g.nodes[nodeID]
	if !ok {
		return fmt.Errorf("node %q not found", nodeID)
	}
	n.occupants[id] = struct{}{}
	return nil
}

// Detach removes a character from a node's occupant set. Detaching from an
// unknown node or a node the character is not on is a no-op.
func (g *Graph) Detach(nodeID string, id character.ID) {
	if n, ok := g.nodes[nodeID]; ok {
		delete(n.occupants, id)
	}
}

// Clone returns a graph with the same nodes and paths and no occupants, so
// several matches can be played over one loaded map.
func (g *Graph) Clone() *Graph {
	out := &Graph{nodes: make(map[string]*Node, len(g.nodes))}
	for id, n := range g.nodes {
		c := NewNode(n.ID, n.Name)
		c.Pos, c.Tower, c.Fonxus = n.Pos, n.Tower, n.Fonxus
		for to, dirs := range n.paths {
			c.paths[to] = append([]Direction(nil), dirs...)
		}
		out.nodes[id] = c
	}
	return out
}
