// Package groups builds the per-node positional snapshot used by targeting and
// AI: characters sorted into team/row partitions, lane distance, and random
// target picks.
package groups

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/dice"
)

// Unreachable is the distance reported between characters that cannot reach
// each other: either is dead or not on the snapshot's node.
const Unreachable = 9999

// ErrOutOfRange is returned by the Get family for an index outside its partition.
var ErrOutOfRange = errors.New("groups: index out of range")

// partitions per team (back, front) times blue, red, neutral.
const partitions = 6

// Groups is an immutable snapshot of one node's occupants, sorted by team
// (blue, red, neutral), then row (back, front), then class sort index, then
// spawn order. Rebuild it whenever positions change.
type Groups struct {
	node  string
	chars []*character.Character
	// bounds[k] is the first index of partition k = 2*team+row; bounds[6] == len(chars).
	bounds [partitions + 1]int
}

// Build snapshots chars as the occupants of nodeID.
//
// Postcondition: The input slice is not modified.
func Build(nodeID string, chars []*character.Character) *Groups {
	sorted := append([]*character.Character(nil), chars...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Team != b.Team {
			return a.Team < b.Team
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		if a.Class.SortIndex != b.Class.SortIndex {
			return a.Class.SortIndex < b.Class.SortIndex
		}
		return a.ID < b.ID
	})

	g := &Groups{node: nodeID, chars: sorted}
	k := 0
	for i, c := range sorted {
		p := partition(c.Team, c.Row)
		for k < p {
			k++
			g.bounds[k] = i
		}
	}
	for k < partitions {
		k++
		g.bounds[k] = len(sorted)
	}
	return g
}

func partition(team character.Team, row character.Row) int {
	return 2*int(team) + int(row)
}

func (g *Groups) span(team character.Team, row character.Row) (int, int) {
	p := partition(team, row)
	return g.bounds[p], g.bounds[p+1]
}

func (g *Groups) teamSpan(team character.Team) (int, int) {
	return g.bounds[2*int(team)], g.bounds[2*int(team)+2]
}

// Node returns the ID of the snapshotted node.
func (g *Groups) Node() string { return g.node }

// Count returns the number of characters in the snapshot.
func (g *Groups) Count() int { return len(g.chars) }

// CountTeam returns the number of characters of team.
func (g *Groups) CountTeam(team character.Team) int {
	lo, hi := g.teamSpan(team)
	return hi - lo
}

// CountEnemies returns the number of characters hostile to c. A team that is
// its own enemy (neutral) has none.
func (g *Groups) CountEnemies(c *character.Character) int {
	enemy := c.EnemyTeam()
	if enemy == c.Team {
		return 0
	}
	return g.CountTeam(enemy)
}

// CountRow returns the number of characters of team standing in row.
func (g *Groups) CountRow(team character.Team, row character.Row) int {
	lo, hi := g.span(team, row)
	return hi - lo
}

// CountType returns the number of characters of team whose class has type typ.
func (g *Groups) CountType(typ character.Type, team character.Team) int {
	lo, hi := g.teamSpan(team)
	n := 0
	for _, c := range g.chars[lo:hi] {
		if c.Type() == typ {
			n++
		}
	}
	return n
}

func at(chars []*character.Character, lo, hi, i int) (*character.Character, error) {
	if i < 0 || lo+i >= hi {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, hi-lo)
	}
	return chars[lo+i], nil
}

// Get returns the i-th character of the whole snapshot.
func (g *Groups) Get(i int) (*character.Character, error) {
	return at(g.chars, 0, len(g.chars), i)
}

// GetTeam returns the i-th character of team.
func (g *Groups) GetTeam(team character.Team, i int) (*character.Character, error) {
	lo, hi := g.teamSpan(team)
	return at(g.chars, lo, hi, i)
}

// GetRow returns the i-th character of team standing in row.
func (g *Groups) GetRow(team character.Team, row character.Row, i int) (*character.Character, error) {
	lo, hi := g.span(team, row)
	return at(g.chars, lo, hi, i)
}

// All returns the whole snapshot in partition order.
func (g *Groups) All() []*character.Character {
	return append([]*character.Character(nil), g.chars...)
}

// Members returns the characters of team standing in row, in partition order.
func (g *Groups) Members(team character.Team, row character.Row) []*character.Character {
	lo, hi := g.span(team, row)
	return append([]*character.Character(nil), g.chars[lo:hi]...)
}

// IndexOf returns c's position in the whole snapshot, or -1.
func (g *Groups) IndexOf(c *character.Character) int {
	for i, o := range g.chars {
		if o == c {
			return i
		}
	}
	return -1
}

// Distance returns the lane distance between a and b: the slot difference minus
// one for every empty slot strictly between them.
//
// Postcondition: Returns Unreachable if either is dead, off this node, or neutral.
func (g *Groups) Distance(a, b *character.Character) int {
	if !a.Alive() || !b.Alive() || a.Node != g.node || b.Node != g.node {
		return Unreachable
	}
	p0, p1 := a.PlaceIndex(), b.PlaceIndex()
	if p0 < 0 || p1 < 0 {
		return Unreachable
	}
	if p0 > p1 {
		p0, p1 = p1, p0
	}
	dist := p1 - p0
	for i := p0 + 1; i < p1; i++ {
		team, row := character.SlotPlace(i)
		if g.CountRow(team, row) == 0 {
			dist--
		}
	}
	return dist
}

// Pick returns a uniformly random character of team standing in row.
//
// Postcondition: Returns nil if the partition is empty.
func (g *Groups) Pick(team character.Team, row character.Row, src dice.Source) *character.Character {
	lo, hi := g.span(team, row)
	if hi == lo {
		return nil
	}
	return g.chars[lo+src.Intn(hi-lo)]
}

// PickClosestEnemy picks a random enemy of c in the nearest reachable row.
// A negative rng means c's own attack range. Standing in the back row behind an
// occupied friendly front row costs one unit of range; an occupied enemy front
// row screens the enemy back row.
//
// Postcondition: Returns nil if no enemy row is reachable or c is neutral.
func (g *Groups) PickClosestEnemy(c *character.Character, rng int, src dice.Source) *character.Character {
	if rng < 0 {
		rng = c.Range()
	}
	enemy := c.EnemyTeam()
	if enemy == c.Team {
		return nil
	}

	if c.Row == character.Back && g.CountRow(c.Team, character.Front) > 0 {
		rng--
	}
	if g.CountRow(enemy, character.Front) > 0 {
		if rng > 0 {
			return g.Pick(enemy, character.Front, src)
		}
		rng--
	}
	if rng > 0 && g.CountRow(enemy, character.Back) > 0 {
		return g.Pick(enemy, character.Back, src)
	}
	return nil
}
