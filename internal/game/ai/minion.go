package ai

import "github.com/cory-johannsen/textmoba/internal/game/character"

// Minion marches down its lane toward the enemy base and fights whatever it
// meets on the way.
type Minion struct {
	Lane character.Lane
	memory
}

// NewMinion creates a minion policy for lane.
func NewMinion(lane character.Lane) *Minion {
	return &Minion{Lane: lane}
}

// Play takes one turn for self: attack if enemies share the node, otherwise
// advance toward the enemy team's label, or along the lane.
func (p *Minion) Play(w World, self *character.Character) {
	if !active(self) {
		return
	}
	g := w.Groups(self.Node)
	if g.CountEnemies(self) > 0 {
		if t := p.acquire(w, g, self); t != nil {
			w.Attack(self, t)
		}
		return
	}
	move(w, self, self.EnemyTeam(), p.Lane)
}
