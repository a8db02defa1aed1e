package ai

import "github.com/cory-johannsen/textmoba/internal/game/character"

// Tower never moves. It keeps shooting one enemy until that enemy dies or
// leaves its range, and forgets it once the node is clear.
type Tower struct {
	memory
}

// NewTower creates a tower policy.
func NewTower() *Tower {
	return &Tower{}
}

// Play takes one turn for self.
func (p *Tower) Play(w World, self *character.Character) {
	if !active(self) {
		return
	}
	g := w.Groups(self.Node)
	if g.CountEnemies(self) == 0 {
		p.forget()
		return
	}
	if t := p.acquire(w, g, self); t != nil {
		w.Attack(self, t)
	}
}
