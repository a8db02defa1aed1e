package ai

import (
	"context"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/cory-johannsen/textmoba/internal/game/character"
)

// Hero states.
const (
	StatePushLane     = "push_lane"
	StateFollowPlayer = "follow_player"
	StateBackToBase   = "back_to_base"
)

// Hero state transitions.
const (
	EventRetreat = "retreat"
	EventPush    = "push"
	EventFollow  = "follow"
)

// Hero pushes its lane behind its own minions, retreats to base when badly
// hurt, and returns to the lane once fully restored.
type Hero struct {
	Lane character.Lane
	memory

	state  *fsm.FSM
	logger *zap.Logger
}

// NewHero creates a hero policy for lane, starting in StatePushLane.
//
// Precondition: logger must be non-nil.
func NewHero(lane character.Lane, logger *zap.Logger) *Hero {
	h := &Hero{Lane: lane, logger: logger}
	h.state = fsm.NewFSM(
		StatePushLane,
		fsm.Events{
			{Name: EventRetreat, Src: []string{StatePushLane, StateFollowPlayer}, Dst: StateBackToBase},
			{Name: EventPush, Src: []string{StateBackToBase, StateFollowPlayer}, Dst: StatePushLane},
			{Name: EventFollow, Src: []string{StatePushLane, StateBackToBase}, Dst: StateFollowPlayer},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				h.logger.Debug("hero state changed",
					zap.String("from", e.Src),
					zap.String("to", e.Dst),
				)
			},
		},
	)
	return h
}

// State returns the current state name.
func (p *Hero) State() string { return p.state.Current() }

// Fire triggers a transition if the current state allows it.
//
// Postcondition: Returns true if the state changed.
func (p *Hero) Fire(ctx context.Context, event string) bool {
	if !p.state.Can(event) {
		return false
	}
	return p.state.Event(ctx, event) == nil
}

// Play takes one turn for self.
func (p *Hero) Play(ctx context.Context, w World, self *character.Character) {
	if !active(self) {
		return
	}
	g := w.Groups(self.Node)

	if self.HP < self.MaxHP()/4 {
		p.Fire(ctx, EventRetreat)
	}
	if self.HP == self.MaxHP() && self.Mana == self.MaxMana() {
		p.Fire(ctx, EventPush)
	}

	enemies := g.CountEnemies(self)
	switch p.State() {
	case StatePushLane:
		minions := g.CountType(character.Redshirt, self.Team)
		buildings := g.CountType(character.Building, self.Team)
		switch {
		case enemies > 0 && minions == 0 && buildings == 0:
			move(w, self, self.Team, p.Lane)
		case enemies > 0:
			if self.Range() == 1 && self.Row == character.Back {
				w.Place(self, character.Front)
			} else if t := p.acquire(w, g, self); t != nil {
				w.Attack(self, t)
			}
		case minions > 0:
			move(w, self, self.EnemyTeam(), p.Lane)
		}

	case StateFollowPlayer:
		// Holds position; nothing drives this state yet.

	case StateBackToBase:
		// Standing on the own base counts as having nowhere left to retreat.
		retreated := self.Node != w.Base(self.Team) && move(w, self, self.Team, p.Lane)
		if !retreated && enemies > 0 {
			if t := p.acquire(w, g, self); t != nil {
				w.Attack(self, t)
			}
		}
	}
}
