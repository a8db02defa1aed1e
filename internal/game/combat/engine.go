// Package combat runs a match: the turn engine, combat resolution, spawning,
// and the read-only views a front-end renders.
//
// An Engine is single-writer. Every mutation is applied synchronously where
// the triggering intent is processed; callers must serialize access.
package combat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cory-johannsen/textmoba/internal/game/ai"
	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/dice"
	"github.com/cory-johannsen/textmoba/internal/game/groups"
	"github.com/cory-johannsen/textmoba/internal/game/skill"
	"github.com/cory-johannsen/textmoba/internal/game/world"
	"github.com/cory-johannsen/textmoba/internal/observability"
)

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the random source used for target selection.
func WithSource(src dice.Source) Option {
	return func(e *Engine) { e.src = src }
}

// WithTracer sets the tracer NextTurn records spans on.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithListener subscribes l to every event.
func WithListener(l Listener) Option {
	return func(e *Engine) { e.listeners = append(e.listeners, l) }
}

// Engine owns the state of one match.
type Engine struct {
	match   uuid.UUID
	graph   *world.Graph
	classes *character.ClassRegistry
	skills  *skill.Registry
	rules   Rules

	reg      *character.Registry
	policies map[character.ID]ai.Policy

	src       dice.Source
	logger    *zap.Logger
	tracer    trace.Tracer
	listeners []Listener

	turn        int
	waveCounter int
}

// New creates an Engine with an empty roster over graph.
//
// Precondition: graph, classes, skills and logger must be non-nil.
// Postcondition: The random source defaults to crypto randomness and the tracer
// to a no-op tracer.
func New(graph *world.Graph, classes *character.ClassRegistry, skills *skill.Registry, rules Rules, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		match:       uuid.New(),
		graph:       graph,
		classes:     classes,
		skills:      skills,
		rules:       rules,
		reg:         character.NewRegistry(),
		policies:    make(map[character.ID]ai.Policy),
		src:         dice.NewCryptoSource(),
		tracer:      observability.NoopTracer(),
		waveCounter: rules.FirstWaveTime,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logger.With(zap.String("match", e.match.String()))
	return e
}

// Subscribe adds l to the listeners notified of every later event.
func (e *Engine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

// MatchID identifies the match in logs and traces.
func (e *Engine) MatchID() uuid.UUID { return e.match }

// Turn returns the number of completed turns.
func (e *Engine) Turn() int { return e.turn }

// WaveCounter returns the number of turns left before the next minion wave.
func (e *Engine) WaveCounter() int { return e.waveCounter }

// Rules returns the match tunables.
func (e *Engine) Rules() Rules { return e.rules }

// Graph returns the world graph.
func (e *Engine) Graph() *world.Graph { return e.graph }

// Player returns the player character, if it has been spawned.
func (e *Engine) Player() (*character.Character, bool) {
	return e.reg.Get(character.PlayerID)
}

// Characters returns every live character in handle order.
func (e *Engine) Characters() []*character.Character { return e.reg.Snapshot() }

// Policy returns the AI policy driving a character, if any.
func (e *Engine) Policy(id character.ID) (ai.Policy, bool) {
	p, ok := e.policies[id]
	return p, ok
}

// SetPolicy makes p drive the character id. A nil p removes the policy.
func (e *Engine) SetPolicy(id character.ID, p ai.Policy) {
	if p == nil {
		delete(e.policies, id)
		return
	}
	e.policies[id] = p
}

// Character resolves a handle.
func (e *Engine) Character(id character.ID) (*character.Character, bool) {
	return e.reg.Get(id)
}

// Groups snapshots the occupants of a node. An unknown node has no occupants.
func (e *Engine) Groups(nodeID string) *groups.Groups {
	n, ok := e.graph.Node(nodeID)
	if !ok {
		return groups.Build(nodeID, nil)
	}
	return groups.Build(nodeID, e.reg.Resolve(n.Occupants()))
}

// Destination resolves a labeled path from a node to the destination node ID.
func (e *Engine) Destination(from string, dir world.Direction) (string, bool) {
	n, ok := e.graph.Destination(from, dir)
	if !ok {
		return "", false
	}
	return n.ID, true
}

// Base returns the ID of team's fonxus node, or "" if it has none.
func (e *Engine) Base(team character.Team) string {
	n, ok := e.graph.Fonxus(team)
	if !ok {
		return ""
	}
	return n.ID
}

// Rand is the match's random source.
func (e *Engine) Rand() dice.Source { return e.src }

// Spawn creates a character of class classID on team, teaches it its class
// skills at level 1 and, when nodeID is non-empty, walks it onto that node.
// Class skills missing from the skill registry are logged and skipped.
//
// Postcondition: Returns an error if the class or node is unknown; nothing is
// spawned in that case.
func (e *Engine) Spawn(classID string, team character.Team, nodeID string) (*character.Character, error) {
	class, ok := e.classes.Get(classID)
	if !ok {
		e.logger.Error("invalid character class", zap.String("class", classID))
		return nil, fmt.Errorf("class %q not found", classID)
	}
	if nodeID != "" {
		if _, ok := e.graph.Node(nodeID); !ok {
			return nil, fmt.Errorf("node %q not found", nodeID)
		}
	}

	c := e.reg.Spawn(class, team)
	for _, id := range class.Skills {
		m, ok := e.skills.Get(id)
		if !ok {
			e.logger.Warn("skill model not found",
				zap.String("class", classID),
				zap.String("skill", id),
			)
			continue
		}
		c.LearnSkill(m, 1)
	}
	if nodeID != "" {
		e.Move(c, nodeID)
	}

	e.logger.Debug("spawn",
		zap.Int("turn", e.turn),
		zap.Int("id", int(c.ID)),
		zap.String("class", classID),
		zap.String("team", team.String()),
		zap.String("node", nodeID),
	)
	return c, nil
}

// play runs c's policy once. Characters without a policy do nothing.
func (e *Engine) play(ctx context.Context, c *character.Character) {
	switch p := e.policies[c.ID].(type) {
	case nil:
	case *ai.Minion:
		p.Play(e, c)
	case *ai.Tower:
		p.Play(e, c)
	case *ai.Hero:
		p.Play(ctx, e, c)
	default:
		panic(fmt.Sprintf("combat: unhandled policy %T", p))
	}
}
