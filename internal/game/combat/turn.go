package combat

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/skill"
	"github.com/cory-johannsen/textmoba/internal/game/targeting"
)

// NextTurn advances the match by one turn.
//
// Every character registered when the turn starts is visited once, in handle
// order, unless it left the match earlier in the turn: passive structures use
// their skills, heroes regenerate, buffs tick, then (except for the player)
// cooldowns drop and the AI policy plays. Characters spawned during the turn
// wait for the next one. Then the wave countdown advances, the player's
// cooldowns drop and an end-of-turn event is emitted.
func (e *Engine) NextTurn(ctx context.Context) {
	e.turn++
	ctx, span := e.tracer.Start(ctx, "combat.next_turn", trace.WithAttributes(
		attribute.Int("turn", e.turn),
		attribute.String("match", e.match.String()),
	))
	defer span.End()

	snapshot := e.reg.Snapshot()
	span.SetAttributes(attribute.Int("characters", len(snapshot)))

	for _, c := range snapshot {
		if cur, ok := e.reg.Get(c.ID); !ok || cur != c {
			continue
		}
		player := c.IsPlayer()
		if !player || e.rules.PlayerInTurnLoop {
			e.upkeep(c)
		}
		if player {
			continue
		}
		c.TickCooldowns()
		if p, ok := e.policies[c.ID]; ok {
			span.AddEvent("ai.play", trace.WithAttributes(
				attribute.Int("id", int(c.ID)),
				attribute.String("policy", fmt.Sprintf("%T", p)),
			))
			e.play(ctx, c)
		}
	}

	e.waveCounter--
	if e.waveCounter <= 0 {
		e.emit(EventWave, "", true, "A new batch of redshirts is leaving the fonxus.")
		n := e.SpawnWave(e.rules.RedshirtsPerLane)
		span.AddEvent("wave", trace.WithAttributes(attribute.Int("spawned", n)))
		e.waveCounter = e.rules.WaveTime
	}

	if p, ok := e.Player(); ok {
		p.TickCooldowns()
	}

	e.emit(EventTurnEnd, "", true, "End of turn %d", e.turn)
}

// upkeep runs the start-of-turn effects on c: passive skills, hero regen and buffs.
func (e *Engine) upkeep(c *character.Character) {
	if c.Class.Passive {
		for _, s := range c.Skills {
			if !s.Usable() || !selfTargeted(s.Shape()) {
				continue
			}
			if targets := targeting.Targets(s, e.Groups(c.Node)); len(targets) > 0 {
				e.UseSkillOn(s, targets)
			}
		}
	}

	if c.Type() == character.Hero {
		e.Heal(c, 1, nil)
		c.Mana = min(c.Mana+2, c.MaxMana())
	}

	e.tickBuffs(c)
}

// selfTargeted reports whether a skill of shape s picks its own targets.
func selfTargeted(s skill.Shape) bool {
	return s != skill.NoTarget && !targeting.NeedsTarget(s)
}

// tickBuffs applies every buff of c once and keeps those with ticks left. A
// lethal damage buff stops the tick; the death path has cleared c's buffs.
func (e *Engine) tickBuffs(c *character.Character) {
	buffs := c.Buffs
	c.Buffs = nil
	kept := make([]character.Buff, 0, len(buffs))
	for _, b := range buffs {
		switch b.Kind {
		case character.BuffHeal:
			e.Heal(c, b.Amount, nil)
		case character.BuffDamage:
			lethal := c.Alive() && b.Amount >= c.HP
			source, _ := e.reg.Get(b.Source)
			e.DealDamage(c, b.Amount, source)
			if lethal {
				return
			}
		}
		if b.Ticks--; b.Ticks > 0 {
			kept = append(kept, b)
		}
	}
	c.Buffs = append(kept, c.Buffs...)
}
