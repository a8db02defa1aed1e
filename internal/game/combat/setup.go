package combat

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/textmoba/internal/game/ai"
	"github.com/cory-johannsen/textmoba/internal/game/character"
)

// HeroSpec places one hero in the roster.
type HeroSpec struct {
	Class string
	Team  character.Team
	Lane  character.Lane
}

// Roster lists the heroes a match starts with. The player needs no lane.
type Roster struct {
	Player HeroSpec
	Heroes []HeroSpec
}

// Setup starts the match: the player, then the AI heroes on their team's base,
// then a fonxus on every fonxus node and a tower with tower AI on every tower
// node. Heroes and structures that fail to spawn are logged and skipped.
//
// Precondition: Setup is called once, on an Engine with no characters.
// Postcondition: Returns an error if the player cannot be spawned or its team
// has no fonxus node; the player has handle character.PlayerID.
func (e *Engine) Setup(roster Roster) error {
	if e.reg.Len() != 0 {
		return errors.New("match already set up")
	}
	e.turn = 0
	e.waveCounter = e.rules.FirstWaveTime

	base := e.Base(roster.Player.Team)
	if base == "" {
		return fmt.Errorf("no fonxus node for player team %s", roster.Player.Team)
	}
	player, err := e.Spawn(roster.Player.Class, roster.Player.Team, base)
	if err != nil {
		return fmt.Errorf("spawning player: %w", err)
	}
	if player.ID != character.PlayerID {
		return fmt.Errorf("player spawned with handle %d", player.ID)
	}

	for _, h := range roster.Heroes {
		base := e.Base(h.Team)
		if base == "" {
			e.logger.Warn("skipping hero without a fonxus node",
				zap.String("class", h.Class),
				zap.Stringer("team", h.Team),
			)
			continue
		}
		c, err := e.Spawn(h.Class, h.Team, base)
		if err != nil {
			e.logger.Warn("skipping hero", zap.String("class", h.Class), zap.Error(err))
			continue
		}
		e.policies[c.ID] = ai.NewHero(h.Lane, e.logger.With(zap.Int("hero", int(c.ID))))
	}

	for _, n := range e.graph.Nodes() {
		if n.Fonxus.Present {
			if _, err := e.Spawn(e.rules.FonxusClass, n.Fonxus.Team, n.ID); err != nil {
				e.logger.Warn("skipping fonxus", zap.String("node", n.ID), zap.Error(err))
			}
		}
		if n.Tower.Present {
			c, err := e.Spawn(e.rules.TowerClass, n.Tower.Team, n.ID)
			if err != nil {
				e.logger.Warn("skipping tower", zap.String("node", n.ID), zap.Error(err))
				continue
			}
			e.policies[c.ID] = ai.NewTower()
		}
	}

	e.logger.Info("match set up",
		zap.Int("characters", e.reg.Len()),
		zap.Int("first_wave", e.waveCounter),
	)
	return nil
}

// SpawnMinion spawns one minion of team's minion class on team's base, pushing lane.
func (e *Engine) SpawnMinion(team character.Team, lane character.Lane) (*character.Character, error) {
	base := e.Base(team)
	if base == "" {
		return nil, fmt.Errorf("team %s has no base", team)
	}
	c, err := e.Spawn(e.rules.MinionClass[team], team, base)
	if err != nil {
		return nil, err
	}
	e.policies[c.ID] = ai.NewMinion(lane)
	return c, nil
}

// SpawnWave spawns perLane minions into every lane for both teams. Failed
// spawns are logged and skipped.
//
// Postcondition: Returns the number of minions spawned.
func (e *Engine) SpawnWave(perLane int) int {
	spawned := 0
	for i := 0; i < perLane; i++ {
		for _, team := range character.Teams {
			for _, lane := range character.Lanes {
				if _, err := e.SpawnMinion(team, lane); err != nil {
					e.logger.Warn("skipping minion",
						zap.String("team", team.String()),
						zap.String("lane", lane.String()),
						zap.Error(err),
					)
					continue
				}
				spawned++
			}
		}
	}
	e.logger.Info("wave", zap.Int("turn", e.turn), zap.Int("spawned", spawned))
	return spawned
}
