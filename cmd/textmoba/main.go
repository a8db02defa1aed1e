// Package main provides the textmoba binary: a single-player match played
// from the terminal against AI heroes, minions and towers. With telnet enabled
// it instead serves an independent match to every connecting client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cory-johannsen/textmoba/internal/config"
	"github.com/cory-johannsen/textmoba/internal/frontend/console"
	"github.com/cory-johannsen/textmoba/internal/frontend/telnet"
	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/combat"
	"github.com/cory-johannsen/textmoba/internal/game/command"
	"github.com/cory-johannsen/textmoba/internal/game/content"
	"github.com/cory-johannsen/textmoba/internal/game/dice"
	"github.com/cory-johannsen/textmoba/internal/game/world"
	"github.com/cory-johannsen/textmoba/internal/observability"
	"github.com/cory-johannsen/textmoba/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults and environment only")
	contentDir := flag.String("content", "", "content directory; overrides game.content_dir")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	flag.Parse()

	// A missing .env is normal; the environment may be set directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("loading .env: %v", err)
	}

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, closeLog, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer closeLog()
	defer logger.Sync()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Telemetry)
	if err != nil {
		logger.Fatal("setting up tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("shutting down tracing", zap.Error(err))
		}
	}()

	dir := cfg.Game.ContentDir
	if *contentDir != "" {
		dir = *contentDir
	}
	loadStart := time.Now()
	c, err := content.Load(dir, logger.Named("content"))
	if err != nil {
		logger.Fatal("loading content", zap.String("dir", dir), zap.Error(err))
	}
	logger.Info("content ready", zap.Duration("elapsed", time.Since(loadStart)))

	opts := console.Options{MOTD: c.Gameplay.MOTD, Color: !*noColor}
	lifecycle := server.NewLifecycle(logger)

	if cfg.Telnet.Enabled {
		var sessions atomic.Int64
		acc := telnet.NewAcceptor(cfg.Telnet, func(ctx context.Context, conn *telnet.Conn) error {
			sl := logger.With(
				zap.Int64("session", sessions.Add(1)),
				zap.String("remote_addr", conn.RemoteAddr().String()),
			)
			eng, disp, err := newMatch(c, c.Graph.Clone(), cfg, sl)
			if err != nil {
				return err
			}
			con := console.New(eng, disp, conn, conn, opts, sl.Named("console"))
			stop := context.AfterFunc(ctx, con.Stop)
			defer stop()
			return con.Start()
		}, logger.Named("telnet"))
		lifecycle.Add("telnet", acc)
		logger.Info("serving matches over telnet",
			zap.String("addr", cfg.Telnet.Addr()),
			zap.Duration("startup", time.Since(start)),
		)
	} else {
		eng, disp, err := newMatch(c, c.Graph, cfg, logger)
		if err != nil {
			logger.Fatal("setting up match", zap.Error(err))
		}
		lifecycle.Add("console", console.New(eng, disp, os.Stdin, os.Stdout, opts, logger.Named("console")))
		logger.Info("match ready",
			zap.String("match", eng.MatchID().String()),
			zap.String("player_class", cfg.Game.PlayerClass),
			zap.String("player_team", cfg.Game.PlayerTeam),
			zap.Duration("startup", time.Since(start)),
		)
	}

	if err := lifecycle.Run(ctx); err != nil {
		logger.Error("match ended with error", zap.Error(err))
	}
}

// newMatch builds a set-up engine on graph and a dispatcher for its player.
//
// Precondition: graph must hold no occupants.
func newMatch(c *content.Content, graph *world.Graph, cfg config.Config, logger *zap.Logger) (*combat.Engine, *command.Dispatcher, error) {
	src := dice.NewLoggedSource(dice.NewSource(cfg.Game.Seed), logger.Named("dice"))
	eng := combat.New(graph, c.Classes, c.Skills, matchRules(c.Gameplay, cfg.Rules), logger,
		combat.WithSource(src),
		combat.WithTracer(observability.Tracer("textmoba/combat")),
	)

	team, _ := character.ParseTeam(cfg.Game.PlayerTeam)
	if err := eng.Setup(c.Gameplay.Roster(cfg.Game.PlayerClass, team)); err != nil {
		return nil, nil, fmt.Errorf("setting up match: %w", err)
	}
	return eng, command.NewDispatcher(eng, command.DefaultRegistry(), logger.Named("command")), nil
}

// matchRules applies the configured rule switches to the content's rules.
func matchRules(g *content.Gameplay, cfg config.RulesConfig) combat.Rules {
	rules := g.Rules()
	rules.PlayerInTurnLoop = cfg.PlayerInTurnLoop
	rules.LevelUpTeams = rules.LevelUpTeams[:0]
	for _, name := range cfg.LevelUpTeams {
		if team, ok := character.ParseTeam(name); ok {
			rules.LevelUpTeams = append(rules.LevelUpTeams, team)
		}
	}
	return rules
}
