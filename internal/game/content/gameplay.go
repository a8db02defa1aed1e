package content

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/combat"
	"github.com/cory-johannsen/textmoba/internal/game/tables"
)

// Defaults applied when gameplay.yaml omits a tunable.
const (
	DefaultFirstWaveTime    = 3
	DefaultWaveTime         = 10
	DefaultRedshirtsPerLane = 3
	DefaultFonxusClass      = "fonxus"
	DefaultTowerClass       = "tower"
)

// Gameplay holds the match tunables. XP tables are indexed by the 0-based
// character level and hold character.StatLevels entries.
type Gameplay struct {
	MOTD             string
	FirstWaveTime    int
	WaveTime         int
	RedshirtsPerLane int
	HeroNextLevel    []int
	HeroXPWorth      []int
	RedshirtXPWorth  []int
	TowerXPWorth     []int
	MinionClass      map[character.Team]string
	FonxusClass      string
	TowerClass       string
	// Heroes are the AI-controlled heroes spawned at setup.
	Heroes []combat.HeroSpec
}

type yamlGameplay struct {
	MOTD             string              `yaml:"motd"`
	FirstWaveTime    *int                `yaml:"first_wave_time"`
	WaveTime         *int                `yaml:"wave_time"`
	RedshirtsPerLane *int                `yaml:"redshirts_per_lane"`
	HeroNextLevel    tables.Leveled[int] `yaml:"hero_next_level"`
	HeroXPWorth      tables.Leveled[int] `yaml:"hero_xp_worth"`
	RedshirtXPWorth  tables.Leveled[int] `yaml:"redshirt_xp_worth"`
	TowerXPWorth     tables.Leveled[int] `yaml:"tower_xp_worth"`
	MinionClasses    map[string]string   `yaml:"minion_classes"`
	FonxusClass      string              `yaml:"fonxus_class"`
	TowerClass       string              `yaml:"tower_class"`
	Heroes           []yamlHero          `yaml:"heroes"`
}

type yamlHero struct {
	Class string `yaml:"class"`
	Team  string `yaml:"team"`
	Lane  string `yaml:"lane"`
}

// LoadGameplayFromFile reads a gameplay YAML file.
//
// Precondition: path must point to a readable file.
// Postcondition: Returns Gameplay or a non-nil error.
func LoadGameplayFromFile(path string, logger *zap.Logger) (*Gameplay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading gameplay file %s: %w", path, err)
	}
	return LoadGameplayFromBytes(data, logger)
}

// LoadGameplayFromBytes parses gameplay tunables. Missing values take their
// defaults, invalid ones are logged and defaulted, and roster entries with an
// unknown team are skipped. Only malformed YAML fails.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns Gameplay or a non-nil error.
func LoadGameplayFromBytes(data []byte, logger *zap.Logger) (*Gameplay, error) {
	var y yamlGameplay
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("parsing gameplay YAML: %w", err)
	}

	g := &Gameplay{
		MOTD:             y.MOTD,
		FirstWaveTime:    count(y.FirstWaveTime, DefaultFirstWaveTime, 0, "first_wave_time", logger),
		WaveTime:         count(y.WaveTime, DefaultWaveTime, 1, "wave_time", logger),
		RedshirtsPerLane: count(y.RedshirtsPerLane, DefaultRedshirtsPerLane, 0, "redshirts_per_lane", logger),
		HeroNextLevel:    xpTable(y.HeroNextLevel, "hero_next_level", logger),
		HeroXPWorth:      xpTable(y.HeroXPWorth, "hero_xp_worth", logger),
		RedshirtXPWorth:  xpTable(y.RedshirtXPWorth, "redshirt_xp_worth", logger),
		TowerXPWorth:     xpTable(y.TowerXPWorth, "tower_xp_worth", logger),
		MinionClass: map[character.Team]string{
			character.Blue: "blueshirt",
			character.Red:  "redshirt",
		},
		FonxusClass: y.FonxusClass,
		TowerClass:  y.TowerClass,
	}
	if g.FonxusClass == "" {
		g.FonxusClass = DefaultFonxusClass
	}
	if g.TowerClass == "" {
		g.TowerClass = DefaultTowerClass
	}

	for name, class := range y.MinionClasses {
		team, ok := character.ParseTeam(name)
		if !ok || team == character.Neutral {
			logger.Warn("skipping minion class for unknown team", zap.String("team", name))
			continue
		}
		g.MinionClass[team] = class
	}

	for i, h := range y.Heroes {
		hl := logger.With(zap.Int("hero", i), zap.String("class", h.Class))
		team, ok := character.ParseTeam(h.Team)
		if !ok || team == character.Neutral {
			hl.Warn("skipping hero with unknown team", zap.String("team", h.Team))
			continue
		}
		lane := character.Bot
		if h.Lane != "" {
			if lane, ok = character.ParseLane(h.Lane); !ok {
				hl.Warn("invalid lane, defaulting to top", zap.String("lane", h.Lane))
			}
		}
		g.Heroes = append(g.Heroes, combat.HeroSpec{Class: h.Class, Team: team, Lane: lane})
	}
	return g, nil
}

func count(v *int, def, lowest int, field string, logger *zap.Logger) int {
	if v == nil {
		return def
	}
	if *v < lowest {
		logger.Warn("value too small, using default",
			zap.String("field", field),
			zap.Int("value", *v),
			zap.Int("default", def),
		)
		return def
	}
	return *v
}

func xpTable(l tables.Leveled[int], field string, logger *zap.Logger) []int {
	out, overflow := l.Expand(character.StatLevels, 0)
	if overflow > 0 {
		logger.Warn("too many values in level table",
			zap.String("field", field),
			zap.Int("dropped", overflow),
		)
	}
	return out
}

// Rules builds the engine rules. PlayerInTurnLoop is on and only blue heroes
// level up; callers override both from configuration.
func (g *Gameplay) Rules() combat.Rules {
	minions := make(map[character.Team]string, len(g.MinionClass))
	for team, class := range g.MinionClass {
		minions[team] = class
	}
	return combat.Rules{
		FirstWaveTime:    g.FirstWaveTime,
		WaveTime:         g.WaveTime,
		RedshirtsPerLane: g.RedshirtsPerLane,
		HeroNextLevel:    g.HeroNextLevel,
		HeroXPWorth:      g.HeroXPWorth,
		RedshirtXPWorth:  g.RedshirtXPWorth,
		TowerXPWorth:     g.TowerXPWorth,
		MinionClass:      minions,
		FonxusClass:      g.FonxusClass,
		TowerClass:       g.TowerClass,
		PlayerInTurnLoop: true,
		LevelUpTeams:     []character.Team{character.Blue},
	}
}

// Roster returns the setup roster with the given player hero.
func (g *Gameplay) Roster(playerClass string, playerTeam character.Team) combat.Roster {
	return combat.Roster{
		Player: combat.HeroSpec{Class: playerClass, Team: playerTeam},
		Heroes: append([]combat.HeroSpec(nil), g.Heroes...),
	}
}
