package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/combat"
	"github.com/cory-johannsen/textmoba/internal/game/dice"
	"github.com/cory-johannsen/textmoba/internal/game/skill"
	"github.com/cory-johannsen/textmoba/internal/game/world"
)

// LaneGraph returns bf - lane - rf. bf and rf are the blue and red bases;
// team labels lead toward the named base and "top" leads away from either base.
func LaneGraph(t testing.TB) *world.Graph {
	t.Helper()
	bf := world.NewNode("bf", "Blue Fonxus")
	bf.Fonxus = world.Marker{Team: character.Blue, Present: true}
	rf := world.NewNode("rf", "Red Fonxus")
	rf.Fonxus = world.Marker{Team: character.Red, Present: true}
	g, err := world.NewGraph(bf, world.NewNode("lane", "Top Lane"), rf)
	require.NoError(t, err)
	require.NoError(t, g.Connect("bf", "lane", []world.Direction{"red", "top"}, []world.Direction{"blue"}))
	require.NoError(t, g.Connect("lane", "rf", []world.Direction{"red"}, []world.Direction{"blue", "top"}))
	return g
}

// MatchRules returns rules with a distant first wave so tests control spawns.
func MatchRules() combat.Rules {
	return combat.Rules{
		FirstWaveTime:    100,
		WaveTime:         10,
		RedshirtsPerLane: 1,
		HeroNextLevel:    []int{10, 20, 0},
		HeroXPWorth:      []int{7},
		RedshirtXPWorth:  []int{3},
		TowerXPWorth:     []int{25},
		MinionClass: map[character.Team]string{
			character.Blue: "blueshirt",
			character.Red:  "redshirt",
		},
		FonxusClass:      "fonxus",
		TowerClass:       "tower",
		PlayerInTurnLoop: true,
		LevelUpTeams:     []character.Team{character.Blue},
	}
}

// NewMatch returns an engine over LaneGraph with no characters. Classes are
// ranger (range 3, skills bolt, nova and mend), knight (range 1), blueshirt,
// redshirt and tower. bolt is a single-target 15 damage hit, nova deals 5 to
// a chosen row and mend heals its caster over time.
func NewMatch(t testing.TB, opts ...combat.Option) *combat.Engine {
	t.Helper()
	ranger := Hero("ranger", 3)
	ranger.Skills = []string{"bolt", "nova", "mend"}
	classes, err := character.NewClassRegistry(
		ranger,
		Hero("knight", 1),
		Minion("blueshirt"),
		Minion("redshirt"),
		Tower("tower"),
	)
	require.NoError(t, err)

	skills, err := skill.NewRegistry(
		NewSkill("bolt", skill.Single, 3, 2, 10, skill.Applied{Kind: skill.Damage, Power: 15}),
		NewSkill("nova", skill.AnyRow, 3, 1, 5, skill.Applied{Kind: skill.Damage, Power: 5}),
		NewSkill("mend", skill.Self, 0, 2, 5, skill.Applied{Kind: skill.HOT, Power: 3}),
	)
	require.NoError(t, err)

	opts = append([]combat.Option{combat.WithSource(dice.NewFixed(0))}, opts...)
	return combat.New(LaneGraph(t), classes, skills, MatchRules(), zaptest.NewLogger(t), opts...)
}

// MustSpawn spawns a character on eng and fails the test on error.
func MustSpawn(t testing.TB, eng *combat.Engine, class string, team character.Team, node string) *character.Character {
	t.Helper()
	c, err := eng.Spawn(class, team, node)
	require.NoError(t, err)
	return c
}

// IndexOf returns the number viewer sees for c in a node description, or -1.
func IndexOf(eng *combat.Engine, viewer, c *character.Character) int {
	for _, v := range eng.NodeView(viewer).Characters {
		if v.ID == c.ID {
			return v.Index
		}
	}
	return -1
}
