package groups_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/dice"
	"github.com/cory-johannsen/textmoba/internal/game/groups"
	"github.com/cory-johannsen/textmoba/internal/testutil"
)

const node = "mid"

type arena struct {
	reg   *character.Registry
	chars []*character.Character
}

func newArena() *arena { return &arena{reg: character.NewRegistry()} }

func (a *arena) add(c *character.Class, team character.Team, row character.Row) *character.Character {
	ch := testutil.Place(a.reg, c, team, row, node)
	a.chars = append(a.chars, ch)
	return ch
}

func (a *arena) build() *groups.Groups { return groups.Build(node, a.chars) }

func TestBuild_PartitionOrder(t *testing.T) {
	a := newArena()
	tower := testutil.Tower("tower")
	tower.SortIndex = 0
	hero := testutil.Hero("hero", 2)
	hero.SortIndex = 5
	minion := testutil.Minion("minion")
	minion.SortIndex = 9

	m1 := a.add(minion, character.Red, character.Front)
	h1 := a.add(hero, character.Blue, character.Front)
	t1 := a.add(tower, character.Blue, character.Back)
	m2 := a.add(minion, character.Blue, character.Front)
	h2 := a.add(hero, character.Red, character.Back)
	m3 := a.add(minion, character.Red, character.Front)

	g := a.build()
	assert.Equal(t, []*character.Character{t1, h1, m2, h2, m1, m3}, g.All())
	assert.Equal(t, 6, g.Count())
	assert.Equal(t, 3, g.CountTeam(character.Blue))
	assert.Equal(t, 3, g.CountTeam(character.Red))
	assert.Equal(t, 0, g.CountTeam(character.Neutral))
	assert.Equal(t, 1, g.CountRow(character.Blue, character.Back))
	assert.Equal(t, 2, g.CountRow(character.Red, character.Front))
	assert.Equal(t, 2, g.CountType(character.Redshirt, character.Red))
	assert.Equal(t, 1, g.CountType(character.Building, character.Blue))
	assert.Equal(t, node, g.Node())
	assert.Equal(t, 4, g.IndexOf(m1))
}

func TestGet_BoundsChecked(t *testing.T) {
	a := newArena()
	m := testutil.Minion("m")
	b := a.add(m, character.Blue, character.Front)
	r := a.add(m, character.Red, character.Back)
	g := a.build()

	got, err := g.GetRow(character.Red, character.Back, 0)
	require.NoError(t, err)
	assert.Same(t, r, got)

	got, err = g.GetTeam(character.Blue, 0)
	require.NoError(t, err)
	assert.Same(t, b, got)

	_, err = g.GetRow(character.Red, character.Front, 0)
	assert.True(t, errors.Is(err, groups.ErrOutOfRange))
	_, err = g.Get(2)
	assert.ErrorIs(t, err, groups.ErrOutOfRange)
	_, err = g.GetTeam(character.Blue, -1)
	assert.ErrorIs(t, err, groups.ErrOutOfRange)
}

func TestDistance_CompressesEmptySlots(t *testing.T) {
	a := newArena()
	m := testutil.Minion("m")
	bb := a.add(m, character.Blue, character.Back)
	rb := a.add(m, character.Red, character.Back)
	g := a.build()
	// blue front and red front empty: 3 - 2 = 1
	assert.Equal(t, 1, g.Distance(bb, rb))

	bf := a.add(m, character.Blue, character.Front)
	g = a.build()
	assert.Equal(t, 2, g.Distance(bb, rb))
	assert.Equal(t, 1, g.Distance(bf, rb))
	assert.Equal(t, 1, g.Distance(bb, bf))
	assert.Equal(t, 0, g.Distance(bb, bb))
}

func TestDistance_Unreachable(t *testing.T) {
	a := newArena()
	m := testutil.Minion("m")
	x := a.add(m, character.Blue, character.Front)
	y := a.add(m, character.Red, character.Front)
	n := a.add(m, character.Neutral, character.Front)
	g := a.build()

	assert.Equal(t, groups.Unreachable, g.Distance(x, n))

	y.HP = 0
	assert.Equal(t, groups.Unreachable, g.Distance(x, y))
	y.HP = 1
	y.Node = "elsewhere"
	assert.Equal(t, groups.Unreachable, g.Distance(x, y))
}

func TestPick_EmptyAndUniform(t *testing.T) {
	a := newArena()
	m := testutil.Minion("m")
	r0 := a.add(m, character.Red, character.Front)
	r1 := a.add(m, character.Red, character.Front)
	g := a.build()

	assert.Nil(t, g.Pick(character.Blue, character.Front, dice.NewFixed(0)))
	assert.Same(t, r0, g.Pick(character.Red, character.Front, dice.NewFixed(0)))
	assert.Same(t, r1, g.Pick(character.Red, character.Front, dice.NewFixed(1)))
}

func TestPickClosestEnemy(t *testing.T) {
	m := testutil.Minion("m")

	t.Run("front row preferred when in range", func(t *testing.T) {
		a := newArena()
		c := a.add(testutil.Hero("ranger", 3), character.Blue, character.Back)
		front := a.add(m, character.Red, character.Front)
		a.add(m, character.Red, character.Back)
		assert.Same(t, front, a.build().PickClosestEnemy(c, -1, dice.NewFixed(0)))
	})

	t.Run("back row when enemy front empty", func(t *testing.T) {
		a := newArena()
		c := a.add(testutil.Hero("warrior", 1), character.Blue, character.Front)
		back := a.add(m, character.Red, character.Back)
		assert.Same(t, back, a.build().PickClosestEnemy(c, -1, dice.NewFixed(0)))
	})

	t.Run("screened by own front row", func(t *testing.T) {
		a := newArena()
		c := a.add(testutil.Hero("warrior", 1), character.Blue, character.Back)
		a.add(m, character.Blue, character.Front)
		a.add(m, character.Red, character.Front)
		assert.Nil(t, a.build().PickClosestEnemy(c, -1, dice.NewFixed(0)))
	})

	t.Run("screen penalty applies before enemy front check", func(t *testing.T) {
		a := newArena()
		c := a.add(testutil.Hero("mage", 2), character.Blue, character.Back)
		a.add(m, character.Blue, character.Front)
		front := a.add(m, character.Red, character.Front)
		assert.Same(t, front, a.build().PickClosestEnemy(c, -1, dice.NewFixed(0)))
	})

	t.Run("explicit zero range", func(t *testing.T) {
		a := newArena()
		c := a.add(testutil.Hero("mage", 5), character.Blue, character.Front)
		a.add(m, character.Red, character.Front)
		assert.Nil(t, a.build().PickClosestEnemy(c, 0, dice.NewFixed(0)))
	})

	t.Run("no enemies", func(t *testing.T) {
		a := newArena()
		c := a.add(testutil.Hero("mage", 5), character.Red, character.Front)
		assert.Nil(t, a.build().PickClosestEnemy(c, -1, dice.NewFixed(0)))
	})
}

func drawArena(t *rapid.T) (*arena, *groups.Groups) {
	a := newArena()
	classes := []*character.Class{testutil.Minion("m"), testutil.Hero("h", 2), testutil.Tower("t")}
	for i, c := range classes {
		c.SortIndex = i
	}
	n := rapid.IntRange(0, 12).Draw(t, "n")
	for i := 0; i < n; i++ {
		c := classes[rapid.IntRange(0, len(classes)-1).Draw(t, "class")]
		team := character.Team(rapid.IntRange(0, 2).Draw(t, "team"))
		row := character.Row(rapid.IntRange(0, 1).Draw(t, "row"))
		a.add(c, team, row)
	}
	return a, a.build()
}

func TestBuild_PartitionsCoverSnapshotProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		_, g := drawArena(t)
		total := 0
		for _, team := range []character.Team{character.Blue, character.Red, character.Neutral} {
			rows := g.CountRow(team, character.Back) + g.CountRow(team, character.Front)
			if rows != g.CountTeam(team) {
				t.Fatalf("rows %d != team count %d", rows, g.CountTeam(team))
			}
			for _, row := range []character.Row{character.Back, character.Front} {
				for _, c := range g.Members(team, row) {
					if c.Team != team || c.Row != row {
						t.Fatalf("character %d misfiled", c.ID)
					}
				}
			}
			total += g.CountTeam(team)
		}
		if total != g.Count() {
			t.Fatalf("partitions cover %d of %d", total, g.Count())
		}
	})
}

func TestDistance_SymmetricAndBoundedProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, g := drawArena(t)
		for _, x := range a.chars {
			for _, y := range a.chars {
				d := g.Distance(x, y)
				if d != g.Distance(y, x) {
					t.Fatalf("distance not symmetric for %d,%d", x.ID, y.ID)
				}
				if x.Team == character.Neutral || y.Team == character.Neutral {
					if d != groups.Unreachable {
						t.Fatalf("neutral distance %d", d)
					}
					continue
				}
				if d < 0 || d > 3 {
					t.Fatalf("distance %d out of [0,3]", d)
				}
				if x.PlaceIndex() == y.PlaceIndex() && d != 0 {
					t.Fatalf("same slot distance %d", d)
				}
			}
		}
	})
}

func TestNeutralHasNoEnemies(t *testing.T) {
	a := newArena()
	m := testutil.Minion("m")
	tower := testutil.Tower("tower")
	n1 := a.add(tower, character.Neutral, character.Back)
	a.add(m, character.Neutral, character.Front)
	b := a.add(m, character.Blue, character.Front)
	g := a.build()

	assert.Equal(t, 0, g.CountEnemies(n1))
	assert.Nil(t, g.PickClosestEnemy(n1, 5, dice.NewFixed(0)))
	assert.Equal(t, 0, g.CountEnemies(b))
}

func TestPickClosestEnemy_AlwaysEnemyProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, g := drawArena(t)
		seed := rapid.Int64().Draw(t, "seed")
		src := dice.NewSeededSource(seed)
		for _, c := range a.chars {
			target := g.PickClosestEnemy(c, -1, src)
			if target == nil {
				continue
			}
			if target.Team == c.Team || target.Team != c.EnemyTeam() {
				t.Fatalf("picked own-team character %d for %d", target.ID, c.ID)
			}
			if d := g.Distance(c, target); d > c.Range() {
				t.Fatalf("picked target at distance %d beyond range %d", d, c.Range())
			}
		}
	})
}
