package ai_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/textmoba/internal/game/ai"
	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/dice"
	"github.com/cory-johannsen/textmoba/internal/game/groups"
	"github.com/cory-johannsen/textmoba/internal/game/world"
	"github.com/cory-johannsen/textmoba/internal/testutil"
)

type attack struct{ from, to character.ID }

// fakeWorld is a minimal World over a three-node lane: bf - lane - rf.
type fakeWorld struct {
	reg     *character.Registry
	graph   *world.Graph
	src     dice.Source
	attacks []attack
}

func newFakeWorld(t *testing.T) *fakeWorld {
	t.Helper()
	bf := world.NewNode("bf", "Blue Fonxus")
	bf.Fonxus = world.Marker{Team: character.Blue, Present: true}
	rf := world.NewNode("rf", "Red Fonxus")
	rf.Fonxus = world.Marker{Team: character.Red, Present: true}
	g, err := world.NewGraph(bf, world.NewNode("lane", "Lane"), rf)
	require.NoError(t, err)
	require.NoError(t, g.Connect("bf", "lane", []world.Direction{"top"}, []world.Direction{"blue"}))
	require.NoError(t, g.Connect("lane", "rf", []world.Direction{"red"}, []world.Direction{"top"}))
	return &fakeWorld{reg: character.NewRegistry(), graph: g, src: dice.NewFixed(0)}
}

func (w *fakeWorld) spawn(t *testing.T, c *character.Class, team character.Team, row character.Row, node string) *character.Character {
	t.Helper()
	ch := testutil.Place(w.reg, c, team, row, node)
	require.NoError(t, w.graph.Attach(node, ch.ID))
	return ch
}

func (w *fakeWorld) Character(id character.ID) (*character.Character, bool) { return w.reg.Get(id) }

func (w *fakeWorld) Groups(nodeID string) *groups.Groups {
	n, _ := w.graph.Node(nodeID)
	return groups.Build(nodeID, w.reg.Resolve(n.Occupants()))
}

func (w *fakeWorld) Destination(from string, dir world.Direction) (string, bool) {
	n, ok := w.graph.Destination(from, dir)
	if !ok {
		return "", false
	}
	return n.ID, true
}

func (w *fakeWorld) Base(team character.Team) string {
	if n, ok := w.graph.Fonxus(team); ok {
		return n.ID
	}
	return ""
}

func (w *fakeWorld) Move(c *character.Character, nodeID string) {
	w.graph.Detach(c.Node, c.ID)
	c.Node = nodeID
	c.Row = c.Class.DefaultRow
	_ = w.graph.Attach(nodeID, c.ID)
}

func (w *fakeWorld) Place(c *character.Character, row character.Row) { c.Row = row }

func (w *fakeWorld) Attack(attacker, target *character.Character) {
	w.attacks = append(w.attacks, attack{attacker.ID, target.ID})
	target.HP = max(0, target.HP-attacker.Damage())
}

func (w *fakeWorld) Rand() dice.Source { return w.src }

func TestPolicy_SealedSet(t *testing.T) {
	var policies []ai.Policy
	policies = append(policies, ai.NewMinion(character.Top), ai.NewTower(), ai.NewHero(character.Bot, zaptest.NewLogger(t)))
	assert.Len(t, policies, 3)
}

func TestMinion_AdvancesTowardEnemyLabel(t *testing.T) {
	w := newFakeWorld(t)
	m := w.spawn(t, testutil.Minion("blueshirt"), character.Blue, character.Front, "lane")
	p := ai.NewMinion(character.Top)

	p.Play(w, m)
	assert.Equal(t, "rf", m.Node)
	assert.Empty(t, w.attacks)
}

func TestMinion_FallsBackToLaneLabel(t *testing.T) {
	w := newFakeWorld(t)
	m := w.spawn(t, testutil.Minion("blueshirt"), character.Blue, character.Front, "bf")
	ai.NewMinion(character.Top).Play(w, m)
	assert.Equal(t, "lane", m.Node)

	stuck := w.spawn(t, testutil.Minion("blueshirt"), character.Blue, character.Front, "bf")
	ai.NewMinion(character.Bot).Play(w, stuck)
	assert.Equal(t, "bf", stuck.Node, "no bot label from bf")
}

func TestMinion_AttacksAndKeepsTarget(t *testing.T) {
	w := newFakeWorld(t)
	minion := testutil.Minion("m")
	self := w.spawn(t, minion, character.Blue, character.Front, "lane")
	first := w.spawn(t, minion, character.Red, character.Front, "lane")
	second := w.spawn(t, minion, character.Red, character.Front, "lane")
	w.src = dice.NewFixed(1, 0)

	p := ai.NewMinion(character.Top)
	p.Play(w, self)
	p.Play(w, self)
	assert.Equal(t, []attack{{self.ID, second.ID}, {self.ID, second.ID}}, w.attacks)
	id, ok := p.Target()
	assert.True(t, ok)
	assert.Equal(t, second.ID, id)

	second.HP = 0
	p.Play(w, self)
	assert.Equal(t, attack{self.ID, first.ID}, w.attacks[2], "dead target is replaced")
	assert.Equal(t, "lane", self.Node)
}

func TestMinion_EnemyOutOfReachHoldsPosition(t *testing.T) {
	w := newFakeWorld(t)
	self := w.spawn(t, testutil.Minion("m"), character.Blue, character.Back, "lane")
	w.spawn(t, testutil.Minion("m"), character.Blue, character.Front, "lane")
	w.spawn(t, testutil.Minion("m"), character.Red, character.Front, "lane")

	ai.NewMinion(character.Top).Play(w, self)
	assert.Empty(t, w.attacks)
	assert.Equal(t, "lane", self.Node)
}

func TestPolicies_DeadOrDetachedNoop(t *testing.T) {
	w := newFakeWorld(t)
	m := w.spawn(t, testutil.Minion("m"), character.Blue, character.Front, "lane")
	m.HP = 0
	ai.NewMinion(character.Top).Play(w, m)
	ai.NewTower().Play(w, m)
	ai.NewHero(character.Top, zaptest.NewLogger(t)).Play(context.Background(), w, m)
	assert.Equal(t, "lane", m.Node)

	detached := testutil.Place(w.reg, testutil.Minion("m"), character.Blue, character.Front, "")
	ai.NewMinion(character.Top).Play(w, detached)
	assert.Empty(t, detached.Node)
	assert.Empty(t, w.attacks)
}

func TestTower_ForgetsWhenClear(t *testing.T) {
	w := newFakeWorld(t)
	tower := w.spawn(t, testutil.Tower("tower"), character.Red, character.Back, "lane")
	enemy := w.spawn(t, testutil.Minion("m"), character.Blue, character.Front, "lane")
	p := ai.NewTower()

	p.Play(w, tower)
	require.Equal(t, []attack{{tower.ID, enemy.ID}}, w.attacks)
	_, ok := p.Target()
	assert.True(t, ok)

	w.graph.Detach("lane", enemy.ID)
	enemy.Node = "bf"
	p.Play(w, tower)
	_, ok = p.Target()
	assert.False(t, ok)
	assert.Equal(t, "lane", tower.Node)
	assert.Len(t, w.attacks, 1)
}

func TestPolicies_NeutralNeverAttacks(t *testing.T) {
	w := newFakeWorld(t)
	tower := w.spawn(t, testutil.Tower("tower"), character.Neutral, character.Back, "lane")
	minion := w.spawn(t, testutil.Minion("m"), character.Neutral, character.Front, "lane")
	hero := w.spawn(t, testutil.Hero("warrior", 1), character.Neutral, character.Front, "lane")

	tp := ai.NewTower()
	tp.Play(w, tower)
	ai.NewMinion(character.Top).Play(w, minion)
	ai.NewHero(character.Top, zaptest.NewLogger(t)).Play(context.Background(), w, hero)

	assert.Empty(t, w.attacks)
	_, ok := tp.Target()
	assert.False(t, ok)
}

func TestHero_RetreatsWhenLow(t *testing.T) {
	w := newFakeWorld(t)
	hero := w.spawn(t, testutil.Hero("warrior", 1), character.Blue, character.Front, "lane")
	w.spawn(t, testutil.Minion("m"), character.Red, character.Front, "lane")
	p := ai.NewHero(character.Top, zaptest.NewLogger(t))

	hero.HP = hero.MaxHP()/4 - 1
	p.Play(context.Background(), w, hero)
	assert.Equal(t, ai.StateBackToBase, p.State())
	assert.Equal(t, "bf", hero.Node)
}

func TestHero_BackToBaseAtBaseFightsBack(t *testing.T) {
	w := newFakeWorld(t)
	hero := w.spawn(t, testutil.Hero("warrior", 1), character.Blue, character.Front, "bf")
	enemy := w.spawn(t, testutil.Minion("m"), character.Red, character.Front, "bf")
	p := ai.NewHero(character.Top, zaptest.NewLogger(t))
	require.True(t, p.Fire(context.Background(), ai.EventRetreat))

	hero.HP = 10
	p.Play(context.Background(), w, hero)
	assert.Equal(t, "bf", hero.Node)
	assert.Equal(t, []attack{{hero.ID, enemy.ID}}, w.attacks)
}

func TestHero_ReturnsToLaneWhenRestored(t *testing.T) {
	w := newFakeWorld(t)
	hero := w.spawn(t, testutil.Hero("mage", 2), character.Blue, character.Back, "bf")
	w.spawn(t, testutil.Minion("m"), character.Blue, character.Front, "bf")
	p := ai.NewHero(character.Top, zaptest.NewLogger(t))
	require.True(t, p.Fire(context.Background(), ai.EventRetreat))
	assert.False(t, p.Fire(context.Background(), ai.EventRetreat), "already retreating")

	p.Play(context.Background(), w, hero)
	assert.Equal(t, ai.StatePushLane, p.State())
	assert.Equal(t, "lane", hero.Node, "advances behind own minions")
}

func TestHero_PushLaneWithoutSupportRetreats(t *testing.T) {
	w := newFakeWorld(t)
	hero := w.spawn(t, testutil.Hero("mage", 2), character.Blue, character.Back, "lane")
	w.spawn(t, testutil.Minion("m"), character.Red, character.Front, "lane")
	p := ai.NewHero(character.Top, zaptest.NewLogger(t))

	p.Play(context.Background(), w, hero)
	assert.Equal(t, ai.StatePushLane, p.State())
	assert.Equal(t, "bf", hero.Node)
	assert.Empty(t, w.attacks)
}

func TestHero_MeleeStepsForwardThenAttacks(t *testing.T) {
	w := newFakeWorld(t)
	hero := w.spawn(t, testutil.Hero("warrior", 1), character.Blue, character.Back, "lane")
	w.spawn(t, testutil.Minion("m"), character.Blue, character.Front, "lane")
	enemy := w.spawn(t, testutil.Minion("m"), character.Red, character.Front, "lane")
	p := ai.NewHero(character.Top, zaptest.NewLogger(t))

	p.Play(context.Background(), w, hero)
	assert.Equal(t, character.Front, hero.Row)
	assert.Empty(t, w.attacks)

	p.Play(context.Background(), w, hero)
	assert.Equal(t, []attack{{hero.ID, enemy.ID}}, w.attacks)
}

func TestHero_FollowPlayerIsPassive(t *testing.T) {
	w := newFakeWorld(t)
	hero := w.spawn(t, testutil.Hero("warrior", 1), character.Blue, character.Front, "lane")
	w.spawn(t, testutil.Minion("m"), character.Red, character.Front, "lane")
	p := ai.NewHero(character.Top, zaptest.NewLogger(t))
	require.True(t, p.Fire(context.Background(), ai.EventFollow))

	hero.HP--
	p.Play(context.Background(), w, hero)
	assert.Equal(t, ai.StateFollowPlayer, p.State())
	assert.Empty(t, w.attacks)
	assert.Equal(t, "lane", hero.Node)
}

func TestMinion_AttacksOnlyEnemiesProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := newFakeWorld(t)
		w.src = dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))
		self := w.spawn(t, testutil.Minion("m"), character.Blue, character.Front, "lane")
		n := rapid.IntRange(0, 6).Draw(rt, "n")
		for i := 0; i < n; i++ {
			team := character.Team(rapid.IntRange(0, 1).Draw(rt, "team"))
			row := character.Row(rapid.IntRange(0, 1).Draw(rt, "row"))
			w.spawn(t, testutil.Minion("m"), team, row, "lane")
		}
		ai.NewMinion(character.Top).Play(w, self)
		for _, a := range w.attacks {
			target, _ := w.reg.Get(a.to)
			if target.Team != character.Red {
				rt.Fatalf("attacked ally %d", a.to)
			}
		}
	})
}
