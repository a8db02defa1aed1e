package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/combat"
	"github.com/cory-johannsen/textmoba/internal/game/command"
	"github.com/cory-johannsen/textmoba/internal/game/skill"
	"github.com/cory-johannsen/textmoba/internal/game/world"
)

func TestRenderer_Node(t *testing.T) {
	r := NewRenderer(true)
	v := combat.NodeView{
		ID:   "bf",
		Name: "Blue Fonxus",
		Characters: []combat.CharacterView{
			{Index: 0, Name: "Fonxus (blue)", Team: character.Blue, Row: character.Back, Level: 1, HP: 1000, MaxHP: 1000},
			{Index: 1, Name: "Ranger (blue) (you)", Team: character.Blue, Row: character.Front, Level: 2, HP: 20, MaxHP: 95, Distance: 1, Self: true},
		},
	}
	out := StripANSI(r.Node(v))

	assert.Equal(t, strings.Join([]string{
		"You are at Blue Fonxus.",
		"Here, there is",
		"  0: [back] Fonxus (blue) (lvl 1, 1000 / 1000) dist: 0",
		"  1: [front] Ranger (blue) (you) (lvl 2, 20 / 95) dist: 1",
	}, "\n"), out)
}

func TestRenderer_HealthColor(t *testing.T) {
	r := NewRenderer(true)
	assert.Equal(t, Green+"80 / 100"+Reset, r.health(80, 100))
	assert.Equal(t, Yellow+"50 / 100"+Reset, r.health(50, 100))
	assert.Equal(t, BrightRed+"25 / 100"+Reset, r.health(25, 100))
}

func TestRenderer_Directions(t *testing.T) {
	r := NewRenderer(false)
	assert.Equal(t, "There is no way out of here.", r.Directions(nil))
	out := r.Directions([]combat.DirectionView{
		{Labels: []world.Direction{"red", "top"}, To: "top_blue", Name: "Top Lane, Blue Tower"},
	})
	assert.Equal(t, "From here, you can go toward:\n  red, top: toward Top Lane, Blue Tower", out)
}

func TestRenderer_Skills(t *testing.T) {
	r := NewRenderer(false)
	assert.Equal(t, "You know no skills.", r.Skills(nil))
	out := r.Skills([]combat.SkillView{
		{ID: "snipe", Name: "Snipe", Level: 1, Shape: skill.Single, Range: 4, ManaCost: 10, Usable: true},
		{ID: "bomb", Name: "Bomb", Level: 1, Shape: skill.AnyRow, Range: 3, ManaCost: 20, Cooldown: 2},
		{ID: "heal", Name: "Heal", Level: 1, Shape: skill.Single, Range: 3, ManaCost: 15},
	})
	assert.Contains(t, out, "  snipe Snipe (lvl 1, single, range 4, mana 10): ready")
	assert.Contains(t, out, "  bomb Bomb (lvl 1, any_row, range 3, mana 20): cooldown 2")
	assert.Contains(t, out, "  heal Heal (lvl 1, single, range 3, mana 15): not enough mana")
}

func TestRenderer_Status(t *testing.T) {
	r := NewRenderer(false)
	s := combat.StatusView{
		Name: "Ranger (blue) (you)", Team: character.Blue, Level: 2, XP: 15, NextLevel: 70,
		HP: 90, MaxHP: 95, Mana: 10, MaxMana: 50, Row: character.Back, NodeName: "Blue Fonxus", Alive: true,
	}
	assert.Equal(t,
		"Ranger (blue) (you), level 2, back row at Blue Fonxus\nHP 90 / 95   Mana 10 / 50   XP 15 / 70",
		r.Status(s))

	s.NextLevel, s.Alive = 0, false
	out := r.Status(s)
	assert.Contains(t, out, "XP 15\n")
	assert.True(t, strings.HasSuffix(out, "You are dead..."))
}

func TestRenderer_Event(t *testing.T) {
	r := NewRenderer(true)
	kill := combat.Event{Kind: combat.EventKill, Narrative: "A killed B."}
	assert.Equal(t, BrightRed+"A killed B."+Reset, r.Event(kill))
	spawn := combat.Event{Kind: combat.EventSpawn, Narrative: "x"}
	assert.Equal(t, "x", r.Event(spawn))
}

func TestRenderer_Rejection(t *testing.T) {
	r := NewRenderer(false)
	assert.Equal(t, "Invalid target.", r.Rejection(&command.Rejection{Reason: "Invalid target."}))
	assert.Equal(t, "Bad.\n  go <direction>", r.Rejection(&command.Rejection{Reason: "Bad.", Hint: "  go <direction>"}))
}

func TestRenderer_HelpListsEveryCommand(t *testing.T) {
	reg := command.DefaultRegistry()
	out := NewRenderer(false).Help(reg)
	for _, cmd := range reg.Commands() {
		assert.Contains(t, out, cmd.Help, cmd.Name)
	}
	assert.Less(t, strings.Index(out, "Movement:"), strings.Index(out, "System:"))
}
