package console

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/textmoba/internal/game/combat"
	"github.com/cory-johannsen/textmoba/internal/game/command"
	"github.com/cory-johannsen/textmoba/internal/game/world"
)

// Renderer formats engine views as terminal text. Every method returns lines
// joined by "\n" with no trailing newline.
type Renderer struct {
	p Palette
}

// NewRenderer creates a Renderer, colored when color is set.
func NewRenderer(color bool) *Renderer {
	return &Renderer{p: Palette{Enabled: color}}
}

// Help lists the registry's commands by category.
func (r *Renderer) Help(reg *command.Registry) string {
	lines := []string{r.p.Colorize(BrightWhite, "Available commands:")}
	for _, sec := range reg.Sections() {
		lines = append(lines, r.p.Colorf(BrightYellow, "  %s:", sec.Label))
		for _, cmd := range sec.Commands {
			names := strings.Join(append([]string{cmd.Name}, cmd.Aliases...), ", ")
			if cmd.Usage != "" {
				names += " " + cmd.Usage
			}
			lines = append(lines, "    "+r.p.Colorize(Green, names))
			lines = append(lines, "      "+cmd.Help)
		}
	}
	return strings.Join(lines, "\n")
}

// Node describes the node the player stands on and everyone there.
func (r *Renderer) Node(v combat.NodeView) string {
	lines := []string{
		"You are at " + r.p.Colorize(BrightYellow, v.Name) + ".",
		"Here, there is",
	}
	for _, c := range v.Characters {
		name := r.p.Colorize(TeamColor(c.Team), c.Name)
		if c.Self {
			name = r.p.Colorize(Bold, name)
		}
		lines = append(lines, fmt.Sprintf("  %d: [%s] %s (lvl %d, %s)%s",
			c.Index, c.Row, name, c.Level, r.health(c.HP, c.MaxHP),
			r.p.Colorf(Dim, " dist: %d", c.Distance)))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) health(hp, maxHP int) string {
	color := Green
	switch {
	case hp*4 <= maxHP:
		color = BrightRed
	case hp*2 <= maxHP:
		color = Yellow
	}
	return r.p.Colorf(color, "%d / %d", hp, maxHP)
}

// Directions lists the ways out of the player's node.
func (r *Renderer) Directions(dirs []combat.DirectionView) string {
	if len(dirs) == 0 {
		return r.p.Colorize(Dim, "There is no way out of here.")
	}
	lines := []string{r.p.Colorize(Cyan, "From here, you can go toward:")}
	for _, d := range dirs {
		lines = append(lines, fmt.Sprintf("  %s: toward %s",
			r.p.Colorize(BrightCyan, joinDirections(d.Labels)), d.Name))
	}
	return strings.Join(lines, "\n")
}

func joinDirections(ds []world.Direction) string {
	ss := make([]string, len(ds))
	for i, d := range ds {
		ss[i] = string(d)
	}
	return strings.Join(ss, ", ")
}

// Skills lists the player's skills with their cost and cooldown.
func (r *Renderer) Skills(skills []combat.SkillView) string {
	if len(skills) == 0 {
		return r.p.Colorize(Dim, "You know no skills.")
	}
	lines := []string{r.p.Colorize(BrightWhite, "Your skills:")}
	for _, s := range skills {
		state := r.p.Colorize(Green, "ready")
		if !s.Usable {
			state = r.p.Colorf(BrightBlack, "cooldown %d", s.Cooldown)
			if s.Cooldown == 0 {
				state = r.p.Colorize(BrightBlack, "not enough mana")
			}
		}
		lines = append(lines, fmt.Sprintf("  %s %s (lvl %d, %s, range %d, mana %d): %s",
			r.p.Colorize(BrightWhite, s.ID), s.Name, s.Level, s.Shape, s.Range, s.ManaCost, state))
	}
	return strings.Join(lines, "\n")
}

// Status summarizes the player character.
func (r *Renderer) Status(s combat.StatusView) string {
	xp := fmt.Sprintf("XP %d / %d", s.XP, s.NextLevel)
	if s.NextLevel == 0 {
		xp = fmt.Sprintf("XP %d", s.XP)
	}
	lines := []string{
		fmt.Sprintf("%s, level %d, %s row at %s",
			r.p.Colorize(TeamColor(s.Team), s.Name), s.Level, s.Row, s.NodeName),
		fmt.Sprintf("HP %s   Mana %s   %s",
			r.health(s.HP, s.MaxHP), r.p.Colorf(BrightBlue, "%d / %d", s.Mana, s.MaxMana), xp),
	}
	if !s.Alive {
		lines = append(lines, r.p.Colorize(BrightRed, "You are dead..."))
	}
	return strings.Join(lines, "\n")
}

// Event formats one narrated event.
func (r *Renderer) Event(ev combat.Event) string {
	switch ev.Kind {
	case combat.EventKill:
		return r.p.Colorize(BrightRed, ev.Narrative)
	case combat.EventDamage, combat.EventAttack:
		return r.p.Colorize(Red, ev.Narrative)
	case combat.EventHeal:
		return r.p.Colorize(Green, ev.Narrative)
	case combat.EventXP, combat.EventLevelUp:
		return r.p.Colorize(BrightYellow, ev.Narrative)
	case combat.EventWave:
		return r.p.Colorize(Yellow, ev.Narrative)
	case combat.EventTurnEnd:
		return r.p.Colorize(Dim, ev.Narrative)
	default:
		return ev.Narrative
	}
}

// Rejection explains why a command was refused.
func (r *Renderer) Rejection(rej *command.Rejection) string {
	if rej.Hint == "" {
		return r.p.Colorize(Red, rej.Reason)
	}
	return r.p.Colorize(Red, rej.Reason) + "\n" + rej.Hint
}

// Prompt is shown before each line of input.
func (r *Renderer) Prompt(s combat.StatusView) string {
	return r.p.Colorf(BrightCyan, "[lvl %d  %d/%d hp  %d/%d mana]> ",
		s.Level, s.HP, s.MaxHP, s.Mana, s.MaxMana)
}
