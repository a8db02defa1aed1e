package combat

import (
	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/skill"
	"github.com/cory-johannsen/textmoba/internal/game/world"
)

// CharacterView is one line of a node description.
type CharacterView struct {
	// Index is the number commands use to designate the character.
	Index int
	ID    character.ID
	Name  string
	Type  character.Type
	Team  character.Team
	Row   character.Row
	// Level is 1-based, as displayed.
	Level   int
	HP      int
	MaxHP   int
	Mana    int
	MaxMana int
	// Distance is the lane distance from the viewer.
	Distance int
	Self     bool
}

// NodeView describes a node as seen by a character standing on it.
type NodeView struct {
	ID         string
	Name       string
	Characters []CharacterView
}

// NodeView describes viewer's node.
//
// Postcondition: Returns a view with no characters if viewer stands nowhere.
func (e *Engine) NodeView(viewer *character.Character) NodeView {
	v := NodeView{ID: viewer.Node}
	n, ok := e.graph.Node(viewer.Node)
	if !ok {
		return v
	}
	v.Name = n.Name
	g := e.Groups(n.ID)
	for i, c := range g.All() {
		v.Characters = append(v.Characters, CharacterView{
			Index:    i,
			ID:       c.ID,
			Name:     DisplayName(c),
			Type:     c.Type(),
			Team:     c.Team,
			Row:      c.Row,
			Level:    c.Level + 1,
			HP:       c.HP,
			MaxHP:    c.MaxHP(),
			Mana:     c.Mana,
			MaxMana:  c.MaxMana(),
			Distance: g.Distance(viewer, c),
			Self:     c.ID == viewer.ID,
		})
	}
	return v
}

// Occupant resolves the character numbered index in viewer's NodeView.
func (e *Engine) Occupant(viewer *character.Character, index int) (*character.Character, bool) {
	c, err := e.Groups(viewer.Node).Get(index)
	if err != nil {
		return nil, false
	}
	return c, true
}

// DirectionView is one way out of a node.
type DirectionView struct {
	Labels []world.Direction
	To     string
	Name   string
}

// Directions lists the paths out of viewer's node, by destination ID.
func (e *Engine) Directions(viewer *character.Character) []DirectionView {
	n, ok := e.graph.Node(viewer.Node)
	if !ok {
		return nil
	}
	var out []DirectionView
	for _, p := range n.Paths() {
		name := p.To
		if dest, ok := e.graph.Node(p.To); ok {
			name = dest.Name
		}
		out = append(out, DirectionView{Labels: p.Directions, To: p.To, Name: name})
	}
	return out
}

// SkillView is the status line of one learned skill.
type SkillView struct {
	ID       string
	Name     string
	Level    int
	Shape    skill.Shape
	Range    int
	ManaCost int
	Cooldown int
	Usable   bool
}

// SkillStatus lists viewer's skills in learning order.
func (e *Engine) SkillStatus(viewer *character.Character) []SkillView {
	out := make([]SkillView, 0, len(viewer.Skills))
	for _, s := range viewer.Skills {
		out = append(out, SkillView{
			ID:       s.ID(),
			Name:     s.Name(),
			Level:    s.Level,
			Shape:    s.Shape(),
			Range:    s.Range(),
			ManaCost: s.ManaCost(),
			Cooldown: s.Cooldown,
			Usable:   s.Usable(),
		})
	}
	return out
}

// StatusView summarizes one character.
type StatusView struct {
	Name  string
	Team  character.Team
	Level int
	XP    int
	// NextLevel is the xp the next level needs, or 0 when no level follows.
	NextLevel int
	HP        int
	MaxHP     int
	Mana      int
	MaxMana   int
	Row       character.Row
	NodeName  string
	Alive     bool
}

// Status describes c for the status command.
func (e *Engine) Status(c *character.Character) StatusView {
	v := StatusView{
		Name:      DisplayName(c),
		Team:      c.Team,
		Level:     c.Level + 1,
		XP:        c.XP,
		NextLevel: e.rules.nextLevel(c),
		HP:        c.HP,
		MaxHP:     c.MaxHP(),
		Mana:      c.Mana,
		MaxMana:   c.MaxMana(),
		Row:       c.Row,
		NodeName:  c.Node,
		Alive:     c.Alive(),
	}
	if n, ok := e.graph.Node(c.Node); ok {
		v.NodeName = n.Name
	}
	return v
}
