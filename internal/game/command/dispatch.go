package command

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/combat"
	"github.com/cory-johannsen/textmoba/internal/game/skill"
	"github.com/cory-johannsen/textmoba/internal/game/targeting"
	"github.com/cory-johannsen/textmoba/internal/game/world"
)

// Rejection is an intent refused before anything changed. The turn does not advance.
type Rejection struct {
	Reason string
	// Hint is an optional follow-up line, such as the command's usage.
	Hint string
}

func (r *Rejection) Error() string {
	if r.Hint == "" {
		return r.Reason
	}
	return r.Reason + "\n" + r.Hint
}

func reject(format string, args ...any) *Rejection {
	return &Rejection{Reason: fmt.Sprintf(format, args...)}
}

func usage(cmd *Command, reason string) *Rejection {
	return &Rejection{Reason: reason, Hint: fmt.Sprintf("  %s %s", cmd.Name, cmd.Usage)}
}

// View names something the front-end should display after a command.
type View int

const (
	ViewHelp View = iota
	ViewLook
	ViewDirections
	ViewSkills
	ViewStatus
)

// Outcome describes what a successful command did.
type Outcome struct {
	Command *Command
	// Show lists what to display, in order.
	Show []View
	// Advanced is set when the command ended the player's turn.
	Advanced bool
	// Quit is set when the player asked to leave.
	Quit bool
}

type handlerFunc func(ctx context.Context, d *Dispatcher, cmd *Command, args []string) (Outcome, error)

// handlerMap is the single source of truth for command dispatch.
// To add a new command: add a Handler constant to commands.go AND add an entry here.
var handlerMap = map[string]handlerFunc{
	HandlerHelp:       showing(ViewHelp, false),
	HandlerLook:       showing(ViewLook, true),
	HandlerDirections: showing(ViewDirections, true),
	HandlerWait:       handleWait,
	HandlerGo:         handleGo,
	HandlerMove:       handleMove,
	HandlerAttack:     handleAttack,
	HandlerUse:        handleUse,
	HandlerSkills:     showing(ViewSkills, false),
	HandlerStatus:     showing(ViewStatus, false),
	HandlerQuit:       handleQuit,
}

// Handlers returns the handler identifiers the dispatcher can run.
func Handlers() []string {
	out := make([]string, 0, len(handlerMap))
	for h := range handlerMap {
		out = append(out, h)
	}
	return out
}

// Dispatcher validates player commands and forwards them to the engine as the
// player character's intents. Every accepted intent ends the player's turn.
type Dispatcher struct {
	eng      *combat.Engine
	registry *Registry
	logger   *zap.Logger
}

// NewDispatcher creates a Dispatcher for eng's player.
//
// Precondition: eng, registry and logger must be non-nil.
func NewDispatcher(eng *combat.Engine, registry *Registry, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{eng: eng, registry: registry, logger: logger}
}

// Registry returns the commands the dispatcher resolves against.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Execute runs one line of player input.
//
// Postcondition: Returns a *Rejection, with nothing changed, for unknown
// commands and invalid intents. A blank line yields an empty Outcome.
func (d *Dispatcher) Execute(ctx context.Context, line string) (Outcome, error) {
	parsed := Parse(line)
	if parsed.Command == "" {
		return Outcome{}, nil
	}
	d.logger.Debug("exec", zap.String("line", line))

	cmd, ok := d.registry.Resolve(parsed.Command)
	if !ok {
		return Outcome{}, reject("Command %q does not exist. Type \"h\" for help.", parsed.Command)
	}
	handler, ok := handlerMap[cmd.Handler]
	if !ok {
		return Outcome{}, fmt.Errorf("command %q has no handler %q", cmd.Name, cmd.Handler)
	}
	out, err := handler(ctx, d, cmd, parsed.Args)
	out.Command = cmd
	return out, err
}

// player returns the player character, rejecting the intent when it cannot act.
func (d *Dispatcher) player() (*character.Character, error) {
	p, ok := d.eng.Player()
	if !ok || !p.Alive() {
		return nil, reject("You are dead...")
	}
	return p, nil
}

// endTurn closes the player's turn.
func (d *Dispatcher) endTurn(ctx context.Context) Outcome {
	d.eng.NextTurn(ctx)
	return Outcome{Advanced: true, Show: []View{ViewLook}}
}

func showing(v View, needsLife bool) handlerFunc {
	return func(_ context.Context, d *Dispatcher, _ *Command, _ []string) (Outcome, error) {
		if needsLife {
			if _, err := d.player(); err != nil {
				return Outcome{}, err
			}
		}
		return Outcome{Show: []View{v}}, nil
	}
}

func handleQuit(context.Context, *Dispatcher, *Command, []string) (Outcome, error) {
	return Outcome{Quit: true}, nil
}

func handleWait(ctx context.Context, d *Dispatcher, _ *Command, _ []string) (Outcome, error) {
	return d.endTurn(ctx), nil
}

func handleGo(ctx context.Context, d *Dispatcher, cmd *Command, args []string) (Outcome, error) {
	p, err := d.player()
	if err != nil {
		return Outcome{}, err
	}
	if len(args) != 1 {
		return Outcome{}, usage(cmd, "I don't understand where you want to go. Type")
	}
	dir := strings.ToLower(args[0])
	dest, ok := d.eng.Destination(p.Node, world.Direction(dir))
	if !ok {
		return Outcome{}, reject("Unknown direction %q", dir)
	}
	d.eng.Move(p, dest)
	return d.endTurn(ctx), nil
}

func handleMove(ctx context.Context, d *Dispatcher, cmd *Command, args []string) (Outcome, error) {
	p, err := d.player()
	if err != nil {
		return Outcome{}, err
	}
	if len(args) != 1 {
		return Outcome{}, usage(cmd, "I don't understand where you want to go. Type")
	}
	row, ok := ParseRow(args[0])
	if !ok {
		return Outcome{}, usage(cmd, "I don't understand where you want to go. Type")
	}
	if row == p.Row {
		return Outcome{}, reject("You already are at the %s row.", row)
	}
	d.eng.Place(p, row)
	return d.endTurn(ctx), nil
}

// target resolves a character number on p's node to a live character.
func (d *Dispatcher) target(p *character.Character, arg, unparsable string) (*character.Character, error) {
	idx := ParseIndex(arg)
	if !idx.OK {
		return nil, reject("%s", unparsable)
	}
	t, ok := d.eng.Occupant(p, idx.Value)
	if !ok || !t.Alive() {
		return nil, reject("Invalid target.")
	}
	return t, nil
}

func handleAttack(ctx context.Context, d *Dispatcher, cmd *Command, args []string) (Outcome, error) {
	p, err := d.player()
	if err != nil {
		return Outcome{}, err
	}
	if len(args) != 1 {
		return Outcome{}, &Rejection{
			Reason: "I don't understand who you want to attack. Type",
			Hint:   fmt.Sprintf("  %s %s\nwhere <character-number> is the number displayed when you type \"look\".", cmd.Name, cmd.Usage),
		}
	}
	t, err := d.target(p, args[0], "I don't understand who you try to attack.")
	if err != nil {
		return Outcome{}, err
	}
	if t.Team == p.Team {
		return Outcome{}, reject("You cannot attack allies.")
	}
	if d.eng.Groups(p.Node).Distance(p, t) > p.Range() {
		return Outcome{}, reject("Target out of range.")
	}
	d.eng.Attack(p, t)
	return d.endTurn(ctx), nil
}

func handleUse(ctx context.Context, d *Dispatcher, cmd *Command, args []string) (Outcome, error) {
	p, err := d.player()
	if err != nil {
		return Outcome{}, err
	}
	if len(args) < 1 {
		return Outcome{}, usage(cmd, "I don't understand what you try to use. Type")
	}
	s, ok := p.Skill(args[0])
	if !ok {
		return Outcome{}, reject("You don't have a skill called %s", args[0])
	}
	if !s.Usable() {
		return Outcome{}, reject("You can't use this skill right now.")
	}

	g := d.eng.Groups(p.Node)
	var targets []*character.Character
	switch s.Shape() {
	case skill.Single:
		if len(args) != 2 {
			return Outcome{}, reject("This skill targets a single foe and so takes a <character-number> in parameter.")
		}
		t, err := d.target(p, args[1], "I don't understand who you're trying to attack.")
		if err != nil {
			return Outcome{}, err
		}
		if t.Team != s.TargetTeam() {
			return Outcome{}, reject("Target is in the wrong team.")
		}
		targets = targeting.SingleTarget(s, g, t)
		if len(targets) == 0 {
			return Outcome{}, reject("Target is out-of-range.")
		}
	case skill.AnyRow:
		var row character.Row
		if len(args) == 2 {
			row, ok = ParseRow(args[1])
		}
		if len(args) != 2 || !ok {
			return Outcome{}, reject("This skill targets a row so you need to choose between \"front\" or \"back\". The row must be in range.")
		}
		targets = targeting.RowTargets(s, g, row)
	case skill.NoTarget:
		return Outcome{}, reject("This skill cannot be used.")
	default:
		targets = targeting.Targets(s, g)
	}
	if len(targets) == 0 {
		return Outcome{}, reject("No targets in range.")
	}

	d.eng.UseSkillOn(s, targets)
	return d.endTurn(ctx), nil
}
