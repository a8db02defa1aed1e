// Package console runs a match as a line-oriented terminal session: it reads
// commands, forwards them to the dispatcher and prints what the player sees.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/textmoba/internal/game/combat"
	"github.com/cory-johannsen/textmoba/internal/game/command"
)

// Options configures a Console.
type Options struct {
	// MOTD is printed once when the session starts.
	MOTD string
	// Color enables ANSI colors.
	Color bool
}

// Console is a server.Service driving one match from a reader and a writer.
type Console struct {
	eng    *combat.Engine
	disp   *command.Dispatcher
	render *Renderer
	in     io.Reader
	out    io.Writer
	motd   string
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	mu      sync.Mutex
	pending []combat.Event
}

// New creates a Console and subscribes it to eng's events.
//
// Precondition: eng must have a player; every argument must be non-nil.
func New(eng *combat.Engine, disp *command.Dispatcher, in io.Reader, out io.Writer, opts Options, logger *zap.Logger) *Console {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Console{
		eng:    eng,
		disp:   disp,
		render: NewRenderer(opts.Color),
		in:     in,
		out:    out,
		motd:   opts.MOTD,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	eng.Subscribe(c.observe)
	return c
}

// observe queues events the player witnesses from where they stand.
func (c *Console) observe(ev combat.Event) {
	p, ok := c.eng.Player()
	if !ok || !ev.VisibleFrom(p.Node) {
		return
	}
	c.mu.Lock()
	c.pending = append(c.pending, ev)
	c.mu.Unlock()
}

// Start greets the player and runs the read-eval-print loop until input ends,
// the player quits or Stop is called.
//
// Postcondition: Returns nil on a clean end of session, or a wrapped read error.
func (c *Console) Start() error {
	defer c.Stop()

	if c.motd != "" {
		c.println(c.motd)
	}
	c.show(command.ViewLook)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go c.read(lines, readErr)

	for {
		c.prompt()
		select {
		case <-c.done:
			return nil
		case err := <-readErr:
			c.println("")
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			c.logger.Info("input closed")
			return nil
		case line := <-lines:
			if c.handle(line) {
				c.println("Goodbye.")
				return nil
			}
		}
	}
}

// Stop ends the session. It is safe to call more than once.
func (c *Console) Stop() {
	c.once.Do(func() {
		c.cancel()
		close(c.done)
	})
}

func (c *Console) read(lines chan<- string, readErr chan<- error) {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-c.done:
			return
		}
	}
	readErr <- scanner.Err()
}

// handle executes one input line and prints its results. It reports whether
// the player asked to quit.
func (c *Console) handle(line string) bool {
	out, err := c.disp.Execute(c.ctx, line)
	c.flush()

	var rej *command.Rejection
	switch {
	case errors.As(err, &rej):
		c.println(c.render.Rejection(rej))
		return false
	case err != nil:
		c.logger.Error("command failed", zap.String("line", line), zap.Error(err))
		c.println(c.render.p.Colorize(Red, "Something went wrong."))
		return false
	}

	for _, v := range out.Show {
		c.show(v)
	}
	return out.Quit
}

// flush prints and clears the queued events.
func (c *Console) flush() {
	c.mu.Lock()
	events := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, ev := range events {
		c.println(c.render.Event(ev))
	}
}

func (c *Console) show(v command.View) {
	if v == command.ViewHelp {
		c.println(c.render.Help(c.disp.Registry()))
		return
	}
	p, ok := c.eng.Player()
	if !ok {
		return
	}
	switch v {
	case command.ViewLook:
		if !p.Alive() {
			c.println("You are dead...")
			return
		}
		c.println(c.render.Node(c.eng.NodeView(p)))
	case command.ViewDirections:
		c.println(c.render.Directions(c.eng.Directions(p)))
	case command.ViewSkills:
		c.println(c.render.Skills(c.eng.SkillStatus(p)))
	case command.ViewStatus:
		c.println(c.render.Status(c.eng.Status(p)))
	}
}

func (c *Console) prompt() {
	if p, ok := c.eng.Player(); ok {
		_, _ = io.WriteString(c.out, c.render.Prompt(c.eng.Status(p)))
	}
}

func (c *Console) println(s string) {
	_, _ = io.WriteString(c.out, s+"\n")
}
