package dialogue

import (
	"fmt"
	"log"

	"github.com/samdwyer/officehub/internal/game"
)

// Script variables shared with the dialogue stories.
const (
	VarDialogText    = "dialogText"
	VarStartMinigame = "startMinigame"
)

// Engine starts dialogue script sessions.
type Engine interface {
	Start(ref string, vars map[string]any) (Session, error)
}

// Session is one running dialogue script.
type Session interface {
	// Continue returns the next line, or false when the script is waiting
	// for a choice or has ended.
	Continue() (string, bool)
	Choices() []string
	Choose(i int) error
	SetVariable(name string, value any)
	Variable(name string) (any, bool)
	// Observe calls fn whenever the named variable changes value.
	Observe(name string, fn func(value any))
}

// Controller plays a conversation started by the Coordinator and reports
// its end or its minigame request back to it.
type Controller struct {
	engine Engine
	coord  *Coordinator
	logger *log.Logger

	session Session
	npc     NPC
	lines   []string
	choices []string
}

// NewController wires a controller to coord's Started event and to the
// orchestrator's dialogue flag.
func NewController(engine Engine, coord *Coordinator, events *game.Events, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	c := &Controller{
		engine: engine,
		coord:  coord,
		logger: logger,
	}
	coord.Started.Subscribe(c.begin)
	events.DialogueChanged.Subscribe(func(inDialogue bool) {
		if !inDialogue {
			c.hide()
		}
	})
	return c
}

// Visible reports whether a conversation is on screen.
func (c *Controller) Visible() bool { return c.session != nil }

// NPC returns the character being talked to.
func (c *Controller) NPC() NPC { return c.npc }

// Lines returns the lines shown since the last choice.
func (c *Controller) Lines() []string { return c.lines }

// Choices returns the options on offer. Empty means the story has ended.
func (c *Controller) Choices() []string { return c.choices }

// Choose picks option i and plays the story forward.
func (c *Controller) Choose(i int) error {
	if c.session == nil {
		return nil
	}
	if i < 0 || i >= len(c.choices) {
		return fmt.Errorf("choice %d out of range [0,%d)", i, len(c.choices))
	}
	if err := c.session.Choose(i); err != nil {
		return fmt.Errorf("choose %d: %w", i, err)
	}
	// The choice may have handed off to the minigame.
	if c.session == nil {
		return nil
	}
	c.lines = nil
	c.advance()
	return nil
}

// Advance closes a finished conversation. It does nothing while choices
// are still on offer.
func (c *Controller) Advance() {
	if c.session == nil || len(c.choices) > 0 {
		return
	}
	c.coord.EndDialogue()
}

func (c *Controller) begin(s Start) {
	session, err := c.engine.Start(s.Script, map[string]any{VarDialogText: s.Message})
	if err != nil {
		c.logger.Printf("dialogue: start script %q for %s: %v", s.Script, s.NPC.ID(), err)
		c.coord.EndDialogue()
		return
	}

	npc := s.NPC
	session.Observe(VarStartMinigame, func(value any) {
		if start, ok := value.(bool); ok && start {
			c.coord.RequestSubEvent(npc)
		}
	})

	c.session = session
	c.npc = npc
	c.lines = nil
	c.advance()
}

func (c *Controller) advance() {
	for c.session != nil {
		line, ok := c.session.Continue()
		if !ok {
			break
		}
		c.lines = append(c.lines, line)
	}
	if c.session == nil {
		return
	}
	c.choices = c.session.Choices()
}

func (c *Controller) hide() {
	c.session = nil
	c.npc = nil
	c.lines = nil
	c.choices = nil
}
