// Package dialogue tracks per-NPC conversation state and bridges dialogue
// script signals into run-state requests.
package dialogue

import (
	"context"
	"log"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/cases"

	"github.com/samdwyer/officehub/internal/event"
	"github.com/samdwyer/officehub/internal/game"
	"github.com/samdwyer/officehub/internal/telemetry"
)

// RunState is the part of the run-state orchestrator the coordinator drives.
type RunState interface {
	Level() game.LevelState
	InDialogue() bool
	EnterDialogue() bool
	ExitDialogue()
	SetLevelState(target game.LevelState)
	SetMenuState(target game.MenuScreen)
}

// NPC is a live, talkable character placed in the hub.
type NPC interface {
	ID() string
	SetScript(ref string)
	SetAssignedMessage(msg string)
}

// Scripts names the two content variants handed to NPCs.
type Scripts struct {
	Fresh     string
	Completed string
}

// Handle identifies one live registration. The zero Handle is never bound.
type Handle uint64

// Record is a snapshot of one NPC's completion state.
type Record struct {
	ID        string
	Completed bool
	Message   string
	Bound     bool
}

// Start is published when a conversation begins.
type Start struct {
	NPC     NPC
	Handle  Handle
	Message string
	Script  string
}

type record struct {
	id        string
	completed bool
	message   string
	handle    Handle
}

// Coordinator owns the NPC completion records. Ids compare with Unicode
// case folding. It is not safe for concurrent use.
type Coordinator struct {
	run     RunState
	scripts Scripts
	logger  *log.Logger
	fold    cases.Caser

	records map[string]*record
	live    map[Handle]NPC
	next    Handle

	subEventRequested bool

	// Started fires after the orchestrator accepted a conversation.
	Started *event.Channel[Start]
}

// NewCoordinator creates a coordinator with no records.
func NewCoordinator(run RunState, scripts Scripts, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.Default()
	}
	return &Coordinator{
		run:     run,
		scripts: scripts,
		logger:  logger,
		fold:    cases.Fold(),
		records: make(map[string]*record),
		live:    make(map[Handle]NPC),
		Started: event.New[Start]("dialogue.started", logger),
	}
}

// Bind subscribes the coordinator to the orchestrator's session reset.
func (c *Coordinator) Bind(events *game.Events) {
	events.SessionReset.Subscribe(func(uuid.UUID) { c.ResetSession() })
}

func (c *Coordinator) key(id string) string {
	return c.fold.String(strings.TrimSpace(id))
}

func validID(npc NPC) bool {
	return npc != nil && strings.TrimSpace(npc.ID()) != ""
}

func (c *Coordinator) getOrCreate(id string) *record {
	k := c.key(id)
	rec, ok := c.records[k]
	if !ok {
		rec = &record{id: strings.TrimSpace(id)}
		c.records[k] = rec
	}
	return rec
}

// RegisterNPC binds npc to its record, creating the record on first sight,
// and hands it the script variant and message it should use. Registering
// the already-bound instance again returns the same handle.
func (c *Coordinator) RegisterNPC(npc NPC) Handle {
	if !validID(npc) {
		c.logger.Printf("dialogue: ignoring NPC without an id")
		return 0
	}

	rec := c.getOrCreate(npc.ID())
	if rec.handle == 0 || c.live[rec.handle] != npc {
		delete(c.live, rec.handle)
		c.next++
		rec.handle = c.next
		c.live[rec.handle] = npc
	}

	if rec.completed {
		npc.SetScript(c.scripts.Completed)
	} else {
		npc.SetScript(c.scripts.Fresh)
	}
	npc.SetAssignedMessage(rec.message)
	return rec.handle
}

// UnregisterNPC drops the live binding for npc's id, but only while it
// still refers to npc itself.
func (c *Coordinator) UnregisterNPC(npc NPC) {
	if !validID(npc) {
		return
	}
	rec, ok := c.records[c.key(npc.ID())]
	if !ok || rec.handle == 0 {
		return
	}
	if c.live[rec.handle] != npc {
		return
	}
	delete(c.live, rec.handle)
	rec.handle = 0
}

// Live returns the NPC bound under h, if it is still registered.
func (c *Coordinator) Live(h Handle) (NPC, bool) {
	npc, ok := c.live[h]
	return npc, ok
}

// StartDialogue opens a conversation with npc in the hub. It returns false
// when the orchestrator refuses to enter dialogue, or when a Started
// subscriber already ended the conversation.
func (c *Coordinator) StartDialogue(npc NPC) bool {
	if !validID(npc) {
		return false
	}
	if c.run.Level() != game.LevelHub {
		return false
	}

	_, span := telemetry.Tracer("dialogue").Start(context.Background(), "dialogue.start")
	defer span.End()
	span.SetAttributes(attribute.String("npc.id", npc.ID()))

	rec := c.getOrCreate(npc.ID())
	npc.SetAssignedMessage(rec.message)

	if !c.run.EnterDialogue() {
		span.SetAttributes(attribute.Bool("dialogue.accepted", false))
		return false
	}
	span.SetAttributes(attribute.Bool("dialogue.accepted", true))
	c.subEventRequested = false

	script := c.scripts.Fresh
	if rec.completed {
		script = c.scripts.Completed
	}
	c.Started.Publish(Start{
		NPC:     npc,
		Handle:  rec.handle,
		Message: rec.message,
		Script:  script,
	})
	return c.run.InDialogue()
}

// RequestSubEvent records npc as completed, leaves dialogue and asks for the
// minigame level, in that order.
func (c *Coordinator) RequestSubEvent(npc NPC) {
	if !validID(npc) {
		return
	}

	_, span := telemetry.Tracer("dialogue").Start(context.Background(), "dialogue.sub_event")
	defer span.End()
	span.SetAttributes(attribute.String("npc.id", npc.ID()))

	c.subEventRequested = true
	c.getOrCreate(npc.ID()).completed = true

	c.run.ExitDialogue()
	c.run.SetLevelState(game.LevelMinigame)
}

// EndDialogue is called when a conversation script runs out. It leaves
// dialogue unless the conversation already handed off to the minigame.
func (c *Coordinator) EndDialogue() {
	if c.subEventRequested {
		return
	}
	c.run.ExitDialogue()
}

// CheckAllComplete opens the game over menu once every known NPC has
// completed its conversation. It only acts in the hub.
func (c *Coordinator) CheckAllComplete() {
	if c.run.Level() != game.LevelHub {
		return
	}
	if len(c.records) == 0 {
		return
	}
	for _, rec := range c.records {
		if !rec.completed {
			return
		}
	}
	c.logger.Printf("dialogue: all %d NPCs complete", len(c.records))
	c.run.SetMenuState(game.MenuGameOver)
}

// AssignMessages deals the non-blank messages out to every known NPC in
// case-insensitive id order, wrapping around when there are more NPCs than
// messages. Live NPCs are updated immediately.
func (c *Coordinator) AssignMessages(selection []string) {
	messages := make([]string, 0, len(selection))
	for _, msg := range selection {
		if strings.TrimSpace(msg) != "" {
			messages = append(messages, msg)
		}
	}
	if len(messages) == 0 {
		c.logger.Printf("dialogue: warning: no messages to assign")
		return
	}
	if len(c.records) == 0 {
		c.logger.Printf("dialogue: warning: no NPCs registered to assign messages to")
		return
	}

	for i, k := range c.sortedKeys() {
		rec := c.records[k]
		rec.message = messages[i%len(messages)]
		if npc, ok := c.live[rec.handle]; ok {
			npc.SetAssignedMessage(rec.message)
		}
	}
}

// ResetSession forgets every record and live binding.
func (c *Coordinator) ResetSession() {
	clear(c.records)
	clear(c.live)
	c.subEventRequested = false
}

// Record returns a snapshot of the record for id.
func (c *Coordinator) Record(id string) (Record, bool) {
	rec, ok := c.records[c.key(id)]
	if !ok {
		return Record{}, false
	}
	return c.snapshot(rec), true
}

// Records returns snapshots of every record in id order.
func (c *Coordinator) Records() []Record {
	out := make([]Record, 0, len(c.records))
	for _, k := range c.sortedKeys() {
		out = append(out, c.snapshot(c.records[k]))
	}
	return out
}

func (c *Coordinator) snapshot(rec *record) Record {
	_, bound := c.live[rec.handle]
	return Record{
		ID:        rec.id,
		Completed: rec.completed,
		Message:   rec.message,
		Bound:     bound,
	}
}

func (c *Coordinator) sortedKeys() []string {
	keys := make([]string, 0, len(c.records))
	for k := range c.records {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
