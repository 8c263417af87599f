// Package character holds the player's portrait and value choices for the
// current session.
package character

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/samdwyer/officehub/internal/event"
	"github.com/samdwyer/officehub/internal/game"
	"github.com/samdwyer/officehub/internal/gamedata"
)

var (
	// ErrNoPortrait is returned when submitting before a portrait is chosen.
	ErrNoPortrait = errors.New("no portrait selected")
	// ErrIncomplete is returned when fewer values than required are selected.
	ErrIncomplete = errors.New("value selection incomplete")
)

// Data is a snapshot of the player's choices.
type Data struct {
	Portrait *gamedata.PortraitDef
	Values   []gamedata.ValueDef
}

// Model tracks the selection screens' state. It is not safe for concurrent
// use.
type Model struct {
	values    []gamedata.ValueDef
	portraits []gamedata.PortraitDef
	required  int
	logger    *log.Logger

	portrait  int
	selected  map[string]bool
	confirmed []gamedata.ValueDef

	// Changed fires whenever the confirmed choices change.
	Changed *event.Channel[Data]
}

// NewModel creates a model over already validated values.
func NewModel(values []gamedata.ValueDef, portraits []gamedata.PortraitDef, required int, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Default()
	}
	return &Model{
		values:    values,
		portraits: portraits,
		required:  required,
		logger:    logger,
		portrait:  -1,
		selected:  make(map[string]bool),
		Changed:   event.New[Data]("character.changed", logger),
	}
}

// Bind subscribes the model to the orchestrator's session reset.
func (m *Model) Bind(events *game.Events) {
	events.SessionReset.Subscribe(func(uuid.UUID) { m.ResetSession() })
}

// Values returns the selectable values in display order.
func (m *Model) Values() []gamedata.ValueDef { return m.values }

// Portraits returns the portrait options.
func (m *Model) Portraits() []gamedata.PortraitDef { return m.portraits }

// Required returns how many values must be selected.
func (m *Model) Required() int { return m.required }

// SelectPortrait chooses portrait i.
func (m *Model) SelectPortrait(i int) error {
	if i < 0 || i >= len(m.portraits) {
		return fmt.Errorf("portrait %d out of range [0,%d)", i, len(m.portraits))
	}
	m.portrait = i
	m.Changed.Publish(m.Data())
	return nil
}

// Portrait returns the chosen portrait.
func (m *Model) Portrait() (gamedata.PortraitDef, bool) {
	if m.portrait < 0 {
		return gamedata.PortraitDef{}, false
	}
	return m.portraits[m.portrait], true
}

// Toggle flips the selection of value id. Selecting beyond the required
// count is ignored. It reports whether the value is now selected.
func (m *Model) Toggle(id string) bool {
	key := strings.ToLower(id)
	if m.selected[key] {
		delete(m.selected, key)
		return false
	}
	if len(m.selected) >= m.required {
		return false
	}
	if !m.known(key) {
		return false
	}
	m.selected[key] = true
	return true
}

// IsSelected reports whether value id is currently toggled on.
func (m *Model) IsSelected(id string) bool {
	return m.selected[strings.ToLower(id)]
}

// SelectedCount returns how many values are toggled on.
func (m *Model) SelectedCount() int { return len(m.selected) }

// Ready reports whether Submit would succeed.
func (m *Model) Ready() bool {
	return m.portrait >= 0 && len(m.selected) == m.required
}

// Submit confirms the toggled values in display order and returns their
// dialogue messages.
func (m *Model) Submit() ([]string, error) {
	if m.portrait < 0 {
		return nil, ErrNoPortrait
	}
	if len(m.selected) != m.required {
		return nil, fmt.Errorf("%w: %d of %d", ErrIncomplete, len(m.selected), m.required)
	}

	m.confirmed = m.confirmed[:0]
	messages := make([]string, 0, m.required)
	for _, v := range m.values {
		if m.selected[strings.ToLower(v.ID)] {
			m.confirmed = append(m.confirmed, v)
			messages = append(messages, v.DialogMessage)
		}
	}
	m.Changed.Publish(m.Data())
	return messages, nil
}

// Data returns the confirmed choices.
func (m *Model) Data() Data {
	d := Data{Values: append([]gamedata.ValueDef(nil), m.confirmed...)}
	if m.portrait >= 0 {
		p := m.portraits[m.portrait]
		d.Portrait = &p
	}
	return d
}

// ResetSession clears every choice.
func (m *Model) ResetSession() {
	m.portrait = -1
	clear(m.selected)
	m.confirmed = nil
	m.Changed.Publish(m.Data())
}

func (m *Model) known(key string) bool {
	for _, v := range m.values {
		if strings.ToLower(v.ID) == key {
			return true
		}
	}
	return false
}

// ValidateValues drops unusable definitions: blank ids, duplicate ids
// (case-insensitive) and values without an anti. Missing display names fall
// back to the id.
func ValidateValues(defs []gamedata.ValueDef, logger *log.Logger) []gamedata.ValueDef {
	if logger == nil {
		logger = log.Default()
	}

	seen := make(map[string]bool)
	out := make([]gamedata.ValueDef, 0, len(defs))
	for _, v := range defs {
		if strings.TrimSpace(v.ID) == "" {
			logger.Printf("character: skipping value with missing id")
			continue
		}
		key := strings.ToLower(v.ID)
		if seen[key] {
			logger.Printf("character: duplicate value id %q skipped", v.ID)
			continue
		}
		if v.Anti == nil {
			logger.Printf("character: value %q has no anti definition, skipped", v.ID)
			continue
		}
		seen[key] = true

		if strings.TrimSpace(v.DisplayName) == "" {
			v.DisplayName = v.ID
		}
		anti := *v.Anti
		if strings.TrimSpace(anti.DisplayName) == "" {
			anti.DisplayName = anti.ID
		}
		v.Anti = &anti
		out = append(out, v)
	}
	return out
}
