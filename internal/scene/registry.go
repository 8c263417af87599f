// Package scene resolves and loads content units ("scenes") through a
// content-unit host.
package scene

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

// ID identifies a content unit independently of its storage name.
type ID int

const (
	// PersistentUI is the always-resident unit, loaded once per process.
	PersistentUI ID = iota
	// Hub is the office hub world.
	Hub
	// Minigame is the sub-event level entered from a conversation.
	Minigame
)

// String returns the identifier used in data files.
func (id ID) String() string {
	switch id {
	case PersistentUI:
		return "persistent_ui"
	case Hub:
		return "hub"
	case Minigame:
		return "minigame"
	default:
		return "unknown"
	}
}

// ParseID converts a data-file identifier back into an ID.
func ParseID(s string) (ID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "persistent_ui":
		return PersistentUI, nil
	case "hub":
		return Hub, nil
	case "minigame":
		return Minigame, nil
	default:
		return 0, fmt.Errorf("unknown scene id %q", s)
	}
}

// UnmarshalText lets data files spell IDs by name.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

var (
	// ErrNotFound is returned when an ID has no bound storage name.
	ErrNotFound = errors.New("scene not found")
	// ErrOperationStart is returned when the host cannot begin a load or unload.
	ErrOperationStart = errors.New("scene operation could not start")
)

// Entry binds an ID to a storage name.
type Entry struct {
	ID   ID     `yaml:"id"`
	Name string `yaml:"name"`
}

// Registry maps IDs to storage names and back. Lookup tables are built on
// first access and rebuilt after SetEntries.
type Registry struct {
	name     string
	entries  []Entry
	idToName map[ID]string
	nameToID map[string]ID
	logger   *log.Logger
}

// NewRegistry creates a registry from the declared entries.
func NewRegistry(name string, entries []Entry, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		name:    name,
		entries: entries,
		logger:  logger,
	}
}

// SetEntries replaces the declared entries and invalidates the lookup tables.
func (r *Registry) SetEntries(entries []Entry) {
	r.entries = entries
	r.idToName = nil
	r.nameToID = nil
}

// Entries returns the declared entries.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// Resolve returns the storage name bound to id.
func (r *Registry) Resolve(id ID) (string, error) {
	r.ensureTables()

	if name, ok := r.idToName[id]; ok && name != "" {
		return name, nil
	}
	return "", fmt.Errorf("registry %s: scene id %s: %w", r.name, id, ErrNotFound)
}

// Lookup finds the ID bound to a storage name, ignoring case and
// surrounding whitespace. Blank names are never found.
func (r *Registry) Lookup(name string) (ID, bool) {
	r.ensureTables()

	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return 0, false
	}
	id, ok := r.nameToID[key]
	return id, ok
}

func (r *Registry) ensureTables() {
	if r.idToName != nil && r.nameToID != nil {
		return
	}

	r.idToName = make(map[ID]string, len(r.entries))
	r.nameToID = make(map[string]ID, len(r.entries))

	for _, e := range r.entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}

		if existing, ok := r.idToName[e.ID]; ok {
			r.logger.Printf("scene: registry %s: duplicate binding for %s (%q), keeping %q",
				r.name, e.ID, name, existing)
		} else {
			r.idToName[e.ID] = name
		}

		key := strings.ToLower(name)
		if first, ok := r.nameToID[key]; ok {
			r.logger.Printf("scene: registry %s: duplicate name %q, reverse lookup keeps %s",
				r.name, name, first)
			continue
		}
		r.nameToID[key] = e.ID
	}
}
