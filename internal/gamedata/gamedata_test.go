package gamedata

import (
	"io"
	"io/fs"
	"log"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/officehub/internal/scene"
)

func TestLoadSceneRegistry(t *testing.T) {
	registry, err := LoadSceneRegistry(log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("Failed to load scene registry: %v", err)
	}

	tests := []struct {
		id   scene.ID
		name string
	}{
		{scene.PersistentUI, "PersistentUI"},
		{scene.Hub, "Office"},
		{scene.Minigame, "ReactionGame"},
	}

	for _, tt := range tests {
		got, err := registry.Resolve(tt.id)
		if err != nil {
			t.Errorf("Resolve(%s) error = %v", tt.id, err)
			continue
		}
		if got != tt.name {
			t.Errorf("Resolve(%s) = %q, want %q", tt.id, got, tt.name)
		}
	}
}

func TestLoadValues(t *testing.T) {
	values, err := LoadValues()
	if err != nil {
		t.Fatalf("Failed to load values: %v", err)
	}

	if len(values) < 3 {
		t.Fatalf("Expected at least 3 values, got %d", len(values))
	}

	for _, v := range values {
		if v.ID == "" || v.DialogMessage == "" {
			t.Errorf("value %+v is missing an id or message", v)
		}
		if v.Anti == nil {
			t.Errorf("value %q has no anti", v.ID)
		}
		if _, err := ParseColor(v.Color); err != nil {
			t.Errorf("value %q color: %v", v.ID, err)
		}
	}
}

func TestLoadPortraits(t *testing.T) {
	portraits, err := LoadPortraits()
	if err != nil {
		t.Fatalf("Failed to load portraits: %v", err)
	}
	if len(portraits) == 0 {
		t.Fatal("Expected portraits, got none")
	}
	for _, p := range portraits {
		if p.SymbolRune() == '?' {
			t.Errorf("portrait %q has no symbol", p.ID)
		}
	}
}

func TestLoadNPCs(t *testing.T) {
	npcs, err := LoadNPCs()
	if err != nil {
		t.Fatalf("Failed to load NPCs: %v", err)
	}
	if len(npcs) != 4 {
		t.Errorf("Expected 4 NPCs, got %d", len(npcs))
	}

	seen := map[string]bool{}
	for _, n := range npcs {
		if seen[n.ID] {
			t.Errorf("duplicate NPC id %q", n.ID)
		}
		seen[n.ID] = true
		if n.Room == "" {
			t.Errorf("NPC %q has no room", n.ID)
		}
	}
}

func TestDialogueStoriesEmbedded(t *testing.T) {
	files, err := fs.Glob(FS(), DialoguePattern)
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}

	scripts := DialogueScripts()
	want := map[string]bool{
		"dialogue/" + scripts.Fresh + ".lua":     false,
		"dialogue/" + scripts.Completed + ".lua": false,
	}
	for _, f := range files {
		if _, ok := want[f]; ok {
			want[f] = true
		}
	}
	for f, found := range want {
		if !found {
			t.Errorf("story %s not embedded", f)
		}
	}
}

func TestLoadYAMLMissingFile(t *testing.T) {
	if _, err := LoadYAML[ScenesFile]("missing.yaml"); err == nil {
		t.Error("LoadYAML(missing) error = nil, want error")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  tcell.Color
		valid bool
	}{
		{"#FF0000", tcell.NewHexColor(0xFF0000), true},
		{"00ff00", tcell.NewHexColor(0x00FF00), true},
		{"#00F", tcell.NewHexColor(0x0000FF), true},
		{" Teal ", tcell.ColorTeal, true},
		{"", tcell.ColorDefault, false},
		{"invalid", tcell.ColorDefault, false},
		{"#FFFF", tcell.ColorDefault, false},
		{"#GG0000", tcell.ColorDefault, false},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseColor(%q) error = %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseColor(%q) error = nil, want error", tt.input)
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValueDefMethods(t *testing.T) {
	def := ValueDef{
		ID:      "test",
		IconKey: "T",
		Color:   "#FF0000",
	}

	if def.IconRune() != 'T' {
		t.Errorf("Expected icon 'T', got %c", def.IconRune())
	}

	color := def.TCellColor()
	if color == 0 {
		t.Error("TCellColor returned zero color")
	}
}
