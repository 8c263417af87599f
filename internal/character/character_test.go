package character

import (
	"errors"
	"io"
	"log"
	"reflect"
	"testing"

	"github.com/samdwyer/officehub/internal/gamedata"
)

func quiet() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testValues() []gamedata.ValueDef {
	anti := &gamedata.AntiDef{ID: "anti"}
	return []gamedata.ValueDef{
		{ID: "honesty", DialogMessage: "m-honesty", Anti: anti},
		{ID: "teamwork", DialogMessage: "m-teamwork", Anti: anti},
		{ID: "curiosity", DialogMessage: "m-curiosity", Anti: anti},
		{ID: "patience", DialogMessage: "m-patience", Anti: anti},
	}
}

func testPortraits() []gamedata.PortraitDef {
	return []gamedata.PortraitDef{{ID: "analyst", Symbol: "A"}, {ID: "designer", Symbol: "D"}}
}

func TestValidateValues(t *testing.T) {
	defs := []gamedata.ValueDef{
		{ID: "honesty", Anti: &gamedata.AntiDef{ID: "deceit"}},
		{ID: "  "},
		{ID: "HONESTY", Anti: &gamedata.AntiDef{ID: "x"}},
		{ID: "courage"},
		{ID: "focus", DisplayName: "Focus", Anti: &gamedata.AntiDef{ID: "drift", DisplayName: "Drift"}},
	}

	got := ValidateValues(defs, quiet())

	if len(got) != 2 {
		t.Fatalf("len(ValidateValues()) = %d, want 2: %+v", len(got), got)
	}
	if got[0].ID != "honesty" || got[0].DisplayName != "honesty" || got[0].Anti.DisplayName != "deceit" {
		t.Errorf("first = %+v anti %+v, want display names defaulted", got[0], got[0].Anti)
	}
	if got[1].DisplayName != "Focus" || got[1].Anti.DisplayName != "Drift" {
		t.Errorf("second = %+v", got[1])
	}
	if defs[0].DisplayName != "" || defs[0].Anti.DisplayName != "" {
		t.Error("ValidateValues modified its input")
	}
}

func TestEmbeddedValuesAreValid(t *testing.T) {
	defs, err := gamedata.LoadValues()
	if err != nil {
		t.Fatalf("LoadValues() error = %v", err)
	}
	if got := ValidateValues(defs, quiet()); len(got) != len(defs) {
		t.Errorf("ValidateValues kept %d of %d embedded values", len(got), len(defs))
	}
}

func TestToggleRespectsRequiredCount(t *testing.T) {
	m := NewModel(testValues(), testPortraits(), 2, quiet())

	tests := []struct {
		id   string
		want bool
	}{
		{"honesty", true},
		{"Teamwork", true},
		{"curiosity", false}, // already at the limit
		{"HONESTY", false},   // toggled off
		{"curiosity", true},
		{"unknown", false},
	}

	for _, tt := range tests {
		if got := m.Toggle(tt.id); got != tt.want {
			t.Errorf("Toggle(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
	if m.SelectedCount() != 2 {
		t.Errorf("SelectedCount() = %d, want 2", m.SelectedCount())
	}
	if !m.IsSelected("teamwork") || m.IsSelected("honesty") {
		t.Error("unexpected selection state")
	}
}

func TestSubmit(t *testing.T) {
	m := NewModel(testValues(), testPortraits(), 2, quiet())

	var changes []Data
	m.Changed.Subscribe(func(d Data) { changes = append(changes, d) })

	if _, err := m.Submit(); !errors.Is(err, ErrNoPortrait) {
		t.Errorf("Submit() error = %v, want ErrNoPortrait", err)
	}
	if err := m.SelectPortrait(1); err != nil {
		t.Fatalf("SelectPortrait(1) error = %v", err)
	}
	m.Toggle("patience")
	if _, err := m.Submit(); !errors.Is(err, ErrIncomplete) {
		t.Errorf("Submit() error = %v, want ErrIncomplete", err)
	}
	if m.Ready() {
		t.Error("Ready() = true with one value")
	}

	m.Toggle("honesty")
	got, err := m.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	// Messages follow display order, not toggle order.
	want := []string{"m-honesty", "m-patience"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Submit() = %v, want %v", got, want)
	}
	last := changes[len(changes)-1]
	if last.Portrait == nil || last.Portrait.ID != "designer" || len(last.Values) != 2 {
		t.Errorf("last change = %+v", last)
	}
}

func TestSelectPortraitOutOfRange(t *testing.T) {
	m := NewModel(testValues(), testPortraits(), 2, quiet())
	if err := m.SelectPortrait(5); err == nil {
		t.Error("SelectPortrait(5) error = nil, want error")
	}
	if _, ok := m.Portrait(); ok {
		t.Error("Portrait() reported a selection")
	}
}

func TestResetSession(t *testing.T) {
	m := NewModel(testValues(), testPortraits(), 1, quiet())
	m.SelectPortrait(0)
	m.Toggle("honesty")
	m.Submit()

	m.ResetSession()

	if _, ok := m.Portrait(); ok {
		t.Error("portrait survived reset")
	}
	if m.SelectedCount() != 0 || len(m.Data().Values) != 0 {
		t.Error("values survived reset")
	}
}
