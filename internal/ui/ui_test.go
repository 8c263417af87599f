package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/officehub/internal/game"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		ch   rune
		want Input
	}{
		{"escape", tcell.KeyEscape, 0, Input{Signal: SignalMenu}},
		{"ctrl-c", tcell.KeyCtrlC, 0, Input{Signal: SignalQuit}},
		{"enter", tcell.KeyEnter, 0, Input{Signal: SignalConfirm}},
		{"space", tcell.KeyRune, ' ', Input{Signal: SignalConfirm}},
		{"backspace", tcell.KeyBackspace2, 0, Input{Signal: SignalBack}},
		{"b", tcell.KeyRune, 'b', Input{Signal: SignalBack}},
		{"arrow up", tcell.KeyUp, 0, Input{Signal: SignalUp}},
		{"w", tcell.KeyRune, 'w', Input{Signal: SignalUp}},
		{"j", tcell.KeyRune, 'j', Input{Signal: SignalDown}},
		{"a", tcell.KeyRune, 'a', Input{Signal: SignalLeft}},
		{"l", tcell.KeyRune, 'l', Input{Signal: SignalRight}},
		{"digit", tcell.KeyRune, '7', Input{Signal: SignalDigit, Digit: 7}},
		{"zero", tcell.KeyRune, '0', Input{}},
		{"m", tcell.KeyRune, 'm', Input{Signal: SignalMainMenu}},
		{"q", tcell.KeyRune, 'Q', Input{Signal: SignalQuit}},
		{"unbound", tcell.KeyRune, 'z', Input{}},
		{"tab", tcell.KeyTab, 0, Input{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tcell.NewEventKey(tt.key, tt.ch, tcell.ModNone))
			if got != tt.want {
				t.Errorf("Translate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSignalString(t *testing.T) {
	if SignalMainMenu.String() != "main_menu" || SignalNone.String() != "none" {
		t.Errorf("unexpected names %q %q", SignalMainMenu, SignalNone)
	}
}

func newTestScreen(t *testing.T) *Screen {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	s, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error = %v", err)
	}
	sim.SetSize(80, 24)
	t.Cleanup(s.Close)
	return s
}

// row returns the text drawn on row y.
func row(s *Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(s.Content(x, y))
	}
	return b.String()
}

func screenText(s *Screen) string {
	_, h := s.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		b.WriteString(row(s, y))
		b.WriteByte('\n')
	}
	return b.String()
}

func TestDrawText(t *testing.T) {
	s := newTestScreen(t)

	end := s.DrawText(2, 3, "hello", tcell.StyleDefault)

	if end != 7 {
		t.Errorf("DrawText() = %d, want 7", end)
	}
	if got := row(s, 3)[2:7]; got != "hello" {
		t.Errorf("row 3 = %q, want hello", got)
	}
}

func TestRenderStatusLine(t *testing.T) {
	s := newTestScreen(t)
	r := NewRenderer(s)

	r.Render(Frame{Level: game.LevelHub, Run: game.RunPlaying, Session: "abcd1234", Status: "hi"})

	got := row(s, 0)
	for _, want := range []string{"hub", "playing", "session abcd1234", "hi"} {
		if !strings.Contains(got, want) {
			t.Errorf("status line %q missing %q", got, want)
		}
	}
}

func TestRenderMenus(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
		want  []string
	}{
		{
			name:  "main",
			frame: Frame{Menu: game.MenuMainRoot, Run: game.RunMenu},
			want:  []string{"OFFICE HUB", "New game"},
		},
		{
			name: "values",
			frame: Frame{
				Menu:     game.MenuValuesSelect,
				Run:      game.RunMenu,
				Required: 2,
				Values: []Option{
					{Label: "Honesty", Symbol: 'H', Selected: true},
					{Label: "Focus", Symbol: 'F'},
				},
			},
			want: []string{"Choose 2 values", "1 * H Honesty", "2   F Focus"},
		},
		{
			name:  "pause",
			frame: Frame{Menu: game.MenuPause, Run: game.RunPaused},
			want:  []string{"PAUSED", "Main menu"},
		},
		{
			name:  "loading hides menus",
			frame: Frame{Menu: game.MenuMainRoot, Run: game.RunLoading},
			want:  []string{"Loading..."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScreen(t)
			NewRenderer(s).Render(tt.frame)

			text := screenText(s)
			for _, want := range tt.want {
				if !strings.Contains(text, want) {
					t.Errorf("screen missing %q", want)
				}
			}
		})
	}
}

func TestRenderDialogue(t *testing.T) {
	s := newTestScreen(t)

	NewRenderer(s).Render(Frame{
		Level: game.LevelHub,
		Run:   game.RunDialogue,
		Dialogue: &DialogueView{
			Speaker: "Priya",
			Lines:   []string{"Hey there."},
			Choices: []string{"Sure", "Later"},
		},
	})

	text := screenText(s)
	for _, want := range []string{"Priya:", "Hey there.", "1) Sure", "2) Later"} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q", want)
		}
	}
}

func TestRenderMinigame(t *testing.T) {
	s := newTestScreen(t)

	NewRenderer(s).Render(Frame{
		Level: game.LevelMinigame,
		Run:   game.RunPlaying,
		Minigame: &MinigameView{
			Position:  0,
			ZoneLo:    0.4,
			ZoneHi:    0.6,
			Remaining: 1.5,
			Stress:    2,
		},
	})

	bar := row(s, 5)
	if !strings.Contains(bar, "[^") || !strings.Contains(bar, "===") {
		t.Errorf("bar row = %q, want marker at the start and a zone", bar)
	}
	if info := row(s, 7); !strings.Contains(info, "Stress: 2") || !strings.Contains(info, "Time: 1.5s") {
		t.Errorf("info row = %q", info)
	}
}
