package minigame

import (
	"io"
	"log"
	"math"
	"math/rand"
	"testing"

	"github.com/samdwyer/officehub/internal/gamedata"
)

func newTestReaction(settings Settings) (*Reaction, *[]Outcome) {
	r := NewReaction(settings, rand.New(rand.NewSource(1)), log.New(io.Discard, "", 0))
	var outcomes []Outcome
	r.Finished.Subscribe(func(o Outcome) { outcomes = append(outcomes, o) })
	return r, &outcomes
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestZone(t *testing.T) {
	tests := []struct {
		center, size float64
		lo, hi       float64
	}{
		{0.5, 0.2, 0.4, 0.6},
		{0.05, 0.2, 0, 0.15},
		{1, 0.5, 0.75, 1},
	}

	for _, tt := range tests {
		s := DefaultSettings()
		s.Profile.ZoneCenter, s.Profile.ZoneSize = tt.center, tt.size
		r, _ := newTestReaction(s)

		lo, hi := r.Zone()
		if !near(lo, tt.lo) || !near(hi, tt.hi) {
			t.Errorf("Zone() for center %v size %v = (%v, %v), want (%v, %v)", tt.center, tt.size, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestUpdateBounces(t *testing.T) {
	r, _ := newTestReaction(Settings{Profile: Profile{Speed: 1, ZoneSize: 0.2, ZoneCenter: 0.5}})
	r.Start()
	r.position = 0.9

	r.Update(0.2)
	if r.Position() != 1 || r.direction != -1 {
		t.Errorf("after top: position=%v direction=%v", r.Position(), r.direction)
	}

	r.Update(0.5)
	if !near(r.Position(), 0.5) {
		t.Errorf("Position() = %v, want 0.5", r.Position())
	}

	r.Update(2)
	if r.Position() != 0 || r.direction != 1 {
		t.Errorf("after bottom: position=%v direction=%v", r.Position(), r.direction)
	}
	if !r.Running() {
		t.Error("untimed round should keep running")
	}
}

func TestConfirmInsideZoneWins(t *testing.T) {
	r, outcomes := newTestReaction(DefaultSettings())
	r.Start()
	r.position = 0.5
	speed := r.Speed()

	r.Confirm()

	if len(*outcomes) != 1 || !(*outcomes)[0].Success {
		t.Fatalf("outcomes = %v, want one success", *outcomes)
	}
	if r.Stress() != 0 || r.Speed() != speed {
		t.Errorf("a win changed difficulty: stress=%d speed=%v", r.Stress(), r.Speed())
	}

	r.Confirm()
	if len(*outcomes) != 1 {
		t.Error("Confirm after the round ended published again")
	}
}

func TestConfirmOutsideZoneLoses(t *testing.T) {
	s := DefaultSettings()
	r, outcomes := newTestReaction(s)
	r.Start()
	r.position = 0.1

	r.Confirm()

	if len(*outcomes) != 1 || (*outcomes)[0].Success {
		t.Fatalf("outcomes = %v, want one failure", *outcomes)
	}
	lo, hi := r.Zone()
	if !near(hi-lo, s.Profile.ZoneSize-s.ZonePenalty) {
		t.Errorf("zone size = %v, want %v", hi-lo, s.Profile.ZoneSize-s.ZonePenalty)
	}
	if !near(r.Speed(), s.Profile.Speed+s.SpeedPenalty) {
		t.Errorf("Speed() = %v, want %v", r.Speed(), s.Profile.Speed+s.SpeedPenalty)
	}
	if (*outcomes)[0].Stress != 1 {
		t.Errorf("Stress = %d, want 1", (*outcomes)[0].Stress)
	}
}

func TestTimeLimit(t *testing.T) {
	r, outcomes := newTestReaction(DefaultSettings())
	r.Start()

	for i := 0; i < 24; i++ {
		r.Update(0.1)
	}
	if !r.Running() {
		t.Fatal("round ended before the time limit")
	}
	if r.Remaining() <= 0 {
		t.Errorf("Remaining() = %v, want > 0", r.Remaining())
	}

	r.Update(0.2)
	if r.Running() || len(*outcomes) != 1 || (*outcomes)[0].Success {
		t.Errorf("running=%v outcomes=%v, want a timeout failure", r.Running(), *outcomes)
	}
}

func TestPenaltiesAreBounded(t *testing.T) {
	s := DefaultSettings()
	r, _ := newTestReaction(s)

	for i := 0; i < 50; i++ {
		r.Start()
		r.position = 0
		r.zoneCenter = 0.9
		r.Confirm()
	}

	lo, hi := r.Zone()
	if hi-lo < s.MinZone-1e-9 {
		t.Errorf("zone size %v below minimum %v", hi-lo, s.MinZone)
	}
	if r.Speed() > s.MaxSpeed {
		t.Errorf("Speed() %v above maximum %v", r.Speed(), s.MaxSpeed)
	}

	r.ResetSession()
	if r.Stress() != 0 || r.Speed() != s.Profile.Speed {
		t.Errorf("after reset stress=%d speed=%v", r.Stress(), r.Speed())
	}
}

func TestUpdateIgnoredWhenStopped(t *testing.T) {
	r, _ := newTestReaction(DefaultSettings())
	r.position = 0.3

	r.Update(1)

	if r.Position() != 0.3 {
		t.Errorf("Position() = %v, want unchanged", r.Position())
	}
}

func TestEmbeddedSettings(t *testing.T) {
	s, err := gamedata.LoadYAML[Settings]("minigame.yaml")
	if err != nil {
		t.Fatalf("LoadYAML() error = %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("embedded settings = %+v, want %+v", s, DefaultSettings())
	}
}
