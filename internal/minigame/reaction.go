// Package minigame implements the reaction test played after agreeing to
// help a colleague.
//
// A marker sweeps back and forth along a 0..1 bar. Confirming while the
// marker is inside the success zone wins; running out of time or confirming
// outside the zone loses. Every loss makes the next round harder and raises
// the player's stress.
package minigame

import (
	"context"
	"log"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/officehub/internal/event"
	"github.com/samdwyer/officehub/internal/telemetry"
)

// Profile is the starting difficulty.
type Profile struct {
	ZoneCenter float64 `yaml:"zone_center"`
	ZoneSize   float64 `yaml:"zone_size"`
	Speed      float64 `yaml:"speed"`     // Bar lengths per second
	TimeLimit  float64 `yaml:"time_limit"` // Seconds; <= 0 means no limit
}

// Settings is the full tuning loaded from minigame.yaml.
type Settings struct {
	Profile      Profile `yaml:"profile"`
	MaxSpeed     float64 `yaml:"max_speed"`
	MinZone      float64 `yaml:"min_zone"`
	SpeedPenalty float64 `yaml:"speed_penalty"`
	ZonePenalty  float64 `yaml:"zone_penalty"`
}

// DefaultSettings mirrors the shipped tuning.
func DefaultSettings() Settings {
	return Settings{
		Profile: Profile{
			ZoneCenter: 0.5,
			ZoneSize:   0.2,
			Speed:      1.2,
			TimeLimit:  2.5,
		},
		MaxSpeed:     4,
		MinZone:      0.05,
		SpeedPenalty: 0.3,
		ZonePenalty:  0.04,
	}
}

// Outcome is published when a round ends.
type Outcome struct {
	Success bool
	Stress  int
}

// Reaction is one reaction minigame instance. Difficulty carries over
// between rounds until ResetSession.
type Reaction struct {
	settings Settings
	rng      *rand.Rand
	logger   *log.Logger

	zoneCenter float64
	zoneSize   float64
	speed      float64
	timeLimit  float64

	position  float64
	direction float64
	elapsed   float64
	running   bool
	stress    int

	// Finished fires once per round.
	Finished *event.Channel[Outcome]
}

// NewReaction creates a minigame at the starting difficulty.
func NewReaction(settings Settings, rng *rand.Rand, logger *log.Logger) *Reaction {
	if logger == nil {
		logger = log.Default()
	}
	r := &Reaction{
		settings: settings,
		rng:      rng,
		logger:   logger,
		Finished: event.New[Outcome]("minigame.finished", logger),
	}
	r.applyProfile()
	return r
}

func (r *Reaction) applyProfile() {
	p := r.settings.Profile
	r.zoneCenter = p.ZoneCenter
	r.zoneSize = p.ZoneSize
	r.speed = p.Speed
	r.timeLimit = p.TimeLimit
}

// Start begins a round with the marker at a random position moving up.
func (r *Reaction) Start() {
	r.position = r.rng.Float64()
	r.direction = 1
	r.elapsed = 0
	r.running = true
}

// Running reports whether a round is in progress.
func (r *Reaction) Running() bool { return r.running }

// Position returns the marker position on the bar.
func (r *Reaction) Position() float64 { return r.position }

// Zone returns the success zone bounds, clamped to the bar.
func (r *Reaction) Zone() (lo, hi float64) {
	half := r.zoneSize / 2
	return clamp01(r.zoneCenter - half), clamp01(r.zoneCenter + half)
}

// Speed returns the current marker speed.
func (r *Reaction) Speed() float64 { return r.speed }

// Stress returns the number of rounds lost this session.
func (r *Reaction) Stress() int { return r.stress }

// Remaining returns the seconds left, or a negative value when untimed.
func (r *Reaction) Remaining() float64 {
	if r.timeLimit <= 0 {
		return -1
	}
	return max(0, r.timeLimit-r.elapsed)
}

// Update advances the marker by dt seconds, bouncing at the ends of the bar.
func (r *Reaction) Update(dt float64) {
	if !r.running || dt <= 0 {
		return
	}

	r.position += r.direction * r.speed * dt
	if r.position >= 1 {
		r.position = 1
		r.direction = -1
	}
	if r.position <= 0 {
		r.position = 0
		r.direction = 1
	}

	if r.timeLimit > 0 {
		r.elapsed += dt
		if r.elapsed >= r.timeLimit {
			r.end(false)
		}
	}
}

// Confirm stops the marker and ends the round.
func (r *Reaction) Confirm() {
	if !r.running {
		return
	}
	lo, hi := r.Zone()
	r.end(r.position >= lo && r.position <= hi)
}

// ResetSession restores the starting difficulty and clears stress.
func (r *Reaction) ResetSession() {
	r.running = false
	r.stress = 0
	r.applyProfile()
}

func (r *Reaction) end(success bool) {
	if !r.running {
		return
	}
	r.running = false

	_, span := telemetry.Tracer("minigame").Start(context.Background(), "minigame.outcome")
	defer span.End()

	if !success {
		r.zoneSize = max(r.settings.MinZone, r.zoneSize-r.settings.ZonePenalty)
		r.speed = min(r.settings.MaxSpeed, r.speed+r.settings.SpeedPenalty)
		r.stress++
	}
	span.SetAttributes(
		attribute.Bool("minigame.success", success),
		attribute.Int("minigame.stress", r.stress),
		attribute.Float64("minigame.speed", r.speed),
		attribute.Float64("minigame.zone_size", r.zoneSize),
	)
	r.logger.Printf("minigame: round over, success=%v stress=%d", success, r.stress)

	r.Finished.Publish(Outcome{Success: success, Stress: r.stress})
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}
