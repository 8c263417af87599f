package game

import (
	"context"
	"log"
)

// Clock scales world simulation time. The Manager freezes it while paused.
type Clock interface {
	SetTimeScale(scale float64)
}

// Quitter performs the terminal side effect of entering LevelQuitting.
type Quitter interface {
	Quit()
}

// CompletionChecker is asked whether the session is finished every time the
// hub becomes ready.
type CompletionChecker interface {
	CheckAllComplete()
}

// Options holds optional Manager collaborators. Zero values are replaced
// with no-op implementations.
type Options struct {
	// Context is the parent context for transition tasks and their spans.
	Context context.Context
	Clock   Clock
	Quitter Quitter
	Logger  *log.Logger
}

// WorldClock is a Clock that accumulates scaled world time.
type WorldClock struct {
	scale   float64
	elapsed float64
}

// NewWorldClock creates a clock running at normal speed.
func NewWorldClock() *WorldClock {
	return &WorldClock{scale: 1}
}

// SetTimeScale sets the multiplier applied by Advance.
func (c *WorldClock) SetTimeScale(scale float64) {
	c.scale = scale
}

// Scale returns the current multiplier.
func (c *WorldClock) Scale() float64 {
	return c.scale
}

// Advance adds dt seconds of real time and returns the scaled world delta.
func (c *WorldClock) Advance(dt float64) float64 {
	scaled := dt * c.scale
	c.elapsed += scaled
	return scaled
}

// Elapsed returns the total world time in seconds.
func (c *WorldClock) Elapsed() float64 {
	return c.elapsed
}

// QuitFunc adapts a function to the Quitter interface.
type QuitFunc func()

// Quit calls f.
func (f QuitFunc) Quit() {
	f()
}

type noopClock struct{}

func (noopClock) SetTimeScale(float64) {}

type noopCompletion struct{}

func (noopCompletion) CheckAllComplete() {}
