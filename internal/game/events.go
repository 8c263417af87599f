package game

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/samdwyer/officehub/internal/event"
)

// Events are the notifications the Manager publishes. All delivery is
// synchronous, in subscription order, on the scheduling goroutine.
type Events struct {
	// LevelStateChanged fires when a transition commits its target level,
	// before the level's content is loaded.
	LevelStateChanged *event.Channel[LevelState]
	// LevelSceneReady fires once the level's content is present.
	LevelSceneReady  *event.Channel[LevelState]
	MenuStateChanged *event.Channel[MenuScreen]
	// RunStateChanged is edge-triggered: it fires only when the derived run
	// state differs from the last value published.
	RunStateChanged *event.Channel[RunState]
	PauseChanged    *event.Channel[bool]
	LoadingChanged  *event.Channel[bool]
	DialogueChanged *event.Channel[bool]
	// SessionReset carries the id of the session that starts after the reset.
	SessionReset *event.Channel[uuid.UUID]
	// TransitionFailed carries a *TransitionError for every aborted transition.
	TransitionFailed *event.Channel[error]
}

func newEvents(logger *log.Logger) *Events {
	return &Events{
		LevelStateChanged: event.New[LevelState]("level-state-changed", logger),
		LevelSceneReady:   event.New[LevelState]("level-scene-ready", logger),
		MenuStateChanged:  event.New[MenuScreen]("menu-state-changed", logger),
		RunStateChanged:   event.New[RunState]("run-state-changed", logger),
		PauseChanged:      event.New[bool]("pause-changed", logger),
		LoadingChanged:    event.New[bool]("loading-changed", logger),
		DialogueChanged:   event.New[bool]("dialogue-changed", logger),
		SessionReset:      event.New[uuid.UUID]("session-reset", logger),
		TransitionFailed:  event.New[error]("transition-failed", logger),
	}
}

// TransitionError reports a level transition that was aborted.
type TransitionError struct {
	From LevelState
	To   LevelState
	Err  error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s: %v", e.From, e.To, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}
