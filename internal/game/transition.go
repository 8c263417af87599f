package game

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/officehub/internal/scene"
	"github.com/samdwyer/officehub/internal/sched"
	"github.com/samdwyer/officehub/internal/telemetry"
)

// SetLevelState starts a transition to target. The request is dropped, not
// queued, when target is already the current level or another transition is
// in flight.
func (m *Manager) SetLevelState(target LevelState) {
	if m.level == target {
		return
	}
	if m.transitioning {
		m.logger.Printf("game: dropped transition to %s, transition already in flight", target)
		return
	}

	from := m.level
	m.sched.Go(m.ctx, "level:"+target.String(), func(y sched.Yielder) {
		m.runTransition(y, from, target)
	})
}

// runTransition executes the ordered transition sequence. Once started it
// runs to completion or aborts; it is never interleaved with another one.
func (m *Manager) runTransition(y sched.Yielder, from, target LevelState) {
	ctx, span := telemetry.Tracer("game").Start(y.Context(), "game.transition")
	defer span.End()
	span.SetAttributes(
		attribute.String("level.from", from.String()),
		attribute.String("level.to", target.String()),
	)
	y = sched.WithContext(y, ctx)

	m.transitioning = true
	m.setLoading(true)

	// A panic below still releases the flags before the scheduler recovers it.
	defer func() {
		if m.transitioning {
			m.setLoading(false)
			m.transitioning = false
		}
	}()

	if err := m.ensureResident(y); err != nil {
		m.abortTransition(from, target, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	m.level = target
	m.Events.LevelStateChanged.Publish(target)

	if err := m.swapContent(y, target); err != nil {
		restored := m.restoreContent(y, from)
		m.abortTransition(from, target, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("level.restored", restored))
		if restored {
			m.Events.LevelSceneReady.Publish(from)
		}
		return
	}

	// Let downstream consumers settle for one step before content is
	// reported ready.
	y.Yield()

	m.setLoading(false)
	m.Events.LevelSceneReady.Publish(m.level)
	m.transitioning = false
}

// ensureResident loads the always-resident unit the first time any
// transition runs.
func (m *Manager) ensureResident(y sched.Yielder) error {
	if m.residentLoaded {
		return nil
	}
	if err := m.loader.Load(y, scene.PersistentUI, true, false); err != nil {
		return err
	}
	m.residentLoaded = true
	return nil
}

// swapContent performs the level-specific unload/load pair.
func (m *Manager) swapContent(y sched.Yielder, target LevelState) error {
	switch target {
	case LevelHub:
		if err := m.loader.Unload(y, scene.Minigame); err != nil {
			return err
		}
		return m.loader.Load(y, scene.Hub, true, true)

	case LevelMinigame:
		if err := m.loader.Unload(y, scene.Hub); err != nil {
			return err
		}
		return m.loader.Load(y, scene.Minigame, true, true)

	case LevelQuitting:
		m.quitter.Quit()
	}
	return nil
}

// restoreContent brings back the content of from after a failed swap may
// have unloaded it. It reports whether from's content is in place again.
func (m *Manager) restoreContent(y sched.Yielder, from LevelState) bool {
	if from != LevelHub && from != LevelMinigame {
		return false
	}
	if err := m.swapContent(y, from); err != nil {
		m.logger.Printf("game: restoring %s content: %v", from, err)
		return false
	}
	return true
}

// abortTransition restores a non-stuck configuration after a failed step.
// A level that was already committed is rolled back so that the failed
// request can be issued again.
func (m *Manager) abortTransition(from, target LevelState, err error) {
	if m.level != from {
		m.level = from
		m.Events.LevelStateChanged.Publish(from)
	}
	m.setLoading(false)
	m.transitioning = false

	terr := &TransitionError{From: from, To: target, Err: err}
	m.logger.Printf("game: %v", terr)
	m.Events.TransitionFailed.Publish(terr)
}

func (m *Manager) setLoading(loading bool) {
	m.loading = loading
	m.Events.LoadingChanged.Publish(loading)
	m.notifyRunStateMaybeChanged()
}
