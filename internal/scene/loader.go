package scene

import (
	"fmt"
	"log"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/officehub/internal/sched"
	"github.com/samdwyer/officehub/internal/telemetry"
)

// Loader loads and unloads content units by ID. At most one operation is
// in flight per Loader; a request made while busy is ignored. Callers that
// need several steps in a row must serialize them themselves.
type Loader struct {
	registry *Registry
	host     Host
	busy     bool
	logger   *log.Logger
}

// NewLoader creates a loader that resolves names through registry and
// performs operations on host.
func NewLoader(registry *Registry, host Host, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		registry: registry,
		host:     host,
		logger:   logger,
	}
}

// Busy reports whether an operation is in flight.
func (l *Loader) Busy() bool {
	return l.busy
}

// Load brings the unit id into memory, suspending y until the host reports
// completion. An additive load of an already-loaded unit only re-activates
// it when setActive is true.
func (l *Loader) Load(y sched.Yielder, id ID, additive, setActive bool) error {
	if l.busy {
		return nil
	}

	name, err := l.registry.Resolve(id)
	if err != nil {
		return err
	}

	if additive && l.host.IsLoaded(name) {
		if setActive {
			l.host.Activate(name)
		}
		return nil
	}

	_, span := telemetry.Tracer("scene").Start(y.Context(), "scene.load")
	defer span.End()
	span.SetAttributes(
		attribute.String("scene.id", id.String()),
		attribute.String("scene.name", name),
		attribute.Bool("scene.additive", additive),
		attribute.Bool("scene.set_active", setActive),
	)

	l.busy = true
	defer func() { l.busy = false }()

	op, err := l.host.BeginLoad(name, additive)
	if op == nil || err != nil {
		return l.startFailed(span, "load", name, err)
	}

	polls := l.await(y, op)
	span.SetAttributes(attribute.Int("scene.polls", polls))

	if setActive && l.host.IsLoaded(name) {
		l.host.Activate(name)
	}
	return nil
}

// Unload removes the unit id, suspending y until the host reports
// completion. Unloading a unit that is not loaded does nothing.
func (l *Loader) Unload(y sched.Yielder, id ID) error {
	if l.busy {
		return nil
	}

	name, err := l.registry.Resolve(id)
	if err != nil {
		return err
	}

	if !l.host.IsLoaded(name) {
		return nil
	}

	_, span := telemetry.Tracer("scene").Start(y.Context(), "scene.unload")
	defer span.End()
	span.SetAttributes(
		attribute.String("scene.id", id.String()),
		attribute.String("scene.name", name),
	)

	l.busy = true
	defer func() { l.busy = false }()

	op, err := l.host.BeginUnload(name)
	if op == nil || err != nil {
		return l.startFailed(span, "unload", name, err)
	}

	polls := l.await(y, op)
	span.SetAttributes(attribute.Int("scene.polls", polls))
	return nil
}

// SetForeground re-activates an already-loaded unit. It does nothing when
// the unit is not loaded.
func (l *Loader) SetForeground(id ID) error {
	name, err := l.registry.Resolve(id)
	if err != nil {
		return err
	}
	if l.host.IsLoaded(name) {
		l.host.Activate(name)
	}
	return nil
}

// await polls op once per scheduling step and returns how many steps it took.
func (l *Loader) await(y sched.Yielder, op Operation) int {
	polls := 0
	for !op.Done() {
		polls++
		y.Yield()
	}
	return polls
}

func (l *Loader) startFailed(span trace.Span, verb, name string, cause error) error {
	if cause == nil {
		cause = fmt.Errorf("host returned no operation")
	}
	err := fmt.Errorf("%s %q: %w: %w", verb, name, ErrOperationStart, cause)

	l.logger.Printf("scene: %v", err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
