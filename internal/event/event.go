// Package event provides typed, ordered publish/subscribe channels.
package event

import (
	"log"
	"slices"
)

// Channel delivers values of type T to its subscribers synchronously, in
// subscription order. A subscriber that panics is logged and skipped; the
// remaining subscribers still receive the value.
type Channel[T any] struct {
	name   string
	subs   []subscriber[T]
	nextID int
	logger *log.Logger
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// New creates a named channel. A nil logger uses log.Default().
func New[T any](name string, logger *log.Logger) *Channel[T] {
	if logger == nil {
		logger = log.Default()
	}
	return &Channel[T]{name: name, logger: logger}
}

// Name returns the channel name.
func (c *Channel[T]) Name() string {
	return c.name
}

// Subscribe appends fn to the subscriber list and returns a function that
// removes it again.
func (c *Channel[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		c.subs = slices.DeleteFunc(c.subs, func(s subscriber[T]) bool { return s.id == id })
	}
}

// Publish delivers v to every current subscriber. Subscribers added or
// removed during delivery take effect on the next Publish.
func (c *Channel[T]) Publish(v T) {
	for _, s := range slices.Clone(c.subs) {
		c.deliver(s, v)
	}
}

// Len returns the number of subscribers.
func (c *Channel[T]) Len() int {
	return len(c.subs)
}

func (c *Channel[T]) deliver(s subscriber[T], v T) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("event: subscriber %d of %q panicked: %v", s.id, c.name, r)
		}
	}()
	s.fn(v)
}
