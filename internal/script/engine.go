package script

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"maps"
	"path"
	"reflect"
	"regexp"
	"strings"

	"github.com/samdwyer/officehub/internal/dialogue"
)

// ErrUnknownStory is returned by Start for a reference that was never added.
var ErrUnknownStory = errors.New("unknown story")

// Engine holds compiled stories and starts sessions on them.
type Engine struct {
	stories map[string]*Story
	logger  *log.Logger
}

// NewEngine creates an engine with no stories.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		stories: make(map[string]*Story),
		logger:  logger,
	}
}

// Add registers story under its name, replacing any earlier one.
func (e *Engine) Add(story *Story) {
	e.stories[story.Name] = story
}

// LoadFS compiles every file in fsys matching pattern. Stories are named
// after their file name without the extension.
func (e *Engine) LoadFS(fsys fs.FS, pattern string) error {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return fmt.Errorf("glob %s: %w", pattern, err)
	}
	for _, file := range files {
		src, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		name := strings.TrimSuffix(path.Base(file), path.Ext(file))
		story, err := Compile(name, string(src))
		if err != nil {
			return err
		}
		e.Add(story)
	}
	e.logger.Printf("script: loaded %d stories", len(files))
	return nil
}

// Stories returns the number of registered stories.
func (e *Engine) Stories() int {
	return len(e.stories)
}

// Start begins a session on the named story. vars override the story's
// declared variables.
func (e *Engine) Start(ref string, vars map[string]any) (dialogue.Session, error) {
	story, ok := e.stories[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStory, ref)
	}

	s := &Session{
		story:     story,
		vars:      maps.Clone(story.Variables),
		observers: make(map[string][]func(any)),
	}
	if s.vars == nil {
		s.vars = make(map[string]any)
	}
	maps.Copy(s.vars, vars)
	s.enter(story.Start)
	return s, nil
}

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Session is one playthrough of a story.
type Session struct {
	story     *Story
	knot      Knot
	line      int
	ended     bool
	vars      map[string]any
	observers map[string][]func(any)
}

// Continue returns the next line with variables filled in.
func (s *Session) Continue() (string, bool) {
	for !s.ended {
		if s.line < len(s.knot.Lines) {
			line := s.interpolate(s.knot.Lines[s.line])
			s.line++
			return line, true
		}
		if len(s.knot.Choices) > 0 {
			return "", false
		}
		s.enter(s.knot.Next)
	}
	return "", false
}

// Choices returns the option texts once every line of the knot is read.
func (s *Session) Choices() []string {
	if s.ended || s.line < len(s.knot.Lines) {
		return nil
	}
	out := make([]string, len(s.knot.Choices))
	for i, c := range s.knot.Choices {
		out[i] = s.interpolate(c.Text)
	}
	return out
}

// Choose follows option i.
func (s *Session) Choose(i int) error {
	choices := s.Choices()
	if i < 0 || i >= len(choices) {
		return fmt.Errorf("choice %d out of range [0,%d)", i, len(choices))
	}
	choice := s.knot.Choices[i]
	s.apply(choice.Set)
	s.enter(choice.Next)
	return nil
}

// Ended reports whether the story has finished.
func (s *Session) Ended() bool {
	return s.ended
}

// SetVariable assigns a variable, notifying observers when the value changes.
func (s *Session) SetVariable(name string, value any) {
	old, ok := s.vars[name]
	if ok && reflect.DeepEqual(old, value) {
		return
	}
	s.vars[name] = value
	for _, fn := range s.observers[name] {
		fn(value)
	}
}

// Variable returns the current value of a variable.
func (s *Session) Variable(name string) (any, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Observe registers fn for changes to the named variable.
func (s *Session) Observe(name string, fn func(any)) {
	s.observers[name] = append(s.observers[name], fn)
}

func (s *Session) enter(name string) {
	if name == "" || name == End {
		s.ended = true
		s.knot = Knot{}
		s.line = 0
		return
	}
	s.knot = s.story.Knots[name]
	s.line = 0
	s.apply(s.knot.Set)
}

func (s *Session) apply(set map[string]any) {
	for _, name := range sortedKeys(set) {
		s.SetVariable(name, set[name])
	}
}

func (s *Session) interpolate(text string) string {
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := s.vars[name]
		if !ok {
			return m
		}
		return fmt.Sprint(v)
	})
}
