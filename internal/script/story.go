// Package script runs branching dialogue stories.
//
// A story is a Lua chunk that returns a table:
//
//	return {
//	  start = "greeting",
//	  variables = { dialogText = "" },
//	  knots = {
//	    greeting = {
//	      lines = { "Hello.", "{dialogText}" },
//	      choices = { { text = "Bye", next = "END", set = { done = true } } },
//	    },
//	  },
//	}
//
// Lines may reference variables as {name}. A knot without choices follows
// its next field; "END" or an empty next ends the story.
package script

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/Shopify/go-lua"
)

// End is the knot name that finishes a story.
const End = "END"

// ErrInvalidStory is returned when a story table is malformed.
var ErrInvalidStory = errors.New("invalid story")

// Story is a compiled dialogue story.
type Story struct {
	Name      string
	Start     string
	Variables map[string]any
	Knots     map[string]Knot
}

// Knot is one passage of a story.
type Knot struct {
	Lines   []string
	Choices []Choice
	Next    string
	// Set is applied when the knot is entered.
	Set map[string]any
}

// Choice is an option offered at the end of a knot.
type Choice struct {
	Text string
	Next string
	Set  map[string]any
}

// Compile runs src and converts the returned table into a Story.
func Compile(name, src string) (*Story, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadBuffer(state, src, name, "text"); err != nil {
		return nil, fmt.Errorf("load story %s: %w", name, err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run story %s: %w", name, err)
	}
	if state.TypeOf(-1) != lua.TypeTable {
		state.Pop(1)
		return nil, fmt.Errorf("story %s: %w: script must return a table", name, ErrInvalidStory)
	}
	raw := tableToMap(state, -1)
	state.Pop(1)

	story, err := build(name, raw)
	if err != nil {
		return nil, fmt.Errorf("story %s: %w: %w", name, ErrInvalidStory, err)
	}
	return story, nil
}

func build(name string, raw map[string]any) (*Story, error) {
	story := &Story{
		Name:      name,
		Variables: asMap(raw["variables"]),
		Knots:     make(map[string]Knot),
	}
	story.Start, _ = raw["start"].(string)

	knots := asMap(raw["knots"])
	if len(knots) == 0 {
		return nil, errors.New("no knots")
	}
	for knotName, v := range knots {
		fields := asMap(v)
		knot := Knot{
			Lines: asStrings(fields["lines"]),
			Set:   asMap(fields["set"]),
		}
		knot.Next, _ = fields["next"].(string)

		for i, c := range asList(fields["choices"]) {
			cf := asMap(c)
			text, _ := cf["text"].(string)
			if strings.TrimSpace(text) == "" {
				return nil, fmt.Errorf("knot %q choice %d has no text", knotName, i+1)
			}
			next, _ := cf["next"].(string)
			knot.Choices = append(knot.Choices, Choice{Text: text, Next: next, Set: asMap(cf["set"])})
		}
		story.Knots[knotName] = knot
	}

	if _, ok := story.Knots[story.Start]; !ok {
		return nil, fmt.Errorf("start knot %q not found", story.Start)
	}
	for _, knotName := range sortedKeys(story.Knots) {
		knot := story.Knots[knotName]
		if !story.exists(knot.Next) {
			return nil, fmt.Errorf("knot %q: next %q not found", knotName, knot.Next)
		}
		for _, c := range knot.Choices {
			if !story.exists(c.Next) {
				return nil, fmt.Errorf("knot %q: choice %q leads to unknown knot %q", knotName, c.Text, c.Next)
			}
		}
		if err := story.checkEmptyLoop(knotName); err != nil {
			return nil, err
		}
	}
	return story, nil
}

// checkEmptyLoop follows next links from start through knots that have no
// lines and no choices. Revisiting one of them would stall Continue.
func (s *Story) checkEmptyLoop(start string) error {
	seen := make(map[string]bool)
	for name := start; name != "" && name != End; {
		knot := s.Knots[name]
		if len(knot.Lines) > 0 || len(knot.Choices) > 0 {
			return nil
		}
		if seen[name] {
			return fmt.Errorf("knot %q: next links loop through empty knots", start)
		}
		seen[name] = true
		name = knot.Next
	}
	return nil
}

func (s *Story) exists(knot string) bool {
	if knot == "" || knot == End {
		return true
	}
	_, ok := s.Knots[knot]
	return ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}

func asStrings(v any) []string {
	var out []string
	for _, item := range asList(v) {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		if math.Mod(value, 1) == 0 {
			return int(value)
		}
		return value
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

// tableToGo returns a []any for sequences and a map for everything else.
func tableToGo(state *lua.State, index int) any {
	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				maxIndex = max(maxIndex, idx)
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}
	return tableToMap(state, index)
}
