// Package ui provides terminal rendering and keyboard input using tcell.
package ui

import "github.com/gdamore/tcell/v2"

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreenFrom(s)
}

// NewScreenFrom initializes s, which may be a simulation screen.
func NewScreenFrom(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// Events streams terminal events until quit is closed.
func (s *Screen) Events(quit <-chan struct{}) <-chan tcell.Event {
	ch := make(chan tcell.Event, 16)
	go s.screen.ChannelEvents(ch, quit)
	return ch
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Content returns the rune drawn at the given position.
func (s *Screen) Content(x, y int) rune {
	r, _, _, _ := s.screen.GetContent(x, y)
	return r
}

// DrawText writes text starting at (x, y) and returns the x after it.
func (s *Screen) DrawText(x, y int, text string, style tcell.Style) int {
	for _, ch := range text {
		s.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}
