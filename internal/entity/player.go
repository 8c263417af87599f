// Package entity provides the characters walking around the office hub.
package entity

// Player is the character controlled from the keyboard.
type Player struct {
	X, Y   int  // Current position in the office
	Symbol rune // Display symbol, taken from the chosen portrait
}

// NewPlayer creates a player at the given position.
func NewPlayer(x, y int) *Player {
	return &Player{
		X:      x,
		Y:      y,
		Symbol: '@',
	}
}

// Move updates the player position by the given delta.
func (p *Player) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Position returns the current x, y coordinates.
func (p *Player) Position() (int, int) {
	return p.X, p.Y
}

// PlaceAt teleports the player.
func (p *Player) PlaceAt(x, y int) {
	p.X = x
	p.Y = y
}
