package world

// Room represents a named rectangular area of the office.
type Room struct {
	Name   string `yaml:"name"`
	X      int    `yaml:"x"` // Top-left corner position
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Center returns the center coordinates of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}
