// Package world provides the office floor plan the hub is played on.
package world

// Tile is one cell of the office floor plan, stored as the rune it is drawn
// with.
type Tile rune

// Office tiles.
const (
	TileWall     Tile = '#'
	TileFloor    Tile = '.' // inside a room
	TileCorridor Tile = ',' // hallway between rooms
)

// IsPassable reports whether the player or an NPC may stand on t.
func (t Tile) IsPassable() bool {
	switch t {
	case TileFloor, TileCorridor:
		return true
	}
	return false
}

// Rune returns the character t is drawn with.
func (t Tile) Rune() rune { return rune(t) }

// String names the tile kind for logs.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileCorridor:
		return "corridor"
	}
	return "unknown"
}
