package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/officehub/internal/telemetry"
)

// Layout describes an office floor plan as stored in office.yaml.
type Layout struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Start  string `yaml:"start"` // Room the player starts in
	Rooms  []Room `yaml:"rooms"`
}

// ErrUnknownRoom is returned when a room name is not part of the layout.
var ErrUnknownRoom = errors.New("unknown room")

// Office represents the hub map.
type Office struct {
	Width  int
	Height int
	Tiles  [][]Tile
	Rooms  []Room
	start  string
	rng    *rand.Rand
}

// NewOffice creates an office from layout, filled with walls until Build
// carves it out.
func NewOffice(layout Layout, rng *rand.Rand) (*Office, error) {
	if layout.Width < 3 || layout.Height < 3 {
		return nil, fmt.Errorf("office too small: %dx%d", layout.Width, layout.Height)
	}
	for i, room := range layout.Rooms {
		if room.Width <= 0 || room.Height <= 0 {
			return nil, fmt.Errorf("room %q has no area", room.Name)
		}
		for _, other := range layout.Rooms[:i] {
			if room.Intersects(other) {
				return nil, fmt.Errorf("room %q overlaps room %q", room.Name, other.Name)
			}
		}
	}

	tiles := make([][]Tile, layout.Height)
	for y := range tiles {
		tiles[y] = make([]Tile, layout.Width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Office{
		Width:  layout.Width,
		Height: layout.Height,
		Tiles:  tiles,
		Rooms:  layout.Rooms,
		start:  layout.Start,
		rng:    rng,
	}, nil
}

// Build carves every room and joins consecutive rooms with corridors.
func (o *Office) Build(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "office.build")
	defer span.End()

	for i, room := range o.Rooms {
		o.carveRoom(room)
		if i > 0 {
			o.carveCorridor(o.Rooms[i-1], room)
		}
	}

	span.SetAttributes(
		attribute.Int("office.width", o.Width),
		attribute.Int("office.height", o.Height),
		attribute.Int("office.room_count", len(o.Rooms)),
	)
}

// IsPassable returns true if the given position can be walked on.
func (o *Office) IsPassable(x, y int) bool {
	if x < 0 || x >= o.Width || y < 0 || y >= o.Height {
		return false
	}
	return o.Tiles[y][x].IsPassable()
}

// GetTile returns the tile at the given position.
func (o *Office) GetTile(x, y int) Tile {
	if x < 0 || x >= o.Width || y < 0 || y >= o.Height {
		return TileWall
	}
	return o.Tiles[y][x]
}

// Room returns the room with the given name.
func (o *Office) Room(name string) (Room, error) {
	for _, room := range o.Rooms {
		if room.Name == name {
			return room, nil
		}
	}
	return Room{}, fmt.Errorf("%w: %q", ErrUnknownRoom, name)
}

// RoomAt returns the room containing the position.
func (o *Office) RoomAt(x, y int) (Room, bool) {
	for _, room := range o.Rooms {
		if room.Contains(x, y) {
			return room, true
		}
	}
	return Room{}, false
}

// StartPoint returns the player's spawn point: the center of the start room.
func (o *Office) StartPoint() (int, int, error) {
	room, err := o.Room(o.start)
	if err != nil {
		return 0, 0, err
	}
	x, y := room.Center()
	return x, y, nil
}

// RandomPointInRoom returns a random passable point within the named room
// that taken does not report as occupied.
func (o *Office) RandomPointInRoom(name string, taken func(x, y int) bool) (int, int, error) {
	room, err := o.Room(name)
	if err != nil {
		return 0, 0, err
	}

	// Try random points until we find a free one (max 100 attempts)
	for i := 0; i < 100; i++ {
		x := room.X + o.rng.Intn(room.Width)
		y := room.Y + o.rng.Intn(room.Height)
		if o.IsPassable(x, y) && (taken == nil || !taken(x, y)) {
			return x, y, nil
		}
	}

	// Fallback to room center
	x, y := room.Center()
	return x, y, nil
}

// carveRoom sets all tiles within the room to floor.
func (o *Office) carveRoom(room Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			o.carve(x, y, TileFloor)
		}
	}
}

// carveCorridor creates a corridor between two room centers.
func (o *Office) carveCorridor(room1, room2 Room) {
	x1, y1 := room1.Center()
	x2, y2 := room2.Center()

	// Randomly choose to go horizontal-then-vertical or vertical-then-horizontal
	if o.rng.Intn(2) == 0 {
		o.carveHorizontal(x1, x2, y1)
		o.carveVertical(y1, y2, x2)
	} else {
		o.carveVertical(y1, y2, x1)
		o.carveHorizontal(x1, x2, y2)
	}
}

func (o *Office) carveHorizontal(x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		o.carve(x, y, TileCorridor)
	}
}

func (o *Office) carveVertical(y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		o.carve(x, y, TileCorridor)
	}
}

// carve sets a wall tile to kind. Room floor always wins over corridor, and
// the outer border stays wall.
func (o *Office) carve(x, y int, kind Tile) {
	if x <= 0 || x >= o.Width-1 || y <= 0 || y >= o.Height-1 {
		return
	}
	if kind == TileCorridor && o.Tiles[y][x] != TileWall {
		return
	}
	o.Tiles[y][x] = kind
}
