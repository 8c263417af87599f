package world

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func testLayout() Layout {
	return Layout{
		Width:  40,
		Height: 12,
		Start:  "lobby",
		Rooms: []Room{
			{Name: "lobby", X: 2, Y: 2, Width: 6, Height: 4},
			{Name: "desks", X: 15, Y: 5, Width: 8, Height: 5},
			{Name: "corner", X: 30, Y: 1, Width: 6, Height: 4},
		},
	}
}

func buildOffice(t *testing.T, seed int64) *Office {
	t.Helper()
	o, err := NewOffice(testLayout(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewOffice() error = %v", err)
	}
	o.Build(context.Background())
	return o
}

func TestOfficeRoomsAreFloor(t *testing.T) {
	o := buildOffice(t, 1)

	for _, room := range o.Rooms {
		for y := room.Y; y < room.Y+room.Height; y++ {
			for x := room.X; x < room.X+room.Width; x++ {
				if !o.IsPassable(x, y) {
					t.Fatalf("room %s tile (%d,%d) is not floor", room.Name, x, y)
				}
			}
		}
	}
}

func TestTileKinds(t *testing.T) {
	tests := []struct {
		tile     Tile
		name     string
		passable bool
	}{
		{TileWall, "wall", false},
		{TileFloor, "floor", true},
		{TileCorridor, "corridor", true},
		{Tile('?'), "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tile.String() != tt.name || tt.tile.IsPassable() != tt.passable {
				t.Errorf("%q: String()=%s IsPassable()=%v", tt.tile.Rune(), tt.tile, tt.tile.IsPassable())
			}
		})
	}
}

func TestCorridorsStayOutsideRooms(t *testing.T) {
	o := buildOffice(t, 3)

	corridors := 0
	for y := 0; y < o.Height; y++ {
		for x := 0; x < o.Width; x++ {
			_, inRoom := o.RoomAt(x, y)
			switch tile := o.GetTile(x, y); {
			case tile == TileCorridor && inRoom:
				t.Errorf("corridor tile inside a room at (%d,%d)", x, y)
			case tile == TileCorridor:
				corridors++
			case inRoom && tile != TileFloor:
				t.Errorf("room tile (%d,%d) = %s, want floor", x, y, tile)
			}
		}
	}
	if corridors == 0 {
		t.Error("no corridor tiles between separated rooms")
	}
}

func TestOfficeBorderIsWall(t *testing.T) {
	o := buildOffice(t, 1)

	for x := 0; x < o.Width; x++ {
		if o.IsPassable(x, 0) || o.IsPassable(x, o.Height-1) {
			t.Fatalf("border at x=%d is passable", x)
		}
	}
	if o.IsPassable(-1, 3) || o.GetTile(100, 100) != TileWall {
		t.Error("out of bounds should be wall")
	}
}

// TestOfficeConnected flood-fills from the start room and expects every
// room to be reachable.
func TestOfficeConnected(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		o := buildOffice(t, seed)
		sx, sy, err := o.StartPoint()
		if err != nil {
			t.Fatalf("StartPoint() error = %v", err)
		}

		seen := map[[2]int]bool{{sx, sy}: true}
		queue := [][2]int{{sx, sy}}
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				n := [2]int{p[0] + d[0], p[1] + d[1]}
				if !seen[n] && o.IsPassable(n[0], n[1]) {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}

		for _, room := range o.Rooms {
			cx, cy := room.Center()
			if !seen[[2]int{cx, cy}] {
				t.Errorf("seed %d: room %s unreachable", seed, room.Name)
			}
		}
	}
}

func TestNewOfficeRejectsBadLayouts(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
	}{
		{"too small", Layout{Width: 2, Height: 2}},
		{"empty room", Layout{Width: 10, Height: 10, Rooms: []Room{{Name: "a", X: 1, Y: 1}}}},
		{"overlap", Layout{Width: 20, Height: 10, Rooms: []Room{
			{Name: "a", X: 1, Y: 1, Width: 5, Height: 5},
			{Name: "b", X: 3, Y: 3, Width: 5, Height: 5},
		}}},
	}

	for _, tt := range tests {
		if _, err := NewOffice(tt.layout, rand.New(rand.NewSource(1))); err == nil {
			t.Errorf("%s: NewOffice() error = nil, want error", tt.name)
		}
	}
}

func TestRandomPointInRoom(t *testing.T) {
	o := buildOffice(t, 7)
	room, _ := o.Room("desks")

	taken := map[[2]int]bool{}
	for i := 0; i < 5; i++ {
		x, y, err := o.RandomPointInRoom("desks", func(x, y int) bool { return taken[[2]int{x, y}] })
		if err != nil {
			t.Fatalf("RandomPointInRoom() error = %v", err)
		}
		if !room.Contains(x, y) {
			t.Errorf("point (%d,%d) outside room", x, y)
		}
		if taken[[2]int{x, y}] {
			t.Errorf("point (%d,%d) returned twice", x, y)
		}
		taken[[2]int{x, y}] = true
	}

	if _, _, err := o.RandomPointInRoom("attic", nil); !errors.Is(err, ErrUnknownRoom) {
		t.Errorf("RandomPointInRoom(attic) error = %v, want ErrUnknownRoom", err)
	}
}

func TestRoomAt(t *testing.T) {
	o := buildOffice(t, 1)

	if room, ok := o.RoomAt(3, 3); !ok || room.Name != "lobby" {
		t.Errorf("RoomAt(3,3) = %v, %v, want lobby", room.Name, ok)
	}
	if _, ok := o.RoomAt(0, 0); ok {
		t.Error("RoomAt(0,0) should not be in a room")
	}
}

func TestOfficeReproducibility(t *testing.T) {
	o1 := buildOffice(t, 12345)
	o2 := buildOffice(t, 12345)

	for y := 0; y < o1.Height; y++ {
		for x := 0; x < o1.Width; x++ {
			if o1.Tiles[y][x] != o2.Tiles[y][x] {
				t.Fatalf("Tile mismatch at (%d,%d)", x, y)
			}
		}
	}
}
