package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/officehub/internal/gamedata"
)

// NPC is a colleague standing somewhere in the office.
type NPC struct {
	Def     *gamedata.NPCDef // Definition the NPC was created from
	Name    string           // Display name
	Symbol  rune             // Display symbol
	X, Y    int              // Position in the office
	Script  string           // Dialogue story to run when talked to
	Message string           // Value message assigned for this session
}

// NewNPC creates an NPC from a data-driven definition.
func NewNPC(def *gamedata.NPCDef, x, y int) *NPC {
	return &NPC{
		Def:    def,
		Name:   def.Name,
		Symbol: def.GlyphRune(),
		X:      x,
		Y:      y,
	}
}

// ID returns the identifier the dialogue records are keyed by.
func (n *NPC) ID() string {
	return n.Def.ID
}

// SetScript sets the dialogue story variant.
func (n *NPC) SetScript(ref string) {
	n.Script = ref
}

// SetAssignedMessage sets the value message this NPC talks about.
func (n *NPC) SetAssignedMessage(msg string) {
	n.Message = msg
}

// Color returns the NPC's display color.
func (n *NPC) Color() tcell.Color {
	return n.Def.TCellColor()
}

// IsAdjacent reports whether (x, y) is next to the NPC, diagonals included.
func (n *NPC) IsAdjacent(x, y int) bool {
	dx, dy := n.X-x, n.Y-y
	if dx == 0 && dy == 0 {
		return false
	}
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

// NPCAt returns the NPC occupying (x, y), if any.
func NPCAt(npcs []*NPC, x, y int) *NPC {
	for _, n := range npcs {
		if n.X == x && n.Y == y {
			return n
		}
	}
	return nil
}

// NearestAdjacent returns the first NPC next to (x, y), in slice order.
func NearestAdjacent(npcs []*NPC, x, y int) *NPC {
	for _, n := range npcs {
		if n.IsAdjacent(x, y) {
			return n
		}
	}
	return nil
}
