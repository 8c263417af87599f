package gamedata

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/officehub/internal/dialogue"
)

// NPCDef defines a colleague placed in the office hub.
type NPCDef struct {
	ID    string `json:"id"`    // Unique identifier, compared case-insensitively
	Name  string `json:"name"`  // Display name
	Glyph string `json:"glyph"` // Single character for rendering
	Color string `json:"color"` // Hex color code
	Room  string `json:"room"`  // Office room the NPC stands in
}

// GlyphRune returns the glyph as a rune for rendering.
func (n *NPCDef) GlyphRune() rune {
	if len(n.Glyph) == 0 {
		return '?'
	}
	return rune(n.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (n *NPCDef) TCellColor() tcell.Color {
	return colorOr(n.Color, tcell.ColorWhite)
}

// NPCsFile represents the structure of npcs.json.
type NPCsFile struct {
	NPCs []NPCDef `json:"npcs"`
}

// LoadNPCs loads NPC definitions from the embedded npcs.json file.
func LoadNPCs() ([]NPCDef, error) {
	file, err := Load[NPCsFile]("npcs.json")
	if err != nil {
		return nil, err
	}
	return file.NPCs, nil
}

// DialogueScripts names the embedded stories used for fresh and completed
// conversations.
func DialogueScripts() dialogue.Scripts {
	return dialogue.Scripts{Fresh: "npc", Completed: "npc_completed"}
}
