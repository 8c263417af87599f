package gamedata

import "github.com/gdamore/tcell/v2"

// ValueDef defines a selectable personal value loaded from JSON.
type ValueDef struct {
	ID            string   `json:"id"`               // Unique identifier (e.g., "honesty")
	DisplayName   string   `json:"displayName"`      // Shown on the value card
	DialogMessage string   `json:"dialogMessageKey"` // Line handed to NPC dialogue
	IconKey       string   `json:"valueIconKey"`     // Single character for rendering
	Color         string   `json:"color"`            // Hex color code (e.g., "#00FF00")
	Anti          *AntiDef `json:"anti"`             // The opposing value; required
}

// AntiDef is the opposite of a value.
type AntiDef struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	IconKey     string `json:"antiIconKey"`
}

// IconRune returns the icon key as a rune for rendering.
func (v *ValueDef) IconRune() rune {
	if len(v.IconKey) == 0 {
		return '*'
	}
	return rune(v.IconKey[0])
}

// TCellColor returns the color as a tcell.Color.
func (v *ValueDef) TCellColor() tcell.Color {
	return colorOr(v.Color, tcell.ColorWhite)
}

// ValuesFile represents the structure of values.json.
type ValuesFile struct {
	Values []ValueDef `json:"values"`
}

// LoadValues loads value definitions from the embedded values.json file.
// Entries are returned as written; validation belongs to the caller.
func LoadValues() ([]ValueDef, error) {
	file, err := Load[ValuesFile]("values.json")
	if err != nil {
		return nil, err
	}
	return file.Values, nil
}
