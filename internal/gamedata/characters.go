package gamedata

// PortraitDef defines a selectable player portrait loaded from JSON.
type PortraitDef struct {
	ID     string `json:"id"`     // Unique identifier (e.g., "analyst")
	Name   string `json:"name"`   // Display name (e.g., "Analyst")
	Symbol string `json:"symbol"` // Single character for rendering (e.g., "A")
}

// SymbolRune returns the symbol as a rune for rendering.
func (p *PortraitDef) SymbolRune() rune {
	if len(p.Symbol) == 0 {
		return '?'
	}
	return rune(p.Symbol[0])
}

// PortraitsFile represents the structure of portraits.json.
type PortraitsFile struct {
	Portraits []PortraitDef `json:"portraits"`
}

// LoadPortraits loads portrait options from the embedded portraits.json file.
func LoadPortraits() ([]PortraitDef, error) {
	file, err := Load[PortraitsFile]("portraits.json")
	if err != nil {
		return nil, err
	}
	return file.Portraits, nil
}
