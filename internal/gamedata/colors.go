package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseColor converts "#RRGGBB", "#RGB" or a tcell color name such as
// "teal" to a tcell.Color. The leading # is optional.
func ParseColor(s string) (tcell.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := tcell.ColorNames[strings.ToLower(s)]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return tcell.NewHexColor(int32(v)), nil
}

// colorOr parses s, falling back to def for empty or malformed colors.
func colorOr(s string, def tcell.Color) tcell.Color {
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}
