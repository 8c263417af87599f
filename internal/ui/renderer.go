package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/officehub/internal/entity"
	"github.com/samdwyer/officehub/internal/game"
	"github.com/samdwyer/officehub/internal/world"
)

// Frame is everything needed to draw one screen.
type Frame struct {
	Level   game.LevelState
	Menu    game.MenuScreen
	Run     game.RunState
	Session string
	Status  string

	Office *world.Office
	Player *entity.Player
	NPCs   []*entity.NPC

	Dialogue  *DialogueView
	Portraits []Option
	Values    []Option
	Required  int
	Minigame  *MinigameView
}

// Option is one entry of a selection menu.
type Option struct {
	Label    string
	Symbol   rune
	Color    tcell.Color
	Selected bool
}

// DialogueView is the conversation box.
type DialogueView struct {
	Speaker string
	Lines   []string
	Choices []string
}

// MinigameView is the reaction bar.
type MinigameView struct {
	Position  float64
	ZoneLo    float64
	ZoneHi    float64
	Remaining float64
	Stress    int
}

const barWidth = 40

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws f and flushes it to the terminal.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	switch f.Level {
	case game.LevelHub:
		r.renderOffice(f)
	case game.LevelMinigame:
		if f.Minigame != nil {
			r.renderMinigame(*f.Minigame)
		}
	}

	if f.Run == game.RunLoading {
		r.renderCentered("Loading...", tcell.StyleDefault.Foreground(tcell.ColorYellow))
	} else if f.Menu != game.MenuNone {
		r.renderMenu(f)
	}

	if f.Dialogue != nil {
		r.renderDialogue(*f.Dialogue)
	}

	r.renderStatus(f)
	r.screen.Show()
}

func (r *Renderer) renderOffice(f Frame) {
	if f.Office == nil {
		return
	}
	const top = 1

	for y := 0; y < f.Office.Height; y++ {
		for x := 0; x < f.Office.Width; x++ {
			tile := f.Office.GetTile(x, y)
			r.screen.SetContent(x, y+top, tile.Rune(), tileStyle(tile))
		}
	}

	for _, n := range f.NPCs {
		style := tcell.StyleDefault.Foreground(n.Color())
		r.screen.SetContent(n.X, n.Y+top, n.Symbol, style)
	}

	if f.Player != nil {
		playerStyle := tcell.StyleDefault.
			Foreground(tcell.ColorYellow).
			Bold(true)
		r.screen.SetContent(f.Player.X, f.Player.Y+top, f.Player.Symbol, playerStyle)
	}
}

// tileStyle returns the appropriate style for a tile type.
func tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileCorridor:
		return tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	default:
		return tcell.StyleDefault
	}
}

func (r *Renderer) renderMinigame(m MinigameView) {
	const x0, y0 = 2, 3
	plain := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	zone := tcell.StyleDefault.Foreground(tcell.ColorGreen)

	r.screen.DrawText(x0, y0, "Press Enter when the marker is in the green zone.", plain)

	lo := int(m.ZoneLo * float64(barWidth-1))
	hi := int(m.ZoneHi * float64(barWidth-1))
	marker := int(m.Position * float64(barWidth-1))

	r.screen.SetContent(x0, y0+2, '[', plain)
	for i := 0; i < barWidth; i++ {
		ch, style := '-', plain
		if i >= lo && i <= hi {
			ch, style = '=', zone
		}
		if i == marker {
			ch, style = '^', tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
		}
		r.screen.SetContent(x0+1+i, y0+2, ch, style)
	}
	r.screen.SetContent(x0+1+barWidth, y0+2, ']', plain)

	info := fmt.Sprintf("Stress: %d", m.Stress)
	if m.Remaining >= 0 {
		info += fmt.Sprintf("   Time: %.1fs", m.Remaining)
	}
	r.screen.DrawText(x0, y0+4, info, plain)
}

func (r *Renderer) renderMenu(f Frame) {
	var lines []string
	switch f.Menu {
	case game.MenuMainRoot:
		lines = []string{"OFFICE HUB", "", "Enter  New game", "q      Quit"}
	case game.MenuCharacterSelect:
		lines = []string{"Choose your portrait", ""}
		lines = append(lines, optionLines(f.Portraits)...)
		lines = append(lines, "", "Enter  Continue")
	case game.MenuValuesSelect:
		lines = []string{fmt.Sprintf("Choose %d values", f.Required), ""}
		lines = append(lines, optionLines(f.Values)...)
		lines = append(lines, "", "Enter  Start   b  Back")
		x0, y0 := r.renderBox(lines)
		r.colorSymbols(f.Values, x0, y0+2)
		return
	case game.MenuPause:
		lines = []string{"PAUSED", "", "Esc/Enter  Resume", "m          Main menu", "q          Quit"}
	case game.MenuGameOver:
		lines = []string{"Everyone has been helped.", "", "Enter  Main menu", "q      Quit"}
	}
	r.renderBox(lines)
}

// colorSymbols repaints option symbols drawn by renderBox in their own color.
func (r *Renderer) colorSymbols(options []Option, x0, y0 int) {
	for i, o := range options {
		if o.Color == tcell.ColorDefault {
			continue
		}
		style := tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(o.Color)
		r.screen.SetContent(x0+4, y0+i, o.Symbol, style)
	}
}

func optionLines(options []Option) []string {
	lines := make([]string, len(options))
	for i, o := range options {
		mark := " "
		if o.Selected {
			mark = "*"
		}
		lines[i] = fmt.Sprintf("%d %s %c %s", i+1, mark, o.Symbol, o.Label)
	}
	return lines
}

// renderBox draws lines centered in a filled box and returns the position
// of the first line.
func (r *Renderer) renderBox(lines []string) (x, y int) {
	width, height := r.screen.Size()
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len(l))
	}
	boxW += 4
	x0 := max(0, (width-boxW)/2)
	y0 := max(1, (height-len(lines)-2)/2)

	style := tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	for y := 0; y < len(lines)+2; y++ {
		for x := 0; x < boxW; x++ {
			r.screen.SetContent(x0+x, y0+y, ' ', style)
		}
	}
	for i, l := range lines {
		r.screen.DrawText(x0+2, y0+1+i, l, style)
	}
	return x0 + 2, y0 + 1
}

func (r *Renderer) renderDialogue(d DialogueView) {
	_, height := r.screen.Size()
	rows := len(d.Lines) + len(d.Choices) + 1
	y := max(1, height-rows-1)

	name := tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	text := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	r.screen.DrawText(1, y, d.Speaker+":", name)
	for _, l := range d.Lines {
		y++
		r.screen.DrawText(3, y, l, text)
	}
	for i, c := range d.Choices {
		y++
		r.screen.DrawText(3, y, fmt.Sprintf("%d) %s", i+1, c), name)
	}
	if len(d.Choices) == 0 {
		y++
		r.screen.DrawText(3, y, "[Enter]", text)
	}
}

func (r *Renderer) renderCentered(msg string, style tcell.Style) {
	width, height := r.screen.Size()
	r.screen.DrawText(max(0, (width-len(msg))/2), height/2, msg, style)
}

func (r *Renderer) renderStatus(f Frame) {
	parts := []string{f.Level.String(), f.Run.String()}
	if f.Session != "" {
		parts = append(parts, "session "+f.Session)
	}
	if f.Status != "" {
		parts = append(parts, f.Status)
	}
	r.RenderMessage(strings.Join(parts, " | "), 0)
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.screen.DrawText(0, y, msg, style)
}
