package ui

import "github.com/gdamore/tcell/v2"

// Signal is an abstract input action.
type Signal int

const (
	SignalNone Signal = iota
	// SignalMenu opens or closes the pause menu.
	SignalMenu
	// SignalConfirm accepts the focused option or talks to an NPC.
	SignalConfirm
	// SignalBack returns to the previous menu.
	SignalBack
	SignalUp
	SignalDown
	SignalLeft
	SignalRight
	// SignalDigit selects a numbered option; see Input.Digit.
	SignalDigit
	// SignalMainMenu leaves a paused game for the main menu.
	SignalMainMenu
	// SignalQuit exits the program.
	SignalQuit
)

// String returns the signal name.
func (s Signal) String() string {
	switch s {
	case SignalMenu:
		return "menu"
	case SignalConfirm:
		return "confirm"
	case SignalBack:
		return "back"
	case SignalUp:
		return "up"
	case SignalDown:
		return "down"
	case SignalLeft:
		return "left"
	case SignalRight:
		return "right"
	case SignalDigit:
		return "digit"
	case SignalMainMenu:
		return "main_menu"
	case SignalQuit:
		return "quit"
	default:
		return "none"
	}
}

// Input is a translated key press.
type Input struct {
	Signal Signal
	Digit  int // 1-9 for SignalDigit
}

// Translate maps a key event to an Input.
func Translate(ev *tcell.EventKey) Input {
	switch ev.Key() {
	case tcell.KeyEscape:
		return Input{Signal: SignalMenu}
	case tcell.KeyCtrlC:
		return Input{Signal: SignalQuit}
	case tcell.KeyEnter:
		return Input{Signal: SignalConfirm}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Input{Signal: SignalBack}
	case tcell.KeyUp:
		return Input{Signal: SignalUp}
	case tcell.KeyDown:
		return Input{Signal: SignalDown}
	case tcell.KeyLeft:
		return Input{Signal: SignalLeft}
	case tcell.KeyRight:
		return Input{Signal: SignalRight}

	case tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r == ' ':
			return Input{Signal: SignalConfirm}
		case r >= '1' && r <= '9':
			return Input{Signal: SignalDigit, Digit: int(r - '0')}
		}
		switch r {
		case 'b', 'B':
			return Input{Signal: SignalBack}
		case 'm', 'M':
			return Input{Signal: SignalMainMenu}
		case 'q', 'Q':
			return Input{Signal: SignalQuit}
		case 'w', 'k':
			return Input{Signal: SignalUp}
		case 's', 'j':
			return Input{Signal: SignalDown}
		case 'a', 'h':
			return Input{Signal: SignalLeft}
		case 'd', 'l':
			return Input{Signal: SignalRight}
		}
	}
	return Input{}
}
