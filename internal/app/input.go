package app

import (
	"errors"

	"github.com/samdwyer/officehub/internal/character"
	"github.com/samdwyer/officehub/internal/entity"
	"github.com/samdwyer/officehub/internal/game"
	"github.com/samdwyer/officehub/internal/ui"
)

// HandleInput routes one input to whichever screen currently owns it.
func (a *App) HandleInput(in ui.Input) {
	m := a.manager

	if in.Signal == ui.SignalQuit {
		if m.Transitioning() {
			a.stop()
			return
		}
		m.QuitGame()
		return
	}
	if m.Loading() {
		return
	}
	if in.Signal == ui.SignalMenu {
		m.HandleMenuSignal()
		return
	}

	if m.Menu() != game.MenuNone {
		a.handleMenu(in)
		return
	}
	if a.dialog.Visible() {
		a.handleDialogue(in)
		return
	}

	switch m.Level() {
	case game.LevelHub:
		if !m.PlayerInputBlocked() {
			a.handleHub(in)
		}
	case game.LevelMinigame:
		if in.Signal == ui.SignalConfirm {
			a.reaction.Confirm()
		}
	}
}

func (a *App) handleMenu(in ui.Input) {
	m := a.manager

	switch m.Menu() {
	case game.MenuMainRoot:
		if in.Signal == ui.SignalConfirm {
			m.ResetSession()
		}

	case game.MenuCharacterSelect:
		switch in.Signal {
		case ui.SignalDigit:
			if err := a.choices.SelectPortrait(in.Digit - 1); err != nil {
				a.status = err.Error()
			}
		case ui.SignalConfirm:
			if _, ok := a.choices.Portrait(); !ok {
				a.status = character.ErrNoPortrait.Error()
				return
			}
			a.status = ""
			m.SubmitCharacter()
		case ui.SignalBack:
			m.ReturnToPreviousMenu()
		}

	case game.MenuValuesSelect:
		switch in.Signal {
		case ui.SignalDigit:
			values := a.choices.Values()
			if i := in.Digit - 1; i < len(values) {
				a.choices.Toggle(values[i].ID)
			}
		case ui.SignalConfirm:
			a.submitValues()
		case ui.SignalBack:
			m.ReturnToPreviousMenu()
		}

	case game.MenuPause:
		switch in.Signal {
		case ui.SignalConfirm:
			m.Resume()
		case ui.SignalMainMenu:
			m.QuitToMainMenu()
		}

	case game.MenuGameOver:
		if in.Signal == ui.SignalConfirm {
			m.QuitToMainMenu()
		}
	}
}

func (a *App) submitValues() {
	messages, err := a.choices.Submit()
	if err != nil {
		a.status = err.Error()
		if errors.Is(err, character.ErrNoPortrait) {
			a.manager.ReturnToPreviousMenu()
		}
		return
	}
	if p, ok := a.choices.Portrait(); ok {
		a.player.Symbol = p.SymbolRune()
	}
	a.status = ""
	a.coord.AssignMessages(messages)
	a.manager.SubmitValuesAndPlay()
}

func (a *App) handleDialogue(in ui.Input) {
	switch in.Signal {
	case ui.SignalDigit:
		if err := a.dialog.Choose(in.Digit - 1); err != nil {
			a.logger.Printf("app: %v", err)
		}
	case ui.SignalConfirm:
		a.dialog.Advance()
	}
}

func (a *App) handleHub(in ui.Input) {
	switch in.Signal {
	case ui.SignalUp:
		a.tryMove(0, -1)
	case ui.SignalDown:
		a.tryMove(0, 1)
	case ui.SignalLeft:
		a.tryMove(-1, 0)
	case ui.SignalRight:
		a.tryMove(1, 0)
	case ui.SignalConfirm:
		n := entity.NearestAdjacent(a.npcs, a.player.X, a.player.Y)
		if n == nil {
			a.status = "Nobody to talk to here."
			return
		}
		a.status = ""
		if !a.coord.StartDialogue(n) {
			a.status = n.Name + " has nothing to say."
		}
	}
}

// tryMove attempts to move the player by the given delta.
func (a *App) tryMove(dx, dy int) {
	x, y := a.player.X+dx, a.player.Y+dy
	if !a.office.IsPassable(x, y) || entity.NPCAt(a.npcs, x, y) != nil {
		return
	}
	a.player.Move(dx, dy)
}
