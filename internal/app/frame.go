package app

import (
	"github.com/samdwyer/officehub/internal/entity"
	"github.com/samdwyer/officehub/internal/game"
	"github.com/samdwyer/officehub/internal/ui"
)

// Frame captures the current state for the renderer.
func (a *App) Frame() ui.Frame {
	m := a.manager
	f := ui.Frame{
		Level:    m.Level(),
		Menu:     m.Menu(),
		Run:      m.RunState(),
		Session:  m.Session().String()[:8],
		Status:   a.status,
		Office:   a.office,
		Player:   a.player,
		NPCs:     a.npcs,
		Required: a.choices.Required(),
	}

	switch f.Menu {
	case game.MenuCharacterSelect:
		chosen, ok := a.choices.Portrait()
		for _, p := range a.choices.Portraits() {
			f.Portraits = append(f.Portraits, ui.Option{
				Label:    p.Name,
				Symbol:   p.SymbolRune(),
				Selected: ok && p.ID == chosen.ID,
			})
		}
	case game.MenuValuesSelect:
		for _, v := range a.choices.Values() {
			f.Values = append(f.Values, ui.Option{
				Label:    v.DisplayName,
				Symbol:   v.IconRune(),
				Color:    v.TCellColor(),
				Selected: a.choices.IsSelected(v.ID),
			})
		}
	}

	if a.dialog.Visible() {
		view := &ui.DialogueView{
			Lines:   a.dialog.Lines(),
			Choices: a.dialog.Choices(),
		}
		if n, ok := a.dialog.NPC().(*entity.NPC); ok {
			view.Speaker = n.Name
		}
		f.Dialogue = view
	}

	if f.Level == game.LevelMinigame {
		lo, hi := a.reaction.Zone()
		f.Minigame = &ui.MinigameView{
			Position:  a.reaction.Position(),
			ZoneLo:    lo,
			ZoneHi:    hi,
			Remaining: a.reaction.Remaining(),
			Stress:    a.reaction.Stress(),
		}
	}
	return f
}
