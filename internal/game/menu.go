package game

// Menu flow used by the front end's buttons.

// StartNewGameFlow opens character selection.
func (m *Manager) StartNewGameFlow() {
	m.SetMenuState(MenuCharacterSelect)
}

// SubmitCharacter moves from character selection to value selection.
func (m *Manager) SubmitCharacter() {
	m.SetMenuState(MenuValuesSelect)
}

// SubmitValuesAndPlay closes the menus and hands control to the player.
func (m *Manager) SubmitValuesAndPlay() {
	m.SetMenuState(MenuNone)
}

// ReturnToPreviousMenu reopens the menu that was shown before the current
// one. Only one level of history is kept.
func (m *Manager) ReturnToPreviousMenu() {
	m.SetMenuState(m.previousMenu)
}

// QuitToMainMenu opens the main menu.
func (m *Manager) QuitToMainMenu() {
	if m.paused {
		m.paused = false
		m.clock.SetTimeScale(1)
		m.Events.PauseChanged.Publish(false)
		m.notifyRunStateMaybeChanged()
	}
	m.SetMenuState(MenuMainRoot)
}

// Resume leaves the pause menu.
func (m *Manager) Resume() {
	m.ExitPause()
}

// QuitGame transitions to LevelQuitting.
func (m *Manager) QuitGame() {
	m.SetLevelState(LevelQuitting)
}
