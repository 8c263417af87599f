// Package game owns the run state: the current level, the menu overlay, the
// pause/loading/dialogue flags, and the sequence that moves between levels.
package game

// LevelState is the top-level gameplay mode.
type LevelState int

const (
	// LevelBoot is the state before the first transition.
	LevelBoot LevelState = iota
	// LevelHub is the office hub world.
	LevelHub
	// LevelMinigame is the sub-event entered from a conversation.
	LevelMinigame
	// LevelQuitting is terminal; entering it quits the process.
	LevelQuitting
)

// String returns a human-readable level name.
func (l LevelState) String() string {
	switch l {
	case LevelBoot:
		return "boot"
	case LevelHub:
		return "hub"
	case LevelMinigame:
		return "minigame"
	case LevelQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// MenuScreen is the UI overlay currently shown.
type MenuScreen int

const (
	// MenuNone means gameplay is not obstructed by a menu.
	MenuNone MenuScreen = iota
	MenuMainRoot
	MenuCharacterSelect
	MenuValuesSelect
	MenuPause
	// MenuGameOver is shown once every NPC conversation is complete.
	MenuGameOver
)

// String returns a human-readable menu name.
func (m MenuScreen) String() string {
	switch m {
	case MenuNone:
		return "none"
	case MenuMainRoot:
		return "main_menu"
	case MenuCharacterSelect:
		return "character_select"
	case MenuValuesSelect:
		return "values_select"
	case MenuPause:
		return "pause"
	case MenuGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// RunState summarizes what is currently blocking or describing play. It is
// derived from the flags and the menu, never stored.
type RunState int

const (
	RunLoading RunState = iota
	RunPaused
	RunDialogue
	RunMenu
	RunPlaying
)

// String returns a human-readable run state name.
func (r RunState) String() string {
	switch r {
	case RunLoading:
		return "loading"
	case RunPaused:
		return "paused"
	case RunDialogue:
		return "dialogue"
	case RunMenu:
		return "menu"
	case RunPlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// DeriveRunState applies the priority loading > paused > dialogue > menu >
// playing.
func DeriveRunState(loading, paused, inDialogue bool, menu MenuScreen) RunState {
	switch {
	case loading:
		return RunLoading
	case paused:
		return RunPaused
	case inDialogue:
		return RunDialogue
	case menu != MenuNone:
		return RunMenu
	default:
		return RunPlaying
	}
}
