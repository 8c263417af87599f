package game

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/samdwyer/officehub/internal/scene"
	"github.com/samdwyer/officehub/internal/sched"
)

// Manager is the run-state orchestrator. It owns the level, menu and flag
// state, guards every mutation, and sequences level transitions through the
// scene Loader. All methods must be called from the scheduling goroutine.
type Manager struct {
	loader     *scene.Loader
	sched      *sched.Scheduler
	clock      Clock
	quitter    Quitter
	completion CompletionChecker
	logger     *log.Logger
	ctx        context.Context

	level        LevelState
	menu         MenuScreen
	previousMenu MenuScreen

	paused     bool
	loading    bool
	inDialogue bool

	transitioning  bool
	residentLoaded bool
	lastRunState   RunState
	session        uuid.UUID

	// Events are published as state changes.
	Events *Events
}

// NewManager creates a Manager in LevelBoot with no menu open.
func NewManager(loader *scene.Loader, s *sched.Scheduler, opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Clock == nil {
		opts.Clock = noopClock{}
	}
	if opts.Quitter == nil {
		logger := opts.Logger
		opts.Quitter = QuitFunc(func() { logger.Printf("game: quit requested") })
	}

	m := &Manager{
		loader:     loader,
		sched:      s,
		clock:      opts.Clock,
		quitter:    opts.Quitter,
		completion: noopCompletion{},
		logger:     opts.Logger,
		ctx:        opts.Context,
		level:      LevelBoot,
		menu:       MenuNone,
		session:    uuid.New(),
		Events:     newEvents(opts.Logger),
	}
	m.lastRunState = m.RunState()

	m.Events.LevelSceneReady.Subscribe(m.onLevelSceneReady)
	return m
}

// BindCompletion sets the checker consulted whenever the hub becomes ready.
func (m *Manager) BindCompletion(c CompletionChecker) {
	if c == nil {
		c = noopCompletion{}
	}
	m.completion = c
}

// Level returns the committed level.
func (m *Manager) Level() LevelState { return m.level }

// Menu returns the open menu.
func (m *Manager) Menu() MenuScreen { return m.menu }

// PreviousMenu returns the menu that was open before the current one.
func (m *Manager) PreviousMenu() MenuScreen { return m.previousMenu }

// Paused reports whether the game is paused.
func (m *Manager) Paused() bool { return m.paused }

// Loading reports whether a level transition is loading content.
func (m *Manager) Loading() bool { return m.loading }

// InDialogue reports whether a conversation is in progress.
func (m *Manager) InDialogue() bool { return m.inDialogue }

// Transitioning reports whether a level transition is in flight.
func (m *Manager) Transitioning() bool { return m.transitioning }

// Session returns the id of the current session.
func (m *Manager) Session() uuid.UUID { return m.session }

// RunState derives the current run state from the flags and the menu.
func (m *Manager) RunState() RunState {
	return DeriveRunState(m.loading, m.paused, m.inDialogue, m.menu)
}

// PlayerInputBlocked reports whether world input should be ignored.
func (m *Manager) PlayerInputBlocked() bool {
	return m.paused || m.loading || m.inDialogue || m.menu != MenuNone
}

// Start performs the boot sequence: open the main menu and load the hub.
func (m *Manager) Start() {
	m.lastRunState = m.RunState()
	m.SetMenuState(MenuMainRoot)
	m.SetLevelState(LevelHub)
}

// SetMenuState opens target as the current overlay. It does nothing while
// loading or when target is already open. Opening a menu ends any dialogue.
func (m *Manager) SetMenuState(target MenuScreen) {
	if m.menu == target {
		return
	}
	if m.loading {
		return
	}

	if target != MenuNone {
		m.ExitDialogue()
	}

	m.previousMenu = m.menu
	m.menu = target
	m.Events.MenuStateChanged.Publish(target)
	m.notifyRunStateMaybeChanged()
}

// EnterDialogue starts a conversation. It returns false while loading or
// while any menu is open.
func (m *Manager) EnterDialogue() bool {
	if m.loading || m.menu != MenuNone {
		return false
	}
	if m.inDialogue {
		return true
	}

	m.inDialogue = true
	m.Events.DialogueChanged.Publish(true)
	m.notifyRunStateMaybeChanged()
	return true
}

// ExitDialogue ends the current conversation, if any.
func (m *Manager) ExitDialogue() {
	if !m.inDialogue {
		return
	}

	m.inDialogue = false
	m.Events.DialogueChanged.Publish(false)
	m.notifyRunStateMaybeChanged()
}

// EnterPause freezes world time and opens the pause menu. It does nothing
// while loading or while another menu is open.
func (m *Manager) EnterPause() {
	if m.loading || m.menu != MenuNone {
		return
	}

	m.paused = true
	m.clock.SetTimeScale(0)
	m.Events.PauseChanged.Publish(true)
	m.notifyRunStateMaybeChanged()

	m.SetMenuState(MenuPause)
}

// ExitPause resumes world time and closes the pause menu.
func (m *Manager) ExitPause() {
	m.paused = false
	m.clock.SetTimeScale(1)
	m.Events.PauseChanged.Publish(false)
	m.notifyRunStateMaybeChanged()

	m.SetMenuState(MenuNone)
}

// HandleMenuSignal reacts to the open/close menu input: it toggles pause,
// except while loading or inside the minigame.
func (m *Manager) HandleMenuSignal() {
	if m.loading {
		return
	}
	if m.level == LevelMinigame {
		return
	}

	if m.paused {
		m.ExitPause()
	} else {
		m.EnterPause()
	}
}

// ResetSession starts a fresh session: subscribers to SessionReset clear
// their per-run state, then the new-game menu flow begins.
func (m *Manager) ResetSession() {
	m.session = uuid.New()
	m.logger.Printf("game: session reset, new session %s", m.session)
	m.Events.SessionReset.Publish(m.session)
	m.StartNewGameFlow()
}

func (m *Manager) notifyRunStateMaybeChanged() {
	next := m.RunState()
	if next == m.lastRunState {
		return
	}
	m.lastRunState = next
	m.Events.RunStateChanged.Publish(next)
}

func (m *Manager) onLevelSceneReady(level LevelState) {
	if level == LevelHub {
		m.completion.CheckAllComplete()
	}
}
