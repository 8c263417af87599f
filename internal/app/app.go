// Package app wires the office hub together: data, orchestrator, dialogue,
// minigame and the terminal front end.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/officehub/internal/character"
	"github.com/samdwyer/officehub/internal/config"
	"github.com/samdwyer/officehub/internal/dialogue"
	"github.com/samdwyer/officehub/internal/entity"
	"github.com/samdwyer/officehub/internal/game"
	"github.com/samdwyer/officehub/internal/gamedata"
	"github.com/samdwyer/officehub/internal/minigame"
	"github.com/samdwyer/officehub/internal/scene"
	"github.com/samdwyer/officehub/internal/sched"
	"github.com/samdwyer/officehub/internal/script"
	"github.com/samdwyer/officehub/internal/telemetry"
	"github.com/samdwyer/officehub/internal/ui"
	"github.com/samdwyer/officehub/internal/world"
)

// App holds the entire game.
type App struct {
	cfg    config.Config
	logger *log.Logger
	rng    *rand.Rand

	screen   *ui.Screen
	renderer *ui.Renderer

	sched    *sched.Scheduler
	clock    *game.WorldClock
	manager  *game.Manager
	coord    *dialogue.Coordinator
	dialog   *dialogue.Controller
	choices  *character.Model
	reaction *minigame.Reaction

	office  *world.Office
	player  *entity.Player
	npcDefs []gamedata.NPCDef
	npcs    []*entity.NPC

	status  string
	running bool
}

// New builds the game. A nil screen gives a headless App driven through
// HandleInput and Step.
func New(ctx context.Context, cfg config.Config, screen *ui.Screen, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Default()
	}

	// Transition spans are roots of their own, not children of app.init.
	runCtx := context.WithoutCancel(ctx)
	ctx, span := telemetry.Tracer("app").Start(ctx, "app.init")
	defer span.End()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	span.SetAttributes(attribute.Int64("app.seed", seed))

	a := &App{
		cfg:    cfg,
		logger: logger,
		rng:    rand.New(rand.NewSource(seed)),
		screen: screen,
	}
	if screen != nil {
		a.renderer = ui.NewRenderer(screen)
	}

	registry, err := gamedata.LoadSceneRegistry(logger)
	if err != nil {
		return nil, err
	}
	values, err := gamedata.LoadValues()
	if err != nil {
		return nil, err
	}
	values = character.ValidateValues(values, logger)
	if len(values) < cfg.RequiredValues {
		return nil, fmt.Errorf("need %d values, only %d usable", cfg.RequiredValues, len(values))
	}
	portraits, err := gamedata.LoadPortraits()
	if err != nil {
		return nil, err
	}
	if a.npcDefs, err = gamedata.LoadNPCs(); err != nil {
		return nil, err
	}
	settings, err := gamedata.LoadYAML[minigame.Settings]("minigame.yaml")
	if err != nil {
		return nil, err
	}
	layout, err := gamedata.LoadYAML[world.Layout]("office.yaml")
	if err != nil {
		return nil, err
	}

	if a.office, err = world.NewOffice(layout, a.rng); err != nil {
		return nil, err
	}
	a.office.Build(ctx)
	x, y, err := a.office.StartPoint()
	if err != nil {
		return nil, err
	}
	a.player = entity.NewPlayer(x, y)

	host := scene.NewMemoryHost(cfg.LoadLatency)
	a.sched = sched.New(logger)
	a.clock = game.NewWorldClock()
	a.manager = game.NewManager(scene.NewLoader(registry, host, logger), a.sched, game.Options{
		Context: runCtx,
		Clock:   a.clock,
		Quitter: game.QuitFunc(a.stop),
		Logger:  logger,
	})

	a.coord = dialogue.NewCoordinator(a.manager, gamedata.DialogueScripts(), logger)
	a.coord.Bind(a.manager.Events)
	a.manager.BindCompletion(a.coord)

	engine := script.NewEngine(logger)
	if err := engine.LoadFS(gamedata.FS(), gamedata.DialoguePattern); err != nil {
		return nil, err
	}
	a.dialog = dialogue.NewController(engine, a.coord, a.manager.Events, logger)

	a.choices = character.NewModel(values, portraits, cfg.RequiredValues, logger)
	a.choices.Bind(a.manager.Events)

	a.reaction = minigame.NewReaction(settings, a.rng, logger)

	a.subscribe()

	span.SetAttributes(
		attribute.Int("app.values", len(values)),
		attribute.Int("app.npcs", len(a.npcDefs)),
		attribute.Int("app.stories", engine.Stories()),
	)
	return a, nil
}

func (a *App) subscribe() {
	ev := a.manager.Events

	ev.LevelStateChanged.Subscribe(func(level game.LevelState) {
		if level != game.LevelHub {
			a.despawnNPCs()
		}
	})
	ev.LevelSceneReady.Subscribe(func(level game.LevelState) {
		switch level {
		case game.LevelHub:
			a.spawnNPCs()
		case game.LevelMinigame:
			a.status = ""
			a.reaction.Start()
		}
	})
	ev.SessionReset.Subscribe(func(uuid.UUID) {
		a.reaction.ResetSession()
		a.status = ""
		a.player.Symbol = '@'
		if x, y, err := a.office.StartPoint(); err == nil {
			a.player.PlaceAt(x, y)
		}
		for _, n := range a.npcs {
			a.coord.RegisterNPC(n)
		}
	})
	ev.TransitionFailed.Subscribe(func(err error) {
		a.status = err.Error()
	})

	a.reaction.Finished.Subscribe(func(o minigame.Outcome) {
		if o.Success {
			a.status = "Backlog cleared!"
		} else {
			a.status = fmt.Sprintf("Missed it. Stress %d", o.Stress)
		}
		a.manager.SetLevelState(game.LevelHub)
	})
}

// spawnNPCs creates fresh NPC instances for the hub and registers them.
func (a *App) spawnNPCs() {
	a.npcs = a.npcs[:0]
	for i := range a.npcDefs {
		def := &a.npcDefs[i]
		x, y, err := a.office.RandomPointInRoom(def.Room, a.occupied)
		if err != nil {
			a.logger.Printf("app: cannot place NPC %q: %v", def.ID, err)
			continue
		}
		n := entity.NewNPC(def, x, y)
		a.coord.RegisterNPC(n)
		a.npcs = append(a.npcs, n)
	}
}

func (a *App) despawnNPCs() {
	for _, n := range a.npcs {
		a.coord.UnregisterNPC(n)
	}
	a.npcs = nil
}

func (a *App) occupied(x, y int) bool {
	if a.player.X == x && a.player.Y == y {
		return true
	}
	return entity.NPCAt(a.npcs, x, y) != nil
}

func (a *App) stop() {
	a.logger.Printf("app: stopping")
	a.running = false
}

// Start boots the orchestrator.
func (a *App) Start() {
	a.running = true
	a.manager.Start()
}

// Running reports whether the main loop should continue.
func (a *App) Running() bool { return a.running }

// Step advances the scheduler one tick and world time by dt real seconds.
func (a *App) Step(dt float64) {
	a.sched.Tick()
	worldDT := a.clock.Advance(dt)
	if a.manager.Level() == game.LevelMinigame && !a.manager.Loading() {
		a.reaction.Update(worldDT)
	}
}

// Run executes the main loop until the game quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a.screen == nil {
		return errors.New("app: no screen")
	}
	defer a.screen.Close()

	quit := make(chan struct{})
	defer close(quit)
	events := a.screen.Events(quit)

	ticker := time.NewTicker(a.cfg.TickRate)
	defer ticker.Stop()
	dt := a.cfg.TickRate.Seconds()

	a.Start()
	for a.running {
		a.render()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a.HandleInput(ui.Translate(ev))
			case *tcell.EventResize:
				a.screen.Sync()
			}
		case <-ticker.C:
			a.Step(dt)
		}
	}
	return nil
}

func (a *App) render() {
	if a.renderer == nil {
		return
	}
	a.renderer.Render(a.Frame())
}
