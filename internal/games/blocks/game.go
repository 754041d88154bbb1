// Package blocks adapts the falling-block engine to the terminal platform:
// it drives gravity from fixed simulation ticks, maps platform actions to
// rule commands and renders the well into a core.Screen.
package blocks

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/board"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/piece"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/progress"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/rules"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// Game IDs.
const (
	ID          = "blocks"
	ChallengeID = "blocks_challenge"
)

// Mode represents the game mode.
type Mode string

const (
	ModeNormal    Mode = "normal"
	ModeChallenge Mode = "challenge"
)

// Register adds both modes to r.
func Register(r *registry.Registry) {
	r.Register(ID, func(env registry.Env) registry.Game {
		return New(env)
	})
	r.Register(ChallengeID, func(env registry.Env) registry.Game {
		return NewChallenge(env)
	})
}

// Game implements registry.Game for one blocks session.
type Game struct {
	mode   Mode
	cfg    config.BlocksConfig
	logger *log.Logger
	sink   registry.ScoreSink
	clock  func() time.Time

	board *board.Board
	ctrl  *rules.Controller
	notes *Notifications
	snap  rules.Snapshot

	tick      uint64
	tickMS    int
	elapsedMS int
	delay     time.Duration

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a normal mode game: always visible, level progression.
func New(env registry.Env) *Game {
	return newGame(ModeNormal, env)
}

// NewChallenge creates a challenge mode game: obstructed visibility,
// doubled scoring, fixed speed.
func NewChallenge(env registry.Env) *Game {
	return newGame(ModeChallenge, env)
}

func newGame(mode Mode, env registry.Env) *Game {
	logger := env.Logger
	if logger == nil {
		logger = registry.DefaultEnv().Logger
	}
	cfg := env.Config
	if cfg.Validate() != nil {
		cfg = config.DefaultBlocksConfig()
	}
	id := ID
	if mode == ModeChallenge {
		id = ChallengeID
	}
	return &Game{
		mode:   mode,
		cfg:    cfg,
		logger: logger.With("game", id),
		sink:   env.Sink(id),
		clock:  time.Now,
		notes:  NewNotifications(DefaultNoticeMS),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeChallenge {
		return ChallengeID
	}
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeChallenge {
		return "Blocks (Challenge)"
	}
	return "Blocks"
}

// Reset builds a fresh board and controller and starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	gen, err := piece.NewGenerator(piece.Policy(g.cfg.Generator.Policy), rng)
	if err != nil {
		g.logger.Warn("falling back to random generator", "err", err)
		gen = piece.NewRandomGenerator(rng)
	}

	g.board = board.New(g.cfg.Board.Height, g.cfg.Board.Width, gen, g.visibility())
	g.ctrl = rules.New(g.board, g.policy(),
		rules.WithLevels(g.levels()),
		rules.WithHighScores(g.sink),
		rules.WithNotifier(g.notes),
		rules.WithLogger(g.logger),
		rules.WithLevelObserver(func(_ int, delay time.Duration) {
			g.delay = delay
		}),
	)

	g.tick = 0
	g.tickMS = cfg.TickDurationMS()
	g.elapsedMS = 0
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tooSmall = g.screenW < g.requiredWidth() || g.screenH < g.requiredHeight()
	g.notes.Clear()

	g.ctrl.Handle(rules.NewGame, rules.SourceUser)
	g.snap = g.ctrl.Snapshot()
	g.logger.Debug("new game", "mode", g.mode, "seed", cfg.Seed, "board", g.cfg.Board)
}

func (g *Game) visibility() board.Visibility {
	if g.mode != ModeChallenge {
		return board.AlwaysVisible{}
	}
	o := board.NewObstructed(g.clock)
	o.RevealDuration = g.cfg.Challenge.RevealDuration()
	o.RevealInterval = g.cfg.Challenge.RevealInterval()
	o.CountdownSeconds = g.cfg.Challenge.CountdownSeconds
	return o
}

func (g *Game) policy() rules.Policy {
	var p rules.Policy
	if g.mode == ModeChallenge {
		p = rules.Challenge()
	} else {
		p = rules.Normal()
		p.LevelMultiplier = g.cfg.Scoring.LevelMultiplier
		p.TrackLevel = g.cfg.Speed.Progression
	}
	p.InstantLock = g.cfg.Scoring.InstantLock
	return p
}

func (g *Game) levels() progress.Levels {
	l := progress.Levels{
		PointsPerLevel: g.cfg.Speed.PointsPerLevel,
		InitialDelay:   g.cfg.Speed.InitialDelay(),
		Multiplier:     g.cfg.Speed.Multiplier,
	}
	if g.mode == ModeChallenge {
		l.InitialDelay = g.cfg.Challenge.Delay()
	}
	return l
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.snap.GameOver {
		g.notes.Clear()
		g.elapsedMS = 0
		g.ctrl.Handle(rules.NewGame, rules.SourceUser)
		return g.result()
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && !g.snap.GameOver && !g.tooSmall {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || g.snap.GameOver {
		return g.result()
	}

	g.processInput(input)

	// Gravity on the controller's current delay
	g.elapsedMS += g.tickMS
	if g.elapsedMS >= g.delayMS() {
		g.elapsedMS = 0
		g.ctrl.Handle(rules.Down, rules.SourceTick)
	}

	g.notes.Advance(g.tickMS)
	return g.result()
}

// processInput maps actions to commands. Several actions may be handled in
// one tick; a hard drop ends the piece so nothing after it applies.
func (g *Game) processInput(input core.InputFrame) {
	if input.Has(core.ActionHold) {
		g.ctrl.Handle(rules.Hold, rules.SourceUser)
	}
	if input.Has(core.ActionUp) {
		g.ctrl.Handle(rules.Rotate, rules.SourceUser)
	}
	if input.Has(core.ActionLeft) {
		g.ctrl.Handle(rules.Left, rules.SourceUser)
	}
	if input.Has(core.ActionRight) {
		g.ctrl.Handle(rules.Right, rules.SourceUser)
	}
	if input.Has(core.ActionJump) {
		g.ctrl.Handle(rules.HardDrop, rules.SourceUser)
		g.elapsedMS = 0
		return
	}
	if input.Has(core.ActionDown) {
		g.ctrl.Handle(rules.Down, rules.SourceUser)
	}
}

func (g *Game) delayMS() int {
	ms := int(g.delay / time.Millisecond)
	if ms < 1 {
		return 1
	}
	return ms
}

func (g *Game) result() core.StepResult {
	g.snap = g.ctrl.Snapshot()
	return core.StepResult{
		State:  g.State(),
		Events: g.notes.Drain(),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.snap.Score,
		Level:    g.snap.Level,
		Lines:    g.snap.Lines,
		GameOver: g.snap.GameOver,
		Paused:   g.paused,
	}
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}
