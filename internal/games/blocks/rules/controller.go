// Package rules turns player and timer commands into board operations,
// applying a mode's scoring policy, level progression, notifications and
// game-over handling.
package rules

import (
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/board"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/grid"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/progress"
)

// Command is a gameplay request.
type Command int

const (
	Left Command = iota + 1
	Right
	Down
	Rotate
	Hold
	HardDrop
	Spawn
	NewGame
)

var commandNames = map[Command]string{
	Left:     "left",
	Right:    "right",
	Down:     "down",
	Rotate:   "rotate",
	Hold:     "hold",
	HardDrop: "hard_drop",
	Spawn:    "spawn",
	NewGame:  "new_game",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Source tells who issued a command. Only user-issued down steps earn
// soft-drop points.
type Source int

const (
	SourceUser Source = iota
	SourceTick
)

// GameOverMessage is sent to the notifier when a spawn is blocked.
const GameOverMessage = "GAME OVER"

// HighScoreSink receives the final score of every finished game.
type HighScoreSink interface {
	AddScore(score int) error
}

// Notifier shows short transient messages to the player.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(msg string) {
	f(msg)
}

// Result describes what a command did.
type Result struct {
	Moved    bool
	Locked   bool
	Cleared  *grid.ClearRow
	GameOver bool
	View     board.ViewData
}

// Option configures a Controller.
type Option func(*Controller)

// WithHighScores sets where final scores are recorded.
func WithHighScores(sink HighScoreSink) Option {
	return func(c *Controller) {
		c.sink = sink
	}
}

// WithNotifier sets the message target.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithLevels overrides the level and speed curve.
func WithLevels(l progress.Levels) Option {
	return func(c *Controller) {
		c.levels = l
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLevelObserver registers a callback for level and speed changes.
// It is also called on every new game.
func WithLevelObserver(fn func(level int, delay time.Duration)) Option {
	return func(c *Controller) {
		c.onLevel = fn
	}
}

// Controller serializes all board access behind a single entry point.
type Controller struct {
	mu sync.Mutex

	board  *board.Board
	policy Policy
	levels progress.Levels

	tracker *progress.Tracker
	stats   *Stats
	over    bool

	sink     HighScoreSink
	notifier Notifier
	logger   *log.Logger
	onLevel  func(level int, delay time.Duration)
}

// New creates a controller for b. The game starts with a NewGame command.
func New(b *board.Board, p Policy, opts ...Option) *Controller {
	c := &Controller{
		board:  b,
		policy: p,
		levels: progress.DefaultLevels(),
		stats:  NewStats(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tracker = progress.NewTracker(c.levels)
	return c
}

// Policy returns the controller's scoring policy.
func (c *Controller) Policy() Policy {
	return c.policy
}

// Handle applies cmd and returns its outcome. After game over only NewGame
// has any effect. Before the first piece spawns, only NewGame and Spawn do.
func (c *Controller) Handle(cmd Command, src Source) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	var res Result
	if c.over && cmd != NewGame {
		res.GameOver = true
		res.View = c.board.ViewData()
		return res
	}
	if !c.board.HasActive() && cmd != NewGame && cmd != Spawn {
		res.View = c.board.ViewData()
		return res
	}

	switch cmd {
	case Left:
		res.Moved = c.board.MoveLeft()
	case Right:
		res.Moved = c.board.MoveRight()
	case Rotate:
		res.Moved = c.board.Rotate()
	case Hold:
		res.Moved = c.board.Hold()
		if res.Moved && c.board.Blocked() {
			c.gameOver()
		}
	case Down:
		c.down(src, &res)
	case HardDrop:
		rows := c.board.HardDrop()
		c.award(rows * c.policy.HardDropPointsPerRow)
		res.Moved = rows > 0
		c.lock(&res)
	case Spawn:
		if c.board.Spawn() {
			c.gameOver()
		}
	case NewGame:
		c.newGame()
	default:
		c.logger.Warn("unknown command", "cmd", int(cmd))
	}

	res.GameOver = c.over
	res.View = c.board.ViewData()
	return res
}

func (c *Controller) down(src Source, res *Result) {
	if c.board.MoveDown() {
		res.Moved = true
		if c.policy.InstantLock && c.board.Offset().Y == c.board.ShadowY() {
			c.lock(res)
		} else if src == SourceUser {
			c.award(c.policy.SoftDropPoints)
		}
	} else {
		c.lock(res)
	}

	if c.policy.ForwardCountdown {
		if msg, ok := c.board.Countdown(); ok {
			c.notify(msg)
		}
	}
}

// lock merges the active piece, clears rows, scores them and spawns the
// next piece.
func (c *Controller) lock(res *Result) {
	c.board.Merge()
	cleared := c.board.ClearRows()
	res.Locked = true

	lines := cleared.LinesRemoved()
	c.stats.RecordLock(lines)
	if lines > 0 {
		points := c.policy.clearPoints(cleared.ScoreBonus, c.tracker.Level())
		res.Cleared = &cleared
		c.notify("+" + strconv.Itoa(points))
		c.award(points)
	}

	if c.board.Spawn() {
		c.gameOver()
	}
}

func (c *Controller) award(points int) {
	if points <= 0 {
		return
	}
	score := c.board.Score()
	score.Add(points)
	if !c.policy.TrackLevel {
		return
	}
	if level, changed := c.tracker.Observe(score.Value()); changed {
		c.notify("LEVEL " + strconv.Itoa(level))
		c.logger.Debug("level up", "level", level, "delay", c.tracker.Delay())
		if c.onLevel != nil {
			c.onLevel(level, c.tracker.Delay())
		}
	}
}

func (c *Controller) gameOver() {
	if c.over {
		return
	}
	c.over = true
	final := c.board.Score().Value()
	c.logger.Info("game over", "mode", c.policy.Name, "score", final, "lines", c.stats.Lines())

	if c.sink != nil {
		if err := c.sink.AddScore(final); err != nil {
			c.logger.Error("failed to record high score", "score", final, "err", err)
		}
	}
	c.notify(GameOverMessage)
}

func (c *Controller) newGame() {
	c.over = false
	c.stats.Reset()
	c.tracker.Reset()
	if c.onLevel != nil {
		c.onLevel(c.tracker.Level(), c.delay())
	}
	if c.board.NewGame() {
		c.gameOver()
	}
}

func (c *Controller) notify(msg string) {
	if c.notifier != nil {
		c.notifier.Notify(msg)
	}
}

func (c *Controller) delay() time.Duration {
	if c.policy.TrackLevel {
		return c.tracker.Delay()
	}
	return c.levels.Delay(1)
}

// Delay returns the current gravity interval.
func (c *Controller) Delay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delay()
}

// GameOver reports whether the current game has ended.
func (c *Controller) GameOver() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.over
}

// Snapshot is a consistent copy of the game state for renderers and tests.
type Snapshot struct {
	Mode      string
	Matrix    grid.Grid
	View      board.ViewData
	Score     int
	Level     int
	Delay     time.Duration
	Lines     int
	Pieces    int
	GameOver  bool
	CanHold   bool
	Histogram [MaxClearSize + 1]int
}

// Snapshot returns the current state. Reading the matrix may advance a
// timed visibility policy.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Mode:      c.policy.Name,
		Matrix:    c.board.Matrix(),
		View:      c.board.ViewData(),
		Score:     c.board.Score().Value(),
		Level:     c.tracker.Level(),
		Delay:     c.delay(),
		Lines:     c.stats.Lines(),
		Pieces:    c.stats.Pieces(),
		GameOver:  c.over,
		CanHold:   c.board.CanHold(),
		Histogram: c.stats.Histogram(),
	}
}
