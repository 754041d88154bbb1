package rules

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/board"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/piece"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/progress"
)

type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) Notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

type memorySink struct {
	scores []int
	err    error
}

func (s *memorySink) AddScore(score int) error {
	s.scores = append(s.scores, score)
	return s.err
}

func start(t *testing.T, b *board.Board, p Policy, opts ...Option) *Controller {
	t.Helper()
	c := New(b, p, opts...)
	res := c.Handle(NewGame, SourceUser)
	require.False(t, res.GameOver)
	return c
}

func TestSoftDropPointsOnlyForUser(t *testing.T) {
	b := board.New(20, 10, piece.NewSequence(piece.KindT), nil)
	c := start(t, b, Normal())

	res := c.Handle(Down, SourceUser)
	assert.True(t, res.Moved)
	assert.False(t, res.Locked)
	assert.Equal(t, 1, b.Score().Value())

	c.Handle(Down, SourceTick)
	assert.Equal(t, 1, b.Score().Value(), "gravity steps are free")
}

func TestHardDropPoints(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		want   int
	}{
		{"normal", Normal(), 36},
		{"challenge", Challenge(), 72},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := board.New(20, 10, piece.NewSequence(piece.KindI), nil)
			c := start(t, b, tc.policy)

			res := c.Handle(HardDrop, SourceUser)
			assert.True(t, res.Locked)
			assert.Nil(t, res.Cleared)
			assert.Equal(t, tc.want, b.Score().Value())
			assert.Equal(t, 0, res.View.Y, "next piece spawned at the top")
		})
	}
}

func TestClearBonus(t *testing.T) {
	tests := []struct {
		name      string
		policy    Policy
		wantScore int
		wantMsg   string
	}{
		{"normal", Normal(), 2*2 + 50, "+50"},
		{"challenge", Challenge(), 2*4 + 100, "+100"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			b := board.New(4, 4, piece.NewSequence(piece.KindI), nil)
			c := start(t, b, tc.policy, WithNotifier(rec))

			res := c.Handle(HardDrop, SourceUser)
			require.NotNil(t, res.Cleared)
			assert.Equal(t, 1, res.Cleared.LinesRemoved())
			assert.Equal(t, tc.wantScore, b.Score().Value())
			assert.Contains(t, rec.Messages(), tc.wantMsg)

			snap := c.Snapshot()
			assert.Equal(t, 1, snap.Lines)
			assert.Equal(t, 1, snap.Histogram[1])
		})
	}
}

func TestInstantLockOnShadowRow(t *testing.T) {
	b := board.New(20, 10, piece.NewSequence(piece.KindO), nil)
	c := start(t, b, Normal())

	// The O piece rests with its anchor on row 17.
	for i := 0; i < 16; i++ {
		res := c.Handle(Down, SourceUser)
		require.Falsef(t, res.Locked, "step %d", i)
	}
	res := c.Handle(Down, SourceUser)
	assert.True(t, res.Locked, "landing on the shadow row locks at once")
	assert.Equal(t, 16, b.Score().Value(), "the locking step earns nothing")
	assert.Equal(t, 4, b.Logical().Count())
}

func TestLockOnBlockedStepWithoutInstantLock(t *testing.T) {
	p := Normal()
	p.InstantLock = false
	b := board.New(20, 10, piece.NewSequence(piece.KindO), nil)
	c := start(t, b, p)

	for i := 0; i < 17; i++ {
		res := c.Handle(Down, SourceUser)
		require.False(t, res.Locked)
	}
	assert.Equal(t, 17, b.Score().Value())

	res := c.Handle(Down, SourceUser)
	assert.True(t, res.Locked)
	assert.False(t, res.Moved)
	assert.Equal(t, 17, b.Score().Value())
}

func TestGameOverRecordsScore(t *testing.T) {
	rec := &recorder{}
	sink := &memorySink{}
	b := board.New(4, 4, piece.NewSequence(piece.KindO), nil)
	c := start(t, b, Normal(), WithNotifier(rec), WithHighScores(sink))

	res := c.Handle(HardDrop, SourceUser)
	require.True(t, res.GameOver)
	assert.True(t, c.GameOver())
	assert.Equal(t, []int{2}, sink.scores)
	msgs := rec.Messages()
	require.NotEmpty(t, msgs)
	assert.Equal(t, GameOverMessage, msgs[len(msgs)-1])

	before := b.Offset()
	for _, cmd := range []Command{Left, Right, Rotate, Down, HardDrop, Hold, Spawn} {
		res := c.Handle(cmd, SourceUser)
		assert.Truef(t, res.GameOver, "%s after game over", cmd)
		assert.False(t, res.Moved)
	}
	assert.Equal(t, before, b.Offset())
	assert.Len(t, sink.scores, 1, "score is recorded once")

	res = c.Handle(NewGame, SourceUser)
	assert.False(t, res.GameOver)
	assert.Equal(t, 0, b.Score().Value())
	assert.True(t, b.Logical().IsEmpty())
}

func TestGameOverSurvivesSinkError(t *testing.T) {
	sink := &memorySink{err: errors.New("disk full")}
	b := board.New(4, 4, piece.NewSequence(piece.KindO), nil)
	c := start(t, b, Normal(), WithHighScores(sink))

	res := c.Handle(HardDrop, SourceUser)
	assert.True(t, res.GameOver)
	assert.Len(t, sink.scores, 1)
}

func TestLevelUp(t *testing.T) {
	rec := &recorder{}
	levels := progress.Levels{PointsPerLevel: 10, InitialDelay: 400 * time.Millisecond, Multiplier: 0.85}

	var gotLevel int
	var gotDelay time.Duration
	observer := func(level int, delay time.Duration) {
		gotLevel, gotDelay = level, delay
	}

	b := board.New(20, 10, piece.NewSequence(piece.KindI), nil)
	c := start(t, b, Normal(), WithNotifier(rec), WithLevels(levels), WithLevelObserver(observer))
	assert.Equal(t, 1, gotLevel, "observer is told about the new game")

	c.Handle(HardDrop, SourceUser)

	assert.Equal(t, 4, gotLevel)
	assert.Equal(t, levels.Delay(4), gotDelay)
	assert.Equal(t, levels.Delay(4), c.Delay())
	assert.Contains(t, rec.Messages(), "LEVEL 4")
	assert.Equal(t, 4, c.Snapshot().Level)
}

func TestChallengeRunsAtFixedSpeed(t *testing.T) {
	rec := &recorder{}
	levels := progress.Levels{PointsPerLevel: 10, InitialDelay: 300 * time.Millisecond, Multiplier: 0.85}
	b := board.New(20, 10, piece.NewSequence(piece.KindI), nil)
	c := start(t, b, Challenge(), WithNotifier(rec), WithLevels(levels))

	c.Handle(HardDrop, SourceUser)

	assert.Equal(t, 1, c.Snapshot().Level)
	assert.Equal(t, 300*time.Millisecond, c.Delay())
	assert.NotContains(t, rec.Messages(), "LEVEL 2")
}

func TestClearPointsLevelMultiplier(t *testing.T) {
	p := Normal()
	assert.Equal(t, 50, p.clearPoints(50, 3))

	p.LevelMultiplier = true
	assert.Equal(t, 150, p.clearPoints(50, 3))
	assert.Equal(t, 50, p.clearPoints(50, 1))

	assert.Equal(t, 400, Challenge().clearPoints(200, 5))
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestChallengeForwardsCountdown(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	rec := &recorder{}
	b := board.New(20, 10, piece.NewSequence(piece.KindT), board.NewObstructed(clock.Now))
	c := start(t, b, Challenge(), WithNotifier(rec))

	clock.now = clock.now.Add(board.DefaultRevealInterval)
	c.Snapshot()
	clock.now = clock.now.Add(1500 * time.Millisecond)

	c.Handle(Down, SourceTick)
	c.Handle(Down, SourceTick)
	assert.Equal(t, []string{"3"}, rec.Messages())
}

func TestNormalIgnoresCountdown(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	rec := &recorder{}
	b := board.New(20, 10, piece.NewSequence(piece.KindT), board.NewObstructed(clock.Now))
	c := start(t, b, Normal(), WithNotifier(rec))

	clock.now = clock.now.Add(board.DefaultRevealInterval)
	c.Snapshot()
	clock.now = clock.now.Add(1500 * time.Millisecond)

	c.Handle(Down, SourceTick)
	assert.Empty(t, rec.Messages())
}

func TestHoldThroughController(t *testing.T) {
	b := board.New(20, 10, piece.NewSequence(piece.KindI, piece.KindO), nil)
	c := start(t, b, Normal())

	res := c.Handle(Hold, SourceUser)
	assert.True(t, res.Moved)
	assert.True(t, res.View.HasHeld)
	assert.Equal(t, piece.KindI, res.View.HeldKind)
	assert.Equal(t, piece.KindO, res.View.ActiveKind)

	res = c.Handle(Hold, SourceUser)
	assert.False(t, res.Moved)
}

func TestConcurrentCommands(t *testing.T) {
	b := board.New(20, 10, piece.NewSequence(), nil)
	c := start(t, b, Normal())

	var wg sync.WaitGroup
	cmds := []Command{Left, Right, Rotate, Down}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.Handle(cmds[(i+j)%len(cmds)], SourceUser)
				c.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	snap := c.Snapshot()
	assert.GreaterOrEqual(t, snap.Score, 0)
}

func TestCommandsIgnoredBeforeNewGame(t *testing.T) {
	b := board.New(20, 10, piece.NewSequence(piece.KindI), nil)
	c := New(b, Normal())

	type outcome struct {
		res  Result
		snap Snapshot
	}
	done := make(chan outcome, 1)
	go func() {
		res := c.Handle(Left, SourceUser)
		c.Handle(HardDrop, SourceUser)
		c.Handle(Down, SourceTick)
		done <- outcome{res: res, snap: c.Snapshot()}
	}()

	var out outcome
	select {
	case out = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("commands before NewGame did not return")
	}
	assert.False(t, out.res.Moved)
	assert.False(t, out.res.Locked)
	assert.False(t, out.snap.GameOver)
	assert.Equal(t, 0, out.snap.Score)
	assert.Equal(t, 0, out.snap.Pieces)
	assert.True(t, b.Logical().IsEmpty())

	require.False(t, c.Handle(NewGame, SourceUser).GameOver)
	assert.True(t, c.Handle(Left, SourceUser).Moved)
}

func TestStatsHistogram(t *testing.T) {
	s := NewStats()
	s.RecordLock(1)
	s.RecordLock(1)
	s.RecordLock(0)
	s.RecordLock(4)

	assert.Equal(t, 6, s.Lines())
	assert.Equal(t, 4, s.Pieces())
	assert.Equal(t, [MaxClearSize + 1]int{0, 2, 0, 0, 1}, s.Histogram())

	s.Reset()
	assert.Equal(t, 0, s.Lines())
	assert.Equal(t, 0, s.Clears(1))
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "hard_drop", HardDrop.String())
	assert.Equal(t, "unknown", Command(99).String())
}
