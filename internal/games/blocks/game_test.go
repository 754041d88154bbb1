package blocks

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	}
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

type sliceSink struct {
	scores []int
}

func (s *sliceSink) AddScore(score int) error {
	s.scores = append(s.scores, score)
	return nil
}

func TestRegister(t *testing.T) {
	r := registry.New()
	Register(r)

	games := r.List()
	if len(games) != 2 {
		t.Fatalf("List() = %v, expected 2 games", games)
	}
	if games[0].ID != ID || games[1].ID != ChallengeID {
		t.Errorf("IDs = %s, %s, expected %s, %s", games[0].ID, games[1].ID, ID, ChallengeID)
	}
	if games[1].Title != "Blocks (Challenge)" {
		t.Errorf("challenge title = %q", games[1].Title)
	}

	g, err := r.Create(ChallengeID, registry.DefaultEnv())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.(*Game).Mode() != ModeChallenge {
		t.Errorf("Mode() = %s, expected challenge", g.(*Game).Mode())
	}
}

func TestGravityFollowsDelay(t *testing.T) {
	g := New(registry.DefaultEnv())
	g.Reset(testConfig())

	// 400ms at 16ms per tick is 25 ticks.
	for i := 0; i < 24; i++ {
		g.Step(frame())
	}
	if y := g.Snapshot().Y; y != 0 {
		t.Fatalf("Y after 24 ticks = %d, expected 0", y)
	}
	g.Step(frame())
	if y := g.Snapshot().Y; y != 1 {
		t.Errorf("Y after 25 ticks = %d, expected 1", y)
	}
	if g.Snapshot().Score != 0 {
		t.Error("gravity should not award points")
	}
}

func TestSoftAndHardDrop(t *testing.T) {
	g := New(registry.DefaultEnv())
	g.Reset(testConfig())

	g.Step(frame(core.ActionDown))
	if s := g.Snapshot(); s.Y != 1 || s.Score != 1 {
		t.Errorf("after soft drop Y=%d score=%d, expected 1 and 1", s.Y, s.Score)
	}

	before := g.Snapshot()
	rows := before.ShadowY - before.Y
	g.Step(frame(core.ActionJump))
	after := g.Snapshot()

	if after.Pieces != 1 {
		t.Errorf("Pieces = %d, expected 1", after.Pieces)
	}
	if after.Locked != 4 {
		t.Errorf("Locked = %d, expected 4", after.Locked)
	}
	if after.Score != 1+2*rows {
		t.Errorf("Score = %d, expected %d", after.Score, 1+2*rows)
	}
	if after.ActiveKind != before.NextKind {
		t.Errorf("active = %s, expected previewed %s", after.ActiveKind, before.NextKind)
	}
}

func TestHoldAction(t *testing.T) {
	g := New(registry.DefaultEnv())
	g.Reset(testConfig())

	first := g.Snapshot().ActiveKind
	g.Step(frame(core.ActionHold))
	if held := g.Snapshot().HeldKind; held != first {
		t.Errorf("HeldKind = %s, expected %s", held, first)
	}
}

func TestDeterministicReplay(t *testing.T) {
	script := []core.InputFrame{
		frame(core.ActionLeft), frame(), frame(core.ActionUp), frame(core.ActionJump),
		frame(core.ActionRight), frame(core.ActionRight), frame(core.ActionJump),
		frame(core.ActionHold), frame(core.ActionDown), frame(core.ActionJump),
	}

	run := func() Snapshot {
		g := New(registry.DefaultEnv())
		g.Reset(testConfig())
		for i := 0; i < 300; i++ {
			g.Step(script[i%len(script)])
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestPause(t *testing.T) {
	g := New(registry.DefaultEnv())
	g.Reset(testConfig())

	g.Step(frame(core.ActionPause))
	for i := 0; i < 100; i++ {
		g.Step(frame(core.ActionLeft, core.ActionDown))
	}
	s := g.Snapshot()
	if s.State != StatePaused {
		t.Errorf("State = %s, expected paused", s.State)
	}
	if s.Y != 0 || s.X != 3 {
		t.Errorf("paused piece moved to (%d, %d)", s.X, s.Y)
	}
	if !g.State().Paused {
		t.Error("State().Paused = false")
	}

	g.Step(frame(core.ActionPause))
	if g.Snapshot().State != StatePlaying {
		t.Error("second pause should resume")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	sink := &sliceSink{}
	env := registry.DefaultEnv()
	env.Config.Board.Width = 4
	env.Config.Board.Height = 4
	env.Scores = func(string) registry.ScoreSink { return sink }

	g := New(env)
	g.Reset(testConfig())

	for i := 0; i < 200 && !g.State().GameOver; i++ {
		g.Step(frame(core.ActionJump))
	}
	if !g.State().GameOver {
		t.Fatal("a 4x4 well should fill up")
	}
	if len(sink.scores) != 1 || sink.scores[0] != g.State().Score {
		t.Errorf("sink scores = %v, expected [%d]", sink.scores, g.State().Score)
	}

	// Ignored while game over
	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("pause should be ignored after game over")
	}

	res := g.Step(frame(core.ActionRestart))
	if res.State.GameOver || res.State.Score != 0 {
		t.Errorf("after restart: %+v", res.State)
	}
	if g.Snapshot().Locked != 0 {
		t.Error("restart should empty the well")
	}
}

func TestGameOverEvent(t *testing.T) {
	env := registry.DefaultEnv()
	env.Config.Board.Width = 4
	env.Config.Board.Height = 4

	g := New(env)
	g.Reset(testConfig())

	var events []string
	for i := 0; i < 200 && !g.State().GameOver; i++ {
		events = append(events, g.Step(frame(core.ActionJump)).Events...)
	}
	if !slices.Contains(events, "GAME OVER") {
		t.Errorf("events = %v, expected GAME OVER", events)
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New(registry.DefaultEnv())
	cfg := testConfig()
	cfg.ScreenW, cfg.ScreenH = 20, 10
	g.Reset(cfg)

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("State = %s, expected %s", g.Snapshot().State, StatePausedSmall)
	}
	for i := 0; i < 50; i++ {
		g.Step(frame())
	}
	if g.Snapshot().Y != 0 {
		t.Error("game should not advance in a small window")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("expected too-small notice, got:\n%s", screen.String())
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Error("Resize to a big window should resume play")
	}
}

func TestRender(t *testing.T) {
	g := New(registry.DefaultEnv())
	g.Reset(testConfig())
	g.Step(frame(core.ActionJump))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Blocks", "Score:", "NEXT", "HOLD", "LINES"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	colored := 0
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			c := screen.GetCell(x, y)
			if c.Rune == '█' && c.Color != core.ColorDefault {
				colored++
			}
		}
	}
	// Locked piece and active piece are 4 cells of 2 characters each.
	if colored < 16 {
		t.Errorf("colored block characters = %d, expected at least 16", colored)
	}
}

func TestRenderGhostToggle(t *testing.T) {
	count := func(ghost bool) int {
		env := registry.DefaultEnv()
		env.Config.Board.Ghost = ghost
		g := New(env)
		g.Reset(testConfig())
		screen := core.NewScreen(80, 24)
		g.Render(screen)
		return strings.Count(screen.String(), "░")
	}

	if n := count(true); n != 8 {
		t.Errorf("ghost cells = %d, expected 8", n)
	}
	if n := count(false); n != 0 {
		t.Errorf("ghost disabled but %d ghost cells drawn", n)
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestChallengeHidesWell(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	g := NewChallenge(registry.DefaultEnv())
	g.clock = clock.Now
	g.Reset(testConfig())

	g.Step(frame(core.ActionJump))
	if g.Snapshot().Locked != 4 {
		t.Fatalf("Locked = %d, expected 4", g.Snapshot().Locked)
	}
	if !g.ctrl.Snapshot().Matrix.IsEmpty() {
		t.Error("challenge well should start hidden")
	}

	clock.now = clock.now.Add(10 * time.Second)
	if n := g.ctrl.Snapshot().Matrix.Count(); n != 4 {
		t.Errorf("revealed cells = %d, expected 4", n)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "VISIBLE") {
		t.Error("panel should show the reveal state")
	}
}

func TestChallengeCountdownEvents(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	g := NewChallenge(registry.DefaultEnv())
	g.clock = clock.Now
	g.Reset(testConfig())

	clock.now = clock.now.Add(10 * time.Second)
	g.Step(frame())
	clock.now = clock.now.Add(1500 * time.Millisecond)

	var events []string
	for i := 0; i < 30; i++ {
		events = append(events, g.Step(frame()).Events...)
	}
	if !slices.Contains(events, "3") {
		t.Errorf("events = %v, expected countdown 3", events)
	}
}

func TestChallengeFixedSpeed(t *testing.T) {
	env := registry.DefaultEnv()
	env.Config.Challenge.DelayMS = 200
	g := NewChallenge(env)
	g.Reset(testConfig())

	if d := g.Snapshot().Delay; d != 200*time.Millisecond {
		t.Errorf("Delay = %v, expected 200ms", d)
	}
}

func TestInvalidConfigFallsBack(t *testing.T) {
	env := registry.DefaultEnv()
	env.Config.Board.Width = 1
	g := New(env)
	g.Reset(testConfig())

	if g.cfg != config.DefaultBlocksConfig() {
		t.Error("invalid config should fall back to defaults")
	}
}

func TestNotifications(t *testing.T) {
	n := NewNotifications(100)
	for _, msg := range []string{"a", "b", "c", "d", "e"} {
		n.Notify(msg)
	}

	if got := n.Visible(); !slices.Equal(got, []string{"b", "c", "d", "e"}) {
		t.Errorf("Visible() = %v, expected the last four", got)
	}
	if got := n.Drain(); len(got) != 5 {
		t.Errorf("Drain() = %v, expected all five", got)
	}
	if got := n.Drain(); len(got) != 0 {
		t.Errorf("second Drain() = %v, expected empty", got)
	}

	n.Advance(99)
	if len(n.Visible()) != 4 {
		t.Error("notices should survive until their ttl")
	}
	n.Advance(1)
	if len(n.Visible()) != 0 {
		t.Errorf("Visible() after ttl = %v", n.Visible())
	}
}
