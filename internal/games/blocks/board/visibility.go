package board

import (
	"strconv"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/grid"
)

// Visibility decides what the player sees of the locked cells. The board
// keeps the logical grid; the policy derives the displayed grid from it.
type Visibility interface {
	// Reset is called by NewGame with the fresh logical grid.
	Reset(logical grid.Grid)
	// Sync is called after every merge and row clear.
	Sync(logical grid.Grid)
	// View returns the grid to display. It may advance timed state.
	View(logical grid.Grid) grid.Grid
}

// Countdowner is implemented by policies that announce an upcoming change.
type Countdowner interface {
	Countdown() (string, bool)
}

// AlwaysVisible shows the logical grid unchanged.
type AlwaysVisible struct{}

// Reset implements Visibility.
func (AlwaysVisible) Reset(grid.Grid) {}

// Sync implements Visibility.
func (AlwaysVisible) Sync(grid.Grid) {}

// View implements Visibility.
func (AlwaysVisible) View(logical grid.Grid) grid.Grid {
	return logical
}

// RevealState is the state of the obstructed-visibility machine.
type RevealState int

const (
	// Hidden shows an empty well.
	Hidden RevealState = iota
	// Revealed mirrors the logical grid.
	Revealed
)

// String returns a lowercase name for the state.
func (s RevealState) String() string {
	if s == Revealed {
		return "revealed"
	}
	return "hidden"
}

// Default timings for Obstructed.
const (
	DefaultRevealDuration   = 4 * time.Second
	DefaultRevealInterval   = 10 * time.Second
	DefaultCountdownSeconds = 3
)

// Obstructed hides locked cells except during periodic reveal windows.
//
// The machine has two states and two guarded transitions, evaluated when
// the displayed grid is requested:
//
//	Hidden   -> Revealed  when now >= nextReveal
//	Revealed -> Hidden    when now - revealStart >= RevealDuration
//
// There is no background timer; time only advances through View.
type Obstructed struct {
	RevealDuration   time.Duration
	RevealInterval   time.Duration
	CountdownSeconds int
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	state         RevealState
	revealStart   time.Time
	nextReveal    time.Time
	render        grid.Grid
	lastCountdown int
}

// NewObstructed creates the policy with default timings. The first reveal
// is one interval after construction.
func NewObstructed(clock func() time.Time) *Obstructed {
	o := &Obstructed{
		RevealDuration:   DefaultRevealDuration,
		RevealInterval:   DefaultRevealInterval,
		CountdownSeconds: DefaultCountdownSeconds,
		Clock:            clock,
	}
	o.nextReveal = o.now().Add(o.RevealInterval)
	return o
}

func (o *Obstructed) now() time.Time {
	if o.Clock == nil {
		return time.Now()
	}
	return o.Clock()
}

// State returns the current reveal state.
func (o *Obstructed) State() RevealState {
	return o.state
}

// NextReveal returns when the next reveal window opens.
func (o *Obstructed) NextReveal() time.Time {
	return o.nextReveal
}

// Reset implements Visibility. The well starts hidden and the reveal
// schedule restarts from now.
func (o *Obstructed) Reset(logical grid.Grid) {
	o.state = Hidden
	o.revealStart = time.Time{}
	o.lastCountdown = 0
	o.nextReveal = o.now().Add(o.RevealInterval)
	o.render = logical.Blank()
}

// Sync implements Visibility: copy-through while revealed, blank otherwise.
func (o *Obstructed) Sync(logical grid.Grid) {
	if o.state == Revealed {
		o.render = logical
		return
	}
	o.render = logical.Blank()
}

// View implements Visibility.
func (o *Obstructed) View(logical grid.Grid) grid.Grid {
	o.advance(logical)
	if o.render.Width() != logical.Width() || o.render.Height() != logical.Height() {
		o.Sync(logical)
	}
	return o.render
}

func (o *Obstructed) advance(logical grid.Grid) {
	now := o.now()
	switch o.state {
	case Hidden:
		if !now.Before(o.nextReveal) {
			o.reveal(logical, now)
		}
	case Revealed:
		if now.Sub(o.revealStart) >= o.RevealDuration {
			o.hide(logical)
		}
	}
}

func (o *Obstructed) reveal(logical grid.Grid, now time.Time) {
	o.state = Revealed
	o.revealStart = now
	o.nextReveal = now.Add(o.RevealInterval)
	o.render = logical
}

func (o *Obstructed) hide(logical grid.Grid) {
	o.state = Hidden
	o.render = logical.Blank()
}

// Countdown returns the whole seconds left in the reveal window while it is
// within the final CountdownSeconds. Each distinct value is returned once.
func (o *Obstructed) Countdown() (string, bool) {
	if o.state != Revealed {
		o.lastCountdown = 0
		return "", false
	}
	left := o.revealStart.Add(o.RevealDuration).Sub(o.now())
	secs := int((left + time.Second - 1) / time.Second) // ceil for positive values
	if left <= 0 {
		secs = 0
	}

	if secs > 0 && secs <= o.CountdownSeconds {
		if secs != o.lastCountdown {
			o.lastCountdown = secs
			return strconv.Itoa(secs), true
		}
		return "", false
	}
	o.lastCountdown = 0
	return "", false
}
