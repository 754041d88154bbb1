// Package progress holds the score counter and the score-driven level and
// fall-speed curve.
package progress

import (
	"math"
	"time"
)

// Score is a non-negative, monotonically increasing counter that is only
// reset by a new game.
type Score struct {
	value int
}

// Add increases the score. Non-positive amounts are ignored.
func (s *Score) Add(n int) {
	if n <= 0 {
		return
	}
	s.value += n
}

// Value returns the current score.
func (s *Score) Value() int {
	return s.value
}

// Reset sets the score back to zero.
func (s *Score) Reset() {
	s.value = 0
}

// Default progression constants.
const (
	DefaultPointsPerLevel = 1000
	DefaultInitialDelay   = 400 * time.Millisecond
	DefaultMultiplier     = 0.85
)

// Levels maps a score to a level and a level to a fall delay.
type Levels struct {
	PointsPerLevel int
	InitialDelay   time.Duration
	Multiplier     float64
}

// DefaultLevels returns the standard curve: a level every 1000 points,
// 400ms at level 1, each level 15% faster.
func DefaultLevels() Levels {
	return Levels{
		PointsPerLevel: DefaultPointsPerLevel,
		InitialDelay:   DefaultInitialDelay,
		Multiplier:     DefaultMultiplier,
	}
}

// Level returns score/PointsPerLevel + 1.
func (l Levels) Level(score int) int {
	if score < 0 {
		score = 0
	}
	per := l.PointsPerLevel
	if per <= 0 {
		per = DefaultPointsPerLevel
	}
	return score/per + 1
}

// Delay returns InitialDelay * Multiplier^(level-1).
func (l Levels) Delay(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	base := l.InitialDelay
	if base <= 0 {
		base = DefaultInitialDelay
	}
	m := l.Multiplier
	if m <= 0 || m >= 1 {
		m = DefaultMultiplier
	}
	return time.Duration(float64(base) * math.Pow(m, float64(level-1)))
}

// Tracker remembers the last observed level so callers can react to level
// changes exactly once.
type Tracker struct {
	levels Levels
	level  int
}

// NewTracker starts at level 1.
func NewTracker(levels Levels) *Tracker {
	return &Tracker{levels: levels, level: 1}
}

// Observe recomputes the level for score and reports whether it changed.
func (t *Tracker) Observe(score int) (level int, changed bool) {
	next := t.levels.Level(score)
	if next == t.level {
		return t.level, false
	}
	t.level = next
	return next, true
}

// Level returns the last observed level.
func (t *Tracker) Level() int {
	return t.level
}

// Delay returns the fall delay for the current level.
func (t *Tracker) Delay() time.Duration {
	return t.levels.Delay(t.level)
}

// Reset returns to level 1.
func (t *Tracker) Reset() {
	t.level = 1
}
