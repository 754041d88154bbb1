package rules

// Policy holds the scoring and pacing rules of a game mode.
type Policy struct {
	Name string

	// SoftDropPoints is awarded for each user-initiated down step that
	// does not lock the piece.
	SoftDropPoints int
	// HardDropPointsPerRow is multiplied by the distance of a hard drop.
	HardDropPointsPerRow int
	// ClearMultiplier scales the row-clear bonus.
	ClearMultiplier int
	// LevelMultiplier additionally scales the row-clear bonus by the level.
	LevelMultiplier bool
	// TrackLevel enables score-driven level and speed progression.
	TrackLevel bool
	// ForwardCountdown sends visibility countdowns to the notifier.
	ForwardCountdown bool
	// InstantLock locks a piece as soon as a down step lands it on its
	// shadow row instead of waiting for the next blocked step.
	InstantLock bool
}

// Normal is the standard mode: single points and level progression.
func Normal() Policy {
	return Policy{
		Name:                 "normal",
		SoftDropPoints:       1,
		HardDropPointsPerRow: 2,
		ClearMultiplier:      1,
		TrackLevel:           true,
		InstantLock:          true,
	}
}

// Challenge doubles every award, runs at a fixed speed and announces the
// end of each reveal window.
func Challenge() Policy {
	return Policy{
		Name:                 "challenge",
		SoftDropPoints:       2,
		HardDropPointsPerRow: 4,
		ClearMultiplier:      2,
		ForwardCountdown:     true,
		InstantLock:          true,
	}
}

// clearPoints returns the award for a row-clear bonus at the given level.
func (p Policy) clearPoints(bonus, level int) int {
	m := p.ClearMultiplier
	if m <= 0 {
		m = 1
	}
	points := bonus * m
	if p.LevelMultiplier && level > 1 {
		points *= level
	}
	return points
}
