package rules

import (
	"github.com/kamstrup/intmap"
)

// MaxClearSize is the most rows a single piece can clear.
const MaxClearSize = 4

// Stats counts cleared lines and clears by size.
type Stats struct {
	lines  int
	pieces int
	bySize *intmap.Map[int, int]
}

// NewStats returns empty counters.
func NewStats() *Stats {
	return &Stats{bySize: intmap.New[int, int](MaxClearSize)}
}

// RecordLock counts a locked piece and the rows it cleared.
func (s *Stats) RecordLock(rows int) {
	s.pieces++
	if rows <= 0 {
		return
	}
	s.lines += rows
	n, _ := s.bySize.Get(rows)
	s.bySize.Put(rows, n+1)
}

// Lines returns the total number of cleared rows.
func (s *Stats) Lines() int {
	return s.lines
}

// Pieces returns the number of locked pieces.
func (s *Stats) Pieces() int {
	return s.pieces
}

// Clears returns how many clears removed exactly size rows.
func (s *Stats) Clears(size int) int {
	n, _ := s.bySize.Get(size)
	return n
}

// Histogram returns clear counts indexed by size, from singles to tetrises.
// Index 0 is unused.
func (s *Stats) Histogram() [MaxClearSize + 1]int {
	var h [MaxClearSize + 1]int
	for size := 1; size <= MaxClearSize; size++ {
		h[size] = s.Clears(size)
	}
	return h
}

// Reset clears all counters.
func (s *Stats) Reset() {
	s.lines = 0
	s.pieces = 0
	s.bySize.Clear()
}
