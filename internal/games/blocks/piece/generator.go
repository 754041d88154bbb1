package piece

import (
	"fmt"
	"math/rand"
)

// Generator hands out pieces one at a time. Peek always reports the piece
// the next Take will return.
type Generator interface {
	Take() Piece
	Peek() Piece
}

// Policy names a randomization strategy.
type Policy string

const (
	// PolicyRandom picks each piece uniformly at random.
	PolicyRandom Policy = "random"
	// PolicyBag deals shuffled bags containing each of the seven pieces once.
	PolicyBag Policy = "bag"
)

// NewGenerator creates a generator for the given policy.
func NewGenerator(policy Policy, rng *rand.Rand) (Generator, error) {
	switch policy {
	case PolicyRandom, "":
		return NewRandomGenerator(rng), nil
	case PolicyBag:
		return NewBagGenerator(rng), nil
	default:
		return nil, fmt.Errorf("piece: unknown generator policy %q", policy)
	}
}

// RandomGenerator draws pieces uniformly with a small FIFO lookahead.
type RandomGenerator struct {
	rng   *rand.Rand
	queue []Piece
}

// NewRandomGenerator seeds the queue with two pieces.
func NewRandomGenerator(rng *rand.Rand) *RandomGenerator {
	g := &RandomGenerator{rng: rng}
	g.queue = append(g.queue, g.draw(), g.draw())
	return g
}

func (g *RandomGenerator) draw() Piece {
	return catalog[g.rng.Intn(KindCount)]
}

// Take dequeues the next piece, refilling first when the queue would drop
// to a single entry.
func (g *RandomGenerator) Take() Piece {
	if len(g.queue) <= 1 {
		g.queue = append(g.queue, g.draw())
	}
	p := g.queue[0]
	g.queue = g.queue[1:]
	return p
}

// Peek returns the upcoming piece without removing it.
func (g *RandomGenerator) Peek() Piece {
	if len(g.queue) == 0 {
		g.queue = append(g.queue, g.draw())
	}
	return g.queue[0]
}

// BagGenerator deals permutations of all seven pieces.
type BagGenerator struct {
	rng   *rand.Rand
	queue []Piece
}

// NewBagGenerator deals the first bag.
func NewBagGenerator(rng *rand.Rand) *BagGenerator {
	g := &BagGenerator{rng: rng}
	g.refill()
	return g
}

func (g *BagGenerator) refill() {
	bag := All()
	g.rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	g.queue = append(g.queue, bag...)
}

// Take dequeues the next piece. A new bag is dealt before the lookahead
// would run dry, so Peek stays accurate across bag boundaries.
func (g *BagGenerator) Take() Piece {
	if len(g.queue) <= 1 {
		g.refill()
	}
	p := g.queue[0]
	g.queue = g.queue[1:]
	return p
}

// Peek returns the upcoming piece without removing it.
func (g *BagGenerator) Peek() Piece {
	if len(g.queue) == 0 {
		g.refill()
	}
	return g.queue[0]
}

// Sequence replays a fixed list of kinds in a loop. Useful for tests and
// scripted demos.
type Sequence struct {
	kinds []Kind
	pos   int
}

// NewSequence builds a looping generator over kinds.
func NewSequence(kinds ...Kind) *Sequence {
	if len(kinds) == 0 {
		kinds = []Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}
	}
	return &Sequence{kinds: kinds}
}

// Take returns the next kind's piece and advances.
func (s *Sequence) Take() Piece {
	p := MustKind(s.kinds[s.pos])
	s.pos = (s.pos + 1) % len(s.kinds)
	return p
}

// Peek returns the piece Take will return.
func (s *Sequence) Peek() Piece {
	return MustKind(s.kinds[s.pos])
}
