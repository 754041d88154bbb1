package piece

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/grid"
)

func TestCatalogStateCounts(t *testing.T) {
	expected := map[Kind]int{
		KindI: 2,
		KindJ: 4,
		KindL: 4,
		KindO: 1,
		KindS: 2,
		KindT: 4,
		KindZ: 2,
	}

	pieces := All()
	if len(pieces) != KindCount {
		t.Fatalf("All() returned %d pieces, want %d", len(pieces), KindCount)
	}
	for _, p := range pieces {
		if p.States() != expected[p.Kind()] {
			t.Errorf("%s has %d states, want %d", p, p.States(), expected[p.Kind()])
		}
	}
}

func TestCatalogCellsTaggedWithKind(t *testing.T) {
	for _, p := range All() {
		for i := 0; i < p.States(); i++ {
			cells := 0
			shape := p.State(i)
			for row := range shape {
				for col := range shape[row] {
					c := shape[row][col]
					if c == grid.Empty {
						continue
					}
					cells++
					if c != p.Kind().Cell() {
						t.Errorf("%s state %d has tag %d at (%d,%d), want %d", p, i, c, col, row, p.Kind())
					}
				}
			}
			if cells != 4 {
				t.Errorf("%s state %d has %d cells, want 4", p, i, cells)
			}
		}
	}
}

func TestStateReturnsCopy(t *testing.T) {
	p := MustKind(KindT)
	s := p.State(0)
	s[0][0] = 9
	if p.State(0)[0][0] != grid.Empty {
		t.Error("modifying a returned state must not change the catalog")
	}
}

func TestByKindUnknown(t *testing.T) {
	if _, err := ByKind(KindNone); err == nil {
		t.Error("ByKind(KindNone) should fail")
	}
	if _, err := ByKind(Kind(8)); err == nil {
		t.Error("ByKind(8) should fail")
	}
}

func TestRotationCycleCloses(t *testing.T) {
	for _, p := range All() {
		var r Rotator
		r.SetPiece(p)
		for i := 0; i < p.States(); i++ {
			_, next := r.Next()
			r.SetIndex(next)
		}
		if r.Index() != 0 {
			t.Errorf("%s: after %d rotations index = %d, want 0", p, p.States(), r.Index())
		}
	}
}

func TestRotatorNextDoesNotCommit(t *testing.T) {
	var r Rotator
	r.SetPiece(MustKind(KindJ))

	shape, next := r.Next()
	if next != 1 {
		t.Errorf("Next() index = %d, want 1", next)
	}
	if r.Index() != 0 {
		t.Errorf("Next() changed index to %d", r.Index())
	}
	if shape != MustKind(KindJ).State(1) {
		t.Error("Next() shape should be state 1")
	}
}

func TestRotatorSetPieceResetsIndex(t *testing.T) {
	var r Rotator
	r.SetPiece(MustKind(KindT))
	r.SetIndex(3)
	r.SetPiece(MustKind(KindL))
	if r.Index() != 0 {
		t.Errorf("SetPiece should reset index, got %d", r.Index())
	}
	if r.Piece().Kind() != KindL {
		t.Errorf("Piece() = %s, want L", r.Piece())
	}
}

func TestRandomGeneratorPeekMatchesTake(t *testing.T) {
	g := NewRandomGenerator(rand.New(rand.NewSource(7)))
	for i := 0; i < 50; i++ {
		peeked := g.Peek()
		taken := g.Take()
		if peeked.Kind() != taken.Kind() {
			t.Fatalf("step %d: Peek() = %s, Take() = %s", i, peeked, taken)
		}
	}
}

func TestBagGeneratorDealsEveryPiecePerBag(t *testing.T) {
	g := NewBagGenerator(rand.New(rand.NewSource(42)))
	for bag := 0; bag < 3; bag++ {
		seen := make(map[Kind]int)
		for i := 0; i < KindCount; i++ {
			peeked := g.Peek()
			taken := g.Take()
			if peeked.Kind() != taken.Kind() {
				t.Fatalf("bag %d step %d: Peek() = %s, Take() = %s", bag, i, peeked, taken)
			}
			seen[taken.Kind()]++
		}
		for k := KindI; k <= KindZ; k++ {
			if seen[k] != 1 {
				t.Errorf("bag %d: kind %s dealt %d times, want 1", bag, k, seen[k])
			}
		}
	}
}

func TestGeneratorDeterministicSeed(t *testing.T) {
	for _, policy := range []Policy{PolicyRandom, PolicyBag} {
		g1, err := NewGenerator(policy, rand.New(rand.NewSource(99)))
		if err != nil {
			t.Fatalf("NewGenerator(%s) failed: %v", policy, err)
		}
		g2, _ := NewGenerator(policy, rand.New(rand.NewSource(99)))
		for i := 0; i < 20; i++ {
			if a, b := g1.Take().Kind(), g2.Take().Kind(); a != b {
				t.Fatalf("%s: step %d differs: %s vs %s", policy, i, a, b)
			}
		}
	}
}

func TestNewGeneratorUnknownPolicy(t *testing.T) {
	if _, err := NewGenerator("weighted", rand.New(rand.NewSource(1))); err == nil {
		t.Error("unknown policy should fail")
	}
}

func TestSequenceLoops(t *testing.T) {
	s := NewSequence(KindO, KindI)
	want := []Kind{KindO, KindI, KindO, KindI}
	for i, k := range want {
		if s.Peek().Kind() != k {
			t.Errorf("step %d: Peek() = %s, want %s", i, s.Peek(), k)
		}
		if got := s.Take().Kind(); got != k {
			t.Errorf("step %d: Take() = %s, want %s", i, got, k)
		}
	}
}
