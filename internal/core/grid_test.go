package core

import "testing"

func TestLatticeCenterAndIndex(t *testing.T) {
	l := NewLattice(1400, 4000, 70)
	if x, y := l.Center(0, 0); x != 35 || y != 35 {
		t.Fatalf("center(0,0) = %v,%v", x, y)
	}
	if x, y := l.Center(19, 56); x != 1365 || y != 3955 {
		t.Fatalf("center(19,56) = %v,%v", x, y)
	}
	if got := l.Index(3, 2); got != 43 {
		t.Fatalf("index = %d, want 43", got)
	}
	if l.Len() != 1140 {
		t.Fatalf("len = %d, want 1140", l.Len())
	}
}

func TestRNGIsDeterministic(t *testing.T) {
	alphabet := []rune("abc")
	a, b := NewRNG(7), NewRNG(7)
	for i := 0; i < 32; i++ {
		if a.Pick(alphabet) != b.Pick(alphabet) {
			t.Fatal("equal seeds should produce equal sequences")
		}
	}
	if NewRNG(1).Pick(nil) != ' ' {
		t.Fatal("empty alphabet should yield a space")
	}
	if NewRNG(1).IntN(0) != 0 {
		t.Fatal("IntN(0) should be 0")
	}
}
