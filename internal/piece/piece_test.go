package piece

import (
	"math/rand"
	"testing"
)

func TestNewDeckHas32Pieces(t *testing.T) {
	deck := NewDeck()
	if len(deck) != 32 {
		t.Fatalf("expected 32 pieces, got %d", len(deck))
	}
	reds, blacks := 0, 0
	for _, p := range deck {
		if p.Color == Red {
			reds++
		} else {
			blacks++
		}
	}
	if reds != 16 || blacks != 16 {
		t.Fatalf("expected 16/16 color split, got red=%d black=%d", reds, blacks)
	}
}

func TestDealIsDeterministicUnderSeed(t *testing.T) {
	deck := NewDeck()
	handsA := Deal(deck, 4, rand.New(rand.NewSource(42)))
	handsB := Deal(deck, 4, rand.New(rand.NewSource(42)))
	for s := 0; s < 4; s++ {
		for i := range handsA[s] {
			if !handsA[s][i].Equal(handsB[s][i]) {
				t.Fatalf("seat %d piece %d differs across identical seeds", s, i)
			}
		}
	}
}

func TestDealDoesNotMutateInputDeck(t *testing.T) {
	deck := NewDeck()
	original := append([]Piece(nil), deck...)
	Deal(deck, 4, rand.New(rand.NewSource(1)))
	for i := range deck {
		if !deck[i].Equal(original[i]) {
			t.Fatalf("input deck was mutated at index %d", i)
		}
	}
}

func TestIsWeakBoundary(t *testing.T) {
	strongHand := []Piece{{Kind: General, Color: Red, Point: WeakHandThreshold}}
	if IsWeak(strongHand, WeakHandThreshold) {
		t.Fatalf("a hand whose max point equals the threshold must NOT be weak")
	}
	weakHand := []Piece{{Kind: Soldier, Color: Red, Point: WeakHandThreshold - 1}}
	if !IsWeak(weakHand, WeakHandThreshold) {
		t.Fatalf("a hand with no piece above threshold must be weak")
	}
}

func TestClassifySingleAndPair(t *testing.T) {
	single := []Piece{{Kind: General, Color: Red, Point: 14}}
	if typ, val := Classify(single); typ != Single || val != 14 {
		t.Fatalf("expected SINGLE/14, got %s/%d", typ, val)
	}

	pair := []Piece{{Kind: Horse, Color: Red, Point: 5}, {Kind: Horse, Color: Red, Point: 5}}
	if typ, val := Classify(pair); typ != Pair || val != 10 {
		t.Fatalf("expected PAIR/10, got %s/%d", typ, val)
	}
}

func TestClassifyMixedColorIsInvalid(t *testing.T) {
	mixed := []Piece{{Kind: Horse, Color: Red, Point: 5}, {Kind: Horse, Color: Black, Point: 5}}
	if typ, _ := Classify(mixed); typ != Invalid {
		t.Fatalf("expected INVALID for mixed-color play, got %s", typ)
	}
}

func TestClassifyStraight(t *testing.T) {
	straight := []Piece{
		{Kind: Soldier, Color: Red, Point: 2},
		{Kind: Cannon, Color: Red, Point: 3},
		{Kind: Horse, Color: Red, Point: 5},
	}
	if typ, val := Classify(straight); typ != Straight || val != 10 {
		t.Fatalf("expected STRAIGHT/10, got %s/%d", typ, val)
	}
}

func TestBeatsRequiresStrictlyHigherValue(t *testing.T) {
	leader := []Piece{{Kind: General, Color: Red, Point: 14}}
	follower := []Piece{{Kind: Soldier, Color: Black, Point: 2}}
	if Beats(follower, leader, 1) {
		t.Fatalf("lower single must not beat higher single")
	}
	higher := []Piece{{Kind: General, Color: Black, Point: 14}}
	if Beats(leader, higher, 1) {
		t.Fatalf("equal-value single must not beat (only strictly greater beats)")
	}
}
