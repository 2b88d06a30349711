package engine

import (
	"math/rand"
	"testing"

	"liap-tui-server/internal/config"
)

func fourBotRoom(t *testing.T) *Room {
	t.Helper()
	r := NewRoom("room-1", config.Default(), rand.New(rand.NewSource(7)))
	for i := range r.Seats {
		r.Seats[i].Filled = true
		r.Seats[i].IsBot = true
	}
	r.Seats[0].IsHost = true
	return r
}

func runPhase(t *testing.T, r *Room, a Action) []Change {
	t.Helper()
	ps := Phases()[r.CurrentPhase]
	if err := ps.Validate(r, a); err != nil {
		t.Fatalf("validate: %v", err)
	}
	changes := ps.Apply(r, a)
	if next, ok := ps.CheckTransition(r); ok {
		ps.OnExit(r)
		r.CurrentPhase = next
		changes = append(changes, Phases()[next].OnEnter(r)...)
	}
	return changes
}

func TestWaitingToPreparationOnStartGame(t *testing.T) {
	r := fourBotRoom(t)
	runPhase(t, r, Action{Seat: 0, Kind: ActionStartGame})
	if r.CurrentPhase != Preparation {
		t.Fatalf("expected PREPARATION, got %s", r.CurrentPhase)
	}
	for _, s := range r.Seats {
		if len(s.CurrentHand) != 8 {
			t.Fatalf("expected 8-piece hands, got %d", len(s.CurrentHand))
		}
	}
}

func TestDeclarationSumConstraintRejectsLastDeclarer(t *testing.T) {
	r := fourBotRoom(t)
	r.CurrentPhase = Declaration
	r.Declared = [4]bool{true, true, true, false}
	r.DeclaredSum = 7 // 3+2+2
	r.StarterSeat = 0

	ps := DeclarationPhase{}
	err := ps.Validate(r, Action{Seat: 3, Kind: ActionDeclare, Payload: map[string]any{"value": 1}})
	if err == nil {
		t.Fatalf("expected sum-rule rejection, got nil")
	}
	allowed := AllowedDeclarations(r, 3)
	for _, v := range allowed {
		if v == 1 {
			t.Fatalf("value 1 must be excluded from allowed declarations, got %v", allowed)
		}
	}
}

func TestPreparationDealsAllPieces(t *testing.T) {
	r := fourBotRoom(t)
	r.CurrentPhase = Preparation
	PreparationPhase{}.OnEnter(r)
	// The four dealt hands together must hold all 32 pieces of the deck.
	total := 0
	for _, s := range r.Seats {
		total += len(s.CurrentHand)
	}
	if total != 32 {
		t.Fatalf("expected 32 pieces dealt across seats, got %d", total)
	}
}

func TestScoringHitBonusAndMissPenalty(t *testing.T) {
	if got := ScoreRound(3, 3); got != 11 {
		t.Fatalf("expected hit bonus 11, got %d", got)
	}
	if got := ScoreRound(0, 0); got != 3 {
		t.Fatalf("expected zero-declare bonus 3, got %d", got)
	}
	if got := ScoreRound(3, 1); got != -2 {
		t.Fatalf("expected miss penalty -2, got %d", got)
	}
}

func TestRedealMultiplierCompoundsAndResets(t *testing.T) {
	r := fourBotRoom(t)
	r.RedealMultiplier = 2
	r.RedealMultiplier = bumpMultiplier(r.RedealMultiplier, r.Config)
	if r.RedealMultiplier != 4 {
		t.Fatalf("expected multiplier 4 after second accept, got %d", r.RedealMultiplier)
	}

	// SCORING -> PREPARATION resets the multiplier to 1.
	r.CurrentPhase = Scoring
	r.LastRoundScores = [4]int{1, 1, 1, 1}
	ScoringPhase{}.OnExit(r)
	if r.RedealMultiplier != 1 {
		t.Fatalf("expected multiplier reset to 1, got %d", r.RedealMultiplier)
	}
}
