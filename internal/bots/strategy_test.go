package bots

import (
	"math/rand"
	"testing"

	"liap-tui-server/internal/engine"
	"liap-tui-server/internal/piece"
)

func TestBaselineAcceptsVeryWeakHand(t *testing.T) {
	hand := make([]piece.Piece, 8)
	for i := range hand {
		hand[i] = piece.Piece{Kind: piece.Soldier, Color: piece.Red, Point: 2}
	}
	view := SeatView{Seat: 0, Phase: engine.Preparation, Hand: hand}
	brain := RuleBrain{Persona: Baseline}
	action := brain.Decide(view, rand.New(rand.NewSource(1)))
	if action.Kind != engine.ActionAcceptRedeal {
		t.Fatalf("expected accept_redeal for a very weak hand, got %s", action.Kind)
	}
}

func TestDeclareRespectsSumConstraint(t *testing.T) {
	view := SeatView{
		Seat:            3,
		Phase:           engine.Declaration,
		Hand:            make([]piece.Piece, 8),
		AllowedDeclares: []int{0, 2, 3, 4, 5, 6, 7, 8},
	}
	brain := RuleBrain{Persona: Baseline}
	action := brain.Decide(view, rand.New(rand.NewSource(2)))
	value := action.Payload["value"].(int)
	for _, allowed := range view.AllowedDeclares {
		if allowed == value {
			return
		}
	}
	t.Fatalf("declared value %d is not in the allowed set %v", value, view.AllowedDeclares)
}
