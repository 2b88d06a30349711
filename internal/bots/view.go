package bots

import (
	"liap-tui-server/internal/engine"
	"liap-tui-server/internal/piece"
)

// SeatView is what a bot strategy may see: the same information a human
// client would have for its own seat — never other seats' hands, matching
// the room's "clients receive only their own hand" non-goal (spec.md §1)
// and holdem.npc.GameView's seat-scoped projection.
type SeatView struct {
	Seat              int
	Phase             engine.Phase
	Hand              []piece.Piece
	WeakHands         []int
	AllowedDeclares   []int
	PriorDeclarations [4]bool
	DeclaredSum       int
	LeadType          piece.PlayType
	LeadCount         int
	IsLeader          bool
}

// BuildView projects a Room into the SeatView for seat.
func BuildView(r *engine.Room, seat int) SeatView {
	return SeatView{
		Seat:              seat,
		Phase:             r.CurrentPhase,
		Hand:              r.Seats[seat].CurrentHand,
		WeakHands:         r.WeakHands,
		AllowedDeclares:   engine.AllowedDeclarations(r, seat),
		PriorDeclarations: r.Declared,
		DeclaredSum:       r.DeclaredSum,
		LeadType:          r.LeadType,
		LeadCount:         r.LeadCount,
		IsLeader:          len(r.PlayedSeats) == 0,
	}
}
