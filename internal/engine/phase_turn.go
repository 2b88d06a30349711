package engine

import (
	"liap-tui-server/internal/gameerr"
	"liap-tui-server/internal/piece"
)

// TurnPhase resolves one pile/trick: the lead seat plays k pieces, the other
// three match k pieces each, and the highest value among same-type plays
// wins (spec.md §4.3 TURN).
type TurnPhase struct{}

func (TurnPhase) OnEnter(r *Room) []Change {
	return []Change{{
		Phase:  Turn,
		Fields: map[string]any{"turn_number": r.TurnNumber, "lead_seat": r.PileLeadSeat},
		Reason: "turn_entered",
	}}
}

func (r *Room) currentTurnSeat() int {
	for offset := 0; offset < 4; offset++ {
		idx := (r.PileLeadSeat + offset) % 4
		if !r.PlayedSeats[idx] {
			return idx
		}
	}
	return -1
}

func (TurnPhase) AllowedActions(r *Room, seat int) []ActionKind {
	if r.currentTurnSeat() == seat {
		return []ActionKind{ActionPlay}
	}
	return nil
}

func handIndicesOf(hand []piece.Piece, pieces []piece.Piece) ([]int, bool) {
	used := make([]bool, len(hand))
	indices := make([]int, 0, len(pieces))
	for _, want := range pieces {
		found := -1
		for i, have := range hand {
			if !used[i] && have.Equal(want) {
				found = i
				break
			}
		}
		if found == -1 {
			return nil, false
		}
		used[found] = true
		indices = append(indices, found)
	}
	return indices, true
}

func (p TurnPhase) Validate(r *Room, a Action) *gameerr.GameError {
	if !contains(p.AllowedActions(r, a.Seat), a.Kind) {
		return gameerr.ErrNotYourTurn
	}
	pieces, ok := a.Payload["pieces"].([]piece.Piece)
	if !ok || len(pieces) == 0 {
		return gameerr.New(gameerr.Validation, "play requires a non-empty 'pieces' list")
	}
	if len(pieces) > 6 {
		return gameerr.New(gameerr.IllegalAction, "at most 6 pieces per play")
	}

	isLeader := len(r.PlayedSeats) == 0
	if !isLeader && len(pieces) != r.LeadCount {
		return gameerr.ErrWrongCount
	}

	if _, ok := handIndicesOf(r.Seats[a.Seat].CurrentHand, pieces); !ok {
		return gameerr.ErrIllegalPieces
	}
	return nil
}

func (TurnPhase) Apply(r *Room, a Action) []Change {
	pieces := a.Payload["pieces"].([]piece.Piece)
	indices, _ := handIndicesOf(r.Seats[a.Seat].CurrentHand, pieces)

	// Remove played pieces from hand, keeping the rest in their original order.
	hand := r.Seats[a.Seat].CurrentHand
	removed := map[int]bool{}
	for _, idx := range indices {
		removed[idx] = true
	}
	kept := make([]piece.Piece, 0, len(hand)-len(indices))
	for i, pc := range hand {
		if !removed[i] {
			kept = append(kept, pc)
		}
	}
	r.Seats[a.Seat].CurrentHand = kept
	r.Plays[a.Seat] = pieces

	isLeader := len(r.PlayedSeats) == 0
	if isLeader {
		leadType, _ := piece.Classify(pieces)
		r.LeadType = leadType
		r.LeadCount = len(pieces)
	}
	r.PlayedSeats[a.Seat] = true

	typ, val := piece.Classify(pieces)
	return []Change{{
		Phase:         Turn,
		Fields:        map[string]any{"seat": a.Seat, "play_type": typ.String(), "value": val},
		Reason:        "play",
		TriggeredByID: a.RequestID,
	}}
}

// pileWinner picks the highest-value play whose type matches the lead type;
// if none compares (including an INVALID lead), the starter wins by default
// (spec.md §4.3 "leader privilege"). Ties after a match go to the earliest
// seat clockwise after the starter.
func (r *Room) pileWinner() int {
	best := -1
	bestValue := -1
	for offset := 0; offset < 4; offset++ {
		seat := (r.PileLeadSeat + offset) % 4
		pieces := r.Plays[seat]
		typ, val := piece.Classify(pieces)
		if typ == piece.Invalid || typ != r.LeadType {
			continue
		}
		if val > bestValue {
			best = seat
			bestValue = val
		}
	}
	if best == -1 {
		return r.PileLeadSeat
	}
	return best
}

func (TurnPhase) CheckTransition(r *Room) (Phase, bool) {
	if len(r.PlayedSeats) == 4 {
		return TurnResults, true
	}
	return Turn, false
}

func (TurnPhase) OnExit(r *Room) {
	r.LastPileWinner = r.pileWinner()
	r.Seats[r.LastPileWinner].CapturedPileCount++
}
