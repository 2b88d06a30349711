package engine

import (
	"liap-tui-server/internal/gameerr"
	"liap-tui-server/internal/piece"
)

// TurnResultsPhase shows the pile winner and running counts, then advances
// either to another TURN (if hands remain) or to SCORING (spec.md §4.3).
type TurnResultsPhase struct{}

func (TurnResultsPhase) OnEnter(r *Room) []Change {
	r.TurnResultsReady = false
	return []Change{{
		Phase: TurnResults,
		Fields: map[string]any{
			"winner":      r.LastPileWinner,
			"turn_number": r.TurnNumber,
		},
		Reason: "turn_complete",
	}}
}

func (TurnResultsPhase) AllowedActions(r *Room, seat int) []ActionKind {
	return []ActionKind{ActionStartNextRound}
}

func (TurnResultsPhase) Validate(r *Room, a Action) *gameerr.GameError {
	if a.Kind != ActionStartNextRound {
		return gameerr.New(gameerr.IllegalPhase, "%s not accepted in TURN_RESULTS", a.Kind)
	}
	return nil
}

func (TurnResultsPhase) Apply(r *Room, a Action) []Change {
	r.TurnResultsReady = true
	return []Change{{
		Phase:         TurnResults,
		Fields:        map[string]any{"advanced": true},
		Reason:        "start_next_round",
		TriggeredByID: a.RequestID,
	}}
}

func (r *Room) handsEmpty() bool {
	for _, s := range r.Seats {
		if len(s.CurrentHand) > 0 {
			return false
		}
	}
	return true
}

func (TurnResultsPhase) CheckTransition(r *Room) (Phase, bool) {
	if !r.TurnResultsReady {
		return TurnResults, false
	}
	if r.handsEmpty() {
		return Scoring, true
	}
	return Turn, true
}

func (TurnResultsPhase) OnExit(r *Room) {
	if !r.handsEmpty() {
		r.PileLeadSeat = r.LastPileWinner
		r.TurnNumber++
		r.Plays = [4][]piece.Piece{}
		r.PlayedSeats = map[int]bool{}
		r.LeadType = 0
		r.LeadCount = 0
	}
}
