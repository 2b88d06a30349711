package engine

import "liap-tui-server/internal/gameerr"

// ScoringPhase computes round scores, checks the win condition, and either
// ends the game or resets round state and rotates back to PREPARATION
// (spec.md §4.3 SCORING).
type ScoringPhase struct{}

func (ScoringPhase) OnEnter(r *Room) []Change {
	deltas := r.ApplyRoundScoring()
	won := r.AnySeatWon()
	r.ScoringReady = true
	return []Change{{
		Phase: Scoring,
		Fields: map[string]any{
			"round_deltas": deltas,
			"multiplier":   r.RedealMultiplier,
			"game_over":    won,
		},
		Reason: "round_scored",
	}}
}

func (ScoringPhase) AllowedActions(r *Room, seat int) []ActionKind {
	return nil
}

func (ScoringPhase) Validate(r *Room, a Action) *gameerr.GameError {
	return gameerr.New(gameerr.IllegalPhase, "%s not accepted in SCORING", a.Kind)
}

func (ScoringPhase) Apply(r *Room, a Action) []Change {
	return nil
}

func (ScoringPhase) CheckTransition(r *Room) (Phase, bool) {
	if !r.ScoringReady {
		return Scoring, false
	}
	if r.AnySeatWon() {
		return GameOver, true
	}
	return Preparation, true
}

func (ScoringPhase) OnExit(r *Room) {
	if r.AnySeatWon() {
		return
	}
	r.StarterSeat = r.NextRoundStarter()
	r.RedealMultiplier = 1
	r.RoundNumber++
	for i := range r.Seats {
		r.Seats[i].CapturedPileCount = 0
		r.Seats[i].DeclaredPileCount = 0
		r.Seats[i].CurrentHand = nil
	}
	r.ScoringReady = false
}
