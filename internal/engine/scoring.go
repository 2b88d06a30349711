package engine

// ScoreRound computes one seat's round score from its declared and actual
// pile counts, before the redeal-multiplier scaling. The exact constants
// are a documented design decision (DESIGN.md §"Scoring formula") since no
// rules module ships with this repo to copy them from bit-identically.
func ScoreRound(declared, captured int) int {
	if declared == 0 && captured == 0 {
		return 3
	}
	if declared == captured {
		return declared*2 + 5
	}
	diff := declared - captured
	if diff < 0 {
		diff = -diff
	}
	return -diff
}

// ApplyRoundScoring scores every seat for the just-finished round, scales by
// RedealMultiplier, updates Score and ZeroDeclaresStreak, and returns the
// per-seat round deltas (before multiplier) for the SCORING broadcast.
func (r *Room) ApplyRoundScoring() [4]int {
	var deltas [4]int
	for i := range r.Seats {
		s := &r.Seats[i]
		base := ScoreRound(s.DeclaredPileCount, s.CapturedPileCount)
		deltas[i] = base
		s.Score += base * r.RedealMultiplier
		if s.DeclaredPileCount == 0 {
			s.ZeroDeclaresStreak++
		} else {
			s.ZeroDeclaresStreak = 0
		}
	}
	r.LastRoundScores = deltas
	return deltas
}

// AnySeatWon reports whether any seat has reached the configured win
// threshold (spec.md §4.3 SCORING: "any seat with score >= WIN_THRESHOLD").
func (r *Room) AnySeatWon() bool {
	for _, s := range r.Seats {
		if s.Score >= r.Config.WinThreshold {
			return true
		}
	}
	return false
}

// NextRoundStarter implements the "round winner starts" decision recorded
// in DESIGN.md: the seat with the highest round score becomes starter,
// ties broken by clockwise order from the current starter.
func (r *Room) NextRoundStarter() int {
	best := r.StarterSeat
	bestScore := r.LastRoundScores[best]
	for offset := 1; offset < 4; offset++ {
		idx := (r.StarterSeat + offset) % 4
		if r.LastRoundScores[idx] > bestScore {
			best = idx
			bestScore = r.LastRoundScores[idx]
		}
	}
	return best
}
