package bots

import (
	"math/rand"
	"sort"

	"liap-tui-server/internal/engine"
	"liap-tui-server/internal/piece"
)

// Strategy is the decision interface spec.md §4.6 names:
// decide(seat_view, legal_actions) -> Action.
type Strategy interface {
	Decide(view SeatView, rng *rand.Rand) engine.Action
}

// RuleBrain is a persona-parameterized heuristic strategy, grounded on
// holdem/npc/rule_brain.go's RuleBrain: noise-injected thresholds over a
// PersonalityProfile, reimplemented for this game's three decision points
// instead of fold/check/bet/raise sizing.
type RuleBrain struct {
	Persona Persona
}

func (b RuleBrain) Decide(view SeatView, rng *rand.Rand) engine.Action {
	switch view.Phase {
	case engine.Preparation:
		return b.decideRedeal(view, rng)
	case engine.Declaration:
		return b.decideDeclare(view, rng)
	case engine.Turn:
		return b.decidePlay(view, rng)
	}
	return engine.Action{Seat: view.Seat, Kind: engine.ActionStartNextRound}
}

func estimateHandStrength(hand []piece.Piece) float64 {
	if len(hand) == 0 {
		return 0
	}
	total := 0
	for _, p := range hand {
		total += p.Point
	}
	return clamp01(float64(total) / float64(len(hand)) / 14.0)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (b RuleBrain) decideRedeal(view SeatView, rng *rand.Rand) engine.Action {
	noise := (rng.Float64() - 0.5) * b.Persona.Randomness
	threshold := b.Persona.RedealEagerness + noise
	strength := estimateHandStrength(view.Hand)
	kind := engine.ActionDeclineRedeal
	if strength < threshold {
		kind = engine.ActionAcceptRedeal
	}
	return engine.Action{Seat: view.Seat, Kind: kind}
}

func (b RuleBrain) decideDeclare(view SeatView, rng *rand.Rand) engine.Action {
	strength := estimateHandStrength(view.Hand)
	noise := (rng.Float64() - 0.5) * b.Persona.Randomness
	target := int((strength*8.0 + noise*4.0) * b.Persona.DeclarationConfidence)
	if target < 0 {
		target = 0
	}
	if target > 8 {
		target = 8
	}

	allowed := map[int]bool{}
	for _, v := range view.AllowedDeclares {
		allowed[v] = true
	}
	if allowed[target] {
		return engine.Action{Seat: view.Seat, Kind: engine.ActionDeclare, Payload: map[string]any{"value": target}}
	}
	// target forbidden by the sum rule (only possible for the last
	// declarer) — fall back to the nearest allowed value.
	best := view.AllowedDeclares[0]
	bestDist := abs(best - target)
	for _, v := range view.AllowedDeclares {
		if d := abs(v - target); d < bestDist {
			best, bestDist = v, d
		}
	}
	return engine.Action{Seat: view.Seat, Kind: engine.ActionDeclare, Payload: map[string]any{"value": best}}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (b RuleBrain) decidePlay(view SeatView, rng *rand.Rand) engine.Action {
	hand := append([]piece.Piece(nil), view.Hand...)
	sort.Slice(hand, func(i, j int) bool { return hand[i].Point > hand[j].Point })

	if view.IsLeader {
		k := 1
		if b.Persona.PlayAggressiveness > 0.7 && len(hand) >= 2 && hand[0].Kind == hand[1].Kind && hand[0].Color == hand[1].Color {
			k = 2
		}
		if k > len(hand) {
			k = len(hand)
		}
		return engine.Action{Seat: view.Seat, Kind: engine.ActionPlay, Payload: map[string]any{"pieces": append([]piece.Piece(nil), hand[:k]...)}}
	}

	k := view.LeadCount
	if k > len(hand) {
		k = len(hand)
	}
	// A cautious bot dumps its lowest k pieces rather than burning strong
	// pieces on a pile it may not need; an aggressive one tries to win with
	// its highest k same-kind/color group when one exists.
	if b.Persona.PlayAggressiveness > 0.5 {
		if play, ok := bestMatchingGroup(hand, k); ok {
			return engine.Action{Seat: view.Seat, Kind: engine.ActionPlay, Payload: map[string]any{"pieces": play}}
		}
	}
	lowest := append([]piece.Piece(nil), hand[len(hand)-k:]...)
	return engine.Action{Seat: view.Seat, Kind: engine.ActionPlay, Payload: map[string]any{"pieces": lowest}}
}

// bestMatchingGroup finds the highest-value run of k identical kind+color
// pieces in hand, used by an aggressive bot trying to contest the pile.
// hand must be sorted by Point, highest first (decidePlay sorts it).
func bestMatchingGroup(hand []piece.Piece, k int) ([]piece.Piece, bool) {
	counts := map[[2]int]int{}
	for _, p := range hand {
		key := [2]int{int(p.Kind), int(p.Color)}
		counts[key]++
	}
	for _, lead := range hand {
		key := [2]int{int(lead.Kind), int(lead.Color)}
		if c := counts[key]; c >= k {
			group := make([]piece.Piece, 0, k)
			for _, p := range hand {
				if int(p.Kind) == key[0] && int(p.Color) == key[1] {
					group = append(group, p)
					if len(group) == k {
						return group, true
					}
				}
			}
		}
	}
	return nil, false
}
