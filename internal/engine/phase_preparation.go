package engine

import (
	"liap-tui-server/internal/config"
	"liap-tui-server/internal/gameerr"
	"liap-tui-server/internal/piece"
)

// PreparationPhase deals hands and negotiates weak-hand redeals, per
// spec.md §4.3 PREPARATION (sequential and simultaneous sub-modes).
type PreparationPhase struct{}

func dealRoom(r *Room) {
	deck := piece.NewDeck()
	hands := piece.Deal(deck, 4, r.RNG)
	for i := range r.Seats {
		r.Seats[i].CurrentHand = hands[i]
	}
}

func weakSeats(r *Room) []int {
	var weak []int
	for i, s := range r.Seats {
		if piece.IsWeak(s.CurrentHand, r.Config.WeakHandThreshold) {
			weak = append(weak, i)
		}
	}
	return weak
}

func (PreparationPhase) OnEnter(r *Room) []Change {
	dealRoom(r)
	r.WeakHands = weakSeats(r)
	r.WeakHandsDecided = map[int]bool{}

	if r.Config.RedealMode == config.RedealSequential {
		if len(r.WeakHands) > 0 {
			r.CurrentWeakSeat = r.WeakHands[0]
		} else {
			r.CurrentWeakSeat = -1
		}
	} else {
		r.CurrentWeakSeat = -1
	}

	return []Change{{
		Phase: Preparation,
		Fields: map[string]any{
			"weak_hands":         r.WeakHands,
			"current_weak_player": r.CurrentWeakSeat,
			"redeal_multiplier":  r.RedealMultiplier,
		},
		Reason: "preparation_entered",
	}}
}

func (p PreparationPhase) AllowedActions(r *Room, seat int) []ActionKind {
	if r.Config.RedealMode == config.RedealSequential {
		if seat == r.CurrentWeakSeat {
			return []ActionKind{ActionAcceptRedeal, ActionDeclineRedeal}
		}
		return nil
	}
	// simultaneous: any weak seat that hasn't replied yet may act.
	for _, w := range r.WeakHands {
		if w == seat && !r.WeakHandsDecided[seat] {
			return []ActionKind{ActionAcceptRedeal, ActionDeclineRedeal}
		}
	}
	return nil
}

func (p PreparationPhase) Validate(r *Room, a Action) *gameerr.GameError {
	if !contains(p.AllowedActions(r, a.Seat), a.Kind) {
		return gameerr.New(gameerr.IllegalPhase, "%s not accepted for seat %d in PREPARATION", a.Kind, a.Seat)
	}
	return nil
}

func (p PreparationPhase) Apply(r *Room, a Action) []Change {
	accepted := a.Kind == ActionAcceptRedeal

	if r.Config.RedealMode == config.RedealSequential {
		if accepted {
			r.RedealMultiplier = bumpMultiplier(r.RedealMultiplier, r.Config)
			dealRoom(r)
			r.WeakHands = weakSeats(r)
			if len(r.WeakHands) > 0 {
				r.CurrentWeakSeat = r.WeakHands[0]
			} else {
				r.CurrentWeakSeat = -1
			}
			return []Change{{
				Phase:         Preparation,
				Fields:        map[string]any{"redealt": true, "redeal_multiplier": r.RedealMultiplier, "weak_hands": r.WeakHands, "current_weak_player": r.CurrentWeakSeat},
				Reason:        "accept_redeal",
				TriggeredByID: a.RequestID,
			}}
		}
		// decline: drop this seat from the weak set, advance to next weak seat.
		r.WeakHands = removeSeat(r.WeakHands, a.Seat)
		if len(r.WeakHands) > 0 {
			r.CurrentWeakSeat = r.WeakHands[0]
		} else {
			r.CurrentWeakSeat = -1
		}
		return []Change{{
			Phase:         Preparation,
			Fields:        map[string]any{"declined_seat": a.Seat, "current_weak_player": r.CurrentWeakSeat},
			Reason:        "decline_redeal",
			TriggeredByID: a.RequestID,
		}}
	}

	// simultaneous mode
	r.WeakHandsDecided[a.Seat] = true
	if accepted {
		r.AnyAccepted = true
	}
	return []Change{{
		Phase:         Preparation,
		Fields:        map[string]any{"seat": a.Seat, "accepted": accepted},
		Reason:        "redeal_decision",
		TriggeredByID: a.RequestID,
	}}
}

func bumpMultiplier(current int, cfg config.RoomConfig) int {
	next := current * 2
	if cfg.MaxRedealMultiplier > 0 && next > cfg.MaxRedealMultiplier {
		return cfg.MaxRedealMultiplier
	}
	return next
}

func removeSeat(seats []int, target int) []int {
	out := make([]int, 0, len(seats))
	for _, s := range seats {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

func (PreparationPhase) CheckTransition(r *Room) (Phase, bool) {
	if len(r.WeakHands) == 0 {
		return Declaration, true
	}
	if r.Config.RedealMode != config.RedealSimultaneous || len(r.WeakHandsDecided) == 0 {
		return Preparation, false // sequential mode transitions only via the len==0 check above
	}

	for _, w := range r.WeakHands {
		if !r.WeakHandsDecided[w] {
			return Preparation, false // not everyone has replied yet
		}
	}
	if r.AnyAccepted {
		r.RedealMultiplier = bumpMultiplier(r.RedealMultiplier, r.Config)
		dealRoom(r)
		r.WeakHands = weakSeats(r)
		r.WeakHandsDecided = map[int]bool{}
		r.AnyAccepted = false
		return Preparation, false // stay in PREPARATION for another simultaneous round
	}
	return Declaration, true
}

func (PreparationPhase) OnExit(r *Room) {
	r.CurrentWeakSeat = -1
	r.WeakHandsDecided = nil
}
