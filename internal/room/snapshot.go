package room

import (
	"encoding/json"
	"time"

	"liap-tui-server/internal/engine"
	"liap-tui-server/internal/journal"
)

// playerView is the bit-exact Player object spec.md §6 requires.
type playerView struct {
	PlayerID      string `json:"player_id"`
	Name          string `json:"name"`
	IsBot         bool   `json:"is_bot"`
	IsHost        bool   `json:"is_host"`
	SeatPosition  int    `json:"seat_position"`
	AvatarColor   *string `json:"avatar_color"`
	Score         int     `json:"score"`
	Captured      int     `json:"captured"`
	Declared      int     `json:"declared"`
	HandSize      int     `json:"hand_size"`
	Hand          []handPieceView `json:"hand,omitempty"`
}

type handPieceView struct {
	Kind  string `json:"kind"`
	Color string `json:"color"`
	Point int    `json:"point"`
}

// phaseChangeFrame is the outbound "phase_change" snapshot frame, bit-exact
// to spec.md §6.
type phaseChangeFrame struct {
	Event string           `json:"event"`
	Data  phaseChangeData  `json:"data"`
	Version  uint64 `json:"version"`
	Checksum string `json:"checksum"`
	Timestamp float64 `json:"timestamp"`
}

type phaseChangeData struct {
	Phase     string          `json:"phase"`
	PhaseData map[string]any  `json:"phase_data"`
	Players   [4]*playerView  `json:"players"`
	Round     int             `json:"round"`
	Reason    string          `json:"reason"`
}

func pieceHand(r *engine.Room, seat int) []handPieceView {
	hand := r.Seats[seat].CurrentHand
	out := make([]handPieceView, len(hand))
	for i, p := range hand {
		out[i] = handPieceView{Kind: p.Kind.String(), Color: p.Color.String(), Point: p.Point}
	}
	return out
}

// BuildSnapshotFrame composes the seat-addressed phase_change frame: public
// fields identical for all seats, the seat's own hand included only for
// its own view (spec.md §3 "seat view additionally contains that seat's
// private hand; other seats see only hand sizes").
func BuildSnapshotFrame(r *engine.Room, viewerSeat int, rec journal.Record) ([]byte, error) {
	var players [4]*playerView
	for i := 0; i < 4; i++ {
		s := r.Seats[i]
		if !s.Filled {
			players[i] = nil
			continue
		}
		pv := &playerView{
			PlayerID:     r.RoomID + "_p" + itoa(i),
			Name:         s.DisplayName,
			IsBot:        s.IsBot,
			IsHost:       s.IsHost,
			SeatPosition: i,
			Score:        s.Score,
			Captured:     s.CapturedPileCount,
			Declared:     s.DeclaredPileCount,
			HandSize:     len(s.CurrentHand),
		}
		if i == viewerSeat {
			pv.Hand = pieceHand(r, i)
		}
		players[i] = pv
	}

	frame := phaseChangeFrame{
		Event: "phase_change",
		Data: phaseChangeData{
			Phase:     r.CurrentPhase.String(),
			PhaseData: rec.Fields,
			Players:   players,
			Round:     r.RoundNumber,
			Reason:    rec.Reason,
		},
		Version:   rec.Version,
		Checksum:  rec.Checksum,
		Timestamp: float64(time.Now().UnixMilli()) / 1000.0,
	}
	return json.Marshal(frame)
}

func itoa(i int) string {
	digits := "0123"
	if i < 0 || i > 3 {
		return "?"
	}
	return string(digits[i])
}
