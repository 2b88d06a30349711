package room

import (
	"encoding/json"
	"math/rand"
	"testing"

	"liap-tui-server/internal/bots"
	"liap-tui-server/internal/config"
	"liap-tui-server/internal/engine"
	"liap-tui-server/internal/journal"
)

type captureSink struct {
	frames [4][][]byte
}

func (s *captureSink) SendToSeat(seat int, payload []byte) error {
	s.frames[seat] = append(s.frames[seat], payload)
	return nil
}

func newTestActor(t *testing.T) (*Actor, *captureSink) {
	t.Helper()
	sink := &captureSink{}
	cfg := config.Default()
	a := NewActor("room1", cfg, rand.New(rand.NewSource(1)), noopStoreForTest{}, sink, bots.NewManager(bots.NewRegistry()))
	t.Cleanup(a.Stop)
	return a, sink
}

type noopStoreForTest struct{}

func (noopStoreForTest) Append(string, journal.Record) {}
func (noopStoreForTest) Close() error                  { return nil }

func fourJoinedHumans(t *testing.T, a *Actor) {
	t.Helper()
	for i := 0; i < 4; i++ {
		res := a.Join("p", "Name")
		if res.Err != nil {
			t.Fatalf("join %d: %v", i, res.Err)
		}
	}
}

func TestJoinBroadcastsPlayerJoined(t *testing.T) {
	a, sink := newTestActor(t)
	res := a.Join("p1", "Alice")
	if res.Err != nil || res.Seat != 0 {
		t.Fatalf("join: %+v", res)
	}
	if len(sink.frames[0]) == 0 {
		t.Fatal("expected seat 0 to receive a broadcast frame after joining")
	}
}

func TestStartGameTransitionsToPreparation(t *testing.T) {
	a, _ := newTestActor(t)
	fourJoinedHumans(t, a)

	result := a.Submit(engine.Action{Seat: 0, Kind: engine.ActionStartGame})
	if result.Err != nil {
		t.Fatalf("start_game: %v", result.Err)
	}
	if phase := a.CurrentPhase(); phase != engine.Preparation && phase != engine.Declaration {
		t.Fatalf("phase after start_game = %v, want preparation or declaration (if no weak hands)", phase)
	}
}

func TestDuplicateRequestIDIsDeduped(t *testing.T) {
	a, _ := newTestActor(t)
	fourJoinedHumans(t, a)

	act := engine.Action{RequestID: "req-1", Seat: 0, Kind: engine.ActionStartGame}
	first := a.Submit(act)
	second := a.Submit(act)
	if first.Err != nil {
		t.Fatalf("first submit: %v", first.Err)
	}
	if second != first {
		t.Fatalf("duplicate submit result = %+v, want identical to first %+v", second, first)
	}
}

func TestSnapshotOmitsOtherSeatsHands(t *testing.T) {
	a, _ := newTestActor(t)
	fourJoinedHumans(t, a)
	a.Submit(engine.Action{Seat: 0, Kind: engine.ActionStartGame})

	body, err := a.Snapshot(0)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	var decoded struct {
		Data struct {
			Players [4]*playerView `json:"players"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if decoded.Data.Players[1] != nil && decoded.Data.Players[1].Hand != nil {
		t.Error("seat 0's snapshot leaked seat 1's hand")
	}
}

// flush round-trips a harmless action through the actor's event channel,
// relying on the channel's FIFO ordering to guarantee every event sent
// before this call (e.g. MarkDisconnected/MarkConnected, which don't
// themselves wait for a reply) has already been handled by the time it
// returns.
func flush(t *testing.T, a *Actor) {
	t.Helper()
	a.Submit(engine.Action{Seat: 0, Kind: engine.ActionAddBot})
}

func TestSeatForPlayerAndReconnectFlow(t *testing.T) {
	a, _ := newTestActor(t)
	for i, name := range []string{"alice", "bob", "carol", "dave"} {
		res := a.Join(name, name)
		if res.Err != nil || res.Seat != i {
			t.Fatalf("join %s: %+v", name, res)
		}
	}

	seat, ok := a.SeatForPlayer("carol")
	if !ok || seat != 2 {
		t.Fatalf("SeatForPlayer(carol) = %d, %v; want 2, true", seat, ok)
	}
	if _, ok := a.SeatForPlayer("nobody"); ok {
		t.Fatal("SeatForPlayer found a seat for a player who never joined")
	}

	a.MarkDisconnected(seat)
	flush(t, a)
	if got := a.Room.Seats[seat].ConnectionState; got != engine.Disconnected {
		t.Fatalf("connection state after MarkDisconnected = %v, want Disconnected", got)
	}

	a.MarkConnected(seat)
	flush(t, a)
	if got := a.Room.Seats[seat].ConnectionState; got != engine.Connected {
		t.Fatalf("connection state after MarkConnected = %v, want Connected", got)
	}
}
