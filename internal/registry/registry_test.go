package registry

import (
	"testing"
	"time"

	"liap-tui-server/internal/bots"
	"liap-tui-server/internal/config"
	"liap-tui-server/internal/engine"
	"liap-tui-server/internal/journal"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	store, _, err := journal.NewStoreFromEnv()
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	cfg := config.Default()
	cfg.RoomIdleEvictAfter = 0 // disable the sweep for deterministic tests
	reg := New(cfg, store, bots.NewManager(bots.NewRegistry()))
	t.Cleanup(reg.Stop)
	return reg
}

func TestCreateAndGetRoom(t *testing.T) {
	reg := testRegistry(t)
	a, roomID := reg.CreateRoom("")
	if roomID == "" {
		t.Fatal("expected a non-empty room ID")
	}
	got, ok := reg.Get(roomID)
	if !ok || got != a {
		t.Fatalf("Get(%s) = %v, %v; want the created actor", roomID, got, ok)
	}
}

func TestListIncludesWaitingRoom(t *testing.T) {
	reg := testRegistry(t)
	_, roomID := reg.CreateRoom("")

	summaries := reg.List()
	found := false
	for _, s := range summaries {
		if s.RoomID == roomID {
			found = true
			if s.Phase != "waiting" {
				t.Errorf("phase = %q, want waiting", s.Phase)
			}
		}
	}
	if !found {
		t.Fatalf("room %s missing from List()", roomID)
	}
}

func TestPasswordProtectedRoomRejectsWrongPassword(t *testing.T) {
	reg := testRegistry(t)
	_, roomID := reg.CreateRoom("secret")

	if reg.VerifyPassword(roomID, "wrong") {
		t.Error("VerifyPassword accepted an incorrect password")
	}
	if !reg.VerifyPassword(roomID, "secret") {
		t.Error("VerifyPassword rejected the correct password")
	}
}

func TestOpenRoomAcceptsAnyPassword(t *testing.T) {
	reg := testRegistry(t)
	_, roomID := reg.CreateRoom("")

	if !reg.VerifyPassword(roomID, "anything") {
		t.Error("an unprotected room should accept any password attempt")
	}
}

func TestJoinAssignsSeatsAndFirstHost(t *testing.T) {
	reg := testRegistry(t)
	a, _ := reg.CreateRoom("")

	first := a.Join("p1", "Alice")
	if first.Err != nil || first.Seat != 0 {
		t.Fatalf("first join = %+v, want seat 0 no error", first)
	}
	second := a.Join("p2", "Bob")
	if second.Err != nil || second.Seat != 1 {
		t.Fatalf("second join = %+v, want seat 1 no error", second)
	}
	if host := a.HostName(); host != "Alice" {
		t.Fatalf("host = %q, want the first joiner Alice", host)
	}
}

func TestJoinRejectsWhenFull(t *testing.T) {
	reg := testRegistry(t)
	a, _ := reg.CreateRoom("")
	for i := 0; i < 4; i++ {
		if res := a.Join("p", "Name"); res.Err != nil {
			t.Fatalf("join %d failed: %v", i, res.Err)
		}
	}
	res := a.Join("p5", "Overflow")
	if res.Err == nil {
		t.Fatal("expected the fifth join to fail, room is full")
	}
}

func TestRemoveStopsRoom(t *testing.T) {
	reg := testRegistry(t)
	a, roomID := reg.CreateRoom("")
	reg.Remove(roomID)

	if _, ok := reg.Get(roomID); ok {
		t.Fatal("room should be gone after Remove")
	}
	// the actor's goroutine should exit promptly; submitting to it should
	// now fail instead of hanging.
	done := make(chan bool, 1)
	go func() {
		// Stop() was already called by Remove(); a second Stop is a no-op.
		a.Stop()
		res := a.Submit(engine.Action{Seat: 0, Kind: engine.ActionAddBot})
		done <- res.Err != nil
	}()
	select {
	case failed := <-done:
		if !failed {
			t.Fatal("submit to a removed room succeeded")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for stopped room")
	}
}
