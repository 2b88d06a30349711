// Package registry implements the Room Registry (C1 in spec.md §3): room
// creation, lookup, listing, and idle eviction, grounded on
// apps/server/internal/lobby/lobby.go's table registry — a mutex-guarded
// map plus a background sweep goroutine (there: CleanupIdleTables; here:
// evictIdleRooms), generalized from a single shared lobby of poker tables
// to a registry of independent Liap Tui rooms.
package registry

import (
	"math/rand"
	"sync"
	"time"

	"liap-tui-server/internal/auth"
	"liap-tui-server/internal/bots"
	"liap-tui-server/internal/config"
	"liap-tui-server/internal/journal"
	"liap-tui-server/internal/room"

	"github.com/google/uuid"
)

// Summary is the listing projection for get_rooms/request_room_list,
// spec.md §6.
type Summary struct {
	RoomID      string `json:"room_id"`
	HostName    string `json:"host_name"`
	PlayerCount int    `json:"player_count"`
	Phase       string `json:"phase"`
}

// Registry owns every live room's Actor, the store/sink/bot wiring shared
// by all of them, and the idle-eviction sweep.
type Registry struct {
	mu    sync.RWMutex
	rooms     map[string]*room.Actor
	sinks     map[string]*seatSink
	passwords map[string]string // roomID -> bcrypt hash, absent means no password

	cfg     config.RoomConfig
	store   journal.Store
	botMgr  *bots.Manager
	idleTTL time.Duration

	stop chan struct{}
}

func New(cfg config.RoomConfig, store journal.Store, botMgr *bots.Manager) *Registry {
	r := &Registry{
		rooms:     map[string]*room.Actor{},
		sinks:     map[string]*seatSink{},
		passwords: map[string]string{},
		cfg:     cfg,
		store:   store,
		botMgr:  botMgr,
		idleTTL: cfg.RoomIdleEvictAfter,
		stop:    make(chan struct{}),
	}
	go r.evictIdleRooms()
	return r
}

// CreateRoom allocates a fresh room with a random short ID and its own
// seatSink, mirroring lobby.go's CreateTable(hostName). An empty password
// leaves the room open to anyone with the room ID.
func (reg *Registry) CreateRoom(password string) (*room.Actor, string) {
	roomID := shortID()
	sink := newSeatSink()
	rng := rand.New(rand.NewSource(randSeed()))
	a := room.NewActor(roomID, reg.cfg, rng, reg.store, sink, reg.botMgr)

	reg.mu.Lock()
	reg.rooms[roomID] = a
	reg.sinks[roomID] = sink
	if password != "" {
		if hash, err := auth.HashPassword(password); err == nil {
			reg.passwords[roomID] = hash
		}
	}
	reg.mu.Unlock()
	return a, roomID
}

// VerifyPassword reports whether attempt unlocks roomID: true if the room
// has no password set, or attempt matches the stored hash.
func (reg *Registry) VerifyPassword(roomID, attempt string) bool {
	reg.mu.RLock()
	hash, protected := reg.passwords[roomID]
	reg.mu.RUnlock()
	if !protected {
		return true
	}
	return auth.CheckPassword(hash, attempt)
}

// Get looks up a room's Actor by ID.
func (reg *Registry) Get(roomID string) (*room.Actor, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	a, ok := reg.rooms[roomID]
	return a, ok
}

// Sink returns the seatSink backing roomID's broadcaster, for the
// Connection Registry to attach/detach live websocket writers to.
func (reg *Registry) Sink(roomID string) (*seatSink, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	s, ok := reg.sinks[roomID]
	return s, ok
}

// List returns a summary of every room not yet in GAME_OVER. Full rooms
// are still listed.
func (reg *Registry) List() []Summary {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]Summary, 0, len(reg.rooms))
	for id, a := range reg.rooms {
		phase := a.CurrentPhase().String()
		if phase == "game_over" {
			continue
		}
		out = append(out, Summary{RoomID: id, HostName: a.HostName(), PlayerCount: a.PlayerCount(), Phase: phase})
	}
	return out
}

// Remove deletes a room from the registry and stops its actor; the idle
// eviction sweep is its caller.
func (reg *Registry) Remove(roomID string) {
	reg.mu.Lock()
	a, ok := reg.rooms[roomID]
	delete(reg.rooms, roomID)
	delete(reg.sinks, roomID)
	delete(reg.passwords, roomID)
	reg.mu.Unlock()
	if ok {
		a.Stop()
	}
}

// Stop shuts down the eviction sweep; existing room Actors are left running
// (callers should Remove them individually during a graceful shutdown).
func (reg *Registry) Stop() {
	close(reg.stop)
}

// evictIdleRooms mirrors lobby.go's CleanupIdleTables background loop: a
// ticker wakes periodically and removes any room whose Actor has seen no
// submitted action for longer than idleTTL (spec.md §3 Lifecycle).
func (reg *Registry) evictIdleRooms() {
	if reg.idleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(reg.idleTTL / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			reg.sweepOnce()
		case <-reg.stop:
			return
		}
	}
}

func (reg *Registry) sweepOnce() {
	reg.mu.RLock()
	stale := make([]string, 0)
	for id, a := range reg.rooms {
		if a.IdleSince() > reg.idleTTL {
			stale = append(stale, id)
		}
	}
	reg.mu.RUnlock()

	for _, id := range stale {
		reg.Remove(id)
	}
}

func shortID() string {
	return uuid.NewString()[:8]
}

func randSeed() int64 {
	return time.Now().UnixNano()
}
