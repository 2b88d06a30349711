package room

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"liap-tui-server/internal/bots"
	"liap-tui-server/internal/config"
	"liap-tui-server/internal/engine"
	"liap-tui-server/internal/gameerr"
	"liap-tui-server/internal/journal"
)

// maxCascadedTransitions bounds the check_transition loop within a single
// applied action, guarding against a design error producing an infinite
// phase cascade (none of this game's phases should ever need more than a
// handful of hops per action).
const maxCascadedTransitions = 8

// Actor is the Room Orchestrator (C4): it owns the Room aggregate, the
// current Phase State, the Journal, and the embedded Action Queue, and is
// the sole writer to all of them — directly grounded on table.Table's
// single-actor-goroutine-per-table design (table.go: `events chan Event`,
// `run()`, `handleEvent`).
type Actor struct {
	mu sync.RWMutex

	Room   *engine.Room
	phases map[engine.Phase]engine.PhaseState

	events chan Event
	done   chan struct{}
	closer sync.Once

	queue       *ActionQueue
	journal     *journal.Journal
	broadcaster *journal.Broadcaster
	bots        *bots.Manager

	clock          func() int64
	lastActivity   time.Time
	phaseEnteredAt time.Time // when CurrentPhase was entered, for auto-advance timers
}

// defaultClock supplies Actor.clock: wall time in unix milliseconds. The
// clock field can only be replaced from inside this package.
func defaultClock() int64 { return time.Now().UnixMilli() }

func NewActor(roomID string, cfg config.RoomConfig, rng *rand.Rand, store journal.Store, sink journal.Sink, botMgr *bots.Manager) *Actor {
	now := time.Now()
	a := &Actor{
		Room:           engine.NewRoom(roomID, cfg, rng),
		phases:         engine.Phases(),
		events:         make(chan Event, cfg.ActionQueueCapacity),
		done:           make(chan struct{}),
		queue:          NewActionQueue(cfg.ActionQueueCapacity),
		journal:        journal.New(roomID, store),
		broadcaster:    journal.NewBroadcaster(sink),
		bots:           botMgr,
		clock:          defaultClock,
		lastActivity:   now,
		phaseEnteredAt: now,
	}
	go a.run()
	return a
}

// Submit enqueues an action and blocks for its result, mirroring
// table.Table.SubmitEvent's send-then-await-response-channel pattern,
// including the "table is closed" case becoming a NOT_FOUND-flavored error
// instead of a deadlock.
func (a *Actor) Submit(act engine.Action) SubmitResult {
	resp := make(chan SubmitResult, 1)
	select {
	case a.events <- Event{Kind: EventAction, Action: act, Seat: act.Seat, Response: resp}:
	case <-a.done:
		return SubmitResult{Err: gameerr.New(gameerr.NotFound, "room is closed")}
	default:
		return SubmitResult{Err: gameerr.New(gameerr.Overload, "action queue full for room %s", a.Room.RoomID)}
	}
	select {
	case res := <-resp:
		return res
	case <-a.done:
		return SubmitResult{Err: gameerr.New(gameerr.NotFound, "room closed while action was pending")}
	}
}

// Join assigns playerID/name to the first empty seat while the room is
// still in WAITING, making the first human joiner the host, and blocks for
// the result — mirroring Submit's send-then-await-response pattern but for
// room-membership events rather than phase actions.
func (a *Actor) Join(playerID, name string) JoinResult {
	resp := make(chan JoinResult, 1)
	select {
	case a.events <- Event{Kind: EventJoin, JoinPlayerID: playerID, JoinName: name, JoinResponse: resp}:
	case <-a.done:
		return JoinResult{Err: gameerr.New(gameerr.NotFound, "room is closed")}
	}
	select {
	case res := <-resp:
		return res
	case <-a.done:
		return JoinResult{Err: gameerr.New(gameerr.NotFound, "room closed while joining")}
	}
}

// MarkDisconnected and MarkConnected update a seat's connection state from
// the actor goroutine only, matching the "Room aggregate is mutated only by
// its own consumer task" rule (spec.md §5).
func (a *Actor) MarkDisconnected(seat int) {
	select {
	case a.events <- Event{Kind: EventConnLost, Seat: seat}:
	case <-a.done:
	}
}

func (a *Actor) MarkConnected(seat int) {
	select {
	case a.events <- Event{Kind: EventConnResume, Seat: seat}:
	case <-a.done:
	}
}

// SeatForPlayer reports which seat, if any, playerID currently occupies, for
// the wire layer to re-bind a dropped socket to its seat on reconnect
// (spec.md §4.7 / §8 "disconnect then reconnect" scenario) without exposing
// raw seat mutation outside this package.
func (a *Actor) SeatForPlayer(playerID string) (int, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for i := range a.Room.Seats {
		if a.Room.Seats[i].Filled && a.Room.Seats[i].PlayerID == playerID {
			return i, true
		}
	}
	return -1, false
}

// ExpireGrace promotes a still-disconnected seat to BOT_TAKEOVER once its
// reconnect grace period elapses (spec.md §4.7); a no-op if the seat
// reconnected in the meantime. The timer itself lives in the wire layer,
// which owns connection lifecycle, not this package.
func (a *Actor) ExpireGrace(seat int) {
	select {
	case a.events <- Event{Kind: EventGraceExpired, Seat: seat}:
	case <-a.done:
	}
}

// Stop closes the room; any in-flight action completes, queued ones are
// abandoned, mirroring table.Table.Stop's sync.Once-guarded close.
func (a *Actor) Stop() {
	a.closer.Do(func() {
		close(a.done)
	})
}

func (a *Actor) run() {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case ev := <-a.events:
			a.handleEvent(ev)
		case <-ticker.C:
			a.tick()
		case <-a.done:
			return
		}
	}
}

func (a *Actor) handleEvent(ev Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastActivity = time.Now()

	switch ev.Kind {
	case EventAction:
		result := a.applyActionLocked(ev.Action)
		if ev.Response != nil {
			ev.Response <- result
		}
	case EventConnLost:
		a.Room.Seats[ev.Seat].ConnectionState = engine.Disconnected
	case EventConnResume:
		a.Room.Seats[ev.Seat].ConnectionState = engine.Connected
		a.bots.Cancel(a.Room.RoomID, ev.Seat)
	case EventGraceExpired:
		if a.Room.Seats[ev.Seat].ConnectionState == engine.Disconnected {
			a.Room.Seats[ev.Seat].ConnectionState = engine.BotTakeover
			a.scheduleActionableBots()
		}
	case EventClose:
		// handled by Stop(); no-op here
	case EventJoin:
		result := a.joinSeatLocked(ev.JoinPlayerID, ev.JoinName)
		if ev.JoinResponse != nil {
			ev.JoinResponse <- result
		}
	}
}

// anyHumanSeated reports whether a non-bot seat is already filled, used to
// decide whether a new joiner becomes host.
func (a *Actor) anyHumanSeated() bool {
	for _, s := range a.Room.Seats {
		if s.Filled && !s.IsBot {
			return true
		}
	}
	return false
}

// joinSeatLocked assigns the first empty seat to a new human player. Only
// legal in WAITING: the room's seat set is fixed once PREPARATION deals
// hands (spec.md §3 Lifecycle). Caller must hold a.mu.
func (a *Actor) joinSeatLocked(playerID, name string) JoinResult {
	if a.Room.CurrentPhase != engine.Waiting {
		return JoinResult{Err: gameerr.New(gameerr.IllegalPhase, "room already started")}
	}
	for i := range a.Room.Seats {
		if a.Room.Seats[i].Filled {
			continue
		}
		a.Room.Seats[i] = engine.Seat{
			Index:           i,
			PlayerID:        playerID,
			DisplayName:     name,
			Filled:          true,
			IsHost:          !a.anyHumanSeated(),
			ConnectionState: engine.Connected,
		}
		now := a.clock()
		a.commit(a.Room.CurrentPhase.String(), []engine.Change{{
			Phase:  a.Room.CurrentPhase,
			Fields: map[string]any{"seat": i, "name": name},
			Reason: "player_joined",
		}}, now)
		return JoinResult{Seat: i}
	}
	return JoinResult{Err: gameerr.New(gameerr.Conflict, "room is full")}
}

// applyActionLocked runs the full C2->C3->C5 pipeline for one action:
// dedup check, validate, apply, journal commit, broadcast,
// cascade transitions, then bot-scheduling for any newly actionable seat.
// Caller must hold a.mu.
func (a *Actor) applyActionLocked(act engine.Action) SubmitResult {
	if dup, found := a.queue.CheckDuplicate(act); found {
		return dup
	}

	ps := a.phases[a.Room.CurrentPhase]
	if err := ps.Validate(a.Room, act); err != nil {
		result := SubmitResult{Err: err}
		a.queue.Remember(act, result)
		return result
	}

	now := a.clock()
	changes := ps.Apply(a.Room, act)
	a.commit(a.Room.CurrentPhase.String(), changes, now)

	a.cascadeTransitions(now)
	a.scheduleActionableBots()

	result := SubmitResult{Applied: true}
	a.queue.Remember(act, result)
	return result
}

// cascadeTransitions repeatedly calls check_transition/on_exit/on_enter
// until the room settles on a phase with no pending transition, committing
// each phase-entry Change batch as its own journal version.
func (a *Actor) cascadeTransitions(now int64) {
	for i := 0; i < maxCascadedTransitions; i++ {
		ps := a.phases[a.Room.CurrentPhase]
		next, ok := ps.CheckTransition(a.Room)
		if !ok {
			return
		}
		ps.OnExit(a.Room)
		a.Room.CurrentPhase = next
		a.phaseEnteredAt = time.Now()
		for seat := 0; seat < 4; seat++ {
			a.bots.Cancel(a.Room.RoomID, seat)
		}
		nextPS := a.phases[next]
		changes := nextPS.OnEnter(a.Room)
		a.commit(next.String(), changes, now)
	}
	log.Printf("room %s: phase cascade exceeded %d transitions, stopping", a.Room.RoomID, maxCascadedTransitions)
}

// commit appends one journal batch and publishes the broadcast, the single
// chokepoint spec.md §9 calls out as the mechanism that "makes the replay
// property hold" (mirroring the teacher's "every mutation funnels through
// apply_change").
func (a *Actor) commit(phase string, changes []engine.Change, now int64) {
	if len(changes) == 0 {
		return
	}
	fields := make([]map[string]any, len(changes))
	reason := ""
	triggeredBy := ""
	for i, c := range changes {
		fields[i] = c.Fields
		reason = c.Reason
		if c.TriggeredByID != "" {
			triggeredBy = c.TriggeredByID
		}
	}
	recs := a.journal.Append(phase, fields, reason, now, triggeredBy)
	a.Room.JournalVersion = a.journal.CurrentVersion()

	a.broadcaster.Publish(func(seat int) ([]byte, error) {
		return BuildSnapshotFrame(a.Room, seat, recs[len(recs)-1])
	})
}

// scheduleActionableBots finds every seat whose turn it currently is (per
// the current phase's AllowedActions) and who is a bot or in BOT_TAKEOVER,
// and schedules its decision through the think-delay Manager.
func (a *Actor) scheduleActionableBots() {
	ps := a.phases[a.Room.CurrentPhase]
	for seat := 0; seat < 4; seat++ {
		s := a.Room.Seats[seat]
		if !s.Filled || (!s.IsBot && s.ConnectionState != engine.BotTakeover) {
			continue
		}
		allowed := ps.AllowedActions(a.Room, seat)
		if len(allowed) == 0 {
			continue
		}
		a.scheduleBotDecision(seat, s.PersonaID)
	}
}

func (a *Actor) scheduleBotDecision(seat int, personaID string) {
	strategy := a.bots.StrategyFor(personaID)
	roomID := a.Room.RoomID
	cfg := a.Room.Config

	decide := func() engine.Action {
		a.mu.RLock()
		view := bots.BuildView(a.Room, seat)
		a.mu.RUnlock()
		return strategy.Decide(view, rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	submit := func(act engine.Action) {
		a.Submit(act)
	}
	go a.bots.Schedule(roomID, seat, cfg.BotThinkDelayMin, cfg.BotThinkDelayMax, decide, submit)
}

// tick drives TURN_RESULTS/SCORING auto-advance and idle bookkeeping,
// mirroring table.go's 500ms ticker handling timeouts and delayed hand
// starts — here, the configured auto-advance durations for non-interactive
// phases.
func (a *Actor) tick() {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.Room.CurrentPhase {
	case engine.TurnResults:
		if !a.Room.TurnResultsReady && time.Since(a.phaseEnteredAt) >= a.Room.Config.TurnResultsAutoAdvance {
			a.applyActionLocked(engine.Action{Seat: -1, Kind: engine.ActionStartNextRound})
		}
	case engine.Scoring:
		if !a.Room.ScoringReady {
			// SCORING has no player-facing action; ScoringPhase.OnEnter
			// already set ScoringReady, so this path only fires if a
			// future phase variant needs an explicit timer nudge.
		}
	}
}

// IdleSince reports how long the room has had no submitted action, for the
// Room Registry's idle-eviction sweep (spec.md §3 Lifecycle).
func (a *Actor) IdleSince() time.Duration {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return time.Since(a.lastActivity)
}

func (a *Actor) CurrentPhase() engine.Phase {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.Room.CurrentPhase
}

// Snapshot builds viewerSeat's current full-state frame on demand, for
// get_room_state and for a reconnecting seat whose last_ack_version has
// fallen outside the journal's retention window (spec.md §4.7
// FULL_RESYNC).
func (a *Actor) Snapshot(viewerSeat int) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	rec := journal.Record{Version: a.Room.JournalVersion, Reason: "resync", Fields: map[string]any{}}
	return BuildSnapshotFrame(a.Room, viewerSeat, rec)
}

// Since streams the journal records after fromVersion for a reconnecting
// seat's incremental resync, or reports ok=false when the caller must fall
// back to Snapshot instead (spec.md §4.7).
func (a *Actor) Since(fromVersion uint64) ([]journal.Record, bool) {
	return a.journal.Since(fromVersion)
}

// RoomID returns the room's identifier.
func (a *Actor) RoomID() string {
	return a.Room.RoomID
}

// HostName and PlayerCount back the Room Registry's lobby listing
// (get_rooms/request_room_list, spec.md §6).
func (a *Actor) HostName() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, s := range a.Room.Seats {
		if s.Filled && s.IsHost {
			return s.DisplayName
		}
	}
	return ""
}

func (a *Actor) PlayerCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	n := 0
	for _, s := range a.Room.Seats {
		if s.Filled {
			n++
		}
	}
	return n
}
