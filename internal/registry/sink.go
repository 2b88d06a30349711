package registry

import (
	"sync"

	"liap-tui-server/internal/gameerr"
)

// seatSink implements journal.Sink for one room: it fans a committed
// broadcast out to whichever live writer is currently attached to each
// seat, and queues payloads for seats with none attached until a writer is
// attached again (spec.md §4.7), grounded on gateway.Connection's per-socket
// outbound queue in the teacher's websocket layer.
// maxBacklogPerSeat bounds how many undelivered frames a disconnected seat
// accumulates before the oldest are dropped (spec.md §4.7 "retained up to a
// cap"); a reconnect that falls outside this falls back to a full Snapshot
// anyway, same as one that falls outside the journal's retention window.
const maxBacklogPerSeat = 256

type seatSink struct {
	mu      sync.Mutex
	writers [4]SeatWriter
	backlog [4][][]byte
}

// SeatWriter is whatever can push one frame to a live seat connection;
// internal/wire's per-connection websocket writer implements this.
type SeatWriter interface {
	WriteFrame(payload []byte) error
}

func newSeatSink() *seatSink {
	return &seatSink{}
}

// SendToSeat implements journal.Sink.
func (s *seatSink) SendToSeat(seat int, payload []byte) error {
	if seat < 0 || seat > 3 {
		return gameerr.New(gameerr.Internal, "seat %d out of range", seat)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.writers[seat]
	if w == nil {
		s.queueLocked(seat, payload)
		return nil
	}
	if err := w.WriteFrame(payload); err != nil {
		// Connection died without an explicit detach notification yet;
		// queue until the wire layer calls Detach/Attach again.
		s.writers[seat] = nil
		s.queueLocked(seat, payload)
		return err
	}
	return nil
}

// queueLocked appends payload to seat's backlog, dropping the oldest frame
// once it is full. Caller must hold s.mu.
func (s *seatSink) queueLocked(seat int, payload []byte) {
	backlog := append(s.backlog[seat], payload)
	if over := len(backlog) - maxBacklogPerSeat; over > 0 {
		backlog = backlog[over:]
	}
	s.backlog[seat] = backlog
}

// Attach installs the live writer for seat and flushes anything queued
// while it was disconnected, in order.
func (s *seatSink) Attach(seat int, w SeatWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writers[seat] = w
	pending := s.backlog[seat]
	s.backlog[seat] = nil
	for _, payload := range pending {
		_ = w.WriteFrame(payload)
	}
}

// Detach removes the live writer for seat, so future sends queue instead
// of erroring.
func (s *seatSink) Detach(seat int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writers[seat] = nil
}
