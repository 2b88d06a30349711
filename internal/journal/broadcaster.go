package journal

// Sink receives one seat's outbound frame. internal/registry's seatSink
// implements this, queuing per-seat while a seat is disconnected
// (spec.md §4.7) so Broadcaster itself stays free of connection-lifecycle
// concerns — mirroring how holdem's table.go separates "compute the
// broadcast body" from "sendToUser over the websocket".
type Sink interface {
	SendToSeat(seat int, payload []byte) error
}

// SnapshotFunc builds the seat-specific view of a broadcast body: public
// fields identical for every seat, plus that seat's own hand when addressed
// to them (spec.md §4.5 "per-seat view customization").
type SnapshotFunc func(seat int) ([]byte, error)

// Broadcaster fans a committed journal batch out to all four seats, in the
// fixed seat order 0..3, on the calling goroutine — since the Room
// Orchestrator is the sole caller and is itself single-threaded per room,
// this trivially guarantees the per-destination FIFO ordering spec.md §4.5
// and §5 require without needing an explicit lock.
type Broadcaster struct {
	sink Sink
}

func NewBroadcaster(sink Sink) *Broadcaster {
	return &Broadcaster{sink: sink}
}

// Publish computes and sends the per-seat view for every seat. build must be
// deterministic and side-effect free; errors from a single seat's send are
// swallowed here (a disconnected seat's Sink queues instead of failing) and
// never stop delivery to the remaining seats.
func (b *Broadcaster) Publish(build SnapshotFunc) {
	for seat := 0; seat < 4; seat++ {
		payload, err := build(seat)
		if err != nil {
			continue
		}
		_ = b.sink.SendToSeat(seat, payload)
	}
}
