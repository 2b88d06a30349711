// Package wire is the Dispatcher (C8): JSON frame parsing, event routing to
// the Room Registry or a specific room's Actor, and outbound frame
// formatting, grounded on apps/server/internal/gateway/gateway.go's
// envelope dispatch loop — retargeted from a protobuf envelope to the
// JSON frame shape spec.md §6 requires.
package wire

import "encoding/json"

// InboundFrame is the client-to-server envelope: {event, data, request_id?,
// sequence?}, spec.md §6.
type InboundFrame struct {
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id,omitempty"`
	Sequence  int64           `json:"sequence,omitempty"`
}

// eventFrame is the generic outbound server-to-client envelope for anything
// that is not a full phase_change snapshot (e.g. room_list, joined_room,
// ack), spec.md §6.
type eventFrame struct {
	Event     string `json:"event"`
	Data      any    `json:"data"`
	Version   uint64 `json:"version,omitempty"`
	Checksum  string `json:"checksum,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// errorFrame is the outbound error envelope, spec.md §7: {event:"error",
// data:{type, message}}.
type errorFrame struct {
	Event string        `json:"event"`
	Data  errorPayload  `json:"data"`
}

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
