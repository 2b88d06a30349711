// Package journal implements the Change Journal & Broadcaster (C5):
// an append-only, versioned log per room plus fan-out to seat subscribers,
// grounded on the teacher's ledger.Service persistence contract
// (apps/server/internal/ledger/service.go) and replay.ReplayTape's
// versioned-event shape (replay/types.go), generalized from hand-history
// persistence to the room journal spec.md §4.5 describes.
package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"sync"
)

// Record is one journal entry: a committed Change plus its monotone
// version and stable checksum (spec.md §3 Change Record, §4.5 Checksum).
type Record struct {
	Version       uint64         `json:"version"`
	Phase         string         `json:"phase"`
	Fields        map[string]any `json:"changes"`
	Reason        string         `json:"reason"`
	AppliedAt     int64          `json:"applied_at"`
	TriggeredByID string         `json:"triggered_by_action_id,omitempty"`
	Checksum      string         `json:"checksum"`
}

// retentionFloorDefault bounds how many records the ring buffer keeps per
// room before a reconnecting seat is forced into FULL_RESYNC, mirroring the
// teacher's bounded "most recent N" trimming in ledger.UpsertLiveHistory.
const retentionFloorDefault = 2048

// Journal is the append-only, versioned log for a single room.
type Journal struct {
	mu             sync.Mutex
	records        []Record
	nextVersion    uint64
	retentionFloor int
	store          Store
	roomID         string
}

// New constructs an empty Journal for roomID, versions starting at 0.
func New(roomID string, store Store) *Journal {
	return &Journal{retentionFloor: retentionFloorDefault, store: store, roomID: roomID}
}

// Append commits one batch of changes as a single version bump ("per-batch"
// per spec.md §4.4 note 3), computing each
// record's checksum over its own canonical JSON body.
func (j *Journal) Append(phase string, fieldsBatch []map[string]any, reason string, appliedAt int64, triggeredByID string) []Record {
	j.mu.Lock()
	defer j.mu.Unlock()

	merged := map[string]any{}
	for _, f := range fieldsBatch {
		for k, v := range f {
			merged[k] = v
		}
	}

	rec := Record{
		Version:       j.nextVersion,
		Phase:         phase,
		Fields:        merged,
		Reason:        reason,
		AppliedAt:     appliedAt,
		TriggeredByID: triggeredByID,
	}
	rec.Checksum = checksum(rec)
	j.nextVersion++

	j.records = append(j.records, rec)
	if len(j.records) > j.retentionFloor {
		j.records = j.records[len(j.records)-j.retentionFloor:]
	}
	if j.store != nil {
		j.store.Append(j.roomID, rec)
	}
	return []Record{rec}
}

// CurrentVersion is the version of the most recently committed record, or 0
// for an empty journal (room just created).
func (j *Journal) CurrentVersion() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.records) == 0 {
		return 0
	}
	return j.records[len(j.records)-1].Version
}

// Since returns all records with Version > fromVersion, in order, and a
// bool reporting whether fromVersion is still within the retention window
// (false means the caller must FULL_RESYNC instead).
func (j *Journal) Since(fromVersion uint64) ([]Record, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.records) == 0 {
		return nil, true
	}
	floor := j.records[0].Version
	if fromVersion+1 < floor {
		return nil, false
	}

	idx := sort.Search(len(j.records), func(i int) bool {
		return j.records[i].Version > fromVersion
	})
	out := append([]Record(nil), j.records[idx:]...)
	return out, true
}

// checksum computes a stable 64-bit hash over the canonical JSON of rec
// with the Checksum field itself excluded, per spec.md §4.5.
func checksum(rec Record) string {
	rec.Checksum = ""
	body, err := json.Marshal(rec)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:8])
}
