package store

import "time"

// DraftVersion tags the stored payload shape for forward compatibility.
const DraftVersion = 1

// KeyPrefix namespaces every draft key in the durable store.
const KeyPrefix = "draft_"

// Draft is the persisted unit: an opaque field map plus bookkeeping.
type Draft struct {
	Data      map[string]any `json:"data"`
	Timestamp int64          `json:"timestamp"` // epoch milliseconds
	Version   int            `json:"version"`
}

// Age returns how old the draft is relative to now.
func (d *Draft) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(d.Timestamp))
}

// Clone returns a shallow-copied draft whose Data map is an independent map.
// Values are shared; drafts hold plain JSON-decoded values, so callers that
// mutate nested structures must copy those themselves.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	data := make(map[string]any, len(d.Data))
	for k, v := range d.Data {
		data[k] = v
	}
	return &Draft{Data: data, Timestamp: d.Timestamp, Version: d.Version}
}
