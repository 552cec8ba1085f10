package extract

import "time"

// Snapshot is one point-in-time set of extracted field values from a single
// source call. Field order follows insertion order so downstream rendering is
// deterministic. A snapshot is built once by the extractor and must not be
// mutated afterwards.
type Snapshot struct {
	SourceID  string
	FetchedAt time.Time

	keys   []string
	values map[string]Value
}

// NewSnapshot creates an empty snapshot for the given source.
func NewSnapshot(sourceID string, fetchedAt time.Time) *Snapshot {
	return &Snapshot{
		SourceID:  sourceID,
		FetchedAt: fetchedAt,
		values:    make(map[string]Value),
	}
}

// Set records a present value under key. Absent values are ignored: absence
// is represented by the key not being in the snapshot at all.
func (s *Snapshot) Set(key string, v Value) {
	if !v.Present {
		return
	}
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
}

// Get returns the value for key and whether it is present.
func (s *Snapshot) Get(key string) (Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Float returns the numeric payload for key, if present and numeric.
func (s *Snapshot) Float(key string) (float64, bool) {
	v, ok := s.values[key]
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Keys returns the field keys in insertion order.
func (s *Snapshot) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of present fields.
func (s *Snapshot) Len() int { return len(s.keys) }

// Empty reports whether no signature matched at all. An empty snapshot is the
// extractor's total-miss signal.
func (s *Snapshot) Empty() bool { return len(s.keys) == 0 }
