package state

// DefaultLogCapacity is the log ring size used when none is configured.
const DefaultLogCapacity = 100

// LogRing is a fixed-capacity, insertion-ordered log buffer. When full, the
// oldest entries are evicted first. Entries are never reordered.
//
// LogRing is not safe for concurrent use; the Store serializes access.
type LogRing struct {
	capacity int
	entries  []LogEntry
}

// NewLogRing creates a ring with the given capacity. Non-positive values
// fall back to DefaultLogCapacity.
func NewLogRing(capacity int) *LogRing {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &LogRing{
		capacity: capacity,
		entries:  make([]LogEntry, 0, capacity),
	}
}

// Append inserts an entry at the tail, evicting from the head if the ring
// would exceed capacity.
func (r *LogRing) Append(entry LogEntry) {
	r.entries = append(r.entries, entry)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}
}

// ReplaceAll seeds the ring from a snapshot, keeping only the last capacity
// entries in their given order. Used at startup/cold-fetch.
func (r *LogRing) ReplaceAll(entries []LogEntry) {
	if len(entries) > r.capacity {
		entries = entries[len(entries)-r.capacity:]
	}
	r.entries = r.entries[:0]
	r.entries = append(r.entries, entries...)
}

// Entries returns a copy of all entries in chronological order.
func (r *LogRing) Entries() []LogEntry {
	out := make([]LogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Tail returns a copy of the last n entries in chronological order.
// n <= 0 or n > Len returns everything.
func (r *LogRing) Tail(n int) []LogEntry {
	if n <= 0 || n > len(r.entries) {
		n = len(r.entries)
	}
	out := make([]LogEntry, n)
	copy(out, r.entries[len(r.entries)-n:])
	return out
}

// Len returns the number of buffered entries.
func (r *LogRing) Len() int {
	return len(r.entries)
}

// Cap returns the ring capacity.
func (r *LogRing) Cap() int {
	return r.capacity
}
