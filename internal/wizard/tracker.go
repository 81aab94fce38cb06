package wizard

import "slices"

// Tracker is the ordered, duplicate-free set of step ids a session has
// passed through. It is a value: MarkComplete returns a new Tracker and
// never modifies the receiver, so reducer inputs stay untouched.
type Tracker struct {
	registry *Registry
	ids      []string
}

// NewTracker returns a Tracker over registry seeded with ids. Duplicates in
// ids are dropped, keeping first occurrence order.
func NewTracker(registry *Registry, ids ...string) Tracker {
	t := Tracker{registry: registry}
	for _, id := range ids {
		t = t.MarkComplete(id)
	}
	return t
}

// MarkComplete returns a Tracker with id appended, or t itself when id is
// already present.
func (t Tracker) MarkComplete(id string) Tracker {
	if t.IsComplete(id) {
		return t
	}
	next := make([]string, len(t.ids), len(t.ids)+1)
	copy(next, t.ids)
	return Tracker{registry: t.registry, ids: append(next, id)}
}

// IsComplete reports whether id has been completed.
func (t Tracker) IsComplete(id string) bool {
	return slices.Contains(t.ids, id)
}

// AllCompleteBefore reports whether every step at registry positions
// [0, index) is complete. It is vacuously true for index <= 0.
func (t Tracker) AllCompleteBefore(index int) bool {
	if index > t.registry.Len() {
		index = t.registry.Len()
	}
	for i := 0; i < index; i++ {
		if !t.IsComplete(t.registry.At(i).ID) {
			return false
		}
	}
	return true
}

// IDs returns a copy of the completed ids in insertion order.
func (t Tracker) IDs() []string {
	return append([]string{}, t.ids...)
}

// Len returns the number of completed ids.
func (t Tracker) Len() int { return len(t.ids) }
