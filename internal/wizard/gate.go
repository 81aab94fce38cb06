package wizard

// Gate decides whether an arbitrary jump is permitted. Sequential Next and
// Prev never consult it.
type Gate struct {
	registry *Registry
}

// NewGate returns a Gate over registry.
func NewGate(registry *Registry) Gate {
	return Gate{registry: registry}
}

// CanGoto reports whether targetID is a known step and every step before it
// is complete.
func (g Gate) CanGoto(completed Tracker, targetID string) bool {
	i := g.registry.IndexOf(targetID)
	if i < 0 {
		return false
	}
	return completed.AllCompleteBefore(i)
}
