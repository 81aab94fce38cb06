package wizard

// State is the complete, copyable state of one wizard session.
type State struct {
	CurrentStepID    string
	CompletedStepIDs []string
	Loading          bool
	// LastError is the message of the most recent commit failure; empty
	// when there is none.
	LastError string
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.CompletedStepIDs = append([]string{}, s.CompletedStepIDs...)
	return s
}

// Action is an input to Reduce.
type Action interface {
	action()
}

// Initialize picks the starting step. Mirrored is the value read from the
// position mirror; Found is false when the mirror held nothing.
type Initialize struct {
	Mirrored string
	Found    bool
}

// CommitStarted marks the current step's commit as in flight.
type CommitStarted struct{}

// CommitSucceeded completes the current step and advances unless it is the last.
type CommitSucceeded struct{}

// CommitFailed records a rejected commit without moving.
type CommitFailed struct {
	Message string
}

// Back moves to the previous step.
type Back struct{}

// Jump moves to TargetID when the navigation gate allows it.
type Jump struct {
	TargetID string
}

// Skip advances without committing or completing the current step.
type Skip struct{}

func (Initialize) action()      {}
func (CommitStarted) action()   {}
func (CommitSucceeded) action() {}
func (CommitFailed) action()    {}
func (Back) action()            {}
func (Jump) action()            {}
func (Skip) action()            {}

// Reduce returns the state that results from applying a to s. It is pure:
// s is never modified and the result shares no slices with it. Actions that
// are not permitted in s (Back on the first step, Skip on the last, a Jump
// the gate refuses) return an unchanged copy.
func Reduce(registry *Registry, s State, a Action) State {
	next := s.Clone()
	idx := registry.IndexOf(s.CurrentStepID)

	switch a := a.(type) {
	case Initialize:
		next = State{CurrentStepID: registry.At(0).ID, CompletedStepIDs: []string{}}
		if k := registry.IndexOf(a.Mirrored); a.Found && k >= 0 {
			next.CurrentStepID = a.Mirrored
			next.CompletedStepIDs = registry.IDs()[:k]
		}

	case CommitStarted:
		next.Loading = true

	case CommitSucceeded:
		next.Loading = false
		next.LastError = ""
		next.CompletedStepIDs = NewTracker(registry, s.CompletedStepIDs...).MarkComplete(s.CurrentStepID).IDs()
		if idx >= 0 && idx < registry.Len()-1 {
			next.CurrentStepID = registry.At(idx + 1).ID
		}

	case CommitFailed:
		next.Loading = false
		next.LastError = a.Message

	case Back:
		if idx > 0 {
			next.CurrentStepID = registry.At(idx - 1).ID
			next.LastError = ""
		}

	case Jump:
		if NewGate(registry).CanGoto(NewTracker(registry, s.CompletedStepIDs...), a.TargetID) {
			next.CurrentStepID = a.TargetID
			if a.TargetID != s.CurrentStepID {
				next.LastError = ""
			}
		}

	case Skip:
		if idx >= 0 && idx < registry.Len()-1 {
			next.CurrentStepID = registry.At(idx + 1).ID
			next.LastError = ""
		}
	}

	return next
}
