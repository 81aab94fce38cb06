package wizard

// PositionMirror reflects the current step id into an external single-value
// store (a URL query parameter, a file, an in-memory slot) so a reload or a
// shared link can resume at the same step.
//
// Write must replace the stored value in place; it must never accumulate
// history.
type PositionMirror interface {
	Read() (id string, ok bool)
	Write(id string) error
}

type nopMirror struct{}

func (nopMirror) Read() (string, bool) { return "", false }
func (nopMirror) Write(string) error   { return nil }
