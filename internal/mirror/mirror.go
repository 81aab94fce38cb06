// Package mirror provides the position mirrors a wizard controller can
// reflect its current step into: an in-memory slot, a URL query parameter,
// and a file in the local state directory.
package mirror

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/Iron-Ham/teamboard/internal/errors"
	"github.com/Iron-Ham/teamboard/internal/session"
	"github.com/Iron-Ham/teamboard/internal/wizard"
)

// DefaultKey is the query parameter used when none is configured.
const DefaultKey = "step"

var (
	_ wizard.PositionMirror = (*Memory)(nil)
	_ wizard.PositionMirror = (*Query)(nil)
	_ wizard.PositionMirror = (*File)(nil)
	_ wizard.PositionMirror = Nop{}
)

// Memory holds the position in process.
type Memory struct {
	mu  sync.Mutex
	id  string
	set bool
}

// NewMemory returns a Memory mirror. A non-empty initial value is reported
// by the first Read, which lets a caller resume at a chosen step.
func NewMemory(initial string) *Memory {
	return &Memory{id: initial, set: initial != ""}
}

// Read returns the held id and whether one was ever set.
func (m *Memory) Read() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id, m.set
}

// Write replaces the held id. It never fails.
func (m *Memory) Write(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id, m.set = id, true
	return nil
}

// Query mirrors the position into one query parameter of a URL, the way a
// browser location carries it. Writes replace the parameter and leave every
// other parameter untouched.
type Query struct {
	mu  sync.Mutex
	u   *url.URL
	key string
}

// NewQuery parses rawURL and returns a Query mirror over key.
func NewQuery(rawURL, key string) (*Query, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.NewValidationError("invalid mirror URL").WithField("url").WithValue(rawURL)
	}
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &Query{u: u, key: key}, nil
}

// Read returns the parameter value and whether the parameter is present.
func (q *Query) Read() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	values := q.u.Query()
	if !values.Has(q.key) {
		return "", false
	}
	return values.Get(q.key), true
}

// Write sets the parameter to id, replacing any previous value.
func (q *Query) Write(id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	values := q.u.Query()
	values.Set(q.key, id)
	q.u.RawQuery = values.Encode()
	return nil
}

// URL returns the current location.
func (q *Query) URL() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.u.String()
}

// File mirrors the position into a single file of a session.FileStore,
// replaced atomically on every write.
type File struct {
	store *session.FileStore
	key   string
}

// PositionKey returns the store key used for a named flow's position.
func PositionKey(flow string) string {
	if flow == "" {
		flow = "default"
	}
	return "positions/" + flow
}

// NewFile returns a File mirror for the named flow.
func NewFile(store *session.FileStore, flow string) *File {
	return &File{store: store, key: PositionKey(flow)}
}

// Read returns the stored id. Missing, unreadable and blank values all read
// as absent.
func (f *File) Read() (string, bool) {
	data, err := f.store.Load(context.Background(), f.key)
	if err != nil {
		return "", false
	}
	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", false
	}
	return id, true
}

// Write stores id, replacing the previous position.
func (f *File) Write(id string) error {
	if err := f.store.Save(context.Background(), f.key, []byte(id+"\n")); err != nil {
		return errors.Wrapf(err, "failed to write position %q", id)
	}
	return nil
}

// Clear removes the stored position so the next session starts fresh.
func (f *File) Clear() error {
	if err := f.store.Delete(context.Background(), f.key); err != nil && !errors.Is(err, session.ErrNotFound) {
		return errors.Wrap(err, "failed to clear position")
	}
	return nil
}

// Nop never remembers a position.
type Nop struct{}

// Read always reports no position.
func (Nop) Read() (string, bool) { return "", false }

// Write discards id.
func (Nop) Write(string) error { return nil }
