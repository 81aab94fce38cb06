package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Iron-Ham/teamboard/internal/errors"
)

func TestFileStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "state")
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := fs.Save(ctx, "positions/onboarding", []byte("profile")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := fs.Save(ctx, "positions/onboarding", []byte("team")); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	data, err := fs.Load(ctx, "positions/onboarding")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "team" {
		t.Errorf("Load() = %q, want %q", data, "team")
	}

	entries, err := os.ReadDir(filepath.Join(dir, "positions"))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected a single file after overwrite, found %d (temp files left behind?)", len(entries))
	}
}

func TestFileStore_Missing(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if _, err := fs.Load(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() err = %v, want ErrNotFound", err)
	}
	if err := fs.Delete(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() err = %v, want ErrNotFound", err)
	}
}

func TestFileStore_Delete(t *testing.T) {
	ctx := context.Background()
	fs, _ := NewFileStore(t.TempDir())

	if err := fs.Save(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := fs.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := fs.Load(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after Delete err = %v, want ErrNotFound", err)
	}
}

func TestFileStore_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	fs, _ := NewFileStore(t.TempDir())

	for _, key := range []string{"", ".", "..", "../outside", "a/../../outside", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			if err := fs.Save(ctx, key, []byte("x")); !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("Save(%q) err = %v, want invalid input", key, err)
			}
		})
	}
}

func TestAuthStore(t *testing.T) {
	ctx := context.Background()
	fs, _ := NewFileStore(t.TempDir())
	store := NewAuthStore(fs)

	t.Run("missing session", func(t *testing.T) {
		_, err := store.Load(ctx)
		if !errors.Is(err, errors.ErrSessionNotFound) {
			t.Errorf("Load() err = %v, want ErrSessionNotFound", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		want := Auth{Authenticated: true, UserID: "u1", Role: "hr"}
		if err := store.Save(ctx, want); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if got != want {
			t.Errorf("Load() = %+v, want %+v", got, want)
		}
	})

	t.Run("mark onboarded keeps other fields", func(t *testing.T) {
		if err := store.MarkOnboarded(ctx); err != nil {
			t.Fatalf("MarkOnboarded failed: %v", err)
		}
		got, _ := store.Load(ctx)
		if !got.Onboarded || got.Role != "hr" || !got.Authenticated {
			t.Errorf("unexpected session after MarkOnboarded: %+v", got)
		}
	})

	t.Run("sign out is idempotent", func(t *testing.T) {
		if err := store.SignOut(ctx); err != nil {
			t.Fatalf("SignOut failed: %v", err)
		}
		if err := store.SignOut(ctx); err != nil {
			t.Fatalf("second SignOut failed: %v", err)
		}
		if _, err := store.Load(ctx); !errors.Is(err, errors.ErrSessionNotFound) {
			t.Errorf("Load() after sign out err = %v", err)
		}
	})

	t.Run("mark onboarded without session", func(t *testing.T) {
		if err := store.MarkOnboarded(ctx); err != nil {
			t.Fatalf("MarkOnboarded failed: %v", err)
		}
		got, _ := store.Load(ctx)
		if !got.Onboarded || got.Authenticated {
			t.Errorf("unexpected session: %+v", got)
		}
	})

	t.Run("corrupt record", func(t *testing.T) {
		if err := fs.Save(ctx, AuthKey, []byte("{not json")); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if _, err := store.Load(ctx); err == nil {
			t.Error("expected parse error")
		}
	})
}
