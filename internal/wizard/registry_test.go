package wizard

import (
	"testing"

	"github.com/Iron-Ham/teamboard/internal/errors"
)

func steps(ids ...string) []Step {
	out := make([]Step, len(ids))
	for i, id := range ids {
		out[i] = Step{ID: id, Label: "Step " + id}
	}
	return out
}

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name    string
		steps   []Step
		wantErr error
	}{
		{"valid", steps("a", "b", "c"), nil},
		{"empty", nil, errors.ErrEmptyRegistry},
		{"duplicate", steps("a", "b", "a"), errors.ErrDuplicateStep},
		{"empty id", steps("a", ""), errors.ErrInvalidStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(tt.steps...)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if reg.Len() != len(tt.steps) {
					t.Errorf("Len() = %d, want %d", reg.Len(), len(tt.steps))
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if reg != nil {
				t.Error("registry should be nil on error")
			}
		})
	}
}

func TestNewRegistry_DuplicateNamesStep(t *testing.T) {
	_, err := NewRegistry(steps("profile", "team", "profile")...)

	var wizErr *errors.WizardError
	if !errors.As(err, &wizErr) {
		t.Fatalf("expected *WizardError, got %T", err)
	}
	if wizErr.StepID != "profile" {
		t.Errorf("StepID = %q, want %q", wizErr.StepID, "profile")
	}
}

func TestRegistryLookups(t *testing.T) {
	reg := MustRegistry(steps("a", "b", "c")...)

	if got := reg.IndexOf("b"); got != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", got)
	}
	if got := reg.IndexOf("zzz"); got != -1 {
		t.Errorf("IndexOf(zzz) = %d, want -1", got)
	}
	if !reg.Has("c") || reg.Has("d") {
		t.Error("Has reported wrong membership")
	}
	if !reg.IsLast("c") || reg.IsLast("b") {
		t.Error("IsLast reported wrong position")
	}
	if step, ok := reg.Lookup("a"); !ok || step.Label != "Step a" {
		t.Errorf("Lookup(a) = %+v, %v", step, ok)
	}
	if _, ok := reg.Lookup("nope"); ok {
		t.Error("Lookup of unknown id should fail")
	}
}

func TestRegistryIsReadOnly(t *testing.T) {
	input := steps("a", "b")
	reg := MustRegistry(input...)

	input[0].ID = "mutated"
	ids := reg.IDs()
	ids[1] = "mutated"

	if got := reg.IDs(); got[0] != "a" || got[1] != "b" {
		t.Errorf("registry changed through caller slices: %v", got)
	}
}

func TestMustRegistryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for duplicate ids")
		}
	}()
	MustRegistry(steps("a", "a")...)
}

func TestTracker(t *testing.T) {
	reg := MustRegistry(steps("a", "b", "c")...)

	t.Run("idempotent insertion", func(t *testing.T) {
		tr := NewTracker(reg).MarkComplete("a").MarkComplete("b").MarkComplete("a")
		if got := tr.IDs(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
			t.Errorf("IDs() = %v, want [a b]", got)
		}
	})

	t.Run("mark complete does not modify receiver", func(t *testing.T) {
		base := NewTracker(reg, "a")
		_ = base.MarkComplete("b")
		if base.IsComplete("b") {
			t.Error("receiver was modified")
		}
	})

	t.Run("seed drops duplicates", func(t *testing.T) {
		tr := NewTracker(reg, "b", "a", "b")
		if got := tr.IDs(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
			t.Errorf("IDs() = %v, want [b a]", got)
		}
	})

	t.Run("all complete before", func(t *testing.T) {
		tr := NewTracker(reg, "a")
		cases := map[int]bool{0: true, 1: true, 2: false, 3: false, -1: true}
		for index, want := range cases {
			if got := tr.AllCompleteBefore(index); got != want {
				t.Errorf("AllCompleteBefore(%d) = %v, want %v", index, got, want)
			}
		}
		full := NewTracker(reg, "c", "b", "a")
		if !full.AllCompleteBefore(3) || !full.AllCompleteBefore(10) {
			t.Error("every step complete should satisfy any index")
		}
	})
}

func TestGate(t *testing.T) {
	reg := MustRegistry(steps("a", "b", "c")...)
	gate := NewGate(reg)

	tests := []struct {
		name      string
		completed []string
		target    string
		want      bool
	}{
		{"first step always allowed", nil, "a", true},
		{"unknown step denied", []string{"a", "b", "c"}, "x", false},
		{"predecessor incomplete", []string{"a"}, "c", false},
		{"predecessors complete", []string{"a", "b"}, "c", true},
		{"order of completion irrelevant", []string{"b", "a"}, "c", true},
		{"gap denied", []string{"b"}, "c", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.CanGoto(NewTracker(reg, tt.completed...), tt.target); got != tt.want {
				t.Errorf("CanGoto(%q) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}
