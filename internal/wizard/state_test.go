package wizard

import (
	"reflect"
	"testing"
)

func TestReduce_Initialize(t *testing.T) {
	reg := MustRegistry(steps("a", "b", "c", "d")...)

	tests := []struct {
		name          string
		action        Initialize
		wantCurrent   string
		wantCompleted []string
	}{
		{"absent mirror", Initialize{}, "a", []string{}},
		{"unknown mirrored id", Initialize{Mirrored: "zzz", Found: true}, "a", []string{}},
		{"empty mirrored id", Initialize{Mirrored: "", Found: true}, "a", []string{}},
		{"mirrored first step", Initialize{Mirrored: "a", Found: true}, "a", []string{}},
		{"mirrored middle step", Initialize{Mirrored: "c", Found: true}, "c", []string{"a", "b"}},
		{"mirrored last step", Initialize{Mirrored: "d", Found: true}, "d", []string{"a", "b", "c"}},
		{"value ignored when not found", Initialize{Mirrored: "c", Found: false}, "a", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(reg, State{CurrentStepID: "b", LastError: "stale"}, tt.action)
			if got.CurrentStepID != tt.wantCurrent {
				t.Errorf("CurrentStepID = %q, want %q", got.CurrentStepID, tt.wantCurrent)
			}
			if !reflect.DeepEqual(got.CompletedStepIDs, tt.wantCompleted) {
				t.Errorf("CompletedStepIDs = %v, want %v", got.CompletedStepIDs, tt.wantCompleted)
			}
			if got.Loading || got.LastError != "" {
				t.Errorf("initialize should reset flags, got %+v", got)
			}
		})
	}
}

func TestReduce_Commit(t *testing.T) {
	reg := MustRegistry(steps("a", "b", "c")...)

	started := Reduce(reg, State{CurrentStepID: "a", CompletedStepIDs: []string{}}, CommitStarted{})
	if !started.Loading {
		t.Fatal("CommitStarted should set Loading")
	}

	failed := Reduce(reg, started, CommitFailed{Message: "nope"})
	if failed.Loading || failed.LastError != "nope" || failed.CurrentStepID != "a" || len(failed.CompletedStepIDs) != 0 {
		t.Errorf("unexpected state after failure: %+v", failed)
	}

	ok := Reduce(reg, failed, CommitSucceeded{})
	want := State{CurrentStepID: "b", CompletedStepIDs: []string{"a"}}
	if !reflect.DeepEqual(ok, want) {
		t.Errorf("after success = %+v, want %+v", ok, want)
	}

	last := Reduce(reg, State{CurrentStepID: "c", CompletedStepIDs: []string{"a", "b", "c"}}, CommitSucceeded{})
	if last.CurrentStepID != "c" {
		t.Errorf("success on last step moved to %q", last.CurrentStepID)
	}
	if !reflect.DeepEqual(last.CompletedStepIDs, []string{"a", "b", "c"}) {
		t.Errorf("re-completing last step duplicated ids: %v", last.CompletedStepIDs)
	}
}

func TestReduce_Navigation(t *testing.T) {
	reg := MustRegistry(steps("a", "b", "c")...)
	base := State{CurrentStepID: "b", CompletedStepIDs: []string{"a"}, LastError: "old"}

	tests := []struct {
		name        string
		from        State
		action      Action
		wantCurrent string
		wantError   string
	}{
		{"back from middle", base, Back{}, "a", ""},
		{"back from first is a no-op", State{CurrentStepID: "a", CompletedStepIDs: []string{}}, Back{}, "a", ""},
		{"skip from middle", base, Skip{}, "c", ""},
		{"skip from last is a no-op", State{CurrentStepID: "c", CompletedStepIDs: []string{}, LastError: "x"}, Skip{}, "c", "x"},
		{"jump allowed", base, Jump{TargetID: "a"}, "a", ""},
		{"jump denied", base, Jump{TargetID: "c"}, "b", "old"},
		{"jump unknown", base, Jump{TargetID: "zzz"}, "b", "old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(reg, tt.from, tt.action)
			if got.CurrentStepID != tt.wantCurrent {
				t.Errorf("CurrentStepID = %q, want %q", got.CurrentStepID, tt.wantCurrent)
			}
			if got.LastError != tt.wantError {
				t.Errorf("LastError = %q, want %q", got.LastError, tt.wantError)
			}
			if !reflect.DeepEqual(got.CompletedStepIDs, tt.from.CompletedStepIDs) {
				t.Errorf("navigation changed completion set: %v", got.CompletedStepIDs)
			}
		})
	}
}

func TestReduce_SkipDoesNotComplete(t *testing.T) {
	reg := MustRegistry(steps("a", "b", "c")...)
	got := Reduce(reg, State{CurrentStepID: "a", CompletedStepIDs: []string{}}, Skip{})
	if len(got.CompletedStepIDs) != 0 {
		t.Errorf("skip added to completion set: %v", got.CompletedStepIDs)
	}
}

func TestReduce_IsPure(t *testing.T) {
	reg := MustRegistry(steps("a", "b", "c")...)
	in := State{CurrentStepID: "b", CompletedStepIDs: []string{"a"}}
	snapshot := in.Clone()

	actions := []Action{CommitStarted{}, CommitSucceeded{}, CommitFailed{Message: "x"}, Back{}, Skip{}, Jump{TargetID: "a"}, Initialize{}}
	for _, a := range actions {
		out := Reduce(reg, in, a)
		if !reflect.DeepEqual(in, snapshot) {
			t.Fatalf("%T modified its input: %+v", a, in)
		}
		if len(out.CompletedStepIDs) > 0 && len(in.CompletedStepIDs) > 0 && &out.CompletedStepIDs[0] == &in.CompletedStepIDs[0] {
			t.Fatalf("%T shares the completion slice with its input", a)
		}
	}
}

func TestStateClone(t *testing.T) {
	s := State{CurrentStepID: "a", CompletedStepIDs: []string{"x"}}
	c := s.Clone()
	c.CompletedStepIDs[0] = "y"
	if s.CompletedStepIDs[0] != "x" {
		t.Error("Clone shares the completion slice")
	}
}
