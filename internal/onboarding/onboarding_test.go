package onboarding

import (
	"context"
	"testing"

	"github.com/Iron-Ham/teamboard/internal/dispatch"
	"github.com/Iron-Ham/teamboard/internal/errors"
	"github.com/Iron-Ham/teamboard/internal/flow"
	"github.com/Iron-Ham/teamboard/internal/session"
	"github.com/Iron-Ham/teamboard/internal/wizard"
)

func TestDefaultFlow_EveryRole(t *testing.T) {
	for _, role := range dispatch.Roles() {
		t.Run(role, func(t *testing.T) {
			def, err := DefaultFlow(role)
			if err != nil {
				t.Fatalf("DefaultFlow(%q) failed: %v", role, err)
			}
			if def.Name != role {
				t.Errorf("Name = %q, want %q", def.Name, role)
			}
			if _, err := def.Build(flow.NewCatalog(), nil); err != nil {
				t.Errorf("built-in flow does not build: %v", err)
			}
			if def.Steps[0].ID != "profile" {
				t.Errorf("first step = %q, want profile", def.Steps[0].ID)
			}
			if def.Steps[len(def.Steps)-1].ID != "preferences" {
				t.Errorf("last step = %q, want preferences", def.Steps[len(def.Steps)-1].ID)
			}
		})
	}
}

func TestDefaultFlow_UnknownRole(t *testing.T) {
	for _, role := range []string{"", "janitor", "../hr"} {
		if _, err := DefaultFlow(role); !errors.Is(err, &errors.NotFoundError{}) {
			t.Errorf("DefaultFlow(%q) err = %v, want not found", role, err)
		}
	}
}

func TestRun_TeamLeadFlow(t *testing.T) {
	ctx := context.Background()
	def, err := DefaultFlow(dispatch.RoleTeamLead)
	if err != nil {
		t.Fatalf("DefaultFlow failed: %v", err)
	}
	run, err := Start(def, nil)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	c := run.Controller

	if r := run.Submit(ctx, ""); r != wizard.Rejected {
		t.Fatalf("blank profile = %v, want rejected", r)
	}
	if r := run.Submit(ctx, "Grace Hopper"); r != wizard.Moved {
		t.Fatalf("profile = %v, want moved", r)
	}
	if r := run.Submit(ctx, "Compilers"); r != wizard.Moved {
		t.Fatalf("team = %v, want moved", r)
	}
	if r := run.Submit(ctx, "not-an-email"); r != wizard.Rejected {
		t.Fatalf("bad invite = %v, want rejected", r)
	}
	if r := c.Skip(); r != wizard.Moved {
		t.Fatalf("skip invite = %v, want moved", r)
	}
	if r := run.Submit(ctx, ""); r != wizard.Finished {
		t.Fatalf("preferences = %v, want finished", r)
	}

	want := []string{"profile", "team", "preferences"}
	got := c.CompletedStepIDs()
	if len(got) != len(want) {
		t.Fatalf("completed = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("completed = %v, want %v", got, want)
		}
	}

	summary := run.Summary()
	if len(summary) != 3 || summary[0].Answer != "Grace Hopper" || summary[1].Label != "Team setup" {
		t.Errorf("Summary() = %+v", summary)
	}
}

func TestComplete(t *testing.T) {
	ctx := context.Background()
	fs, err := session.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	auth := session.NewAuthStore(fs)
	if err := auth.Save(ctx, session.Auth{Authenticated: true, Role: dispatch.RoleHR}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := Complete(ctx, auth); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	got, _ := auth.Load(ctx)
	if !got.Onboarded {
		t.Error("session not marked onboarded")
	}
	dest := dispatch.Resolve(dispatch.Session{Authenticated: got.Authenticated, Role: got.Role, Onboarded: got.Onboarded})
	if dest != dispatch.HR {
		t.Errorf("destination = %q, want hr", dest)
	}
}
