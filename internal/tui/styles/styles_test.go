package styles

import "testing"

func TestIsValidTheme(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"default", true},
		{"mono", true},
		{"dracula", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidTheme(tt.name); got != tt.valid {
				t.Errorf("IsValidTheme(%q) = %v, want %v", tt.name, got, tt.valid)
			}
		})
	}
}

func TestGetPalette(t *testing.T) {
	if got := GetPalette(ThemeMono); got.Primary != MonoPalette().Primary {
		t.Errorf("GetPalette(mono).Primary = %v", got.Primary)
	}
	if got := GetPalette("unknown"); got.Primary != DefaultPalette().Primary {
		t.Errorf("unknown theme should fall back to default, got %v", got.Primary)
	}
}

func TestSetActiveTheme(t *testing.T) {
	t.Cleanup(func() { SetActiveTheme(ThemeDefault) })

	SetActiveTheme(ThemeMono)
	if Active().Palette.Primary != MonoPalette().Primary {
		t.Errorf("active palette not switched: %v", Active().Palette.Primary)
	}
	if Active().StepCurrent.GetBackground() != MonoPalette().Primary {
		t.Error("styles not rebuilt from the new palette")
	}

	SetActiveTheme(ThemeDefault)
	if Active().Palette.Primary != DefaultPalette().Primary {
		t.Errorf("active palette not restored: %v", Active().Palette.Primary)
	}
}
