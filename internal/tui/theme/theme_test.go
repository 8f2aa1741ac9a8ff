package theme

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
	}{
		{
			name:      "load mountain-retreat theme",
			themeName: "mountain-retreat",
			wantName:  "mountain-retreat",
		},
		{
			name:      "load professional theme",
			themeName: "professional",
			wantName:  "professional",
		},
		{
			name:      "load minimal theme",
			themeName: "minimal",
			wantName:  "minimal",
		},
		{
			name:      "load dark theme",
			themeName: "Dark",
			wantName:  "dark",
		},
		{
			name:      "empty name defaults to mountain-retreat",
			themeName: "",
			wantName:  "mountain-retreat",
		},
		{
			name:      "invalid theme falls back to mountain-retreat",
			themeName: "nonexistent",
			wantName:  "mountain-retreat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
		})
	}
}

func TestLoad_EveryThemeHasColors(t *testing.T) {
	for _, name := range Available() {
		t.Run(name, func(t *testing.T) {
			theme, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", name, err)
			}
			colors := map[string]string{
				"bg":           theme.Bg,
				"bg_highlight": theme.BgHighlight,
				"bg_selection": theme.BgSelection,
				"fg":           theme.Fg,
				"fg_muted":     theme.FgMuted,
				"accent":       theme.Accent,
				"current":      theme.Current,
				"optional":     theme.Optional,
				"border":       theme.Border,
			}
			for field, v := range colors {
				if len(v) != 7 || v[0] != '#' {
					t.Errorf("%s = %q, want #rrggbb", field, v)
				}
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	theme, err := Load("dark")
	if err != nil {
		t.Fatalf("Load(dark) unexpected error: %v", err)
	}
	// dark.toml leaves border unset.
	if theme.Border != theme.BgSelection {
		t.Errorf("Border = %q, want fallback %q", theme.Border, theme.BgSelection)
	}

	bare := &Theme{Bg: "#000000", Fg: "#ffffff", Accent: "#ff0000"}
	bare.applyDefaults()
	if bare.BgHighlight != "#000000" || bare.FgMuted != "#ffffff" || bare.Optional != "#ff0000" {
		t.Errorf("unexpected defaults: %+v", bare)
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"mountain-retreat", true},
		{"PROFESSIONAL", true},
		{"minimal", true},
		{"dark", true},
		{"mocha", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(tt.name); got != tt.want {
				t.Errorf("IsAvailable(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
