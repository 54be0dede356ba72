package theme

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAvailable(t *testing.T) {
	want := []string{"dracula", "gruvbox", "nord", "tokyonight"}
	if diff := cmp.Diff(want, Available()); diff != "" {
		t.Fatalf("Available mismatch (-want +got):\n%s", diff)
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("dracula") })

	for _, name := range Available() {
		if !SetTheme(name) {
			t.Errorf("SetTheme(%q) returned false", name)
			continue
		}
		if CurrentName() != name {
			t.Errorf("CurrentName() = %q, want %q", CurrentName(), name)
		}
	}
	if SetTheme("nonexistent-theme") {
		t.Error("SetTheme(nonexistent-theme) returned true")
	}
}

func TestCycleTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("dracula") })

	SetTheme("nord")
	if got := CycleTheme(); got != "tokyonight" {
		t.Fatalf("CycleTheme from nord = %q, want tokyonight", got)
	}
	if got := CycleTheme(); got != "dracula" {
		t.Fatalf("CycleTheme should wrap, got %q", got)
	}
}

func TestPalettesComplete(t *testing.T) {
	for _, name := range Available() {
		SetTheme(name)
		th := Current()
		colors := map[string]string{
			"Primary":             th.Primary().Dark,
			"Secondary":           th.Secondary().Dark,
			"Accent":              th.Accent().Dark,
			"Error":               th.Error().Dark,
			"Success":             th.Success().Dark,
			"Text":                th.Text().Dark,
			"TextMuted":           th.TextMuted().Dark,
			"Background":          th.Background().Dark,
			"BackgroundSecondary": th.BackgroundSecondary().Dark,
			"BorderNormal":        th.BorderNormal().Dark,
			"BorderFocused":       th.BorderFocused().Dark,
		}
		for key, v := range colors {
			if v == "" {
				t.Errorf("%s: %s has no dark value", name, key)
			}
		}
		if th.Text().Light == "" {
			t.Errorf("%s: Text has no light value", name)
		}
	}
	SetTheme("dracula")
}
