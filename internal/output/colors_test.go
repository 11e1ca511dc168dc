package output

import (
	"testing"
)

func TestColorSchemes(t *testing.T) {
	defaultScheme := DefaultColorScheme()
	if defaultScheme.Header == nil {
		t.Error("DefaultColorScheme.Header should not be nil")
	}
	if defaultScheme.Name == nil {
		t.Error("DefaultColorScheme.Name should not be nil")
	}
	if defaultScheme.Label == nil {
		t.Error("DefaultColorScheme.Label should not be nil")
	}
	if defaultScheme.Value == nil {
		t.Error("DefaultColorScheme.Value should not be nil")
	}
	if defaultScheme.Undefined == nil {
		t.Error("DefaultColorScheme.Undefined should not be nil")
	}

	noColor := NoColorScheme()
	if got := noColor.Name.Sprint("ms"); got != "ms" {
		t.Errorf("NoColorScheme.Name.Sprint() = %q, want plain text", got)
	}
	if got := noColor.Undefined.Sprint("-"); got != "-" {
		t.Errorf("NoColorScheme.Undefined.Sprint() = %q, want plain text", got)
	}
}

func TestForcedColorScheme(t *testing.T) {
	scheme := forcedColorScheme()
	got := scheme.Name.Sprint("fps")
	if got == "fps" {
		t.Error("forcedColorScheme should emit ANSI codes")
	}
	if stripped := stripANSI(got); stripped != "fps" {
		t.Errorf("stripANSI() = %q, want %q", stripped, "fps")
	}
}
