package output

import (
	"github.com/fatih/color"
)

// ColorScheme defines the colors used for the parts of a report
type ColorScheme struct {
	Header    *color.Color
	Name      *color.Color
	Label     *color.Color
	Value     *color.Color
	Undefined *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Header:    color.New(color.Bold),
		Name:      color.New(color.FgCyan, color.Bold),
		Label:     color.New(color.Faint),
		Value:     color.New(color.FgGreen),
		Undefined: color.New(color.FgYellow),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	scheme.Header.DisableColor()
	scheme.Name.DisableColor()
	scheme.Label.DisableColor()
	scheme.Value.DisableColor()
	scheme.Undefined.DisableColor()

	return scheme
}

// forcedColorScheme returns the default scheme with colors enabled even
// when the process is not attached to a terminal.
func forcedColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()

	scheme.Header.EnableColor()
	scheme.Name.EnableColor()
	scheme.Label.EnableColor()
	scheme.Value.EnableColor()
	scheme.Undefined.EnableColor()

	return scheme
}
