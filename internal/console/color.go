package console

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Palette holds the colors used for each kind of line.
// The same palette is shared by notices and the plain text report so the
// terminal output looks consistent.
type Palette struct {
	Info    *color.Color
	Success *color.Color
	Alert   *color.Color
	Failure *color.Color
	Bold    *color.Color
}

// NewPalette returns the palette, with colors forced on or off.
//
// Design decision: We set the mode on each color instead of the global
// color.NoColor so that a Console writing to a file and a report writing to
// a terminal can make different choices in the same process.
func NewPalette(enabled bool) *Palette {
	p := &Palette{
		Info:    color.New(color.FgCyan),
		Success: color.New(color.FgGreen),
		Alert:   color.New(color.FgYellow),
		Failure: color.New(color.FgRed),
		Bold:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.Info, p.Success, p.Alert, p.Failure, p.Bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// ColorEnabled reports whether ANSI colors should be written to w.
// Colors are used only for terminals and never when NO_COLOR is set.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
