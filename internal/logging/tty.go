package logging

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Environment variables consulted by SupportsColor.
const (
	EnvNoColor    = "NO_COLOR"
	EnvAppNoColor = "TMPLORG_NO_COLOR"
	EnvForceColor = "CLICOLOR_FORCE"
)

// IsTTY reports whether w is a terminal. Any writer exposing Fd() is
// checked, which covers *os.File.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether ANSI color should be written to w.
//
// NO_COLOR and TMPLORG_NO_COLOR always disable color, as does TERM=dumb.
// CLICOLOR_FORCE set to anything but "0" enables it for non-terminals.
// Otherwise color follows IsTTY.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	// https://no-color.org
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		return false
	}
	if _, ok := os.LookupEnv(EnvAppNoColor); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if v, ok := os.LookupEnv(EnvForceColor); ok && v != "0" {
		return true
	}
	return isTTY
}

// ConfigureColor sets the fatih/color global switch for output written to w.
// Command output that is not a terminal stays plain.
func ConfigureColor(w io.Writer) {
	color.NoColor = !SupportsColor(w)
}
