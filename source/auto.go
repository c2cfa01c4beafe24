package source

import (
	"io"
	"os"

	"github.com/ava12/procin"
)

// ModeEnv is the name of environment variable overriding the source kind chosen by NewAuto.
// Recognized values are "once", "line", and "auto" (or empty).
const ModeEnv = "PROCIN_SOURCE"

// NewAuto creates a Line source if r is a terminal and a Once source otherwise,
// unless ModeEnv environment variable says otherwise.
// Returns nil and error if environment variable has unknown value or Once source fails to read input.
func NewAuto(name string, r io.Reader) (Source, error) {
	mode := os.Getenv(ModeEnv)
	switch mode {
	case "line":
		return NewLine(name, r), nil
	case "once":
		return NewOnce(name, r)
	case "", "auto":
	default:
		return nil, procin.FormatError(ErrMode, "unknown source mode %q in %s", mode, ModeEnv)
	}

	if isTerminal(r) {
		return NewLine(name, r), nil
	}
	return NewOnce(name, r)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}

	info, e := f.Stat()
	return e == nil && info.Mode()&os.ModeCharDevice != 0
}
