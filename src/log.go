package maple

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-wide diagnostic sink. Every component routes its
// progress and error reporting through it instead of printing directly,
// so that a host application (or a test) can redirect or silence it.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "maple",
})

// SetLogger replaces the package's diagnostic sink. Passing nil restores
// a logger that writes to os.Stderr at the default level.
func SetLogger(l *log.Logger) {
	if l == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "maple"})
		return
	}
	logger = l
}

// Level re-exports charmbracelet/log's verbosity levels so callers don't
// need to import that package themselves just to call SetLevel.
type Level = log.Level

// Verbosity levels accepted by SetLevel, in increasing order of
// quietness.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// SetLevel adjusts the verbosity of the package logger. Tests typically
// raise this to LevelWarn to keep output quiet.
func SetLevel(level Level) {
	logger.SetLevel(level)
}
