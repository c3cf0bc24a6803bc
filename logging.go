package hashsig

import (
	goLog "log"

	"github.com/rs/zerolog"
)

// Logger receives the diagnostic messages this package emits: one line
// per UpdatableMSS update, which every Sign runs. By default it logs
// nothing; call SetLogger or EnableLogging to turn logging on.
type Logger interface {
	Logf(format string, a ...interface{})
}

var log Logger = &dummyLogger{}

type dummyLogger struct{}

func (logger *dummyLogger) Logf(format string, a ...interface{}) {}

type stdlibLogger struct{}

func (logger *stdlibLogger) Logf(format string, a ...interface{}) {
	goLog.Printf(format, a...)
}

// zerologLogger adapts a zerolog.Logger to the Logger interface,
// writing every line at debug level. NewZerologLogger tags every line
// with component=hashsig so this package's lines can be told apart
// from other components in a structured log stream.
type zerologLogger struct {
	zl zerolog.Logger
}

func (logger *zerologLogger) Logf(format string, a ...interface{}) {
	logger.zl.Debug().Msgf(format, a...)
}

// NewZerologLogger wraps zl as a Logger, ready to pass to SetLogger.
func NewZerologLogger(zl zerolog.Logger) Logger {
	return &zerologLogger{zl: zl.With().Str("component", "hashsig").Logger()}
}

// EnableLogging logs to the standard log package. For structured
// logging use SetLogger with NewZerologLogger instead.
func EnableLogging() {
	SetLogger(&stdlibLogger{})
}

// SetLogger installs logger as the package-wide diagnostic sink.
// Passing nil disables logging.
func SetLogger(logger Logger) {
	if logger == nil {
		log = &dummyLogger{}
		return
	}
	log = logger
}
