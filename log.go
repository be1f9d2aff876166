package tickshell

import (
	"sync/atomic"
	"time"

	catrate "github.com/joeycumines/go-catrate"
	"github.com/rs/zerolog"
)

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can be called while a loop is running.
var loggerPtr atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.Nop()
	loggerPtr.Store(&l)
}

// SetLogger configures the logger used by tickshell. By default nothing is
// logged. Pass zerolog.Nop() to disable logging again.
//
// Levels used:
//   - debug: frame timing, once per FPS sampling window
//   - info: loop start and stop
//   - warn: frame errors (rate limited) and surface release failures
//
// Example:
//
//	tickshell.SetLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
//		With().Timestamp().Logger())
func SetLogger(l zerolog.Logger) {
	l = l.With().Str("component", "tickshell").Logger()
	loggerPtr.Store(&l)
}

// Logger returns the current logger.
func Logger() *zerolog.Logger {
	return loggerPtr.Load()
}

// frameErrorRates bounds how often the same frame error is logged. A surface
// that stays unavailable fails on every iteration of an unthrottled loop.
var frameErrorRates = map[time.Duration]int{
	time.Second: 2,
	time.Minute: 20,
}

// errorReporter logs frame errors through a per-message rate limit and counts
// the ones it drops.
type errorReporter struct {
	limiter    *catrate.Limiter
	suppressed atomic.Int64
}

func newErrorReporter() *errorReporter {
	return &errorReporter{limiter: catrate.NewLimiter(frameErrorRates)}
}

func (r *errorReporter) report(err error) {
	if _, ok := r.limiter.Allow(err.Error()); !ok {
		r.suppressed.Add(1)
		return
	}
	Logger().Warn().
		Err(err).
		Int64("suppressed", r.suppressed.Swap(0)).
		Msg("frame skipped")
}
