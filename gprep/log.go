package gprep

import "time"

// ModeFlag is the minimum severity a message needs to be logged.
type ModeFlag uint

const (
	DebugMode ModeFlag = iota
	InfoMode
	WarningMode
	ErrorMode
	CriticalMode
	SilentMode
)

var mode = InfoMode

// Logger is the backend that leveled messages are written to.  The default writes
// through the standard log package and LogConfig.SetLogger swaps in a rotating file.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Criticalf(format string, args ...interface{})

	// Shutdown flushes and closes any open log file.
	Shutdown()
}

// SetLogMode sets the severity required for a message to be logged.  SilentMode
// turns off all logging.
func SetLogMode(newMode ModeFlag) {
	mode = newMode
}

// LogMode returns the current severity threshold.
func LogMode() ModeFlag {
	return mode
}

// logf sends a message to the backend method for its level if the level is enabled.
func logf(level ModeFlag, l Logger, format string, args ...interface{}) {
	if mode > level {
		return
	}
	switch level {
	case DebugMode:
		l.Debugf(format, args...)
	case InfoMode:
		l.Infof(format, args...)
	case WarningMode:
		l.Warningf(format, args...)
	case ErrorMode:
		l.Errorf(format, args...)
	default:
		l.Criticalf(format, args...)
	}
}

// Debugf logs per-line detail, shown only with -verbose.
func Debugf(format string, args ...interface{}) { logf(DebugMode, logger, format, args...) }

// Infof logs pass summaries and progress.
func Infof(format string, args ...interface{}) { logf(InfoMode, logger, format, args...) }

// Warningf logs recoverable oddities such as unknown config keys.
func Warningf(format string, args ...interface{}) { logf(WarningMode, logger, format, args...) }

// Errorf logs an error that aborts a command.
func Errorf(format string, args ...interface{}) { logf(ErrorMode, logger, format, args...) }

// Criticalf logs at the highest severity.
func Criticalf(format string, args ...interface{}) { logf(CriticalMode, logger, format, args...) }

// Shutdown closes any log file opened via LogConfig.SetLogger.
func Shutdown() {
	logger.Shutdown()
}

// TimeLog appends the time elapsed since its creation to each message, e.g.
//
//	tlog := NewTimeLog()
//	...
//	tlog.Infof("wrote %d edges", n) // "wrote 12 edges: 1.2s"
type TimeLog struct {
	logger Logger
	start  time.Time
}

// NewTimeLog starts the clock for a pass.
func NewTimeLog() TimeLog {
	return TimeLog{logger, time.Now()}
}

// Elapsed returns the time since the TimeLog was created.
func (t TimeLog) Elapsed() time.Duration {
	return time.Since(t.start)
}

func (t TimeLog) logf(level ModeFlag, format string, args ...interface{}) {
	logf(level, t.logger, format+": %s\n", append(args, t.Elapsed())...)
}

// Debugf logs at debug level with elapsed time.
func (t TimeLog) Debugf(format string, args ...interface{}) { t.logf(DebugMode, format, args...) }

// Infof logs at info level with elapsed time.
func (t TimeLog) Infof(format string, args ...interface{}) { t.logf(InfoMode, format, args...) }

// Warningf logs at warning level with elapsed time.
func (t TimeLog) Warningf(format string, args ...interface{}) { t.logf(WarningMode, format, args...) }
