package gprep

import (
	"errors"
	"fmt"
)

// ErrBlankLine is returned by the line parsers for lines that carry no record and
// should be skipped: empty lines and edge lines holding only their two endpoints.
var ErrBlankLine = errors.New("blank line")

// IsBlank returns true if the error marks a line that should be skipped.
func IsBlank(err error) bool {
	return errors.Is(err, ErrBlankLine)
}

// FormatError is a fatal parse error on a single input line.  The raw line is kept so
// it can be shown to the user before the run is aborted.
type FormatError struct {
	Source string // file name if known
	Line   int    // 1-based line number if known
	Text   string // raw offending line
	Reason string
}

func (e *FormatError) Error() string {
	switch {
	case e.Source != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s: %q", e.Source, e.Line, e.Reason, e.Text)
	case e.Source != "":
		return fmt.Sprintf("%s: %s: %q", e.Source, e.Reason, e.Text)
	default:
		return fmt.Sprintf("%s: %q", e.Reason, e.Text)
	}
}

// WithPosition returns a copy of the error located at the given file and line number.
func (e *FormatError) WithPosition(source string, line int) *FormatError {
	located := *e
	located.Source = source
	located.Line = line
	return &located
}

// InternalError marks a violated invariant inside a batch operation, i.e., a bug
// rather than bad input.
type InternalError struct {
	Op     string
	Reason string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: this shouldn't happen! %s", e.Op, e.Reason)
}

// UsageError is returned for bad command-line arguments.  By convention the command
// prints its usage and exits with status 0 when there are too few arguments.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// ExitCode maps an error returned by a batch operation to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return 0
	}
	return 1
}

// FormatErrorf returns a FormatError for the raw line with a formatted reason.
func FormatErrorf(text, format string, args ...interface{}) *FormatError {
	return &FormatError{Text: text, Reason: fmt.Sprintf(format, args...)}
}
