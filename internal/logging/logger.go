package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Logger writes leveled console messages. Info and success go to stdout,
// warn and error to stderr. Quiet mode drops everything except errors.
type Logger struct {
	quiet  bool
	out    io.Writer
	errOut io.Writer
	color  bool
}

// New constructs a logger bound to the process stdout/stderr. Colour is
// enabled only when both streams are terminals.
func New(quiet bool) *Logger {
	return &Logger{
		quiet:  quiet,
		out:    os.Stdout,
		errOut: os.Stderr,
		color:  isTerminal(os.Stdout) && isTerminal(os.Stderr),
	}
}

// NewWithWriters constructs a logger bound to the given writers with colour
// disabled. Intended for tests and captured output.
func NewWithWriters(quiet bool, out, errOut io.Writer) *Logger {
	return &Logger{quiet: quiet, out: out, errOut: errOut}
}

// Quiet reports whether non-error output is suppressed.
func (l *Logger) Quiet() bool {
	return l.quiet
}

// Info writes an informational message to stdout.
func (l *Logger) Info(format string, args ...any) {
	l.emit(l.out, text.FgHiCyan, false, format, args...)
}

// Warn writes a warning to stderr.
func (l *Logger) Warn(format string, args ...any) {
	l.emit(l.errOut, text.FgHiYellow, false, format, args...)
}

// Success writes a completion message to stdout.
func (l *Logger) Success(format string, args ...any) {
	l.emit(l.out, text.FgHiGreen, false, format, args...)
}

// Error writes an error to stderr. Errors are emitted even in quiet mode.
func (l *Logger) Error(format string, args ...any) {
	l.emit(l.errOut, text.FgHiRed, true, format, args...)
}

func (l *Logger) emit(w io.Writer, color text.Color, always bool, format string, args ...any) {
	if l.quiet && !always {
		return
	}
	message := fmt.Sprintf(format, args...)
	if l.color {
		message = color.Sprint(message)
	}
	fmt.Fprintln(w, message)
}

var (
	globalOnce sync.Once
	global     *Logger
)

// Init configures the process-wide logger. Only the first call takes effect;
// later calls return the already-configured instance regardless of the quiet
// value they pass.
func Init(quiet bool) *Logger {
	globalOnce.Do(func() {
		global = New(quiet)
	})
	return global
}

// Default returns the process-wide logger, initializing it in non-quiet mode
// if Init has not run yet.
func Default() *Logger {
	return Init(false)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
