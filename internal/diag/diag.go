// Package diag is the structured diagnostic facility used in place of a
// bare fprintf to stderr: every fatal condition is captured as a typed
// Record carrying its kind, message, and the call site that detected it,
// then logged through zerolog.
package diag

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Kind classifies a fatal condition.
type Kind string

const (
	EmptyInput       Kind = "empty_input"
	AllocationFailed Kind = "allocation_failed"
	IoRead           Kind = "io_read"
	IoWrite          Kind = "io_write"
	MalformedHeader  Kind = "malformed_header"
	TruncatedPayload Kind = "truncated_payload"
	UnknownMode      Kind = "unknown_mode"
)

// Record is a single fatal diagnostic: what kind of failure it was, the
// message describing it, the wrapped error if any, and the call site
// (file, function, line) that detected it.
type Record struct {
	Kind    Kind
	Message string
	Err     error
	File    string
	Func    string
	Line    int
}

// Logger wraps a zerolog.Logger, rendering each Record it's given.
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger writing to w. When w is an interactive terminal
// (detected with github.com/mattn/go-isatty), output is a colorized
// console line via github.com/mattn/go-colorable; otherwise it is
// structured JSON, one record per line.
func New(w io.Writer) Logger {
	var out io.Writer = w
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = zerolog.ConsoleWriter{Out: colorable.NewColorable(f), NoColor: false}
	}
	return Logger{zl: zerolog.New(out).With().Timestamp().Logger()}
}

// Fatal builds a Record for the given kind, tagging it with the caller's
// source location (skipping this frame), logs it, and returns err unchanged
// (nil if none was given) so callers can still propagate it normally.
func (l Logger) Fatal(kind Kind, err error, message string) error {
	rec := Record{Kind: kind, Message: message, Err: err}

	if pc, file, line, ok := runtime.Caller(1); ok {
		rec.File = file
		rec.Line = line
		if fn := runtime.FuncForPC(pc); fn != nil {
			rec.Func = fn.Name()
		}
	}

	ev := l.zl.Error().Str("kind", string(rec.Kind)).Str("func", rec.Func).Str("file", rec.File).Int("line", rec.Line)
	if rec.Err != nil {
		ev = ev.Err(rec.Err)
	}
	ev.Msg(rec.Message)

	return err
}
