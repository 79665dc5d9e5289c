// Package gaerr is the central error-reporting facility used throughout
// galib: callers report a precondition violation through a Reporter —
// source location, class name, function name, error kind — rather than
// returning a Go error from call sites that must keep running
// (crossover, mutation, configuration setters).
package gaerr

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// ErrorKind enumerates the failure classes operators and setters
// report.
type ErrorKind int

const (
	SameLengthRequired ErrorKind = iota
	SameBehaviorRequired
	BadParentLength
	BadResizeBehavior
	OpUndef
	ReadError
	WriteError
	BadProbValue
	ObjectTypeMismatch
	RefsRemain
	NoIndividuals
	BadPopSize
	NoSexualMating
	BadSharingCutoff
	NegFitness
	BinStrTooLong
	BadAlleleIndex
)

var kindNames = map[ErrorKind]string{
	SameLengthRequired:   "SameLengthRequired",
	SameBehaviorRequired: "SameBehaviorRequired",
	BadParentLength:      "BadParentLength",
	BadResizeBehavior:    "BadResizeBehavior",
	OpUndef:              "OpUndef",
	ReadError:            "ReadError",
	WriteError:           "WriteError",
	BadProbValue:         "BadProbValue",
	ObjectTypeMismatch:   "ObjectTypeMismatch",
	RefsRemain:           "RefsRemain",
	NoIndividuals:        "NoIndividuals",
	BadPopSize:           "BadPopSize",
	NoSexualMating:       "NoSexualMating",
	BadSharingCutoff:     "BadSharingCutoff",
	NegFitness:           "NegFitness",
	BinStrTooLong:        "BinStrTooLong",
	BadAlleleIndex:       "BadAlleleIndex",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UnknownError"
}

// SourceLocation records where in the source an error was reported
// from.
type SourceLocation struct {
	File string
	Line int
}

func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Here captures the caller's source location.
func Here() SourceLocation {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return SourceLocation{File: "unknown", Line: 0}
	}
	return SourceLocation{File: file, Line: line}
}

// GAError is the error value produced by a Reporter. Its cause chain is
// wrapped with github.com/pkg/errors so callers can still unwrap down to
// the originating message with errors.Cause.
type GAError struct {
	Loc      SourceLocation
	Class    string
	Function string
	Kind     ErrorKind
	cause    error
}

func (e *GAError) Error() string {
	return fmt.Sprintf("%s.%s: %s (%s)", e.Class, e.Function, e.Kind, e.Loc)
}

func (e *GAError) Unwrap() error { return e.cause }

// Cause implements the causer interface github.com/pkg/errors unwraps
// through, so errors.Cause reaches the innermost error, whose message is
// the kind's name (a fresh error per report, not a shared sentinel).
func (e *GAError) Cause() error { return e.cause }

// Reporter is the process-wide (or test-local) error sink. The zero value
// writes to os.Stderr and is not silenced.
type Reporter struct {
	mu       sync.Mutex
	out      io.Writer
	silenced bool
	last     string
}

// NewReporter builds a Reporter writing to w. A nil w defaults to
// os.Stderr.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	return &Reporter{out: w}
}

// Silence toggles whether Report writes to the configured stream; the
// last-error string is always updated regardless.
func (r *Reporter) Silence(flag bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.silenced = flag
}

// Redirect changes the output stream.
func (r *Reporter) Redirect(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	r.out = w
}

// Last returns the most recently reported error's message.
func (r *Reporter) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Report records and (unless silenced) writes an error, returning it as a
// *GAError so the caller may also propagate it through a normal Go error
// return where the signature allows one.
func (r *Reporter) Report(loc SourceLocation, class, function string, kind ErrorKind, detail string) *GAError {
	var cause error = errors.New(kind.String())
	if detail != "" {
		cause = errors.Wrap(cause, detail)
	}
	err := &GAError{Loc: loc, Class: class, Function: function, Kind: kind, cause: cause}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = err.Error()
	if !r.silenced {
		out := r.out
		if out == nil {
			out = os.Stderr
		}
		fmt.Fprintln(out, err.Error())
	}
	return err
}

// Default is the process-wide reporter used by packages that don't have
// their own Reporter wired in. Tests typically install their own
// Reporter via NewReporter to capture output instead of mutating this
// one.
var Default = NewReporter(os.Stderr)
