// Package errs defines the error taxonomy shared by every stage of the
// fingerprinting pipeline, the library index and the search engine: each
// failure is tagged with a Kind so callers (and the CLI) can react to the
// category of problem instead of parsing error strings.
package errs

import "github.com/pkg/errors"

// Kind identifies the category of a pipeline failure.
type Kind int

const (
	// KindUnknown is the zero value; never produced deliberately.
	KindUnknown Kind = iota

	// KindInputAbsent means the requested file could not be opened.
	KindInputAbsent
	// KindInputMalformed means the input was not a recognizable WAV,
	// violated the index text format, or was truncated mid-line.
	KindInputMalformed
	// KindInputUnsupported means the WAV had an unsupported sample
	// rate, channel count or bit depth.
	KindInputUnsupported
	// KindInputTooSmall means there were fewer samples than required
	// to build a single spectral image.
	KindInputTooSmall
	// KindResourceExhausted means an allocation failed somewhere in
	// the pipeline, including inside a worker goroutine.
	KindResourceExhausted
	// KindNoMatch means a search completed but no candidate passed
	// the ranking thresholds. Not treated as an error by the CLI, but
	// modeled as one here so callers can use a single error check.
	KindNoMatch
)

func (k Kind) String() string {
	switch k {
	case KindInputAbsent:
		return "input-absent"
	case KindInputMalformed:
		return "input-malformed"
	case KindInputUnsupported:
		return "input-unsupported"
	case KindInputTooSmall:
		return "input-too-small"
	case KindResourceExhausted:
		return "resource-exhausted"
	case KindNoMatch:
		return "no-match"
	default:
		return "unknown"
	}
}

// Error is a taxonomy-tagged error. It wraps an underlying cause (via
// github.com/pkg/errors, so %+v on the top-level error still prints a
// stack trace from the point the Kind was first attached).
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a Kind-tagged error from a message, with a stack trace
// attached at the call site.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, cause: errors.New(message)}
}

// Wrap attaches a Kind to an existing error, adding a stack trace at the
// call site. Returns nil if err is
// nil, matching errors.Wrap's convention.
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, cause: errors.Wrap(err, message)}
}

// Of reports the Kind of err, or KindUnknown if err is nil or was not
// produced by this package.
func Of(err error) Kind {
	var tagged *Error
	for err != nil {
		if t, ok := err.(*Error); ok {
			tagged = t
			break
		}
		err = errors.Unwrap(err)
	}
	if tagged == nil {
		return KindUnknown
	}
	return tagged.Kind
}

// Is reports whether err carries the given Kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	for err != nil {
		if t, ok := err.(*Error); ok && t.Kind == kind {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
