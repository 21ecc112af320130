package echofp

import (
	"errors"
	"fmt"

	"github.com/mdobak/go-xerrors"
)

// Kind classifies why an operation failed, so callers can branch on
// cause without string-matching error text.
type Kind string

const (
	// KindConfig: invalid configuration at facade initialization.
	KindConfig Kind = "config_error"
	// KindDecode: raw bytes were not decodable audio (adapter boundary).
	KindDecode Kind = "decode_error"
	// KindEmptyInput: a samples buffer had zero length or produced zero frames.
	KindEmptyInput Kind = "empty_input_error"
	// KindAlreadyExists: recording ID collision on ingest.
	KindAlreadyExists Kind = "already_exists_error"
	// KindSnapshotIncompatible: restore attempted against a mismatched
	// version or config.
	KindSnapshotIncompatible Kind = "snapshot_incompatible_error"
	// KindNotFound: the requested recording ID is not present.
	KindNotFound Kind = "not_found_error"
	// KindInternal: an unexpected failure, e.g. I/O during snapshot write.
	KindInternal Kind = "internal_error"
)

// Error is the error type returned at every echofp facade boundary. It
// wraps an underlying cause (via go-xerrors, for stack-aware
// formatting) with a stable Kind a caller can switch on.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// KindOf reports the classification of err, or "" if err is not an
// *Error produced by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return ""
}

func newError(kind Kind, msg string, cause error) *Error {
	if cause != nil {
		cause = xerrors.New(cause)
	}
	return &Error{kind: kind, msg: msg, err: cause}
}

func configError(msg string, cause error) error {
	return newError(KindConfig, msg, cause)
}

func decodeError(msg string, cause error) error {
	return newError(KindDecode, msg, cause)
}

func emptyInputError(msg string) error {
	return newError(KindEmptyInput, msg, nil)
}

func alreadyExistsError(rid string) error {
	return newError(KindAlreadyExists, fmt.Sprintf("recording %q already indexed", rid), nil)
}

func snapshotIncompatibleError(reason string, cause error) error {
	return newError(KindSnapshotIncompatible, reason, cause)
}

func notFoundError(rid string) error {
	return newError(KindNotFound, fmt.Sprintf("recording %q not found", rid), nil)
}

func internalError(msg string, cause error) error {
	return newError(KindInternal, msg, cause)
}
