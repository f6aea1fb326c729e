// Package werr defines the error taxonomy shared across wdict's crawl
// engine: usage, per-location, and fatal finalization errors.
//
// Design decision: we use package-level sentinel errors checked with
// errors.Is rather than distinct exported types for every case, mirroring
// the teacher's internal/config/errors.go and internal/tor/errors.go. Each
// sentinel gets a doc comment explaining when it is returned so callers
// don't need to go spelunking for the trigger condition.
package werr

import "errors"

// Sentinel errors. Wrap with fmt.Errorf("...: %w", Sentinel) to add detail
// while remaining errors.Is-compatible.
var (
	// ErrUsage indicates an invalid flag combination, an unparseable value,
	// or min_word_len > max_word_len. Fatal at setup, exit code 2.
	ErrUsage = errors.New("usage error")

	// ErrNetwork indicates DNS, connect, TLS, timeout, or non-success status
	// for a single location. Not fatal; the location remains visited and the
	// crawl continues.
	ErrNetwork = errors.New("network error")

	// ErrParse indicates malformed HTML/CSS/JS for a single location. Not
	// fatal; may still yield a partial word set.
	ErrParse = errors.New("parse error")

	// ErrFilesystem indicates an inaccessible local path or unreadable file.
	// Not fatal during a crawl.
	ErrFilesystem = errors.New("filesystem error")

	// ErrOutput indicates failure writing the dictionary or state snapshot
	// at the end of a run. Fatal, exit code 4.
	ErrOutput = errors.New("output error")

	// ErrResumeConfigMismatch indicates a strict resume found a field-level
	// difference between the loaded snapshot's config and the supplied one.
	// Fatal pre-run, exit code 3.
	ErrResumeConfigMismatch = errors.New("resume config mismatch")

	// ErrStateMissing indicates the state file path does not exist on load.
	// Fatal pre-run, exit code 3.
	ErrStateMissing = errors.New("state missing")

	// ErrStateMalformed indicates the state file could not be parsed, or is
	// missing a required field. Fatal pre-run, exit code 3.
	ErrStateMalformed = errors.New("state malformed")
)

// ExitCode maps a werr sentinel (or an error wrapping one) to the process
// exit code defined by the CLI contract. Unrecognized errors get 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		return 2
	case errors.Is(err, ErrResumeConfigMismatch),
		errors.Is(err, ErrStateMissing),
		errors.Is(err, ErrStateMalformed):
		return 3
	case errors.Is(err, ErrOutput), errors.Is(err, ErrFilesystem):
		return 4
	default:
		return 1
	}
}
