package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateTarget is returned when attempting to add a target with a name that already exists.
	ErrDuplicateTarget = zerr.New("target already exists")

	// ErrUnknownTarget is returned when a requested target is not declared in the graph.
	ErrUnknownTarget = zerr.New("unknown target")

	// ErrMissingPrerequisite is returned when a target references a prerequisite that doesn't exist in the graph.
	ErrMissingPrerequisite = zerr.New("missing prerequisite")

	// ErrCycleDetected is returned when a cycle is detected in the target graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrActionFailed is returned when a target's subprocess exits non-zero.
	ErrActionFailed = zerr.New("action failed")

	// ErrInputNotFound is returned when a declared input file does not exist on disk.
	ErrInputNotFound = zerr.New("input not found")

	// ErrNothingToClean is returned when no file matches the declared clean patterns.
	ErrNothingToClean = zerr.New("nothing to clean")

	// ErrNoTargetsSpecified is returned when a build is requested without any target names.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrBuildFailed wraps the first action failure that halted a build.
	ErrBuildFailed = zerr.New("build failed")
)

// Annotate attaches a key-value pair to a sentinel error. Unlike attaching
// metadata to the sentinel directly, the sentinel stays in the Unwrap chain,
// so callers can still match it with errors.Is. Further pairs can be added
// with zerr.With on the returned error.
func Annotate(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}
