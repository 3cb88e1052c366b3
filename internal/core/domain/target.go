package domain

// Target represents a unit of work in the build graph: either a file produced
// by a command, or a phony action that is re-run on every invocation.
// It uses InternedString for fields that are frequently repeated to save memory.
type Target struct {
	Name InternedString

	// Inputs are source files the target is derived from. They are leaf
	// files and never appear as graph nodes themselves; only their
	// existence and modification time matter.
	Inputs []InternedString

	// Outputs are the files the action is expected to produce. Phony
	// targets have none.
	Outputs []InternedString

	// Prerequisites name other targets that must be up to date before this
	// one runs.
	Prerequisites []InternedString

	Action Action

	// Phony marks a target not backed by a real file. Phony targets are
	// always considered stale and are never checked for freshness.
	Phony bool

	// Environment holds per-target environment variable overrides.
	Environment map[string]string

	// WorkingDir is the directory the action runs in. Empty means the
	// process working directory.
	WorkingDir InternedString
}

// Action is a command template with an optional guard that selects an
// alternative command at build time.
type Action struct {
	// Command is the argv run when no guard applies.
	Command []string

	Guard *Guard
}

// Guard selects an alternative command when a file exists at build time.
// The canonical case: run the converter from an explicit configuration file
// when one is present, otherwise derive the output from the raw inputs.
type Guard struct {
	// File is the path whose presence activates the guarded command.
	File InternedString

	// Command is the argv used when File exists.
	Command []string
}

// Select returns the argv to run given whether the guard file exists.
// Actions without a guard always return the primary command.
func (a Action) Select(guardPresent bool) []string {
	if a.Guard != nil && guardPresent {
		return a.Guard.Command
	}
	return a.Command
}

// Guarded reports whether the action carries a guard condition.
func (a Action) Guarded() bool {
	return a.Guard != nil
}
