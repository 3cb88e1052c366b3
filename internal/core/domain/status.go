package domain

// TargetStatus represents the lifecycle state of a target during a build.
type TargetStatus string

const (
	// StatusPending indicates the target is waiting for prerequisites or scheduling.
	StatusPending TargetStatus = "pending"
	// StatusRunning indicates the target's action is currently executing.
	StatusRunning TargetStatus = "running"
	// StatusCompleted indicates the action executed successfully.
	StatusCompleted TargetStatus = "completed"
	// StatusFailed indicates the action execution failed.
	StatusFailed TargetStatus = "failed"
	// StatusFresh indicates the target was skipped because its output is up to date.
	StatusFresh TargetStatus = "fresh"
)

// IsTerminal checks if a status is a terminal state.
func (s TargetStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusFresh:
		return true
	default:
		return false
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
