package ports

import "time"

// FileStat describes what freshness resolution needs to know about a path.
// A missing file is not an error; it is reported via Exists.
type FileStat struct {
	Exists  bool
	ModTime time.Time
	Size    int64
}

// Statter defines the interface for querying file existence and timestamps.
//
//go:generate go run go.uber.org/mock/mockgen -source=statter.go -destination=mocks/mock_statter.go -package=mocks
type Statter interface {
	// Stat returns the stat of the file at path. A non-existent file
	// yields FileStat{Exists: false} and a nil error; errors are reserved
	// for I/O failures.
	Stat(path string) (FileStat, error)
}
