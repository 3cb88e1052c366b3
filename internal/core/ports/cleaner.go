package ports

// CleanResult summarizes what a clean pass removed.
type CleanResult struct {
	Files int
	Bytes uint64
}

// Cleaner defines the interface for deleting build outputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=cleaner.go -destination=mocks/mock_cleaner.go -package=mocks
type Cleaner interface {
	// Clean deletes all files matching the given glob patterns, resolved
	// relative to root. It returns ErrNothingToClean when no file matches.
	Clean(root string, patterns []string) (CleanResult, error)
}
