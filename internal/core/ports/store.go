package ports

import "github.com/cathywu/sumosims/internal/core/domain"

// RunRecordStore defines the interface for persisting run records used by
// checksum-based freshness.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunRecordStore interface {
	// Get retrieves the run record for a given target name.
	// Returns nil, nil if not found.
	Get(targetName string) (*domain.RunRecord, error)

	// Put stores the run record.
	Put(record domain.RunRecord) error
}
