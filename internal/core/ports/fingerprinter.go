package ports

import "github.com/cathywu/sumosims/internal/core/domain"

// Fingerprinter defines the interface for computing a target's input
// fingerprint: a digest over the selected command and the content of the
// target's input files.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint computes the fingerprint for target with inputs resolved
	// relative to root. guardPresent selects which command is hashed.
	Fingerprint(target *domain.Target, guardPresent bool, root string) (string, error)
}
