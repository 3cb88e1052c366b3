package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/cathywu/sumosims/internal/core/domain"
	"github.com/cathywu/sumosims/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// Fingerprinter computes input fingerprints for checksum-based freshness.
type Fingerprinter struct{}

// NewFingerprinter creates a new Fingerprinter.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{}
}

// Fingerprint computes an XXHash digest over the target definition, the
// command selected by the guard, and the content of the input files (plus
// the guard file when present). Two invocations with identical inputs and
// command produce the same fingerprint.
func (f *Fingerprinter) Fingerprint(target *domain.Target, guardPresent bool, root string) (string, error) {
	hasher := xxhash.New()

	hashTargetDefinition(target, hasher)
	hashCommand(target.Action.Select(guardPresent), hasher)

	for _, input := range target.Inputs {
		if err := hashInputPath(filepath.Join(root, input.String()), hasher); err != nil {
			return "", err
		}
	}

	if target.Action.Guarded() && guardPresent {
		path := target.Action.Guard.File.String()
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		if err := hashFile(path, hasher); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// ComputeFileHash computes the XXHash of a file's content.
func (f *Fingerprinter) ComputeFileHash(path string) (uint64, error) {
	return fileHash(path)
}

func fileHash(path string) (uint64, error) {
	file, err := os.Open(path) //nolint:gosec // path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer file.Close() //nolint:errcheck // best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

func hashTargetDefinition(target *domain.Target, hasher *xxhash.Digest) {
	_, _ = hasher.WriteString(target.Name.String())
	_, _ = hasher.Write([]byte{0})

	for _, input := range target.Inputs {
		_, _ = hasher.WriteString(input.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	for _, output := range target.Outputs {
		_, _ = hasher.WriteString(output.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	for _, dep := range target.Prerequisites {
		_, _ = hasher.WriteString(dep.String())
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

func hashCommand(argv []string, hasher *xxhash.Digest) {
	for _, arg := range argv {
		_, _ = hasher.WriteString(arg)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

// hashInputPath hashes a single input path, attempting glob resolution if
// the path does not exist as-is.
func hashInputPath(path string, hasher *xxhash.Digest) error {
	if _, err := os.Stat(path); err == nil {
		return hashFile(path, hasher)
	}

	matches, globErr := filepath.Glob(path)
	if globErr == nil && len(matches) > 0 {
		for _, match := range matches {
			if err := hashFile(match, hasher); err != nil {
				return err
			}
		}
		return nil
	}

	return domain.Annotate(domain.ErrInputNotFound, "path", path)
}

func hashFile(path string, mainHasher io.Writer) error {
	_, _ = mainHasher.Write([]byte(path))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := fileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
