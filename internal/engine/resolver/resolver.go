// Package resolver implements freshness resolution over the target graph.
package resolver

import (
	"iter"
	"path/filepath"
	"time"

	"github.com/cathywu/sumosims/internal/core/domain"
	"github.com/cathywu/sumosims/internal/core/ports"
)

// Resolver decides which targets are stale and in what order they rebuild.
// Staleness is memoized per resolver instance, so each file is stat'ed at
// most once per build invocation and results stay consistent even if files
// change mid-build. Create a fresh Resolver for every invocation.
type Resolver struct {
	graph   *domain.Graph
	statter ports.Statter
	root    string

	// Checksum mode replaces the modification-time comparison with a
	// fingerprint lookup against the last recorded successful run.
	fingerprinter ports.Fingerprinter
	store         ports.RunRecordStore

	stale        map[domain.InternedString]bool
	stats        map[string]ports.FileStat
	fingerprints map[domain.InternedString]string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithChecksum switches the resolver to fingerprint-based freshness backed
// by the given store.
func WithChecksum(fp ports.Fingerprinter, store ports.RunRecordStore) Option {
	return func(r *Resolver) {
		r.fingerprinter = fp
		r.store = store
	}
}

// New creates a Resolver for a single build invocation. The graph must have
// been validated. Paths are resolved relative to root.
func New(graph *domain.Graph, statter ports.Statter, root string, opts ...Option) *Resolver {
	r := &Resolver{
		graph:        graph,
		statter:      statter,
		root:         root,
		stale:        make(map[domain.InternedString]bool),
		stats:        make(map[string]ports.FileStat),
		fingerprints: make(map[domain.InternedString]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsStale reports whether the named target needs rebuilding.
//
// Phony targets are always stale. A file target is stale when any of its
// outputs is missing, any prerequisite target is stale, or any input file or
// prerequisite output is strictly newer than its oldest output.
func (r *Resolver) IsStale(name domain.InternedString) (bool, error) {
	if stale, ok := r.stale[name]; ok {
		return stale, nil
	}

	target, err := r.graph.Target(name)
	if err != nil {
		return false, err
	}

	stale, err := r.computeStale(&target)
	if err != nil {
		return false, err
	}

	r.stale[name] = stale
	return stale, nil
}

func (r *Resolver) computeStale(target *domain.Target) (bool, error) {
	if target.Phony {
		return true, nil
	}

	// A stale prerequisite forces a rebuild regardless of timestamps.
	for _, dep := range target.Prerequisites {
		depStale, err := r.IsStale(dep)
		if err != nil {
			return false, err
		}
		if depStale {
			return true, nil
		}
	}

	if r.fingerprinter != nil {
		return r.fingerprintStale(target)
	}

	return r.modTimeStale(target)
}

// modTimeStale implements the classic make rule: missing output, or any
// prerequisite strictly newer than the target.
func (r *Resolver) modTimeStale(target *domain.Target) (bool, error) {
	oldestOutput, missing, err := r.oldestOutput(target)
	if err != nil {
		return false, err
	}
	if missing {
		return true, nil
	}

	newest, err := r.newestPrerequisite(target)
	if err != nil {
		return false, err
	}

	return newest.After(oldestOutput), nil
}

// oldestOutput returns the oldest output modification time, or missing=true
// when any output does not exist.
func (r *Resolver) oldestOutput(target *domain.Target) (time.Time, bool, error) {
	var oldest time.Time
	for i, output := range target.Outputs {
		stat, err := r.statPath(output.String())
		if err != nil {
			return time.Time{}, false, err
		}
		if !stat.Exists {
			return time.Time{}, true, nil
		}
		if i == 0 || stat.ModTime.Before(oldest) {
			oldest = stat.ModTime
		}
	}
	if len(target.Outputs) == 0 {
		// A non-phony target without declared outputs has nothing to
		// compare against; treat it as missing so it always rebuilds.
		return time.Time{}, true, nil
	}
	return oldest, false, nil
}

// newestPrerequisite returns the newest modification time among the target's
// input files, its guard file when present, and its prerequisites' outputs.
func (r *Resolver) newestPrerequisite(target *domain.Target) (time.Time, error) {
	var newest time.Time

	for _, input := range target.Inputs {
		stat, err := r.statPath(input.String())
		if err != nil {
			return time.Time{}, err
		}
		if !stat.Exists {
			return time.Time{}, domain.Annotate(domain.ErrInputNotFound, "path", input.String())
		}
		if stat.ModTime.After(newest) {
			newest = stat.ModTime
		}
	}

	if target.Action.Guarded() {
		stat, err := r.statPath(target.Action.Guard.File.String())
		if err != nil {
			return time.Time{}, err
		}
		// The guard file is optional; it only participates when present.
		if stat.Exists && stat.ModTime.After(newest) {
			newest = stat.ModTime
		}
	}

	for _, dep := range target.Prerequisites {
		depTarget, err := r.graph.Target(dep)
		if err != nil {
			return time.Time{}, err
		}
		for _, output := range depTarget.Outputs {
			stat, err := r.statPath(output.String())
			if err != nil {
				return time.Time{}, err
			}
			if stat.Exists && stat.ModTime.After(newest) {
				newest = stat.ModTime
			}
		}
	}

	return newest, nil
}

// fingerprintStale compares the target's current input fingerprint with the
// one recorded on its last successful run.
func (r *Resolver) fingerprintStale(target *domain.Target) (bool, error) {
	guardPresent, err := r.GuardPresent(target)
	if err != nil {
		return false, err
	}

	fingerprint, err := r.fingerprinter.Fingerprint(target, guardPresent, r.root)
	if err != nil {
		return false, err
	}
	r.fingerprints[target.Name] = fingerprint

	record, err := r.store.Get(target.Name.String())
	if err != nil {
		return false, err
	}
	if record == nil || record.Fingerprint != fingerprint {
		return true, nil
	}

	// The fingerprint matches, but a deleted output still forces a rebuild.
	_, missing, err := r.oldestOutput(target)
	if err != nil {
		return false, err
	}
	return missing, nil
}

// Fingerprint returns the fingerprint computed for name during staleness
// resolution, if any. It lets the runner record the same fingerprint it was
// scheduled under rather than recomputing after the action ran.
func (r *Resolver) Fingerprint(name domain.InternedString) (string, bool) {
	fp, ok := r.fingerprints[name]
	return fp, ok
}

// GuardPresent reports whether the target's guard file exists. Targets
// without a guard report false.
func (r *Resolver) GuardPresent(target *domain.Target) (bool, error) {
	if !target.Action.Guarded() {
		return false, nil
	}
	stat, err := r.statPath(target.Action.Guard.File.String())
	if err != nil {
		return false, err
	}
	return stat.Exists, nil
}

// Plan returns the stale targets reachable from name in post-order
// (prerequisites before dependents), each appearing once. Diamond-shaped
// dependencies therefore rebuild a shared prerequisite a single time.
func (r *Resolver) Plan(name domain.InternedString) ([]domain.Target, error) {
	var plan []domain.Target
	seen := make(map[domain.InternedString]bool)

	var visit func(u domain.InternedString) error
	visit = func(u domain.InternedString) error {
		if seen[u] {
			return nil
		}
		seen[u] = true

		target, err := r.graph.Target(u)
		if err != nil {
			return err
		}

		for _, dep := range target.Prerequisites {
			if err := visit(dep); err != nil {
				return err
			}
		}

		stale, err := r.IsStale(u)
		if err != nil {
			return err
		}
		if stale {
			plan = append(plan, target)
		}
		return nil
	}

	if err := visit(name); err != nil {
		return nil, err
	}
	return plan, nil
}

// BuildOrder returns the plan for name as a finite, non-restartable
// sequence, in the same style as Graph.Walk.
func (r *Resolver) BuildOrder(name domain.InternedString) (iter.Seq[domain.Target], error) {
	plan, err := r.Plan(name)
	if err != nil {
		return nil, err
	}
	return func(yield func(domain.Target) bool) {
		for _, target := range plan {
			if !yield(target) {
				return
			}
		}
	}, nil
}

func (r *Resolver) statPath(path string) (ports.FileStat, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, path)
	}
	if stat, ok := r.stats[path]; ok {
		return stat, nil
	}
	stat, err := r.statter.Stat(path)
	if err != nil {
		return ports.FileStat{}, err
	}
	r.stats[path] = stat
	return stat, nil
}
