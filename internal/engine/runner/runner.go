// Package runner executes build plans produced by the resolver.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cathywu/sumosims/internal/core/domain"
	"github.com/cathywu/sumosims/internal/core/ports"
	"github.com/cathywu/sumosims/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Runner drives the execution of stale targets in dependency order.
// One action runs to completion before the next begins unless a higher
// parallelism is requested; failures halt the build with no partial
// recovery.
type Runner struct {
	executor  ports.Executor
	logger    ports.Logger
	telemetry ports.Telemetry

	// store is nil outside checksum mode.
	store ports.RunRecordStore
	runID string

	mu     sync.RWMutex
	status map[domain.InternedString]domain.TargetStatus
}

// New creates a Runner. store may be nil when checksum freshness is not in
// use; runID tags the records written for a single invocation.
func New(
	executor ports.Executor,
	logger ports.Logger,
	telemetry ports.Telemetry,
	store ports.RunRecordStore,
	runID string,
) *Runner {
	return &Runner{
		executor:  executor,
		logger:    logger,
		telemetry: telemetry,
		store:     store,
		runID:     runID,
		status:    make(map[domain.InternedString]domain.TargetStatus),
	}
}

// Status returns the last observed status of a target.
func (r *Runner) Status(name domain.InternedString) domain.TargetStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.status[name]; ok {
		return s
	}
	return domain.StatusPending
}

func (r *Runner) setStatus(name domain.InternedString, status domain.TargetStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status[name] = status
}

// MarkFresh records a target that was skipped because it is already up to
// date. Targets that reached a terminal state keep it.
func (r *Runner) MarkFresh(ctx context.Context, name domain.InternedString) {
	r.mu.Lock()
	if r.status[name].IsTerminal() {
		r.mu.Unlock()
		return
	}
	r.status[name] = domain.StatusFresh
	r.mu.Unlock()

	_, vertex := r.telemetry.Record(ctx, name.String())
	vertex.Fresh()
	vertex.Complete(nil)
}

// Build executes the plan fail-fast: targets run prerequisites-first, and
// the first action failure halts the build. res is the resolver the plan was
// computed with; it supplies the fingerprints recorded after successful runs.
func (r *Runner) Build(ctx context.Context, plan []domain.Target, res *resolver.Resolver, parallelism int) error {
	if parallelism < 1 {
		parallelism = 1
	}

	for _, target := range plan {
		r.setStatus(target.Name, domain.StatusPending)
	}

	for _, wave := range waves(plan) {
		g, waveCtx := errgroup.WithContext(ctx)
		g.SetLimit(parallelism)

		for _, target := range wave {
			g.Go(func() error {
				return r.execute(waveCtx, &target, res)
			})
		}

		if err := g.Wait(); err != nil {
			return errors.Join(domain.ErrBuildFailed, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}

// waves groups a topologically ordered plan into batches whose members have
// no prerequisite relation inside the batch. With parallelism 1 this reduces
// to plain sequential plan order.
func waves(plan []domain.Target) [][]domain.Target {
	level := make(map[domain.InternedString]int, len(plan))
	maxLevel := 0

	for _, target := range plan {
		l := 0
		for _, dep := range target.Prerequisites {
			if depLevel, ok := level[dep]; ok && depLevel+1 > l {
				l = depLevel + 1
			}
		}
		level[target.Name] = l
		if l > maxLevel {
			maxLevel = l
		}
	}

	out := make([][]domain.Target, maxLevel+1)
	for _, target := range plan {
		l := level[target.Name]
		out[l] = append(out[l], target)
	}
	return out
}

func (r *Runner) execute(ctx context.Context, target *domain.Target, res *resolver.Resolver) error {
	r.setStatus(target.Name, domain.StatusRunning)
	r.logger.Info(fmt.Sprintf("building %s", target.Name.String()))

	vertexCtx, vertex := r.telemetry.Record(ctx, target.Name.String())

	err := r.executor.Execute(vertexCtx, target, vertex.Stdout(), vertex.Stderr())
	vertex.Complete(err)

	if err != nil {
		r.setStatus(target.Name, domain.StatusFailed)
		return zerr.With(zerr.Wrap(err, "target execution failed"), "target", target.Name.String())
	}

	r.setStatus(target.Name, domain.StatusCompleted)
	return r.recordRun(target, res)
}

// recordRun persists the fingerprint the target was scheduled under.
// Phony targets are never recorded; they are stale by definition.
func (r *Runner) recordRun(target *domain.Target, res *resolver.Resolver) error {
	if r.store == nil || target.Phony {
		return nil
	}
	fingerprint, ok := res.Fingerprint(target.Name)
	if !ok {
		return nil
	}
	return r.store.Put(domain.RunRecord{
		TargetName:  target.Name.String(),
		Fingerprint: fingerprint,
		RunID:       r.runID,
		Timestamp:   time.Now(),
	})
}
