// Package app implements the application layer for sumake.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/segmentio/ksuid"
	"go.trai.ch/zerr"

	"github.com/cathywu/sumosims/internal/adapters/watcher" //nolint:depguard // debouncer reused in app layer
	"github.com/cathywu/sumosims/internal/core/domain"
	"github.com/cathywu/sumosims/internal/core/ports"
	"github.com/cathywu/sumosims/internal/engine/resolver"
	"github.com/cathywu/sumosims/internal/engine/runner"
)

// debounceWindow is how long watch mode waits for file events to settle
// before rebuilding.
const debounceWindow = 500 * time.Millisecond

// RunOptions configures a single build invocation.
type RunOptions struct {
	// Targets are the names to bring up to date.
	Targets []string

	// Parallelism caps how many actions run at once. Values below 1 mean
	// sequential execution.
	Parallelism int

	// Checksum switches freshness from modification times to recorded
	// input fingerprints.
	Checksum bool

	// DryRun reports what would be built without running anything.
	DryRun bool
}

// App represents the main application logic.
type App struct {
	loader        ports.ConfigLoader
	statter       ports.Statter
	executor      ports.Executor
	logger        ports.Logger
	telemetry     ports.Telemetry
	store         ports.RunRecordStore
	fingerprinter ports.Fingerprinter
	cleaner       ports.Cleaner
	watcher       ports.Watcher

	// cwd is the directory manifests and relative paths resolve against.
	// It is explicit configuration rather than ambient process state.
	cwd string

	newRunID func() string
}

// New creates a new App instance rooted at cwd.
func New(
	loader ports.ConfigLoader,
	statter ports.Statter,
	executor ports.Executor,
	logger ports.Logger,
	telemetry ports.Telemetry,
	store ports.RunRecordStore,
	fingerprinter ports.Fingerprinter,
	cleaner ports.Cleaner,
	fsWatcher ports.Watcher,
	cwd string,
) *App {
	return &App{
		loader:        loader,
		statter:       statter,
		executor:      executor,
		logger:        logger,
		telemetry:     telemetry,
		store:         store,
		fingerprinter: fingerprinter,
		cleaner:       cleaner,
		watcher:       fsWatcher,
		cwd:           cwd,
		newRunID:      func() string { return ksuid.New().String() },
	}
}

// Run executes the build process for the specified targets.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if len(opts.Targets) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	manifest, err := a.loader.Load(a.cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	res := a.newResolver(manifest.Graph, opts)

	plan, fresh, err := a.plan(manifest.Graph, res, opts.Targets)
	if err != nil {
		return err
	}

	if opts.DryRun {
		if len(plan) == 0 {
			a.logger.Info("all targets up to date")
			return nil
		}
		for _, target := range plan {
			a.logger.Info(fmt.Sprintf("would build %s", target.Name.String()))
		}
		return nil
	}

	runID := a.newRunID()
	run := runner.New(a.executor, a.logger, a.telemetry, a.recordStore(opts), runID)
	for _, name := range fresh {
		run.MarkFresh(ctx, name)
	}

	if len(plan) == 0 {
		a.logger.Info("all targets up to date")
		return nil
	}

	a.logger.Info(fmt.Sprintf("run %s: building %s", runID, targetNames(plan)))

	if err := run.Build(ctx, plan, res, opts.Parallelism); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("run %s: built %d targets", runID, len(plan)))
	return nil
}

// newResolver creates the per-invocation freshness resolver.
func (a *App) newResolver(graph *domain.Graph, opts RunOptions) *resolver.Resolver {
	if opts.Checksum {
		return resolver.New(graph, a.statter, a.cwd, resolver.WithChecksum(a.fingerprinter, a.store))
	}
	return resolver.New(graph, a.statter, a.cwd)
}

// recordStore returns the store run records go to, or nil outside checksum mode.
func (a *App) recordStore(opts RunOptions) ports.RunRecordStore {
	if opts.Checksum {
		return a.store
	}
	return nil
}

// plan merges the build orders of the requested targets, keeping set
// semantics across them. It also returns the reachable targets left out of
// the plan because they are already up to date.
func (a *App) plan(graph *domain.Graph, res *resolver.Resolver, targets []string) ([]domain.Target, []domain.InternedString, error) {
	var merged []domain.Target
	planned := make(map[domain.InternedString]bool)
	reachable := make(map[domain.InternedString]bool)
	var order []domain.InternedString

	for _, name := range targets {
		interned := domain.NewInternedString(name)
		if _, err := graph.Target(interned); err != nil {
			return nil, nil, err
		}

		plan, err := res.Plan(interned)
		if err != nil {
			return nil, nil, err
		}
		for _, target := range plan {
			if !planned[target.Name] {
				planned[target.Name] = true
				merged = append(merged, target)
			}
		}

		if err := collectReachable(graph, interned, reachable, &order); err != nil {
			return nil, nil, err
		}
	}

	var fresh []domain.InternedString
	for _, name := range order {
		if !planned[name] {
			fresh = append(fresh, name)
		}
	}
	return merged, fresh, nil
}

// collectReachable appends the targets reachable from name to order in
// post-order, skipping ones already seen.
func collectReachable(graph *domain.Graph, name domain.InternedString, seen map[domain.InternedString]bool, order *[]domain.InternedString) error {
	if seen[name] {
		return nil
	}
	seen[name] = true

	target, err := graph.Target(name)
	if err != nil {
		return err
	}
	for _, dep := range target.Prerequisites {
		if err := collectReachable(graph, dep, seen, order); err != nil {
			return err
		}
	}
	*order = append(*order, name)
	return nil
}

// Clean deletes the files matching the manifest's clean patterns.
//
// When nothing matches, the engine reports ErrNothingToClean; Clean
// downgrades that to a warning so repeated cleans stay idempotent.
func (a *App) Clean(_ context.Context) error {
	manifest, err := a.loader.Load(a.cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	if len(manifest.CleanPatterns) == 0 {
		a.logger.Warn("no clean patterns declared")
		return nil
	}

	result, err := a.cleaner.Clean(a.cwd, manifest.CleanPatterns)
	if err != nil {
		if errors.Is(err, domain.ErrNothingToClean) {
			a.logger.Warn("nothing to clean")
			return nil
		}
		return err
	}

	a.logger.Info(fmt.Sprintf("removed %d files (%s)", result.Files, humanize.Bytes(result.Bytes)))
	return nil
}

// Watch builds the targets, then rebuilds whenever their sources change.
// It blocks until the context is cancelled.
func (a *App) Watch(ctx context.Context, opts RunOptions) error {
	manifest, err := a.loader.Load(a.cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}
	outputs := outputPaths(manifest.Graph, a.cwd)

	if err := a.watcher.Start(ctx, a.cwd); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer a.watcher.Stop() //nolint:errcheck // best effort stop in defer

	rebuild := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(debounceWindow, func(paths []string) {
		select {
		case rebuild <- paths:
		default:
		}
	})

	go func() {
		for event := range a.watcher.Events() {
			if a.ignoreEvent(event.Path, outputs) {
				continue
			}
			debouncer.Add(event.Path)
		}
		// The event stream ended; deliver whatever is still pending
		// instead of waiting out the window.
		debouncer.Flush()
	}()

	if err := a.Run(ctx, opts); err != nil {
		a.logger.Error(err)
	}

	a.logger.Info("watching for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-rebuild:
			if a.skipRebuild(manifest, paths) {
				a.logger.Info("changed paths affect no targets")
				continue
			}
			a.logger.Info(fmt.Sprintf("%d paths changed, rebuilding", len(paths)))
			if err := a.Run(ctx, opts); err != nil {
				a.logger.Error(err)
			}
		}
	}
}

// skipRebuild reports whether none of the changed paths feeds a target. A
// change to the manifest itself always rebuilds.
func (a *App) skipRebuild(manifest *domain.Manifest, paths []string) bool {
	if manifest.Path != "" && slices.Contains(paths, manifest.Path) {
		return false
	}
	return len(a.affectedTargets(manifest.Graph, paths)) == 0
}

// affectedTargets returns the names of targets that consume any of the
// changed paths as an input or guard file, together with their transitive
// dependents.
func (a *App) affectedTargets(graph *domain.Graph, paths []string) []domain.InternedString {
	consumers := make(map[string][]domain.InternedString)
	record := func(path string, name domain.InternedString) {
		if !filepath.IsAbs(path) {
			path = filepath.Join(a.cwd, path)
		}
		path = filepath.Clean(path)
		consumers[path] = append(consumers[path], name)
	}
	for target := range graph.Walk() {
		for _, input := range target.Inputs {
			record(input.String(), target.Name)
		}
		if target.Action.Guarded() {
			record(target.Action.Guard.File.String(), target.Name)
		}
	}

	seen := make(map[domain.InternedString]bool)
	var affected []domain.InternedString
	for _, path := range paths {
		for _, name := range consumers[filepath.Clean(path)] {
			if !seen[name] {
				seen[name] = true
				affected = append(affected, name)
			}
		}
	}
	// Anything downstream of a changed target is affected too.
	for i := 0; i < len(affected); i++ {
		for _, dep := range graph.Dependents(affected[i]) {
			if !seen[dep] {
				seen[dep] = true
				affected = append(affected, dep)
			}
		}
	}
	return affected
}

// ignoreEvent filters events that would otherwise cause rebuild loops:
// produced outputs and the runner's own state directory.
func (a *App) ignoreEvent(path string, outputs map[string]bool) bool {
	if outputs[filepath.Clean(path)] {
		return true
	}
	rel, err := filepath.Rel(a.cwd, path)
	if err != nil {
		return false
	}
	return rel == ".sumake" || strings.HasPrefix(rel, ".sumake"+string(filepath.Separator))
}

// Close releases long-lived resources.
func (a *App) Close() error {
	return a.telemetry.Close()
}

func outputPaths(graph *domain.Graph, cwd string) map[string]bool {
	outputs := make(map[string]bool)
	for target := range graph.Walk() {
		for _, output := range target.Outputs {
			path := output.String()
			if !filepath.IsAbs(path) {
				path = filepath.Join(cwd, path)
			}
			outputs[filepath.Clean(path)] = true
		}
	}
	return outputs
}

func targetNames(plan []domain.Target) string {
	names := make([]string, len(plan))
	for i, target := range plan {
		names[i] = target.Name.String()
	}
	return strings.Join(names, ", ")
}
