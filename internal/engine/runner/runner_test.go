package runner_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/cathywu/sumosims/internal/adapters/telemetry"
	"github.com/cathywu/sumosims/internal/core/domain"
	"github.com/cathywu/sumosims/internal/core/ports"
	"github.com/cathywu/sumosims/internal/core/ports/mocks"
	"github.com/cathywu/sumosims/internal/engine/resolver"
	"github.com/cathywu/sumosims/internal/engine/runner"
)

func target(name string, deps ...string) domain.Target {
	prereqs := make([]domain.InternedString, len(deps))
	for i, d := range deps {
		prereqs[i] = domain.NewInternedString(d)
	}
	return domain.Target{
		Name:          domain.NewInternedString(name),
		Prerequisites: prereqs,
		Phony:         true,
		Action:        domain.Action{Command: []string{"true"}},
	}
}

func graphOf(t *testing.T, targets ...domain.Target) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	for _, tg := range targets {
		if err := g.AddTarget(&tg); err != nil {
			t.Fatalf("failed to add target: %v", err)
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	return g
}

func newResolver(t *testing.T, ctrl *gomock.Controller, targets ...domain.Target) *resolver.Resolver {
	t.Helper()
	return resolver.New(graphOf(t, targets...), mocks.NewMockStatter(ctrl), t.TempDir())
}

func TestBuild_ExecutesInPlanOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	net := target("net")
	sumo := target("sumo", "net")
	plan := []domain.Target{net, sumo}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	executor := mocks.NewMockExecutor(ctrl)
	first := executor.EXPECT().
		Execute(gomock.Any(), targetNamed("net"), gomock.Any(), gomock.Any()).
		Return(nil)
	executor.EXPECT().
		Execute(gomock.Any(), targetNamed("sumo"), gomock.Any(), gomock.Any()).
		Return(nil).
		After(first)

	run := runner.New(executor, logger, telemetry.NewNoOp(), nil, "run-1")
	res := newResolver(t, ctrl, net, sumo)

	if err := run.Build(context.Background(), plan, res, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"net", "sumo"} {
		if got := run.Status(domain.NewInternedString(name)); got != domain.StatusCompleted {
			t.Errorf("expected %s completed, got %s", name, got)
		}
	}
}

func TestBuild_FailFast(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	net := target("net")
	sumo := target("sumo", "net")
	plan := []domain.Target{net, sumo}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	// net fails; sumo must never start.
	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().
		Execute(gomock.Any(), targetNamed("net"), gomock.Any(), gomock.Any()).
		Return(domain.ErrActionFailed)

	run := runner.New(executor, logger, telemetry.NewNoOp(), nil, "run-1")
	res := newResolver(t, ctrl, net, sumo)

	err := run.Build(context.Background(), plan, res, 1)
	if err == nil {
		t.Fatal("expected build error, got nil")
	}
	if !errors.Is(err, domain.ErrBuildFailed) {
		t.Errorf("expected ErrBuildFailed, got %v", err)
	}
	if !errors.Is(err, domain.ErrActionFailed) {
		t.Errorf("expected wrapped ErrActionFailed, got %v", err)
	}

	if got := run.Status(net.Name); got != domain.StatusFailed {
		t.Errorf("expected net failed, got %s", got)
	}
	if got := run.Status(sumo.Name); got != domain.StatusPending {
		t.Errorf("expected sumo still pending, got %s", got)
	}
}

func TestBuild_IndependentTargetsShareAWave(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	net := target("net")
	sumo := target("sumo", "net")
	gui := target("gui", "net")
	plan := []domain.Target{net, sumo, gui}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	executor := mocks.NewMockExecutor(ctrl)
	first := executor.EXPECT().
		Execute(gomock.Any(), targetNamed("net"), gomock.Any(), gomock.Any()).
		Return(nil)
	// sumo and gui run after net, in either order.
	executor.EXPECT().
		Execute(gomock.Any(), targetNamed("sumo"), gomock.Any(), gomock.Any()).
		Return(nil).
		After(first)
	executor.EXPECT().
		Execute(gomock.Any(), targetNamed("gui"), gomock.Any(), gomock.Any()).
		Return(nil).
		After(first)

	run := runner.New(executor, logger, telemetry.NewNoOp(), nil, "run-1")
	res := newResolver(t, ctrl, net, sumo, gui)

	if err := run.Build(context.Background(), plan, res, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuild_RecordsFingerprint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	file := domain.Target{
		Name:    domain.NewInternedString("net"),
		Outputs: []domain.InternedString{domain.NewInternedString("a.net.xml")},
		Action:  domain.Action{Command: []string{"true"}},
	}
	g := graphOf(t, file)

	statter := mocks.NewMockStatter(ctrl)
	statter.EXPECT().Stat(gomock.Any()).Return(ports.FileStat{Exists: false}, nil).AnyTimes()

	fingerprinter := mocks.NewMockFingerprinter(ctrl)
	fingerprinter.EXPECT().
		Fingerprint(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("fp-net", nil)

	store := mocks.NewMockRunRecordStore(ctrl)
	store.EXPECT().Get("net").Return(nil, nil)
	store.EXPECT().
		Put(gomock.Any()).
		DoAndReturn(func(record domain.RunRecord) error {
			if record.TargetName != "net" {
				t.Errorf("expected record for net, got %s", record.TargetName)
			}
			if record.Fingerprint != "fp-net" {
				t.Errorf("expected fingerprint fp-net, got %s", record.Fingerprint)
			}
			if record.RunID != "run-1" {
				t.Errorf("expected run ID run-1, got %s", record.RunID)
			}
			return nil
		})

	res := resolver.New(g, statter, t.TempDir(), resolver.WithChecksum(fingerprinter, store))
	plan, err := res.Plan(file.Name)
	if err != nil {
		t.Fatalf("unexpected plan error: %v", err)
	}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	run := runner.New(executor, logger, telemetry.NewNoOp(), store, "run-1")
	if err := run.Build(context.Background(), plan, res, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMarkFresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	net := domain.NewInternedString("net")

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Fresh()
	vertex.EXPECT().Complete(nil)

	recorder := mocks.NewMockTelemetry(ctrl)
	recorder.EXPECT().
		Record(gomock.Any(), "net").
		Return(context.Background(), vertex)

	logger := mocks.NewMockLogger(ctrl)

	run := runner.New(mocks.NewMockExecutor(ctrl), logger, recorder, nil, "run-1")
	run.MarkFresh(context.Background(), net)

	if got := run.Status(net); got != domain.StatusFresh {
		t.Errorf("expected net fresh, got %s", got)
	}
	if !run.Status(net).IsTerminal() {
		t.Error("expected fresh to be a terminal status")
	}
}

func TestMarkFresh_KeepsTerminalStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	net := target("net")

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	executor := mocks.NewMockExecutor(ctrl)
	executor.EXPECT().
		Execute(gomock.Any(), targetNamed("net"), gomock.Any(), gomock.Any()).
		Return(nil)

	run := runner.New(executor, logger, telemetry.NewNoOp(), nil, "run-1")
	res := newResolver(t, ctrl, net)
	if err := run.Build(context.Background(), []domain.Target{net}, res, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	run.MarkFresh(context.Background(), net.Name)

	if got := run.Status(net.Name); got != domain.StatusCompleted {
		t.Errorf("expected net to stay completed, got %s", got)
	}
}

// targetNamed matches a *domain.Target by name.
func targetNamed(name string) gomock.Matcher {
	return targetMatcher{name: name}
}

type targetMatcher struct {
	name string
}

func (m targetMatcher) Matches(x any) bool {
	target, ok := x.(*domain.Target)
	return ok && target.Name.String() == m.name
}

func (m targetMatcher) String() string {
	return "target named " + m.name
}
