package commands_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/cathywu/sumosims/cmd/sumake/commands"
	"github.com/cathywu/sumosims/internal/adapters/telemetry"
	"github.com/cathywu/sumosims/internal/app"
	"github.com/cathywu/sumosims/internal/core/domain"
	"github.com/cathywu/sumosims/internal/core/ports"
	"github.com/cathywu/sumosims/internal/core/ports/mocks"
)

type harness struct {
	cli      *commands.CLI
	loader   *mocks.MockConfigLoader
	executor *mocks.MockExecutor
	cleaner  *mocks.MockCleaner
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	loader := mocks.NewMockConfigLoader(ctrl)
	executor := mocks.NewMockExecutor(ctrl)
	cleaner := mocks.NewMockCleaner(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	a := app.New(
		loader,
		mocks.NewMockStatter(ctrl),
		executor,
		logger,
		telemetry.NewNoOp(),
		mocks.NewMockRunRecordStore(ctrl),
		mocks.NewMockFingerprinter(ctrl),
		cleaner,
		nil,
		t.TempDir(),
	)

	return &harness{
		cli:      commands.New(a),
		loader:   loader,
		executor: executor,
		cleaner:  cleaner,
	}
}

// phonyManifest builds a manifest holding a single phony target.
func phonyManifest(t *testing.T, name string) *domain.Manifest {
	t.Helper()

	g := domain.NewGraph()
	target := &domain.Target{
		Name:   domain.NewInternedString(name),
		Phony:  true,
		Action: domain.Action{Command: []string{"true"}},
	}
	if err := g.AddTarget(target); err != nil {
		t.Fatalf("failed to add target: %v", err)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	return &domain.Manifest{Graph: g, CleanPatterns: []string{"*.net.xml"}}
}

func TestRun_Success(t *testing.T) {
	h := newHarness(t)

	h.loader.EXPECT().Load(gomock.Any()).Return(phonyManifest(t, "net"), nil)
	h.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	h.cli.SetArgs([]string{"run", "net"})
	if err := h.cli.Execute(context.Background()); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

func TestRun_NoArgsShowsHelp(t *testing.T) {
	h := newHarness(t)

	// No manifest is loaded and nothing executes.
	h.cli.SetArgs([]string{"run"})
	if err := h.cli.Execute(context.Background()); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

func TestRun_UnknownTarget(t *testing.T) {
	h := newHarness(t)

	h.loader.EXPECT().Load(gomock.Any()).Return(phonyManifest(t, "net"), nil)

	h.cli.SetArgs([]string{"run", "missing"})
	err := h.cli.Execute(context.Background())
	if err == nil {
		t.Fatal("expected error for unknown target, got nil")
	}
	if !errors.Is(err, domain.ErrUnknownTarget) {
		t.Errorf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestRun_ActionFailure(t *testing.T) {
	h := newHarness(t)

	h.loader.EXPECT().Load(gomock.Any()).Return(phonyManifest(t, "net"), nil)
	h.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ErrActionFailed)

	h.cli.SetArgs([]string{"run", "net"})
	err := h.cli.Execute(context.Background())
	if !errors.Is(err, domain.ErrBuildFailed) {
		t.Errorf("expected ErrBuildFailed, got %v", err)
	}
}

func TestClean(t *testing.T) {
	h := newHarness(t)

	h.loader.EXPECT().Load(gomock.Any()).Return(phonyManifest(t, "net"), nil)
	h.cleaner.EXPECT().
		Clean(gomock.Any(), []string{"*.net.xml"}).
		Return(ports.CleanResult{Files: 1, Bytes: 42}, nil)

	h.cli.SetArgs([]string{"clean"})
	if err := h.cli.Execute(context.Background()); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

func TestClean_RejectsArgs(t *testing.T) {
	h := newHarness(t)

	h.cli.SetArgs([]string{"clean", "net"})
	if err := h.cli.Execute(context.Background()); err == nil {
		t.Error("expected error for clean with arguments, got nil")
	}
}

func TestWatch_RequiresTargets(t *testing.T) {
	h := newHarness(t)

	h.cli.SetArgs([]string{"watch"})
	if err := h.cli.Execute(context.Background()); err == nil {
		t.Error("expected error for watch without targets, got nil")
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	h.cli.SetArgs([]string{"version"})
	if err := h.cli.Execute(context.Background()); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)

	h.cli.SetArgs([]string{"frobnicate"})
	if err := h.cli.Execute(context.Background()); err == nil {
		t.Error("expected error for unknown command, got nil")
	}
}
