package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/zerr"

	"github.com/cathywu/sumosims/internal/core/domain"
)

func TestAnnotate_SentinelStaysMatchable(t *testing.T) {
	err := domain.Annotate(domain.ErrUnknownTarget, "target", "net")

	if !errors.Is(err, domain.ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget in the chain, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	if got := zErr.Metadata()["target"]; got != "net" {
		t.Errorf("expected target metadata %q, got %v", "net", got)
	}
}

func TestAnnotate_ChainedWithKeepsSentinel(t *testing.T) {
	err := domain.Annotate(domain.ErrActionFailed, "target", "net")
	err = zerr.With(err, "exit_code", 2)

	if !errors.Is(err, domain.ErrActionFailed) {
		t.Fatalf("expected ErrActionFailed in the chain, got %v", err)
	}

	meta := err.(*zerr.Error).Metadata()
	if got := meta["target"]; got != "net" {
		t.Errorf("expected target metadata %q, got %v", "net", got)
	}
	if got := meta["exit_code"]; got != 2 {
		t.Errorf("expected exit_code metadata 2, got %v", got)
	}
}

func TestAnnotate_MessageIsTheSentinels(t *testing.T) {
	err := domain.Annotate(domain.ErrCycleDetected, "cycle", "a -> b -> a")
	if err.Error() != domain.ErrCycleDetected.Error() {
		t.Errorf("expected message %q, got %q", domain.ErrCycleDetected.Error(), err.Error())
	}
}
