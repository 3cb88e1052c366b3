package logger_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cathywu/sumosims/internal/adapters/logger"
)

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	log.Info("building net")

	out := buf.String()
	if !strings.Contains(out, "level=INFO") {
		t.Errorf("expected INFO level in output, got %q", out)
	}
	if !strings.Contains(out, "building net") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	log.Warn("nothing to clean")

	out := buf.String()
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("expected WARN level in output, got %q", out)
	}
	if !strings.Contains(out, "nothing to clean") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	log.Error(errors.New("netconvert exited with status 1"))

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") {
		t.Errorf("expected ERROR level in output, got %q", out)
	}
	if !strings.Contains(out, "netconvert exited with status 1") {
		t.Errorf("expected error message in output, got %q", out)
	}
}
