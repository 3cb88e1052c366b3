package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cathywu/sumosims/internal/adapters/watcher"
	"github.com/cathywu/sumosims/internal/core/ports"
	"github.com/cathywu/sumosims/internal/core/ports/mocks"
)

func TestWatcher_DetectsWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(logger)
	require.NoError(t, err)

	tmpDir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, w.Start(ctx, tmpDir))
	defer w.Stop() //nolint:errcheck // best effort stop in test

	received := make(chan ports.WatchEvent, 1)
	go func() {
		for event := range w.Events() {
			select {
			case received <- event:
			default:
			}
		}
	}()

	path := filepath.Join(tmpDir, "a.nod.xml")
	require.NoError(t, os.WriteFile(path, []byte("<nodes/>"), 0o600))

	select {
	case event := <-received:
		require.Equal(t, path, event.Path)
		require.Contains(t,
			[]ports.WatchOp{ports.OpCreate, ports.OpWrite},
			event.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received for file write")
	}
}

func TestWatcher_StopClosesEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, t.TempDir()))

	done := make(chan struct{})
	go func() {
		for range w.Events() { //nolint:revive // draining until close
		}
		close(done)
	}()

	cancel()
	require.NoError(t, w.Stop())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("events channel never closed")
	}
}
