package state_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cathywu/sumosims/internal/adapters/state"
	"github.com/cathywu/sumosims/internal/core/domain"
)

func TestStore_PutGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".sumake", "state.json")

	store, err := state.NewStore(path)
	require.NoError(t, err)

	record := domain.RunRecord{
		TargetName:  "net",
		Fingerprint: "fp-1",
		RunID:       "run-1",
		Timestamp:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Put(record))

	got, err := store.Get("net")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, record, *got)
}

func TestStore_Get_Missing(t *testing.T) {
	store, err := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	got, err := store.Get("absent")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".sumake", "state.json")

	first, err := state.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(domain.RunRecord{TargetName: "net", Fingerprint: "fp-1"}))

	second, err := state.NewStore(path)
	require.NoError(t, err)

	got, err := second.Get("net")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "fp-1", got.Fingerprint)
}

func TestStore_Put_Overwrites(t *testing.T) {
	store, err := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	require.NoError(t, store.Put(domain.RunRecord{TargetName: "net", Fingerprint: "old"}))
	require.NoError(t, store.Put(domain.RunRecord{TargetName: "net", Fingerprint: "new"}))

	got, err := store.Get("net")
	require.NoError(t, err)
	require.Equal(t, "new", got.Fingerprint)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := state.NewStore(path)
	require.Error(t, err)
}
