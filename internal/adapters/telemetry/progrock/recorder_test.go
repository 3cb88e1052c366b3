package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vprogrock "github.com/vito/progrock"

	"github.com/cathywu/sumosims/internal/adapters/telemetry/progrock"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
	assert.NoError(t, recorder.Close())
}

func TestRecorder_Record(t *testing.T) {
	recorder := progrock.NewRecorder(vprogrock.NewTape())

	ctx, vertex := recorder.Record(context.Background(), "net")
	require.NotNil(t, ctx)
	require.NotNil(t, vertex)

	_, err := vertex.Stdout().Write([]byte("converting network\n"))
	assert.NoError(t, err)
	_, err = vertex.Stderr().Write([]byte("warning: unused edge\n"))
	assert.NoError(t, err)

	vertex.Complete(nil)
	assert.NoError(t, recorder.Close())
}

func TestRecorder_CompleteWithError(t *testing.T) {
	recorder := progrock.NewRecorder(vprogrock.NewTape())

	_, vertex := recorder.Record(context.Background(), "net")
	vertex.Complete(errors.New("netconvert exited with status 1"))

	assert.NoError(t, recorder.Close())
}

func TestRecorder_Fresh(t *testing.T) {
	recorder := progrock.NewRecorder(vprogrock.NewTape())

	_, vertex := recorder.Record(context.Background(), "net")
	vertex.Fresh()
	vertex.Complete(nil)

	assert.NoError(t, recorder.Close())
}
