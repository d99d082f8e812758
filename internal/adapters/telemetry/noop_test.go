package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stash/internal/adapters/telemetry"
	"go.trai.ch/stash/internal/core/domain"
)

func TestNoOp_Record(t *testing.T) {
	rec := telemetry.NewNoOp()

	ctx := context.Background()
	got, vertex := rec.Record(ctx, "/src/app.js")
	assert.Equal(t, ctx, got)
	require.NotNil(t, vertex)

	n, err := vertex.Stdout().Write([]byte("out"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, err = vertex.Stderr().Write([]byte("err"))
	require.NoError(t, err)

	vertex.Log(domain.LogLevelInfo, "msg")
	vertex.Cached()
	vertex.Complete(errors.New("boom"))

	require.NoError(t, rec.Close())
}
