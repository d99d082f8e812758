package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stash/internal/adapters/telemetry/progrock"
	"go.trai.ch/stash/internal/core/domain"
)

func TestRecorder_Integration(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var out bytes.Buffer
	recorder := progrock.New(&out)
	require.NotNil(t, recorder)

	ctx := context.Background()

	_, hit := recorder.Record(ctx, "src/cached.js")
	hit.Cached()
	hit.Complete(nil)

	_, miss := recorder.Record(ctx, "src/compiled.js")
	_, err := miss.Stdout().Write([]byte("compiled\n"))
	require.NoError(t, err)
	miss.Log(domain.LogLevelWarn, "deprecated syntax")
	miss.Complete(nil)

	_, failed := recorder.Record(ctx, "src/broken.js")
	failed.Complete(errors.New("syntax error"))

	require.NoError(t, recorder.Close())

	rendered := out.String()
	assert.Contains(t, rendered, "src/cached.js CACHED")
	assert.Contains(t, rendered, "src/compiled.js DONE")
	assert.Contains(t, rendered, "compiled")
	assert.Contains(t, rendered, "[WARN] deprecated syntax")
	assert.Contains(t, rendered, "src/broken.js ERROR: ")
	assert.Contains(t, rendered, "syntax error")
}

func TestRecorder_RecordSameNameReusesVertex(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var out bytes.Buffer
	recorder := progrock.New(&out)

	ctx := context.Background()
	_, first := recorder.Record(ctx, "a.js")
	first.Complete(nil)
	_, second := recorder.Record(ctx, "a.js")
	second.Cached()
	second.Complete(nil)
	require.NoError(t, recorder.Close())

	assert.Contains(t, out.String(), "1: a.js DONE")
	assert.Contains(t, out.String(), "1: a.js CACHED")
	assert.NotContains(t, out.String(), "2: ")
}
