package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type correlationKey struct{}

func TestLogReporterWritesStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewLogReporter(zerolog.New(&buf), "activity_recorder", func(ctx context.Context) string {
		id, _ := ctx.Value(correlationKey{}).(string)
		return id
	})

	ctx := context.WithValue(context.Background(), correlationKey{}, "corr-42")
	reporter.CaptureException(ctx, errors.New("insert failed"), map[string]interface{}{
		"params": map[string]string{"resource": "ANIMAL"},
	})

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	require.Equal(t, "error", event["level"])
	require.Equal(t, "insert failed", event["error"])
	require.Equal(t, "activity_recorder", event["component"])
	require.Equal(t, "corr-42", event["correlation_id"])
	require.Equal(t, map[string]interface{}{"resource": "ANIMAL"}, event["params"])
}

func TestLogReporterIgnoresNilError(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewLogReporter(zerolog.New(&buf), "", nil)

	reporter.CaptureException(context.Background(), nil, nil)
	require.Zero(t, buf.Len())
}
