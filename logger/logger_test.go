package logger

import (
	"bytes"
	"encoding/json"
	"log"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))

		records = append(records, rec)
	}

	return records
}

func TestGet(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{
		Subsystem: "test",
		JSON:      true,
		MinLevel:  slog.LevelDebug,
		Output:    &buf,
	})

	Get().Info("default subsystem")
	Get(WithSubsystem(t.Context(), "overridden")).Info("overridden subsystem")
	Get(With(t.Context(), "attribute", "name")).Debug("with values")
	Get(WithMuted(t.Context(), true)).Error("never written")

	records := decodeLines(t, &buf)
	require.Len(t, records, 3)

	assert.Equal(t, "test", records[0]["subsystem"])
	assert.Equal(t, "overridden", records[1]["subsystem"])
	assert.Equal(t, "name", records[2]["attribute"])
	assert.Equal(t, "DEBUG", records[2]["level"])
}

func TestLegacy(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	ConfigureLoggingWithOptions(Options{
		Subsystem:   "test",
		JSON:        true,
		LegacyLevel: slog.LevelWarn,
		Output:      &buf,
	})

	log.Println("legacy line")

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "WARN", records[0]["level"])
	assert.Equal(t, "legacy line", records[0]["msg"])
}

func TestConfigureLogging_Options(t *testing.T) { //nolint:paralleltest
	var buf bytes.Buffer

	logger := ConfigureLogging("sortattr", WithOutput(&buf), WithLevel(slog.LevelWarn))

	logger.Info("filtered")
	logger.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "filtered")
	assert.Contains(t, out, "msg=kept")
	assert.Equal(t, "sortattr", GetSubsystem(t.Context()))
}

func TestWith_Accumulates(t *testing.T) {
	t.Parallel()

	ctx := With(t.Context(), "a", 1)
	ctx = With(ctx, "b", 2)

	assert.Equal(t, []any{"a", 1, "b", 2}, getValues(ctx))
	assert.Equal(t, ctx, With(ctx))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "upper case", input: "WARN", want: slog.LevelWarn},
		{name: "offset", input: "info+2", want: slog.LevelInfo + 2},
		{name: "padded", input: " error ", want: slog.LevelError},
		{name: "garbage", input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.False(t, Discard().Enabled(t.Context(), slog.LevelError))
}
