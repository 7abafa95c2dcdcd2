package triage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name string
		size int
		want Class
	}{
		{"zero", 0, Normal},
		{"small", 512, Normal},
		{"exactly warn threshold", WarnLineBytes, Normal},
		{"one over warn threshold", WarnLineBytes + 1, Oversized},
		{"exactly max threshold", MaxLineBytes, Oversized},
		{"one over max threshold", MaxLineBytes + 1, Rejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.size))
		})
	}
}

func TestThresholdValues(t *testing.T) {
	// The thresholds are part of the operational contract with the
	// collector pipeline; they must not drift.
	assert.Equal(t, 5242880, WarnLineBytes)
	assert.Equal(t, 52428800, MaxLineBytes)
	assert.Equal(t, "tmp_who_clog_large_line", OriginStream)
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "NORMAL", Normal.String())
	assert.Equal(t, "OVERSIZED", Oversized.String())
	assert.Equal(t, "REJECTED", Rejected.String())
	assert.Equal(t, "UNKNOWN", Class(99).String())
}

func TestOriginReportEncode(t *testing.T) {
	report := NewOriginReport("my raw stream!", WarnLineBytes+1)

	data, err := report.Encode()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// The report keeps the original stream name, not the sanitized form.
	assert.Equal(t, "my raw stream!", decoded["stream"])
	assert.EqualValues(t, WarnLineBytes+1, decoded["line_size"])
	assert.Contains(t, decoded["traceback"], "goroutine")
	assert.Contains(t, decoded["traceback"], "TestOriginReportEncode")
}
