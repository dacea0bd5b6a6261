package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	var testCases = []struct {
		level  string
		expect slog.Level
	}{
		{level: "debug", expect: slog.LevelDebug},
		{level: "WARN", expect: slog.LevelWarn},
		{level: "error", expect: slog.LevelError},
		{level: "", expect: slog.LevelInfo},
		{level: "verbose", expect: slog.LevelInfo},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Level(testCase.level), testCase.level)
	}
}

func TestNew(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := New("info", buffer)
	logger.Debug("hidden")
	logger.Info("resolved", "entities", 3)

	record := map[string]interface{}{}
	require.Nil(t, json.Unmarshal(buffer.Bytes(), &record))
	assert.Equal(t, "resolved", record["msg"])
	assert.EqualValues(t, 3, record["entities"])
	assert.Contains(t, record, "timestamp")
}
