package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"currencyconv/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(config.Logging{Level: "warn", Format: "JSON"}, &buf)

	require.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("dropped")
	logger.WithField("currency", "EURO").Warn("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "kept", entry["msg"])
	require.Equal(t, "EURO", entry["currency"])
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger := New(config.Logging{Level: "chatty"}, &bytes.Buffer{})
	require.Equal(t, logrus.InfoLevel, logger.GetLevel())
	_, isText := logger.Formatter.(*logrus.TextFormatter)
	require.True(t, isText)
}
