package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithService(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithService("signup", Options{Level: "debug", Output: &buf})

	l.WithField("k", "v").Debug("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "signup", entry["service"])
	assert.Equal(t, "v", entry["k"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, logrus.InfoLevel, ParseLevel(""))
}

func TestNewLoggerTextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Format: "text", Output: &buf})
	l.Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}
