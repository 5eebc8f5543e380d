package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("Warning"))
	assert.Equal(t, ERROR, ParseLevel(" error "))
	assert.Equal(t, INFO, ParseLevel("nonsense"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Output: &buf})

	l.Info("hidden")
	l.Warnf("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 1")
	assert.True(t, strings.HasPrefix(out, "WARN "))
}

func TestWithPrefixSharesSink(t *testing.T) {
	var buf bytes.Buffer
	root := New(Config{Level: "info", Output: &buf, Prefix: "App"})
	child := root.WithPrefix("Scoring")

	child.Debug("before")
	root.SetLevel(DEBUG)
	child.Debug("after")

	out := buf.String()
	assert.NotContains(t, out, "before")
	assert.Contains(t, out, "[App:Scoring] after")
}

func TestFatalCallsExit(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Output: &buf})
	code := -1
	l.sink.exit = func(c int) { code = c }

	l.Fatalf("boom %s", "now")

	require.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "boom now")
}

func TestColorWrapsLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "info", Output: &buf, EnableColor: true})
	l.Error("red")
	assert.True(t, strings.HasPrefix(buf.String(), ERROR.Color()))
	assert.Contains(t, buf.String(), colorReset)
}
