package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{" Info ", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf})

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown %d", 1)
	l.Error("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below level written: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 1") || !strings.Contains(out, "[ERROR] shown 2") {
		t.Errorf("missing messages: %q", out)
	}
}

func TestLoggerPrefixAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf, Prefix: "test"})

	l.WithComponent("session").WithField("box", 3).Debug("drawn")

	out := buf.String()
	if !strings.Contains(out, "test: drawn") {
		t.Errorf("prefix missing: %q", out)
	}
	if !strings.Contains(out, "{box=3, component=session}") {
		t.Errorf("fields should be sorted by key: %q", out)
	}
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Config{Level: LevelDebug, Output: &buf})
	_ = parent.WithField("child", true)

	parent.Info("plain")
	if strings.Contains(buf.String(), "child") {
		t.Errorf("parent picked up child field: %q", buf.String())
	}
}

func TestSetLevelIsShared(t *testing.T) {
	var buf bytes.Buffer
	root := New(Config{Level: LevelError, Output: &buf})
	child := root.WithComponent("script")

	root.SetLevel(LevelDebug)
	child.Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Error("child should follow the root level")
	}
	if !child.Enabled(LevelDebug) {
		t.Error("Enabled(LevelDebug) = false")
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Error("dropped")
	NullLogger.WithField("k", "v").Info("dropped")
	if NullLogger.Enabled(LevelError) {
		t.Error("NullLogger should never be enabled")
	}
	if OrNull(nil) != NullLogger {
		t.Error("OrNull(nil) should return NullLogger")
	}
}

func TestNewDefaultsOutput(t *testing.T) {
	l := New(Config{})
	if l.sink.output == nil {
		t.Error("expected default output")
	}
}
