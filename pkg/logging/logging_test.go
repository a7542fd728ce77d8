package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	cases := map[LogLevel]string{
		LevelDebug:   "DEBUG",
		LevelInfo:    "INFO",
		LevelWarn:    "WARN",
		LevelError:   "ERROR",
		LogLevel(42): "UNKNOWN",
		LogLevel(-1): "UNKNOWN",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelWarn, &buf)

	Debug("Test", "debug message")
	Info("Test", "info message")
	Warn("Test", "warn message")

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Error("debug message should have been filtered at warn level")
	}
	if strings.Contains(out, "info message") {
		t.Error("info message should have been filtered at warn level")
	}
	if !strings.Contains(out, "warn message") {
		t.Error("warn message should have been logged")
	}
}

func TestSubsystemAndErrorAttributes(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelDebug, &buf)

	Error("Resolver", errTest, "resolution failed for %s", "profile")

	out := buf.String()
	if !strings.Contains(out, "subsystem=Resolver") {
		t.Errorf("expected subsystem attribute, got: %s", out)
	}
	if !strings.Contains(out, "boom") {
		t.Errorf("expected error attribute, got: %s", out)
	}
	if !strings.Contains(out, "resolution failed for profile") {
		t.Errorf("expected formatted message, got: %s", out)
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "boom" }
