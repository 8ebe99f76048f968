package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestCustomFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, logrus.DebugLevel)

	l.WithField("count", 3).Warn("found bounties")

	line := buf.String()
	if !strings.HasPrefix(line, "[") {
		t.Fatalf("line should start with timestamp, got %q", line)
	}
	if !strings.Contains(line, "[WARN]") {
		t.Errorf("level not truncated to WARN: %q", line)
	}
	if !strings.Contains(line, "logger_test.go:") {
		t.Errorf("caller missing: %q", line)
	}
	if !strings.HasSuffix(line, "found bounties count=3\n") {
		t.Errorf("message/fields not rendered: %q", line)
	}
}

func TestInitLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "agent_pulse.log")
	if err := InitLogger("debug", path); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	t.Cleanup(func() { Log = newLogger(os.Stderr, logrus.InfoLevel) })

	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", Log.GetLevel())
	}
	Log.Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestInitLogger_BadLevelFallsBackToInfo(t *testing.T) {
	if err := InitLogger("loud", ""); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	t.Cleanup(func() { Log = newLogger(os.Stderr, logrus.InfoLevel) })

	if Log.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", Log.GetLevel())
	}
}
