package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)
	defer SetLevel(Notice)

	logger := New("test")
	SetLevel(Warning)
	logger.Info("hidden")
	logger.Warning("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info message to be filtered; got %q", out)
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "[test]") {
		t.Fatalf("expected warning message tagged with module name; got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	specs := map[string]Level{
		"debug":   Debug,
		"INFO":    Info,
		"":        Notice,
		"warn":    Warning,
		"warning": Warning,
		"error":   Error,
	}

	for name, expLevel := range specs {
		level, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %v", name, err)
		}
		if level != expLevel {
			t.Errorf("expected %q to parse as %d; got %d", name, expLevel, level)
		}
	}

	if _, err := ParseLevel("chatty"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}
