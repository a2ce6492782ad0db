package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestConsoleLoggerWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	provider := NewProvider(Options{Writer: &buf, TimeFunc: fixedClock})

	logger := provider.GetLogger("pagekit.persistence")
	logger.Info("persistence.save.completed", "seq", 3, "status", "saved")

	got := strings.TrimSpace(buf.String())
	want := "2024-03-01T12:00:00Z INFO persistence.save.completed logger=pagekit.persistence seq=3 status=saved"
	if got != want {
		t.Fatalf("unexpected entry\n got: %s\nwant: %s", got, want)
	}
}

func TestConsoleLoggerRespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	level := LevelWarn
	provider := NewProvider(Options{Writer: &buf, TimeFunc: fixedClock, MinLevel: &level})

	logger := provider.GetLogger("test")
	logger.Info("dropped")
	logger.Error("kept", "error", errors.New("remote unavailable"))

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("expected info entry to be filtered, got %q", out)
	}
	if !strings.Contains(out, `error="remote unavailable"`) {
		t.Fatalf("expected quoted error value, got %q", out)
	}
}

func TestConsoleLoggerWithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	provider := NewProvider(Options{Writer: &buf, TimeFunc: fixedClock})

	parent := provider.GetLogger("root")
	child := parent.(interfaces.FieldsLogger).WithFields(map[string]any{"module": "pagekit.editor"})

	parent.Debug("parent")
	child.Debug("child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two entries, got %d", len(lines))
	}
	if strings.Contains(lines[0], "module=") {
		t.Fatalf("unexpected module field on parent: %q", lines[0])
	}
	if !strings.Contains(lines[1], "module=pagekit.editor") {
		t.Fatalf("expected module field on child: %q", lines[1])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"trace":   LevelTrace,
		"DEBUG":   LevelDebug,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"bogus":   LevelInfo,
	}
	for input, want := range cases {
		if got := ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
