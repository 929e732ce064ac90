package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/writeme/pkg/observability"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	// Test that it can log
	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	if prog == nil {
		t.Fatal("newProgress() returned nil")
	}

	// Small delay to ensure measurable duration
	time.Sleep(10 * time.Millisecond)

	prog.done("test completed")

	output := buf.String()
	if output == "" {
		t.Error("progress.done() should produce output")
	}

	// Should contain the message
	if !bytes.Contains(buf.Bytes(), []byte("test completed")) {
		t.Error("progress.done() output should contain message")
	}
}

func TestDebugHooks(t *testing.T) {
	var buf bytes.Buffer
	h := debugHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnStageStart(ctx, "walk")
	h.OnStageComplete(ctx, "walk", 3, time.Millisecond, nil)
	h.OnStageComplete(ctx, "github", 0, time.Millisecond, errors.New("boom"))
	h.OnConflict(ctx, "name", 2)
	h.OnCacheMiss(ctx, "memory")
	h.OnResponse(ctx, "GET", "api.github.com", "/repos/a/b", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"stage start", "stage done", "stage failed", "boom", "conflict", "cache miss", "api.github.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q:\n%s", want, out)
		}
	}
}

func TestDebugHooksSilentAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := debugHooks{logger: newLogger(&buf, log.InfoLevel)}
	h.OnCacheHit(context.Background(), "file")
	if buf.Len() != 0 {
		t.Errorf("debug hooks wrote at info level: %q", buf.String())
	}
}

func TestSetLogLevelInstallsHooks(t *testing.T) {
	defer observability.Reset()

	c := New(io.Discard, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)
	if _, ok := observability.Scan().(debugHooks); !ok {
		t.Errorf("Scan hooks = %T, want debugHooks", observability.Scan())
	}
	if _, ok := observability.HTTP().(debugHooks); !ok {
		t.Errorf("HTTP hooks = %T, want debugHooks", observability.HTTP())
	}
}
