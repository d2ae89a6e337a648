package commands

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/tmplorg/internal/errors"
	"github.com/thoreinstein/tmplorg/internal/logging"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	resetCommandState(t)
	t.Setenv(debugEnv, "")

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			defer func() { verbosity = 0 }()
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	resetCommandState(t)

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"TMPLORG_DEBUG=1", "1", slog.LevelDebug},
		{"TMPLORG_DEBUG=true", "true", slog.LevelDebug},
		{"TMPLORG_DEBUG=2", "2", logging.LevelTrace},
		{"TMPLORG_DEBUG=0", "0", slog.LevelWarn},
		{"TMPLORG_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(debugEnv, tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel == slog.LevelDebug && logger.Enabled(t.Context(), logging.LevelTrace) {
				t.Error("expected Trace level to be disabled when TMPLORG_DEBUG=1")
			}
		})
	}
}

func TestSetupLogging_QuietAndVerbose(t *testing.T) {
	resetCommandState(t)
	quiet, verbosity = true, 1
	defer func() { quiet, verbosity = false, 0 }()

	err := setupLogging(rootCmd)
	if err == nil {
		t.Fatal("expected error for --quiet with --verbose")
	}
	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != errors.ExitUser {
		t.Errorf("expected user ExitError, got %v", err)
	}
}

func TestSetupLogging_UnknownFormat(t *testing.T) {
	resetCommandState(t)
	logFormat = "xml"

	if err := setupLogging(rootCmd); err == nil {
		t.Error("expected error for unknown log format")
	}
}

func TestSetupLogging_LogFile(t *testing.T) {
	resetCommandState(t)
	logFile = filepath.Join(t.TempDir(), "tmplorg.log")
	verbosity = 1
	defer func() { verbosity = 0 }()

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	defer rootCmd.SetErr(nil)

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	logging.FromContext(rootCmd.Context()).Info("registry written", "entries", 2)

	if !strings.Contains(stderr.String(), "registry written") {
		t.Errorf("expected message on stderr, got: %q", stderr.String())
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &rec); err != nil {
		t.Fatalf("log file should hold JSON records: %v\n%s", err, data)
	}
	if rec["entries"] != float64(2) {
		t.Errorf("log record = %v, want entries=2", rec)
	}
}

func TestLogFile_ClosedAfterCommand(t *testing.T) {
	resetCommandState(t)
	path := filepath.Join(t.TempDir(), "tmplorg.log")

	_, err := executeCommand(t, "version", "-v", "--log-file", path)
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if logFileHandle != nil {
		t.Error("log file should be closed once the command finishes")
	}
	if err := closeLogFile(); err != nil {
		t.Errorf("second close should be a no-op, got: %v", err)
	}
}

func TestRootCommand_Help(t *testing.T) {
	resetCommandState(t)

	out, err := executeCommand(t)
	if err != nil {
		t.Fatalf("root command failed: %v", err)
	}
	for _, want := range []string{"build", "resolve", "version"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q\n%s", want, out)
		}
	}
}
