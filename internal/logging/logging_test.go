package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/thoreinstein/tmplorg/internal/errors"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatJSON,
		Output: &buf,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("placed template", "platform", "cisco_ios")

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if parsed["msg"] != "placed template" {
		t.Errorf("msg = %v, want %q", parsed["msg"], "placed template")
	}
	if _, ok := parsed["level"]; !ok {
		t.Errorf("JSON output missing 'level' field: %s", buf.String())
	}
	if parsed["platform"] != "cisco_ios" {
		t.Errorf("platform = %v, want cisco_ios", parsed["platform"])
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: &buf,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("placed template", "platform", "cisco_ios")

	output := buf.String()
	var parsed map[string]any
	if err := json.Unmarshal([]byte(output), &parsed); err == nil {
		t.Error("text format should not be valid JSON")
	}
	for _, want := range []string{"placed template", "platform=cisco_ios", "INFO"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %s", want, output)
		}
	}
}

func TestNew_EmptyFormatIsText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: slog.LevelInfo, Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("hello")
	if !strings.Contains(buf.String(), "INFO hello") {
		t.Errorf("output = %q, want text record", buf.String())
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(Config{Format: Format("xml"), Output: &bytes.Buffer{}})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("New() error = %v, want ErrUnknownFormat", err)
	}
}

func TestNew_FileReceivesJSON(t *testing.T) {
	var console, file bytes.Buffer
	logger, err := New(Config{
		Level:  slog.LevelDebug,
		Format: FormatText,
		Output: &console,
		File:   &file,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("skipped copy", "dest", "a/show.textfsm")

	if !strings.Contains(console.String(), "skipped copy") {
		t.Errorf("console output = %q", console.String())
	}
	var parsed map[string]any
	if err := json.Unmarshal(file.Bytes(), &parsed); err != nil {
		t.Fatalf("file output is not JSON: %v\n%s", err, file.String())
	}
	if parsed["dest"] != "a/show.textfsm" {
		t.Errorf("dest = %v", parsed["dest"])
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "text", want: FormatText},
		{in: "JSON", want: FormatJSON},
		{in: " json ", want: FormatJSON},
		{in: "logfmt", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name         string
		configLevel  slog.Level
		logLevel     slog.Level
		shouldAppear bool
	}{
		{name: "info logged at info level", configLevel: slog.LevelInfo, logLevel: slog.LevelInfo, shouldAppear: true},
		{name: "debug not logged at info level", configLevel: slog.LevelInfo, logLevel: slog.LevelDebug, shouldAppear: false},
		{name: "error logged at info level", configLevel: slog.LevelInfo, logLevel: slog.LevelError, shouldAppear: true},
		{name: "info not logged at warn level", configLevel: slog.LevelWarn, logLevel: slog.LevelInfo, shouldAppear: false},
		{name: "trace not logged at debug level", configLevel: slog.LevelDebug, logLevel: LevelTrace, shouldAppear: false},
		{name: "trace logged at trace level", configLevel: LevelTrace, logLevel: LevelTrace, shouldAppear: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := New(Config{
				Level:  tt.configLevel,
				Format: FormatText,
				Output: &buf,
			})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			logger.Log(t.Context(), tt.logLevel, "test message")

			if got := buf.Len() > 0; got != tt.shouldAppear {
				t.Errorf("message appeared = %v, want %v (output: %q)", got, tt.shouldAppear, buf.String())
			}
		})
	}
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	if !logger.Enabled(t.Context(), LevelTrace) {
		t.Error("ForTest logger should capture trace records")
	}
	logger.Log(t.Context(), LevelTrace, "visible with -v")
}
