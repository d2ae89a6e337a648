// Package logging provides structured logging for the tmplorg CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. All loggers are based on the standard
// library's [log/slog] package.
//
// # Basic Usage
//
//	logger, err := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	if err != nil {
//		return err
//	}
//	logger.Info("building layout", "index", "tmp/index")
//
// Setting Config.File tees every record, as JSON, to a second writer.
//
// # Context
//
// Commands attach their logger to the context with [NewContext]; pipeline
// code retrieves it with [FromContext], which falls back to slog.Default.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Color
//
// The text handler colors output only for terminals, honoring NO_COLOR,
// TMPLORG_NO_COLOR, TERM=dumb and CLICOLOR_FORCE. [ConfigureColor] applies
// the same rules to fatih/color's global switch for command output.
package logging
