// Package cmd holds build metadata for the tmplorg binary, injected via
// ldflags:
//
//	-X github.com/thoreinstein/tmplorg/cmd.Version=v1.2.3
package cmd

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
