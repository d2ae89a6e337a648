// Package paths locates the organizer's inputs and outputs.
//
// # Project Layout
//
// All defaults are relative to the project root:
//
//	| Path                                          | Role               |
//	|-----------------------------------------------|--------------------|
//	| tmp/index                                     | template index     |
//	| tmp/                                          | staged templates   |
//	| crates/netcli_core/resources/templates/       | rebuilt tree       |
//	| crates/netcli_core/resources/registry.json    | registry document  |
//
// [FindProjectRoot] walks up from a directory to the nearest one holding a
// Cargo.toml or go.mod. [ProjectRoot] applies it to the working directory
// and falls back to the working directory itself.
//
// # XDG Base Directory Compliance
//
// The per-user configuration directory comes from github.com/adrg/xdg
// (~/.config/tmplorg on Linux).
package paths
