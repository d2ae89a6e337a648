// Package config provides configuration management for the tmplorg CLI.
//
// Every setting has a default that reproduces the fixed project layout, so
// running the organizer from the project root with no configuration at all
// builds crates/netcli_core/resources from tmp/index.
//
// # Sources
//
// Settings are read with Viper, in increasing order of precedence:
//
//  1. defaults (see [Default])
//  2. tmplorg.yaml in the working directory or in ~/.config/tmplorg/
//  3. TMPLORG_* environment variables (TMPLORG_STAGING_DIR, ...)
//  4. command-line flags bound by the CLI
//
// A configuration file looks like:
//
//	root: ~/src/netcli
//	index: tmp/index
//	staging_dir: tmp
//	resources_dir: crates/netcli_core/resources
//	templates_dir: templates
//	registry_file: registry.json
//	registry_format: json
//
// Relative index and staging paths resolve against root; templates_dir and
// registry_file resolve against resources_dir. An empty root is discovered
// by walking up from the working directory to a Cargo.toml or go.mod.
//
// # Validation
//
// [Validate] reports every problem at once. [Config.Options] validates and
// resolves a Config into the options of a run.
package config
