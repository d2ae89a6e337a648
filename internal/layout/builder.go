// Package layout builds the on-disk template tree: one directory per
// platform holding copies of that platform's template files.
package layout

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thoreinstein/tmplorg/internal/command"
	"github.com/thoreinstein/tmplorg/internal/errors"
	"github.com/thoreinstein/tmplorg/internal/paths"
	"github.com/thoreinstein/tmplorg/pkg/fileutil"
)

// Builder copies template files from a flat staging directory into
// <root>/<platform>/. A Builder belongs to a single run.
type Builder struct {
	root    string
	staging string
	logger  *slog.Logger

	// copied holds every destination written this run. The first record to
	// claim a destination wins.
	copied map[string]struct{}
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for skipped copies.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New returns a Builder writing under root and reading sources from staging.
func New(root, staging string, opts ...Option) *Builder {
	b := &Builder{
		root:    root,
		staging: staging,
		logger:  slog.Default(),
		copied:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Root returns the templates directory the Builder writes under.
func (b *Builder) Root() string {
	return b.root
}

// Reset deletes the templates tree and recreates it empty. Anything left by
// a previous run is removed.
func (b *Builder) Reset() error {
	if err := os.RemoveAll(b.root); err != nil {
		return errors.Wrapf(err, "removing templates directory %s", b.root)
	}
	if err := paths.EnsureDir(b.root, 0); err != nil {
		return errors.Wrapf(err, "creating templates directory %s", b.root)
	}
	clear(b.copied)
	return nil
}

// Place ensures the directory for platform exists and copies each of
// filenames into it under its prefix-stripped name. Missing sources and
// destinations already written this run are skipped.
func (b *Builder) Place(platform string, filenames []string) error {
	dir := b.PlatformDir(platform)
	if err := paths.EnsureDir(dir, 0); err != nil {
		return errors.Wrapf(err, "creating platform directory %s", dir)
	}

	for _, name := range filenames {
		dst := filepath.Join(dir, command.StripPlatformPrefix(name, platform))
		if _, done := b.copied[dst]; done {
			b.logger.Debug("destination already written", "platform", platform, "file", name, "dest", dst)
			continue
		}

		src := filepath.Join(b.staging, name)
		if !fileutil.Exists(src) {
			b.logger.Debug("template source missing", "platform", platform, "file", name, "source", src)
			continue
		}

		if err := fileutil.CopyFile(src, dst); err != nil {
			return errors.Wrapf(err, "placing template %s for %s", name, platform)
		}
		b.copied[dst] = struct{}{}
	}
	return nil
}

// PlatformDir returns the directory holding platform's templates.
func (b *Builder) PlatformDir(platform string) string {
	return filepath.Join(b.root, platform)
}

// Copied returns the number of files copied since the last Reset.
func (b *Builder) Copied() int {
	return len(b.copied)
}
