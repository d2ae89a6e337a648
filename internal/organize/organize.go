// Package organize runs the template organizer: it reads the index,
// resolves every record to a concrete platform, rebuilds the template tree
// and writes the registry.
//
// The run is a two-phase pipeline over the same index. Phase one collects
// every literal platform into an immutable [platform.Set]; phase two
// resolves, copies and registers each record against that set. Records are
// processed sequentially and the context is checked between records.
package organize

import (
	"context"
	"path/filepath"

	"github.com/thoreinstein/tmplorg/internal/errors"
	"github.com/thoreinstein/tmplorg/internal/index"
	"github.com/thoreinstein/tmplorg/internal/layout"
	"github.com/thoreinstein/tmplorg/internal/logging"
	"github.com/thoreinstein/tmplorg/internal/paths"
	"github.com/thoreinstein/tmplorg/internal/platform"
	"github.com/thoreinstein/tmplorg/internal/registry"
)

// Options locates the inputs and outputs of a run.
type Options struct {
	// IndexPath is the template index file.
	IndexPath string
	// StagingDir holds the flat template files the index refers to.
	StagingDir string
	// TemplatesDir is rebuilt from scratch on every run.
	TemplatesDir string
	// RegistryPath is where the registry document is written.
	RegistryPath string
	// Format selects the registry encoding. Empty means JSON.
	Format registry.Format
}

// Summary reports what a run produced.
type Summary struct {
	// Entries is the number of registry entries written.
	Entries int `json:"entries"`
	// Platforms lists the distinct platforms of the entries, sorted.
	Platforms []string `json:"platforms"`
	// Copied is the number of template files copied.
	Copied int `json:"copied"`
	// RegistryPath is the registry file written.
	RegistryPath string `json:"registryPath"`
}

func (o Options) validate() error {
	if o.IndexPath == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "index path is required")
	}
	if o.TemplatesDir == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "templates directory is required")
	}
	if o.RegistryPath == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "registry path is required")
	}
	return nil
}

// Run executes a full organizer run. The templates directory is deleted
// and recreated before any file is copied, and the registry file is
// replaced. A cancelled ctx stops the run between records; whatever was
// already written stays on disk.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	format := opts.Format
	if format == "" {
		format = registry.FormatJSON
	}
	logger := logging.FromContext(ctx)

	idx, err := index.Open(opts.IndexPath)
	if err != nil {
		return nil, err
	}

	set, err := platform.Collect(idx.Records())
	if err != nil {
		return nil, err
	}
	logger.Info("collected concrete platforms", "count", set.Len(), "index", idx.Path())
	logger.Debug("concrete platforms", "names", set.All())

	builder := layout.New(opts.TemplatesDir, opts.StagingDir, layout.WithLogger(logger))
	if err := builder.Reset(); err != nil {
		return nil, err
	}

	asm := registry.NewAssembler()
	for rec, err := range idx.Records() {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "interrupted at index line %d", rec.Line)
		}
		if len(rec.Filenames) == 0 {
			logger.Debug("record has no template", "line", rec.Line)
			continue
		}

		res := set.Resolve(rec)
		if res.Source == platform.SourceFallback {
			logger.Debug("platform synthesized from filename",
				"line", rec.Line, "pattern", rec.RawPlatform, "platform", res.Platform)
		}

		if err := builder.Place(res.Platform, rec.Filenames); err != nil {
			return nil, err
		}
		entry := asm.AddResolved(res, rec.Primary())
		logger.Log(ctx, logging.LevelTrace, "registered template",
			"line", rec.Line, "platform", entry.Platform, "key", entry.CommandKey)
	}
	logger.Info("template tree rebuilt", "dir", builder.Root(), "copied", builder.Copied())

	if err := paths.EnsureDir(filepath.Dir(opts.RegistryPath), 0); err != nil {
		return nil, errors.Wrapf(err, "creating registry directory for %s", opts.RegistryPath)
	}
	if err := asm.Write(opts.RegistryPath, format); err != nil {
		return nil, err
	}
	logger.Info("registry written", "path", opts.RegistryPath, "format", string(format), "entries", asm.Len())

	return &Summary{
		Entries:      asm.Len(),
		Platforms:    asm.Platforms(),
		Copied:       builder.Copied(),
		RegistryPath: opts.RegistryPath,
	}, nil
}
