package organize

import (
	"context"

	"github.com/thoreinstein/tmplorg/internal/errors"
	"github.com/thoreinstein/tmplorg/internal/index"
	"github.com/thoreinstein/tmplorg/internal/platform"
	"github.com/thoreinstein/tmplorg/internal/registry"
)

// Step is the planned outcome for one index record.
type Step struct {
	Line        int                 `json:"line"`
	RawPlatform string              `json:"rawPlatform"`
	Filenames   []string            `json:"filenames"`
	Resolution  platform.Resolution `json:"resolution"`
	Entry       registry.Entry      `json:"entry"`
}

// Plan resolves every record of the index at indexPath without touching
// the file system beyond reading the index. Records without a template
// are omitted, as they are by Run.
func Plan(ctx context.Context, indexPath string) ([]Step, error) {
	idx, err := index.Open(indexPath)
	if err != nil {
		return nil, err
	}

	set, err := platform.Collect(idx.Records())
	if err != nil {
		return nil, err
	}

	asm := registry.NewAssembler()
	var steps []Step
	for rec, err := range idx.Records() {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "interrupted at index line %d", rec.Line)
		}
		if len(rec.Filenames) == 0 {
			continue
		}

		res := set.Resolve(rec)
		steps = append(steps, Step{
			Line:        rec.Line,
			RawPlatform: rec.RawPlatform,
			Filenames:   rec.Filenames,
			Resolution:  res,
			Entry:       asm.AddResolved(res, rec.Primary()),
		})
	}
	return steps, nil
}
