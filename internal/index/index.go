// Package index reads the template index: a comma-separated catalog that
// associates TextFSM template filenames with the device platform whose
// command output they parse.
//
// Each data line has at least four fields. Field 0 is a colon-separated list
// of template filenames (the first is the primary template) and field 2 is
// either a literal platform name or a pattern grouping several platforms.
package index

import (
	"bufio"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/thoreinstein/tmplorg/internal/errors"
)

// MinFields is the number of comma-separated fields a data line must carry.
const MinFields = 4

const (
	commentPrefix     = "#"
	fieldSeparator    = ","
	filenameSeparator = ":"
	platformField     = 2
	maxLineSize       = 1024 * 1024
)

// headerTokens are platform-column values left over from the catalog's
// tabular header. A line carrying one is ignored wherever it appears.
var headerTokens = map[string]struct{}{
	"Hostname": {},
	"Platform": {},
}

// Record is one data line of the index.
type Record struct {
	// Line is the 1-based line number in the source.
	Line int

	// Filenames lists the template files referenced by the line, in order.
	// Filenames[0] is the primary template. It may be empty when the
	// filename field holds only separators.
	Filenames []string

	// RawPlatform is the platform column as written: a literal or a pattern.
	RawPlatform string

	// Fields holds every trimmed field of the line.
	Fields []string
}

// Primary returns the primary template filename, or "" if the record
// references none.
func (r Record) Primary() string {
	if len(r.Filenames) == 0 {
		return ""
	}
	return r.Filenames[0]
}

// Index is a handle on an index file. Every call to Records streams the
// file from the beginning, so the same Index serves several passes.
type Index struct {
	path string
}

// Open returns a handle on the index at path. It fails with
// errors.ErrIndexNotFound if the file does not exist.
func Open(path string) (*Index, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrIndexNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "checking index %s", path)
	}
	if info.IsDir() {
		return nil, errors.Newf("index %s is a directory", path)
	}
	return &Index{path: path}, nil
}

// Path returns the filesystem path of the index.
func (x *Index) Path() string {
	return x.path
}

// Records returns a lazy sequence over the valid records of the index.
// Reading failures are yielded as a final non-nil error.
func (x *Index) Records() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		f, err := os.Open(x.path)
		if err != nil {
			yield(Record{}, errors.Wrapf(err, "opening index %s", x.path))
			return
		}
		defer f.Close()

		for rec, err := range Parse(f) {
			if !yield(rec, err) {
				return
			}
		}
	}
}

// Parse returns a lazy sequence over the valid records read from r.
// Comments, blank lines, short lines, and header rows are skipped.
func Parse(r io.Reader) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

		lineNo := 0
		for scanner.Scan() {
			lineNo++
			rec, ok := ParseLine(scanner.Text(), lineNo)
			if !ok {
				continue
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Record{}, errors.Wrap(err, "reading index"))
		}
	}
}

// ParseLine parses a single index line. It reports false for lines that
// carry no usable record.
func ParseLine(line string, lineNo int) (Record, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, commentPrefix) {
		return Record{}, false
	}

	fields := strings.Split(line, fieldSeparator)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	if len(fields) < MinFields {
		return Record{}, false
	}

	platform := fields[platformField]
	if _, header := headerTokens[platform]; header {
		return Record{}, false
	}

	return Record{
		Line:        lineNo,
		Filenames:   splitFilenames(fields[0]),
		RawPlatform: platform,
		Fields:      fields,
	}, true
}

func splitFilenames(field string) []string {
	var names []string
	for _, name := range strings.Split(field, filenameSeparator) {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
