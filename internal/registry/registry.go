// Package registry assembles the template registry: the document that maps
// each (platform, command key) pair to the template that parses it.
package registry

import (
	"slices"
	"strings"

	"github.com/thoreinstein/tmplorg/internal/command"
	"github.com/thoreinstein/tmplorg/internal/errors"
	"github.com/thoreinstein/tmplorg/internal/platform"
	"github.com/thoreinstein/tmplorg/pkg/fileutil"
)

// ShapeList is the only result shape the organizer emits: the template
// produces a list of records.
const ShapeList = "list"

// TemplatesDir is the path prefix, relative to the registry, under which
// templates are referenced.
const TemplatesDir = "templates"

// Entry maps a platform and command key to a template.
type Entry struct {
	Platform   string `json:"platform" yaml:"platform" toml:"platform"`
	CommandKey string `json:"commandKey" yaml:"commandKey" toml:"commandKey"`
	Template   string `json:"template" yaml:"template" toml:"template"`
	Shape      string `json:"shape" yaml:"shape" toml:"shape"`
}

// Document is the registry as written to disk.
type Document struct {
	Templates []Entry `json:"templates" yaml:"templates" toml:"templates"`
}

// Format is a registry encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats returns the supported formats in display order.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat converts s into a Format. Matching ignores case; "yml" is
// accepted for YAML and the empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errors.Wrapf(errors.ErrUnknownFormat, "%q (supported: %s)", s, FormatList())
}

// FormatList returns the supported formats as a comma-separated list, for
// flag usage and error messages.
func FormatList() string {
	names := make([]string, 0, 3)
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// Assembler accumulates registry entries in encounter order.
type Assembler struct {
	entries []Entry
}

// NewAssembler returns an empty Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Add appends the entry for a record whose primary template is primary and
// whose platform field named the platform literally, and returns it.
func (a *Assembler) Add(name, primary string) Entry {
	return a.add(name, command.Key(primary, name), primary)
}

// AddResolved appends the entry for a record resolved as res. When the
// platform came from a pattern, a leading alternation group listing it is
// also stripped from the command key; the template path is unaffected.
func (a *Assembler) AddResolved(res platform.Resolution, primary string) Entry {
	if res.Source == platform.SourceLiteral {
		return a.Add(res.Platform, primary)
	}
	return a.add(res.Platform, command.GroupKey(primary, res.Platform), primary)
}

func (a *Assembler) add(name, key, primary string) Entry {
	e := Entry{
		Platform:   name,
		CommandKey: key,
		Template:   TemplatePath(name, primary),
		Shape:      ShapeList,
	}
	a.entries = append(a.entries, e)
	return e
}

// TemplatePath returns the registry reference for a template file of
// the named platform: templates/<platform>/<file with platform prefix
// removed>. The separator is always a forward slash.
func TemplatePath(name, filename string) string {
	return TemplatesDir + "/" + name + "/" + command.StripPlatformPrefix(filename, name)
}

// Len returns the number of entries.
func (a *Assembler) Len() int {
	return len(a.entries)
}

// Document returns the registry document. The entries are not copied.
func (a *Assembler) Document() Document {
	return Document{Templates: a.entries}
}

// Platforms returns the distinct platforms of the accumulated entries,
// sorted.
func (a *Assembler) Platforms() []string {
	seen := make(map[string]struct{}, len(a.entries))
	var out []string
	for _, e := range a.entries {
		if _, ok := seen[e.Platform]; ok {
			continue
		}
		seen[e.Platform] = struct{}{}
		out = append(out, e.Platform)
	}
	slices.Sort(out)
	return out
}

// Write encodes the registry document in format and atomically replaces
// the file at p. The parent directory must exist.
func (a *Assembler) Write(p string, format Format) error {
	doc := a.Document()
	if doc.Templates == nil {
		// Encode an empty registry as [] rather than null.
		doc.Templates = []Entry{}
	}

	var err error
	switch format {
	case FormatJSON:
		err = fileutil.AtomicWriteJSON(p, doc)
	case FormatYAML:
		err = fileutil.AtomicWriteYAML(p, doc)
	case FormatTOML:
		err = fileutil.AtomicWriteTOML(p, doc)
	default:
		return errors.Wrapf(errors.ErrUnknownFormat, "%q", format)
	}
	if err != nil {
		return errors.Wrapf(err, "writing registry %s", p)
	}
	return nil
}
