// Package command derives canonical command keys and destination filenames
// from TextFSM template filenames.
package command

import (
	"slices"
	"strings"
)

// TemplateExt is the file extension carried by TextFSM templates.
const TemplateExt = ".textfsm"

// Stem strips a trailing template extension from filename.
//
//   - cisco_ios_show_version.textfsm -> cisco_ios_show_version
//   - cisco_ios_show_version -> cisco_ios_show_version
//   - notes.txt -> notes.txt (only .textfsm stripped)
func Stem(filename string) string {
	return strings.TrimSuffix(filename, TemplateExt)
}

// StripPlatformPrefix returns the filename a template is stored under inside
// its platform directory: a leading "<platform>_" is removed and the rest of
// the name, extension and case included, is left alone.
//
//   - cisco_ios_show_version.textfsm, cisco_ios -> show_version.textfsm
//   - shared_template.textfsm, cisco_ios -> shared_template.textfsm
//   - (a|b)_show_int.textfsm, a -> (a|b)_show_int.textfsm
func StripPlatformPrefix(filename, platform string) string {
	return strings.TrimPrefix(filename, platform+"_")
}

// GroupPrefix splits a leading "(alt1|alt2|...)_" alternation group off
// name. It reports false when name does not start with a single,
// unnested group followed by an underscore.
func GroupPrefix(name string) (alts []string, rest string, ok bool) {
	if !strings.HasPrefix(name, "(") {
		return nil, name, false
	}
	end := strings.Index(name, ")_")
	if end < 0 {
		return nil, name, false
	}
	group := name[1:end]
	if group == "" || strings.ContainsAny(group, "()") {
		return nil, name, false
	}
	return strings.Split(group, "|"), name[end+2:], true
}

// Key derives the command key for a template within platform's namespace.
//
// Transformation rules:
//   - a trailing .textfsm is removed
//   - a leading "<platform>_" is removed
//   - every hyphen becomes an underscore
//
// When the stem does not start with "<platform>_" as written, the prefix is
// matched again after hyphen normalization so that a platform joined to its
// command by a hyphen (arista_eos-show-vlan) is still stripped. The platform
// itself is never normalized. Keys are unique only within a platform;
// duplicates are not detected here.
func Key(filename, platform string) string {
	stem := Stem(filename)
	if rest, ok := strings.CutPrefix(stem, platform+"_"); ok {
		return normalize(rest)
	}
	return strings.TrimPrefix(normalize(stem), platform+"_")
}

// GroupKey is Key for a record whose platform was resolved from a pattern.
// A leading alternation group that lists platform, as in
// "(a|b)_show_int.textfsm", also counts as the platform prefix.
func GroupKey(filename, platform string) string {
	if alts, rest, ok := GroupPrefix(Stem(filename)); ok && slices.Contains(alts, platform) {
		return normalize(rest)
	}
	return Key(filename, platform)
}

func normalize(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}
