package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/tmplorg/internal/errors"
	"github.com/thoreinstein/tmplorg/internal/organize"
	"github.com/thoreinstein/tmplorg/internal/platform"
	"github.com/thoreinstein/tmplorg/internal/registry"
)

var resolveIndex = []string{
	"a_show_ver.textfsm,,a,x",
	"(a|b)_show_int.textfsm,,a.*,x",
	"juniper_junos_show_interfaces.textfsm,,juniper_.*,x",
}

func TestResolveCommand_Tabular(t *testing.T) {
	root := newProject(t, resolveIndex)

	out, err := executeCommand(t, "resolve")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "PLATFORM")
	assert.Contains(t, lines[1], "show_ver")
	assert.Contains(t, lines[2], "prefix")
	assert.Contains(t, lines[2], "templates/a/(a|b)_show_int.textfsm")
	assert.Contains(t, lines[3], "juniper_junos")
	assert.Contains(t, lines[3], "fallback")

	assert.NoDirExists(t, filepath.Join(root, "crates"), "resolve must not write anything")
}

func TestResolveCommand_JSON(t *testing.T) {
	newProject(t, resolveIndex)

	out, err := executeCommand(t, "resolve", "--json")
	require.NoError(t, err)

	var steps []organize.Step
	require.NoError(t, json.Unmarshal([]byte(out), &steps))
	require.Len(t, steps, 3)
	assert.Equal(t, platform.Resolution{Platform: "a", Source: platform.SourcePrefix}, steps[1].Resolution)
	assert.Equal(t, "show_int", steps[1].Entry.CommandKey)
	assert.Equal(t, 2, steps[1].Line)
}

func TestResolveCommand_SourceFilter(t *testing.T) {
	newProject(t, resolveIndex)

	out, err := executeCommand(t, "resolve", "--json", "--source", "fallback")
	require.NoError(t, err)

	var steps []organize.Step
	require.NoError(t, json.Unmarshal([]byte(out), &steps))
	require.Len(t, steps, 1)
	assert.Equal(t, "juniper_junos", steps[0].Resolution.Platform)
}

func TestResolveCommand_InvalidSource(t *testing.T) {
	newProject(t, resolveIndex)

	_, err := executeCommand(t, "resolve", "--source", "guess")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.Classify(err).Code)
}

func TestResolveCommand_MissingIndex(t *testing.T) {
	newProject(t, nil)

	_, err := executeCommand(t, "resolve")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrIndexNotFound))
}

func TestOutputResolve_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, outputResolveTabular(&buf, nil))
	assert.Contains(t, buf.String(), "(no index rows)")

	buf.Reset()
	require.NoError(t, outputResolveJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestOutputResolveTabular_Columns(t *testing.T) {
	steps := []organize.Step{{
		Line:        7,
		RawPlatform: "cisco_ios",
		Filenames:   []string{"cisco_ios_show_clock.textfsm"},
		Resolution:  platform.Resolution{Platform: "cisco_ios", Source: platform.SourceLiteral},
		Entry: registry.Entry{
			Platform:   "cisco_ios",
			CommandKey: "show_clock",
			Template:   "templates/cisco_ios/show_clock.textfsm",
			Shape:      registry.ShapeList,
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, outputResolveTabular(&buf, steps))

	fields := strings.Fields(strings.Split(strings.TrimSpace(buf.String()), "\n")[1])
	assert.Equal(t, []string{"7", "cisco_ios", "literal", "show_clock", "templates/cisco_ios/show_clock.textfsm"}, fields)
}
