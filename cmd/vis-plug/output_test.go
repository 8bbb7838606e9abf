package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kornellapacz/vis-plug/internal/plugin"
)

func sampleStatuses() []plugin.Status {
	return []plugin.Status{
		{Name: "vis-highlight", ShortURL: "erf/vis-highlight", Installed: true, State: plugin.StateUpToDate},
		{Name: "vis-cursors", ShortURL: "erf/vis-cursors", State: plugin.StateNotInstalled},
		{Name: "vis-ctags", ShortURL: "erf/vis-ctags", Installed: true, State: plugin.StateError, Error: "could not resolve host"},
	}
}

func TestRenderStatusTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderStatuses(&buf, sampleStatuses(), "table"))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "vis-highlight")
	assert.Contains(t, out, "erf/vis-cursors")
	assert.Contains(t, out, "could not resolve host")
}

func TestRenderStatusYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderStatuses(&buf, sampleStatuses(), "yaml"))

	var decoded []plugin.Status
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "vis-highlight", decoded[0].Name)
	assert.Equal(t, plugin.StateNotInstalled, decoded[1].State)
	assert.Equal(t, "could not resolve host", decoded[2].Error)
}

func TestRenderStatusesUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := renderStatuses(&buf, sampleStatuses(), "csv")
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}
