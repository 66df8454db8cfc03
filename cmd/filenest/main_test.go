package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	root := newRootCommand()

	expected := []string{"organize", "watch", "categories", "status", "protect", "unprotect", "history", "config"}
	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, names[name], "missing subcommand %s", name)
	}
}

func TestShouldSkipConfig(t *testing.T) {
	root := newRootCommand()

	configCmd, _, err := root.Find([]string{"config", "init"})
	require.NoError(t, err)
	assert.True(t, shouldSkipConfig(configCmd))

	organizeCmd, _, err := root.Find([]string{"organize"})
	require.NoError(t, err)
	assert.False(t, shouldSkipConfig(organizeCmd))
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Name", "Count"},
		[][]string{{"Images", "3"}, {"Audio", "1"}},
		[]columnAlignment{alignLeft, alignRight},
	)

	assert.Contains(t, out, "Images")
	assert.Contains(t, out, "Audio")
	assert.True(t, strings.Contains(out, "Name"))
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.0 KiB", humanSize(1024))
	assert.Equal(t, "1.5 MiB", humanSize(1536*1024))
}
