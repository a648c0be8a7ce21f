package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/popupbar/internal/model"
	"github.com/ytget/popupbar/internal/persist"
)

// run executes pipctl with args against dir and returns its output
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	verbose = false
	outputJSON = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--dir", dir}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

// seedGroup writes a group "work" with collections Foo and Bar
func seedGroup(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "work.json")
	g := persist.NewGroup(path)

	foo := []model.SlotSpec{
		{Name: "clock", Recipe: "clock"},
		{Name: "notes", Recipe: "label?text=hi", OverlayText: "N"},
	}
	_, err := persist.Save(g, "Foo", foo, model.DefaultSettings())
	require.NoError(t, err)

	east := model.DefaultSettings()
	east.Direction = model.DirectionEast
	_, err = persist.Save(g, "Bar", []model.SlotSpec{{Name: "a", Recipe: "label"}}, east)
	require.NoError(t, err)
	return path
}

func TestGroupsCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "groups")
	require.NoError(t, err)
	assert.Contains(t, out, "No groups")

	seedGroup(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{"a":1}`), 0o644))

	out, err = run(t, dir, "groups")
	require.NoError(t, err)
	assert.Contains(t, out, "work: 2 collection(s)")
	assert.NotContains(t, out, "other")
}

func TestShowCommand(t *testing.T) {
	dir := t.TempDir()
	seedGroup(t, dir)

	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "all collections",
			args:        []string{"show", "work"},
			wantContain: []string{"Group work", "Foo (PIP, south)", "1. clock  clock", "Bar (PIP, east)"},
		},
		{
			name:        "one collection",
			args:        []string{"show", "work", "Bar"},
			wantContain: []string{"Bar (PIP, east)"},
		},
		{
			name:    "unknown collection",
			args:    []string{"show", "work", "Baz"},
			wantErr: true,
		},
		{
			name:    "missing group",
			args:    []string{"show", "nope"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, dir, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContain {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestShowJSON(t *testing.T) {
	dir := t.TempDir()
	seedGroup(t, dir)

	out, err := run(t, dir, "show", "work", "--json")
	require.NoError(t, err)

	var info GroupInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "work", info.Name)
	require.Len(t, info.Collections, 2)
	assert.Equal(t, "Foo", info.Collections[0].Name)
	assert.Equal(t, "N", info.Collections[0].Slots[1].OverlayText)
}

func TestLockBlocksDelete(t *testing.T) {
	dir := t.TempDir()
	path := seedGroup(t, dir)

	_, err := run(t, dir, "lock", "work")
	require.NoError(t, err)

	_, err = run(t, dir, "delete", "work", "Foo")
	assert.ErrorIs(t, err, model.ErrGroupLocked)
	_, err = run(t, dir, "delete", "work")
	assert.ErrorIs(t, err, model.ErrGroupLocked)
	assert.FileExists(t, path)

	_, err = run(t, dir, "unlock", "work")
	require.NoError(t, err)
	_, err = run(t, dir, "delete", "work", "Foo")
	require.NoError(t, err)

	g, err := persist.LoadGroup(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bar"}, g.Names())

	_, err = run(t, dir, "delete", "work")
	require.NoError(t, err)
	assert.NoFileExists(t, path)
}

func TestDuplicateAndRename(t *testing.T) {
	dir := t.TempDir()
	seedGroup(t, dir)
	_, err := run(t, dir, "lock", "work")
	require.NoError(t, err)

	out, err := run(t, dir, "duplicate", "work", "copy")
	require.NoError(t, err)
	assert.Contains(t, out, "2 collection(s)")

	_, err = run(t, dir, "duplicate", "work", "copy")
	assert.Error(t, err, "existing targets are not overwritten")

	_, err = run(t, dir, "rename", "copy", "Foo", "Baz")
	require.NoError(t, err, "copies are unlocked")

	g, err := persist.LoadGroup(filepath.Join(dir, "copy.json"))
	require.NoError(t, err)
	assert.False(t, g.Locked)
	assert.Equal(t, []string{"Baz", "Bar"}, g.Names())
}
