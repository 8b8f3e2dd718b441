package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeEditor installs a shell script as $EDITOR for the test.
func writeEditor(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", path)
}

func TestGetEditorPrefersVisual(t *testing.T) {
	t.Setenv("VISUAL", "code --wait")
	t.Setenv("EDITOR", "vim")
	assert.Equal(t, "code --wait", getEditor())

	t.Setenv("VISUAL", "")
	assert.Equal(t, "vim", getEditor())

	t.Setenv("EDITOR", "")
	assert.Equal(t, "", getEditor())
}

func TestEditInEditorNoEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	_, err := EditInEditor([]byte("x"), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EDITOR not set")
}

func TestEditInEditorUnchanged(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "true")

	out, err := EditInEditor([]byte("name: Fries\n"), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, "name: Fries\n", string(out))
}

func TestEditInEditorNonZeroExit(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "false")

	_, err := EditInEditor([]byte("x"), ".yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "editor exited with status 1")
}

func TestRunEditorErrors(t *testing.T) {
	err := runEditor("   ", "/tmp/x.yaml")
	assert.EqualError(t, err, "empty editor command")

	err = runEditor("no-such-editor-for-menu-tests", "/tmp/x.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running editor")
}

func TestEditFieldsRoundTrip(t *testing.T) {
	writeEditor(t, `sed -i 's/5.99/6.49/; s/^name: .*/name: Double Burger/' "$1"`)

	got, err := EditFields(ProductFields{
		Name:        "Classic Burger",
		Description: "Beef, lettuce, cheese",
		Price:       "5.99",
		Category:    "burgers",
	})
	require.NoError(t, err)
	assert.Equal(t, ProductFields{
		Name:        "Double Burger",
		Description: "Beef, lettuce, cheese",
		Price:       "6.49",
		Category:    "burgers",
	}, got)
}

func TestEditFieldsRejectsUnknownKeys(t *testing.T) {
	writeEditor(t, `echo 'colour: red' >> "$1"`)

	_, err := EditFields(ProductFields{Name: "Fries"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing edited product")
}
