package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meza/translationkeys/testutil"
)

func TestBuildFlattensEveryLocale(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteJSON(t, fs, filepath.Join("localise", "en-GB", "app.json"), `{"app": {"title": "Title <b>", "nav": {"home": "Home"}}}`)
	testutil.WriteJSON(t, fs, filepath.Join("localise", "en-GB", "cmd.json"), `{"cmd": {"help": "Help"}}`)
	testutil.WriteJSON(t, fs, filepath.Join("localise", "nb-NO", "app.json"), `{"app": {"title": "Tittel"}}`)
	testutil.WriteJSON(t, fs, filepath.Join("localise", "README.md"), `ignored`)

	require.NoError(t, build(context.Background(), fs, "localise", "lang"))

	english, err := afero.ReadFile(fs, filepath.Join("lang", "en-GB.json"))
	require.NoError(t, err)
	assert.Equal(t, `{
  "app.nav.home": "Home",
  "app.title": "Title <b>",
  "cmd.help": "Help"
}
`, string(english))

	norwegian, err := afero.ReadFile(fs, filepath.Join("lang", "nb-NO.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"app.title": "Tittel"}`, string(norwegian))
}

func TestBuildRejectsConflicts(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteJSON(t, fs, filepath.Join("localise", "en-GB", "a.json"), `{"app": "text"}`)
	testutil.WriteJSON(t, fs, filepath.Join("localise", "en-GB", "b.json"), `{"app": {"title": "Title"}}`)

	err := build(context.Background(), fs, "localise", "lang")

	assert.ErrorContains(t, err, "failed to compile en-GB")
	assert.ErrorContains(t, err, "both as text and as a group: app")
}

func TestBuildFailsOnInvalidSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteJSON(t, fs, filepath.Join("localise", "en-GB", "a.json"), `{"app": `)

	assert.Error(t, build(context.Background(), fs, "localise", "lang"))
}

func TestBuildFailsWithoutSourceDir(t *testing.T) {
	err := build(context.Background(), afero.NewMemMapFs(), "localise", "lang")

	assert.ErrorContains(t, err, "failed to read localise")
}
