package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meza/translationkeys/testutil"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("i18n", "", "")
	flags.StringP("translations", "t", "", "")
	flags.StringP("output", "o", "", "")
	flags.StringP("filename", "f", "", "")
	flags.BoolP("verbose", "v", false, "")
	flags.BoolP("quiet", "q", false, "")
	require.NoError(t, flags.Parse(args))
	return flags
}

type warnings struct {
	messages []string
}

func (w *warnings) warn(message string, keyvals ...interface{}) {
	w.messages = append(w.messages, fmt.Sprint(append([]interface{}{message}, keyvals...)...))
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, Configuration{
		I18nLocation:         "./src/i18n",
		TranslationsLocation: "./src/i18n/translations",
		OutputDirectory:      "./src/i18n",
		Filename:             "translationKeys.ts",
	}, cfg)
	assert.Equal(t, filepath.Join("src", "i18n", "translationKeys.ts"), cfg.OutputPath())
}

func TestResolveWithoutAnySource(t *testing.T) {
	cfg, err := Resolve(afero.NewMemMapFs(), Options{Flags: newFlags(t)})

	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestResolveReadsConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteJSON(t, fs, ConfigFileName, `{
		"i18nLocation": "./app/i18n",
		"filename": "keys.ts",
		"verbose": true
	}`)

	cfg, err := Resolve(fs, Options{Flags: newFlags(t)})

	require.NoError(t, err)
	assert.Equal(t, Configuration{
		I18nLocation:         "./app/i18n",
		TranslationsLocation: "./app/i18n/translations",
		OutputDirectory:      "./app/i18n",
		Filename:             "keys.ts",
		Verbose:              true,
	}, cfg)
}

func TestResolveFlagsOverrideConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteJSON(t, fs, ConfigFileName, `{
		"i18nLocation": "./from-file",
		"translationsLocation": "./from-file/strings",
		"outputDirectory": "./from-file/out",
		"filename": "file.ts"
	}`)

	cfg, err := Resolve(fs, Options{Flags: newFlags(t, "--i18n", "./from-cli", "-f", "cli.ts", "-q")})

	require.NoError(t, err)
	assert.Equal(t, "./from-cli", cfg.I18nLocation)
	assert.Equal(t, "./from-file/strings", cfg.TranslationsLocation)
	assert.Equal(t, "./from-file/out", cfg.OutputDirectory)
	assert.Equal(t, "cli.ts", cfg.Filename)
	assert.True(t, cfg.Quiet)
	assert.False(t, cfg.Verbose)
}

func TestResolveDerivesFromCliI18nLocation(t *testing.T) {
	cfg, err := Resolve(afero.NewMemMapFs(), Options{Flags: newFlags(t, "--i18n", "./locales/")})

	require.NoError(t, err)
	assert.Equal(t, "./locales/translations", cfg.TranslationsLocation)
	assert.Equal(t, "./locales/", cfg.OutputDirectory)
}

func TestResolveReadsEnvironment(t *testing.T) {
	t.Setenv("TK_FILENAME", "env.ts")
	t.Setenv("TK_OUTPUTDIRECTORY", "./env-out")

	cfg, err := Resolve(afero.NewMemMapFs(), Options{Flags: newFlags(t, "-f", "cli.ts")})

	require.NoError(t, err)
	assert.Equal(t, "cli.ts", cfg.Filename)
	assert.Equal(t, "./env-out", cfg.OutputDirectory)
}

func TestResolveConfigFileOverridesEnvironment(t *testing.T) {
	t.Setenv("TK_FILENAME", "env.ts")
	t.Setenv("TK_VERBOSE", "true")
	t.Setenv("TK_TRANSLATIONSLOCATION", "./env/strings")
	fs := afero.NewMemMapFs()
	testutil.WriteJSON(t, fs, ConfigFileName, `{"filename": "file.ts", "verbose": false}`)

	cfg, err := Resolve(fs, Options{Flags: newFlags(t)})

	require.NoError(t, err)
	assert.Equal(t, "file.ts", cfg.Filename)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "./env/strings", cfg.TranslationsLocation)
}

func TestResolveFlagsOverrideFileAndEnvironment(t *testing.T) {
	t.Setenv("TK_FILENAME", "env.ts")
	fs := afero.NewMemMapFs()
	testutil.WriteJSON(t, fs, ConfigFileName, `{"filename": "file.ts"}`)

	cfg, err := Resolve(fs, Options{Flags: newFlags(t, "-f", "cli.ts")})

	require.NoError(t, err)
	assert.Equal(t, "cli.ts", cfg.Filename)
}

func TestResolveMissingExplicitConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.Join("configs", "missing.json")

	_, err := Resolve(fs, Options{ConfigPath: path, Flags: newFlags(t)})

	var readErr *ConfigReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, path, readErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveCustomConfigPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.Join("configs", "tk.json")
	testutil.WriteJSON(t, fs, path, `{"filename": "custom.ts"}`)
	testutil.WriteJSON(t, fs, ConfigFileName, `{"filename": "ignored.ts"}`)

	cfg, err := Resolve(fs, Options{ConfigPath: path})

	require.NoError(t, err)
	assert.Equal(t, "custom.ts", cfg.Filename)
}

func TestResolveMalformedConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteJSON(t, fs, ConfigFileName, `{"filename": `)

	_, err := Resolve(fs, Options{Flags: newFlags(t)})

	var readErr *ConfigReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, ConfigFileName, readErr.Path)
	assert.ErrorContains(t, err, "Could not read from .tkrc.json")
}

func TestResolveTrimsFilenameFromOutputDirectory(t *testing.T) {
	recorder := &warnings{}

	cfg, err := Resolve(afero.NewMemMapFs(), Options{
		Flags: newFlags(t, "-o", "/jeg/er/en/fjompe.nisse"),
		Warn:  recorder.warn,
	})

	require.NoError(t, err)
	assert.Equal(t, "/jeg/er/en/", cfg.OutputDirectory)
	require.Len(t, recorder.messages, 1)
	assert.Contains(t, recorder.messages[0], "Filename detected in outputDirectory parameter: /jeg/er/en/fjompe.nisse")
}

func TestResolveDoesNotWarnForDirectories(t *testing.T) {
	recorder := &warnings{}

	_, err := Resolve(afero.NewMemMapFs(), Options{
		Flags: newFlags(t, "-o", "./generated/"),
		Warn:  recorder.warn,
	})

	require.NoError(t, err)
	assert.Empty(t, recorder.messages)
}

func TestNormalizeOutputDirectory(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		expected string
		trimmed  bool
	}{
		{name: "absolute with file", dir: "/jeg/er/en/fjompe.nisse", expected: "/jeg/er/en/", trimmed: true},
		{name: "relative with file", dir: "./kazaa/linkin_park-numb.exe", expected: "./kazaa/", trimmed: true},
		{name: "windows separators", dir: `C:\out\keys.ts`, expected: `C:\out\`, trimmed: true},
		{name: "trailing slash", dir: "./src/i18n/", expected: "./src/i18n/"},
		{name: "no extension", dir: "./src/i18n", expected: "./src/i18n"},
		{name: "dot directory", dir: "./.generated", expected: "./.generated"},
		{name: "bare file", dir: "naruto_episode_01.divx", expected: "./fallback", trimmed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, trimmed := NormalizeOutputDirectory(tt.dir, "./fallback")

			assert.Equal(t, tt.expected, actual)
			assert.Equal(t, tt.trimmed, trimmed)
		})
	}
}
