// Package config resolves the generator configuration from flags, the .tkrc.json file,
// TK_* environment variables and defaults, in that order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/meza/translationkeys/internal/i18n"
	"github.com/meza/translationkeys/internal/perf"
)

const (
	ConfigFileName = ".tkrc.json"
	EnvPrefix      = "TK"

	DefaultI18nLocation = "./src/i18n"
	DefaultFilename     = "translationKeys.ts"

	translationsDirName = "translations"
)

// Keys shared by the config file, the flag bindings and the environment.
const (
	KeyI18nLocation         = "i18nLocation"
	KeyTranslationsLocation = "translationsLocation"
	KeyOutputDirectory      = "outputDirectory"
	KeyFilename             = "filename"
	KeyVerbose              = "verbose"
	KeyQuiet                = "quiet"
)

// FlagNames maps configuration keys to the command line flags that set them.
var FlagNames = map[string]string{
	KeyI18nLocation:         "i18n",
	KeyTranslationsLocation: "translations",
	KeyOutputDirectory:      "output",
	KeyFilename:             "filename",
	KeyVerbose:              "verbose",
	KeyQuiet:                "quiet",
}

type Configuration struct {
	I18nLocation         string `json:"i18nLocation" mapstructure:"i18nLocation"`
	TranslationsLocation string `json:"translationsLocation" mapstructure:"translationsLocation"`
	OutputDirectory      string `json:"outputDirectory" mapstructure:"outputDirectory"`
	Filename             string `json:"filename" mapstructure:"filename"`
	Verbose              bool   `json:"verbose" mapstructure:"verbose"`
	Quiet                bool   `json:"quiet" mapstructure:"quiet"`
}

// OutputPath is where the generated module is written.
func (c Configuration) OutputPath() string {
	return filepath.Join(c.OutputDirectory, c.Filename)
}

// Defaults returns the configuration used when nothing else is supplied.
func Defaults() Configuration {
	return withDerivedDefaults(Configuration{I18nLocation: DefaultI18nLocation})
}

// withDerivedDefaults fills every empty field. Translations and output locations derive
// from the i18n location.
func withDerivedDefaults(cfg Configuration) Configuration {
	if cfg.I18nLocation == "" {
		cfg.I18nLocation = DefaultI18nLocation
	}
	if cfg.TranslationsLocation == "" {
		cfg.TranslationsLocation = joinLocation(cfg.I18nLocation, translationsDirName)
	}
	if cfg.OutputDirectory == "" {
		cfg.OutputDirectory = cfg.I18nLocation
	}
	if cfg.Filename == "" {
		cfg.Filename = DefaultFilename
	}
	return cfg
}

// joinLocation appends a segment while keeping a leading "./" the way users write it.
func joinLocation(base string, segment string) string {
	return strings.TrimRight(base, `/\`) + "/" + segment
}

type Options struct {
	// ConfigPath overrides ConfigFileName.
	ConfigPath string
	// Flags holds the flags named in FlagNames. Only flags the user changed take precedence.
	Flags *pflag.FlagSet
	// Warn receives non-fatal remarks about the resolved values.
	Warn func(message string, keyvals ...interface{})
}

// Resolve builds the configuration. A missing .tkrc.json is fine. An explicit ConfigPath
// that does not exist, or any unreadable or malformed file, is a *ConfigReadError.
func Resolve(fs afero.Fs, opts Options) (Configuration, error) {
	region := perf.StartRegion("io.config.resolve")
	defer region.End()

	v := viper.New()
	v.SetFs(fs)

	if opts.Flags != nil {
		for key, name := range FlagNames {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Configuration{}, err
			}
		}
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = ConfigFileName
	}

	exists, err := afero.Exists(fs, configPath)
	if err != nil {
		return Configuration{}, &ConfigReadError{Path: configPath, Err: err}
	}
	if !exists && opts.ConfigPath != "" {
		return Configuration{}, &ConfigReadError{Path: configPath, Err: os.ErrNotExist}
	}
	if exists {
		v.SetConfigFile(configPath)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return Configuration{}, &ConfigReadError{Path: configPath, Err: err}
		}
	}

	if err := applyEnvironment(v); err != nil {
		return Configuration{}, err
	}

	cfg := withDerivedDefaults(Configuration{
		I18nLocation:         v.GetString(KeyI18nLocation),
		TranslationsLocation: v.GetString(KeyTranslationsLocation),
		OutputDirectory:      v.GetString(KeyOutputDirectory),
		Filename:             v.GetString(KeyFilename),
		Verbose:              v.GetBool(KeyVerbose),
		Quiet:                v.GetBool(KeyQuiet),
	})

	normalized, trimmed := NormalizeOutputDirectory(cfg.OutputDirectory, cfg.I18nLocation)
	if trimmed && opts.Warn != nil {
		opts.Warn(i18n.T("config.filename_in_output", i18n.Tvars{
			Data: &i18n.TData{"value": cfg.OutputDirectory},
		}), "using", normalized)
	}
	cfg.OutputDirectory = normalized

	return cfg, nil
}

// applyEnvironment feeds TK_* variables in as defaults for keys the config file leaves unset,
// so they rank below both the flags and the file.
func applyEnvironment(v *viper.Viper) error {
	env := viper.New()
	env.SetEnvPrefix(EnvPrefix)

	for key := range FlagNames {
		if err := env.BindEnv(key); err != nil {
			return err
		}
		if v.InConfig(key) || !env.IsSet(key) {
			continue
		}
		v.SetDefault(key, env.Get(key))
	}
	return nil
}

// NormalizeOutputDirectory strips a trailing file name (a last segment with an extension)
// from dir, keeping the separator before it. When nothing is left, fallback is used.
// The bool reports whether dir was changed.
func NormalizeOutputDirectory(dir string, fallback string) (string, bool) {
	separator := strings.LastIndexAny(dir, `/\`)
	last := dir[separator+1:]
	if !looksLikeFilename(last) {
		return dir, false
	}

	trimmed := dir[:separator+1]
	if trimmed == "" {
		return fallback, true
	}
	return trimmed, true
}

func looksLikeFilename(segment string) bool {
	ext := filepath.Ext(segment)
	return ext != "" && ext != "." && ext != segment
}
