// Package translationkeys wires the command line interface.
package translationkeys

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/meza/translationkeys/cmd/translationkeys/version"
	"github.com/meza/translationkeys/internal/config"
	"github.com/meza/translationkeys/internal/constants"
	"github.com/meza/translationkeys/internal/environment"
	"github.com/meza/translationkeys/internal/generator"
	"github.com/meza/translationkeys/internal/i18n"
	"github.com/meza/translationkeys/internal/output"
)

type rootOptions struct {
	ConfigPath string
	Perf       bool
	PerfOutDir string
}

func Command() *cobra.Command {
	return newCommand(generateDeps{
		fs:         afero.NewOsFs(),
		generate:   generator.Generate,
		write:      output.Write,
		workingDir: os.Getwd,
	})
}

func newCommand(deps generateDeps) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     constants.CommandName,
		Short:   i18n.T("app.description"),
		Long:    i18n.T("app.long_description"),
		Version: environment.AppVersion(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd, *opts, deps)
		},
	}
	cobra.MousetrapHelpText = "" // allow the app to run in windows by clicking the exe

	flags := rootCmd.Flags()
	flags.String(config.FlagNames[config.KeyI18nLocation], "", i18n.T("cmd.root.flag.i18n"))
	flags.StringP(config.FlagNames[config.KeyTranslationsLocation], "t", "", i18n.T("cmd.root.flag.translations"))
	flags.StringP(config.FlagNames[config.KeyOutputDirectory], "o", "", i18n.T("cmd.root.flag.output"))
	flags.StringP(config.FlagNames[config.KeyFilename], "f", "", i18n.T("cmd.root.flag.filename"))
	flags.BoolP(config.FlagNames[config.KeyVerbose], "v", false, i18n.T("cmd.root.flag.verbose"))
	flags.BoolP(config.FlagNames[config.KeyQuiet], "q", false, i18n.T("cmd.root.flag.quiet"))
	flags.StringVar(&opts.ConfigPath, "config", "", i18n.T("cmd.root.flag.config"))
	flags.BoolVar(&opts.Perf, "perf", false, i18n.T("cmd.root.flag.perf"))
	flags.StringVar(&opts.PerfOutDir, "perf-out-dir", "", i18n.T("cmd.root.flag.perf_out_dir"))

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(version.Command())

	translateDefaultHelpFacilities(rootCmd)
	fixFlagUsageAlignment(rootCmd)

	return rootCmd
}

// Execute runs the command line with args. Interrupts cancel ctx.
func Execute(ctx context.Context, args []string) error {
	rootCmd := Command()
	rootCmd.SetArgs(args)

	return fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(environment.AppVersion()),
		fang.WithNotifySignal(os.Interrupt),
	)
}
