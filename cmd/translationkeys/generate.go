package translationkeys

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/meza/translationkeys/internal/config"
	"github.com/meza/translationkeys/internal/generator"
	"github.com/meza/translationkeys/internal/i18n"
	"github.com/meza/translationkeys/internal/logger"
	"github.com/meza/translationkeys/internal/perf"
	"github.com/meza/translationkeys/internal/translations"
)

type generateDeps struct {
	fs         afero.Fs
	generate   func(context.Context, config.Configuration, generator.Deps) (generator.Result, error)
	write      func(afero.Fs, string, *translations.Node) error
	workingDir func() (string, error)
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts rootOptions, deps generateDeps) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Warnings raised while resolving go to stderr before quiet/verbose are known.
	resolveLog := logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), false, false)
	cfg, err := config.Resolve(deps.fs, config.Options{
		ConfigPath: opts.ConfigPath,
		Flags:      cmd.Flags(),
		Warn:       resolveLog.Warn,
	})
	if err != nil {
		return err
	}

	log := logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Quiet, cfg.Verbose)
	log.Log(i18n.T("app.generating"), false)
	logConfiguration(log, cfg)

	result, err := deps.generate(ctx, cfg, generator.Deps{Fs: deps.fs, Logger: log})
	if err != nil {
		return err
	}

	outputPath := cfg.OutputPath()
	if err := deps.write(deps.fs, outputPath, result.Keys); err != nil {
		return err
	}
	log.Log(i18n.T("app.written", i18n.Tvars{
		Data: &i18n.TData{"path": outputPath},
	}), false)

	if log.Verbose() {
		log.Debug(i18n.T("app.perf.timings"))
		for _, line := range perf.Summary() {
			log.Debug(line)
		}
		if total, ok := generationTime(perf.GetSpans()); ok {
			log.Debug(i18n.T("app.perf.total", i18n.Tvars{
				Data: &i18n.TData{"duration": total.Round(time.Microsecond).String()},
			}))
		}
	}

	if opts.Perf {
		exportPerformanceLog(log, opts, deps)
	}
	return nil
}

// generationTime prefers the app.generate span and falls back to the span bounds when the
// generator did not record one.
func generationTime(spans []perf.SpanSnapshot) (time.Duration, bool) {
	if span, ok := perf.FindSpanByName(spans, "app.generate"); ok {
		return span.Duration(), true
	}
	return perf.TotalDuration(spans)
}

func logConfiguration(log *logger.Logger, cfg config.Configuration) {
	if !log.Verbose() {
		return
	}
	log.Debug(i18n.T("app.config.title"))
	rows := []struct {
		label string
		value any
	}{
		{i18n.T("app.config.i18n"), cfg.I18nLocation},
		{i18n.T("app.config.translations"), cfg.TranslationsLocation},
		{i18n.T("app.config.output"), cfg.OutputDirectory},
		{i18n.T("app.config.filename"), cfg.Filename},
		{i18n.T("app.config.verbose"), cfg.Verbose},
		{i18n.T("app.config.quiet"), cfg.Quiet},
	}
	for _, row := range rows {
		log.Debug(fmt.Sprintf("%-18s %v", row.label+":", row.value))
	}
}

// exportPerformanceLog never fails the run; the generated file is already written.
func exportPerformanceLog(log *logger.Logger, opts rootOptions, deps generateDeps) {
	baseDir, err := deps.workingDir()
	if err != nil {
		baseDir = ""
	}

	path, err := perf.ExportToFile(deps.fs, opts.PerfOutDir, baseDir, perf.GetPerformanceLog())
	if err != nil {
		log.Warn(i18n.T("app.perf.failed"), "error", err)
		return
	}
	log.Log(i18n.T("app.perf.written", i18n.Tvars{
		Data: &i18n.TData{"path": path},
	}), false)
}
