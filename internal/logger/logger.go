// Package logger provides the console output helpers shared by the commands.
package logger

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

type Logger struct {
	out   *charmlog.Logger
	err   *charmlog.Logger
	quiet bool
	debug bool
}

func New(out io.Writer, err io.Writer, quiet bool, debug bool) *Logger {
	return &Logger{
		out:   newCharmLogger(out),
		err:   newCharmLogger(err),
		quiet: quiet,
		debug: debug,
	}
}

func newCharmLogger(w io.Writer) *charmlog.Logger {
	logger := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.DebugLevel,
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetColorProfile(colorProfile(w))
	logger.SetStyles(levelStyles())
	return logger
}

// colorProfile honours NO_COLOR and CLICOLOR_FORCE for the given writer.
func colorProfile(w io.Writer) termenv.Profile {
	return termenv.NewOutput(w).EnvColorProfile()
}

// levelStyles spells the level labels out in full.
func levelStyles() *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	styles.Levels[charmlog.DebugLevel] = levelLabel("DEBUG", "63")
	styles.Levels[charmlog.WarnLevel] = levelLabel("WARN", "192")
	styles.Levels[charmlog.ErrorLevel] = levelLabel("ERROR", "204")
	styles.Key = lipgloss.NewStyle().Faint(true)
	return styles
}

func levelLabel(label string, color string) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(label).
		Bold(true).
		MaxWidth(len(label)).
		Foreground(lipgloss.Color(color))
}

func (logger *Logger) Quiet() bool {
	return logger.quiet
}

func (logger *Logger) Verbose() bool {
	return logger.debug
}

// Log prints a normal progress message. Quiet mode hides it unless forceShow is set or
// verbose output is on.
func (logger *Logger) Log(message string, forceShow bool) {
	if logger.quiet && !forceShow && !logger.debug {
		return
	}
	logger.out.Print(message)
}

func (logger *Logger) Debug(message string, keyvals ...interface{}) {
	if !logger.debug {
		return
	}
	logger.out.Debug(message, keyvals...)
}

// Warn always reaches stderr, quiet or not.
func (logger *Logger) Warn(message string, keyvals ...interface{}) {
	logger.err.Warn(message, keyvals...)
}

func (logger *Logger) Error(message string) {
	logger.err.Print(message)
}

func (logger *Logger) Errorf(format string, args ...any) {
	logger.err.Printf(format, args...)
}
