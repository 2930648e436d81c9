package translationkeys

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/meza/translationkeys/internal/i18n"
)

func translateDefaultHelpFacilities(rootCmd *cobra.Command) {
	subcommands := rootCmd.Commands()
	allCommands := make([]*cobra.Command, 0, len(subcommands)+1)
	allCommands = append(allCommands, rootCmd)
	allCommands = append(allCommands, subcommands...)

	for _, cmd := range allCommands {
		cmd.InitDefaultHelpFlag()
		cmd.Flags().Lookup("help").Usage = i18n.T("cmd.help.template", i18n.Tvars{
			Data: &i18n.TData{"command": cmd.Name()},
		})
	}

	rootCmd.InitDefaultHelpCmd()
	helpCmd, _, err := rootCmd.Find([]string{"help"})
	if err != nil {
		return
	}

	helpCmd.Short = i18n.T("cmd.help.usage.short")
	helpCmd.Long = i18n.T("cmd.help.usage.long", i18n.Tvars{
		Data: &i18n.TData{"appName": rootCmd.Name()},
	})
	helpCmd.Run = func(c *cobra.Command, args []string) {
		cmd, rest, err := c.Root().Find(args)
		if cmd == nil || err != nil || len(rest) > 0 {
			c.PrintErrln(i18n.T("cmd.help.error", i18n.Tvars{
				Data: &i18n.TData{"topic": fmt.Sprintf("%#q", args)},
			}) + "\n")
			cobra.CheckErr(c.Root().Usage())
			return
		}
		cmd.InitDefaultHelpFlag()
		cmd.InitDefaultVersionFlag()
		cobra.CheckErr(cmd.Help())
	}
}

// fixFlagUsageAlignment wraps flag descriptions to the terminal width. Outside a terminal the
// width is 0 and pflag does not wrap.
func fixFlagUsageAlignment(rootCmd *cobra.Command) {
	width, _, _ := term.GetSize(int(os.Stdout.Fd()))
	usageTemplate := rootCmd.UsageTemplate()
	usageTemplate = strings.ReplaceAll(usageTemplate, ".FlagUsages", fmt.Sprintf(".FlagUsagesWrapped %d", width))
	rootCmd.SetUsageTemplate(usageTemplate)
}
