// Package cmd implements the command-line interface for flicker.
package cmd

import (
	"os"
	"strings"

	"github.com/flicker-player/flicker/color"
	"github.com/flicker-player/flicker/constant"
	"github.com/flicker-player/flicker/icon"
	"github.com/flicker-player/flicker/key"
	"github.com/flicker-player/flicker/log"
	"github.com/flicker-player/flicker/style"
	"github.com/flicker-player/flicker/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd plays its argument like the play command does. Without one it prints help.
var rootCmd = &cobra.Command{
	Use:   constant.Flicker + " [file]",
	Short: "A terminal media player",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal media player"),
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeMedia,
	SilenceErrors:     true,
	SilenceUsage:      true,
	Run: func(cmd *cobra.Command, args []string) {
		switch {
		case lo.Must(cmd.Flags().GetBool("version")):
			versionCmd.Run(versionCmd, nil)
		case len(args) == 0:
			handleErr(cmd.Help())
		default:
			runPlay(cmd, args[0])
		}
	},
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the version")
	addPlaybackFlags(rootCmd)

	flags := rootCmd.PersistentFlags()
	flags.StringP("icons", "I", "", "Icon variant, one of "+strings.Join(icon.AvailableVariants(), ", "))
	lo.Must0(viper.BindPFlag(key.IconsVariant, flags.Lookup("icons")))
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveNoFileComp
	}))

	help := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		help(cmd, args)
		version.Notify(cmd.OutOrStdout())
	})
}

// Execute runs the command named on the command line.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	handleErr(rootCmd.Execute())
}

// handleErr logs err, prints it to stderr and exits.
func handleErr(err error) {
	if err == nil {
		return
	}

	log.Error(err)
	rootCmd.PrintErrf("%s %s\n", icon.Get(icon.Fail), strings.TrimSpace(err.Error()))
	os.Exit(1)
}
