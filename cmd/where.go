package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/flicker-player/flicker/color"
	"github.com/flicker-player/flicker/style"
	"github.com/flicker-player/flicker/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// location is a path the where command can print. Hidden locations are
// single files inside a listed directory.
type location struct {
	flag   string
	short  mo.Option[string]
	path   func() string
	hidden bool
}

var locations = []location{
	{flag: "config", short: mo.Some("c"), path: where.Config},
	{flag: "logs", short: mo.Some("l"), path: where.Logs},
	{flag: "cache", path: where.Cache},
	{flag: "probes", short: mo.Some("p"), path: where.Probes, hidden: true},
	{flag: "history", path: where.History, hidden: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)
	whereCmd.SetOut(os.Stdout)

	flags := whereCmd.Flags()
	for _, l := range locations {
		flags.BoolP(l.flag, l.short.OrEmpty(), false, "Print only the "+l.flag+" path")
		if l.hidden {
			lo.Must0(flags.MarkHidden(l.flag))
		}
	}
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string {
		return l.flag
	})...)

	flags.BoolP("all", "a", false, "Include the paths of individual data files")
	flags.BoolP("json", "j", false, "Format the output as JSON")
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where flicker keeps its config, logs and caches",
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		if l, ok := lo.Find(locations, func(l location) bool {
			return lo.Must(flags.GetBool(l.flag))
		}); ok {
			cmd.Println(l.path())
			return
		}

		all := lo.Must(flags.GetBool("all"))
		shown := lo.Filter(locations, func(l location, _ int) bool {
			return all || !l.hidden
		})

		if lo.Must(flags.GetBool("json")) {
			paths := lo.SliceToMap(shown, func(l location) (string, string) {
				return l.flag, l.path()
			})
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(paths))
			return
		}

		heading := style.New().Bold(true).Foreground(color.HiPurple).Render
		blocks := lo.Map(shown, func(l location, _ int) string {
			title := strings.ToUpper(l.flag[:1]) + l.flag[1:] + "?"
			return heading(title) + " " + style.Fg(color.Yellow)("--"+l.flag) + "\n" + l.path()
		})
		cmd.Println(strings.Join(blocks, "\n\n"))
	},
}
