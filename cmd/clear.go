package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/dustin/go-humanize"
	"github.com/flicker-player/flicker/icon"
	"github.com/flicker-player/flicker/style"
	"github.com/flicker-player/flicker/util"
	"github.com/flicker-player/flicker/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

// clearTarget is a file or directory the clear command can remove.
type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"probe cache", "probes", mo.Some("p"), where.Probes},
	{"logs directory", "logs", mo.Some("l"), where.Logs},
	{"playback history", "history", mo.Some("s"), where.History},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

// clearCmd removes caches, logs and the playback history.
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove caches, logs or the playback history",
	Run: func(cmd *cobra.Command, args []string) {
		var anyCleared bool

		doClear := func(what string) bool {
			return lo.Must(cmd.Flags().GetBool(what))
		}

		for _, target := range clearTargets {
			if !doClear(target.argLong) {
				continue
			}
			anyCleared = true

			e := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			freed, err := util.Delete(target.location())
			e()

			if errors.Is(err, fs.ErrNotExist) {
				fmt.Printf("%s %s is already empty\n", icon.Get(icon.Success), util.Capitalize(target.name))
				continue
			}
			handleErr(err)
			fmt.Printf("%s %s cleared %s\n", icon.Get(icon.Success), util.Capitalize(target.name), style.Faint("("+humanize.Bytes(uint64(freed))+")"))
		}

		if !anyCleared {
			handleErr(cmd.Help())
		}
	},
}
