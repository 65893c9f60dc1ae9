package cmd

import (
	"encoding/json"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dustin/go-humanize"
	"github.com/flicker-player/flicker/color"
	"github.com/flicker-player/flicker/history"
	"github.com/flicker-player/flicker/icon"
	"github.com/flicker-player/flicker/style"
	"github.com/flicker-player/flicker/util"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	historyCmd.Flags().StringP("forget", "f", "", "Forget the remembered position of a location")
	historyCmd.Flags().Bool("play", false, "Choose an entry and resume its playback")
	addPlaybackFlags(historyCmd)
	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:   "history [query]",
	Short: "List remembered playback positions",
	Long: "List the positions playback was left at, most recent first.\n" +
		"A query narrows the list down to titles or locations that fuzzily match it.",
	Example: "  flicker history --play concert",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if location := lo.Must(cmd.Flags().GetString("forget")); location != "" {
			handleErr(history.Remove(location))
			cmd.Printf("%s %s forgotten\n", icon.Get(icon.Success), location)
			return
		}

		var query string
		if len(args) > 0 {
			query = args[0]
		}

		entries, err := historyEntries(query)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("Nothing to resume"))
			return
		}

		if lo.Must(cmd.Flags().GetBool("play")) {
			resumeEntry(cmd, entries)
			return
		}

		for _, e := range entries {
			cmd.Printf("%s %s\n", icon.Get(icon.Film), style.Fg(color.Purple)(e.String()))
			cmd.Printf("  %s %s\n", style.Faint(e.Location), style.Faint("("+humanize.Time(e.Updated)+")"))
		}
		cmd.Printf("\n%s\n", style.Faint(util.Quantify(len(entries), "entry", "entries")))
	},
}

// historyEntries returns the remembered entries matching query, most recent first.
func historyEntries(query string) ([]*history.Entry, error) {
	saved, err := history.Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Filter(lo.Values(saved), func(e *history.Entry, _ int) bool {
		if e.Title == "" {
			e.Title = util.FileStem(e.Location)
		}
		return query == "" ||
			fuzzy.MatchNormalizedFold(query, e.Title) ||
			fuzzy.MatchNormalizedFold(query, e.Location)
	})

	slices.SortFunc(entries, func(a, b *history.Entry) int {
		return b.Updated.Compare(a.Updated)
	})
	return entries, nil
}

func resumeEntry(cmd *cobra.Command, entries []*history.Entry) {
	options := lo.Map(entries, func(e *history.Entry, _ int) string {
		return e.String()
	})

	var chosen int
	handleErr(survey.AskOne(&survey.Select{
		Message: "Resume",
		Options: options,
	}, &chosen))

	entry := entries[chosen]
	handleErr(cmd.Flags().Set("resume", "true"))
	if !cmd.Flags().Changed("title") {
		handleErr(cmd.Flags().Set("title", entry.Title))
	}
	runPlay(cmd, entry.Location)
}
