package cmd

import (
	"fmt"
	"time"

	"github.com/flicker-player/flicker/audio/speaker"
	"github.com/flicker-player/flicker/constant"
	"github.com/flicker-player/flicker/display"
	"github.com/flicker-player/flicker/history"
	"github.com/flicker-player/flicker/key"
	"github.com/flicker-player/flicker/log"
	"github.com/flicker-player/flicker/media"
	"github.com/flicker-player/flicker/media/libav"
	"github.com/flicker-player/flicker/media/tags"
	"github.com/flicker-player/flicker/player"
	"github.com/flicker-player/flicker/tui"
	"github.com/flicker-player/flicker/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)
	addPlaybackFlags(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [file]",
	Short: "Play a media file or URL",
	Long: "Play a media file or URL in the terminal.\n" +
		"Use pattern: (for example pattern:?duration=10&fps=30) to play a generated test pattern.",
	Example:           "  flicker play movie.mkv --start 1:30 --speed 1.5",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeMedia,
	Run: func(cmd *cobra.Command, args []string) {
		runPlay(cmd, args[0])
	},
}

// completeMedia completes file arguments with known container extensions.
func completeMedia(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return lo.Flatten([][]string{constant.VideoExtensions, constant.AudioExtensions}), cobra.ShellCompDirectiveFilterFileExt
}

func addPlaybackFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("speed", 1, "Initial playback speed (0.1 - 4.0)")
	cmd.Flags().Int("volume", 100, "Initial volume (0 - 100)")
	cmd.Flags().BoolP("mute", "m", false, "Start muted")
	cmd.Flags().Bool("no-audio", false, "Do not play the audio track")
	cmd.Flags().StringP("start", "s", "", "Start position, as seconds, MM:SS or HH:MM:SS")
	cmd.Flags().BoolP("paused", "p", false, "Load the media without starting playback")
	cmd.Flags().StringP("title", "t", "", "Title to display instead of the file name")
	cmd.Flags().BoolP("resume", "r", false, "Continue from the position remembered on the last quit")
}

// applyPlaybackFlags overrides the configuration with the flags the user set.
func applyPlaybackFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	if flags.Changed("speed") {
		viper.Set(key.PlayerSpeed, lo.Must(flags.GetFloat64("speed")))
	}
	if flags.Changed("volume") {
		viper.Set(key.PlayerVolume, lo.Must(flags.GetInt("volume")))
	}
	if flags.Changed("mute") {
		viper.Set(key.PlayerMuted, lo.Must(flags.GetBool("mute")))
	}
	if lo.Must(flags.GetBool("no-audio")) {
		viper.Set(key.PlayerAudio, false)
	}
}

func runPlay(cmd *cobra.Command, location string) {
	CheckTerminal()
	applyPlaybackFlags(cmd)

	var start float64
	if s := lo.Must(cmd.Flags().GetString("start")); s != "" {
		parsed, err := util.ParseTime(s)
		if err != nil {
			handleErr(fmt.Errorf("invalid start position: %w", err))
		}
		start = parsed
	} else if lo.Must(cmd.Flags().GetBool("resume")) {
		if position, ok := history.Position(location); ok {
			log.Infof("resuming %s at %s", location, util.FormatTime(position))
			start = position
		}
	}

	title := lo.Must(cmd.Flags().GetString("title"))
	if title == "" && !media.IsPattern(location) && !media.IsURL(location) {
		if t, err := tags.Read(location); err == nil {
			title = t.Display("")
		}
	}

	screen := display.NewLatest()
	opts := player.OptionsFromConfig()
	opts.Display = screen

	var device *speaker.Device
	if opts.Audio {
		device = speaker.New(time.Duration(viper.GetInt(key.AudioBuffer)) * time.Millisecond)
		opts.Device = device
	}

	p := player.New(media.Mux{Default: media.OpenerFunc(libav.Open)}, opts)

	err := tui.Run(p, screen, &tui.Options{
		Location: location,
		Title:    title,
		Start:    start,
		Paused:   lo.Must(cmd.Flags().GetBool("paused")),
	})

	if err == nil && p.HasMedia() && viper.GetBool(key.HistorySaveOnQuit) {
		saveErr := history.Save(
			location,
			title,
			p.Position(),
			p.Duration(),
			float64(viper.GetInt(key.HistoryMinimum)),
			p.HasEnded(),
		)
		if saveErr != nil {
			log.Warnf("save history: %s", saveErr)
		}
	}

	if closeErr := p.Close(); closeErr != nil {
		log.Warnf("close player: %s", closeErr)
	}
	if device != nil {
		if closeErr := device.Close(); closeErr != nil {
			log.Warnf("close audio device: %s", closeErr)
		}
	}

	stats := screen.Stats()
	log.Infof("frames presented=%d skipped by renderer=%d", stats.Presented, stats.Overwritten)

	handleErr(err)
}
