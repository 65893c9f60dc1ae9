package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"

	"github.com/dustin/go-humanize"
	"github.com/flicker-player/flicker/color"
	"github.com/flicker-player/flicker/history"
	"github.com/flicker-player/flicker/icon"
	"github.com/flicker-player/flicker/key"
	"github.com/flicker-player/flicker/media"
	"github.com/flicker-player/flicker/media/libav"
	"github.com/flicker-player/flicker/probe"
	"github.com/flicker-player/flicker/style"
	"github.com/flicker-player/flicker/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	probeCmd.Flags().Bool("no-cache", false, "Ignore the probe cache")
	probeCmd.SetOut(os.Stdout)

	probeCmd.AddCommand(probeSchemaCmd)
	probeSchemaCmd.Flags().Bool("history", false, "Generate the JSON Schema for history entries instead")
}

// probeSchemaCmd describes the JSON output of probe --json and history --json.
var probeSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON Schema of the probe output",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return filepath.Base(t.PkgPath()) + "." + t.Name()
		}

		var schema *jsonschema.Schema
		if lo.Must(cmd.Flags().GetBool("history")) {
			schema = reflector.Reflect([]*history.Entry{})
		} else {
			schema = reflector.Reflect([]probe.Result{})
		}

		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(schema))
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe [files...]",
	Short: "Display stream information of media files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			cached = viper.GetBool(key.ProbeCache) && !lo.Must(cmd.Flags().GetBool("no-cache"))
			prober = probe.New(media.Mux{Default: media.OpenerFunc(libav.Open)}, cached)
		)

		var results []probe.Result
		for _, location := range args {
			result, err := prober.Probe(location)
			handleErr(err)
			results = append(results, result)
		}

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(results))
			return
		}

		label := style.Fg(color.Blue)
		for i, r := range results {
			cmd.Printf("%s %s\n", icon.Get(icon.Film), style.Bold(style.Fg(color.Purple)(r.Title())))
			cmd.Printf("%s %s\n", label("Path:    "), r.Info.Path)
			cmd.Printf("%s %s\n", label("Duration:"), util.FormatTime(r.Info.Duration))
			if r.Size > 0 {
				cmd.Printf("%s %s %s\n", label("Size:    "), humanize.Bytes(uint64(r.Size)), style.Faint("modified "+humanize.Time(r.ModTime)))
			}
			cmd.Printf("%s %dx%d %s @ %.3f fps\n", label("Video:   "), r.Info.Width, r.Info.Height, r.Info.VideoCodec, r.Info.FrameRate)
			if r.Info.HasAudio {
				cmd.Printf("%s %s\n", label("Audio:   "), r.Info.AudioCodec)
			} else {
				cmd.Printf("%s %s\n", label("Audio:   "), style.Faint("none"))
			}
			if r.Tags.Artist != "" || r.Tags.Album != "" {
				cmd.Printf("%s %s %s\n", label("Tags:    "), r.Tags.Artist, style.Faint(r.Tags.Album))
			}

			if i < len(results)-1 {
				cmd.Println()
			}
		}
	},
}
