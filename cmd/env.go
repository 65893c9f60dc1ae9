package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/flicker-player/flicker/color"
	"github.com/flicker-player/flicker/config"
	"github.com/flicker-player/flicker/style"
	"github.com/flicker-player/flicker/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envVariable is an environment variable the application reads, with the value used when it is unset.
type envVariable struct {
	name     string
	fallback string
}

func envVariables() []envVariable {
	vars := lo.Map(config.EnvExposed, func(k string, _ int) envVariable {
		field := config.Default[k]
		return envVariable{name: field.Env(), fallback: fmt.Sprint(field.Value)}
	})
	vars = append(vars,
		envVariable{name: where.EnvConfigPath, fallback: "platform config directory"},
		envVariable{name: where.EnvCachePath, fallback: "platform cache directory"},
	)

	slices.SortFunc(vars, func(a, b envVariable) int {
		return strings.Compare(a.name, b.name)
	})
	return vars
}

// envCmd lists the environment variables that override configuration fields.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long:  "Display the environment variables that override configuration fields, with their current values.",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		for _, env := range envVariables() {
			value, present := os.LookupEnv(env.name)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(env.name))
			cmd.Print("=")

			if present {
				cmd.Println(style.Fg(color.Green)(value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset") + " " + style.Faint("(default "+env.fallback+")"))
			}
		}
	},
}
