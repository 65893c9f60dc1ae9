// Package cmd implements the command-line interface for flicker.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flicker-player/flicker/color"
	"github.com/flicker-player/flicker/config"
	"github.com/flicker-player/flicker/constant"
	"github.com/flicker-player/flicker/filesystem"
	"github.com/flicker-player/flicker/icon"
	"github.com/flicker-player/flicker/style"
	"github.com/flicker-player/flicker/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

var errNoKey = errors.New("key is required as an argument or --key flag")

// lookupField returns the registered field for key.
// Unknown keys fail with the closest registered key as a suggestion.
func lookupField(key string) (config.Field, error) {
	if field, ok := config.Default[key]; ok {
		return field, nil
	}

	closest := lo.MinBy(lo.Keys(config.Default), func(a, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})
	return config.Field{}, fmt.Errorf(
		"unknown key %s, did you mean %s?",
		style.Fg(color.Red)(key),
		style.Fg(color.Yellow)(closest),
	)
}

// keyFrom picks the key from the first argument, falling back to --key.
func keyFrom(cmd *cobra.Command, args []string) (config.Field, error) {
	key := lo.Must(cmd.Flags().GetString("key"))
	if len(args) > 0 {
		key = args[0]
	}
	if key == "" {
		return config.Field{}, errNoKey
	}
	return lookupField(key)
}

func configFile() string {
	return filepath.Join(where.Config(), constant.Flicker+".toml")
}

// persist writes viper's state, creating the file on first use.
func persist() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfig()
	}
	return err
}

func success(cmd *cobra.Command, format string, a ...any) {
	cmd.Printf("%s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), fmt.Sprintf(format, a...))
}

func completionConfigKeys(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

// completionConfigSet completes the key, then the accepted values of that key.
func completionConfigSet(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return completionConfigKeys(cmd, args, toComplete)
	}

	field, ok := config.Default[args[0]]
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if _, isBool := field.Value.(bool); isBool {
		return []string{"true", "false"}, cobra.ShellCompDirectiveNoFileComp
	}
	return field.Choices, cobra.ShellCompDirectiveNoFileComp
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change player settings",
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.PersistentFlags().StringP("key", "k", "", "Configuration key")
	_ = configCmd.RegisterFlagCompletionFunc("key", completionConfigKeys)
	configCmd.SetOut(os.Stdout)

	configInfoCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	configSetCmd.Flags().StringSliceP("value", "v", nil, "Value to assign, repeat for lists")
	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key")

	configCmd.AddCommand(
		configInfoCmd,
		configGetCmd,
		configSetCmd,
		configResetCmd,
		configWriteCmd,
		configDeleteCmd,
	)
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key...]",
	Short:             "Describe configuration keys, their defaults and accepted values",
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		keys := args
		if key := lo.Must(cmd.Flags().GetString("key")); key != "" {
			keys = append(keys, key)
		}

		fields := lo.Values(config.Default)
		if len(keys) > 0 {
			fields = lo.Map(keys, func(key string, _ int) config.Field {
				field, err := lookupField(key)
				handleErr(err)
				return field
			})
		}

		slices.SortFunc(fields, func(a, b config.Field) int {
			return strings.Compare(a.Key, b.Key)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(fields))
			return
		}

		cmd.Print(strings.Join(lo.Map(fields, func(f config.Field, _ int) string {
			return f.Pretty()
		}), "\n\n"))
		cmd.Println()
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Print the current value of a key",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		field, err := keyFrom(cmd, args)
		handleErr(err)
		cmd.Println(viper.Get(field.Key))
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] [value...]",
	Short:             "Change the value of a key",
	ValidArgsFunction: completionConfigSet,
	Run: func(cmd *cobra.Command, args []string) {
		field, err := keyFrom(cmd, args)
		handleErr(err)

		values := lo.Must(cmd.Flags().GetStringSlice("value"))
		if len(args) > 1 {
			values = args[1:]
		}
		if len(values) == 0 {
			handleErr(errors.New("value is required as an argument or --value flag"))
		}

		v, err := field.Parse(values)
		handleErr(err)

		viper.Set(field.Key, v)
		handleErr(persist())

		success(cmd, "set %s to %s", style.Fg(color.Purple)(field.Key), style.Fg(color.Yellow)(fmt.Sprint(v)))
	},
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key]",
	Short:             "Restore a key, or every key, to its default",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("all")) {
			for key, field := range config.Default {
				viper.Set(key, field.Value)
			}
			handleErr(persist())
			success(cmd, "reset all config values")
			return
		}

		field, err := keyFrom(cmd, args)
		if errors.Is(err, errNoKey) {
			err = errors.New("either a key or --all must be given")
		}
		handleErr(err)

		viper.Set(field.Key, field.Value)
		handleErr(persist())

		success(cmd, "reset %s to %s", style.Fg(color.Purple)(field.Key), style.Fg(color.Yellow)(fmt.Sprint(field.Value)))
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Write the current configuration to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := configFile()

		if lo.Must(cmd.Flags().GetBool("force")) {
			err := filesystem.API().Remove(path)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfig())
		success(cmd, "wrote config to %s", path)
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the config file",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(configFile()))
		success(cmd, "deleted config")
	},
}
