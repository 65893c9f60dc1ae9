// Package config registers flicker's settings with viper and loads the config file.
package config

import (
	"errors"
	"strings"

	"github.com/flicker-player/flicker/constant"
	"github.com/flicker-player/flicker/filesystem"
	"github.com/flicker-player/flicker/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps a key such as player.volume to its variable suffix PLAYER_VOLUME.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup binds defaults and environment variables, then reads the config
// file if there is one. A missing file is not an error.
func Setup() error {
	viper.SetFs(filesystem.API())
	viper.SetConfigName(constant.Flicker)
	viper.SetConfigType("toml")
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Flicker)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.SetTypeByDefaultValue(true)

	for key, field := range Default {
		viper.SetDefault(key, field.Value)
	}
	for _, key := range EnvExposed {
		if err := viper.BindEnv(key); err != nil {
			return err
		}
	}

	err := viper.ReadInConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return nil
	}
	return err
}
