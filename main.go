// Package main is the entry point for the flicker media player.
package main

import (
	"github.com/flicker-player/flicker/cmd"
	"github.com/flicker-player/flicker/config"
	"github.com/flicker-player/flicker/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
