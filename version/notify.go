package version

import (
	"fmt"
	"io"

	"github.com/flicker-player/flicker/color"
	"github.com/flicker-player/flicker/constant"
	"github.com/flicker-player/flicker/icon"
	"github.com/flicker-player/flicker/key"
	"github.com/flicker-player/flicker/log"
	"github.com/flicker-player/flicker/style"
	"github.com/flicker-player/flicker/util"
	"github.com/spf13/viper"
)

// Notify tells the user on w when a newer release than the running one exists.
// It stays silent when the check is disabled, fails, or finds nothing newer.
func Notify(w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) || !util.IsTerminal() {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()
	if err != nil {
		log.Warnf("version check: %s", err)
		return
	}

	if !newer(latest, constant.Version) {
		return
	}

	_, _ = fmt.Fprintf(w, "\n%s New version is available %s %s\n%s\n\n",
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(releasePage+"v"+latest),
	)
}

func newer(latest, current string) bool {
	comp, err := Compare(latest, current)
	return err == nil && comp > 0
}
