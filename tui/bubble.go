package tui

import (
	"github.com/flicker-player/flicker/display"
	"github.com/flicker-player/flicker/internal/ui"
	"github.com/flicker-player/flicker/key"
	"github.com/flicker-player/flicker/player"
	"github.com/flicker-player/flicker/style"
	"github.com/flicker-player/flicker/util"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/spf13/viper"
)

// statefulBubble holds the player view and the transport it drives.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	player *player.Player
	screen *display.Latest

	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model
	notifier  ui.Model

	title    string
	position float64
	duration float64
	playback player.State
	ended    bool
	status   string

	preview      bool
	previewWidth int
	picture      string

	lastError error

	width, height int

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	b.width, b.height = width-x, height-y

	b.progressC.Width = util.Max(b.width, 10)
	b.helpC.Width = b.width
	b.previewWidth = util.Clamp(viper.GetInt(key.TUIPreviewWidth), 8, util.Max(b.width, 8))
}

func newBubble(p *player.Player, screen *display.Latest, options *Options) *statefulBubble {
	bubble := &statefulBubble{
		keymap:       newStatefulKeymap(),
		player:       p,
		screen:       screen,
		options:      options,
		title:        options.Title,
		preview:      viper.GetBool(key.TUIPreview),
		previewWidth: viper.GetInt(key.TUIPreviewWidth),
	}

	if bubble.title == "" {
		bubble.title = util.FileStem(options.Location)
	}

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.helpC = help.New()
	bubble.progressC = progress.New(progress.WithGradient(style.ProgressFrom, style.ProgressTo), progress.WithoutPercentage())

	return bubble
}
