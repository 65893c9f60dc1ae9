// Package icon provides a flexible multi-variant rendering engine for UI symbols and feedback indicators.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, kaomoji,
// or Unicode squares depending on user preference.
package icon

import (
	"github.com/flicker-player/flicker/key"
	"github.com/spf13/viper"
)

// Visual Variant Constants - these define the supported aesthetic styles for icon rendering.
const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// iconDef encapsulates the visual representations of a single UI symbol across all supported variants.
type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

// Get retrieves the visual representation for the receiver based on the global icons variant configuration.
func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
	Pause
	Stop
	Ended
	Volume
	Muted
	Speed
	Film
)

var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "\uf00c", plain: "+", kaomoji: "(ᵔᴥᵔ)", squares: "🟩"},
	Fail:     {emoji: "❌", nerd: "\uf00d", plain: "x", kaomoji: "(╯°□°)╯", squares: "🟥"},
	Progress: {emoji: "⏳", nerd: "\uf110", plain: "~", kaomoji: "(・_・;)", squares: "🟨"},
	Play:     {emoji: "▶️", nerd: "\uf04b", plain: ">", kaomoji: "(ง •̀_•́)ง", squares: "▶"},
	Pause:    {emoji: "⏸️", nerd: "\uf04c", plain: "||", kaomoji: "(－_－) zzZ", squares: "⏸"},
	Stop:     {emoji: "⏹️", nerd: "\uf04d", plain: "[]", kaomoji: "(￣^￣)", squares: "⏹"},
	Ended:    {emoji: "🏁", nerd: "\uf11e", plain: "#", kaomoji: "(ﾉ◕ヮ◕)ﾉ", squares: "🟪"},
	Volume:   {emoji: "🔊", nerd: "\uf028", plain: "vol", kaomoji: "(♪)", squares: "🟦"},
	Muted:    {emoji: "🔇", nerd: "\uf026", plain: "mute", kaomoji: "(x_x)", squares: "⬛"},
	Speed:    {emoji: "⏩", nerd: "\uf04e", plain: "x", kaomoji: "(=ↀωↀ=)", squares: "⏩"},
	Film:     {emoji: "🎞️", nerd: "\uf008", plain: "*", kaomoji: "(⌐■_■)", squares: "🎞"},
}

// Get returns the rendered string for a specified Icon identifier from the global registry.
func Get(i Icon) string {
	def, ok := icons[i]
	if !ok {
		return ""
	}
	return def.Get()
}
