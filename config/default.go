// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/flicker-player/flicker/color"
	"github.com/flicker-player/flicker/constant"
	"github.com/flicker-player/flicker/icon"
	"github.com/flicker-player/flicker/key"
	"github.com/flicker-player/flicker/style"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string

	// Range bounds numeric values.
	Range mo.Option[Range]

	// Choices lists the accepted values of a string field.
	Choices []string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Flicker + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string   `json:"key"`
		Value       any      `json:"value"`
		Default     any      `json:"default"`
		Description string   `json:"description"`
		Type        string   `json:"type"`
		Range       *Range   `json:"range,omitempty"`
		Choices     []string `json:"choices,omitempty"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
		Range:       f.Range.ToPointer(),
		Choices:     f.Choices,
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// add registers a field, rejecting duplicate keys.
	add := func(f Field) {
		if _, exists := Default[f.Key]; exists {
			panic("Duplicate config key: " + f.Key)
		}
		Default[f.Key] = f
		EnvExposed = append(EnvExposed, f.Key)
	}

	register := func(k string, v any, desc string) {
		add(Field{Key: k, Value: v, Description: desc})
	}

	registerRange := func(k string, v any, r mo.Option[Range], desc string) {
		add(Field{Key: k, Value: v, Description: desc, Range: r})
	}

	registerChoice := func(k string, v string, choices []string, desc string) {
		add(Field{Key: k, Value: v, Description: desc, Choices: choices})
	}

	registerRange(key.PlayerVolume, 100, bounded(0, 100), "Initial volume level.\nFrom 0 to 100")
	register(key.PlayerMuted, false, "Start with audio muted")
	registerRange(key.PlayerSpeed, 1.0, bounded(0.1, 4), "Initial playback speed multiplier.\nClamped to the range 0.1 - 4.0")
	register(key.PlayerAudio, true, "Play the audio track.\nWhen disabled, or when no audio device is available, video plays silently")
	registerRange(key.PlayerSeekStep, 5, bounded(1, 600), "Seconds to skip on relative seeks")
	registerRange(key.PlayerVolumeStep, 5, bounded(1, 100), "Volume change applied by volume up/down")
	registerRange(key.PlayerStopTimeout, 1000, bounded(10, 60000), "Milliseconds to wait for the playback loop to exit on stop")
	registerRange(key.SchedulerEarlyThreshold, 1, bounded(0, 1000), "Frames further ahead of the clock than this many milliseconds are waited for")
	registerRange(key.SchedulerLateThreshold, 500, bounded(1, 10000), "Frames later than this many milliseconds behind the clock are dropped")
	registerRange(key.SchedulerMaxSleep, 100, bounded(1, 1000), "Longest single sleep of the playback loop, in milliseconds.\nBounds the latency of pause and stop")
	registerRange(key.SchedulerPausePoll, 10, bounded(1, 1000), "Polling interval of the playback loop while paused, in milliseconds")
	registerRange(key.AudioBuffer, 100, bounded(10, 2000), "Audio device buffer length in milliseconds")
	register(key.ProbeCache, true, "Cache probed media metadata")
	register(key.HistorySaveOnQuit, true, "Remember the position of unfinished media on quit.\nUse play --resume to continue from it")
	registerRange(key.HistoryMinimum, 10, bounded(0, 3600), "Positions earlier than this many seconds are not remembered")
	registerChoice(key.IconsVariant, "plain", icon.AvailableVariants(), "Icons variant.\nThe nerd variant requires a nerd font")
	register(key.TUIPreview, true, "Render a low resolution preview of the video in the terminal")
	registerRange(key.TUIPreviewWidth, 64, bounded(8, 512), "Preview width in terminal cells")
	register(key.LogsWrite, false, "Write logs")
	registerChoice(key.LogsLevel, "info", []string{"panic", "fatal", "error", "warn", "info", "debug", "trace"}, "Log level, from less to most verbose")
	register(key.LogsJson, false, "Use json format for logs")
	registerRange(key.LogsKeep, 7, bounded(0, 365), "Days to keep log files before they are removed")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, false, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"join":     strings.Join,
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}{{ if .Range.IsPresent }}
{{ blue "Range:" }}   {{ .Range.MustGet }}{{ end }}{{ if .Choices }}
{{ blue "Choices:" }} {{ join .Choices ", " }}{{ end }}`))
