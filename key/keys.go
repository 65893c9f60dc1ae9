// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback Parameters - initial transport settings applied to every loaded source.
const (
	PlayerVolume      = "player.volume"
	PlayerMuted       = "player.muted"
	PlayerSpeed       = "player.speed"
	PlayerAudio       = "player.audio"
	PlayerSeekStep    = "player.seek_step"
	PlayerVolumeStep  = "player.volume_step"
	PlayerStopTimeout = "player.stop_timeout"
)

// Frame Scheduling - pacing thresholds of the playback loop, in milliseconds.
const (
	SchedulerEarlyThreshold = "scheduler.early_threshold"
	SchedulerLateThreshold  = "scheduler.late_threshold"
	SchedulerMaxSleep       = "scheduler.max_sleep"
	SchedulerPausePoll      = "scheduler.pause_poll"
)

// Audio Device - output buffering of the system audio device.
const (
	AudioBuffer = "audio.buffer"
)

// Media Probing - caching of container metadata.
const (
	ProbeCache = "probe.cache"
)

// Playback History - resume positions remembered between runs.
const (
	HistorySaveOnQuit = "history.save_on_quit"
	HistoryMinimum    = "history.minimum"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive front end.
const (
	TUIPreview      = "tui.preview"
	TUIPreviewWidth = "tui.preview_width"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
	LogsKeep  = "logs.keep"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
