package constant

// PatternScheme prefixes locations served by the synthetic test-pattern backend.
const PatternScheme = "pattern"

// Supported container extensions, used for shell completion of media paths.
var (
	VideoExtensions = []string{"mp4", "mkv", "avi", "mov", "wmv", "flv", "webm", "m4v"}
	AudioExtensions = []string{"mp3", "wav", "flac", "m4a", "aac", "ogg", "wma"}
)
