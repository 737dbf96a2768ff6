package sfoglia

import "github.com/BrandonKowalski/sfoglia/pkg/sfoglia/internal"

// SetLogPath sets the full path of the engine log file, creating parent
// directories as needed. Must be called before the first engine is created
// to take effect; unset, logging goes to stderr only.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// SetLogLevel sets the engine log level from its string form (debug, info,
// warn, error). Unknown strings fall back to info.
func SetLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
