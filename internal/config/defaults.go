package config

const (
	defaultStateDir    = "~/.local/share/roomassistant"
	defaultSessionFile = "session.json"
	defaultHandoffFile = "checkout_redirect"
	defaultHistoryFile = "history.db"
	defaultLogDir      = "~/.local/share/roomassistant/logs"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults. The endpoint
// URL has no default; every deployment points at its own backend.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
