package config

// Generation defaults used when neither flags nor config set a count.
const (
	DefaultPads = 10
	DefaultKeys = 20
)

// DefaultPadsFile is the pad file name, relative to the home directory.
const DefaultPadsFile = "pads.json"

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.otp76",
		Generation: GenerationConfig{
			Pads: DefaultPads,
			Keys: DefaultKeys,
		},
		Storage: StorageConfig{
			File:    DefaultPadsFile,
			Encrypt: false,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.otp76/otp76.log",
		},
	}
}
