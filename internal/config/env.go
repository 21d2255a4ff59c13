package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names.
const (
	EnvHome         = "OTP76_HOME"
	EnvPadsFile     = "OTP76_PADS_FILE"
	EnvOutputFormat = "OTP76_OUTPUT_FORMAT"
	EnvVerbose      = "OTP76_VERBOSE"
	EnvLogLevel     = "OTP76_LOG_LEVEL"
	EnvPassword     = "OTP76_PASSWORD" // #nosec G101 -- false positive, this is a const name not a credential
	EnvNoColor      = "NO_COLOR"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := strings.TrimSpace(os.Getenv(EnvPadsFile)); v != "" {
		cfg.Storage.File = v
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
