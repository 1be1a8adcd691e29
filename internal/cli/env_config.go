package cli

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-pubpage/internal/config"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string        // PUBPAGE_CONFIG: config file name or path
	AssetPath  string        // PUBPAGE_ASSET_PATH: custom template/style directory
	Timeout    time.Duration // PUBPAGE_TIMEOUT: chart rasterization timeout
}

// knownEnvVars lists valid PUBPAGE_* environment variables.
var knownEnvVars = map[string]bool{
	"PUBPAGE_CONFIG":     true,
	"PUBPAGE_ASSET_PATH": true,
	"PUBPAGE_TIMEOUT":    true,
}

// loadEnvConfig reads the PUBPAGE_* variables. An unparseable or
// non-positive timeout is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("PUBPAGE_CONFIG"),
		AssetPath:  os.Getenv("PUBPAGE_ASSET_PATH"),
	}
	if timeout := os.Getenv("PUBPAGE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized PUBPAGE_* variable.
func warnUnknownEnvVars(logger *log.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "PUBPAGE_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig overrides config file values with environment values.
// Flags are applied afterwards, giving flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Timeout > 0 {
		cfg.Chart.Timeout = env.Timeout.String()
	}
}
