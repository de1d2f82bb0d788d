// Package config loads application settings from an optional YAML file with
// environment-variable overrides. Entrypoints load .env first, so everything
// can also live in a dotfile.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"taskmaster/internal/logging"
)

// Config holds all application settings
type Config struct {
	StatePath string `yaml:"state_path"`

	Timer struct {
		FocusSeconds int `yaml:"focus_seconds"`
		BreakSeconds int `yaml:"break_seconds"`
	} `yaml:"timer"`

	AI struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
	} `yaml:"ai"`

	Discord struct {
		Token     string `yaml:"token"`
		ChannelID string `yaml:"channel_id"`
	} `yaml:"discord"`

	SoundPath string `yaml:"sound_path"`
}

// Load reads configuration: defaults, then the YAML file at path (if it
// exists), then environment variables. An empty path skips the file step.
func Load(path string) (Config, error) {
	var cfg Config
	cfg.StatePath = "state"

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("cannot parse config %q: %w", path, err)
			}
			logging.Debug("config", "loaded %s", path)
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("cannot read config %q: %w", path, err)
		}
	}

	overlayEnv(&cfg)
	return cfg, nil
}

func overlayEnv(cfg *Config) {
	setString(&cfg.StatePath, "STATE_PATH")
	setInt(&cfg.Timer.FocusSeconds, "TIMER_FOCUS_SECONDS")
	setInt(&cfg.Timer.BreakSeconds, "TIMER_BREAK_SECONDS")
	setString(&cfg.AI.BaseURL, "OPENAI_BASE_URL")
	setString(&cfg.AI.APIKey, "OPENAI_API_KEY")
	setString(&cfg.AI.Model, "OPENAI_MODEL")
	setString(&cfg.Discord.Token, "DISCORD_TOKEN")
	setString(&cfg.Discord.ChannelID, "DISCORD_CHANNEL_ID")
	setString(&cfg.SoundPath, "NOTIFICATION_SOUND")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logging.Warn("config", "ignoring %s=%q: %v", key, v, err)
		return
	}
	*dst = n
}
