package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment override, e.g.
// STATICBOT_GUILD_ID.
const EnvPrefix = "STATICBOT"

// Load reads the JSON config file at path (skipped when path is empty),
// applies environment overrides, resolves the token file and validates the
// result. Any failure here aborts startup.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if strings.TrimSpace(cfg.Token) == "" && strings.TrimSpace(cfg.TokenFile) != "" {
		data, err := os.ReadFile(cfg.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("read token file %s: %w", cfg.TokenFile, err)
		}
		cfg.Token = strings.TrimSpace(strings.ReplaceAll(string(data), "\n", ""))
	}

	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = "$"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
