// Package config provides configuration types and loading for staticbot.
package config

import (
	"fmt"
	"strings"
)

// Config is the root configuration struct. It is built once at startup and
// passed by reference; nothing mutates it afterwards.
type Config struct {
	// Token is the bot token. When empty, TokenFile is read instead.
	Token     string `json:"token" envconfig:"TOKEN"`
	TokenFile string `json:"tokenFile" envconfig:"TOKEN_FILE"`

	// GuildID is the single managed workspace.
	GuildID string `json:"guildId" envconfig:"GUILD_ID"`
	// CategoryID scopes which channels are managed static groups.
	CategoryID string `json:"categoryId" envconfig:"CATEGORY_ID"`

	AdminRoleID     string `json:"adminRoleId" envconfig:"ADMIN_ROLE_ID"`
	BlacklistRoleID string `json:"blacklistRoleId" envconfig:"BLACKLIST_ROLE_ID"`
	BotsRoleID      string `json:"botsRoleId" envconfig:"BOTS_ROLE_ID"`

	// WhitelistRoleID, when set, restricts the bot to that role's holders.
	WhitelistRoleID string `json:"whitelistRoleId,omitempty" envconfig:"WHITELIST_ROLE_ID"`
	// OneChannelRoleID, when set, limits non-admins to one created group.
	OneChannelRoleID string `json:"oneChannelRoleId,omitempty" envconfig:"ONE_CHANNEL_ROLE_ID"`

	// CommandPrefix is the command sigil, default "$".
	CommandPrefix string `json:"commandPrefix,omitempty" envconfig:"COMMAND_PREFIX"`
	// StatusAddr is the status server listen address; empty disables it.
	StatusAddr string `json:"statusAddr,omitempty" envconfig:"STATUS_ADDR"`
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{CommandPrefix: "$"}
}

// Validate checks that every required field is set. The returned error
// names all missing fields at once.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Token) == "" {
		missing = append(missing, "token")
	}
	if strings.TrimSpace(c.GuildID) == "" {
		missing = append(missing, "guildId")
	}
	if strings.TrimSpace(c.CategoryID) == "" {
		missing = append(missing, "categoryId")
	}
	if strings.TrimSpace(c.AdminRoleID) == "" {
		missing = append(missing, "adminRoleId")
	}
	if strings.TrimSpace(c.BlacklistRoleID) == "" {
		missing = append(missing, "blacklistRoleId")
	}
	if strings.TrimSpace(c.BotsRoleID) == "" {
		missing = append(missing, "botsRoleId")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}
