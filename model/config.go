package model

import "time"

// GuildSettings holds the per-guild reconciliation configuration.
type GuildSettings struct {
	GuildID              string `mapstructure:"guild_id"`
	TicketAutocloseHours int    `mapstructure:"ticket_autoclose_hours"` // 0 disables ticket autoclose
	VerifiedRoleID       string `mapstructure:"verified_role_id"`
	StrikeExpiryDays     int    `mapstructure:"strike_expiry_days"`
	PointDecayDays       int    `mapstructure:"point_decay_days"`
}

// ReconcileSettings controls the periodic driver.
type ReconcileSettings struct {
	TimedInterval    time.Duration `mapstructure:"timed_interval"`
	RegularInterval  time.Duration `mapstructure:"regular_interval"`
	TimedOffset      time.Duration `mapstructure:"timed_offset"`
	RegularOffset    time.Duration `mapstructure:"regular_offset"`
	TicketCloseDelay time.Duration `mapstructure:"ticket_close_delay"`
	SampleInterval   time.Duration `mapstructure:"sample_interval"`
}

type Config struct {
	BotToken      string
	AppID         string
	LogWebhookURL string
	DatabasePath  string
	MetricsAddr   string

	Guilds    map[string]GuildSettings `mapstructure:"guilds"`
	Reconcile ReconcileSettings        `mapstructure:"reconcile"`
}

// GuildSettings returns the settings for a guild, if configured.
func (c *Config) GuildSettings(guildID string) (GuildSettings, bool) {
	gs, ok := c.Guilds[guildID]
	return gs, ok
}
