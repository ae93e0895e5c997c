package model

// Moderation case types.
const (
	CaseBan    = "ban"
	CaseMute   = "mute"
	CaseKick   = "kick"
	CaseStrike = "strike"
)

// ModerationCase is a persisted moderation action record.
type ModerationCase struct {
	CaseID      int64  `db:"case_id"` // Primary Key, Auto-increment
	GuildID     string `db:"guild_id"`
	UserID      string `db:"user_id"`
	ModeratorID string `db:"moderator_id"`
	Type        string `db:"type"`
	Reason      string `db:"reason"`
	Active      bool   `db:"active"`
	ExpiresAt   int64  `db:"expires_at"` // unix seconds; 0 = never expires
	CreatedAt   int64  `db:"created_at"`
}
