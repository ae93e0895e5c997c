package model

// AlertPoints accumulates infraction points for a user that age out over time.
type AlertPoints struct {
	ID      int64  `db:"id"`
	GuildID string `db:"guild_id"`
	UserID  string `db:"user_id"`
	Points  int    `db:"points"`
	DecayAt int64  `db:"decay_at"`
}
