package model

// VerificationLink caches the mapping between a discord user and an external
// account. The external linking system writes LinkedDiscordID and sets
// Updated; the engine consumes updated rows and reconciles the cache.
type VerificationLink struct {
	ID              int64  `db:"id"`
	ExternalID      string `db:"external_id"`
	DiscordID       string `db:"discord_id"`        // cached discord id, empty when unlinked
	LinkedDiscordID string `db:"linked_discord_id"` // discord id the linking system currently reports
	Forced          bool   `db:"forced"`            // manually pinned, exempt from auto-unlink
	Updated         bool   `db:"updated"`
}
