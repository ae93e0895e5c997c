package model

// Group is a named set of guilds sharing moderation action fan-out.
type Group struct {
	GroupID      string `db:"group_id"`
	Name         string `db:"name"`
	OwnerGuildID string `db:"owner_guild_id"` // empty for top-level groups
}

// GroupMember ties a guild to a group, optionally as a manager.
type GroupMember struct {
	GroupID string `db:"group_id"`
	GuildID string `db:"guild_id"`
	Manager bool   `db:"manager"`
}
