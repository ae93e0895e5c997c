package model

// TemporaryRoleGrant is a role assignment scheduled for automatic removal.
type TemporaryRoleGrant struct {
	ID         int64  `db:"id"`
	GuildID    string `db:"guild_id"`
	UserID     string `db:"user_id"`
	RoleID     string `db:"role_id"`
	ExpiresAt  int64  `db:"expires_at"`
	DeleteRole bool   `db:"delete_role"` // delete the role itself instead of stripping the member
}
