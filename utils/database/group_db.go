package database

import (
	"fmt"

	"guardian-bot/model"

	"github.com/jmoiron/sqlx"
)

// AddGroup inserts a new guild group.
func AddGroup(db *sqlx.DB, group model.Group) error {
	query := `INSERT INTO guild_groups (group_id, name, owner_guild_id)
              VALUES (:group_id, :name, :owner_guild_id)`
	if _, err := db.NamedExec(query, group); err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// AddGroupMember ties a guild to a group.
func AddGroupMember(db *sqlx.DB, member model.GroupMember) error {
	query := `INSERT INTO group_members (group_id, guild_id, manager)
              VALUES (:group_id, :guild_id, :manager)`
	if _, err := db.NamedExec(query, member); err != nil {
		return fmt.Errorf("failed to insert group member: %w", err)
	}
	return nil
}

// GetGroupMembers retrieves all member guilds of a group.
func GetGroupMembers(db *sqlx.DB, groupID string) ([]model.GroupMember, error) {
	var members []model.GroupMember
	query := "SELECT * FROM group_members WHERE group_id = ?"
	if err := db.Select(&members, query, groupID); err != nil {
		return nil, fmt.Errorf("failed to get members of group %s: %w", groupID, err)
	}
	return members, nil
}

// GetGroupsOwnedBy retrieves all groups owned by a guild.
func GetGroupsOwnedBy(db *sqlx.DB, guildID string) ([]model.Group, error) {
	var groups []model.Group
	query := "SELECT * FROM guild_groups WHERE owner_guild_id = ?"
	if err := db.Select(&groups, query, guildID); err != nil {
		return nil, fmt.Errorf("failed to get groups owned by guild %s: %w", guildID, err)
	}
	return groups, nil
}
