package database

import (
	"fmt"

	"guardian-bot/model"

	"github.com/jmoiron/sqlx"
)

// AddRoleGrant inserts a new temporary role grant.
func AddRoleGrant(db *sqlx.DB, grant model.TemporaryRoleGrant) error {
	query := `INSERT INTO temp_role_grants (guild_id, user_id, role_id, expires_at, delete_role)
              VALUES (:guild_id, :user_id, :role_id, :expires_at, :delete_role)`
	if _, err := db.NamedExec(query, grant); err != nil {
		return fmt.Errorf("failed to insert role grant: %w", err)
	}
	return nil
}

// GetDueRoleGrants retrieves all grants whose expiry has passed.
func GetDueRoleGrants(db *sqlx.DB, now int64) ([]model.TemporaryRoleGrant, error) {
	var grants []model.TemporaryRoleGrant
	query := "SELECT * FROM temp_role_grants WHERE expires_at <= ?"
	if err := db.Select(&grants, query, now); err != nil {
		return nil, fmt.Errorf("failed to get due role grants: %w", err)
	}
	return grants, nil
}

// DeleteRoleGrant removes a grant by its ID.
func DeleteRoleGrant(db *sqlx.DB, grantID int64) error {
	query := "DELETE FROM temp_role_grants WHERE id = ?"
	if _, err := db.Exec(query, grantID); err != nil {
		return fmt.Errorf("failed to delete role grant %d: %w", grantID, err)
	}
	return nil
}
