package database

import (
	"fmt"

	"guardian-bot/model"

	"github.com/jmoiron/sqlx"
)

// AddCase inserts a new moderation case and returns its ID.
func AddCase(db *sqlx.DB, c model.ModerationCase) (int64, error) {
	query := `INSERT INTO moderation_cases (guild_id, user_id, moderator_id, type, reason, active, expires_at, created_at)
              VALUES (:guild_id, :user_id, :moderator_id, :type, :reason, :active, :expires_at, :created_at)`
	result, err := db.NamedExec(query, c)
	if err != nil {
		return 0, fmt.Errorf("failed to insert moderation case: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// GetExpiredCases retrieves active cases whose expiry has passed.
func GetExpiredCases(db *sqlx.DB, now int64) ([]model.ModerationCase, error) {
	var cases []model.ModerationCase
	query := "SELECT * FROM moderation_cases WHERE active = 1 AND expires_at > 0 AND expires_at <= ?"
	if err := db.Select(&cases, query, now); err != nil {
		return nil, fmt.Errorf("failed to get expired cases: %w", err)
	}
	return cases, nil
}

// GetCaseByID retrieves a single case by its primary key.
func GetCaseByID(db *sqlx.DB, caseID int64) (*model.ModerationCase, error) {
	var c model.ModerationCase
	query := "SELECT * FROM moderation_cases WHERE case_id = ?"
	if err := db.Get(&c, query, caseID); err != nil {
		return nil, fmt.Errorf("failed to get case %d: %w", caseID, err)
	}
	return &c, nil
}

// SetCaseInactive marks a single case inactive.
func SetCaseInactive(db *sqlx.DB, caseID int64) error {
	query := "UPDATE moderation_cases SET active = 0 WHERE case_id = ?"
	if _, err := db.Exec(query, caseID); err != nil {
		return fmt.Errorf("failed to deactivate case %d: %w", caseID, err)
	}
	return nil
}

// SetCasesInactiveByUser marks all active cases of a given type for a user inactive.
func SetCasesInactiveByUser(db *sqlx.DB, guildID, userID, caseType string) error {
	query := "UPDATE moderation_cases SET active = 0 WHERE guild_id = ? AND user_id = ? AND type = ? AND active = 1"
	if _, err := db.Exec(query, guildID, userID, caseType); err != nil {
		return fmt.Errorf("failed to deactivate %s cases for user %s in guild %s: %w", caseType, userID, guildID, err)
	}
	return nil
}
