package database

import (
	"fmt"

	"guardian-bot/model"

	"github.com/jmoiron/sqlx"
)

// AddStrike inserts a new strike record.
func AddStrike(db *sqlx.DB, record model.StrikeRecord) error {
	query := `INSERT INTO strikes (guild_id, user_id, count, tokens, next_expiry_at)
              VALUES (:guild_id, :user_id, :count, :tokens, :next_expiry_at)`
	if _, err := db.NamedExec(query, record); err != nil {
		return fmt.Errorf("failed to insert strike record: %w", err)
	}
	return nil
}

// GetDueStrikes retrieves all strike records whose next expiry has passed.
func GetDueStrikes(db *sqlx.DB, now int64) ([]model.StrikeRecord, error) {
	var records []model.StrikeRecord
	query := "SELECT * FROM strikes WHERE next_expiry_at <= ?"
	if err := db.Select(&records, query, now); err != nil {
		return nil, fmt.Errorf("failed to get due strikes: %w", err)
	}
	return records, nil
}

// UpdateStrike writes back a decayed strike record.
func UpdateStrike(db *sqlx.DB, strikeID int64, count int, tokens string, nextExpiry int64) error {
	query := "UPDATE strikes SET count = ?, tokens = ?, next_expiry_at = ? WHERE id = ?"
	if _, err := db.Exec(query, count, tokens, nextExpiry, strikeID); err != nil {
		return fmt.Errorf("failed to update strike %d: %w", strikeID, err)
	}
	return nil
}

// DeleteStrike removes a strike record by its ID.
func DeleteStrike(db *sqlx.DB, strikeID int64) error {
	query := "DELETE FROM strikes WHERE id = ?"
	if _, err := db.Exec(query, strikeID); err != nil {
		return fmt.Errorf("failed to delete strike %d: %w", strikeID, err)
	}
	return nil
}

// GetStrikeByUser retrieves the strike record for a user in a guild.
func GetStrikeByUser(db *sqlx.DB, guildID, userID string) (*model.StrikeRecord, error) {
	var record model.StrikeRecord
	query := "SELECT * FROM strikes WHERE guild_id = ? AND user_id = ?"
	if err := db.Get(&record, query, guildID, userID); err != nil {
		return nil, fmt.Errorf("failed to get strike for user %s in guild %s: %w", userID, guildID, err)
	}
	return &record, nil
}
