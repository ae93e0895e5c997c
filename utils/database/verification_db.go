package database

import (
	"fmt"

	"guardian-bot/model"

	"github.com/jmoiron/sqlx"
)

// AddVerificationLink inserts a new cache row and returns its ID.
func AddVerificationLink(db *sqlx.DB, link model.VerificationLink) (int64, error) {
	query := `INSERT INTO verification_links (external_id, discord_id, linked_discord_id, forced, updated)
              VALUES (:external_id, :discord_id, :linked_discord_id, :forced, :updated)`
	result, err := db.NamedExec(query, link)
	if err != nil {
		return 0, fmt.Errorf("failed to insert verification link: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// GetUpdatedLinks retrieves all cache rows flagged updated by the linking system.
func GetUpdatedLinks(db *sqlx.DB) ([]model.VerificationLink, error) {
	var links []model.VerificationLink
	query := "SELECT * FROM verification_links WHERE updated = 1"
	if err := db.Select(&links, query); err != nil {
		return nil, fmt.Errorf("failed to get updated verification links: %w", err)
	}
	return links, nil
}

// ClearLinkUpdated clears the updated flag on a cache row.
func ClearLinkUpdated(db *sqlx.DB, linkID int64) error {
	query := "UPDATE verification_links SET updated = 0 WHERE id = ?"
	if _, err := db.Exec(query, linkID); err != nil {
		return fmt.Errorf("failed to clear updated flag for link %d: %w", linkID, err)
	}
	return nil
}

// ClearLinkForced clears the forced flag on a cache row.
func ClearLinkForced(db *sqlx.DB, linkID int64) error {
	query := "UPDATE verification_links SET forced = 0 WHERE id = ?"
	if _, err := db.Exec(query, linkID); err != nil {
		return fmt.Errorf("failed to clear forced flag for link %d: %w", linkID, err)
	}
	return nil
}

// RelinkDiscordID replaces the cached discord id after a reassignment.
func RelinkDiscordID(db *sqlx.DB, linkID int64, discordID string) error {
	query := "UPDATE verification_links SET discord_id = ? WHERE id = ?"
	if _, err := db.Exec(query, discordID, linkID); err != nil {
		return fmt.Errorf("failed to relink discord id for link %d: %w", linkID, err)
	}
	return nil
}

// DeleteVerificationLink removes a cache row by its ID.
func DeleteVerificationLink(db *sqlx.DB, linkID int64) error {
	query := "DELETE FROM verification_links WHERE id = ?"
	if _, err := db.Exec(query, linkID); err != nil {
		return fmt.Errorf("failed to delete verification link %d: %w", linkID, err)
	}
	return nil
}

// GetLinkByExternalID retrieves a cache row by external account id.
func GetLinkByExternalID(db *sqlx.DB, externalID string) (*model.VerificationLink, error) {
	var link model.VerificationLink
	query := "SELECT * FROM verification_links WHERE external_id = ?"
	if err := db.Get(&link, query, externalID); err != nil {
		return nil, fmt.Errorf("failed to get verification link for external id %s: %w", externalID, err)
	}
	return &link, nil
}
