package database

import (
	"fmt"

	"guardian-bot/model"

	"github.com/jmoiron/sqlx"
)

// AddAlertPoints inserts a new alert point record.
func AddAlertPoints(db *sqlx.DB, p model.AlertPoints) error {
	query := `INSERT INTO alert_points (guild_id, user_id, points, decay_at)
              VALUES (:guild_id, :user_id, :points, :decay_at)`
	if _, err := db.NamedExec(query, p); err != nil {
		return fmt.Errorf("failed to insert alert points: %w", err)
	}
	return nil
}

// GetDueAlertPoints retrieves all point records whose decay time has passed.
func GetDueAlertPoints(db *sqlx.DB, now int64) ([]model.AlertPoints, error) {
	var points []model.AlertPoints
	query := "SELECT * FROM alert_points WHERE decay_at <= ?"
	if err := db.Select(&points, query, now); err != nil {
		return nil, fmt.Errorf("failed to get due alert points: %w", err)
	}
	return points, nil
}

// UpdateAlertPoints writes back a decremented point record.
func UpdateAlertPoints(db *sqlx.DB, id int64, points int, decayAt int64) error {
	query := "UPDATE alert_points SET points = ?, decay_at = ? WHERE id = ?"
	if _, err := db.Exec(query, points, decayAt, id); err != nil {
		return fmt.Errorf("failed to update alert points %d: %w", id, err)
	}
	return nil
}

// DeleteAlertPoints removes a point record by its ID.
func DeleteAlertPoints(db *sqlx.DB, id int64) error {
	query := "DELETE FROM alert_points WHERE id = ?"
	if _, err := db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete alert points %d: %w", id, err)
	}
	return nil
}
