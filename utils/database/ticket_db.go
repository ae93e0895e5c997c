package database

import (
	"fmt"

	"guardian-bot/model"

	"github.com/jmoiron/sqlx"
)

// AddTicket inserts a new open ticket and returns its ID.
func AddTicket(db *sqlx.DB, ticket model.TicketRecord) (int64, error) {
	query := `INSERT INTO tickets (guild_id, channel_id, user_id, open, pending_close_at)
              VALUES (:guild_id, :channel_id, :user_id, :open, :pending_close_at)`
	result, err := db.NamedExec(query, ticket)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ticket: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	return id, nil
}

// GetOpenTickets retrieves all tickets currently marked open.
func GetOpenTickets(db *sqlx.DB) ([]model.TicketRecord, error) {
	var tickets []model.TicketRecord
	query := "SELECT * FROM tickets WHERE open = 1"
	if err := db.Select(&tickets, query); err != nil {
		return nil, fmt.Errorf("failed to get open tickets: %w", err)
	}
	return tickets, nil
}

// GetExpiredTickets retrieves open tickets whose pending-close deadline has passed.
func GetExpiredTickets(db *sqlx.DB, now int64) ([]model.TicketRecord, error) {
	var tickets []model.TicketRecord
	query := "SELECT * FROM tickets WHERE open = 1 AND pending_close_at > 0 AND pending_close_at <= ?"
	if err := db.Select(&tickets, query, now); err != nil {
		return nil, fmt.Errorf("failed to get expired tickets: %w", err)
	}
	return tickets, nil
}

// SetTicketPendingClose records (or cancels, via sentinel) a ticket's close deadline.
func SetTicketPendingClose(db *sqlx.DB, ticketID, deadline int64) error {
	query := "UPDATE tickets SET pending_close_at = ? WHERE id = ?"
	if _, err := db.Exec(query, deadline, ticketID); err != nil {
		return fmt.Errorf("failed to set pending close for ticket %d: %w", ticketID, err)
	}
	return nil
}

// CloseTicket marks a ticket closed and clears any pending deadline.
func CloseTicket(db *sqlx.DB, ticketID int64) error {
	query := "UPDATE tickets SET open = 0, pending_close_at = 0 WHERE id = ?"
	if _, err := db.Exec(query, ticketID); err != nil {
		return fmt.Errorf("failed to close ticket %d: %w", ticketID, err)
	}
	return nil
}

// GetTicketByID retrieves a single ticket by its primary key.
func GetTicketByID(db *sqlx.DB, ticketID int64) (*model.TicketRecord, error) {
	var ticket model.TicketRecord
	query := "SELECT * FROM tickets WHERE id = ?"
	if err := db.Get(&ticket, query, ticketID); err != nil {
		return nil, fmt.Errorf("failed to get ticket %d: %w", ticketID, err)
	}
	return &ticket, nil
}
