package model

// Sentinel values for TicketRecord.PendingCloseAt.
const (
	TicketNoDeadline        int64 = 0
	TicketDeadlineCancelled int64 = -1
)

// TicketRecord represents a support ticket backed by a guild channel.
type TicketRecord struct {
	ID             int64  `db:"id"`
	GuildID        string `db:"guild_id"`
	ChannelID      string `db:"channel_id"`
	UserID         string `db:"user_id"`
	Open           bool   `db:"open"`
	PendingCloseAt int64  `db:"pending_close_at"` // unix seconds; 0 = none, -1 = cancelled
}

// HasPendingClose reports whether a close deadline is set and not cancelled.
func (t TicketRecord) HasPendingClose() bool {
	return t.PendingCloseAt > 0
}
