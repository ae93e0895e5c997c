package database

import (
	"path/filepath"
	"testing"
	"time"

	"guardian-bot/model"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestExpiredTicketQueryIgnoresSentinels(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().Unix()

	past, err := AddTicket(db, model.TicketRecord{
		GuildID: "g1", ChannelID: "c1", UserID: "u1", Open: true, PendingCloseAt: now - 60,
	})
	require.NoError(t, err)
	_, err = AddTicket(db, model.TicketRecord{
		GuildID: "g1", ChannelID: "c2", UserID: "u2", Open: true, PendingCloseAt: model.TicketNoDeadline,
	})
	require.NoError(t, err)
	_, err = AddTicket(db, model.TicketRecord{
		GuildID: "g1", ChannelID: "c3", UserID: "u3", Open: true, PendingCloseAt: model.TicketDeadlineCancelled,
	})
	require.NoError(t, err)
	_, err = AddTicket(db, model.TicketRecord{
		GuildID: "g1", ChannelID: "c4", UserID: "u4", Open: true, PendingCloseAt: now + 3600,
	})
	require.NoError(t, err)

	expired, err := GetExpiredTickets(db, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, past, expired[0].ID)
}

func TestClosedTicketLeavesOpenQueries(t *testing.T) {
	db := newTestDB(t)
	id, err := AddTicket(db, model.TicketRecord{
		GuildID: "g1", ChannelID: "c1", UserID: "u1", Open: true, PendingCloseAt: time.Now().Unix() - 60,
	})
	require.NoError(t, err)

	require.NoError(t, CloseTicket(db, id))

	open, err := GetOpenTickets(db)
	require.NoError(t, err)
	require.Empty(t, open)

	expired, err := GetExpiredTickets(db, time.Now().Unix())
	require.NoError(t, err)
	require.Empty(t, expired)

	ticket, err := GetTicketByID(db, id)
	require.NoError(t, err)
	require.False(t, ticket.Open)
	require.Equal(t, model.TicketNoDeadline, ticket.PendingCloseAt)
}

func TestDueStrikeQueryHonorsExpiry(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().Unix()

	require.NoError(t, AddStrike(db, model.StrikeRecord{
		GuildID: "g1", UserID: "due", Count: 2, Tokens: "[]", NextExpiryAt: now - 60,
	}))
	require.NoError(t, AddStrike(db, model.StrikeRecord{
		GuildID: "g1", UserID: "later", Count: 2, Tokens: "[]", NextExpiryAt: now + 3600,
	}))

	due, err := GetDueStrikes(db, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, "due", due[0].UserID)

	require.NoError(t, UpdateStrike(db, due[0].ID, 1, `[{"case_id":7,"remaining":1}]`, now+3600))
	record, err := GetStrikeByUser(db, "g1", "due")
	require.NoError(t, err)
	require.Equal(t, 1, record.Count)
	tokens, err := record.DecodeTokens()
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, int64(7), tokens[0].CaseID)
}

func TestSetCasesInactiveByUserMatchesTypeOnly(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().Unix()

	banID, err := AddCase(db, model.ModerationCase{
		GuildID: "g1", UserID: "u1", ModeratorID: "m1",
		Type: model.CaseBan, Active: true, CreatedAt: now,
	})
	require.NoError(t, err)
	muteID, err := AddCase(db, model.ModerationCase{
		GuildID: "g1", UserID: "u1", ModeratorID: "m1",
		Type: model.CaseMute, Active: true, CreatedAt: now,
	})
	require.NoError(t, err)

	require.NoError(t, SetCasesInactiveByUser(db, "g1", "u1", model.CaseBan))

	ban, err := GetCaseByID(db, banID)
	require.NoError(t, err)
	require.False(t, ban.Active)

	mute, err := GetCaseByID(db, muteID)
	require.NoError(t, err)
	require.True(t, mute.Active, "a ban retirement must not touch mute cases")
}

func TestExpiredCaseQuerySkipsPermanentCases(t *testing.T) {
	db := newTestDB(t)
	now := time.Now().Unix()

	expiredID, err := AddCase(db, model.ModerationCase{
		GuildID: "g1", UserID: "u1", ModeratorID: "m1",
		Type: model.CaseBan, Active: true, ExpiresAt: now - 60, CreatedAt: now - 3600,
	})
	require.NoError(t, err)
	_, err = AddCase(db, model.ModerationCase{
		GuildID: "g1", UserID: "u2", ModeratorID: "m1",
		Type: model.CaseBan, Active: true, ExpiresAt: 0, CreatedAt: now - 3600,
	})
	require.NoError(t, err)

	cases, err := GetExpiredCases(db, now)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	require.Equal(t, expiredID, cases[0].CaseID)
}
