package scanner

import (
	"testing"
	"time"

	"guardian-bot/model"
	"guardian-bot/utils/database"
)

func mustEncodeTokens(t *testing.T, tokens []model.StrikeToken) string {
	t.Helper()
	encoded, err := model.EncodeStrikeTokens(tokens)
	if err != nil {
		t.Fatalf("failed to encode tokens: %v", err)
	}
	return encoded
}

func addDueStrike(t *testing.T, e *Engine, count int, tokens string) {
	t.Helper()
	err := database.AddStrike(e.db, model.StrikeRecord{
		GuildID:      "g1",
		UserID:       "u1",
		Count:        count,
		Tokens:       tokens,
		NextExpiryAt: time.Now().Add(-time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("failed to insert strike: %v", err)
	}
}

func TestStrikeDecayDecrementsHeadToken(t *testing.T) {
	e := newTestEngine(t, newTestDB(t), newFakeClient(), &model.Config{})
	tokens := mustEncodeTokens(t, []model.StrikeToken{
		{CaseID: 11, Remaining: 2},
		{CaseID: 12, Remaining: 1},
	})
	addDueStrike(t, e, 3, tokens)

	if err := e.decayStrikes(); err != nil {
		t.Fatalf("decay failed: %v", err)
	}

	record, err := database.GetStrikeByUser(e.db, "g1", "u1")
	if err != nil {
		t.Fatalf("failed to reload strike: %v", err)
	}
	if record.Count != 2 {
		t.Fatalf("expected count 2 after decay, got %d", record.Count)
	}
	if record.NextExpiryAt <= time.Now().Unix() {
		t.Fatalf("expected next expiry pushed into the future, got %d", record.NextExpiryAt)
	}
	got, err := record.DecodeTokens()
	if err != nil {
		t.Fatalf("failed to decode tokens: %v", err)
	}
	if len(got) != 2 || got[0].CaseID != 11 || got[0].Remaining != 1 || got[1].Remaining != 1 {
		t.Fatalf("unexpected tokens after decay: %+v", got)
	}
}

func TestStrikeTokenExhaustionRetiresCase(t *testing.T) {
	e := newTestEngine(t, newTestDB(t), newFakeClient(), &model.Config{})
	caseID, err := database.AddCase(e.db, model.ModerationCase{
		GuildID: "g1", UserID: "u1", ModeratorID: "m1",
		Type: model.CaseStrike, Active: true, CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("failed to insert case: %v", err)
	}
	tokens := mustEncodeTokens(t, []model.StrikeToken{
		{CaseID: caseID, Remaining: 1},
		{CaseID: 99, Remaining: 3},
	})
	addDueStrike(t, e, 2, tokens)

	if err := e.decayStrikes(); err != nil {
		t.Fatalf("decay failed: %v", err)
	}

	c, err := database.GetCaseByID(e.db, caseID)
	if err != nil {
		t.Fatalf("failed to reload case: %v", err)
	}
	if c.Active {
		t.Fatal("expected exhausted token's case to be retired")
	}
	record, err := database.GetStrikeByUser(e.db, "g1", "u1")
	if err != nil {
		t.Fatalf("failed to reload strike: %v", err)
	}
	got, err := record.DecodeTokens()
	if err != nil {
		t.Fatalf("failed to decode tokens: %v", err)
	}
	if len(got) != 1 || got[0].CaseID != 99 || got[0].Remaining != 3 {
		t.Fatalf("expected head token popped, got %+v", got)
	}
}

func TestLastStrikeDeletesRecordAndRetiresCases(t *testing.T) {
	e := newTestEngine(t, newTestDB(t), newFakeClient(), &model.Config{})
	caseID, err := database.AddCase(e.db, model.ModerationCase{
		GuildID: "g1", UserID: "u1", ModeratorID: "m1",
		Type: model.CaseStrike, Active: true, CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("failed to insert case: %v", err)
	}
	tokens := mustEncodeTokens(t, []model.StrikeToken{{CaseID: caseID, Remaining: 1}})
	addDueStrike(t, e, 1, tokens)

	if err := e.decayStrikes(); err != nil {
		t.Fatalf("decay failed: %v", err)
	}

	if _, err := database.GetStrikeByUser(e.db, "g1", "u1"); err == nil {
		t.Fatal("expected strike record deleted on last decay")
	}
	c, err := database.GetCaseByID(e.db, caseID)
	if err != nil {
		t.Fatalf("failed to reload case: %v", err)
	}
	if c.Active {
		t.Fatal("expected strike case retired with the last strike")
	}
}

func TestCorruptStrikeRecordDeleted(t *testing.T) {
	e := newTestEngine(t, newTestDB(t), newFakeClient(), &model.Config{})
	addDueStrike(t, e, 2, "[]") // count says two strikes, token list is empty

	if err := e.decayStrikes(); err != nil {
		t.Fatalf("decay failed: %v", err)
	}
	if _, err := database.GetStrikeByUser(e.db, "g1", "u1"); err == nil {
		t.Fatal("expected corrupt strike record deleted")
	}
}

func TestZeroCountStrikeRecordDeleted(t *testing.T) {
	e := newTestEngine(t, newTestDB(t), newFakeClient(), &model.Config{})
	addDueStrike(t, e, 0, "[]")

	if err := e.decayStrikes(); err != nil {
		t.Fatalf("decay failed: %v", err)
	}
	if _, err := database.GetStrikeByUser(e.db, "g1", "u1"); err == nil {
		t.Fatal("expected zero-count strike record deleted")
	}
}
