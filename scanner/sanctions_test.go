package scanner

import (
	"testing"
	"time"

	"guardian-bot/model"
	"guardian-bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

func grantBanAuthority(c *fakeClient, guildID string) {
	c.guilds[guildID] = &discordgo.Guild{
		ID:      guildID,
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: guildID}, // @everyone, no permissions
			{ID: "mod", Permissions: discordgo.PermissionBanMembers},
		},
	}
	c.members[guildID+"/"+c.botID] = &discordgo.Member{
		User:  &discordgo.User{ID: c.botID},
		Roles: []string{"mod"},
	}
}

func addExpiredCase(t *testing.T, e *Engine, userID, caseType string) int64 {
	t.Helper()
	id, err := database.AddCase(e.db, model.ModerationCase{
		GuildID:     "g1",
		UserID:      userID,
		ModeratorID: "m1",
		Type:        caseType,
		Active:      true,
		ExpiresAt:   time.Now().Add(-time.Minute).Unix(),
		CreatedAt:   time.Now().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("failed to insert case: %v", err)
	}
	return id
}

func caseActive(t *testing.T, e *Engine, caseID int64) bool {
	t.Helper()
	c, err := database.GetCaseByID(e.db, caseID)
	if err != nil {
		t.Fatalf("failed to reload case %d: %v", caseID, err)
	}
	return c.Active
}

func TestExpiredBanIsLifted(t *testing.T) {
	client := newFakeClient()
	grantBanAuthority(client, "g1")
	e := newTestEngine(t, newTestDB(t), client, &model.Config{})
	id := addExpiredCase(t, e, "u1", model.CaseBan)

	if err := e.expireSanctions(); err != nil {
		t.Fatalf("expiry failed: %v", err)
	}
	if got := client.count("unban g1 u1"); got != 1 {
		t.Fatalf("expected 1 unban, got %d", got)
	}
	if caseActive(t, e, id) {
		t.Fatal("expected ban case retired")
	}
}

func TestExpiredBanWithoutAuthorityIsLeftAlone(t *testing.T) {
	client := newFakeClient()
	client.guilds["g1"] = &discordgo.Guild{
		ID:      "g1",
		OwnerID: "owner",
		Roles:   []*discordgo.Role{{ID: "g1"}},
	}
	client.members["g1/"+client.botID] = &discordgo.Member{
		User: &discordgo.User{ID: client.botID},
	}
	e := newTestEngine(t, newTestDB(t), client, &model.Config{})
	id := addExpiredCase(t, e, "u1", model.CaseBan)

	if err := e.expireSanctions(); err != nil {
		t.Fatalf("expiry failed: %v", err)
	}
	if got := client.count("unban g1 u1"); got != 0 {
		t.Fatalf("expected no unban attempt without authority, got %d", got)
	}
	if !caseActive(t, e, id) {
		t.Fatal("case must stay active so a later cycle can retry")
	}
}

func TestUnbanFailureStillRetiresCase(t *testing.T) {
	client := newFakeClient()
	grantBanAuthority(client, "g1")
	client.fail["unban g1 u1"] = transientErr()
	e := newTestEngine(t, newTestDB(t), client, &model.Config{})
	id := addExpiredCase(t, e, "u1", model.CaseBan)

	if err := e.expireSanctions(); err != nil {
		t.Fatalf("expiry failed: %v", err)
	}
	if caseActive(t, e, id) {
		t.Fatal("a failed unban must not keep the case active")
	}
}

func TestExpiredMuteRetiredWithoutRemoteCalls(t *testing.T) {
	client := newFakeClient()
	e := newTestEngine(t, newTestDB(t), client, &model.Config{})
	id := addExpiredCase(t, e, "u1", model.CaseMute)

	if err := e.expireSanctions(); err != nil {
		t.Fatalf("expiry failed: %v", err)
	}
	if caseActive(t, e, id) {
		t.Fatal("expected mute case retired")
	}
	if got := client.count("guild g1"); got != 0 {
		t.Fatalf("mute expiry must not hit the guild, %d lookups", got)
	}
}

func TestBanAuthorityCheckedOncePerGuild(t *testing.T) {
	client := newFakeClient()
	grantBanAuthority(client, "g1")
	e := newTestEngine(t, newTestDB(t), client, &model.Config{})
	addExpiredCase(t, e, "u1", model.CaseBan)
	addExpiredCase(t, e, "u2", model.CaseBan)

	if err := e.expireSanctions(); err != nil {
		t.Fatalf("expiry failed: %v", err)
	}
	if got := client.count("guild g1"); got != 1 {
		t.Fatalf("expected a single permission lookup per guild, got %d", got)
	}
	if client.count("unban g1 u1") != 1 || client.count("unban g1 u2") != 1 {
		t.Fatal("expected both expired bans lifted")
	}
}

func TestNeverExpiringCaseIgnored(t *testing.T) {
	client := newFakeClient()
	grantBanAuthority(client, "g1")
	e := newTestEngine(t, newTestDB(t), client, &model.Config{})
	id, err := database.AddCase(e.db, model.ModerationCase{
		GuildID: "g1", UserID: "u1", ModeratorID: "m1",
		Type: model.CaseBan, Active: true, ExpiresAt: 0,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("failed to insert case: %v", err)
	}

	if err := e.expireSanctions(); err != nil {
		t.Fatalf("expiry failed: %v", err)
	}
	if got := client.count("unban g1 u1"); got != 0 {
		t.Fatalf("permanent ban must not be lifted, got %d unbans", got)
	}
	if !caseActive(t, e, id) {
		t.Fatal("permanent case must stay active")
	}
}
