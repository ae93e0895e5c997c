package scanner

import (
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"guardian-bot/model"
	"guardian-bot/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

type staticConfig struct {
	cfg *model.Config
}

func (s staticConfig) GetConfig() *model.Config { return s.cfg }

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Init(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to init test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestEngine(t *testing.T, db *sqlx.DB, client GuildClient, cfg *model.Config) *Engine {
	t.Helper()
	if cfg.Guilds == nil {
		cfg.Guilds = map[string]model.GuildSettings{}
	}
	return New(db, client, staticConfig{cfg: cfg}, nil)
}

// snowflakeAt builds a snowflake id whose embedded timestamp is t.
func snowflakeAt(t time.Time) string {
	ms := t.UnixMilli() - 1420070400000
	return strconv.FormatInt(ms<<22, 10)
}

func notFoundErr(code int) error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusNotFound},
		Message:  &discordgo.APIErrorMessage{Code: code, Message: "not found"},
	}
}

func permissionErr() error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusForbidden},
		Message:  &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions, Message: "Missing Permissions"},
	}
}

func transientErr() error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: http.StatusServiceUnavailable},
	}
}

// fakeClient is an in-memory GuildClient recording every mutating call.
type fakeClient struct {
	mu       sync.Mutex
	botID    string
	guilds   map[string]*discordgo.Guild
	channels map[string]*discordgo.Channel
	members  map[string]*discordgo.Member // keyed guildID/userID
	roles    map[string][]*discordgo.Role
	fail     map[string]error // op key -> forced error
	calls    map[string]int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		botID:    "bot-1",
		guilds:   map[string]*discordgo.Guild{},
		channels: map[string]*discordgo.Channel{},
		members:  map[string]*discordgo.Member{},
		roles:    map[string][]*discordgo.Role{},
		fail:     map[string]error{},
		calls:    map[string]int{},
	}
}

func (c *fakeClient) record(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[key]++
	return c.fail[key]
}

func (c *fakeClient) count(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[key]
}

func (c *fakeClient) BotUserID() string { return c.botID }

func (c *fakeClient) Guild(guildID string) (*discordgo.Guild, error) {
	if err := c.record("guild " + guildID); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	g, ok := c.guilds[guildID]
	if !ok {
		return nil, notFoundErr(discordgo.ErrCodeUnknownGuild)
	}
	return g, nil
}

func (c *fakeClient) GuildMember(guildID, userID string) (*discordgo.Member, error) {
	if err := c.record("member " + guildID + " " + userID); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.members[guildID+"/"+userID]
	if !ok {
		return nil, notFoundErr(discordgo.ErrCodeUnknownMember)
	}
	return m, nil
}

func (c *fakeClient) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	if err := c.record("roles " + guildID); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	roles, ok := c.roles[guildID]
	if !ok {
		return nil, notFoundErr(discordgo.ErrCodeUnknownGuild)
	}
	return roles, nil
}

func (c *fakeClient) GuildRoleDelete(guildID, roleID string) error {
	return c.record("roleDelete " + guildID + " " + roleID)
}

func (c *fakeClient) GuildMemberRoleRemove(guildID, userID, roleID string) error {
	return c.record("roleRemove " + guildID + " " + userID + " " + roleID)
}

func (c *fakeClient) GuildBanCreate(guildID, userID, reason string) error {
	return c.record("ban " + guildID + " " + userID)
}

func (c *fakeClient) GuildBanDelete(guildID, userID string) error {
	return c.record("unban " + guildID + " " + userID)
}

func (c *fakeClient) GuildMemberKick(guildID, userID, reason string) error {
	return c.record("kick " + guildID + " " + userID)
}

func (c *fakeClient) Channel(channelID string) (*discordgo.Channel, error) {
	if err := c.record("channel " + channelID); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.channels[channelID]
	if !ok {
		return nil, notFoundErr(discordgo.ErrCodeUnknownChannel)
	}
	return ch, nil
}

func (c *fakeClient) ChannelDelete(channelID string) error {
	if err := c.record("channelDelete " + channelID); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.channels, channelID)
	return nil
}

func (c *fakeClient) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	if err := c.record("message " + channelID); err != nil {
		return nil, err
	}
	return &discordgo.Message{ID: "m-1", ChannelID: channelID}, nil
}
