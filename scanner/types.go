package scanner

import (
	"github.com/bwmarrin/discordgo"
)

// GuildClient is the slice of the chat platform the engine drives. Every call
// is independently failable; NotFound failures are distinguishable from the
// rest via IsNotFound.
type GuildClient interface {
	BotUserID() string
	Guild(guildID string) (*discordgo.Guild, error)
	GuildMember(guildID, userID string) (*discordgo.Member, error)
	GuildRoles(guildID string) ([]*discordgo.Role, error)
	GuildRoleDelete(guildID, roleID string) error
	GuildMemberRoleRemove(guildID, userID, roleID string) error
	GuildBanCreate(guildID, userID, reason string) error
	GuildBanDelete(guildID, userID string) error
	GuildMemberKick(guildID, userID, reason string) error
	Channel(channelID string) (*discordgo.Channel, error)
	ChannelDelete(channelID string) error
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
}

// SessionClient adapts a live discordgo session to GuildClient.
type SessionClient struct {
	Session *discordgo.Session
}

func NewSessionClient(s *discordgo.Session) *SessionClient {
	return &SessionClient{Session: s}
}

func (c *SessionClient) BotUserID() string {
	if c.Session.State == nil || c.Session.State.User == nil {
		return ""
	}
	return c.Session.State.User.ID
}

func (c *SessionClient) Guild(guildID string) (*discordgo.Guild, error) {
	return c.Session.Guild(guildID)
}

func (c *SessionClient) GuildMember(guildID, userID string) (*discordgo.Member, error) {
	return c.Session.GuildMember(guildID, userID)
}

func (c *SessionClient) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	return c.Session.GuildRoles(guildID)
}

func (c *SessionClient) GuildRoleDelete(guildID, roleID string) error {
	return c.Session.GuildRoleDelete(guildID, roleID)
}

func (c *SessionClient) GuildMemberRoleRemove(guildID, userID, roleID string) error {
	return c.Session.GuildMemberRoleRemove(guildID, userID, roleID)
}

func (c *SessionClient) GuildBanCreate(guildID, userID, reason string) error {
	return c.Session.GuildBanCreateWithReason(guildID, userID, reason, 0)
}

func (c *SessionClient) GuildBanDelete(guildID, userID string) error {
	return c.Session.GuildBanDelete(guildID, userID)
}

func (c *SessionClient) GuildMemberKick(guildID, userID, reason string) error {
	return c.Session.GuildMemberDeleteWithReason(guildID, userID, reason)
}

func (c *SessionClient) Channel(channelID string) (*discordgo.Channel, error) {
	return c.Session.Channel(channelID)
}

func (c *SessionClient) ChannelDelete(channelID string) error {
	_, err := c.Session.ChannelDelete(channelID)
	return err
}

func (c *SessionClient) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	return c.Session.ChannelMessageSendComplex(channelID, data)
}
