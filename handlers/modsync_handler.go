package handlers

import (
	"fmt"
	"log"

	"guardian-bot/bot"
	"guardian-bot/crossguild"

	"github.com/bwmarrin/discordgo"
)

// HandleModSync runs a cross-guild moderation action and reports the
// aggregated outcome to the invoking moderator.
func HandleModSync(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	data := i.ApplicationCommandData()

	var groupID, action, userID, reason string
	for _, opt := range data.Options {
		switch opt.Name {
		case "group":
			groupID = opt.StringValue()
		case "action":
			action = opt.StringValue()
		case "user":
			userID = opt.UserValue(nil).ID
		case "reason":
			reason = opt.StringValue()
		}
	}

	// Fan-out across many guilds can exceed the interaction deadline.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		log.Printf("Failed to defer modsync response: %v", err)
		return
	}

	moderator := "unknown"
	if i.Member != nil && i.Member.User != nil {
		moderator = i.Member.User.Username
	}

	result, err := b.Sync.Apply(crossguild.Action(action), crossguild.Request{
		GroupID:       groupID,
		TargetUserID:  userID,
		Reason:        reason,
		ModeratorName: moderator,
	})

	var content string
	switch {
	case err != nil:
		content = fmt.Sprintf("Cross-guild %s failed: %v", action, err)
	case len(result.Guilds) == 0:
		content = fmt.Sprintf("Group `%s` resolved to no guilds; nothing to do.", groupID)
	default:
		content = fmt.Sprintf("Cross-guild %s of <@%s>: %d/%d guilds succeeded.",
			action, userID, result.Succeeded, result.Attempted)
	}

	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		log.Printf("Failed to send modsync follow-up: %v", err)
	}
}
