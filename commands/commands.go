package commands

import "github.com/bwmarrin/discordgo"

// Generate returns the slash command set registered for each configured guild.
func Generate() []*discordgo.ApplicationCommand {
	modPermissions := int64(discordgo.PermissionBanMembers)
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "modsync",
			Description:              "Propagate a moderation action to every guild in a group",
			DefaultMemberPermissions: &modPermissions,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "group",
					Description: "Group id",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "action",
					Description: "Action to propagate",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "ban", Value: "ban"},
						{Name: "unban", Value: "unban"},
						{Name: "kick", Value: "kick"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Target user",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "Reason recorded with the action",
					Required:    true,
				},
			},
		},
		{
			Name:        "status",
			Description: "Show bot and host status",
		},
	}
}
