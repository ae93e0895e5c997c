package scanner

import (
	"fmt"
	"log"
	"time"

	"guardian-bot/model"
	"guardian-bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

// expireSanctions lifts temporary bans and retires expired mute cases. The
// platform's own timeout expiry removes mutes, so those need no remote call.
func (e *Engine) expireSanctions() error {
	cases, err := database.GetExpiredCases(e.db, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("sanction phase: %w", err)
	}

	banAuthority := make(map[string]bool)
	for _, c := range cases {
		switch c.Type {
		case model.CaseMute:
			if err := database.SetCaseInactive(e.db, c.CaseID); err != nil {
				log.Printf("Failed to retire mute case %d: %v", c.CaseID, err)
				continue
			}
			e.countAction("sanctions", "mute_expired")

		case model.CaseBan:
			allowed, checked := banAuthority[c.GuildID]
			if !checked {
				allowed = e.botCanBan(c.GuildID)
				banAuthority[c.GuildID] = allowed
			}
			if !allowed {
				log.Printf("Skipping expired ban case %d: no ban authority in guild %s", c.CaseID, c.GuildID)
				continue
			}
			if err := e.client.GuildBanDelete(c.GuildID, c.UserID); err != nil {
				// The user may already be unbanned; the local record must not
				// block future re-bans either way.
				log.Printf("Failed to unban user %s in guild %s (case %d): %v", c.UserID, c.GuildID, c.CaseID, err)
				e.countAction("sanctions", "unban_failed")
			} else {
				e.countAction("sanctions", "unbanned")
				e.audit.Info("sanctions", "unban",
					fmt.Sprintf("Temporary ban expired for user %s in guild %s (case %d)", c.UserID, c.GuildID, c.CaseID))
			}
			if err := database.SetCaseInactive(e.db, c.CaseID); err != nil {
				log.Printf("Failed to retire ban case %d: %v", c.CaseID, err)
			}

		default:
			// Other case types carry no remote state to undo.
			if err := database.SetCaseInactive(e.db, c.CaseID); err != nil {
				log.Printf("Failed to retire case %d: %v", c.CaseID, err)
			}
			e.countAction("sanctions", "expired")
		}
	}
	return nil
}

// botCanBan reports whether the bot holds ban authority in the guild.
func (e *Engine) botCanBan(guildID string) bool {
	botID := e.client.BotUserID()
	guild, err := e.client.Guild(guildID)
	if err != nil {
		log.Printf("Failed to resolve guild %s for permission check: %v", guildID, err)
		return false
	}
	if guild.OwnerID == botID {
		return true
	}
	member, err := e.client.GuildMember(guildID, botID)
	if err != nil {
		log.Printf("Failed to resolve bot member in guild %s: %v", guildID, err)
		return false
	}

	rolePerms := make(map[string]int64, len(guild.Roles))
	for _, r := range guild.Roles {
		rolePerms[r.ID] = r.Permissions
	}

	perms := rolePerms[guildID] // @everyone role shares the guild id
	for _, roleID := range member.Roles {
		perms |= rolePerms[roleID]
	}
	return perms&discordgo.PermissionAdministrator != 0 || perms&discordgo.PermissionBanMembers != 0
}
