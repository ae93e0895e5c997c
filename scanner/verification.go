package scanner

import (
	"fmt"
	"log"
	"slices"

	"guardian-bot/model"
	"guardian-bot/utils/database"
)

// reconcileVerification consumes cache entries flagged updated by the external
// linking system, resolves duplicate claims, and strips the verified role from
// unlinked users.
func (e *Engine) reconcileVerification() error {
	cfg := e.cfg.GetConfig()

	links, err := database.GetUpdatedLinks(e.db)
	if err != nil {
		return fmt.Errorf("verification phase: %w", err)
	}

	var removals []string
	for _, link := range links {
		// Clear the flag first so each update is processed at most once.
		if err := database.ClearLinkUpdated(e.db, link.ID); err != nil {
			log.Printf("Failed to clear updated flag for link %d: %v", link.ID, err)
			continue
		}

		switch {
		case link.LinkedDiscordID == "":
			if link.DiscordID == "" {
				// Nothing cached and nothing linked; the row carries no state.
				if err := database.DeleteVerificationLink(e.db, link.ID); err != nil {
					log.Printf("Failed to delete empty link %d: %v", link.ID, err)
				}
				continue
			}
			if link.Forced {
				// Manual pin wins over auto-unlink.
				if err := database.ClearLinkForced(e.db, link.ID); err != nil {
					log.Printf("Failed to clear forced flag for link %d: %v", link.ID, err)
				}
				e.countAction("verification", "forced_kept")
				continue
			}
			removals = append(removals, link.DiscordID)
			if err := database.DeleteVerificationLink(e.db, link.ID); err != nil {
				log.Printf("Failed to delete link %d: %v", link.ID, err)
			}
			e.countAction("verification", "unlinked")

		case link.LinkedDiscordID == link.DiscordID:
			// Cache already matches the external side.

		default:
			// Reassignment: the newest external-side link wins the claim.
			if link.DiscordID != "" {
				removals = append(removals, link.DiscordID)
			}
			if err := database.RelinkDiscordID(e.db, link.ID, link.LinkedDiscordID); err != nil {
				log.Printf("Failed to relink external account %s: %v", link.ExternalID, err)
				continue
			}
			e.countAction("verification", "relinked")
		}
	}

	e.removeVerifiedRoles(cfg, dedupe(removals))
	return nil
}

// removeVerifiedRoles strips the configured verified role from each queued
// discord id in every guild that has one. Non-members are not an error.
func (e *Engine) removeVerifiedRoles(cfg *model.Config, userIDs []string) {
	if len(userIDs) == 0 {
		return
	}
	for guildID, gs := range cfg.Guilds {
		if gs.VerifiedRoleID == "" {
			continue
		}
		for _, userID := range userIDs {
			member, err := e.client.GuildMember(guildID, userID)
			if err != nil {
				if !IsNotFound(err) {
					log.Printf("Failed to resolve member %s in guild %s: %v", userID, guildID, err)
				}
				continue
			}
			if !slices.Contains(member.Roles, gs.VerifiedRoleID) {
				continue
			}
			if err := e.client.GuildMemberRoleRemove(guildID, userID, gs.VerifiedRoleID); err != nil {
				log.Printf("Failed to remove verified role from user %s in guild %s: %v", userID, guildID, err)
				continue
			}
			e.countAction("verification", "role_removed")
			e.audit.Info("verification", "unlink",
				fmt.Sprintf("Removed verified role from user %s in guild %s: account unlinked", userID, guildID))
		}
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
