package scanner

import (
	"fmt"
	"log"
	"time"

	"guardian-bot/model"
	"guardian-bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

// reconcileTempRoles removes or deletes roles whose grant has expired. Each
// expired grant results in exactly one terminal action; the row is the
// idempotence token, so a re-run after success finds nothing to do.
func (e *Engine) reconcileTempRoles() error {
	due, err := database.GetDueRoleGrants(e.db, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("temp role phase: %w", err)
	}
	e.forEach(len(due), func(i int) {
		e.expireRoleGrant(due[i])
	})
	return nil
}

func (e *Engine) expireRoleGrant(g model.TemporaryRoleGrant) {
	roles, err := e.client.GuildRoles(g.GuildID)
	if err != nil {
		if IsNotFound(err) {
			e.dropRoleGrant(g, "guild gone")
			return
		}
		log.Printf("Failed to list roles for guild %s: %v", g.GuildID, err)
		return // transient, next cycle retries
	}
	if !roleExists(roles, g.RoleID) {
		e.dropRoleGrant(g, "role gone")
		return
	}

	if g.DeleteRole {
		if err := e.client.GuildRoleDelete(g.GuildID, g.RoleID); err != nil {
			if !IsNotFound(err) && !IsPermission(err) {
				log.Printf("Failed to delete expired role %s in guild %s: %v", g.RoleID, g.GuildID, err)
				return // transient, keep the row for the next cycle
			}
			log.Printf("Dropping expired role %s in guild %s without deletion: %v", g.RoleID, g.GuildID, err)
		}
		if err := database.DeleteRoleGrant(e.db, g.ID); err != nil {
			log.Printf("Failed to delete role grant %d: %v", g.ID, err)
			return
		}
		e.countAction("temp_roles", "role_deleted")
		e.audit.Info("temp_roles", "expire",
			fmt.Sprintf("Deleted expired temporary role %s in guild %s", g.RoleID, g.GuildID))
		return
	}

	if err := e.client.GuildMemberRoleRemove(g.GuildID, g.UserID, g.RoleID); err != nil {
		if !IsNotFound(err) && !IsPermission(err) {
			log.Printf("Failed to remove role %s from user %s: %v", g.RoleID, g.UserID, err)
			return // transient, keep the row for the next cycle
		}
		log.Printf("Dropping expired grant for user %s without removal: %v", g.UserID, err)
	}
	if err := database.DeleteRoleGrant(e.db, g.ID); err != nil {
		log.Printf("Failed to delete role grant %d: %v", g.ID, err)
		return
	}
	e.countAction("temp_roles", "member_stripped")
	e.audit.Info("temp_roles", "expire",
		fmt.Sprintf("Removed expired role %s from user %s in guild %s", g.RoleID, g.UserID, g.GuildID))
}

func (e *Engine) dropRoleGrant(g model.TemporaryRoleGrant, why string) {
	if err := database.DeleteRoleGrant(e.db, g.ID); err != nil {
		log.Printf("Failed to delete role grant %d: %v", g.ID, err)
		return
	}
	log.Printf("Dropped role grant %d (%s)", g.ID, why)
	e.countAction("temp_roles", "dropped")
}

func roleExists(roles []*discordgo.Role, roleID string) bool {
	for _, r := range roles {
		if r.ID == roleID {
			return true
		}
	}
	return false
}
