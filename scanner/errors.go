package scanner

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// IsNotFound reports whether a remote call failed because the entity no
// longer exists. The engine treats this as "nothing to reconcile".
func IsNotFound(err error) bool {
	var rerr *discordgo.RESTError
	if !errors.As(err, &rerr) {
		return false
	}
	if rerr.Message != nil {
		switch rerr.Message.Code {
		case discordgo.ErrCodeUnknownChannel,
			discordgo.ErrCodeUnknownGuild,
			discordgo.ErrCodeUnknownMember,
			discordgo.ErrCodeUnknownMessage,
			discordgo.ErrCodeUnknownRole,
			discordgo.ErrCodeUnknownUser,
			discordgo.ErrCodeUnknownBan:
			return true
		}
	}
	return rerr.Response != nil && rerr.Response.StatusCode == http.StatusNotFound
}

// IsPermission reports whether a remote mutation was rejected by platform
// permission or hierarchy rules. Retrying cannot succeed without an operator
// fixing permissions, so callers clear local state instead.
func IsPermission(err error) bool {
	var rerr *discordgo.RESTError
	if !errors.As(err, &rerr) {
		return false
	}
	if rerr.Message != nil {
		switch rerr.Message.Code {
		case discordgo.ErrCodeMissingAccess, discordgo.ErrCodeMissingPermissions:
			return true
		}
	}
	return rerr.Response != nil && rerr.Response.StatusCode == http.StatusForbidden
}
