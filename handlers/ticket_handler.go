package handlers

import (
	"log"
	"strconv"
	"strings"

	"guardian-bot/bot"
	"guardian-bot/model"
	"guardian-bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

// HandleTicketCloseComponent reacts to the buttons posted with a close offer.
func HandleTicketCloseComponent(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, customID string) {
	var content string

	if rest, ok := strings.CutPrefix(customID, "ticket_close_now_"); ok {
		ticketID, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			log.Printf("Malformed ticket component id %q: %v", customID, err)
			return
		}
		ticket, err := database.GetTicketByID(b.DB, ticketID)
		if err != nil {
			log.Printf("Failed to load ticket %d: %v", ticketID, err)
			return
		}
		user := "unknown"
		if i.Member != nil && i.Member.User != nil {
			user = i.Member.User.Username
		}
		if err := b.Engine.CloseTicket(*ticket, "closed by "+user); err != nil {
			log.Printf("Failed to close ticket %d: %v", ticketID, err)
			content = "Could not close the ticket, please try again."
		} else {
			content = "Ticket closed."
		}
	} else if rest, ok := strings.CutPrefix(customID, "ticket_close_cancel_"); ok {
		ticketID, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			log.Printf("Malformed ticket component id %q: %v", customID, err)
			return
		}
		if err := database.SetTicketPendingClose(b.DB, ticketID, model.TicketDeadlineCancelled); err != nil {
			log.Printf("Failed to cancel close for ticket %d: %v", ticketID, err)
			content = "Could not cancel the autoclose, please try again."
		} else {
			content = "Autoclose cancelled, the ticket stays open."
		}
	} else {
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		log.Printf("Failed to respond to ticket component: %v", err)
	}
}
