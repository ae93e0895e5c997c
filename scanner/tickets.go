package scanner

import (
	"fmt"
	"log"
	"time"

	"guardian-bot/model"
	"guardian-bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

const defaultTicketCloseDelay = 12 * time.Hour

// reconcileTickets warns idle tickets and closes tickets whose pending-close
// deadline has passed.
func (e *Engine) reconcileTickets() error {
	now := time.Now()
	cfg := e.cfg.GetConfig()

	open, err := database.GetOpenTickets(e.db)
	if err != nil {
		return fmt.Errorf("ticket phase: %w", err)
	}
	e.forEach(len(open), func(i int) {
		e.checkTicketActivity(cfg, open[i], now)
	})

	expired, err := database.GetExpiredTickets(e.db, now.Unix())
	if err != nil {
		return fmt.Errorf("ticket phase: %w", err)
	}
	e.forEach(len(expired), func(i int) {
		e.autocloseTicket(expired[i])
	})
	return nil
}

func (e *Engine) checkTicketActivity(cfg *model.Config, t model.TicketRecord, now time.Time) {
	ch, err := e.client.Channel(t.ChannelID)
	if err != nil {
		if IsNotFound(err) {
			// Channel is gone, nothing left to reconcile remotely.
			if err := database.CloseTicket(e.db, t.ID); err != nil {
				log.Printf("Failed to force-close ticket %d: %v", t.ID, err)
				return
			}
			log.Printf("Force-closed ticket %d: channel %s no longer exists", t.ID, t.ChannelID)
			e.countAction("tickets", "force_closed")
			return
		}
		log.Printf("Failed to resolve channel %s for ticket %d: %v", t.ChannelID, t.ID, err)
		return
	}

	gs, ok := cfg.GuildSettings(t.GuildID)
	if !ok || gs.TicketAutocloseHours <= 0 {
		return // autoclose disabled for this guild
	}
	if t.PendingCloseAt != model.TicketNoDeadline {
		return // already offered, or offer cancelled
	}

	lastActivity, err := lastChannelActivity(ch)
	if err != nil {
		log.Printf("Failed to determine last activity for channel %s: %v", t.ChannelID, err)
		return
	}
	if now.Sub(lastActivity) < time.Duration(gs.TicketAutocloseHours)*time.Hour {
		return
	}

	delay := cfg.Reconcile.TicketCloseDelay
	if delay <= 0 {
		delay = defaultTicketCloseDelay
	}
	deadline := now.Add(delay)

	if _, err := e.client.ChannelMessageSendComplex(t.ChannelID, closeOfferMessage(t, gs.TicketAutocloseHours, deadline)); err != nil {
		// Leave the record untouched so the next cycle retries the offer.
		log.Printf("Failed to post close offer in channel %s: %v", t.ChannelID, err)
		return
	}
	if err := database.SetTicketPendingClose(e.db, t.ID, deadline.Unix()); err != nil {
		log.Printf("Failed to record pending close for ticket %d: %v", t.ID, err)
		return
	}
	e.countAction("tickets", "close_offered")
}

func (e *Engine) autocloseTicket(t model.TicketRecord) {
	if _, err := e.client.Channel(t.ChannelID); err != nil {
		if IsNotFound(err) {
			if err := database.CloseTicket(e.db, t.ID); err != nil {
				log.Printf("Failed to force-close ticket %d: %v", t.ID, err)
				return
			}
			e.countAction("tickets", "force_closed")
			return
		}
		log.Printf("Failed to resolve channel %s for ticket %d: %v", t.ChannelID, t.ID, err)
		return
	}

	if err := e.CloseTicket(t, "autoclosure"); err != nil {
		// Do not retry indefinitely; an operator can reopen the offer.
		log.Printf("Failed to autoclose ticket %d: %v", t.ID, err)
		if err := database.SetTicketPendingClose(e.db, t.ID, model.TicketDeadlineCancelled); err != nil {
			log.Printf("Failed to cancel close deadline for ticket %d: %v", t.ID, err)
		}
		e.countAction("tickets", "autoclose_failed")
		return
	}
	e.countAction("tickets", "autoclosed")
}

// CloseTicket deletes the backing channel and marks the record closed. Also
// invoked by the "close now" component handler.
func (e *Engine) CloseTicket(t model.TicketRecord, reason string) error {
	if err := e.client.ChannelDelete(t.ChannelID); err != nil && !IsNotFound(err) {
		return fmt.Errorf("failed to delete channel %s: %w", t.ChannelID, err)
	}
	if err := database.CloseTicket(e.db, t.ID); err != nil {
		return err
	}
	e.audit.Info("tickets", "close",
		fmt.Sprintf("Closed ticket %d (channel %s, owner %s): %s", t.ID, t.ChannelID, t.UserID, reason))
	return nil
}

// lastChannelActivity derives the channel's last activity time from its last
// message snowflake; an empty last message falls back to channel creation.
func lastChannelActivity(ch *discordgo.Channel) (time.Time, error) {
	id := ch.LastMessageID
	if id == "" {
		id = ch.ID
	}
	return discordgo.SnowflakeTimestamp(id)
}

func closeOfferMessage(t model.TicketRecord, idleHours int, deadline time.Time) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title: "Ticket inactive",
			Description: fmt.Sprintf("This ticket has had no activity for over %d hours and will be closed automatically <t:%d:R>.",
				idleHours, deadline.Unix()),
			Color: 0xFEE75C,
		}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Close now",
					Style:    discordgo.DangerButton,
					CustomID: fmt.Sprintf("ticket_close_now_%d", t.ID),
				},
				discordgo.Button{
					Label:    "Keep open",
					Style:    discordgo.SecondaryButton,
					CustomID: fmt.Sprintf("ticket_close_cancel_%d", t.ID),
				},
			}},
		},
	}
}
