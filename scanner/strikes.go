package scanner

import (
	"fmt"
	"log"
	"time"

	"guardian-bot/model"
	"guardian-bot/utils/database"
)

const defaultStrikeExpiryDays = 30

// decayStrikes retires one strike per due record. Tokens decay FIFO; a token
// reaching zero retires its moderation case. Corrupt records are deleted so a
// single bad row never aborts the phase.
func (e *Engine) decayStrikes() error {
	now := time.Now()
	cfg := e.cfg.GetConfig()

	due, err := database.GetDueStrikes(e.db, now.Unix())
	if err != nil {
		return fmt.Errorf("strike phase: %w", err)
	}
	for _, record := range due {
		e.decayStrike(cfg, record, now)
	}
	return nil
}

func (e *Engine) decayStrike(cfg *model.Config, r model.StrikeRecord, now time.Time) {
	switch {
	case r.Count <= 0:
		// Should not occur; delete rather than loop over a dead row.
		log.Printf("Corrupt strike record %d (count %d), deleting", r.ID, r.Count)
		if err := database.DeleteStrike(e.db, r.ID); err != nil {
			log.Printf("Failed to delete corrupt strike %d: %v", r.ID, err)
		}
		e.countAction("strikes", "corrupt_deleted")

	case r.Count == 1:
		if err := database.DeleteStrike(e.db, r.ID); err != nil {
			log.Printf("Failed to delete strike %d: %v", r.ID, err)
			return
		}
		if err := database.SetCasesInactiveByUser(e.db, r.GuildID, r.UserID, model.CaseStrike); err != nil {
			log.Printf("Failed to retire strike cases for user %s in guild %s: %v", r.UserID, r.GuildID, err)
		}
		e.countAction("strikes", "retired")
		e.audit.Info("strikes", "decay",
			fmt.Sprintf("Last strike for user %s in guild %s expired", r.UserID, r.GuildID))

	default:
		tokens, err := r.DecodeTokens()
		if err != nil || len(tokens) == 0 {
			log.Printf("Corrupt strike token list on record %d (count %d, tokens %q): %v", r.ID, r.Count, r.Tokens, err)
			if err := database.DeleteStrike(e.db, r.ID); err != nil {
				log.Printf("Failed to delete corrupt strike %d: %v", r.ID, err)
			}
			e.countAction("strikes", "corrupt_deleted")
			return
		}

		head := tokens[0]
		head.Remaining--
		if head.Remaining <= 0 {
			if err := database.SetCaseInactive(e.db, head.CaseID); err != nil {
				log.Printf("Failed to retire case %d: %v", head.CaseID, err)
			}
			tokens = tokens[1:]
		} else {
			tokens[0] = head
		}

		encoded, err := model.EncodeStrikeTokens(tokens)
		if err != nil {
			log.Printf("Failed to encode strike tokens for record %d: %v", r.ID, err)
			return
		}
		expiryDays := defaultStrikeExpiryDays
		if gs, ok := cfg.GuildSettings(r.GuildID); ok && gs.StrikeExpiryDays > 0 {
			expiryDays = gs.StrikeExpiryDays
		}
		next := now.AddDate(0, 0, expiryDays)
		if err := database.UpdateStrike(e.db, r.ID, r.Count-1, encoded, next.Unix()); err != nil {
			log.Printf("Failed to update strike %d: %v", r.ID, err)
			return
		}
		e.countAction("strikes", "decayed")
	}
}
