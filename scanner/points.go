package scanner

import (
	"fmt"
	"log"
	"time"

	"guardian-bot/utils/database"
)

const defaultPointDecayDays = 7

// decayPoints ages out alert points with a simple decrement-or-delete rule.
func (e *Engine) decayPoints() error {
	now := time.Now()
	cfg := e.cfg.GetConfig()

	due, err := database.GetDueAlertPoints(e.db, now.Unix())
	if err != nil {
		return fmt.Errorf("point phase: %w", err)
	}
	for _, p := range due {
		if p.Points <= 1 {
			if err := database.DeleteAlertPoints(e.db, p.ID); err != nil {
				log.Printf("Failed to delete alert points %d: %v", p.ID, err)
				continue
			}
			e.countAction("points", "cleared")
			continue
		}

		decayDays := defaultPointDecayDays
		if gs, ok := cfg.GuildSettings(p.GuildID); ok && gs.PointDecayDays > 0 {
			decayDays = gs.PointDecayDays
		}
		next := now.AddDate(0, 0, decayDays)
		if err := database.UpdateAlertPoints(e.db, p.ID, p.Points-1, next.Unix()); err != nil {
			log.Printf("Failed to decay alert points %d: %v", p.ID, err)
			continue
		}
		e.countAction("points", "decayed")
	}
	return nil
}
