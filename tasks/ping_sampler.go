package tasks

import (
	"log"
	"time"

	"guardian-bot/model"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
)

// SamplePing records one gateway latency / host load measurement into the
// bot-owned ring buffer. Called on a fixed interval by the scheduler.
func SamplePing(s *discordgo.Session, buf *model.SampleBuffer) {
	sample := model.Sample{
		TakenAt:     time.Now(),
		HeartbeatMS: float64(s.HeartbeatLatency().Milliseconds()),
	}

	if percents, err := cpu.Percent(0, false); err != nil {
		log.Printf("Failed to sample CPU usage: %v", err)
	} else if len(percents) > 0 {
		sample.CPUPercent = percents[0]
	}

	buf.Push(sample)
}
