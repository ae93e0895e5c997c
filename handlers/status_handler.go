package handlers

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"guardian-bot/bot"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HandleStatus reports host and gateway health, including the sampled ping history.
func HandleStatus(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cpuCount, _ := cpu.Counts(true)
	cpuPercent, _ := cpu.Percent(0, false)
	vm, _ := mem.VirtualMemory()
	hostInfo, _ := host.Info()

	cpuUsage := 0.0
	if len(cpuPercent) > 0 {
		cpuUsage = cpuPercent[0]
	}

	samples := b.Pings.Snapshot()
	pingHistory := "no samples yet"
	if len(samples) > 0 {
		var sum float64
		for _, sample := range samples {
			sum += sample.HeartbeatMS
		}
		latest := samples[len(samples)-1]
		pingHistory = fmt.Sprintf("%.0f ms now, %.0f ms avg over %d samples",
			latest.HeartbeatMS, sum/float64(len(samples)), len(samples))
	}

	embed := &discordgo.MessageEmbed{
		Title: "Status",
		Color: 0x5865F2, // Discord Blurple
		Fields: []*discordgo.MessageEmbedField{
			{Name: "OS", Value: fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion), Inline: true},
			{Name: "Go version", Value: runtime.Version(), Inline: true},
			{Name: "Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
			{Name: "CPUs", Value: fmt.Sprintf("%d", cpuCount), Inline: true},
			{Name: "CPU usage", Value: fmt.Sprintf("%.1f%%", cpuUsage), Inline: true},
			{Name: "Memory", Value: fmt.Sprintf("%.1f%% (%d MB / %d MB)", vm.UsedPercent, vm.Used/1024/1024, vm.Total/1024/1024), Inline: true},
			{Name: "Gateway latency", Value: s.HeartbeatLatency().String(), Inline: true},
			{Name: "Ping history", Value: pingHistory, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("guardian-bot · %s", time.Now().Format("15:04")),
		},
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	}); err != nil {
		log.Printf("Failed to respond to status command: %v", err)
	}
}
