package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

type LogLevel string

const (
	Info  LogLevel = "INFO"
	Warn  LogLevel = "WARN"
	Error LogLevel = "ERROR"
)

type DiscordEmbedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type DiscordEmbed struct {
	Title  string              `json:"title"`
	Color  int                 `json:"color"`
	Fields []DiscordEmbedField `json:"fields"`
}

type DiscordWebhookPayload struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

func getColor(level LogLevel) int {
	switch level {
	case Info:
		return 3066993 // Green
	case Warn:
		return 15105570 // Orange
	case Error:
		return 15158332 // Red
	default:
		return 3447003 // Blue
	}
}

// AuditLogger posts corrective-action audit events to a Discord webhook.
// A nil logger or an empty webhook URL disables delivery; audit logging is
// never load-bearing for the engine.
type AuditLogger struct {
	WebhookURL string
	Client     *http.Client
}

func NewAuditLogger(webhookURL string) *AuditLogger {
	return &AuditLogger{WebhookURL: webhookURL, Client: &http.Client{}}
}

func (l *AuditLogger) send(level LogLevel, module, operation, detail string) error {
	if l == nil || l.WebhookURL == "" {
		return nil
	}
	embed := DiscordEmbed{
		Title: string(level) + " Log",
		Color: getColor(level),
		Fields: []DiscordEmbedField{
			{Name: "Module", Value: module},
			{Name: "Operation", Value: operation},
			{Name: "Details", Value: detail},
		},
	}

	payload := DiscordWebhookPayload{Embeds: []DiscordEmbed{embed}}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", l.WebhookURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := l.Client
	if client == nil {
		client = &http.Client{}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to send log to discord, status: %s, body: %s", resp.Status, string(body))
	}

	return nil
}

// Audit logs a corrective action; delivery failures are logged and dropped.
func (l *AuditLogger) Audit(level LogLevel, module, operation, detail string) {
	if err := l.send(level, module, operation, detail); err != nil {
		log.Printf("Failed to deliver audit event (%s/%s): %v", module, operation, err)
	}
}

func (l *AuditLogger) Info(module, operation, detail string) {
	l.Audit(Info, module, operation, detail)
}

func (l *AuditLogger) Warn(module, operation, detail string) {
	l.Audit(Warn, module, operation, detail)
}

func (l *AuditLogger) Error(module, operation, detail string) {
	l.Audit(Error, module, operation, detail)
}
