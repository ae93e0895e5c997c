package model

import "encoding/json"

// StrikeToken tracks how many decay cycles remain before a specific strike
// case is retired. Tokens decay FIFO, oldest first.
type StrikeToken struct {
	CaseID    int64 `json:"case_id"`
	Remaining int   `json:"remaining"`
}

// StrikeRecord counts active strikes for a user in a guild.
type StrikeRecord struct {
	ID           int64  `db:"id"`
	GuildID      string `db:"guild_id"`
	UserID       string `db:"user_id"`
	Count        int    `db:"count"`
	Tokens       string `db:"tokens"` // JSON-encoded ordered []StrikeToken
	NextExpiryAt int64  `db:"next_expiry_at"`
}

// DecodeTokens parses the encoded token list.
func (r StrikeRecord) DecodeTokens() ([]StrikeToken, error) {
	if r.Tokens == "" || r.Tokens == "[]" {
		return nil, nil
	}
	var tokens []StrikeToken
	if err := json.Unmarshal([]byte(r.Tokens), &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// EncodeStrikeTokens serializes a token list for storage.
func EncodeStrikeTokens(tokens []StrikeToken) (string, error) {
	b, err := json.Marshal(tokens)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
