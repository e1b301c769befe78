package models

import "time"

// User represents a registered account.
// PasswordHash and SecretWordHash are bcrypt hashes and never leave the server.
type User struct {
	ID             string    `db:"id"               json:"id"`
	Username       string    `db:"username"         json:"username"`
	Nickname       string    `db:"nickname"         json:"nickname"`
	PasswordHash   string    `db:"password_hash"    json:"-"`
	SecretWordHash string    `db:"secret_word_hash" json:"-"`
	RefreshToken   *string   `db:"refresh_token"    json:"-"` // single active refresh token, nil until first issue
	CreatedAt      time.Time `db:"created_at"       json:"created_at"`
}

// UserRef is the author subset embedded in post and comment listings.
type UserRef struct {
	ID       string `db:"user_id"  json:"id"`
	Username string `db:"username" json:"username"`
	Nickname string `db:"nickname" json:"nickname"`
}
