package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2id encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
