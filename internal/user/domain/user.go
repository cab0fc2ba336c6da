package domain

import "time"

type ID string

type User struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	CreatedAt    time.Time
}
