package models

import "time"

// User is a dashboard account. The login doubles as the Telegram session
// name in the linking flow.
type User struct {
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials is the body of POST /pressCode/auth.
type Credentials struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}
