package models

import "time"

// User is a stored user record. ID is the internal key and never leaves the
// server; PublicID is the identifier exposed to clients.
type User struct {
	ID                int64
	PublicID          string
	Email             string
	EncryptedPassword string
	FirstName         string
	LastName          string
	CreatedAt         time.Time
}

// WithoutPassword returns a copy of u with the password hash cleared.
func (u *User) WithoutPassword() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.EncryptedPassword = ""
	return &c
}
