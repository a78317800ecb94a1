// Package models defines client-side data models used by the userkeeper CLI.
package models

// User is the public view of an account as returned by the API.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Registration carries the fields needed to create an account.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Session is what a successful login yields.
type Session struct {
	Token    string
	PublicID string
	Email    string
}
