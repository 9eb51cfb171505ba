package models

import "time"

// Roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a stored credential
type User struct {
	ID           int       `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	IsAdmin      bool      `bson:"isAdmin" json:"isAdmin"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Role returns the token role for the user.
func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}
