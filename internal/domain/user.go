package domain

import "time"

// Role distinguishes administrators from regular requesters.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is the domain model for accounts that submit or triage tickets.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Department   string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is a user profile with credential material removed,
// safe to return to a client.
type PublicUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Role       Role   `json:"role"`
}

// Public strips the password hash from a user record.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Department: u.Department,
		Role:       u.Role,
	}
}
