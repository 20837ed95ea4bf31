// Package session holds the staff member's identity and bearer token for the
// duration of their visit. State is persisted in two durable client-side
// entries ("token" and "user") and hydrated back at construction; everything
// past the auth service boundary sees only the normalized user shape.
package session

import (
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/api"
)

// User is the normalized internal user shape. The auth service speaks
// lower-case field names (firstname, lastname); NormalizeUser is the single
// point where that convention is translated, so views never see the raw
// shape.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u User) IsAdmin() bool { return u.Role == "admin" }

// NormalizeUser maps the auth service's raw user record to the internal
// shape.
func NormalizeUser(raw api.RawUser) User {
	return User{
		ID:        raw.ID,
		FirstName: raw.FirstName,
		LastName:  raw.LastName,
		Email:     raw.Email,
		Role:      raw.Role,
	}
}
