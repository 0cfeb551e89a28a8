package model

import "github.com/google/uuid"

// Actor is the authenticated caller of an operation. It is built by the auth
// middleware from the verified token and passed explicitly into services;
// nothing reads identity from ambient state.
type Actor struct {
	ID    uuid.UUID
	Email string
	Name  string
	Role  string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
