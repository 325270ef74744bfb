package model

import (
	"time"

	"github.com/google/uuid"
)

// Role describes the access level of a directory user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is the directory view of a registered customer. Credentials live in the
// external auth system and never pass through here.
type User struct {
	ID        uuid.UUID
	Login     string
	Role      Role
	CreatedAt time.Time
}
