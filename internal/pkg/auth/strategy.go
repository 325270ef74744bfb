package auth

import (
	"time"

	"github.com/google/uuid"
)

// Strategy verifies and issues request tokens. Issuance belongs to the
// external auth system sharing the secret; this service only verifies.
type Strategy interface {
	IssueToken(userID uuid.UUID) (string, error)
	ParseToken(token string) (uuid.UUID, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
