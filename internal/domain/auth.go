package domain

import "context"

// AuthMethod records which credential authenticated a request.
type AuthMethod string

const (
	AuthMethodSession AuthMethod = "session"
	AuthMethodToken   AuthMethod = "token"
)

// Credentials are the raw values pulled off a request. Any of them may be empty.
type Credentials struct {
	SessionID   string
	BearerToken string
	QueryToken  string
}

type Identity struct {
	User   *User
	Method AuthMethod
}

// IdentityResolver turns request credentials into an authenticated user.
type IdentityResolver interface {
	Resolve(ctx context.Context, creds Credentials) (*Identity, error)
}
