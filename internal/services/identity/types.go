package identity

import (
	"context"
	"errors"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrTokenInvalid    = errors.New("identity token invalid")
)

// Account is one entry of the selectable-account prompt the provider
// presents before a binding resolves.
type Account struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Provider is the external sign-in capability. The production variant
// would be a real OAuth client; the simulator stands in for it with the
// same pending-then-resolved shape.
type Provider interface {
	// Accounts lists the accounts offered by the selection prompt.
	Accounts() []Account
	// Resolve completes a binding for the selected account and returns
	// a signed identity token carrying the external profile claims.
	Resolve(ctx context.Context, accountID string) (string, error)
}
