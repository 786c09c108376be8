package identity

import (
	"context"
	"time"
)

// Simulator models the external identity provider locally: a fixed
// account prompt and a resolution delay before the identity token comes
// back. The delay is a UX placeholder, not a timing contract; tests run
// it at zero.
type Simulator struct {
	accounts []Account
	latency  time.Duration
	codec    *TokenCodec
}

func NewSimulator(accounts []Account, latency time.Duration, codec *TokenCodec) *Simulator {
	return &Simulator{
		accounts: accounts,
		latency:  latency,
		codec:    codec,
	}
}

func (s *Simulator) Accounts() []Account {
	out := make([]Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

func (s *Simulator) Resolve(ctx context.Context, accountID string) (string, error) {
	var selected *Account
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			selected = &s.accounts[i]
			break
		}
	}
	if selected == nil {
		return "", ErrAccountNotFound
	}

	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	return s.codec.Mint(*selected)
}
