package wallet

import (
	"context"
	"errors"
	"strings"

	"campaignhub/internal/config"

	"go.uber.org/fx"
)

// Provider is the external wallet capability. RequestAccounts may prompt the
// user and be rejected; AuthorizedAccounts is the silent variant used for
// passive reconnection and must never prompt.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	AuthorizedAccounts(ctx context.Context) ([]string, error)
}

// ErrRejected reports that the user declined the account request.
var ErrRejected = errors.New("account request rejected")

// AccountWatcher is the optional accounts-changed feed of a capability. A
// nil channel means the capability never emits changes.
type AccountWatcher interface {
	AccountsChanged() <-chan []string
}

// FixtureProvider simulates the browser wallet extension with a fixed
// account list.
type FixtureProvider struct {
	Accounts []string
	// Authorized mirrors a wallet that already granted access, making the
	// accounts visible to the silent query.
	Authorized bool
	// RequestErr, when set, makes every prompt fail.
	RequestErr error
	// Changes, when set, feeds account switches to the session watcher.
	Changes chan []string
}

func (p *FixtureProvider) AccountsChanged() <-chan []string {
	return p.Changes
}

func (p *FixtureProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	if p.RequestErr != nil {
		return nil, p.RequestErr
	}
	return lowercased(p.Accounts), nil
}

func (p *FixtureProvider) AuthorizedAccounts(ctx context.Context) ([]string, error) {
	if !p.Authorized {
		return nil, nil
	}
	return lowercased(p.Accounts), nil
}

func lowercased(accounts []string) []string {
	out := make([]string, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, strings.ToLower(a))
	}
	return out
}

type providerParams struct {
	fx.In
	Cfg *config.Config
}

func NewProvider(p providerParams) Provider {
	return &FixtureProvider{
		Accounts:   p.Cfg.Wallet.Accounts,
		Authorized: p.Cfg.Wallet.Authorized,
	}
}
