package wallet

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"campaignhub/internal/config"
	"campaignhub/pkg/errutil"
	"campaignhub/pkg/notify"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

const emptyBalance = "0.0"

// Event describes a wallet state change delivered to subscribers.
type Event struct {
	Connected bool
	Address   string
}

// State is a point-in-time snapshot of the session.
type State struct {
	Address   string `json:"address,omitempty"`
	Connected bool   `json:"connected"`
	Balance   string `json:"balance"`
}

// Session is the single owner of the wallet connection state. All mutation
// goes through its methods; subscribers are invoked synchronously after each
// state change, before control returns to the caller.
type Session struct {
	provider Provider
	notifier notify.Notifier

	// balanceOnConnect is the simulated balance; no ledger backs it.
	balanceOnConnect string

	mu        sync.Mutex
	address   string
	connected bool
	balance   string
	subs      []func(Event)
}

type SessionParams struct {
	fx.In

	Provider Provider `optional:"true"`
	Notifier notify.Notifier
	Cfg      *config.Config
}

func NewSession(p SessionParams) *Session {
	balance := p.Cfg.Wallet.Balance
	if balance == "" {
		balance = "12.5"
	}
	return &Session{
		provider:         p.Provider,
		notifier:         p.Notifier,
		balanceOnConnect: balance,
		balance:          emptyBalance,
	}
}

// Subscribe registers a state-change observer. Observers run synchronously
// in registration order.
func (s *Session) Subscribe(fn func(Event)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Connect requests account access from the wallet capability. On any failure
// the session state is left unchanged and the failure is surfaced both as a
// notification and a typed error.
func (s *Session) Connect(ctx context.Context) error {
	if s.provider == nil {
		s.notifier.Notify("Wallet Not Found", "Install a browser wallet to connect", notify.SeverityError)
		return errutil.FailedDependency("wallet capability not found")
	}

	accounts, err := s.provider.RequestAccounts(ctx)
	if err != nil {
		zap.L().Warn("wallet connect failed", zap.Error(err))
		s.notifier.Notify("Connection Failed", "Failed to connect to the wallet", notify.SeverityError)
		return errutil.BadGateway("wallet connection failed", errutil.WithErr(err))
	}

	if len(accounts) == 0 {
		s.notifier.Notify("Connection Failed", "The wallet returned no accounts", notify.SeverityError)
		return errutil.BadGateway("wallet returned no accounts")
	}

	address := strings.ToLower(accounts[0])

	s.mu.Lock()
	s.address = address
	s.connected = true
	s.balance = s.balanceOnConnect
	s.mu.Unlock()

	s.notifier.Notify("Wallet Connected", fmt.Sprintf("Connected to %s", shortAddress(address)), notify.SeveritySuccess)
	s.emit(Event{Connected: true, Address: address})
	return nil
}

// Disconnect unconditionally clears the session. It has no failure mode.
func (s *Session) Disconnect() {
	s.mu.Lock()
	s.address = ""
	s.connected = false
	s.balance = emptyBalance
	s.mu.Unlock()

	s.notifier.Notify("Wallet Disconnected", "Your wallet has been disconnected", notify.SeverityInfo)
	s.emit(Event{Connected: false})
}

// Restore silently reinstates an already-authorized connection at startup.
// It never prompts and never notifies.
func (s *Session) Restore(ctx context.Context) {
	if s.provider == nil {
		return
	}

	accounts, err := s.provider.AuthorizedAccounts(ctx)
	if err != nil {
		zap.L().Debug("wallet restore skipped", zap.Error(err))
		return
	}
	if len(accounts) == 0 {
		return
	}

	address := strings.ToLower(accounts[0])

	s.mu.Lock()
	s.address = address
	s.connected = true
	s.balance = s.balanceOnConnect
	s.mu.Unlock()

	zap.L().Info("wallet session restored", zap.String("address", shortAddress(address)))
	s.emit(Event{Connected: true, Address: address})
}

// HandleAccountsChanged reacts to the capability's accounts-changed channel.
// An empty account list clears the session; a new first account replaces the
// current one.
func (s *Session) HandleAccountsChanged(accounts []string) {
	if len(accounts) == 0 {
		s.Disconnect()
		return
	}

	address := strings.ToLower(accounts[0])

	s.mu.Lock()
	s.address = address
	s.connected = true
	if s.balance == emptyBalance {
		s.balance = s.balanceOnConnect
	}
	s.mu.Unlock()

	s.emit(Event{Connected: true, Address: address})
}

// Watch consumes a capability's accounts-changed feed until the context
// ends or the feed closes.
func (s *Session) Watch(ctx context.Context, watcher AccountWatcher) {
	ch := watcher.AccountsChanged()
	if ch == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case accounts, ok := <-ch:
			if !ok {
				return
			}
			s.HandleAccountsChanged(accounts)
		}
	}
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Address:   s.address,
		Connected: s.connected,
		Balance:   s.balance,
	}
}

func (s *Session) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *Session) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

func (s *Session) emit(ev Event) {
	s.mu.Lock()
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

func shortAddress(address string) string {
	if len(address) < 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
