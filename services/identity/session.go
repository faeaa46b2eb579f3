package identity

import (
	"strings"
	"sync"
	"time"

	"campaignhub/pkg/errutil"
	"campaignhub/pkg/notify"
	"campaignhub/services/wallet"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Session owns the authenticated-user record. It can only hold a user while
// the originating wallet session is connected; the wallet's disconnect event
// cascades into an automatic logout.
type Session struct {
	wallet   *wallet.Session
	notifier notify.Notifier

	mu   sync.Mutex
	user *User
}

type SessionParams struct {
	fx.In

	Wallet   *wallet.Session
	Notifier notify.Notifier
}

func NewSession(p SessionParams) *Session {
	return &Session{
		wallet:   p.Wallet,
		notifier: p.Notifier,
	}
}

// Login creates a fresh identity bound to the connected wallet. It fails
// without touching session state when the wallet is disconnected or the
// display name is blank.
func (s *Session) Login(role Role, displayName string) (User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return User{}, errutil.ValidationFailed("display name is required")
	}

	if !s.wallet.Connected() {
		return User{}, errutil.PreconditionFailed("wallet not connected")
	}

	points, tokens := startingGrant(role)
	user := &User{
		ID:            string(role) + "_" + uuid.NewString(),
		WalletAddress: s.wallet.Address(),
		Role:          role,
		DisplayName:   displayName,
		Points:        points,
		TokensEarned:  tokens,
		CreatedAt:     time.Now().UTC(),
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	zap.L().Info("identity session started",
		zap.String("user_id", user.ID),
		zap.String("role", string(role)),
	)
	s.notifier.Notify("Login Successful", "Welcome back, "+displayName, notify.SeveritySuccess)

	return *user, nil
}

// Logout clears the identity session. It is idempotent.
func (s *Session) Logout() {
	s.mu.Lock()
	active := s.user != nil
	s.user = nil
	s.mu.Unlock()

	if active {
		zap.L().Info("identity session ended")
		s.notifier.Notify("Logged Out", "Your session has ended", notify.SeverityInfo)
	}
}

// AddPoints applies a point delta to the active identity. It is a no-op
// without a session. Deltas are not clamped; spending goes through
// SpendPoints which validates atomically.
func (s *Session) AddPoints(delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	s.user.Points += delta
}

// AddTokens credits earned tokens alongside a point award.
func (s *Session) AddTokens(delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	s.user.TokensEarned += delta
}

// SpendPoints is the single compare-and-deduct for point-costing actions.
// The balance check and the deduction happen under one lock so two rapid
// redemptions can never drive the balance negative.
func (s *Session) SpendPoints(cost int64) error {
	if cost <= 0 {
		return errutil.ValidationFailed("cost must be a positive integer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return errutil.PreconditionFailed("no active session")
	}
	if s.user.Points < cost {
		return errutil.PreconditionFailed("insufficient points")
	}

	s.user.Points -= cost
	return nil
}

// Snapshot returns a copy of the active user, if any.
func (s *Session) Snapshot() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Authenticated reports whether an identity session is active.
func (s *Session) Authenticated() bool {
	_, ok := s.Snapshot()
	return ok
}

// handleWalletEvent implements the cascade rule: a wallet disconnect while a
// session is active logs the identity out synchronously.
func (s *Session) handleWalletEvent(ev wallet.Event) {
	if ev.Connected {
		return
	}
	if s.Authenticated() {
		zap.L().Info("wallet disconnected, ending identity session")
		s.Logout()
	}
}
