package identity

import (
	"context"
	"testing"

	"campaignhub/internal/config"
	"campaignhub/pkg/errutil"
	"campaignhub/pkg/notify"
	"campaignhub/services/wallet"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func newConnectedWallet(t *testing.T) *wallet.Session {
	t.Helper()

	cfg := &config.Config{}
	cfg.Wallet.Balance = "12.5"
	w := wallet.NewSession(wallet.SessionParams{
		Provider: &wallet.FixtureProvider{Accounts: []string{"0xAbc123"}},
		Notifier: &notify.Recorder{},
		Cfg:      cfg,
	})
	require.NoError(t, w.Connect(context.Background()))
	return w
}

func newTestSession(t *testing.T) (*Session, *wallet.Session) {
	t.Helper()

	w := newConnectedWallet(t)
	s := NewSession(SessionParams{Wallet: w, Notifier: &notify.Recorder{}})
	w.Subscribe(s.handleWalletEvent)
	return s, w
}

func TestLoginParticipant(t *testing.T) {
	s, w := newTestSession(t)

	user, err := s.Login(RoleParticipant, "Alice")
	require.NoError(t, err)

	require.Equal(t, RoleParticipant, user.Role)
	require.Equal(t, w.Address(), user.WalletAddress)
	require.EqualValues(t, 150, user.Points)
	require.EqualValues(t, 25, user.TokensEarned)
	require.Contains(t, user.ID, "participant_")
	require.True(t, s.Authenticated())
}

func TestLoginBrandStartsFromZero(t *testing.T) {
	s, _ := newTestSession(t)

	user, err := s.Login(RoleBrand, "CoffeeCorp")
	require.NoError(t, err)

	require.Equal(t, RoleBrand, user.Role)
	require.Zero(t, user.Points)
	require.Zero(t, user.TokensEarned)
}

func TestLoginValidation(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.Login(RoleParticipant, "   ")
	require.Error(t, err)

	var base errutil.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, errutil.StatusValidationFailed, base.Code)
	require.False(t, s.Authenticated())
}

func TestLoginRequiresConnectedWallet(t *testing.T) {
	s, w := newTestSession(t)
	w.Disconnect()

	_, err := s.Login(RoleParticipant, "Alice")
	require.Error(t, err)

	var base errutil.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, errutil.StatusUnprocessableEntity, base.Code)
}

func TestWalletDisconnectCascades(t *testing.T) {
	s, w := newTestSession(t)

	_, err := s.Login(RoleParticipant, "Alice")
	require.NoError(t, err)
	require.True(t, s.Authenticated())

	w.Disconnect()

	require.False(t, s.Authenticated(), "identity must end with the wallet session")
}

func TestAddPoints(t *testing.T) {
	s, _ := newTestSession(t)

	// without a session the delta is dropped
	s.AddPoints(100)
	_, ok := s.Snapshot()
	require.False(t, ok)

	_, err := s.Login(RoleParticipant, "Alice")
	require.NoError(t, err)

	s.AddPoints(50)
	s.AddTokens(5)

	user, ok := s.Snapshot()
	require.True(t, ok)
	require.EqualValues(t, 200, user.Points)
	require.EqualValues(t, 30, user.TokensEarned)
}

func TestSpendPoints(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.Login(RoleParticipant, "Alice")
	require.NoError(t, err)

	// 150 seeded, 200 requested: the balance must be untouched
	err = s.SpendPoints(200)
	require.Error(t, err)

	var base errutil.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, errutil.StatusUnprocessableEntity, base.Code)

	user, _ := s.Snapshot()
	require.EqualValues(t, 150, user.Points)

	require.NoError(t, s.SpendPoints(150))
	user, _ = s.Snapshot()
	require.Zero(t, user.Points)

	require.Error(t, s.SpendPoints(0), "non-positive cost is rejected")
}

func TestSpendPointsWithoutSession(t *testing.T) {
	s, _ := newTestSession(t)

	err := s.SpendPoints(10)
	require.Error(t, err)
}

func TestLoginLogoutNotifies(t *testing.T) {
	w := newConnectedWallet(t)
	rec := &notify.Recorder{}
	s := NewSession(SessionParams{Wallet: w, Notifier: rec})

	_, err := s.Login(RoleParticipant, "Alice")
	require.NoError(t, err)
	require.Equal(t, "Login Successful", rec.Events[len(rec.Events)-1].Title)

	s.Logout()
	require.Equal(t, "Logged Out", rec.Events[len(rec.Events)-1].Title)

	// idempotent logout stays quiet
	seen := len(rec.Events)
	s.Logout()
	require.Len(t, rec.Events, seen)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("participant")
	require.NoError(t, err)
	require.Equal(t, RoleParticipant, role)

	role, err = ParseRole("brand")
	require.NoError(t, err)
	require.Equal(t, RoleBrand, role)

	_, err = ParseRole("admin")
	require.Error(t, err)
}
