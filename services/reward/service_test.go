package reward

import (
	"context"
	"fmt"
	"testing"
	"time"

	"campaignhub/internal/config"
	"campaignhub/pkg/errutil"
	"campaignhub/pkg/notify"
	"campaignhub/pkg/sequence"
	"campaignhub/services/identity"
	"campaignhub/services/testutil"
	"campaignhub/services/wallet"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

type fixture struct {
	svc      *Service
	db       *gorm.DB
	identity *identity.Session
	wallet   *wallet.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t, &Reward{}, &Redemption{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Wallet.Balance = "12.5"
	w := wallet.NewSession(wallet.SessionParams{
		Provider: &wallet.FixtureProvider{Accounts: []string{"0xabc1"}},
		Notifier: &notify.Recorder{},
		Cfg:      cfg,
	})
	id := identity.NewSession(identity.SessionParams{Wallet: w, Notifier: &notify.Recorder{}})

	svc := NewService(ServiceParams{
		DB:       db,
		Node:     node,
		Seq:      sequence.NewGenerator(sequence.Params{}),
		Notifier: &notify.Recorder{},
		Identity: id,
	})

	return &fixture{svc: svc, db: db, identity: id, wallet: w}
}

func (f *fixture) login(t *testing.T) identity.User {
	t.Helper()
	require.NoError(t, f.wallet.Connect(context.Background()))
	user, err := f.identity.Login(identity.RoleParticipant, "Alice")
	require.NoError(t, err)
	return user
}

func (f *fixture) seedReward(t *testing.T, id string, cost, stock int64) *Reward {
	t.Helper()
	r := &Reward{ID: id, Name: "Reward " + id, PointsCost: cost, Category: "Shopping", Stock: stock}
	require.NoError(t, f.db.Create(r).Error)
	return r
}

func TestRedeem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.login(t)
	r := f.seedReward(t, "r1", 100, 5)

	red, err := f.svc.Redeem(ctx, r.ID)
	require.NoError(t, err)

	require.NotEmpty(t, red.ID)
	require.NotEmpty(t, red.Code)
	require.Equal(t, r.ID, red.RewardID)
	require.EqualValues(t, 100, red.PointsCost)

	user, _ := f.identity.Snapshot()
	require.EqualValues(t, 50, user.Points)

	got, err := f.svc.Get(ctx, r.ID)
	require.NoError(t, err)
	require.EqualValues(t, 4, got.Stock)

	history, err := f.svc.ListRedemptions(ctx, user.WalletAddress)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestRedeemInsufficientPoints(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.login(t)
	r := f.seedReward(t, "r1", 200, 5)

	_, err := f.svc.Redeem(ctx, r.ID)
	require.Error(t, err)

	var base errutil.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, errutil.StatusUnprocessableEntity, base.Code)

	// balance and stock untouched
	user, _ := f.identity.Snapshot()
	require.EqualValues(t, 150, user.Points)

	got, err := f.svc.Get(ctx, r.ID)
	require.NoError(t, err)
	require.EqualValues(t, 5, got.Stock)

	history, err := f.svc.ListRedemptions(ctx, "")
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestRedeemOutOfStock(t *testing.T) {
	f := newFixture(t)

	f.login(t)
	r := f.seedReward(t, "r1", 50, 0)

	_, err := f.svc.Redeem(context.Background(), r.ID)
	require.Error(t, err)

	user, _ := f.identity.Snapshot()
	require.EqualValues(t, 150, user.Points)
}

func TestRedeemWithoutSession(t *testing.T) {
	f := newFixture(t)
	r := f.seedReward(t, "r1", 50, 5)

	_, err := f.svc.Redeem(context.Background(), r.ID)
	require.Error(t, err)
}

func TestRedeemUnknownReward(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	_, err := f.svc.Redeem(context.Background(), "missing")
	require.Error(t, err)

	var base errutil.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, errutil.StatusNotFound, base.Code)
}

func TestListRedemptionsNewestFirstAndCapped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const wallet = "0xabc1"
	now := time.Now()
	for i := 0; i < maxRedemptionHistory+5; i++ {
		red := &Redemption{
			ID:         fmt.Sprintf("red_%03d", i),
			Code:       fmt.Sprintf("RED-%03d", i),
			RewardID:   "r1",
			RewardName: "Reward r1",
			PointsCost: 100,
			UserID:     "participant_1",
			Wallet:     wallet,
			RedeemedAt: now.Add(-time.Duration(i) * time.Hour),
		}
		require.NoError(t, f.db.Create(red).Error)
	}

	history, err := f.svc.ListRedemptions(ctx, wallet)
	require.NoError(t, err)
	require.Len(t, history, maxRedemptionHistory)

	for i := 1; i < len(history); i++ {
		require.False(t, history[i].RedeemedAt.After(history[i-1].RedeemedAt),
			"history must be newest first")
	}
	require.Equal(t, "red_000", history[0].ID)
}

func TestListOrdersByCost(t *testing.T) {
	f := newFixture(t)

	f.seedReward(t, "expensive", 500, 5)
	f.seedReward(t, "cheap", 50, 5)
	f.seedReward(t, "middle", 200, 5)

	rewards, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rewards, 3)
	require.Equal(t, "cheap", rewards[0].ID)
	require.Equal(t, "middle", rewards[1].ID)
	require.Equal(t, "expensive", rewards[2].ID)
}
