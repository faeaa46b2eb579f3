package reward

import (
	"context"
	"time"

	"campaignhub/pkg/db/option"
	"campaignhub/pkg/errutil"
	"campaignhub/pkg/logger"
	"campaignhub/pkg/notify"
	"campaignhub/pkg/repository"
	"campaignhub/pkg/sequence"
	"campaignhub/services/identity"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	node     *snowflake.Node
	seq      sequence.Generator
	notifier notify.Notifier
	identity *identity.Session

	reward     repository.Repository[Reward]
	redemption repository.Repository[Redemption]
	now        func() time.Time
}

type ServiceParams struct {
	fx.In

	DB       *gorm.DB
	Node     *snowflake.Node
	Seq      sequence.Generator
	Notifier notify.Notifier
	Identity *identity.Session
}

func NewService(p ServiceParams) *Service {
	return &Service{
		db:         p.DB,
		node:       p.Node,
		seq:        p.Seq,
		notifier:   p.Notifier,
		identity:   p.Identity,
		reward:     repository.ProvideStore[Reward](p.DB),
		redemption: repository.ProvideStore[Redemption](p.DB),
		now:        time.Now,
	}
}

// List returns the catalog, cheapest first.
func (s *Service) List(ctx context.Context) ([]*Reward, error) {
	return s.reward.Find(ctx, nil, option.WithSortBy(option.QuerySortBy{
		SortBy:  "points_cost",
		OrderBy: "ASC",
		Allow:   map[string]bool{"points_cost": true},
	}))
}

func (s *Service) Get(ctx context.Context, id string) (*Reward, error) {
	r, err := s.reward.FindOne(ctx, &Reward{ID: id})
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errutil.NotFound("reward not found")
	}
	return r, nil
}

// Redeem exchanges session points for a catalog item. The balance check and
// deduction are a single compare-and-deduct on the identity session, and the
// stock decrement is guarded so it cannot underflow; if the write fails after
// points were taken, the points are restored.
func (s *Service) Redeem(ctx context.Context, rewardID string) (*Redemption, error) {
	r, err := s.Get(ctx, rewardID)
	if err != nil {
		return nil, err
	}
	if !r.InStock() {
		return nil, errutil.PreconditionFailed("reward out of stock")
	}

	user, ok := s.identity.Snapshot()
	if !ok {
		return nil, errutil.PreconditionFailed("no active session")
	}

	code, err := s.seq.NextRedemptionCode(ctx)
	if err != nil {
		logger.WithTrace(ctx).Error("failed to generate redemption code", zap.Error(err))
		return nil, err
	}

	if err := s.identity.SpendPoints(r.PointsCost); err != nil {
		s.notifier.Notify("Redemption Failed", "not enough points for "+r.Name, notify.SeverityError)
		return nil, err
	}

	red := &Redemption{
		ID:         s.node.Generate().String(),
		Code:       code,
		RewardID:   r.ID,
		RewardName: r.Name,
		PointsCost: r.PointsCost,
		UserID:     user.ID,
		Wallet:     user.WalletAddress,
		RedeemedAt: s.now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Reward{}).
			Where("id = ? AND stock > 0", r.ID).
			UpdateColumn("stock", gorm.Expr("stock - ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errutil.PreconditionFailed("reward out of stock")
		}
		return s.redemption.WithTrx(tx).Create(ctx, red)
	})
	if err != nil {
		s.identity.AddPoints(r.PointsCost)
		logger.WithTrace(ctx).Error("failed to record redemption", zap.Error(err))
		return nil, err
	}

	s.notifier.Notify("Reward Redeemed", r.Name+" redeemed for "+user.DisplayName, notify.SeveritySuccess)
	return red, nil
}

// maxRedemptionHistory caps how many past redemptions a listing returns.
const maxRedemptionHistory = 50

// ListRedemptions returns redemption history for a wallet, newest first.
func (s *Service) ListRedemptions(ctx context.Context, wallet string) ([]*Redemption, error) {
	var query *Redemption
	if wallet != "" {
		query = &Redemption{Wallet: wallet}
	}
	return s.redemption.Find(ctx, query,
		option.WithSortBy(option.QuerySortBy{
			SortBy:  "redeemed_at",
			OrderBy: "DESC",
			Allow:   map[string]bool{"redeemed_at": true},
		}),
		option.WithLimit(maxRedemptionHistory),
	)
}
