package bootstrap

import (
	"context"
	"fmt"
	"time"

	"campaignhub/pkg/repository"
	"campaignhub/pkg/sequence"
	"campaignhub/services/campaign"
	"campaignhub/services/leaderboard"
	"campaignhub/services/reward"
	"campaignhub/services/submission"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db   *gorm.DB
	node *snowflake.Node
	seq  sequence.Generator

	campaigns repository.Repository[campaign.Campaign]
	rewards   repository.Repository[reward.Reward]
	stats     repository.Repository[leaderboard.MemberStat]
}

type ServiceParams struct {
	fx.In
	DB   *gorm.DB
	Node *snowflake.Node
	Seq  sequence.Generator
}

func NewService(p ServiceParams) *Service {
	return &Service{
		db:        p.DB,
		node:      p.Node,
		seq:       p.Seq,
		campaigns: repository.ProvideStore[campaign.Campaign](p.DB),
		rewards:   repository.ProvideStore[reward.Reward](p.DB),
		stats:     repository.ProvideStore[leaderboard.MemberStat](p.DB),
	}
}

// Migrate creates the schema and, on an empty store, loads the demo fixture
// set. Seeding is keyed on the campaigns table so a restart against a
// persistent database does not duplicate rows.
func (s *Service) Migrate() error {
	ctx := context.Background()

	if err := s.db.AutoMigrate(
		&campaign.Campaign{},
		&submission.Submission{},
		&reward.Reward{},
		&reward.Redemption{},
		&leaderboard.MemberStat{},
	); err != nil {
		zap.L().Error("[bootstrap] migration failed", zap.Error(err))
		return err
	}

	count, err := s.campaigns.Count(ctx, nil)
	if err != nil {
		zap.L().Error("[bootstrap] failed to check existing campaigns", zap.Error(err))
		return err
	}
	if count > 0 {
		zap.L().Info("[bootstrap] store already seeded, skipping fixtures")
		return nil
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		campaigns, err := s.seedCampaigns(ctx, tx)
		if err != nil {
			return err
		}
		if err := s.seedSubmissions(ctx, tx, campaigns); err != nil {
			return err
		}
		if err := s.rewards.WithTrx(tx).BatchCreate(ctx, s.rewardFixtures()); err != nil {
			return fmt.Errorf("failed to seed rewards: %w", err)
		}
		if err := s.stats.WithTrx(tx).BatchCreate(ctx, s.memberStatFixtures()); err != nil {
			return fmt.Errorf("failed to seed leaderboard: %w", err)
		}
		return nil
	}); err != nil {
		zap.L().Error("[bootstrap] failed to seed fixtures", zap.Error(err))
		return err
	}

	zap.L().Info("[bootstrap] demo fixtures seeded")
	return nil
}

type campaignFixture struct {
	brand          string
	title          string
	description    string
	rewardPoints   int64
	daysLeft       int
	submissionType campaign.SubmissionType
	participants   int64
	submissions    int64
}

func (s *Service) seedCampaigns(ctx context.Context, tx *gorm.DB) (map[string]*campaign.Campaign, error) {
	fixtures := []campaignFixture{
		{
			brand:          "CoffeeCorp",
			title:          "Share Your Coffee Moment",
			description:    "Post a photo of your favorite CoffeeCorp drink and tell us what makes it special.",
			rewardPoints:   50,
			daysLeft:       14,
			submissionType: campaign.SubmissionTypePhoto,
			participants:   234,
			submissions:    2,
		},
		{
			brand:          "FitGear",
			title:          "30-Day Fitness Challenge",
			description:    "Record a short video of your workout routine using any FitGear equipment.",
			rewardPoints:   75,
			daysLeft:       30,
			submissionType: campaign.SubmissionTypeVideo,
			participants:   145,
			submissions:    1,
		},
		{
			brand:          "TechHub",
			title:          "Gadget Review Contest",
			description:    "Write an honest review of a gadget you bought from TechHub this year.",
			rewardPoints:   100,
			daysLeft:       7,
			submissionType: campaign.SubmissionTypeText,
			participants:   89,
			submissions:    1,
		},
	}

	now := time.Now()
	out := make(map[string]*campaign.Campaign, len(fixtures))
	for _, f := range fixtures {
		code, err := s.seq.NextCampaignCode(ctx)
		if err != nil {
			return nil, err
		}
		c := &campaign.Campaign{
			ID:               s.node.Generate().String(),
			Code:             code,
			Slug:             slug.Make(f.title),
			Brand:            f.brand,
			Title:            f.title,
			Description:      f.description,
			RewardPoints:     f.rewardPoints,
			Deadline:         now.AddDate(0, 0, f.daysLeft),
			SubmissionType:   f.submissionType,
			ParticipantCount: f.participants,
			SubmissionCount:  f.submissions,
		}
		if err := tx.Create(c).Error; err != nil {
			return nil, fmt.Errorf("failed to seed campaign %q: %w", f.title, err)
		}
		out[f.brand] = c
	}
	return out, nil
}

type submissionFixture struct {
	brand    string
	author   string
	wallet   string
	content  string
	fileName string
	status   submission.Status
	feedback string
	daysAgo  int
}

func (s *Service) seedSubmissions(ctx context.Context, tx *gorm.DB, campaigns map[string]*campaign.Campaign) error {
	fixtures := []submissionFixture{
		{
			brand:    "CoffeeCorp",
			author:   "Alice Cooper",
			wallet:   "0x1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b",
			content:  "My morning cold brew on the office terrace. Nothing beats it.",
			fileName: "cold-brew-terrace.jpg",
			status:   submission.StatusApproved,
			feedback: "Great shot, thanks for sharing!",
			daysAgo:  5,
		},
		{
			brand:    "CoffeeCorp",
			author:   "Bob Wilson",
			wallet:   "0x2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c",
			content:  "Latte art attempt number forty-two. Getting closer.",
			fileName: "latte-art.jpg",
			status:   submission.StatusPending,
			daysAgo:  2,
		},
		{
			brand:    "FitGear",
			author:   "Charlie Brown",
			wallet:   "0x3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d",
			content:  "Day 12 of the challenge, resistance band circuit.",
			fileName: "day12-circuit.mp4",
			status:   submission.StatusRejected,
			feedback: "Video is too dark to see the equipment, please resubmit.",
			daysAgo:  4,
		},
		{
			brand:   "TechHub",
			author:  "Diana Prince",
			wallet:  "0x4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d3e",
			content: "Three months with the noise-cancelling headphones: battery life is as advertised, the app less so.",
			status:  submission.StatusApproved,
			daysAgo: 1,
		},
	}

	now := time.Now()
	for _, f := range fixtures {
		c, ok := campaigns[f.brand]
		if !ok {
			return fmt.Errorf("no seeded campaign for brand %q", f.brand)
		}

		code, err := s.seq.NextSubmissionCode(ctx)
		if err != nil {
			return err
		}

		submittedAt := now.AddDate(0, 0, -f.daysAgo)
		sub := &submission.Submission{
			ID:            s.node.Generate().String(),
			Code:          code,
			CampaignID:    c.ID,
			CampaignTitle: c.Title,
			Brand:         c.Brand,
			AuthorWallet:  f.wallet,
			AuthorName:    f.author,
			Content:       f.content,
			Type:          string(c.SubmissionType),
			SubmittedAt:   submittedAt,
			Status:        f.status,
			RewardPoints:  c.RewardPoints,
		}
		if f.fileName != "" {
			fileName := f.fileName
			sub.FileName = &fileName
		}
		if f.status != submission.StatusPending {
			reviewedAt := submittedAt.Add(12 * time.Hour)
			sub.ReviewedAt = &reviewedAt
		}
		if f.feedback != "" {
			feedback := f.feedback
			sub.Feedback = &feedback
		}

		if err := tx.Create(sub).Error; err != nil {
			return fmt.Errorf("failed to seed submission by %q: %w", f.author, err)
		}
	}
	return nil
}

func (s *Service) rewardFixtures() []*reward.Reward {
	fixtures := []struct {
		name        string
		description string
		cost        int64
		category    string
		stock       int64
	}{
		{"$5 Coffee Voucher", "Redeemable at any participating coffee shop.", 100, "Food & Drink", 50},
		{"$10 Mobile Recharge", "Top up any prepaid mobile number.", 200, "Utilities", 100},
		{"$25 Shopping Voucher", "Valid across all partner online stores.", 500, "Shopping", 25},
		{"Gaming Credits", "In-game currency pack for supported titles.", 300, "Entertainment", 75},
		{"Crypto Tokens", "A small bundle of platform tokens sent to your wallet.", 50, "Crypto", 999},
		{"Premium Membership", "One month of ad-free premium access.", 400, "Entertainment", 30},
	}

	out := make([]*reward.Reward, 0, len(fixtures))
	for _, f := range fixtures {
		out = append(out, &reward.Reward{
			ID:          s.node.Generate().String(),
			Name:        f.name,
			Description: f.description,
			PointsCost:  f.cost,
			Category:    f.category,
			Stock:       f.stock,
		})
	}
	return out
}

func (s *Service) memberStatFixtures() []*leaderboard.MemberStat {
	fixtures := []struct {
		name         string
		points       int64
		tokens       int64
		submissions  int64
		approvalRate int64
	}{
		{"Alice Cooper", 2450, 245, 12, 92},
		{"Bob Wilson", 2180, 218, 10, 88},
		{"Charlie Brown", 1950, 195, 9, 95},
		{"Diana Prince", 1720, 172, 8, 90},
		{"Eva Rodriguez", 1580, 158, 7, 86},
		{"Frank Miller", 1420, 142, 7, 79},
		{"Grace Chen", 1280, 128, 6, 91},
		{"Henry Davis", 1150, 115, 5, 84},
		{"Ivy Thompson", 980, 98, 4, 81},
	}

	out := make([]*leaderboard.MemberStat, 0, len(fixtures))
	for _, f := range fixtures {
		out = append(out, &leaderboard.MemberStat{
			ID:           s.node.Generate().String(),
			DisplayName:  f.name,
			Points:       f.points,
			TokensEarned: f.tokens,
			Submissions:  f.submissions,
			ApprovalRate: f.approvalRate,
		})
	}
	return out
}
