package submission

import (
	"context"
	"strings"
	"time"

	"campaignhub/pkg/errutil"
	"campaignhub/pkg/logger"
	"campaignhub/pkg/notify"
	"campaignhub/pkg/repository"
	"campaignhub/pkg/sequence"
	"campaignhub/services/campaign"
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

	submission repository.Repository[Submission]
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
		submission: repository.ProvideStore[Submission](p.DB),
		now:        time.Now,
	}
}

type SubmitParams struct {
	Campaign     *campaign.Campaign
	AuthorWallet string
	AuthorName   string
	Content      string
	FileName     string
}

// Submit records a new pending entry against an active campaign. The row
// insert and the campaign's submission counter move in one transaction so
// the counter never drifts from the rows.
func (s *Service) Submit(ctx context.Context, p SubmitParams) (*Submission, error) {
	if p.Campaign == nil {
		return nil, errutil.NotFound("campaign not found")
	}

	now := s.now()
	if !p.Campaign.IsActive(now) {
		return nil, errutil.PreconditionFailed("campaign has ended")
	}

	content := strings.TrimSpace(p.Content)
	if content == "" {
		return nil, errutil.ValidationFailed("submission content is required")
	}

	fileName := strings.TrimSpace(p.FileName)
	switch p.Campaign.SubmissionType {
	case campaign.SubmissionTypePhoto, campaign.SubmissionTypeVideo:
		if fileName == "" {
			return nil, errutil.ValidationFailed("a file is required for this campaign", errutil.WithDetails(errutil.Detail{
				Field:   "file_name",
				Message: string(p.Campaign.SubmissionType) + " campaigns require an upload",
			}))
		}
	case campaign.SubmissionTypeText:
		fileName = ""
	}

	code, err := s.seq.NextSubmissionCode(ctx)
	if err != nil {
		logger.WithTrace(ctx).Error("failed to generate submission code", zap.Error(err))
		return nil, err
	}

	sub := &Submission{
		ID:            s.node.Generate().String(),
		Code:          code,
		CampaignID:    p.Campaign.ID,
		CampaignTitle: p.Campaign.Title,
		Brand:         p.Campaign.Brand,
		AuthorWallet:  p.AuthorWallet,
		AuthorName:    p.AuthorName,
		Content:       content,
		Type:          string(p.Campaign.SubmissionType),
		SubmittedAt:   now,
		Status:        StatusPending,
		RewardPoints:  p.Campaign.RewardPoints,
	}
	if fileName != "" {
		sub.FileName = &fileName
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.submission.WithTrx(tx).Create(ctx, sub); err != nil {
			return err
		}
		return tx.Model(&campaign.Campaign{}).
			Where("id = ?", p.Campaign.ID).
			UpdateColumn("submission_count", gorm.Expr("submission_count + ?", 1)).Error
	})
	if err != nil {
		logger.WithTrace(ctx).Error("failed to create submission", zap.Error(err))
		return nil, err
	}

	s.notifier.Notify("Submission Received",
		"your entry for "+p.Campaign.Title+" is pending review", notify.SeveritySuccess)

	return sub, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Submission, error) {
	sub, err := s.submission.FindOne(ctx, &Submission{ID: id})
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, errutil.NotFound("submission not found")
	}
	return sub, nil
}

func (s *Service) List(ctx context.Context) ([]*Submission, error) {
	var subs []*Submission
	if err := s.db.WithContext(ctx).
		Order("submitted_at DESC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// ListByBrand returns the submissions made against a brand's campaigns,
// newest first.
func (s *Service) ListByBrand(ctx context.Context, brand string) ([]*Submission, error) {
	var subs []*Submission
	if err := s.db.WithContext(ctx).
		Where("brand = ?", brand).
		Order("submitted_at DESC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Service) ListByAuthor(ctx context.Context, wallet string) ([]*Submission, error) {
	var subs []*Submission
	if err := s.db.WithContext(ctx).
		Where("author_wallet = ?", wallet).
		Order("submitted_at DESC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

type ReviewParams struct {
	SubmissionID string
	Approve      bool
	Feedback     string
}

// Review settles a pending submission. The transition is one-way: a
// submission that has already been reviewed cannot be reviewed again.
// Approving credits the author's active identity session when the session
// belongs to the same wallet.
func (s *Service) Review(ctx context.Context, p ReviewParams) (*Submission, error) {
	sub, err := s.Get(ctx, p.SubmissionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	status := StatusRejected
	if p.Approve {
		status = StatusApproved
	}

	updates := map[string]any{
		"status":      status,
		"reviewed_at": now,
	}
	feedback := strings.TrimSpace(p.Feedback)
	if feedback != "" {
		updates["feedback"] = feedback
	}

	// The pending check and the settle are one guarded statement, so of two
	// overlapping reviews only one can win; the loser sees zero rows.
	res := s.db.WithContext(ctx).Model(&Submission{}).
		Where("id = ? AND status = ?", sub.ID, StatusPending).
		Updates(updates)
	if res.Error != nil {
		logger.WithTrace(ctx).Error("failed to update submission", zap.Error(res.Error))
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errutil.PreconditionFailed("submission has already been reviewed")
	}

	sub.Status = status
	sub.ReviewedAt = &now
	if feedback != "" {
		sub.Feedback = &feedback
	}

	if sub.Status == StatusApproved {
		if user, ok := s.identity.Snapshot(); ok && user.WalletAddress == sub.AuthorWallet {
			s.identity.AddPoints(sub.RewardPoints)
			s.identity.AddTokens(sub.RewardPoints / 10)
		}
		s.notifier.Notify("Submission Approved",
			sub.AuthorName+" earned points for "+sub.CampaignTitle, notify.SeveritySuccess)
	} else {
		s.notifier.Notify("Submission Rejected",
			"entry for "+sub.CampaignTitle+" was not approved", notify.SeverityInfo)
	}

	return sub, nil
}
