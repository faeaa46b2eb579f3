package campaign

import (
	"context"
	"strconv"
	"strings"
	"time"

	"campaignhub/pkg/db/option"
	"campaignhub/pkg/errutil"
	"campaignhub/pkg/logger"
	"campaignhub/pkg/repository"
	"campaignhub/pkg/sequence"

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

	campaign repository.Repository[Campaign]
}

type ServiceParams struct {
	fx.In

	DB   *gorm.DB
	Node *snowflake.Node
	Seq  sequence.Generator
}

func NewService(p ServiceParams) *Service {
	return &Service{
		db:       p.DB,
		node:     p.Node,
		seq:      p.Seq,
		campaign: repository.ProvideStore[Campaign](p.DB),
	}
}

// CreateParams carries the raw form values of the create action. RewardPoints
// and Deadline arrive as strings and must parse; validation is all-or-nothing
// with respect to the create.
type CreateParams struct {
	Brand          string
	Title          string
	Description    string
	RewardPoints   string
	Deadline       string
	SubmissionType string
}

func (s *Service) Create(ctx context.Context, p CreateParams) (*Campaign, error) {
	title := strings.TrimSpace(p.Title)
	description := strings.TrimSpace(p.Description)
	if title == "" || description == "" || p.RewardPoints == "" || p.Deadline == "" {
		return nil, errutil.ValidationFailed("title, description, reward points and deadline are required")
	}

	reward, err := strconv.ParseInt(p.RewardPoints, 10, 64)
	if err != nil || reward <= 0 {
		return nil, errutil.ValidationFailed("reward points must be a positive integer")
	}

	deadline, err := time.Parse("2006-01-02", p.Deadline)
	if err != nil {
		return nil, errutil.ValidationFailed("deadline must be a YYYY-MM-DD date")
	}

	submissionType, err := ParseSubmissionType(p.SubmissionType)
	if err != nil {
		return nil, err
	}

	code, err := s.seq.NextCampaignCode(ctx)
	if err != nil {
		logger.WithTrace(ctx).Error("failed to generate campaign code", zap.Error(err))
		return nil, err
	}

	c := &Campaign{
		ID:             s.node.Generate().String(),
		Code:           code,
		Slug:           slug.Make(title),
		Brand:          p.Brand,
		Title:          title,
		Description:    description,
		RewardPoints:   reward,
		Deadline:       deadline.Add(24*time.Hour - time.Second),
		SubmissionType: submissionType,
	}

	if err := s.campaign.Create(ctx, c); err != nil {
		logger.WithTrace(ctx).Error("failed to create campaign", zap.Error(err))
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Campaign, error) {
	c, err := s.campaign.FindOne(ctx, &Campaign{ID: id})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errutil.NotFound("campaign not found")
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]*Campaign, error) {
	return s.campaign.Find(ctx, nil)
}

// ListByBrand returns the campaigns a brand authored, newest first.
func (s *Service) ListByBrand(ctx context.Context, brand string) ([]*Campaign, error) {
	var campaigns []*Campaign
	if err := s.db.WithContext(ctx).
		Where("brand = ?", brand).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// ListActive returns campaigns whose deadline has not passed.
func (s *Service) ListActive(ctx context.Context, now time.Time) ([]*Campaign, error) {
	return s.campaign.Find(ctx, nil,
		option.ApplyOperator(option.Condition{Field: "deadline", Operator: option.GTE, Value: now}),
		option.WithSortBy(option.QuerySortBy{
			SortBy:  "created_at",
			OrderBy: "DESC",
			Allow:   map[string]bool{"created_at": true},
		}),
	)
}

// Summary computes the brand dashboard aggregates for one brand.
func (s *Service) Summary(ctx context.Context, brand string, now time.Time) (Summary, error) {
	campaigns, err := s.ListByBrand(ctx, brand)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(campaigns, now), nil
}
