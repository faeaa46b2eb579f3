package submission

import (
	"time"

	"campaignhub/pkg/errutil"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", errutil.ValidationFailed("unknown submission status", errutil.WithDetails(errutil.Detail{
			Field:   "status",
			Message: "must be pending, approved or rejected",
		}))
	}
}

// Submission is a participant's entry against a campaign. Its status moves
// pending -> approved or pending -> rejected exactly once, by a brand
// reviewer action; nothing moves it back.
type Submission struct {
	ID            string     `gorm:"column:id;primaryKey" json:"id"`
	Code          string     `gorm:"column:code" json:"code"`
	CampaignID    string     `gorm:"column:campaign_id;index;not null" json:"campaign_id"`
	CampaignTitle string     `gorm:"column:campaign_title" json:"campaign_title"`
	Brand         string     `gorm:"column:brand" json:"brand"`
	AuthorWallet  string     `gorm:"column:author_wallet;index;not null" json:"author_wallet"`
	AuthorName    string     `gorm:"column:author_name" json:"author_name"`
	Content       string     `gorm:"column:content;type:text;not null" json:"content"`
	Type          string     `gorm:"column:type" json:"type"`
	FileName      *string    `gorm:"column:file_name" json:"file_name,omitempty"`
	SubmittedAt   time.Time  `gorm:"column:submitted_at;not null" json:"submitted_at"`
	ReviewedAt    *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	Status        Status     `gorm:"column:status;type:varchar(20);not null;default:'pending'" json:"status"`
	RewardPoints  int64      `gorm:"column:reward_points" json:"reward_points"`
	Feedback      *string    `gorm:"column:feedback" json:"feedback,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
