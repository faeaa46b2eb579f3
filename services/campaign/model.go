package campaign

import (
	"time"

	"campaignhub/pkg/errutil"

	"gorm.io/datatypes"
)

type SubmissionType string

const (
	SubmissionTypePhoto SubmissionType = "photo"
	SubmissionTypeVideo SubmissionType = "video"
	SubmissionTypeText  SubmissionType = "text"
)

func ParseSubmissionType(s string) (SubmissionType, error) {
	switch SubmissionType(s) {
	case SubmissionTypePhoto, SubmissionTypeVideo, SubmissionTypeText:
		return SubmissionType(s), nil
	default:
		return "", errutil.ValidationFailed("unknown submission type", errutil.WithDetails(errutil.Detail{
			Field:   "submission_type",
			Message: "must be photo, video or text",
		}))
	}
}

// Status is derived from the deadline, never stored.
type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// Campaign is a brand-authored task with a point reward and deadline.
type Campaign struct {
	ID               string         `gorm:"column:id;primaryKey" json:"id"`
	Code             string         `gorm:"column:code" json:"code"`
	Slug             string         `gorm:"column:slug;index" json:"slug"`
	Brand            string         `gorm:"column:brand;not null" json:"brand"`
	Title            string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description      string         `gorm:"column:description;type:text" json:"description"`
	RewardPoints     int64          `gorm:"column:reward_points;not null" json:"reward_points"`
	Deadline         time.Time      `gorm:"column:deadline;not null" json:"deadline"`
	SubmissionType   SubmissionType `gorm:"column:submission_type;type:varchar(20);not null" json:"submission_type"`
	ParticipantCount int64          `gorm:"column:participant_count;not null;default:0" json:"participant_count"`
	SubmissionCount  int64          `gorm:"column:submission_count;not null;default:0" json:"submission_count"`
	Metadata         datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// Status reports whether the campaign is still open at the given time.
func (c *Campaign) Status(now time.Time) Status {
	if now.After(c.Deadline) {
		return StatusEnded
	}
	return StatusActive
}

func (c *Campaign) IsActive(now time.Time) bool {
	return c.Status(now) == StatusActive
}
