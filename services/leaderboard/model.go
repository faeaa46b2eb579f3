package leaderboard

import "time"

// MemberStat is one community member's standing. Seeded rows represent the
// wider community; the active identity session is merged in at read time.
type MemberStat struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	DisplayName  string    `gorm:"column:display_name;type:varchar(255);not null" json:"display_name"`
	Wallet       string    `gorm:"column:wallet;index" json:"wallet"`
	Points       int64     `gorm:"column:points;not null;default:0" json:"points"`
	TokensEarned int64     `gorm:"column:tokens_earned;not null;default:0" json:"tokens_earned"`
	Submissions  int64     `gorm:"column:submissions;not null;default:0" json:"submissions"`
	ApprovalRate int64     `gorm:"column:approval_rate;not null;default:0" json:"approval_rate"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// Entry is a ranked row as served to clients.
type Entry struct {
	Rank         int    `json:"rank"`
	DisplayName  string `json:"display_name"`
	Wallet       string `json:"wallet,omitempty"`
	Points       int64  `json:"points"`
	TokensEarned int64  `json:"tokens_earned"`
	Submissions  int64  `json:"submissions"`
	ApprovalRate int64  `json:"approval_rate"`
	IsSelf       bool   `json:"is_self,omitempty"`
}
