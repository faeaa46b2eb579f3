package reward

import "time"

// Reward is a catalog item purchasable with points. Stock is decremented on
// redemption and never goes below zero.
type Reward struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	PointsCost  int64     `gorm:"column:points_cost;not null" json:"points_cost"`
	Category    string    `gorm:"column:category;index" json:"category"`
	Stock       int64     `gorm:"column:stock;not null;default:0" json:"stock"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (r *Reward) InStock() bool {
	return r.Stock > 0
}

// Redemption is the audit record written when a redemption settles. The
// points figures are copied at redemption time so later catalog edits do not
// rewrite history.
type Redemption struct {
	ID         string    `gorm:"column:id;primaryKey" json:"id"`
	Code       string    `gorm:"column:code" json:"code"`
	RewardID   string    `gorm:"column:reward_id;index;not null" json:"reward_id"`
	RewardName string    `gorm:"column:reward_name" json:"reward_name"`
	PointsCost int64     `gorm:"column:points_cost;not null" json:"points_cost"`
	UserID     string    `gorm:"column:user_id;index" json:"user_id"`
	Wallet     string    `gorm:"column:wallet;index" json:"wallet"`
	RedeemedAt time.Time `gorm:"column:redeemed_at;not null" json:"redeemed_at"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}
