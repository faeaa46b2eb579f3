package identity

import (
	"time"

	"campaignhub/pkg/errutil"
)

// Role is the closed set of identities the platform knows about. Every
// dispatch on a role switches exhaustively and rejects anything else, so a
// new role is a compile-visible change rather than a scattered string
// comparison.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleBrand       Role = "brand"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleParticipant:
		return RoleParticipant, nil
	case RoleBrand:
		return RoleBrand, nil
	default:
		return "", errutil.ValidationFailed("unknown role", errutil.WithDetails(errutil.Detail{
			Field:   "role",
			Message: "must be participant or brand",
		}))
	}
}

// User is the authenticated identity. IDs are generated at login and are not
// stable across runs.
type User struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"wallet_address"`
	Role          Role      `json:"role"`
	DisplayName   string    `json:"display_name"`
	Points        int64     `json:"points"`
	TokensEarned  int64     `json:"tokens_earned"`
	CreatedAt     time.Time `json:"created_at"`
}

// startingGrant returns the points and tokens a fresh identity begins with.
// Participants get a seed balance so the earn/redeem loop is immediately
// usable; brands start from zero.
func startingGrant(role Role) (points, tokens int64) {
	switch role {
	case RoleParticipant:
		return 150, 25
	case RoleBrand:
		return 0, 0
	default:
		return 0, 0
	}
}
