package leaderboard

import (
	"context"
	"sort"

	"campaignhub/pkg/repository"
	"campaignhub/services/identity"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	identity *identity.Session

	stats repository.Repository[MemberStat]
}

type ServiceParams struct {
	fx.In

	DB       *gorm.DB
	Identity *identity.Session
}

func NewService(p ServiceParams) *Service {
	return &Service{
		db:       p.DB,
		identity: p.Identity,
		stats:    repository.ProvideStore[MemberStat](p.DB),
	}
}

// Rank builds the full standings: stored member stats plus the active
// participant session, ordered by points descending. Ties keep their input
// order, so equal-point members never swap between reads.
func (s *Service) Rank(ctx context.Context) ([]Entry, error) {
	stats, err := s.stats.Find(ctx, nil)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(stats)+1)
	for _, st := range stats {
		entries = append(entries, Entry{
			DisplayName:  st.DisplayName,
			Wallet:       st.Wallet,
			Points:       st.Points,
			TokensEarned: st.TokensEarned,
			Submissions:  st.Submissions,
			ApprovalRate: st.ApprovalRate,
		})
	}

	if user, ok := s.identity.Snapshot(); ok && user.Role == identity.RoleParticipant {
		entries = append(entries, Entry{
			DisplayName:  user.DisplayName,
			Wallet:       user.WalletAddress,
			Points:       user.Points,
			TokensEarned: user.TokensEarned,
			IsSelf:       true,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

// Top returns the first n ranked entries.
func (s *Service) Top(ctx context.Context, n int) ([]Entry, error) {
	entries, err := s.Rank(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

// MeanPoints is the average points across the standings, zero when empty.
func MeanPoints(entries []Entry) int64 {
	if len(entries) == 0 {
		return 0
	}
	var sum int64
	for _, e := range entries {
		sum += e.Points
	}
	return sum / int64(len(entries))
}
