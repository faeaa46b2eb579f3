package submission

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fixtureSubmissions() []*Submission {
	return []*Submission{
		{ID: "1", CampaignTitle: "Share Your Coffee Moment", Brand: "CoffeeCorp", Content: "cold brew on the terrace", Status: StatusApproved, RewardPoints: 50},
		{ID: "2", CampaignTitle: "Share Your Coffee Moment", Brand: "CoffeeCorp", Content: "latte art attempt", Status: StatusPending, RewardPoints: 50},
		{ID: "3", CampaignTitle: "30-Day Fitness Challenge", Brand: "FitGear", Content: "resistance band circuit", Status: StatusRejected, RewardPoints: 75},
		{ID: "4", CampaignTitle: "Gadget Review Contest", Brand: "TechHub", Content: "headphone review", Status: StatusApproved, RewardPoints: 100},
	}
}

func TestFilterByStatus(t *testing.T) {
	got := Filter(fixtureSubmissions(), "", StatusApproved)

	require.Len(t, got, 2)
	require.Equal(t, "1", got[0].ID)
	require.Equal(t, "4", got[1].ID, "filtering preserves input order")
}

func TestFilterByQuery(t *testing.T) {
	subs := fixtureSubmissions()

	require.Len(t, Filter(subs, "coffee", ""), 2)
	require.Len(t, Filter(subs, "COFFEE", ""), 2, "query is case-insensitive")
	require.Len(t, Filter(subs, "fitgear", ""), 1, "brand is searchable")
	require.Len(t, Filter(subs, "headphone", ""), 1, "content is searchable")
	require.Empty(t, Filter(subs, "nonexistent", ""))
}

func TestFilterCombines(t *testing.T) {
	got := Filter(fixtureSubmissions(), "coffee", StatusPending)

	require.Len(t, got, 1)
	require.Equal(t, "2", got[0].ID)
}

func TestFilterEmptyInput(t *testing.T) {
	require.Empty(t, Filter(nil, "anything", StatusApproved))
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus(fixtureSubmissions())

	require.Equal(t, 2, counts[StatusApproved])
	require.Equal(t, 1, counts[StatusPending])
	require.Equal(t, 1, counts[StatusRejected])
}

func TestApprovedPoints(t *testing.T) {
	require.EqualValues(t, 150, ApprovedPoints(fixtureSubmissions()))
	require.Zero(t, ApprovedPoints(nil))
}
