package submission

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"campaignhub/internal/config"
	"campaignhub/pkg/errutil"
	"campaignhub/pkg/notify"
	"campaignhub/pkg/sequence"
	"campaignhub/services/campaign"
	"campaignhub/services/identity"
	"campaignhub/services/testutil"
	"campaignhub/services/wallet"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

const authorWallet = "0xabc0000000000000000000000000000000000001"

type fixture struct {
	svc      *Service
	db       *gorm.DB
	identity *identity.Session
	wallet   *wallet.Session
	rec      *notify.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t, &campaign.Campaign{}, &Submission{})
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Wallet.Balance = "12.5"
	w := wallet.NewSession(wallet.SessionParams{
		Provider: &wallet.FixtureProvider{Accounts: []string{authorWallet}},
		Notifier: &notify.Recorder{},
		Cfg:      cfg,
	})
	id := identity.NewSession(identity.SessionParams{Wallet: w, Notifier: &notify.Recorder{}})

	rec := &notify.Recorder{}
	svc := NewService(ServiceParams{
		DB:       db,
		Node:     node,
		Seq:      sequence.NewGenerator(sequence.Params{}),
		Notifier: rec,
		Identity: id,
	})

	return &fixture{svc: svc, db: db, identity: id, wallet: w, rec: rec}
}

func (f *fixture) seedCampaign(t *testing.T, subType campaign.SubmissionType, deadline time.Time) *campaign.Campaign {
	t.Helper()

	c := &campaign.Campaign{
		ID:             "cmp_" + string(subType),
		Brand:          "CoffeeCorp",
		Title:          "Share Your Coffee Moment",
		Description:    "d",
		RewardPoints:   50,
		Deadline:       deadline,
		SubmissionType: subType,
	}
	require.NoError(t, f.db.Create(c).Error)
	return c
}

func TestSubmit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.seedCampaign(t, campaign.SubmissionTypePhoto, time.Now().Add(24*time.Hour))

	sub, err := f.svc.Submit(ctx, SubmitParams{
		Campaign:     c,
		AuthorWallet: authorWallet,
		AuthorName:   "Alice",
		Content:      "My morning cold brew.",
		FileName:     "cold-brew.jpg",
	})
	require.NoError(t, err)

	require.Equal(t, StatusPending, sub.Status)
	require.NotEmpty(t, sub.ID)
	require.NotEmpty(t, sub.Code)
	require.Equal(t, c.ID, sub.CampaignID)
	require.EqualValues(t, 50, sub.RewardPoints)
	require.NotNil(t, sub.FileName)
	require.Nil(t, sub.ReviewedAt)

	// the campaign counter moved with the row
	var got campaign.Campaign
	require.NoError(t, f.db.First(&got, "id = ?", c.ID).Error)
	require.EqualValues(t, 1, got.SubmissionCount)
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	photo := f.seedCampaign(t, campaign.SubmissionTypePhoto, time.Now().Add(24*time.Hour))

	_, err := f.svc.Submit(ctx, SubmitParams{Campaign: photo, Content: "   "})
	require.Error(t, err, "blank content is rejected")

	_, err = f.svc.Submit(ctx, SubmitParams{Campaign: photo, Content: "no file attached"})
	require.Error(t, err, "photo campaigns require a file")

	_, err = f.svc.Submit(ctx, SubmitParams{Campaign: nil, Content: "c"})
	require.Error(t, err)

	// nothing was written and the counter never moved
	var got campaign.Campaign
	require.NoError(t, f.db.First(&got, "id = ?", photo.ID).Error)
	require.Zero(t, got.SubmissionCount)
}

func TestSubmitEndedCampaign(t *testing.T) {
	f := newFixture(t)

	ended := f.seedCampaign(t, campaign.SubmissionTypeText, time.Now().Add(-time.Hour))

	_, err := f.svc.Submit(context.Background(), SubmitParams{
		Campaign: ended,
		Content:  "too late",
	})
	require.Error(t, err)

	var base errutil.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, errutil.StatusUnprocessableEntity, base.Code)
}

func TestReviewIsOneWay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.seedCampaign(t, campaign.SubmissionTypeText, time.Now().Add(24*time.Hour))
	sub, err := f.svc.Submit(ctx, SubmitParams{
		Campaign:     c,
		AuthorWallet: authorWallet,
		AuthorName:   "Alice",
		Content:      "my entry",
	})
	require.NoError(t, err)

	reviewed, err := f.svc.Review(ctx, ReviewParams{
		SubmissionID: sub.ID,
		Approve:      false,
		Feedback:     "needs more detail",
	})
	require.NoError(t, err)
	require.Equal(t, StatusRejected, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedAt)
	require.NotNil(t, reviewed.Feedback)

	// a settled submission cannot be reviewed again
	_, err = f.svc.Review(ctx, ReviewParams{SubmissionID: sub.ID, Approve: true})
	require.Error(t, err)

	var base errutil.BaseError
	require.ErrorAs(t, err, &base)
	require.Equal(t, errutil.StatusUnprocessableEntity, base.Code)

	got, err := f.svc.Get(ctx, sub.ID)
	require.NoError(t, err)
	require.Equal(t, StatusRejected, got.Status)
}

func TestApproveCreditsAuthorSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.wallet.Connect(ctx))
	_, err := f.identity.Login(identity.RoleParticipant, "Alice")
	require.NoError(t, err)

	c := f.seedCampaign(t, campaign.SubmissionTypeText, time.Now().Add(24*time.Hour))
	sub, err := f.svc.Submit(ctx, SubmitParams{
		Campaign:     c,
		AuthorWallet: authorWallet,
		AuthorName:   "Alice",
		Content:      "my entry",
	})
	require.NoError(t, err)

	// no points until the review lands
	user, _ := f.identity.Snapshot()
	require.EqualValues(t, 150, user.Points)

	_, err = f.svc.Review(ctx, ReviewParams{SubmissionID: sub.ID, Approve: true})
	require.NoError(t, err)

	user, _ = f.identity.Snapshot()
	require.EqualValues(t, 200, user.Points)
	require.EqualValues(t, 30, user.TokensEarned)
}

func TestReviewConcurrentSettlesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.wallet.Connect(ctx))
	_, err := f.identity.Login(identity.RoleParticipant, "Alice")
	require.NoError(t, err)

	c := f.seedCampaign(t, campaign.SubmissionTypeText, time.Now().Add(24*time.Hour))
	sub, err := f.svc.Submit(ctx, SubmitParams{
		Campaign:     c,
		AuthorWallet: authorWallet,
		AuthorName:   "Alice",
		Content:      "my entry",
	})
	require.NoError(t, err)

	const reviewers = 8
	var (
		wg      sync.WaitGroup
		settled int32
	)
	for i := 0; i < reviewers; i++ {
		approve := i%2 == 0
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.Review(ctx, ReviewParams{SubmissionID: sub.ID, Approve: approve}); err == nil {
				atomic.AddInt32(&settled, 1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, settled, "exactly one review wins")

	got, err := f.svc.Get(ctx, sub.ID)
	require.NoError(t, err)
	require.NotEqual(t, StatusPending, got.Status)
	require.NotNil(t, got.ReviewedAt)

	// at most one credit, never one per racing reviewer
	user, _ := f.identity.Snapshot()
	require.LessOrEqual(t, user.Points, int64(200))
	require.GreaterOrEqual(t, user.Points, int64(150))
	if got.Status == StatusApproved {
		require.EqualValues(t, 200, user.Points)
	} else {
		require.EqualValues(t, 150, user.Points)
	}
}

func TestApproveIgnoresOtherSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.wallet.Connect(ctx))
	_, err := f.identity.Login(identity.RoleParticipant, "Bob")
	require.NoError(t, err)

	c := f.seedCampaign(t, campaign.SubmissionTypeText, time.Now().Add(24*time.Hour))
	sub, err := f.svc.Submit(ctx, SubmitParams{
		Campaign:     c,
		AuthorWallet: "0xsomeoneelse0000000000000000000000000002",
		AuthorName:   "Stranger",
		Content:      "their entry",
	})
	require.NoError(t, err)

	_, err = f.svc.Review(ctx, ReviewParams{SubmissionID: sub.ID, Approve: true})
	require.NoError(t, err)

	user, _ := f.identity.Snapshot()
	require.EqualValues(t, 150, user.Points, "approval of someone else's entry must not credit this session")
}
