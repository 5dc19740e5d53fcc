package service

import (
	"context"
	"testing"
	"time"

	"github.com/ReadCircle/bookgraphGo/apperrors"
	"github.com/ReadCircle/bookgraphGo/db"
	"github.com/ReadCircle/bookgraphGo/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShareService() (*ShareService, *db.InMemDb) {
	memDb := db.NewInMemDb()
	return NewShareService(memDb, NewCounterMaintainer(memDb), "https://readcircle.app/"), memDb
}

func TestCreateShareExternal(t *testing.T) {
	svc, memDb := newShareService()
	ctx := context.Background()

	seedUser(memDb, "bob", "Bob")
	ref := seedRecommendation(memDb, "rec-1", "bob")

	result, err := svc.CreateShare(ctx, "alice", CreateShareRequest{
		TargetRef: ref,
		ShareType: models.ShareExternal,
		Platform:  models.PlatformTwitter,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://readcircle.app/recommendation/rec-1", result.ShareUrl)
	assert.Equal(t, "Check out this book recommendation on ReadCircle!", result.ShareText)
	assert.Equal(t, int64(1), memDb.Recommendations["rec-1"].ShareCount)
}

func TestCreateShareCustomMessageWins(t *testing.T) {
	svc, memDb := newShareService()

	seedUser(memDb, "bob", "Bob")
	ref := seedReview(memDb, "rev-1", "bob")

	result, err := svc.CreateShare(context.Background(), "alice", CreateShareRequest{
		TargetRef: ref,
		ShareType: models.ShareExternal,
		Platform:  models.PlatformEmail,
		Message:   "  You have to read this  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "You have to read this", result.ShareText)
}

func TestCreateShareIsNotAToggle(t *testing.T) {
	svc, memDb := newShareService()
	ctx := context.Background()

	seedUser(memDb, "bob", "Bob")
	ref := seedRecommendation(memDb, "rec-1", "bob")

	for i := 0; i < 2; i++ {
		_, err := svc.CreateShare(ctx, "alice", CreateShareRequest{
			TargetRef: ref,
			ShareType: models.ShareSocial,
		})
		require.NoError(t, err)
	}

	assert.Len(t, memDb.Shares, 2)
	assert.Equal(t, int64(2), memDb.Recommendations["rec-1"].ShareCount)
}

func TestCreateShareValidation(t *testing.T) {
	svc, memDb := newShareService()
	ctx := context.Background()

	seedUser(memDb, "bob", "Bob")
	ref := seedRecommendation(memDb, "rec-1", "bob")

	cases := []struct {
		name string
		req  CreateShareRequest
		code apperrors.Code
	}{
		{
			name: "unknown share type",
			req:  CreateShareRequest{TargetRef: ref, ShareType: "broadcast"},
			code: apperrors.CodeValidation,
		},
		{
			name: "bad platform for external",
			req:  CreateShareRequest{TargetRef: ref, ShareType: models.ShareExternal, Platform: "myspace"},
			code: apperrors.CodeValidation,
		},
		{
			name: "recipients on external share",
			req: CreateShareRequest{
				TargetRef:       ref,
				ShareType:       models.ShareExternal,
				Platform:        models.PlatformTwitter,
				SharedWithUsers: []string{"carol"},
			},
			code: apperrors.CodeValidation,
		},
		{
			name: "comment target not shareable",
			req: CreateShareRequest{
				TargetRef: models.TargetRef{TargetType: models.TargetComment, TargetId: "c1"},
				ShareType: models.ShareExternal,
				Platform:  models.PlatformTwitter,
			},
			code: apperrors.CodeValidation,
		},
		{
			name: "missing target",
			req: CreateShareRequest{
				TargetRef: models.TargetRef{TargetType: models.TargetRecommendation, TargetId: "nope"},
				ShareType: models.ShareInternal,
			},
			code: apperrors.CodeNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateShare(ctx, "alice", tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, apperrors.CodeOf(err))
		})
	}
}

func TestInternalShareReachesRecipients(t *testing.T) {
	svc, memDb := newShareService()
	ctx := context.Background()

	seedUser(memDb, "bob", "Bob")
	ref := seedRecommendation(memDb, "rec-1", "bob")

	_, err := svc.CreateShare(ctx, "alice", CreateShareRequest{
		TargetRef:       ref,
		ShareType:       models.ShareInternal,
		Message:         "Thought of you",
		SharedWithUsers: []string{"carol", "dave"},
	})
	require.NoError(t, err)

	received, page, err := svc.GetReceivedShares(ctx, "carol", 1, 10)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "alice", received[0].UserId)
	assert.Equal(t, int64(1), page.TotalItems)

	received, _, err = svc.GetReceivedShares(ctx, "erin", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, received)
}

func TestTrackClick(t *testing.T) {
	svc, memDb := newShareService()
	ctx := context.Background()

	seedUser(memDb, "bob", "Bob")
	ref := seedRecommendation(memDb, "rec-1", "bob")
	result, err := svc.CreateShare(ctx, "alice", CreateShareRequest{TargetRef: ref, ShareType: models.ShareSocial})
	require.NoError(t, err)

	clicks, err := svc.TrackClick(ctx, result.Share.ShareId)
	require.NoError(t, err)
	assert.Equal(t, int64(1), clicks)

	clicks, err = svc.TrackClick(ctx, result.Share.ShareId)
	require.NoError(t, err)
	assert.Equal(t, int64(2), clicks)

	_, err = svc.TrackClick(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestGetTargetShares(t *testing.T) {
	svc, memDb := newShareService()
	ctx := context.Background()

	seedUser(memDb, "bob", "Bob")
	ref := seedRecommendation(memDb, "rec-1", "bob")
	otherRef := seedReview(memDb, "rev-1", "bob")

	_, err := svc.CreateShare(ctx, "alice", CreateShareRequest{TargetRef: ref, ShareType: models.ShareSocial})
	require.NoError(t, err)
	_, err = svc.CreateShare(ctx, "carol", CreateShareRequest{TargetRef: otherRef, ShareType: models.ShareSocial})
	require.NoError(t, err)

	shares, page, err := svc.GetTargetShares(ctx, ref, 1, 10)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, "alice", shares[0].UserId)
	assert.Equal(t, int64(1), page.TotalItems)
}

func TestGetTrendingShares(t *testing.T) {
	svc, memDb := newShareService()
	ctx := context.Background()

	seedUser(memDb, "bob", "Bob")
	hotRef := seedRecommendation(memDb, "rec-hot", "bob")
	coldRef := seedRecommendation(memDb, "rec-cold", "bob")

	// rec-hot: two shares, one with three clicks. Score 2*2+3 = 7.
	first, err := svc.CreateShare(ctx, "alice", CreateShareRequest{TargetRef: hotRef, ShareType: models.ShareSocial})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = svc.TrackClick(ctx, first.Share.ShareId)
		require.NoError(t, err)
	}
	_, err = svc.CreateShare(ctx, "carol", CreateShareRequest{TargetRef: hotRef, ShareType: models.ShareSocial})
	require.NoError(t, err)

	// rec-cold: one share, no clicks. Score 2.
	_, err = svc.CreateShare(ctx, "dave", CreateShareRequest{TargetRef: coldRef, ShareType: models.ShareSocial})
	require.NoError(t, err)

	trending, err := svc.GetTrendingShares(ctx, 7, 10, "")
	require.NoError(t, err)
	require.Len(t, trending, 2)
	assert.Equal(t, "rec-hot", trending[0].Target.TargetId)
	assert.Equal(t, int64(2), trending[0].ShareCount)
	assert.Equal(t, int64(3), trending[0].TotalClicks)
	assert.Equal(t, int64(7), trending[0].Score)
	assert.Equal(t, "rec-cold", trending[1].Target.TargetId)
	assert.Equal(t, int64(2), trending[1].Score)

	trending, err = svc.GetTrendingShares(ctx, 7, 1, "")
	require.NoError(t, err)
	require.Len(t, trending, 1)
	assert.Equal(t, "rec-hot", trending[0].Target.TargetId)
}

func TestGetTrendingSharesWindow(t *testing.T) {
	svc, memDb := newShareService()
	ctx := context.Background()

	seedUser(memDb, "bob", "Bob")
	ref := seedRecommendation(memDb, "rec-1", "bob")

	stale, err := svc.CreateShare(ctx, "alice", CreateShareRequest{TargetRef: ref, ShareType: models.ShareSocial})
	require.NoError(t, err)
	_, err = svc.CreateShare(ctx, "carol", CreateShareRequest{TargetRef: ref, ShareType: models.ShareSocial})
	require.NoError(t, err)

	// Age the first share out of the window.
	aged := memDb.Shares[stale.Share.ShareId]
	aged.CreatedOn = time.Now().AddDate(0, 0, -30).Unix()
	memDb.Shares[stale.Share.ShareId] = aged

	trending, err := svc.GetTrendingShares(ctx, 7, 10, "")
	require.NoError(t, err)
	require.Len(t, trending, 1)
	assert.Equal(t, int64(1), trending[0].ShareCount)
}

func TestGetTrendingSharesTargetTypeFilter(t *testing.T) {
	svc, memDb := newShareService()
	ctx := context.Background()

	seedUser(memDb, "bob", "Bob")
	recRef := seedRecommendation(memDb, "rec-1", "bob")
	revRef := seedReview(memDb, "rev-1", "bob")

	_, err := svc.CreateShare(ctx, "alice", CreateShareRequest{TargetRef: recRef, ShareType: models.ShareSocial})
	require.NoError(t, err)
	_, err = svc.CreateShare(ctx, "carol", CreateShareRequest{TargetRef: revRef, ShareType: models.ShareSocial})
	require.NoError(t, err)

	trending, err := svc.GetTrendingShares(ctx, 7, 10, models.TargetReview)
	require.NoError(t, err)
	require.Len(t, trending, 1)
	assert.Equal(t, models.TargetReview, trending[0].Target.TargetType)

	_, err = svc.GetTrendingShares(ctx, 7, 10, models.TargetComment)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}
