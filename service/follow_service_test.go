package service

import (
	"context"
	"testing"

	"github.com/ReadCircle/bookgraphGo/apperrors"
	"github.com/ReadCircle/bookgraphGo/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFollowService() (*FollowService, *db.InMemDb) {
	memDb := db.NewInMemDb()
	return NewFollowService(memDb, NewCounterMaintainer(memDb)), memDb
}

func follow(t *testing.T, svc *FollowService, followerId, followingId string) {
	t.Helper()
	following, _, err := svc.ToggleFollow(context.Background(), followerId, followingId)
	require.NoError(t, err)
	require.True(t, following)
}

func TestToggleFollowCreatesAndRemoves(t *testing.T) {
	svc, memDb := newFollowService()
	ctx := context.Background()

	seedUser(memDb, "alice", "Alice")
	seedUser(memDb, "bob", "Bob")

	following, count, err := svc.ToggleFollow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, int64(1), memDb.Users["bob"].FollowersCount)
	assert.Equal(t, int64(1), memDb.Users["alice"].FollowingCount)

	following, count, err = svc.ToggleFollow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, following)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, int64(0), memDb.Users["bob"].FollowersCount)
	assert.Equal(t, int64(0), memDb.Users["alice"].FollowingCount)
}

func TestToggleFollowMultipleFollowers(t *testing.T) {
	svc, memDb := newFollowService()

	seedUser(memDb, "alice", "Alice")
	seedUser(memDb, "bob", "Bob")
	seedUser(memDb, "carol", "Carol")

	follow(t, svc, "alice", "bob")
	follow(t, svc, "carol", "bob")
	assert.Equal(t, int64(2), memDb.Users["bob"].FollowersCount)

	_, count, err := svc.ToggleFollow(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestToggleFollowSelf(t *testing.T) {
	svc, memDb := newFollowService()
	seedUser(memDb, "alice", "Alice")

	_, _, err := svc.ToggleFollow(context.Background(), "alice", "alice")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestToggleFollowUnknownUser(t *testing.T) {
	svc, memDb := newFollowService()
	seedUser(memDb, "alice", "Alice")

	_, _, err := svc.ToggleFollow(context.Background(), "alice", "ghost")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestIsFollowing(t *testing.T) {
	svc, memDb := newFollowService()
	ctx := context.Background()

	seedUser(memDb, "alice", "Alice")
	seedUser(memDb, "bob", "Bob")
	follow(t, svc, "alice", "bob")

	got, err := svc.IsFollowing(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, got)

	// The edge is directed.
	got, err = svc.IsFollowing(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestGetFollowersAndFollowing(t *testing.T) {
	svc, memDb := newFollowService()
	ctx := context.Background()

	for _, id := range []string{"alice", "bob", "carol"} {
		seedUser(memDb, id, id)
	}
	follow(t, svc, "alice", "bob")
	follow(t, svc, "carol", "bob")
	follow(t, svc, "bob", "alice")

	followers, page, err := svc.GetFollowers(ctx, "bob", 1, 10)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, int64(2), page.TotalItems)
	// Newest edge first.
	assert.Equal(t, "carol", followers[0].UserId)
	assert.Equal(t, "alice", followers[1].UserId)

	following, page, err := svc.GetFollowing(ctx, "bob", 1, 10)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "alice", following[0].UserId)
	assert.Equal(t, int64(1), page.TotalItems)
}

func TestGetMutualFollowers(t *testing.T) {
	svc, memDb := newFollowService()
	ctx := context.Background()

	for _, id := range []string{"alice", "bob", "carol", "dave"} {
		seedUser(memDb, id, id)
	}
	// carol and dave follow both alice and bob; bob follows alice only.
	follow(t, svc, "carol", "alice")
	follow(t, svc, "carol", "bob")
	follow(t, svc, "dave", "alice")
	follow(t, svc, "dave", "bob")
	follow(t, svc, "bob", "alice")

	mutual, err := svc.GetMutualFollowers(ctx, "alice", "bob")
	require.NoError(t, err)
	require.Len(t, mutual, 2)
	assert.Equal(t, "carol", mutual[0].UserId)
	assert.Equal(t, "dave", mutual[1].UserId)
}

func TestGetSuggestedFollows(t *testing.T) {
	svc, memDb := newFollowService()
	ctx := context.Background()

	for _, id := range []string{"alice", "bob", "carol", "dave", "erin"} {
		seedUser(memDb, id, id)
	}
	// alice follows bob and erin. Both follow dave; only bob follows carol.
	follow(t, svc, "alice", "bob")
	follow(t, svc, "alice", "erin")
	follow(t, svc, "bob", "dave")
	follow(t, svc, "bob", "carol")
	follow(t, svc, "erin", "dave")
	// Noise: an edge back to alice must never be suggested.
	follow(t, svc, "bob", "alice")

	suggestions, err := svc.GetSuggestedFollows(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "dave", suggestions[0].User.UserId)
	assert.Equal(t, int64(2), suggestions[0].MutualConnections)
	assert.Equal(t, "carol", suggestions[1].User.UserId)
	assert.Equal(t, int64(1), suggestions[1].MutualConnections)
}

func TestGetSuggestedFollowsExcludesAlreadyFollowed(t *testing.T) {
	svc, memDb := newFollowService()
	ctx := context.Background()

	for _, id := range []string{"alice", "bob", "carol"} {
		seedUser(memDb, id, id)
	}
	follow(t, svc, "alice", "bob")
	follow(t, svc, "alice", "carol")
	follow(t, svc, "bob", "carol")

	suggestions, err := svc.GetSuggestedFollows(ctx, "alice", 10)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestGetSuggestedFollowsLimit(t *testing.T) {
	svc, memDb := newFollowService()
	ctx := context.Background()

	seedUser(memDb, "alice", "Alice")
	seedUser(memDb, "bob", "Bob")
	for _, id := range []string{"c1", "c2", "c3"} {
		seedUser(memDb, id, id)
	}
	follow(t, svc, "alice", "bob")
	follow(t, svc, "bob", "c1")
	follow(t, svc, "bob", "c2")
	follow(t, svc, "bob", "c3")

	suggestions, err := svc.GetSuggestedFollows(ctx, "alice", 2)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	// Equal mutual counts fall back to id order.
	assert.Equal(t, "c1", suggestions[0].User.UserId)
	assert.Equal(t, "c2", suggestions[1].User.UserId)
}
