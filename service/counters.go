package service

import (
	"context"

	"github.com/ReadCircle/bookgraphGo/db"
	"github.com/ReadCircle/bookgraphGo/models"
)

// CounterMaintainer recomputes every denormalized counter from a live count
// of the engagement documents. Counters are never incremented in place;
// concurrent writers all converge on the true count because each write
// re-derives it from the source collection.
type CounterMaintainer struct {
	db db.SocialDbInterface
}

func NewCounterMaintainer(socialDb db.SocialDbInterface) *CounterMaintainer {
	return &CounterMaintainer{db: socialDb}
}

// RefreshLikeCount writes the live like count onto the target and returns it.
func (c *CounterMaintainer) RefreshLikeCount(ctx context.Context, ref models.TargetRef) (int64, error) {
	count, err := c.db.Like().CountByTarget(ctx, ref)
	if err != nil {
		return 0, err
	}
	if err := c.db.Target().SetCounter(ctx, ref, models.FieldLikeCount, count); err != nil {
		return 0, err
	}
	return count, nil
}

// RefreshCommentCount counts every comment document on the target, replies
// included.
func (c *CounterMaintainer) RefreshCommentCount(ctx context.Context, ref models.TargetRef) (int64, error) {
	count, err := c.db.Comment().CountByTarget(ctx, ref)
	if err != nil {
		return 0, err
	}
	if err := c.db.Target().SetCounter(ctx, ref, models.FieldCommentCount, count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *CounterMaintainer) RefreshShareCount(ctx context.Context, ref models.TargetRef) (int64, error) {
	count, err := c.db.Share().CountByTarget(ctx, ref)
	if err != nil {
		return 0, err
	}
	if err := c.db.Target().SetCounter(ctx, ref, models.FieldShareCount, count); err != nil {
		return 0, err
	}
	return count, nil
}

// RefreshReplyCount re-derives a parent comment's replyCount. The parent may
// already be gone (orphaned replies are retained); that is not an error.
func (c *CounterMaintainer) RefreshReplyCount(ctx context.Context, parentCommentId string) (int64, error) {
	count, err := c.db.Comment().CountReplies(ctx, parentCommentId)
	if err != nil {
		return 0, err
	}
	if err := c.db.Comment().SetReplyCount(ctx, parentCommentId, count); err != nil {
		return 0, err
	}
	return count, nil
}

// RefreshFollowCounts recomputes followingCount on the follower and
// followersCount on the followed user. Returns the followed user's new
// follower count.
func (c *CounterMaintainer) RefreshFollowCounts(ctx context.Context, followerId, followingId string) (int64, error) {
	followingCount, err := c.db.Follow().CountFollowing(ctx, followerId)
	if err != nil {
		return 0, err
	}
	if err := c.db.User().SetCounter(ctx, followerId, db.UserFieldFollowing, followingCount); err != nil {
		return 0, err
	}

	followersCount, err := c.db.Follow().CountFollowers(ctx, followingId)
	if err != nil {
		return 0, err
	}
	if err := c.db.User().SetCounter(ctx, followingId, db.UserFieldFollowers, followersCount); err != nil {
		return 0, err
	}
	return followersCount, nil
}

// RefreshLikesReceived recomputes how many likes a user's content has
// collected across all target types.
func (c *CounterMaintainer) RefreshLikesReceived(ctx context.Context, ownerId string) (int64, error) {
	if len(ownerId) == 0 {
		return 0, nil
	}
	count, err := c.db.Like().CountByTargetOwner(ctx, ownerId)
	if err != nil {
		return 0, err
	}
	if err := c.db.User().SetCounter(ctx, ownerId, db.UserFieldLikesReceived, count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *CounterMaintainer) RefreshRecommendationCount(ctx context.Context, userId string) (int64, error) {
	count, err := c.db.Recommendation().CountByUser(ctx, userId)
	if err != nil {
		return 0, err
	}
	if err := c.db.User().SetCounter(ctx, userId, db.UserFieldRecommendations, count); err != nil {
		return 0, err
	}
	return count, nil
}
