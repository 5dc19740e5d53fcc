package service

import (
	"context"
	"sort"

	"github.com/ReadCircle/bookgraphGo/apperrors"
	"github.com/ReadCircle/bookgraphGo/db"
	"github.com/ReadCircle/bookgraphGo/logger"
	"github.com/ReadCircle/bookgraphGo/models"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"
)

// SuggestedFollow is a follow candidate ranked by how many of the user's
// followees also follow them.
type SuggestedFollow struct {
	User              models.UserModel `json:"user"`
	MutualConnections int64            `json:"mutualConnections"`
}

type FollowService struct {
	db       db.SocialDbInterface
	counters *CounterMaintainer
}

func NewFollowService(socialDb db.SocialDbInterface, counters *CounterMaintainer) *FollowService {
	return &FollowService{db: socialDb, counters: counters}
}

// ToggleFollow follows the user if not followed and unfollows otherwise,
// then recomputes both users' follow counts. Returns the resulting state and
// the followed user's follower count.
func (s *FollowService) ToggleFollow(ctx context.Context, followerId, followingId string) (bool, int64, error) {
	if followerId == followingId {
		return false, 0, apperrors.Validation("cannot follow yourself")
	}
	if _, err := s.db.User().FindOneById(ctx, followingId); err != nil {
		return false, 0, err
	}

	followId := models.GetFollowId(followerId, followingId)
	exists, err := s.db.Follow().IsExistsById(ctx, followId)
	if err != nil {
		return false, 0, err
	}

	following := false
	if exists {
		if err := s.db.Follow().DeleteById(ctx, followId); err != nil {
			logger.Error("Failed deleting follow", zap.Error(err))
			return false, 0, err
		}
	} else {
		follow := &models.FollowModel{
			FollowerId:           followerId,
			FollowingId:          followingId,
			Status:               models.FollowAccepted,
			NotificationsEnabled: true,
		}
		err := s.db.Follow().Insert(ctx, follow)
		if err != nil && !db.IsDuplicate(err) {
			logger.Error("Failed saving follow", zap.Error(err))
			return false, 0, err
		}
		following = true
	}

	followersCount, err := s.counters.RefreshFollowCounts(ctx, followerId, followingId)
	if err != nil {
		return following, 0, err
	}
	return following, followersCount, nil
}

func (s *FollowService) GetFollowers(ctx context.Context, userId string, page, limit int) ([]models.UserModel, models.Pagination, error) {
	skip := int64(page-1) * int64(limit)
	ids, err := s.db.Follow().GetFollowerIds(ctx, userId, int64(limit), skip)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.db.Follow().CountFollowers(ctx, userId)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	users, err := s.db.User().FindByIds(ctx, ids)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return users, models.NewPagination(page, limit, total), nil
}

func (s *FollowService) GetFollowing(ctx context.Context, userId string, page, limit int) ([]models.UserModel, models.Pagination, error) {
	skip := int64(page-1) * int64(limit)
	ids, err := s.db.Follow().GetFollowingIds(ctx, userId, int64(limit), skip)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.db.Follow().CountFollowing(ctx, userId)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	users, err := s.db.User().FindByIds(ctx, ids)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return users, models.NewPagination(page, limit, total), nil
}

// IsFollowing reports whether the follow edge exists.
func (s *FollowService) IsFollowing(ctx context.Context, followerId, followingId string) (bool, error) {
	return s.db.Follow().IsExistsById(ctx, models.GetFollowId(followerId, followingId))
}

// GetMutualFollowers returns users following both userA and userB.
func (s *FollowService) GetMutualFollowers(ctx context.Context, userA, userB string) ([]models.UserModel, error) {
	followersA, err := s.db.Follow().GetFollowerIds(ctx, userA, 0, 0)
	if err != nil {
		return nil, err
	}
	followersB, err := s.db.Follow().GetFollowerIds(ctx, userB, 0, 0)
	if err != nil {
		return nil, err
	}

	mutual := funk.IntersectString(followersA, followersB)
	sort.Strings(mutual)
	return s.db.User().FindByIds(ctx, mutual)
}

// GetSuggestedFollows walks the two-hop friend-of-friend graph: users
// followed by people the user follows, excluding the user and anyone already
// followed, ranked by mutual connection count with id as the stable
// tie-break.
func (s *FollowService) GetSuggestedFollows(ctx context.Context, userId string, limit int) ([]SuggestedFollow, error) {
	following, err := s.db.Follow().GetFollowingIds(ctx, userId, 0, 0)
	if err != nil {
		return nil, err
	}

	mutualCounts := map[string]int64{}
	for _, followeeId := range following {
		candidates, err := s.db.Follow().GetFollowingIds(ctx, followeeId, 0, 0)
		if err != nil {
			logger.Error("Failed expanding follow graph", zap.String("userId", followeeId), zap.Error(err))
			continue
		}
		for _, candidateId := range candidates {
			if candidateId == userId || funk.ContainsString(following, candidateId) {
				continue
			}
			mutualCounts[candidateId]++
		}
	}

	candidateIds := funk.Keys(mutualCounts).([]string)
	sort.Slice(candidateIds, func(i, j int) bool {
		if mutualCounts[candidateIds[i]] != mutualCounts[candidateIds[j]] {
			return mutualCounts[candidateIds[i]] > mutualCounts[candidateIds[j]]
		}
		return candidateIds[i] < candidateIds[j]
	})
	if len(candidateIds) > limit {
		candidateIds = candidateIds[:limit]
	}

	users, err := s.db.User().FindByIds(ctx, candidateIds)
	if err != nil {
		return nil, err
	}
	usersById := map[string]models.UserModel{}
	for _, user := range users {
		usersById[user.UserId] = user
	}

	suggestions := make([]SuggestedFollow, 0, len(candidateIds))
	for _, candidateId := range candidateIds {
		user, ok := usersById[candidateId]
		if !ok {
			continue
		}
		suggestions = append(suggestions, SuggestedFollow{
			User:              user,
			MutualConnections: mutualCounts[candidateId],
		})
	}
	return suggestions, nil
}
