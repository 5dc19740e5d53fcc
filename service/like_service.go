package service

import (
	"context"

	"github.com/ReadCircle/bookgraphGo/db"
	"github.com/ReadCircle/bookgraphGo/logger"
	"github.com/ReadCircle/bookgraphGo/models"
	"go.uber.org/zap"
)

type LikeService struct {
	db       db.SocialDbInterface
	counters *CounterMaintainer
}

func NewLikeService(socialDb db.SocialDbInterface, counters *CounterMaintainer) *LikeService {
	return &LikeService{db: socialDb, counters: counters}
}

// ToggleLike creates the like if absent and deletes it if present, then
// recomputes the target's likeCount and the target owner's
// likesReceivedCount from live counts.
func (s *LikeService) ToggleLike(ctx context.Context, userId string, ref models.TargetRef) (bool, int64, error) {
	if err := validateLikeTarget(ref.TargetType); err != nil {
		return false, 0, err
	}

	target, err := s.db.Target().FindTarget(ctx, ref)
	if err != nil {
		return false, 0, err
	}

	likeId := models.GetLikeId(userId, ref.TargetType, ref.TargetId)
	exists, err := s.db.Like().IsExistsById(ctx, likeId)
	if err != nil {
		return false, 0, err
	}

	liked := false
	if exists {
		if err := s.db.Like().DeleteById(ctx, likeId); err != nil {
			logger.Error("Failed deleting like", zap.Error(err))
			return false, 0, err
		}
	} else {
		like := &models.LikeModel{
			UserId:        userId,
			TargetRef:     ref,
			TargetOwnerId: target.OwnerId,
		}
		err := s.db.Like().Insert(ctx, like)
		// A duplicate key means a concurrent toggle won the insert; the
		// user is liked either way.
		if err != nil && !db.IsDuplicate(err) {
			logger.Error("Failed saving like", zap.Error(err))
			return false, 0, err
		}
		liked = true
	}

	likeCount, err := s.counters.RefreshLikeCount(ctx, ref)
	if err != nil {
		return liked, 0, err
	}
	if _, err := s.counters.RefreshLikesReceived(ctx, target.OwnerId); err != nil {
		return liked, likeCount, err
	}
	return liked, likeCount, nil
}

// GetTargetLikes returns the most recent likes on a target along with the
// live like count.
func (s *LikeService) GetTargetLikes(ctx context.Context, ref models.TargetRef, limit int64) ([]models.LikeModel, int64, error) {
	if err := validateLikeTarget(ref.TargetType); err != nil {
		return nil, 0, err
	}
	if _, err := s.db.Target().FindTarget(ctx, ref); err != nil {
		return nil, 0, err
	}

	likes, err := s.db.Like().FindByTarget(ctx, ref, limit)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.db.Like().CountByTarget(ctx, ref)
	if err != nil {
		return nil, 0, err
	}
	return likes, count, nil
}
