package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ReadCircle/bookgraphGo/apperrors"
	"github.com/ReadCircle/bookgraphGo/db"
	"github.com/ReadCircle/bookgraphGo/logger"
	"github.com/ReadCircle/bookgraphGo/models"
	"go.uber.org/zap"
)

// Trending weights a share action double relative to a click.
const (
	trendingShareWeight = 2
	DefaultTrendingDays = 7
)

// CreateShareRequest carries a share action into the service.
type CreateShareRequest struct {
	TargetRef       models.TargetRef
	ShareType       models.ShareType
	Platform        models.SharePlatform
	Message         string
	SharedWithUsers []string
}

// ShareResult is the created share plus its derived link and text.
type ShareResult struct {
	Share     *models.ShareModel `json:"share"`
	ShareUrl  string             `json:"shareUrl"`
	ShareText string             `json:"shareText"`
}

// TrendingShare is one target scored over the trending window.
type TrendingShare struct {
	Target      models.TargetRef `json:"target"`
	ShareCount  int64            `json:"shareCount"`
	TotalClicks int64            `json:"totalClicks"`
	Score       int64            `json:"score"`
}

type ShareService struct {
	db       db.SocialDbInterface
	counters *CounterMaintainer
	baseUrl  string
}

func NewShareService(socialDb db.SocialDbInterface, counters *CounterMaintainer, baseUrl string) *ShareService {
	return &ShareService{
		db:       socialDb,
		counters: counters,
		baseUrl:  strings.TrimRight(baseUrl, "/"),
	}
}

// CreateShare records a share action. Shares are never toggled; sharing the
// same target twice produces two documents.
func (s *ShareService) CreateShare(ctx context.Context, userId string, req CreateShareRequest) (*ShareResult, error) {
	if err := validateShareTarget(req.TargetRef.TargetType); err != nil {
		return nil, err
	}
	if !req.ShareType.Valid() {
		return nil, apperrors.Validationf("unknown share type %q", req.ShareType)
	}
	if req.ShareType == models.ShareExternal && !req.Platform.ValidForExternal() {
		return nil, apperrors.Validationf("invalid platform %q for external share", req.Platform)
	}
	if req.ShareType != models.ShareInternal && len(req.SharedWithUsers) > 0 {
		return nil, apperrors.Validation("sharedWithUsers is only valid for internal shares")
	}
	if _, err := s.db.Target().FindTarget(ctx, req.TargetRef); err != nil {
		return nil, err
	}

	share := &models.ShareModel{
		UserId:          userId,
		TargetRef:       req.TargetRef,
		ShareType:       req.ShareType,
		Platform:        req.Platform,
		Message:         req.Message,
		SharedWithUsers: req.SharedWithUsers,
	}
	if err := s.db.Share().Insert(ctx, share); err != nil {
		logger.Error("Failed saving share", zap.Error(err))
		return nil, err
	}

	if _, err := s.counters.RefreshShareCount(ctx, req.TargetRef); err != nil {
		return nil, err
	}

	return &ShareResult{
		Share:     share,
		ShareUrl:  s.ShareUrl(req.TargetRef),
		ShareText: s.ShareText(req.TargetRef.TargetType, req.Message),
	}, nil
}

// ShareUrl derives the canonical link for a target deterministically.
func (s *ShareService) ShareUrl(ref models.TargetRef) string {
	return fmt.Sprintf("%s/%s/%s", s.baseUrl, ref.TargetType, ref.TargetId)
}

// ShareText returns the custom message, or a canned line per target type.
func (s *ShareService) ShareText(targetType models.TargetType, message string) string {
	if trimmed := strings.TrimSpace(message); len(trimmed) > 0 {
		return trimmed
	}
	switch targetType {
	case models.TargetRecommendation:
		return "Check out this book recommendation on ReadCircle!"
	case models.TargetReview:
		return "Read this book review on ReadCircle!"
	case models.TargetBook:
		return "Found this book on ReadCircle - take a look!"
	default:
		return "Check this out on ReadCircle!"
	}
}

// TrackClick bumps a share's click counter.
func (s *ShareService) TrackClick(ctx context.Context, shareId string) (int64, error) {
	return s.db.Share().IncrementClick(ctx, shareId)
}

func (s *ShareService) GetTargetShares(ctx context.Context, ref models.TargetRef, page, limit int) ([]models.ShareModel, models.Pagination, error) {
	if err := validateShareTarget(ref.TargetType); err != nil {
		return nil, models.Pagination{}, err
	}
	skip := int64(page-1) * int64(limit)
	shares, err := s.db.Share().FindByTarget(ctx, ref, int64(limit), skip)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.db.Share().CountByTarget(ctx, ref)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return shares, models.NewPagination(page, limit, total), nil
}

// GetReceivedShares lists internal shares addressed to the user.
func (s *ShareService) GetReceivedShares(ctx context.Context, userId string, page, limit int) ([]models.ShareModel, models.Pagination, error) {
	skip := int64(page-1) * int64(limit)
	shares, err := s.db.Share().FindReceived(ctx, userId, int64(limit), skip)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.db.Share().CountReceived(ctx, userId)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return shares, models.NewPagination(page, limit, total), nil
}

// GetTrendingShares scores each target shared within the trailing window as
// 2*shareCount + totalClicks and returns the top entries. The window is a
// hard cutoff; there is no decay inside it.
func (s *ShareService) GetTrendingShares(ctx context.Context, timeframeDays, limit int, targetType models.TargetType) ([]TrendingShare, error) {
	if timeframeDays <= 0 {
		timeframeDays = DefaultTrendingDays
	}
	if len(targetType) > 0 {
		if err := validateShareTarget(targetType); err != nil {
			return nil, err
		}
	}

	since := time.Now().AddDate(0, 0, -timeframeDays).Unix()
	shares, err := s.db.Share().FindSince(ctx, since, targetType)
	if err != nil {
		logger.Error("Failed getting trending window", zap.Error(err))
		return nil, err
	}

	byTarget := map[models.TargetRef]*TrendingShare{}
	for _, share := range shares {
		entry, ok := byTarget[share.TargetRef]
		if !ok {
			entry = &TrendingShare{Target: share.TargetRef}
			byTarget[share.TargetRef] = entry
		}
		entry.ShareCount++
		entry.TotalClicks += share.ClickCount
	}

	trending := make([]TrendingShare, 0, len(byTarget))
	for _, entry := range byTarget {
		entry.Score = trendingShareWeight*entry.ShareCount + entry.TotalClicks
		trending = append(trending, *entry)
	}
	sort.Slice(trending, func(i, j int) bool {
		if trending[i].Score != trending[j].Score {
			return trending[i].Score > trending[j].Score
		}
		return trending[i].Target.TargetId < trending[j].Target.TargetId
	})
	if len(trending) > limit {
		trending = trending[:limit]
	}
	return trending, nil
}
