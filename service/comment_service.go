package service

import (
	"context"
	"strings"

	"github.com/ReadCircle/bookgraphGo/apperrors"
	"github.com/ReadCircle/bookgraphGo/db"
	"github.com/ReadCircle/bookgraphGo/logger"
	"github.com/ReadCircle/bookgraphGo/models"
	"go.uber.org/zap"
)

// ReportThreshold is the number of reports after which a comment is
// auto-flagged. Overridable per service instance so tests can lower it.
const ReportThreshold = 5

// CommentListQuery carries listing parameters from the HTTP layer.
type CommentListQuery struct {
	Page           int
	Limit          int
	SortBy         string
	SortAscending  bool
	IncludeReplies bool
}

type CommentService struct {
	db              db.SocialDbInterface
	counters        *CounterMaintainer
	denylist        []string
	reportThreshold int64
}

func NewCommentService(socialDb db.SocialDbInterface, counters *CounterMaintainer, denylist []string) *CommentService {
	lowered := make([]string, 0, len(denylist))
	for _, word := range denylist {
		word = strings.ToLower(strings.TrimSpace(word))
		if len(word) > 0 {
			lowered = append(lowered, word)
		}
	}
	return &CommentService{
		db:              socialDb,
		counters:        counters,
		denylist:        lowered,
		reportThreshold: ReportThreshold,
	}
}

// SetReportThreshold overrides the auto-moderation strike count.
func (s *CommentService) SetReportThreshold(threshold int64) {
	s.reportThreshold = threshold
}

// containsDenylisted does a case-insensitive substring match against the
// configured denylist.
func (s *CommentService) containsDenylisted(text string) bool {
	lowered := strings.ToLower(text)
	for _, word := range s.denylist {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}

// AddComment stores a comment or a reply. Denylisted content is stored
// flagged rather than rejected, so it never shows up in public listings.
func (s *CommentService) AddComment(ctx context.Context, userId string, ref models.TargetRef, text, parentCommentId string) (*models.CommentModel, error) {
	if err := validateCommentTarget(ref.TargetType); err != nil {
		return nil, err
	}
	trimmed, err := validateCommentText(text)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Target().FindTarget(ctx, ref); err != nil {
		return nil, err
	}

	if len(parentCommentId) > 0 {
		parent, err := s.db.Comment().FindOneById(ctx, parentCommentId)
		if err != nil {
			return nil, err
		}
		// Replies are flat: one level deep, no reply-to-reply.
		if parent.IsReply() {
			return nil, apperrors.Validation("cannot reply to a reply")
		}
		if parent.TargetType != ref.TargetType || parent.TargetId != ref.TargetId {
			return nil, apperrors.Validation("parent comment belongs to a different target")
		}
	}

	comment := &models.CommentModel{
		UserId:          userId,
		TargetRef:       ref,
		Text:            trimmed,
		ParentCommentId: parentCommentId,
		IsPublic:        true,
		IsModerated:     s.containsDenylisted(trimmed),
	}
	if err := s.db.Comment().Insert(ctx, comment); err != nil {
		logger.Error("Failed saving comment", zap.Error(err))
		return nil, err
	}
	if comment.IsModerated {
		logger.Info("Comment auto-flagged by content filter",
			zap.String("commentId", comment.CommentId), zap.String("userId", userId))
	}

	if comment.IsReply() {
		if _, err := s.counters.RefreshReplyCount(ctx, parentCommentId); err != nil {
			return nil, err
		}
	}
	if _, err := s.counters.RefreshCommentCount(ctx, ref); err != nil {
		return nil, err
	}
	return comment, nil
}

// ReportComment bumps the report strike count and flags the comment once it
// reaches the threshold. Reporting is always a silent success for the
// reported content's author.
func (s *CommentService) ReportComment(ctx context.Context, commentId, reporterId, reason string) error {
	comment, err := s.db.Comment().FindOneById(ctx, commentId)
	if err != nil {
		return err
	}

	comment.ReportCount++
	if comment.ReportCount >= s.reportThreshold {
		comment.IsModerated = true
	}
	if err := s.db.Comment().Save(ctx, comment); err != nil {
		logger.Error("Failed saving reported comment", zap.Error(err))
		return err
	}

	logger.Info("Comment reported",
		zap.String("commentId", commentId),
		zap.String("reporterId", reporterId),
		zap.String("reason", reason),
		zap.Int64("reportCount", comment.ReportCount))
	return nil
}

// DeleteComment hard-deletes the requester's own comment and recomputes the
// affected counters. Replies of a deleted parent are retained and stay
// reachable through the replies listing.
func (s *CommentService) DeleteComment(ctx context.Context, commentId, requesterId string) error {
	comment, err := s.db.Comment().FindOneById(ctx, commentId)
	if err != nil {
		return err
	}
	if comment.UserId != requesterId {
		return apperrors.Forbidden("only the comment author can delete it")
	}

	if err := s.db.Comment().DeleteById(ctx, commentId); err != nil {
		return err
	}

	if comment.IsReply() {
		if _, err := s.counters.RefreshReplyCount(ctx, comment.ParentCommentId); err != nil {
			return err
		}
	}
	if _, err := s.counters.RefreshCommentCount(ctx, comment.TargetRef); err != nil {
		return err
	}
	return nil
}

// GetTargetComments lists public, unflagged comments on a target. Top-level
// only unless includeReplies is set; newest first by default.
func (s *CommentService) GetTargetComments(ctx context.Context, ref models.TargetRef, query CommentListQuery) ([]models.CommentModel, models.Pagination, error) {
	if err := validateCommentTarget(ref.TargetType); err != nil {
		return nil, models.Pagination{}, err
	}

	filter := db.CommentListFilter{
		SortBy:         query.SortBy,
		SortAscending:  query.SortAscending,
		IncludeReplies: query.IncludeReplies,
	}
	skip := int64(query.Page-1) * int64(query.Limit)
	comments, err := s.db.Comment().FindPublicByTarget(ctx, ref, filter, int64(query.Limit), skip)
	if err != nil {
		logger.Error("Failed getting comments", zap.Error(err))
		return nil, models.Pagination{}, err
	}
	total, err := s.db.Comment().CountPublicByTarget(ctx, ref, query.IncludeReplies)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return comments, models.NewPagination(query.Page, query.Limit, total), nil
}

// GetCommentReplies lists a comment's replies oldest first. A missing
// parent is fine: orphaned reply threads remain listable.
func (s *CommentService) GetCommentReplies(ctx context.Context, parentCommentId string, page, limit int) ([]models.CommentModel, models.Pagination, error) {
	skip := int64(page-1) * int64(limit)
	replies, err := s.db.Comment().FindReplies(ctx, parentCommentId, int64(limit), skip)
	if err != nil {
		logger.Error("Failed getting replies", zap.Error(err))
		return nil, models.Pagination{}, err
	}
	total, err := s.db.Comment().CountPublicReplies(ctx, parentCommentId)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return replies, models.NewPagination(page, limit, total), nil
}
