package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ReadCircle/bookgraphGo/apperrors"
	"github.com/ReadCircle/bookgraphGo/models"
	"github.com/thoas/go-funk"
	"go.mongodb.org/mongo-driver/mongo"
)

// InMemDb is an in-memory SocialDbInterface used by tests and local
// development. Collections are exported so tests can seed and inspect
// documents directly. Duplicate inserts fail with the same duplicate-key
// error shape the mongo driver produces.
type InMemDb struct {
	mu    sync.Mutex
	clock int64

	Users           map[string]models.UserModel
	Books           map[string]models.BookModel
	Recommendations map[string]models.BookRecommendationModel
	Reviews         map[string]models.ReviewModel
	Likes           map[string]models.LikeModel
	Comments        map[string]models.CommentModel
	Follows         map[string]models.FollowModel
	Shares          map[string]models.ShareModel
}

func NewInMemDb() *InMemDb {
	return &InMemDb{
		clock:           time.Now().Unix(),
		Users:           map[string]models.UserModel{},
		Books:           map[string]models.BookModel{},
		Recommendations: map[string]models.BookRecommendationModel{},
		Reviews:         map[string]models.ReviewModel{},
		Likes:           map[string]models.LikeModel{},
		Comments:        map[string]models.CommentModel{},
		Follows:         map[string]models.FollowModel{},
		Shares:          map[string]models.ShareModel{},
	}
}

// nextTime hands out strictly increasing timestamps so listing order is
// deterministic under test.
func (d *InMemDb) nextTime() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clock++
	return d.clock
}

func duplicateKeyError() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

func paginate[T any](items []T, limit, skip int64) []T {
	if skip >= int64(len(items)) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && int64(len(items)) > limit {
		items = items[:limit]
	}
	return items
}

func (d *InMemDb) User() UserRepositoryInterface                     { return &memUserRepo{d} }
func (d *InMemDb) Book() BookRepositoryInterface                     { return &memBookRepo{d} }
func (d *InMemDb) Recommendation() RecommendationRepositoryInterface { return &memRecommendationRepo{d} }
func (d *InMemDb) Review() ReviewRepositoryInterface                 { return &memReviewRepo{d} }
func (d *InMemDb) Like() LikeRepositoryInterface                     { return &memLikeRepo{d} }
func (d *InMemDb) Comment() CommentRepositoryInterface               { return &memCommentRepo{d} }
func (d *InMemDb) Follow() FollowRepositoryInterface                 { return &memFollowRepo{d} }
func (d *InMemDb) Share() ShareRepositoryInterface                   { return &memShareRepo{d} }
func (d *InMemDb) Target() TargetStoreInterface                      { return &memTargetStore{d} }

// --- users ---

type memUserRepo struct{ d *InMemDb }

func (r *memUserRepo) Save(_ context.Context, user *models.UserModel) error {
	now := r.d.nextTime()
	user.SetTimestamps(now, now)
	r.d.Users[user.Id()] = *user
	return nil
}

func (r *memUserRepo) FindOneById(_ context.Context, id string) (*models.UserModel, error) {
	user, ok := r.d.Users[id]
	if !ok {
		return nil, apperrors.NotFoundf("document %s not found", id)
	}
	return &user, nil
}

func (r *memUserRepo) IsExistsById(_ context.Context, id string) (bool, error) {
	_, ok := r.d.Users[id]
	return ok, nil
}

func (r *memUserRepo) IsExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.d.Users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) FindByIds(_ context.Context, ids []string) ([]models.UserModel, error) {
	users := []models.UserModel{}
	for _, id := range ids {
		if user, ok := r.d.Users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *memUserRepo) SetCounter(_ context.Context, userId string, field UserCounterField, value int64) error {
	user, ok := r.d.Users[userId]
	if !ok {
		return nil
	}
	switch field {
	case UserFieldFollowers:
		user.FollowersCount = value
	case UserFieldFollowing:
		user.FollowingCount = value
	case UserFieldRecommendations:
		user.RecommendationsCount = value
	case UserFieldLikesReceived:
		user.LikesReceivedCount = value
	}
	r.d.Users[userId] = user
	return nil
}

// --- books ---

type memBookRepo struct{ d *InMemDb }

func (r *memBookRepo) Insert(_ context.Context, book *models.BookModel) error {
	now := r.d.nextTime()
	book.SetTimestamps(now, now)
	if _, ok := r.d.Books[book.Id()]; ok {
		return duplicateKeyError()
	}
	r.d.Books[book.Id()] = *book
	return nil
}

func (r *memBookRepo) FindOneById(_ context.Context, id string) (*models.BookModel, error) {
	book, ok := r.d.Books[id]
	if !ok {
		return nil, apperrors.NotFoundf("document %s not found", id)
	}
	return &book, nil
}

func (r *memBookRepo) IsExistsById(_ context.Context, id string) (bool, error) {
	_, ok := r.d.Books[id]
	return ok, nil
}

// --- recommendations ---

type memRecommendationRepo struct{ d *InMemDb }

func (r *memRecommendationRepo) Insert(_ context.Context, recommendation *models.BookRecommendationModel) error {
	now := r.d.nextTime()
	recommendation.SetTimestamps(now, now)
	if _, ok := r.d.Recommendations[recommendation.Id()]; ok {
		return duplicateKeyError()
	}
	r.d.Recommendations[recommendation.Id()] = *recommendation
	return nil
}

func (r *memRecommendationRepo) FindOneById(_ context.Context, id string) (*models.BookRecommendationModel, error) {
	recommendation, ok := r.d.Recommendations[id]
	if !ok {
		return nil, apperrors.NotFoundf("document %s not found", id)
	}
	return &recommendation, nil
}

func (r *memRecommendationRepo) CountByUser(_ context.Context, userId string) (int64, error) {
	var count int64
	for _, recommendation := range r.d.Recommendations {
		if recommendation.UserId == userId {
			count++
		}
	}
	return count, nil
}

// --- reviews ---

type memReviewRepo struct{ d *InMemDb }

func (r *memReviewRepo) Insert(_ context.Context, review *models.ReviewModel) error {
	now := r.d.nextTime()
	review.SetTimestamps(now, now)
	if _, ok := r.d.Reviews[review.Id()]; ok {
		return duplicateKeyError()
	}
	r.d.Reviews[review.Id()] = *review
	return nil
}

func (r *memReviewRepo) FindOneById(_ context.Context, id string) (*models.ReviewModel, error) {
	review, ok := r.d.Reviews[id]
	if !ok {
		return nil, apperrors.NotFoundf("document %s not found", id)
	}
	return &review, nil
}

// --- likes ---

type memLikeRepo struct{ d *InMemDb }

func (r *memLikeRepo) Insert(_ context.Context, like *models.LikeModel) error {
	now := r.d.nextTime()
	like.SetTimestamps(now, now)
	if _, ok := r.d.Likes[like.Id()]; ok {
		return duplicateKeyError()
	}
	r.d.Likes[like.Id()] = *like
	return nil
}

func (r *memLikeRepo) DeleteById(_ context.Context, id string) error {
	if _, ok := r.d.Likes[id]; !ok {
		return apperrors.NotFoundf("document %s not found", id)
	}
	delete(r.d.Likes, id)
	return nil
}

func (r *memLikeRepo) IsExistsById(_ context.Context, id string) (bool, error) {
	_, ok := r.d.Likes[id]
	return ok, nil
}

func (r *memLikeRepo) CountByTarget(_ context.Context, ref models.TargetRef) (int64, error) {
	var count int64
	for _, like := range r.d.Likes {
		if like.TargetRef == ref {
			count++
		}
	}
	return count, nil
}

func (r *memLikeRepo) CountByTargetOwner(_ context.Context, ownerId string) (int64, error) {
	var count int64
	for _, like := range r.d.Likes {
		if like.TargetOwnerId == ownerId {
			count++
		}
	}
	return count, nil
}

func (r *memLikeRepo) FindByTarget(_ context.Context, ref models.TargetRef, limit int64) ([]models.LikeModel, error) {
	likes := []models.LikeModel{}
	for _, like := range r.d.Likes {
		if like.TargetRef == ref {
			likes = append(likes, like)
		}
	}
	sort.Slice(likes, func(i, j int) bool { return likes[i].CreatedOn > likes[j].CreatedOn })
	return paginate(likes, limit, 0), nil
}

// --- comments ---

type memCommentRepo struct{ d *InMemDb }

func (r *memCommentRepo) Insert(_ context.Context, comment *models.CommentModel) error {
	now := r.d.nextTime()
	comment.SetTimestamps(now, now)
	if _, ok := r.d.Comments[comment.Id()]; ok {
		return duplicateKeyError()
	}
	r.d.Comments[comment.Id()] = *comment
	return nil
}

func (r *memCommentRepo) Save(_ context.Context, comment *models.CommentModel) error {
	now := r.d.nextTime()
	comment.SetTimestamps(now, now)
	r.d.Comments[comment.Id()] = *comment
	return nil
}

func (r *memCommentRepo) FindOneById(_ context.Context, id string) (*models.CommentModel, error) {
	comment, ok := r.d.Comments[id]
	if !ok {
		return nil, apperrors.NotFoundf("document %s not found", id)
	}
	return &comment, nil
}

func (r *memCommentRepo) DeleteById(_ context.Context, id string) error {
	if _, ok := r.d.Comments[id]; !ok {
		return apperrors.NotFoundf("document %s not found", id)
	}
	delete(r.d.Comments, id)
	return nil
}

func (r *memCommentRepo) CountByTarget(_ context.Context, ref models.TargetRef) (int64, error) {
	var count int64
	for _, comment := range r.d.Comments {
		if comment.TargetRef == ref {
			count++
		}
	}
	return count, nil
}

func (r *memCommentRepo) CountReplies(_ context.Context, parentId string) (int64, error) {
	var count int64
	for _, comment := range r.d.Comments {
		if comment.ParentCommentId == parentId {
			count++
		}
	}
	return count, nil
}

func (r *memCommentRepo) SetReplyCount(_ context.Context, id string, count int64) error {
	comment, ok := r.d.Comments[id]
	if !ok {
		return nil
	}
	comment.ReplyCount = count
	r.d.Comments[id] = comment
	return nil
}

func (r *memCommentRepo) publicByTarget(ref models.TargetRef, includeReplies bool) []models.CommentModel {
	comments := []models.CommentModel{}
	for _, comment := range r.d.Comments {
		if comment.TargetRef != ref || !comment.IsPublic || comment.IsModerated {
			continue
		}
		if !includeReplies && comment.IsReply() {
			continue
		}
		comments = append(comments, comment)
	}
	return comments
}

func (r *memCommentRepo) FindPublicByTarget(_ context.Context, ref models.TargetRef, filter CommentListFilter, limit, skip int64) ([]models.CommentModel, error) {
	comments := r.publicByTarget(ref, filter.IncludeReplies)
	sort.Slice(comments, func(i, j int) bool {
		var less bool
		switch filter.SortBy {
		case "likeCount":
			less = comments[i].LikeCount < comments[j].LikeCount
		case "replyCount":
			less = comments[i].ReplyCount < comments[j].ReplyCount
		default:
			less = comments[i].CreatedOn < comments[j].CreatedOn
		}
		if filter.SortAscending {
			return less
		}
		return !less
	})
	return paginate(comments, limit, skip), nil
}

func (r *memCommentRepo) CountPublicByTarget(_ context.Context, ref models.TargetRef, includeReplies bool) (int64, error) {
	return int64(len(r.publicByTarget(ref, includeReplies))), nil
}

func (r *memCommentRepo) FindReplies(_ context.Context, parentId string, limit, skip int64) ([]models.CommentModel, error) {
	replies := []models.CommentModel{}
	for _, comment := range r.d.Comments {
		if comment.ParentCommentId == parentId && comment.IsPublic && !comment.IsModerated {
			replies = append(replies, comment)
		}
	}
	sort.Slice(replies, func(i, j int) bool { return replies[i].CreatedOn < replies[j].CreatedOn })
	return paginate(replies, limit, skip), nil
}

func (r *memCommentRepo) CountPublicReplies(_ context.Context, parentId string) (int64, error) {
	var count int64
	for _, comment := range r.d.Comments {
		if comment.ParentCommentId == parentId && comment.IsPublic && !comment.IsModerated {
			count++
		}
	}
	return count, nil
}

// --- follows ---

type memFollowRepo struct{ d *InMemDb }

func (r *memFollowRepo) Insert(_ context.Context, follow *models.FollowModel) error {
	now := r.d.nextTime()
	follow.SetTimestamps(now, now)
	if _, ok := r.d.Follows[follow.Id()]; ok {
		return duplicateKeyError()
	}
	r.d.Follows[follow.Id()] = *follow
	return nil
}

func (r *memFollowRepo) DeleteById(_ context.Context, id string) error {
	if _, ok := r.d.Follows[id]; !ok {
		return apperrors.NotFoundf("document %s not found", id)
	}
	delete(r.d.Follows, id)
	return nil
}

func (r *memFollowRepo) IsExistsById(_ context.Context, id string) (bool, error) {
	_, ok := r.d.Follows[id]
	return ok, nil
}

func (r *memFollowRepo) accepted(match func(models.FollowModel) bool) []models.FollowModel {
	follows := []models.FollowModel{}
	for _, follow := range r.d.Follows {
		if follow.Status == models.FollowAccepted && match(follow) {
			follows = append(follows, follow)
		}
	}
	sort.Slice(follows, func(i, j int) bool { return follows[i].CreatedOn > follows[j].CreatedOn })
	return follows
}

func (r *memFollowRepo) CountFollowers(_ context.Context, userId string) (int64, error) {
	return int64(len(r.accepted(func(f models.FollowModel) bool { return f.FollowingId == userId }))), nil
}

func (r *memFollowRepo) CountFollowing(_ context.Context, userId string) (int64, error) {
	return int64(len(r.accepted(func(f models.FollowModel) bool { return f.FollowerId == userId }))), nil
}

func (r *memFollowRepo) GetFollowerIds(_ context.Context, userId string, limit, skip int64) ([]string, error) {
	follows := r.accepted(func(f models.FollowModel) bool { return f.FollowingId == userId })
	ids := funk.Map(follows, func(f models.FollowModel) string { return f.FollowerId }).([]string)
	return paginate(ids, limit, skip), nil
}

func (r *memFollowRepo) GetFollowingIds(_ context.Context, userId string, limit, skip int64) ([]string, error) {
	follows := r.accepted(func(f models.FollowModel) bool { return f.FollowerId == userId })
	ids := funk.Map(follows, func(f models.FollowModel) string { return f.FollowingId }).([]string)
	return paginate(ids, limit, skip), nil
}

// --- shares ---

type memShareRepo struct{ d *InMemDb }

func (r *memShareRepo) Insert(_ context.Context, share *models.ShareModel) error {
	now := r.d.nextTime()
	share.SetTimestamps(now, now)
	if _, ok := r.d.Shares[share.Id()]; ok {
		return duplicateKeyError()
	}
	r.d.Shares[share.Id()] = *share
	return nil
}

func (r *memShareRepo) FindOneById(_ context.Context, id string) (*models.ShareModel, error) {
	share, ok := r.d.Shares[id]
	if !ok {
		return nil, apperrors.NotFoundf("document %s not found", id)
	}
	return &share, nil
}

func (r *memShareRepo) CountByTarget(_ context.Context, ref models.TargetRef) (int64, error) {
	var count int64
	for _, share := range r.d.Shares {
		if share.TargetRef == ref {
			count++
		}
	}
	return count, nil
}

func (r *memShareRepo) byCreatedDesc(match func(models.ShareModel) bool) []models.ShareModel {
	shares := []models.ShareModel{}
	for _, share := range r.d.Shares {
		if match(share) {
			shares = append(shares, share)
		}
	}
	sort.Slice(shares, func(i, j int) bool { return shares[i].CreatedOn > shares[j].CreatedOn })
	return shares
}

func (r *memShareRepo) FindByTarget(_ context.Context, ref models.TargetRef, limit, skip int64) ([]models.ShareModel, error) {
	return paginate(r.byCreatedDesc(func(s models.ShareModel) bool { return s.TargetRef == ref }), limit, skip), nil
}

func (r *memShareRepo) FindReceived(_ context.Context, userId string, limit, skip int64) ([]models.ShareModel, error) {
	return paginate(r.byCreatedDesc(func(s models.ShareModel) bool {
		return funk.ContainsString(s.SharedWithUsers, userId)
	}), limit, skip), nil
}

func (r *memShareRepo) CountReceived(_ context.Context, userId string) (int64, error) {
	var count int64
	for _, share := range r.d.Shares {
		if funk.ContainsString(share.SharedWithUsers, userId) {
			count++
		}
	}
	return count, nil
}

func (r *memShareRepo) FindSince(_ context.Context, since int64, targetType models.TargetType) ([]models.ShareModel, error) {
	return r.byCreatedDesc(func(s models.ShareModel) bool {
		if s.CreatedOn < since {
			return false
		}
		return len(targetType) == 0 || s.TargetType == targetType
	}), nil
}

func (r *memShareRepo) IncrementClick(_ context.Context, shareId string) (int64, error) {
	share, ok := r.d.Shares[shareId]
	if !ok {
		return 0, apperrors.NotFoundf("share %s not found", shareId)
	}
	share.ClickCount++
	share.UpdatedOn = r.d.nextTime()
	r.d.Shares[shareId] = share
	return share.ClickCount, nil
}

// --- target store ---

type memTargetStore struct{ d *InMemDb }

func (t *memTargetStore) FindTarget(_ context.Context, ref models.TargetRef) (*TargetInfo, error) {
	switch ref.TargetType {
	case models.TargetRecommendation:
		if recommendation, ok := t.d.Recommendations[ref.TargetId]; ok {
			return &TargetInfo{Id: recommendation.RecommendationId, OwnerId: recommendation.UserId}, nil
		}
	case models.TargetReview:
		if review, ok := t.d.Reviews[ref.TargetId]; ok {
			return &TargetInfo{Id: review.ReviewId, OwnerId: review.UserId}, nil
		}
	case models.TargetComment:
		if comment, ok := t.d.Comments[ref.TargetId]; ok {
			return &TargetInfo{Id: comment.CommentId, OwnerId: comment.UserId}, nil
		}
	case models.TargetBook:
		if book, ok := t.d.Books[ref.TargetId]; ok {
			return &TargetInfo{Id: book.BookId, OwnerId: book.AddedBy}, nil
		}
	default:
		return nil, apperrors.Validationf("unknown target type %q", ref.TargetType)
	}
	return nil, apperrors.NotFoundf("%s %s not found", ref.TargetType, ref.TargetId)
}

func (t *memTargetStore) SetCounter(_ context.Context, ref models.TargetRef, field models.CounterField, value int64) error {
	setCounters := func(like, comment, share *int64) {
		switch field {
		case models.FieldLikeCount:
			*like = value
		case models.FieldCommentCount:
			*comment = value
		case models.FieldShareCount:
			*share = value
		}
	}

	switch ref.TargetType {
	case models.TargetRecommendation:
		recommendation, ok := t.d.Recommendations[ref.TargetId]
		if !ok {
			return apperrors.NotFoundf("%s %s not found", ref.TargetType, ref.TargetId)
		}
		setCounters(&recommendation.LikeCount, &recommendation.CommentCount, &recommendation.ShareCount)
		t.d.Recommendations[ref.TargetId] = recommendation
	case models.TargetReview:
		review, ok := t.d.Reviews[ref.TargetId]
		if !ok {
			return apperrors.NotFoundf("%s %s not found", ref.TargetType, ref.TargetId)
		}
		setCounters(&review.LikeCount, &review.CommentCount, &review.ShareCount)
		t.d.Reviews[ref.TargetId] = review
	case models.TargetComment:
		comment, ok := t.d.Comments[ref.TargetId]
		if !ok {
			return apperrors.NotFoundf("%s %s not found", ref.TargetType, ref.TargetId)
		}
		var unused int64
		setCounters(&comment.LikeCount, &unused, &unused)
		t.d.Comments[ref.TargetId] = comment
	case models.TargetBook:
		book, ok := t.d.Books[ref.TargetId]
		if !ok {
			return apperrors.NotFoundf("%s %s not found", ref.TargetType, ref.TargetId)
		}
		setCounters(&book.LikeCount, &book.CommentCount, &book.ShareCount)
		t.d.Books[ref.TargetId] = book
	default:
		return apperrors.Validationf("unknown target type %q", ref.TargetType)
	}
	return nil
}
