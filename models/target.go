package models

// TargetType discriminates the polymorphic entity an engagement refers to.
type TargetType string

const (
	TargetRecommendation TargetType = "recommendation"
	TargetReview         TargetType = "review"
	TargetComment        TargetType = "comment"
	TargetBook           TargetType = "book"
)

// CounterField names the denormalized counter fields carried by targets.
type CounterField string

const (
	FieldLikeCount    CounterField = "likeCount"
	FieldCommentCount CounterField = "commentCount"
	FieldShareCount   CounterField = "shareCount"
)

// TargetRef is the tagged reference an engagement document stores. The
// target never owns the engagement; it only caches a count.
type TargetRef struct {
	TargetType TargetType `bson:"targetType" json:"targetType"`
	TargetId   string     `bson:"targetId" json:"targetId"`
}

var (
	likeableTargets    = map[TargetType]bool{TargetRecommendation: true, TargetComment: true, TargetReview: true}
	commentableTargets = map[TargetType]bool{TargetRecommendation: true, TargetReview: true}
	shareableTargets   = map[TargetType]bool{TargetRecommendation: true, TargetReview: true, TargetBook: true}
)

func (t TargetType) Likeable() bool    { return likeableTargets[t] }
func (t TargetType) Commentable() bool { return commentableTargets[t] }
func (t TargetType) Shareable() bool   { return shareableTargets[t] }
