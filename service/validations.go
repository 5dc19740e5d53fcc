package service

import (
	"strings"

	"github.com/ReadCircle/bookgraphGo/apperrors"
	"github.com/ReadCircle/bookgraphGo/models"
)

// All input validations shared by services live here.

const (
	MinCommentLength = 1
	MaxCommentLength = 1000

	MinRating = 1
	MaxRating = 5
)

func validateCommentText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < MinCommentLength {
		return "", apperrors.Validation("comment text is empty")
	}
	if len(trimmed) > MaxCommentLength {
		return "", apperrors.Validationf("comment text exceeds %d characters", MaxCommentLength)
	}
	return trimmed, nil
}

func validateLikeTarget(targetType models.TargetType) error {
	if !targetType.Likeable() {
		return apperrors.Validationf("target type %q cannot be liked", targetType)
	}
	return nil
}

func validateCommentTarget(targetType models.TargetType) error {
	if !targetType.Commentable() {
		return apperrors.Validationf("target type %q cannot be commented on", targetType)
	}
	return nil
}

func validateShareTarget(targetType models.TargetType) error {
	if !targetType.Shareable() {
		return apperrors.Validationf("target type %q cannot be shared", targetType)
	}
	return nil
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return apperrors.Validationf("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}
