package service

import (
	"context"

	"campstead/internal/models"
	"campstead/internal/repository"
	"campstead/internal/validation"
)

// ReviewService implements the review lifecycle nested under campgrounds.
type ReviewService struct {
	reviews     repository.ReviewRepository
	campgrounds repository.CampgroundRepository
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository, campgrounds repository.CampgroundRepository) *ReviewService {
	return &ReviewService{reviews: reviews, campgrounds: campgrounds}
}

// Create validates and attaches a new review to the campground, authored
// by userID. Validation runs before the campground lookup, so a bad
// payload is reported as such even when the target is gone.
func (s *ReviewService) Create(ctx context.Context, userID, campgroundID uint, in validation.ReviewInput) (*models.Review, error) {
	if errs := validation.ValidateReview(in); len(errs) > 0 {
		return nil, models.NewValidationError(validation.Join(errs))
	}

	if _, err := s.campgrounds.GetByID(ctx, campgroundID); err != nil {
		return nil, err
	}

	review := &models.Review{
		Rating:       in.Rating,
		Body:         in.Body,
		AuthorID:     userID,
		CampgroundID: campgroundID,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return s.reviews.GetByID(ctx, review.ID)
}

// Delete removes a review authored by userID. Existence is checked before
// ownership, and the review must belong to the campground in the path.
func (s *ReviewService) Delete(ctx context.Context, userID, campgroundID, reviewID uint) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.CampgroundID != campgroundID {
		return models.NewNotFoundError("Review", reviewID)
	}
	if review.AuthorID != userID {
		return models.NewUnauthorizedError("You do not have permission to do that")
	}
	return s.reviews.Delete(ctx, reviewID)
}
