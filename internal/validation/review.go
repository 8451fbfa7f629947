package validation

import "strings"

const maxReviewLen = 5000

// ReviewInput carries the writable review fields from a form submission.
type ReviewInput struct {
	Rating int
	Body   string
}

// ValidateReview checks a review payload and returns all field violations.
func ValidateReview(in ReviewInput) []FieldError {
	var errs []FieldError

	if in.Rating < 1 || in.Rating > 5 {
		errs = append(errs, FieldError{"rating", "must be between 1 and 5"})
	}

	if strings.TrimSpace(in.Body) == "" {
		errs = append(errs, FieldError{"body", "is required"})
	} else if len(in.Body) > maxReviewLen {
		errs = append(errs, FieldError{"body", "must be at most 5000 characters"})
	}

	return errs
}
