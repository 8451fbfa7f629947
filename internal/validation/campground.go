package validation

import "strings"

const (
	maxTitleLen       = 120
	maxDescriptionLen = 10000
	maxLocationLen    = 200
)

// CampgroundInput carries the writable campground fields from a form
// submission. The author is never part of the payload.
type CampgroundInput struct {
	Title       string
	Description string
	Price       float64
	Location    string
}

// ValidateCampground checks a create or update payload and returns all
// field violations.
func ValidateCampground(in CampgroundInput) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, FieldError{"title", "is required"})
	} else if len(in.Title) > maxTitleLen {
		errs = append(errs, FieldError{"title", "must be at most 120 characters"})
	}

	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, FieldError{"description", "is required"})
	} else if len(in.Description) > maxDescriptionLen {
		errs = append(errs, FieldError{"description", "must be at most 10000 characters"})
	}

	if in.Price < 0 {
		errs = append(errs, FieldError{"price", "must not be negative"})
	}

	if strings.TrimSpace(in.Location) == "" {
		errs = append(errs, FieldError{"location", "is required"})
	} else if len(in.Location) > maxLocationLen {
		errs = append(errs, FieldError{"location", "must be at most 200 characters"})
	}

	return errs
}
