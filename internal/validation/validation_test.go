package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCampground() CampgroundInput {
	return CampgroundInput{
		Title:       "Pine Ridge",
		Description: "Quiet pines above the river.",
		Price:       25,
		Location:    "CO",
	}
}

func TestValidateCampground(t *testing.T) {
	t.Parallel()

	t.Run("valid input has no violations", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ValidateCampground(validCampground()))
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		t.Parallel()
		in := validCampground()
		in.Price = -1
		errs := ValidateCampground(in)
		require.Len(t, errs, 1)
		assert.Equal(t, "price", errs[0].Field)
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		t.Parallel()
		in := validCampground()
		in.Price = 0
		assert.Empty(t, ValidateCampground(in))
	})

	t.Run("all violations are collected", func(t *testing.T) {
		t.Parallel()
		errs := ValidateCampground(CampgroundInput{Price: -5})
		assert.Len(t, errs, 4)

		msg := Join(errs)
		assert.Contains(t, msg, "title is required")
		assert.Contains(t, msg, "price must not be negative")
		assert.Contains(t, msg, "location is required")
	})

	t.Run("overlong title", func(t *testing.T) {
		t.Parallel()
		in := validCampground()
		in.Title = strings.Repeat("x", 121)
		errs := ValidateCampground(in)
		require.Len(t, errs, 1)
		assert.Equal(t, "title", errs[0].Field)
	})
}

func TestValidateReview(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ValidateReview(ReviewInput{Rating: 4, Body: "Great spot."}))
	})

	t.Run("rating out of range", func(t *testing.T) {
		t.Parallel()
		for _, rating := range []int{0, 6, -1} {
			errs := ValidateReview(ReviewInput{Rating: rating, Body: "ok"})
			require.Len(t, errs, 1)
			assert.Equal(t, "rating", errs[0].Field)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		errs := ValidateReview(ReviewInput{Rating: 3, Body: "   "})
		require.Len(t, errs, 1)
		assert.Equal(t, "body", errs[0].Field)
	})
}

func TestValidateRegistration(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ValidateRegistration(RegistrationInput{
			Username: "camper_42",
			Email:    "camper@example.com",
			Password: "trailmix99",
		}))
	})

	t.Run("bad username and email aggregate", func(t *testing.T) {
		t.Parallel()
		errs := ValidateRegistration(RegistrationInput{
			Username: "a!",
			Email:    "nope",
			Password: "trailmix99",
		})
		assert.Len(t, errs, 2)
	})

	t.Run("password needs letter and digit", func(t *testing.T) {
		t.Parallel()
		errs := ValidateRegistration(RegistrationInput{
			Username: "camper_42",
			Email:    "camper@example.com",
			Password: "12345678",
		})
		require.Len(t, errs, 1)
		assert.Equal(t, "password", errs[0].Field)
	})

	t.Run("short password reports once", func(t *testing.T) {
		t.Parallel()
		errs := ValidateRegistration(RegistrationInput{
			Username: "camper_42",
			Email:    "camper@example.com",
			Password: "ab1",
		})
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "at least 8 characters")
	})
}
