// Package seed populates the database with realistic sample data for
// development environments.
package seed

import (
	"context"
	"fmt"

	"campstead/internal/middleware"
	"campstead/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data gets generated.
type Options struct {
	Users       int
	Campgrounds int
	// MaxReviews is the upper bound of reviews per campground.
	MaxReviews int
	// Password is assigned to every generated account.
	Password string
}

// DefaultOptions matches a comfortable local development dataset.
func DefaultOptions() Options {
	return Options{
		Users:       10,
		Campgrounds: 30,
		MaxReviews:  5,
		Password:    "trailmix99",
	}
}

// Run generates users, campgrounds, and reviews. It is not idempotent;
// run it against an empty development database.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	if opts.Users < 1 || opts.Campgrounds < 1 {
		return fmt.Errorf("seed: need at least one user and one campground")
	}

	// MinCost keeps seeding fast; these are throwaway credentials.
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Username:     fmt.Sprintf("%s_%d", gofakeit.Username(), i),
			Email:        fmt.Sprintf("seed%d_%s", i, gofakeit.Email()),
			PasswordHash: string(hash),
		}
		if err := db.WithContext(ctx).Create(user).Error; err != nil {
			return fmt.Errorf("seed: create user: %w", err)
		}
		users = append(users, user)
	}

	for i := 0; i < opts.Campgrounds; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]

		cg := &models.Campground{
			Title:       fmt.Sprintf("%s %s", gofakeit.Adjective(), gofakeit.NounConcrete()),
			Description: gofakeit.Paragraph(1, 3, 12, " "),
			Price:       float64(gofakeit.Number(0, 80)),
			Location:    fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
			AuthorID:    author.ID,
			Images:      seedImages(gofakeit.Number(1, 3)),
		}
		if err := db.WithContext(ctx).Create(cg).Error; err != nil {
			return fmt.Errorf("seed: create campground: %w", err)
		}

		for r := gofakeit.Number(0, opts.MaxReviews); r > 0; r-- {
			review := &models.Review{
				Rating:       gofakeit.Number(1, 5),
				Body:         gofakeit.Sentence(10),
				AuthorID:     users[gofakeit.Number(0, len(users)-1)].ID,
				CampgroundID: cg.ID,
			}
			if err := db.WithContext(ctx).Create(review).Error; err != nil {
				return fmt.Errorf("seed: create review: %w", err)
			}
		}
	}

	middleware.Logger.InfoContext(ctx, "seed complete",
		"users", opts.Users,
		"campgrounds", opts.Campgrounds,
	)
	return nil
}

func seedImages(n int) []models.CampgroundImage {
	images := make([]models.CampgroundImage, 0, n)
	for i := 0; i < n; i++ {
		key := "campgrounds/" + uuid.NewString() + ".jpg"
		images = append(images, models.CampgroundImage{
			URL:      "https://images.campstead.dev/upload/" + key,
			Filename: key,
			Position: i,
		})
	}
	return images
}
