package repository

import (
	"context"
	"errors"

	"campstead/internal/cache"
	"campstead/internal/models"

	"gorm.io/gorm"
)

// CampgroundRepository defines persistence operations for campgrounds and
// their image rows. Delete owns the cascade invariant: no review or image
// row survives its campground on any deletion path.
type CampgroundRepository interface {
	Create(ctx context.Context, cg *models.Campground) error
	GetByID(ctx context.Context, id uint) (*models.Campground, error)
	List(ctx context.Context, limit, offset int) ([]*models.Campground, error)
	UpdateFields(ctx context.Context, cg *models.Campground) error
	AppendImages(ctx context.Context, campgroundID uint, images []models.CampgroundImage) error
	RemoveImages(ctx context.Context, campgroundID uint, filenames []string) ([]models.CampgroundImage, error)
	Delete(ctx context.Context, id uint) error
}

type campgroundRepository struct {
	db *gorm.DB
}

// NewCampgroundRepository creates a new campground repository.
func NewCampgroundRepository(db *gorm.DB) CampgroundRepository {
	return &campgroundRepository{db: db}
}

func (r *campgroundRepository) Create(ctx context.Context, cg *models.Campground) error {
	if err := r.db.WithContext(ctx).Create(cg).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCampgroundList(ctx)
	return nil
}

func (r *campgroundRepository) GetByID(ctx context.Context, id uint) (*models.Campground, error) {
	var cg models.Campground

	fetch := func() error {
		return r.db.WithContext(ctx).
			Preload("Author").
			Preload("Images", func(db *gorm.DB) *gorm.DB {
				return db.Order("position ASC")
			}).
			Preload("Reviews", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC")
			}).
			Preload("Reviews.Author").
			First(&cg, id).Error
	}

	// Every write path invalidates this key, so a cached entry is current.
	err := cache.Aside(ctx, cache.CampgroundKey(id), &cg, cache.CampgroundTTL, fetch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Campground", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &cg, nil
}

func (r *campgroundRepository) List(ctx context.Context, limit, offset int) ([]*models.Campground, error) {
	var campgrounds []*models.Campground

	fetch := func() error {
		return r.db.WithContext(ctx).
			Preload("Author").
			Preload("Images", func(db *gorm.DB) *gorm.DB {
				return db.Order("position ASC")
			}).
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&campgrounds).Error
	}

	var err error
	if offset == 0 {
		// Only the first page is hot enough to be worth caching.
		err = cache.Aside(ctx, cache.CampgroundListKey, &campgrounds, cache.ListTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return campgrounds, nil
}

// UpdateFields persists the writable columns only. AuthorID is deliberately
// excluded: ownership is immutable after creation.
func (r *campgroundRepository) UpdateFields(ctx context.Context, cg *models.Campground) error {
	err := r.db.WithContext(ctx).
		Model(&models.Campground{ID: cg.ID}).
		Select("title", "description", "price", "location").
		Updates(models.Campground{
			Title:       cg.Title,
			Description: cg.Description,
			Price:       cg.Price,
			Location:    cg.Location,
		}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCampground(ctx, cg.ID)
	return nil
}

// AppendImages adds images to the end of the campground's ordered gallery.
func (r *campgroundRepository) AppendImages(ctx context.Context, campgroundID uint, images []models.CampgroundImage) error {
	if len(images) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos int
		row := tx.Model(&models.CampgroundImage{}).
			Where("campground_id = ?", campgroundID).
			Select("COALESCE(MAX(position), -1)").
			Row()
		if err := row.Scan(&maxPos); err != nil {
			return err
		}

		for i := range images {
			images[i].ID = 0
			images[i].CampgroundID = campgroundID
			images[i].Position = maxPos + 1 + i
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCampground(ctx, campgroundID)
	return nil
}

// RemoveImages deletes the image rows matching the given storage keys and
// returns the removed records so the caller can clean up external storage.
func (r *campgroundRepository) RemoveImages(ctx context.Context, campgroundID uint, filenames []string) ([]models.CampgroundImage, error) {
	if len(filenames) == 0 {
		return nil, nil
	}

	var removed []models.CampgroundImage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("campground_id = ? AND filename IN ?", campgroundID, filenames).
			Find(&removed).Error; err != nil {
			return err
		}
		if len(removed) == 0 {
			return nil
		}
		return tx.
			Where("campground_id = ? AND filename IN ?", campgroundID, filenames).
			Delete(&models.CampgroundImage{}).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateCampground(ctx, campgroundID)
	return removed, nil
}

// Delete removes the campground together with every review and image row
// it owns, in one transaction. The cascade lives here so it fires on every
// deletion path, not at individual call sites.
func (r *campgroundRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campground_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("campground_id = ?", id).Delete(&models.CampgroundImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Campground{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCampground(ctx, id)
	return nil
}
