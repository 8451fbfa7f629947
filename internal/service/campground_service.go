package service

import (
	"context"
	"io"

	"campstead/internal/middleware"
	"campstead/internal/models"
	"campstead/internal/repository"
	"campstead/internal/storage"
	"campstead/internal/validation"
)

// ImageUpload is one file received from a multipart form, decoupled from
// the HTTP layer so services and tests can construct them directly.
type ImageUpload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UpdateCampgroundInput carries everything an edit submission can change:
// scalar fields, new uploads to append, and storage keys of images marked
// for deletion.
type UpdateCampgroundInput struct {
	Fields          validation.CampgroundInput
	Uploads         []ImageUpload
	DeleteFilenames []string
}

// CampgroundService implements the campground lifecycle, including the
// ownership guard on mutations.
type CampgroundService struct {
	campgrounds repository.CampgroundRepository
	images      storage.Store
}

// NewCampgroundService creates a new campground service.
func NewCampgroundService(campgrounds repository.CampgroundRepository, images storage.Store) *CampgroundService {
	return &CampgroundService{campgrounds: campgrounds, images: images}
}

// List returns a page of campgrounds, newest first.
func (s *CampgroundService) List(ctx context.Context, limit, offset int) ([]*models.Campground, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.campgrounds.List(ctx, limit, offset)
}

// GetByID returns a single campground with author, images, and reviews.
func (s *CampgroundService) GetByID(ctx context.Context, id uint) (*models.Campground, error) {
	return s.campgrounds.GetByID(ctx, id)
}

// Create validates the input, uploads any images, and persists the new
// campground owned by authorID.
func (s *CampgroundService) Create(ctx context.Context, authorID uint, in validation.CampgroundInput, uploads []ImageUpload) (*models.Campground, error) {
	if errs := validation.ValidateCampground(in); len(errs) > 0 {
		return nil, models.NewValidationError(validation.Join(errs))
	}

	stored, err := s.uploadAll(ctx, uploads)
	if err != nil {
		return nil, err
	}
	for i := range stored {
		stored[i].Position = i
	}

	cg := &models.Campground{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Location:    in.Location,
		AuthorID:    authorID,
		Images:      stored,
	}
	if err := s.campgrounds.Create(ctx, cg); err != nil {
		return nil, err
	}
	return s.campgrounds.GetByID(ctx, cg.ID)
}

// Update applies an edit submission on behalf of userID. Existence is
// checked before ownership so a missing campground reads as not found for
// everyone. New images are appended after the existing gallery; images
// marked for deletion are removed from the record first and from external
// storage after, exactly once each.
func (s *CampgroundService) Update(ctx context.Context, userID, id uint, in UpdateCampgroundInput) (*models.Campground, error) {
	cg, err := s.campgrounds.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cg.AuthorID != userID {
		return nil, models.NewUnauthorizedError("You do not have permission to do that")
	}

	if errs := validation.ValidateCampground(in.Fields); len(errs) > 0 {
		return nil, models.NewValidationError(validation.Join(errs))
	}

	if err := s.campgrounds.UpdateFields(ctx, &models.Campground{
		ID:          id,
		Title:       in.Fields.Title,
		Description: in.Fields.Description,
		Price:       in.Fields.Price,
		Location:    in.Fields.Location,
	}); err != nil {
		return nil, err
	}

	stored, err := s.uploadAll(ctx, in.Uploads)
	if err != nil {
		return nil, err
	}
	if err := s.campgrounds.AppendImages(ctx, id, stored); err != nil {
		return nil, err
	}

	removed, err := s.campgrounds.RemoveImages(ctx, id, in.DeleteFilenames)
	if err != nil {
		return nil, err
	}
	s.deleteStored(ctx, removed)

	return s.campgrounds.GetByID(ctx, id)
}

// Delete removes a campground owned by userID, its dependent records, and
// its stored images.
func (s *CampgroundService) Delete(ctx context.Context, userID, id uint) error {
	cg, err := s.campgrounds.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cg.AuthorID != userID {
		return models.NewUnauthorizedError("You do not have permission to do that")
	}

	if err := s.campgrounds.Delete(ctx, id); err != nil {
		return err
	}
	s.deleteStored(ctx, cg.Images)
	return nil
}

func (s *CampgroundService) uploadAll(ctx context.Context, uploads []ImageUpload) ([]models.CampgroundImage, error) {
	stored := make([]models.CampgroundImage, 0, len(uploads))
	for _, up := range uploads {
		obj, err := s.images.Upload(ctx, storage.ObjectKey(up.Name), up.Reader, up.Size, up.ContentType)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		stored = append(stored, models.CampgroundImage{
			URL:      obj.URL,
			Filename: obj.Filename,
		})
	}
	return stored, nil
}

// deleteStored removes objects from external storage after their records
// are gone. The record deletion already committed, so storage failures are
// logged rather than surfaced; the object is orphaned, not resurrected.
func (s *CampgroundService) deleteStored(ctx context.Context, images []models.CampgroundImage) {
	for _, img := range images {
		if err := s.images.Delete(ctx, img.Filename); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to delete stored image",
				"filename", img.Filename,
				"error", err,
			)
		}
	}
}
