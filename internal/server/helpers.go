package server

import (
	"errors"
	"fmt"

	"campstead/internal/models"
	"campstead/internal/service"
	"campstead/internal/session"

	"github.com/gofiber/fiber/v2"
)

func sessionFromCtx(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(localSession).(*session.Session)
	return sess
}

func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localUser).(*models.User)
	return user
}

func campgroundPath(id uint) string {
	return fmt.Sprintf("/campgrounds/%d", id)
}

// parseID reads a positive numeric path parameter. Anything else reads as
// a missing resource rather than a syntax error.
func parseID(c *fiber.Ctx, param, resource string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewNotFoundError(resource, c.Params(param))
	}
	return uint(id), nil
}

// redirectFlash queues a flash message and issues a see-other redirect, the
// standard response shape for form submissions.
func redirectFlash(c *fiber.Ctx, kind, text, target string) error {
	sessionFromCtx(c).AddFlash(kind, text)
	return c.Redirect(target, fiber.StatusSeeOther)
}

// redirectOnError converts recoverable errors into a flash + redirect to
// the page the user can act on. Internal errors bubble to the terminal
// error handler instead; their details never reach the client.
func redirectOnError(c *fiber.Ctx, err error, target string) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code != models.CodeInternal {
		return redirectFlash(c, session.FlashError, appErr.Message, target)
	}
	return err
}

// uploadsFromForm extracts the files of the multipart field "images".
// The returned cleanup closes every opened file and must always be called.
func uploadsFromForm(c *fiber.Ctx) ([]service.ImageUpload, func(), error) {
	noop := func() {}

	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart submission; no files attached.
		return nil, noop, nil
	}

	files := form.File["images"]
	uploads := make([]service.ImageUpload, 0, len(files))
	closers := make([]func() error, 0, len(files))
	cleanup := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, noop, models.NewInternalError(err)
		}
		closers = append(closers, f.Close)
		uploads = append(uploads, service.ImageUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		})
	}

	return uploads, cleanup, nil
}
