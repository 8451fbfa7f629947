package server

import (
	"strconv"

	"campstead/internal/models"
	"campstead/internal/service"
	"campstead/internal/session"
	"campstead/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type campgroundForm struct {
	Title        string   `json:"title" form:"title"`
	Description  string   `json:"description" form:"description"`
	Price        float64  `json:"price" form:"price"`
	Location     string   `json:"location" form:"location"`
	DeleteImages []string `json:"deleteImages" form:"deleteImages"`
}

func (f campgroundForm) fields() validation.CampgroundInput {
	return validation.CampgroundInput{
		Title:       f.Title,
		Description: f.Description,
		Price:       f.Price,
		Location:    f.Location,
	}
}

func (s *Server) listCampgrounds(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	campgrounds, err := s.campgrounds.List(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"campgrounds": campgrounds})
}

func (s *Server) showCampground(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Campground")
	if err != nil {
		return redirectFlash(c, session.FlashError, "Cannot find that campground", "/campgrounds")
	}

	cg, err := s.campgrounds.GetByID(c.UserContext(), id)
	if err != nil {
		if models.ErrorCode(err) == models.CodeNotFound {
			return redirectFlash(c, session.FlashError, "Cannot find that campground", "/campgrounds")
		}
		return err
	}
	return c.JSON(cg)
}

func (s *Server) newCampgroundForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"action": "/campgrounds",
		"method": fiber.MethodPost,
		"fields": []string{"title", "description", "price", "location", "images"},
	})
}

func (s *Server) createCampground(c *fiber.Ctx) error {
	var form campgroundForm
	if err := c.BodyParser(&form); err != nil {
		return redirectFlash(c, session.FlashError, "Invalid form submission", "/campgrounds/new")
	}

	uploads, cleanup, err := uploadsFromForm(c)
	if err != nil {
		return err
	}
	defer cleanup()

	cg, err := s.campgrounds.Create(c.UserContext(), currentUser(c).ID, form.fields(), uploads)
	if err != nil {
		return redirectOnError(c, err, "/campgrounds/new")
	}

	return redirectFlash(c, session.FlashSuccess, "Successfully made a new campground!", campgroundPath(cg.ID))
}

// editCampgroundForm returns the current field values for the edit form.
// Only the owner may see it; everyone else is bounced to the show page.
func (s *Server) editCampgroundForm(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Campground")
	if err != nil {
		return redirectFlash(c, session.FlashError, "Cannot find that campground", "/campgrounds")
	}

	cg, err := s.campgrounds.GetByID(c.UserContext(), id)
	if err != nil {
		if models.ErrorCode(err) == models.CodeNotFound {
			return redirectFlash(c, session.FlashError, "Cannot find that campground", "/campgrounds")
		}
		return err
	}
	if cg.AuthorID != currentUser(c).ID {
		return redirectFlash(c, session.FlashError, "You do not have permission to do that", campgroundPath(id))
	}

	return c.JSON(fiber.Map{
		"action":     campgroundPath(id),
		"method":     fiber.MethodPut,
		"campground": cg,
	})
}

func (s *Server) updateCampground(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Campground")
	if err != nil {
		return redirectFlash(c, session.FlashError, "Cannot find that campground", "/campgrounds")
	}

	var form campgroundForm
	if err := c.BodyParser(&form); err != nil {
		return redirectFlash(c, session.FlashError, "Invalid form submission", campgroundPath(id)+"/edit")
	}

	uploads, cleanup, err := uploadsFromForm(c)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = s.campgrounds.Update(c.UserContext(), currentUser(c).ID, id, service.UpdateCampgroundInput{
		Fields:          form.fields(),
		Uploads:         uploads,
		DeleteFilenames: form.DeleteImages,
	})
	if err != nil {
		return redirectOnError(c, err, campgroundPath(id))
	}

	return redirectFlash(c, session.FlashSuccess, "Successfully updated campground!", campgroundPath(id))
}

func (s *Server) deleteCampground(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Campground")
	if err != nil {
		return redirectFlash(c, session.FlashError, "Cannot find that campground", "/campgrounds")
	}

	if err := s.campgrounds.Delete(c.UserContext(), currentUser(c).ID, id); err != nil {
		return redirectOnError(c, err, campgroundPath(id))
	}

	return redirectFlash(c, session.FlashSuccess, "Successfully deleted campground", "/campgrounds")
}
