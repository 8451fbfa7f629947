package server

import (
	"campstead/internal/session"
	"campstead/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type reviewForm struct {
	Rating int    `json:"rating" form:"rating"`
	Body   string `json:"body" form:"body"`
}

func (s *Server) createReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Campground")
	if err != nil {
		return redirectFlash(c, session.FlashError, "Cannot find that campground", "/campgrounds")
	}

	var form reviewForm
	if err := c.BodyParser(&form); err != nil {
		return redirectFlash(c, session.FlashError, "Invalid form submission", campgroundPath(id))
	}

	_, err = s.reviews.Create(c.UserContext(), currentUser(c).ID, id, validation.ReviewInput{
		Rating: form.Rating,
		Body:   form.Body,
	})
	if err != nil {
		return redirectOnError(c, err, campgroundPath(id))
	}

	return redirectFlash(c, session.FlashSuccess, "Created new review!", campgroundPath(id))
}

func (s *Server) deleteReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Campground")
	if err != nil {
		return redirectFlash(c, session.FlashError, "Cannot find that campground", "/campgrounds")
	}
	reviewID, err := parseID(c, "reviewID", "Review")
	if err != nil {
		return redirectFlash(c, session.FlashError, "Cannot find that review", campgroundPath(id))
	}

	if err := s.reviews.Delete(c.UserContext(), currentUser(c).ID, id, reviewID); err != nil {
		return redirectOnError(c, err, campgroundPath(id))
	}

	return redirectFlash(c, session.FlashSuccess, "Successfully deleted review", campgroundPath(id))
}
