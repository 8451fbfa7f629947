package server

import (
	"campstead/internal/models"
	"campstead/internal/session"
	"campstead/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type registerForm struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// registerForm describes the signup form for clients that render it.
func (s *Server) registerForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"action": "/register",
		"method": fiber.MethodPost,
		"fields": []string{"username", "email", "password"},
	})
}

func (s *Server) register(c *fiber.Ctx) error {
	var form registerForm
	if err := c.BodyParser(&form); err != nil {
		return redirectFlash(c, session.FlashError, "Invalid form submission", "/register")
	}

	user, err := s.identity.Register(c.UserContext(), validation.RegistrationInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return redirectOnError(c, err, "/register")
	}

	sess := sessionFromCtx(c)
	sess.Bind(user.ID)
	sess.AddFlash(session.FlashSuccess, "Welcome to Campstead, "+user.Username+"!")

	target := sess.ConsumeReturnTo()
	if target == "" {
		target = "/campgrounds"
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

func (s *Server) loginForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"action": "/login",
		"method": fiber.MethodPost,
		"fields": []string{"username", "password"},
	})
}

func (s *Server) login(c *fiber.Ctx) error {
	var form loginForm
	if err := c.BodyParser(&form); err != nil {
		return redirectFlash(c, session.FlashError, "Invalid form submission", "/login")
	}

	user, err := s.identity.Authenticate(c.UserContext(), form.Username, form.Password)
	if err != nil {
		return redirectOnError(c, err, "/login")
	}

	sess := sessionFromCtx(c)
	sess.Bind(user.ID)
	sess.AddFlash(session.FlashSuccess, "Welcome back, "+user.Username+"!")

	target := sess.ConsumeReturnTo()
	if target == "" {
		target = "/campgrounds"
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

// logout detaches the principal from the session. The session record
// survives so the goodbye flash can still be delivered.
func (s *Server) logout(c *fiber.Ctx) error {
	sess := sessionFromCtx(c)
	sess.Unbind()
	sess.AddFlash(session.FlashSuccess, "Goodbye!")
	return c.Redirect("/campgrounds", fiber.StatusSeeOther)
}

// sessionFlash hands pending flash messages to the renderer and clears
// them; each message is delivered at most once.
func (s *Server) sessionFlash(c *fiber.Ctx) error {
	msgs := sessionFromCtx(c).ConsumeFlash()
	if msgs == nil {
		msgs = []session.Message{}
	}

	var user *models.User
	if sess := sessionFromCtx(c); sess.UserID() != 0 {
		if u, err := s.identity.GetByID(c.UserContext(), sess.UserID()); err == nil {
			user = u
		}
	}

	return c.JSON(fiber.Map{
		"messages":    msgs,
		"currentUser": user,
	})
}
