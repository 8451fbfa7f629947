package server

import (
	"time"

	"campstead/internal/middleware"
	"campstead/internal/models"
	"campstead/internal/session"

	"github.com/gofiber/fiber/v2"
)

const (
	localSession = "session"
	localUser    = "currentUser"
)

// SessionMiddleware loads the client's session before the handler runs and
// persists it afterwards. The cookie is only set once the session actually
// holds state, so anonymous browsing stays cookie-free.
func (s *Server) SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := s.sessions.Load(c.UserContext(), c.Cookies(session.CookieName))
		if err != nil {
			return models.NewInternalError(err)
		}

		c.Locals(localSession, sess)
		if uid := sess.UserID(); uid != 0 {
			c.Locals("userID", uid)
		}

		handlerErr := c.Next()

		needsCookie := sess.Fresh() && sess.Dirty()
		if saveErr := s.sessions.Save(c.UserContext(), sess); saveErr != nil {
			middleware.Logger.ErrorContext(c.UserContext(), "session save failed", "error", saveErr)
		} else if needsCookie {
			c.Cookie(&fiber.Cookie{
				Name:     session.CookieName,
				Value:    sess.ID(),
				Path:     "/",
				MaxAge:   int(s.config.SessionTTL() / time.Second),
				HTTPOnly: true,
				Secure:   s.config.Env == "production" || s.config.Env == "prod",
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		return handlerErr
	}
}

// RequireAuth guards mutating routes. Anonymous clients are remembered via
// returnTo and sent to the login page; sessions pointing at a deleted user
// are unbound and treated as anonymous.
func (s *Server) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := sessionFromCtx(c)

		if sess.UserID() == 0 {
			// Only GETs can be resumed after login; a redirect cannot
			// replay a form submission.
			if c.Method() == fiber.MethodGet {
				sess.SetReturnTo(c.OriginalURL())
			}
			sess.AddFlash(session.FlashError, "You must be signed in first")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		user, err := s.identity.GetByID(c.UserContext(), sess.UserID())
		if err != nil {
			if models.ErrorCode(err) == models.CodeNotFound {
				sess.Unbind()
				sess.AddFlash(session.FlashError, "You must be signed in first")
				return c.Redirect("/login", fiber.StatusSeeOther)
			}
			return err
		}

		c.Locals(localUser, user)
		return c.Next()
	}
}
