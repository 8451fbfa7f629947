package server

import (
	"campstead/internal/cache"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) healthLive(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// healthReady verifies the database is reachable. Redis is reported but
// not required: the app degrades to uncached, sessionless-persistence
// operation without it.
func (s *Server) healthReady(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "database": "down"})
	}
	if err := sqlDB.PingContext(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "database": "down"})
	}

	redisStatus := "disabled"
	if client := cache.GetClient(); client != nil {
		redisStatus = "ok"
		if err := client.Ping(c.UserContext()).Err(); err != nil {
			redisStatus = "down"
		}
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": "ok",
		"redis":    redisStatus,
	})
}
