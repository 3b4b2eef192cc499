package handlers

import (
	"errors"

	"city-game-backend/middleware"
	"city-game-backend/services"
	"city-game-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPointsRoutes(app *fiber.App, pointsService *services.PointsService, notificationService *services.NotificationService) {
	secured := app.Group("/api", middleware.UserContextMiddleware())

	secured.Get("/points", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		points, err := pointsService.GetUserPoints(c.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(utils.Response(false, "No points found for user", nil))
			}
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, err.Error(), nil))
		}
		return c.JSON(utils.Response(true, "Points fetched successfully", points))
	})

	// League stats for resuming the league game against a user.
	secured.Get("/league-stats/:leagueID", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		stats, err := pointsService.GetLeagueStats(c.Context(), c.Params("leagueID"), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(utils.Response(false, "No league stats found", nil))
			}
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, err.Error(), nil))
		}
		return c.JSON(utils.Response(true, "League stats fetched successfully", stats))
	})

	secured.Get("/notifications", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		notifications, err := notificationService.ListForUser(c.Context(), userID, c.QueryInt("limit", 50))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, err.Error(), nil))
		}
		return c.JSON(utils.Response(true, "Notifications fetched successfully", notifications))
	})

	secured.Get("/notifications/stream", notificationService.StreamSSE)
}
