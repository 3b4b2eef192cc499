package handlers

import (
	"errors"

	"city-game-backend/middleware"
	"city-game-backend/services"
	"city-game-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupLeagueRoutes(app *fiber.App, leagueService *services.LeagueService) {
	leagues := app.Group("/api/leagues", middleware.UserContextMiddleware())

	leagues.Post("/", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var input struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&input); err != nil || input.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(utils.Response(false, "League name is required", nil))
		}

		league, err := leagueService.CreateLeague(c.Context(), input.Name, userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, err.Error(), nil))
		}
		return c.Status(fiber.StatusCreated).JSON(utils.Response(true, "League created successfully", league))
	})

	leagues.Post("/:id/join", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		leagueID := c.Params("id")

		stats, err := leagueService.JoinLeague(c.Context(), leagueID, userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrLeagueNotFound):
				return c.Status(fiber.StatusNotFound).JSON(utils.Response(false, "No league found for the id: "+leagueID, nil))
			case errors.Is(err, services.ErrAlreadyMember):
				return c.Status(fiber.StatusConflict).JSON(utils.Response(false, "Already a member of this league", nil))
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, err.Error(), nil))
			}
		}
		return c.JSON(utils.Response(true, "League joined successfully", stats))
	})

	leagues.Get("/:id/members", func(c *fiber.Ctx) error {
		members, err := leagueService.LeagueMembers(c.Context(), c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, err.Error(), nil))
		}
		return c.JSON(utils.Response(true, "League members fetched successfully", members))
	})
}
