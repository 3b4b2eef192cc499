package handlers

import (
	"errors"

	"city-game-backend/middleware"
	"city-game-backend/models"
	"city-game-backend/services"
	"city-game-backend/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupChallengeRoutes(app *fiber.App, challengeService *services.ChallengeService) {
	v1 := app.Group("/v1", middleware.UserContextMiddleware())

	v1.Get("/random-challenge", func(c *fiber.Ctx) error {
		tpl := challengeService.RandomTemplate()
		return c.JSON(utils.Response(true, "Random challenge fetched successfully", tpl))
	})

	v1.Post("/create-challenge", func(c *fiber.Ctx) error {
		var input services.CreateChallengeInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.Response(false, "Invalid request body", nil))
		}

		if input.StartTime.IsZero() || input.EndTime.IsZero() || input.Message == "" ||
			input.Required.BuildingID == 0 || input.Required.Count == 0 || input.Points == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(utils.Response(false, "All fields are required", nil))
		}

		challenge, err := challengeService.CreateChallenge(c.Context(), input)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrLeagueNotFound):
				return c.Status(fiber.StatusNotFound).JSON(utils.Response(false, "No league found for the id: "+*input.LeagueID, nil))
			case errors.Is(err, services.ErrBuildingNotFound):
				return c.Status(fiber.StatusNotFound).JSON(utils.Response(false, "No building found for the given id", nil))
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, "An error occurred", err.Error()))
			}
		}

		return c.JSON(utils.Response(true, "Challenge created successfully", fiber.Map{"id": challenge.ID}))
	})

	v1.Post("/create-challenge-progress", func(c *fiber.Ctx) error {
		var input struct {
			ChallengeID string  `json:"challengeID"`
			UserID      string  `json:"userID"`
			LeagueID    *string `json:"leagueID"`
			BuildingID  int     `json:"buildingID"`
			Count       int     `json:"count"`
		}
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.Response(false, "Invalid request body", nil))
		}
		if input.ChallengeID == "" || input.UserID == "" || input.BuildingID == 0 || input.Count == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(utils.Response(false, "All fields are required", nil))
		}

		progress := models.ChallengeRequirement{BuildingID: input.BuildingID, Count: input.Count}
		if _, err := challengeService.CreateProgress(c.Context(), input.ChallengeID, input.UserID, input.LeagueID, progress); err != nil {
			if errors.Is(err, services.ErrChallengeNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(utils.Response(false, "No challenge found for the id: "+input.ChallengeID, nil))
			}
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, "An error occurred", err.Error()))
		}

		return c.JSON(utils.Response(true, "Challenge progress created successfully", nil))
	})

	v1.Get("/active-challenges", func(c *fiber.Ctx) error {
		challenges, err := challengeService.ActiveChallenges(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, "An error occurred", err.Error()))
		}
		return c.JSON(utils.Response(true, "Active challenges fetched successfully", challenges))
	})

	v1.Get("/completed-challenges", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var leagueID *string
		if q := c.Query("leagueID"); q != "" {
			leagueID = &q
		}

		records, err := challengeService.CompletedChallenges(c.Context(), userID, leagueID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, "An error occurred", err.Error()))
		}
		return c.JSON(utils.Response(true, "Completed challenges fetched successfully", records))
	})
}
