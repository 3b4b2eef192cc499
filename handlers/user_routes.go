package handlers

import (
	"errors"
	"strconv"

	"city-game-backend/middleware"
	"city-game-backend/services"
	"city-game-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService) {
	app.Post("/register", func(c *fiber.Ctx) error {
		var input struct {
			UserName string `json:"userName"`
			Email    string `json:"email"`
		}
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.Response(false, "Invalid request body", nil))
		}
		if input.UserName == "" || input.Email == "" {
			return c.Status(fiber.StatusBadRequest).JSON(utils.Response(false, "Username and email are required", nil))
		}

		profile, err := userService.Register(c.Context(), input.UserName, input.Email)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, err.Error(), nil))
		}
		return c.Status(fiber.StatusCreated).JSON(utils.Response(true, "User registered and profile created successfully", profile))
	})

	// Fetching user details also lazily creates the individual ledger with
	// the starting balances.
	app.Get("/user-details", middleware.UserContextMiddleware(), func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		if _, err := userService.EnsureUserPoints(c.Context(), userID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, err.Error(), nil))
		}

		profile, err := userService.GetProfile(c.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(utils.Response(false, "User doesn't exist. Please register first", nil))
			}
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, err.Error(), nil))
		}

		return c.JSON(fiber.Map{
			"user_id":     profile.UserID,
			"email":       profile.Email,
			"userName":    profile.UserName,
			"gameInitMap": profile.GameInitMap,
		})
	})

	// Admin reset of every individual coin balance.
	app.Get("/update-coins", middleware.UserContextMiddleware(), func(c *fiber.Ctx) error {
		var coins *float64
		if q := c.Query("coins"); q != "" {
			value, err := strconv.ParseFloat(q, 64)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(utils.Response(false, "coins must be a number", nil))
			}
			coins = &value
		}

		touched, err := userService.ResetCoins(c.Context(), coins)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, err.Error(), nil))
		}
		return c.JSON(utils.Response(true, "Coins updated for all users", fiber.Map{"updated": touched}))
	})
}
