package handlers

import (
	"log"

	"city-game-backend/middleware"
	"city-game-backend/models"
	"city-game-backend/services"
	"city-game-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupAssetRoutes(app *fiber.App, pointsService *services.PointsService) {
	// Place a building. The placement also runs the one-time settlement
	// against the owner's ledger (purchase cost, settlement tax, residents).
	app.Post("/buildings/new", middleware.UserContextMiddleware(), func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var input struct {
			BuildingID  int     `json:"buildingId"`
			LeagueID    *string `json:"leagueId"`
			IsCreated   bool    `json:"isCreated"`
			IsForbidden bool    `json:"isForbidden"`
			IsDestroyed bool    `json:"isDestroyed"`
			IsRotate    bool    `json:"isRotate"`
			X           int     `json:"x"`
			Y           int     `json:"y"`
		}
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.Response(false, "Invalid request body", nil))
		}

		asset := models.UserAsset{
			ID:          uuid.NewString(),
			UserID:      userID,
			BuildingID:  input.BuildingID,
			LeagueID:    input.LeagueID,
			X:           input.X,
			Y:           input.Y,
			IsCreated:   input.IsCreated,
			IsForbidden: input.IsForbidden,
			IsDestroyed: input.IsDestroyed,
			IsRotate:    input.IsRotate,
		}
		if err := pointsService.DB.WithContext(c.Context()).Create(&asset).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, err.Error(), nil))
		}

		if err := pointsService.SettleAssetPlacement(c.Context(), asset); err != nil {
			// The asset stays; the settlement failure is logged like any
			// other per-asset ledger failure.
			log.Printf("[Assets] settlement failed for asset %s: %v", asset.ID, err)
		}

		return c.JSON(utils.Response(true, "Asset created", fiber.Map{"id": asset.ID}))
	})

	app.Get("/api/assets", middleware.UserContextMiddleware(), func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var assets []models.UserAsset
		if err := pointsService.DB.WithContext(c.Context()).
			Where("user_id = ?", userID).
			Find(&assets).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.Response(false, err.Error(), nil))
		}
		return c.JSON(utils.Response(true, "Assets fetched successfully", assets))
	})
}
