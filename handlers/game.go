// handlers/game_routes.go
package handlers

import (
	"time"

	"game-asset-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(app *fiber.App, gameService *services.GameService, reportService *services.ReportService) {
	game := app.Group("/game")

	// Writes
	game.Post("/registerplayer", gameService.RegisterPlayer)
	game.Post("/createasset", gameService.CreateAsset)
	game.Post("/assignasset", gameService.AssignAsset)

	// Reads
	game.Get("/players", gameService.GetPlayers)
	game.Get("/assets", gameService.GetAssets)
	game.Get("/getassetsbyplayer", reportService.GetAssetsByPlayer)
	game.Get("/summary", reportService.GetSummary)

	// Liveness — stays open even when gateway auth is on.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
