package services

import (
	"context"
	"log"

	"game-asset-system/models"
	"game-asset-system/repository"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const topAssetsLimit = 5

type ReportService struct {
	Players      repository.PlayerRepository
	Assets       repository.AssetRepository
	PlayerAssets repository.PlayerAssetRepository
}

func NewReportService(players repository.PlayerRepository, assets repository.AssetRepository, playerAssets repository.PlayerAssetRepository) *ReportService {
	return &ReportService{
		Players:      players,
		Assets:       assets,
		PlayerAssets: playerAssets,
	}
}

// BuildReport flattens every ownership edge into a numbered report row by
// resolving its player and asset against the current documents.
//
// Three batched reads total — one per collection — never one lookup per edge.
// Edges whose player or asset no longer resolves are dropped silently; rows
// are numbered 1..N in edge order.
func (s *ReportService) BuildReport(ctx context.Context) ([]models.PlayerAssetReport, error) {
	edges, err := s.PlayerAssets.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	players, err := s.Players.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	assets, err := s.Assets.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	playerByID := make(map[primitive.ObjectID]models.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}
	assetByID := make(map[primitive.ObjectID]models.Asset, len(assets))
	for _, a := range assets {
		assetByID[a.ID] = a
	}

	reports := make([]models.PlayerAssetReport, 0, len(edges))
	for _, edge := range edges {
		player, ok := playerByID[edge.PlayerID]
		if !ok {
			continue
		}
		asset, ok := assetByID[edge.AssetID]
		if !ok {
			continue
		}
		reports = append(reports, models.PlayerAssetReport{
			No:         len(reports) + 1,
			PlayerName: player.PlayerName,
			Level:      player.Level,
			Age:        player.Age,
			AssetName:  asset.AssetName,
		})
	}
	return reports, nil
}

// GetAssetsByPlayer serves the flattened ownership report. Empty store means
// an empty list with count 0, not an error.
func (s *ReportService) GetAssetsByPlayer(c *fiber.Ctx) error {
	reports, err := s.BuildReport(c.Context())
	if err != nil {
		log.Printf("❌ [REPORT] failed to build report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}
	return c.JSON(fiber.Map{"count": len(reports), "reports": reports})
}

// GetSummary serves the dashboard stats: entity counts, most-assigned assets,
// and the average player level across report rows.
//
// averageLevel divides by ROW count, not unique-player count, so a player
// holding three assets weighs in three times. That matches the original
// dashboard and is kept as-is.
func (s *ReportService) GetSummary(c *fiber.Ctx) error {
	ctx := c.Context()

	totalPlayers, err := s.Players.Count(ctx)
	if err != nil {
		log.Printf("❌ [SUMMARY] failed to count players: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}
	totalAssets, err := s.Assets.Count(ctx)
	if err != nil {
		log.Printf("❌ [SUMMARY] failed to count assets: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}
	totalAssignments, err := s.PlayerAssets.Count(ctx)
	if err != nil {
		log.Printf("❌ [SUMMARY] failed to count assignments: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	topAssets, err := s.PlayerAssets.CountByAsset(ctx, topAssetsLimit)
	if err != nil {
		log.Printf("❌ [SUMMARY] failed to aggregate top assets: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	reports, err := s.BuildReport(ctx)
	if err != nil {
		log.Printf("❌ [SUMMARY] failed to build report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	averageLevel := 0.0
	if len(reports) > 0 {
		total := 0
		for _, row := range reports {
			total += row.Level
		}
		averageLevel = float64(total) / float64(len(reports))
	}

	return c.JSON(fiber.Map{
		"totalPlayers":     totalPlayers,
		"totalAssets":      totalAssets,
		"totalAssignments": totalAssignments,
		"topAssets":        topAssets,
		"averageLevel":     averageLevel,
	})
}
