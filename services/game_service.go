package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"game-asset-system/models"
	"game-asset-system/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GameService struct {
	Players      repository.PlayerRepository
	Assets       repository.AssetRepository
	PlayerAssets repository.PlayerAssetRepository
}

func NewGameService(players repository.PlayerRepository, assets repository.AssetRepository, playerAssets repository.PlayerAssetRepository) *GameService {
	return &GameService{
		Players:      players,
		Assets:       assets,
		PlayerAssets: playerAssets,
	}
}

type RegisterPlayerRequest struct {
	PlayerName string `json:"playerName"`
	FullName   string `json:"fullName"`
	Age        int    `json:"age"`
	Level      int    `json:"level"`
	Email      string `json:"email"`
}

type CreateAssetRequest struct {
	AssetName    string `json:"assetName"`
	LevelRequire int    `json:"levelRequire"`
	Description  string `json:"description"`
}

type AssignAssetRequest struct {
	PlayerID string `json:"playerId"`
	AssetID  string `json:"assetId"`
}

// MinimalPlayer is the projected shape for the player listing.
type MinimalPlayer struct {
	ID         string    `json:"id"`
	PlayerName string    `json:"playerName"`
	Level      int       `json:"level"`
	Age        int       `json:"age"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MinimalAsset is the projected shape for the asset listing.
type MinimalAsset struct {
	ID           string    `json:"id"`
	AssetName    string    `json:"assetName"`
	Slug         string    `json:"slug"`
	LevelRequire int       `json:"levelRequire"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterPlayer creates a new player account.
// Exactly one insert on the success path, none on any failure path.
func (s *GameService) RegisterPlayer(c *fiber.Ctx) error {
	var req RegisterPlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	req.PlayerName = strings.TrimSpace(req.PlayerName)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.PlayerName == "" || req.FullName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "playerName and fullName are required"})
	}

	existing, err := s.Players.FindByName(c.Context(), req.PlayerName)
	if err != nil {
		log.Printf("❌ [PLAYER] duplicate check failed for %q: %v", req.PlayerName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("player name %q is already taken", req.PlayerName),
		})
	}

	player := &models.Player{
		PlayerName: req.PlayerName,
		FullName:   req.FullName,
		Age:        req.Age,
		Level:      req.Level,
		Email:      req.Email,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.Players.Create(c.Context(), player)
	if errors.Is(err, repository.ErrDuplicatePlayerName) {
		// Lost the race to a concurrent registration; the unique index caught it.
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("player name %q is already taken", req.PlayerName),
		})
	}
	if err != nil {
		log.Printf("❌ [PLAYER] failed to create player %q: %v", req.PlayerName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// CreateAsset creates an asset definition. Asset names are deliberately not
// checked for duplicates — only player names are unique.
func (s *GameService) CreateAsset(c *fiber.Ctx) error {
	var req CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	req.AssetName = strings.TrimSpace(req.AssetName)
	if req.AssetName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "assetName is required"})
	}
	if req.LevelRequire < models.MinLevelRequire || req.LevelRequire > models.MaxLevelRequire {
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("levelRequire must be between %d and %d", models.MinLevelRequire, models.MaxLevelRequire),
		})
	}

	asset := &models.Asset{
		AssetName:    req.AssetName,
		Slug:         slug.Make(req.AssetName),
		LevelRequire: req.LevelRequire,
		Description:  req.Description,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.Assets.Create(c.Context(), asset)
	if err != nil {
		log.Printf("❌ [ASSET] failed to create asset %q: %v", req.AssetName, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// AssignAsset creates an ownership edge after resolving both references and
// checking the level gate. Re-assigning the same pair just creates another
// edge — there is no idempotence check.
func (s *GameService) AssignAsset(c *fiber.Ctx) error {
	var req AssignAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	if req.PlayerID == "" || req.AssetID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "playerId and assetId are required"})
	}

	playerID, err := primitive.ObjectIDFromHex(req.PlayerID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid playerId"})
	}
	assetID, err := primitive.ObjectIDFromHex(req.AssetID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid assetId"})
	}

	player, err := s.Players.FindByID(c.Context(), playerID)
	if err != nil {
		log.Printf("❌ [ASSIGN] player lookup failed for %s: %v", req.PlayerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}
	if player == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("player %s not found", req.PlayerID),
		})
	}

	asset, err := s.Assets.FindByID(c.Context(), assetID)
	if err != nil {
		log.Printf("❌ [ASSIGN] asset lookup failed for %s: %v", req.AssetID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}
	if asset == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("asset %s not found", req.AssetID),
		})
	}

	// Level gate is inclusive: a player at exactly levelRequire qualifies.
	if player.Level < asset.LevelRequire {
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("player %q is level %d but asset %q requires level %d",
				player.PlayerName, player.Level, asset.AssetName, asset.LevelRequire),
		})
	}

	edge, err := s.PlayerAssets.Assign(c.Context(), playerID, assetID)
	if err != nil {
		log.Printf("❌ [ASSIGN] failed to assign asset %s to player %s: %v", req.AssetID, req.PlayerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	return c.JSON(edge)
}

// GetPlayers lists all players sorted by name, projected down to the fields
// the admin table shows.
func (s *GameService) GetPlayers(c *fiber.Ctx) error {
	players, err := s.Players.FindAll(c.Context())
	if err != nil {
		log.Printf("❌ [PLAYER] failed to list players: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	minimal := make([]MinimalPlayer, 0, len(players))
	for _, p := range players {
		minimal = append(minimal, MinimalPlayer{
			ID:         p.ID.Hex(),
			PlayerName: p.PlayerName,
			Level:      p.Level,
			Age:        p.Age,
			CreatedAt:  p.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{"count": len(minimal), "players": minimal})
}

// GetAssets lists all assets, oldest first.
func (s *GameService) GetAssets(c *fiber.Ctx) error {
	assets, err := s.Assets.FindAll(c.Context())
	if err != nil {
		log.Printf("❌ [ASSET] failed to list assets: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database error"})
	}

	minimal := make([]MinimalAsset, 0, len(assets))
	for _, a := range assets {
		minimal = append(minimal, MinimalAsset{
			ID:           a.ID.Hex(),
			AssetName:    a.AssetName,
			Slug:         a.Slug,
			LevelRequire: a.LevelRequire,
			CreatedAt:    a.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{"count": len(minimal), "assets": minimal})
}
