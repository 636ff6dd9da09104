package services_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"game-asset-system/handlers"
	"game-asset-system/models"
	"game-asset-system/repository/memory"
	"game-asset-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GameServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	app     *fiber.App
}

func TestGameServiceSuite(t *testing.T) {
	suite.Run(t, new(GameServiceSuite))
}

func (s *GameServiceSuite) SetupTest() {
	s.storage = memory.New()
	gameService := services.NewGameService(s.storage.Players(), s.storage.Assets(), s.storage.PlayerAssets())
	reportService := services.NewReportService(s.storage.Players(), s.storage.Assets(), s.storage.PlayerAssets())
	s.app = fiber.New()
	handlers.SetupGameRoutes(s.app, gameService, reportService)
}

func (s *GameServiceSuite) postJSON(path string, body any) *http.Response {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.app.Test(req)
	s.Require().NoError(err)
	return resp
}

func (s *GameServiceSuite) get(path string) *http.Response {
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	s.Require().NoError(err)
	return resp
}

func (s *GameServiceSuite) decode(resp *http.Response, out any) {
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal(raw, out))
}

func (s *GameServiceSuite) errorMessage(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	s.decode(resp, &body)
	return body.Error
}

func (s *GameServiceSuite) registerPlayer(name string, level int) models.Player {
	resp := s.postJSON("/game/registerplayer", services.RegisterPlayerRequest{
		PlayerName: name,
		FullName:   name + " Fullname",
		Age:        25,
		Level:      level,
	})
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var player models.Player
	s.decode(resp, &player)
	return player
}

func (s *GameServiceSuite) createAsset(name string, levelRequire int) models.Asset {
	resp := s.postJSON("/game/createasset", services.CreateAssetRequest{
		AssetName:    name,
		LevelRequire: levelRequire,
	})
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var asset models.Asset
	s.decode(resp, &asset)
	return asset
}

// Player registration

func (s *GameServiceSuite) TestRegisterPlayerSucceeds() {
	resp := s.postJSON("/game/registerplayer", services.RegisterPlayerRequest{
		PlayerName: "Hero1",
		FullName:   "A B",
		Age:        30,
		Level:      12,
		Email:      "hero1@example.com",
	})
	s.Equal(fiber.StatusCreated, resp.StatusCode)

	var player models.Player
	s.decode(resp, &player)
	s.Equal("Hero1", player.PlayerName)
	s.Equal("A B", player.FullName)
	s.Equal(12, player.Level)
	s.False(player.ID.IsZero())
	s.False(player.CreatedAt.IsZero())
}

func (s *GameServiceSuite) TestRegisterPlayerRequiresNames() {
	resp := s.postJSON("/game/registerplayer", services.RegisterPlayerRequest{FullName: "A B"})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = s.postJSON("/game/registerplayer", services.RegisterPlayerRequest{PlayerName: "Hero1"})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = s.postJSON("/game/registerplayer", services.RegisterPlayerRequest{PlayerName: "  ", FullName: "A B"})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *GameServiceSuite) TestRegisterPlayerDuplicateNameConflicts() {
	s.registerPlayer("Hero1", 10)

	resp := s.postJSON("/game/registerplayer", services.RegisterPlayerRequest{
		PlayerName: "Hero1",
		FullName:   "Someone Else",
	})
	s.Equal(fiber.StatusConflict, resp.StatusCode)
	s.Contains(s.errorMessage(resp), "Hero1")

	count, err := s.storage.Players().Count(context.Background())
	s.Require().NoError(err)
	s.EqualValues(1, count)
}

// Asset creation

func (s *GameServiceSuite) TestCreateAssetSucceeds() {
	asset := s.createAsset("Iron Sword", 5)
	s.Equal("Iron Sword", asset.AssetName)
	s.Equal("iron-sword", asset.Slug)
	s.Equal(5, asset.LevelRequire)
	s.False(asset.ID.IsZero())
}

func (s *GameServiceSuite) TestCreateAssetRequiresName() {
	resp := s.postJSON("/game/createasset", services.CreateAssetRequest{LevelRequire: 10})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *GameServiceSuite) TestCreateAssetLevelRequireBounds() {
	resp := s.postJSON("/game/createasset", services.CreateAssetRequest{AssetName: "Relic", LevelRequire: 150})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = s.postJSON("/game/createasset", services.CreateAssetRequest{AssetName: "Relic", LevelRequire: -1})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	// Boundaries are inclusive.
	resp = s.postJSON("/game/createasset", services.CreateAssetRequest{AssetName: "Relic", LevelRequire: 0})
	s.Equal(fiber.StatusCreated, resp.StatusCode)
	resp = s.postJSON("/game/createasset", services.CreateAssetRequest{AssetName: "Relic", LevelRequire: 100})
	s.Equal(fiber.StatusCreated, resp.StatusCode)
}

func (s *GameServiceSuite) TestCreateAssetDuplicateNamesAllowed() {
	s.createAsset("Iron Sword", 5)
	s.createAsset("Iron Sword", 5)

	count, err := s.storage.Assets().Count(context.Background())
	s.Require().NoError(err)
	s.EqualValues(2, count)
}

// Asset assignment

func (s *GameServiceSuite) TestAssignAssetSucceeds() {
	player := s.registerPlayer("Hero1", 20)
	asset := s.createAsset("Iron Sword", 20) // boundary: level == levelRequire qualifies

	resp := s.postJSON("/game/assignasset", services.AssignAssetRequest{
		PlayerID: player.ID.Hex(),
		AssetID:  asset.ID.Hex(),
	})
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var edge models.PlayerAsset
	s.decode(resp, &edge)
	s.Equal(player.ID, edge.PlayerID)
	s.Equal(asset.ID, edge.AssetID)
	s.False(edge.AssignedAt.IsZero())
}

func (s *GameServiceSuite) TestAssignAssetRequiresIDs() {
	resp := s.postJSON("/game/assignasset", services.AssignAssetRequest{})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = s.postJSON("/game/assignasset", services.AssignAssetRequest{PlayerID: "not-a-hex-id", AssetID: primitive.NewObjectID().Hex()})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *GameServiceSuite) TestAssignAssetPlayerNotFound() {
	asset := s.createAsset("Iron Sword", 1)
	missingID := primitive.NewObjectID()

	resp := s.postJSON("/game/assignasset", services.AssignAssetRequest{
		PlayerID: missingID.Hex(),
		AssetID:  asset.ID.Hex(),
	})
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	msg := s.errorMessage(resp)
	s.Contains(msg, "player")
	s.Contains(msg, missingID.Hex())
}

func (s *GameServiceSuite) TestAssignAssetAssetNotFound() {
	player := s.registerPlayer("Hero1", 50)
	missingID := primitive.NewObjectID()

	resp := s.postJSON("/game/assignasset", services.AssignAssetRequest{
		PlayerID: player.ID.Hex(),
		AssetID:  missingID.Hex(),
	})
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	msg := s.errorMessage(resp)
	s.Contains(msg, "asset")
	s.Contains(msg, missingID.Hex())
}

func (s *GameServiceSuite) TestAssignAssetLevelGate() {
	player := s.registerPlayer("Hero1", 10)
	asset := s.createAsset("Dragon Blade", 20)

	resp := s.postJSON("/game/assignasset", services.AssignAssetRequest{
		PlayerID: player.ID.Hex(),
		AssetID:  asset.ID.Hex(),
	})
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	msg := s.errorMessage(resp)
	s.Contains(msg, "level 10")
	s.Contains(msg, "level 20")
}

func (s *GameServiceSuite) TestAssignAssetDuplicateEdgesAllowed() {
	player := s.registerPlayer("Hero1", 50)
	asset := s.createAsset("Iron Sword", 1)

	for i := 0; i < 2; i++ {
		resp := s.postJSON("/game/assignasset", services.AssignAssetRequest{
			PlayerID: player.ID.Hex(),
			AssetID:  asset.ID.Hex(),
		})
		s.Equal(fiber.StatusOK, resp.StatusCode)
	}

	count, err := s.storage.PlayerAssets().Count(context.Background())
	s.Require().NoError(err)
	s.EqualValues(2, count)
}

// Listings

func (s *GameServiceSuite) TestGetPlayersSortedByName() {
	s.registerPlayer("Zed", 5)
	s.registerPlayer("Amy", 8)

	resp := s.get("/game/players")
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var body struct {
		Count   int                      `json:"count"`
		Players []services.MinimalPlayer `json:"players"`
	}
	s.decode(resp, &body)
	s.Equal(2, body.Count)
	s.Require().Len(body.Players, 2)
	s.Equal("Amy", body.Players[0].PlayerName)
	s.Equal("Zed", body.Players[1].PlayerName)
}

func (s *GameServiceSuite) TestGetAssetsEmpty() {
	resp := s.get("/game/assets")
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var body struct {
		Count  int                     `json:"count"`
		Assets []services.MinimalAsset `json:"assets"`
	}
	s.decode(resp, &body)
	s.Equal(0, body.Count)
	s.Empty(body.Assets)
}

func (s *GameServiceSuite) TestGetAssetsProjectsFields() {
	s.createAsset("Iron Sword", 5)

	resp := s.get("/game/assets")
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var body struct {
		Count  int                     `json:"count"`
		Assets []services.MinimalAsset `json:"assets"`
	}
	s.decode(resp, &body)
	s.Equal(1, body.Count)
	s.Require().Len(body.Assets, 1)
	s.Equal("Iron Sword", body.Assets[0].AssetName)
	s.Equal("iron-sword", body.Assets[0].Slug)
	s.Equal(5, body.Assets[0].LevelRequire)
	s.NotEmpty(body.Assets[0].ID)
}

func (s *GameServiceSuite) TestHealth() {
	resp := s.get("/health")
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	s.decode(resp, &body)
	s.Equal("ok", body.Status)
	s.NotEmpty(body.Timestamp)
}
