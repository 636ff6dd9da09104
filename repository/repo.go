package repository

import (
	"context"
	"errors"

	"game-asset-system/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDuplicatePlayerName is returned by PlayerRepository.Create when the
// insert hits the unique playerName index (i.e. a concurrent registration
// won the race after our pre-check passed).
var ErrDuplicatePlayerName = errors.New("player name already taken")

// FindByID/FindByName return (nil, nil) when the document is absent —
// absence is not an error; only store failures are.
type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) (*models.Player, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Player, error)
	FindByName(ctx context.Context, name string) (*models.Player, error)
	FindAll(ctx context.Context) ([]models.Player, error)
	Count(ctx context.Context) (int64, error)
}

type AssetRepository interface {
	Create(ctx context.Context, asset *models.Asset) (*models.Asset, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error)
	FindAll(ctx context.Context) ([]models.Asset, error)
	Count(ctx context.Context) (int64, error)
}

// PlayerAssetRepository manages ownership edges. Assign performs no
// referential or duplicate checks — those belong to the handler layer.
type PlayerAssetRepository interface {
	Assign(ctx context.Context, playerID, assetID primitive.ObjectID) (*models.PlayerAsset, error)
	FindAll(ctx context.Context) ([]models.PlayerAsset, error)
	Count(ctx context.Context) (int64, error)
	// CountByAsset returns the most-assigned assets, highest count first,
	// capped at limit. Edges whose asset no longer resolves are dropped.
	CountByAsset(ctx context.Context, limit int64) ([]models.AssetAssignmentCount, error)
}
