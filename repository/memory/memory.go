package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"game-asset-system/models"
	"game-asset-system/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Storage is an in-memory stand-in for the mongo-backed repositories, used by
// tests so the handler and report logic can run without a live deployment.
// It mirrors the mongo behavior that matters: generated ObjectIDs, the unique
// playerName constraint, sort orders, and insertion-ordered edges.
type Storage struct {
	mu      sync.RWMutex
	players []models.Player
	assets  []models.Asset
	edges   []models.PlayerAsset
}

func New() *Storage {
	return &Storage{}
}

// Typed repository views over the shared data, matching db.Store's accessors.

func (s *Storage) Players() repository.PlayerRepository {
	return &playerRepo{s}
}

func (s *Storage) Assets() repository.AssetRepository {
	return &assetRepo{s}
}

func (s *Storage) PlayerAssets() repository.PlayerAssetRepository {
	return &playerAssetRepo{s}
}

type playerRepo struct{ s *Storage }

var _ repository.PlayerRepository = (*playerRepo)(nil)

func (r *playerRepo) Create(ctx context.Context, player *models.Player) (*models.Player, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.players {
		if p.PlayerName == player.PlayerName {
			return nil, repository.ErrDuplicatePlayerName
		}
	}
	if player.ID.IsZero() {
		player.ID = primitive.NewObjectID()
	}
	r.s.players = append(r.s.players, *player)
	return player, nil
}

func (r *playerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.players {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *playerRepo) FindByName(ctx context.Context, name string) (*models.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.players {
		if p.PlayerName == name {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *playerRepo) FindAll(ctx context.Context) ([]models.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	players := make([]models.Player, len(r.s.players))
	copy(players, r.s.players)
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].PlayerName < players[j].PlayerName
	})
	return players, nil
}

func (r *playerRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.players)), nil
}

type assetRepo struct{ s *Storage }

var _ repository.AssetRepository = (*assetRepo)(nil)

func (r *assetRepo) Create(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if asset.ID.IsZero() {
		asset.ID = primitive.NewObjectID()
	}
	r.s.assets = append(r.s.assets, *asset)
	return asset, nil
}

func (r *assetRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.assets {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (r *assetRepo) FindAll(ctx context.Context) ([]models.Asset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	assets := make([]models.Asset, len(r.s.assets))
	copy(assets, r.s.assets)
	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].CreatedAt.Before(assets[j].CreatedAt)
	})
	return assets, nil
}

func (r *assetRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.assets)), nil
}

type playerAssetRepo struct{ s *Storage }

var _ repository.PlayerAssetRepository = (*playerAssetRepo)(nil)

func (r *playerAssetRepo) Assign(ctx context.Context, playerID, assetID primitive.ObjectID) (*models.PlayerAsset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	edge := models.PlayerAsset{
		ID:         primitive.NewObjectID(),
		PlayerID:   playerID,
		AssetID:    assetID,
		AssignedAt: time.Now().UTC(),
	}
	r.s.edges = append(r.s.edges, edge)
	return &edge, nil
}

func (r *playerAssetRepo) FindAll(ctx context.Context) ([]models.PlayerAsset, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	edges := make([]models.PlayerAsset, len(r.s.edges))
	copy(edges, r.s.edges)
	return edges, nil
}

func (r *playerAssetRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.edges)), nil
}

func (r *playerAssetRepo) CountByAsset(ctx context.Context, limit int64) ([]models.AssetAssignmentCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	perAsset := make(map[primitive.ObjectID]int64)
	for _, e := range r.s.edges {
		perAsset[e.AssetID]++
	}

	names := make(map[primitive.ObjectID]string, len(r.s.assets))
	for _, a := range r.s.assets {
		names[a.ID] = a.AssetName
	}

	counts := []models.AssetAssignmentCount{}
	for id, n := range perAsset {
		name, ok := names[id]
		if !ok {
			// Asset gone; the mongo $lookup/$unwind drops these too.
			continue
		}
		counts = append(counts, models.AssetAssignmentCount{AssetID: id, AssetName: name, Count: n})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if int64(len(counts)) > limit {
		counts = counts[:limit]
	}
	return counts, nil
}
