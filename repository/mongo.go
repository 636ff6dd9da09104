package repository

import (
	"context"
	"time"

	"game-asset-system/db"
	"game-asset-system/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type playerRepository struct {
	col *mongo.Collection
}

func NewPlayerRepository(store *db.Store) PlayerRepository {
	return &playerRepository{col: store.Players()}
}

func (r *playerRepository) Create(ctx context.Context, player *models.Player) (*models.Player, error) {
	res, err := r.col.InsertOne(ctx, player)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicatePlayerName
		}
		return nil, err
	}
	player.ID = res.InsertedID.(primitive.ObjectID)
	return player, nil
}

func (r *playerRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Player, error) {
	var player models.Player
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&player)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) FindByName(ctx context.Context, name string) (*models.Player, error) {
	var player models.Player
	err := r.col.FindOne(ctx, bson.M{"playerName": name}).Decode(&player)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// FindAll returns every player sorted by name. Display convenience only.
func (r *playerRepository) FindAll(ctx context.Context) ([]models.Player, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "playerName", Value: 1}}))
	if err != nil {
		return nil, err
	}
	players := []models.Player{}
	if err := cur.All(ctx, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *playerRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

type assetRepository struct {
	col *mongo.Collection
}

func NewAssetRepository(store *db.Store) AssetRepository {
	return &assetRepository{col: store.Assets()}
}

func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	res, err := r.col.InsertOne(ctx, asset)
	if err != nil {
		return nil, err
	}
	asset.ID = res.InsertedID.(primitive.ObjectID)
	return asset, nil
}

func (r *assetRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	var asset models.Asset
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&asset)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// FindAll returns every asset, oldest first.
func (r *assetRepository) FindAll(ctx context.Context) ([]models.Asset, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	assets := []models.Asset{}
	if err := cur.All(ctx, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

type playerAssetRepository struct {
	col *mongo.Collection
}

func NewPlayerAssetRepository(store *db.Store) PlayerAssetRepository {
	return &playerAssetRepository{col: store.PlayerAssets()}
}

func (r *playerAssetRepository) Assign(ctx context.Context, playerID, assetID primitive.ObjectID) (*models.PlayerAsset, error) {
	edge := &models.PlayerAsset{
		PlayerID:   playerID,
		AssetID:    assetID,
		AssignedAt: time.Now().UTC(),
	}
	res, err := r.col.InsertOne(ctx, edge)
	if err != nil {
		return nil, err
	}
	edge.ID = res.InsertedID.(primitive.ObjectID)
	return edge, nil
}

func (r *playerAssetRepository) FindAll(ctx context.Context) ([]models.PlayerAsset, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	edges := []models.PlayerAsset{}
	if err := cur.All(ctx, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *playerAssetRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// CountByAsset groups edges per asset and joins the asset name back in.
// Edges pointing at a deleted asset fall out at the $unwind.
func (r *playerAssetRepository) CountByAsset(ctx context.Context, limit int64) ([]models.AssetAssignmentCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$assetId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: db.AssetsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "asset"},
		}}},
		bson.D{{Key: "$unwind", Value: "$asset"}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "count", Value: 1},
			{Key: "assetName", Value: "$asset.assetName"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	counts := []models.AssetAssignmentCount{}
	if err := cur.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
