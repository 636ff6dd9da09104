// db/mongo.go
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PlayersCollection      = "players"
	AssetsCollection       = "assets"
	PlayerAssetsCollection = "player_assets"
)

// Store wraps the mongo client and hands out the service's typed collections.
// It owns connection setup and indexes only — no business logic lives here.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials mongo and verifies the connection with a ping. Per-operation
// timeouts come from the caller's context plus the client-level timeout set
// here; nothing in this service retries a failed store call.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(uri).
		SetTimeout(30*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &Store{client: client, db: client.Database(dbName)}, nil
}

func (s *Store) Players() *mongo.Collection {
	return s.db.Collection(PlayersCollection)
}

func (s *Store) Assets() *mongo.Collection {
	return s.db.Collection(AssetsCollection)
}

func (s *Store) PlayerAssets() *mongo.Collection {
	return s.db.Collection(PlayerAssetsCollection)
}

// EnsureIndexes creates the unique index on players.playerName. The handler
// layer still pre-checks for a friendly conflict message, but the index is
// what actually closes the check-then-insert race between two concurrent
// registrations with the same name.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.Players().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "playerName", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create playerName index: %w", err)
	}

	// Non-unique lookup indexes for the report traversal.
	_, err = s.PlayerAssets().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "playerId", Value: 1}}},
		{Keys: bson.D{{Key: "assetId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create player_assets indexes: %w", err)
	}
	return nil
}

func (s *Store) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
