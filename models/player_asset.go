// models/player_asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlayerAsset is an ownership edge: one document per assignment of an asset
// to a player. Many-to-many; the same (player, asset) pair may be assigned
// more than once and each assignment gets its own edge.
type PlayerAsset struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PlayerID   primitive.ObjectID `json:"playerId" bson:"playerId"`
	AssetID    primitive.ObjectID `json:"assetId" bson:"assetId"`
	AssignedAt time.Time          `json:"assignedAt" bson:"assignedAt"`
}
