// models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinLevelRequire = 0
	MaxLevelRequire = 100
)

// Asset is an item/equipment definition. Asset names are NOT unique — several
// assets may share a display name (unlike players).
type Asset struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AssetName    string             `json:"assetName" bson:"assetName"`
	Slug         string             `json:"slug" bson:"slug"` // URL-safe form of assetName
	LevelRequire int                `json:"levelRequire" bson:"levelRequire"`
	Description  string             `json:"description,omitempty" bson:"description"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}
