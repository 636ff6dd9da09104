// models/report.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PlayerAssetReport is one flattened row of the ownership report: an edge
// joined with its current player and asset documents. Built fresh per query,
// never persisted — field values reflect the store at query time, not at
// assignment time.
type PlayerAssetReport struct {
	No         int    `json:"no"`
	PlayerName string `json:"playerName"`
	Level      int    `json:"level"`
	Age        int    `json:"age"`
	AssetName  string `json:"assetName"`
}

// AssetAssignmentCount is one row of the "most assigned assets" summary
// aggregate ($group over player_assets joined back to assets).
type AssetAssignmentCount struct {
	AssetID   primitive.ObjectID `json:"assetId" bson:"_id"`
	AssetName string             `json:"assetName" bson:"assetName"`
	Count     int64              `json:"count" bson:"count"`
}
