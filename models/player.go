// models/player.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Player is a registered game account managed by this service.
// Level is unbounded here; the admin UI caps it at 1–100.
// playerName is unique across the collection — enforced by a pre-check in the
// handler plus a unique index (see db.EnsureIndexes), so two racing
// registrations cannot both land.
type Player struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PlayerName string             `json:"playerName" bson:"playerName"`
	FullName   string             `json:"fullName" bson:"fullName"`
	Age        int                `json:"age" bson:"age"`
	Level      int                `json:"level" bson:"level"`
	Email      string             `json:"email,omitempty" bson:"email"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}
