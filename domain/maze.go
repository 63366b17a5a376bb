package domain

import (
	"time"

	"github.com/google/uuid"
)

// MazeDocument is a generated maze as it is persisted.
type MazeDocument struct {
	ID        uuid.UUID `bson:"_id"`
	Seed      int64     `bson:"seed"`
	Cols      int       `bson:"cols"`
	Rows      int       `bson:"rows"`
	Layout    []byte    `bson:"layout"` // protobuf encoded walls
	CreatedAt time.Time `bson:"createdAt"`
}
