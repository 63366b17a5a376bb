package repo

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/maze-runner/service/i"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const bestRecordID = "best"

var _ i.RecordStore = &RecordRepo{}

// RecordRepo keeps the best score in a single MongoDB document.
type RecordRepo struct {
	collection *mongo.Collection
}

type recordDocument struct {
	ID        string    `bson:"_id"`
	Score     int       `bson:"score"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewRecordRepo creates a new RecordRepo with the given MongoDB client, database name, and collection name.
func NewRecordRepo(client *mongo.Client, dbName, collectionName string) *RecordRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RecordRepo{
		collection: collection,
	}
}

// Record returns the best score, creating a zero record when none exists.
func (r *RecordRepo) Record(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var doc recordDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": bestRecordID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, r.SetRecord(ctx, 0)
	}
	if err != nil {
		return 0, errors.New("unexpected error: " + err.Error())
	}
	return doc.Score, nil
}

// SetRecord stores score unless a higher one is already recorded.
func (r *RecordRepo) SetRecord(ctx context.Context, score int) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	filter := bson.M{"_id": bestRecordID}
	update := bson.M{
		"$max": bson.M{"score": score},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}
