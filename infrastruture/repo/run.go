package repo

import (
	"context"
	"errors"

	dmn "github.com/beka-birhanu/vinom-depths/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrEmptyRunID = errors.New("run record without id")

// RunRepo handles the persistence of finished run records.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// Save inserts the record of a finished run, replacing any record with the same id.
func (r *RunRepo) Save(ctx context.Context, run *dmn.RunRecord) error {
	if run.ID == "" {
		return ErrEmptyRunID
	}

	filter := bson.M{"_id": run.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, run, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// ByPlayer returns up to limit runs of player, most recently finished first.
func (r *RunRepo) ByPlayer(ctx context.Context, player string, limit int64) ([]dmn.RunRecord, error) {
	filter := bson.M{"player": player}
	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	runs := make([]dmn.RunRecord, 0)
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return runs, nil
}

// EnsureIndexes creates the player/finishedAt index used by ByPlayer.
func (r *RunRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "player", Value: 1}, {Key: "finishedAt", Value: -1}},
	})
	return err
}
