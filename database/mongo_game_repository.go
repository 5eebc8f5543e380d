package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"primetime-picks/models"
)

const gamesCollection = "games"

// MongoGameRepository stores games keyed by feed id.
type MongoGameRepository struct {
	collection *mongo.Collection
}

func NewMongoGameRepository(db *MongoDB) *MongoGameRepository {
	collection := db.GetCollection(gamesCollection)
	db.ensureIndexes(collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "season", Value: 1}, {Key: "week", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "updated_at", Value: 1}}},
	})
	return &MongoGameRepository{collection: collection}
}

func (r *MongoGameRepository) FindByID(ctx context.Context, id int) (*models.Game, error) {
	ctx, cancel := boundedContext(ctx, ShortTimeout)
	defer cancel()

	var game models.Game
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&game)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find game %d: %w", id, err)
	}
	return &game, nil
}

func (r *MongoGameRepository) FindByIDs(ctx context.Context, ids []int) ([]models.Game, error) {
	if len(ids) == 0 {
		return []models.Game{}, nil
	}
	return r.find(ctx, bson.M{"id": bson.M{"$in": ids}}, "games by id")
}

// FindByWeek returns the week's games in kickoff order.
func (r *MongoGameRepository) FindByWeek(ctx context.Context, season, week int) ([]models.Game, error) {
	return r.find(ctx, bson.M{"season": season, "week": week}, fmt.Sprintf("games for %d week %d", season, week))
}

func (r *MongoGameRepository) FindFinalUpdatedSince(ctx context.Context, since time.Time) ([]models.Game, error) {
	filter := bson.M{
		"status":     models.GameStatusFinal,
		"updated_at": bson.M{"$gt": since},
	}
	return r.find(ctx, filter, "final games")
}

func (r *MongoGameRepository) find(ctx context.Context, filter bson.M, what string) ([]models.Game, error) {
	ctx, cancel := boundedContext(ctx, MediumTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", what, err)
	}
	defer cursor.Close(ctx)

	games := []models.Game{}
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", what, err)
	}
	return games, nil
}

// Upsert replaces the stored game, stamping UpdatedAt when unset.
func (r *MongoGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	ctx, cancel := boundedContext(ctx, ShortTimeout)
	defer cancel()

	if game.UpdatedAt.IsZero() {
		game.UpdatedAt = time.Now().UTC()
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"id": game.ID}, game, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert game %d: %w", game.ID, err)
	}
	return nil
}
