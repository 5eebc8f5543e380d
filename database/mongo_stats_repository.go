package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"primetime-picks/models"
)

// MongoStatsRepository keeps one derived stats document per (user, league).
type MongoStatsRepository struct {
	collection *mongo.Collection
}

func NewMongoStatsRepository(db *MongoDB) *MongoStatsRepository {
	collection := db.GetCollection("user_stats")
	db.ensureIndexes(collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "league_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "league_id", Value: 1}, {Key: "total_points", Value: -1}}},
	})
	return &MongoStatsRepository{collection: collection}
}

func statsKey(key models.StatsKey) bson.M {
	return bson.M{"user_id": key.UserID, "league_id": key.LeagueID}
}

// Replace overwrites the whole row.
func (r *MongoStatsRepository) Replace(ctx context.Context, stats *models.UserStats) error {
	ctx, cancel := boundedContext(ctx, ShortTimeout)
	defer cancel()

	_, err := r.collection.ReplaceOne(ctx, statsKey(stats.Key()), stats, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to replace stats for %s: %w", stats.Key(), err)
	}
	return nil
}

func (r *MongoStatsRepository) Get(ctx context.Context, key models.StatsKey) (*models.UserStats, error) {
	ctx, cancel := boundedContext(ctx, ShortTimeout)
	defer cancel()

	var stats models.UserStats
	err := r.collection.FindOne(ctx, statsKey(key)).Decode(&stats)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats for %s: %w", key, err)
	}
	return &stats, nil
}

func (r *MongoStatsRepository) ListByLeague(ctx context.Context, leagueID int) ([]models.UserStats, error) {
	ctx, cancel := boundedContext(ctx, MediumTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"league_id": leagueID})
	if err != nil {
		return nil, fmt.Errorf("failed to list stats for league %d: %w", leagueID, err)
	}
	defer cursor.Close(ctx)

	rows := []models.UserStats{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode stats for league %d: %w", leagueID, err)
	}
	return rows, nil
}
