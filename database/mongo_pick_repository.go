package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"primetime-picks/models"
)

// MongoPickRepository stores picks, unique per (user, game, league).
type MongoPickRepository struct {
	collection *mongo.Collection
}

func NewMongoPickRepository(db *MongoDB) *MongoPickRepository {
	collection := db.GetCollection("picks")
	db.ensureIndexes(collection, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "game_id", Value: 1},
				{Key: "league_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "game_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "league_id", Value: 1}, {Key: "season", Value: 1}, {Key: "week", Value: 1}}},
	})
	return &MongoPickRepository{collection: collection}
}

func pickKey(userID, gameID, leagueID int) bson.M {
	return bson.M{"user_id": userID, "game_id": gameID, "league_id": leagueID}
}

func (r *MongoPickRepository) Upsert(ctx context.Context, pick *models.Pick) error {
	ctx, cancel := boundedContext(ctx, ShortTimeout)
	defer cancel()

	now := time.Now().UTC()
	if pick.SubmittedAt.IsZero() {
		pick.SubmittedAt = now
	}
	pick.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"season":       pick.Season,
			"week":         pick.Week,
			"game_start":   pick.GameStart,
			"picked_team":  pick.PickedTeam,
			"confidence":   pick.Confidence,
			"submitted_at": pick.SubmittedAt,
			"updated_at":   pick.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"outcome": models.PickOutcomePending,
			"points":  0,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var stored models.Pick
	err := r.collection.FindOneAndUpdate(ctx, pickKey(pick.UserID, pick.GameID, pick.LeagueID), update, opts).Decode(&stored)
	if err != nil {
		return fmt.Errorf("failed to upsert pick for user %d game %d: %w", pick.UserID, pick.GameID, err)
	}
	pick.ID = stored.ID
	pick.Outcome = stored.Outcome
	pick.Points = stored.Points
	return nil
}

func (r *MongoPickRepository) FindByGame(ctx context.Context, gameID int) ([]models.Pick, error) {
	return r.find(ctx, bson.M{"game_id": gameID}, fmt.Sprintf("picks for game %d", gameID))
}

func (r *MongoPickRepository) FindByUserLeague(ctx context.Context, userID, leagueID int) ([]models.Pick, error) {
	filter := bson.M{"user_id": userID, "league_id": leagueID}
	return r.find(ctx, filter, fmt.Sprintf("picks for user %d league %d", userID, leagueID))
}

func (r *MongoPickRepository) FindByUserWeek(ctx context.Context, userID, leagueID, season, week int) ([]models.Pick, error) {
	filter := bson.M{"user_id": userID, "league_id": leagueID, "season": season, "week": week}
	return r.find(ctx, filter, fmt.Sprintf("picks for user %d week %d", userID, week))
}

func (r *MongoPickRepository) find(ctx context.Context, filter bson.M, what string) ([]models.Pick, error) {
	ctx, cancel := boundedContext(ctx, MediumTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "game_start", Value: 1}, {Key: "game_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", what, err)
	}
	defer cursor.Close(ctx)

	picks := []models.Pick{}
	if err := cursor.All(ctx, &picks); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", what, err)
	}
	return picks, nil
}

// UpdateOutcomes writes outcome and points in one unordered bulk write.
func (r *MongoPickRepository) UpdateOutcomes(ctx context.Context, picks []models.Pick) error {
	if len(picks) == 0 {
		return nil
	}
	ctx, cancel := boundedContext(ctx, LongTimeout)
	defer cancel()

	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(picks))
	for _, p := range picks {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(pickKey(p.UserID, p.GameID, p.LeagueID)).
			SetUpdate(bson.M{"$set": bson.M{
				"outcome":    p.Outcome,
				"points":     p.Points,
				"updated_at": now,
			}}))
	}

	if _, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to update %d pick outcomes: %w", len(picks), err)
	}
	return nil
}
