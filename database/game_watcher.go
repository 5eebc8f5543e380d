package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"primetime-picks/logging"
	"primetime-picks/models"
)

// FinalGameHandler is called for every write that leaves a game final.
type FinalGameHandler func(ctx context.Context, game models.Game) error

// GameWatcher follows the games collection through a change stream. Change
// streams need a replica set; on a standalone server Watch keeps retrying.
type GameWatcher struct {
	coll   *mongo.Collection
	retry  time.Duration
	logger *logging.Logger
}

func NewGameWatcher(db *MongoDB) *GameWatcher {
	return &GameWatcher{
		coll:   db.GetCollection(gamesCollection),
		retry:  5 * time.Second,
		logger: logging.WithPrefix("GameWatcher"),
	}
}

// finalGamesPipeline matches inserts, replaces and updates whose resulting
// document is final. Score corrections on a final game match again.
func finalGamesPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "operationType", Value: bson.M{"$in": bson.A{"insert", "replace", "update"}}},
			{Key: "fullDocument.status", Value: string(models.GameStatusFinal)},
		}}},
	}
}

type gameChange struct {
	Operation    string      `bson:"operationType"`
	FullDocument models.Game `bson:"fullDocument"`
}

// Watch blocks until ctx is done, reconnecting after stream errors and
// resuming after the last event it handled.
func (w *GameWatcher) Watch(ctx context.Context, onFinal FinalGameHandler) {
	var resume bson.Raw
	for {
		resume = w.watchOnce(ctx, resume, onFinal)
		if ctx.Err() != nil {
			w.logger.Info("Stopped")
			return
		}
		w.logger.Warnf("Stream closed, reconnecting in %s", w.retry)
		select {
		case <-ctx.Done():
			w.logger.Info("Stopped")
			return
		case <-time.After(w.retry):
		}
	}
}

func (w *GameWatcher) watchOnce(ctx context.Context, resume bson.Raw, onFinal FinalGameHandler) bson.Raw {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	if resume != nil {
		opts.SetResumeAfter(resume)
	}

	stream, err := w.coll.Watch(ctx, finalGamesPipeline(), opts)
	if err != nil {
		w.logger.Errorf("Failed to open change stream: %v", err)
		return resume
	}
	defer stream.Close(context.Background())
	w.logger.Info("Watching for final games")

	for stream.Next(ctx) {
		var change gameChange
		if err := stream.Decode(&change); err != nil {
			w.logger.Errorf("Failed to decode change event: %v", err)
			resume = stream.ResumeToken()
			continue
		}

		game := change.FullDocument
		w.logger.Infof("Game %d (%s) %s as final %s", game.ID, game.Matchup(), change.Operation, game.ScoreString())
		if err := onFinal(ctx, game); err != nil {
			w.logger.Errorf("Handling final game %d failed: %v", game.ID, err)
		}
		resume = stream.ResumeToken()
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		w.logger.Errorf("Change stream error: %v", err)
	}
	return resume
}
