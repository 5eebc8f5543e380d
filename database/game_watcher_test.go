package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"primetime-picks/models"
)

func TestFinalGamesPipeline(t *testing.T) {
	pipeline := finalGamesPipeline()
	require.Len(t, pipeline, 1)

	raw, err := bson.Marshal(pipeline[0])
	require.NoError(t, err)
	var stage struct {
		Match struct {
			Operation struct {
				In []string `bson:"$in"`
			} `bson:"operationType"`
			Status string `bson:"fullDocument.status"`
		} `bson:"$match"`
	}
	require.NoError(t, bson.Unmarshal(raw, &stage))

	assert.ElementsMatch(t, []string{"insert", "replace", "update"}, stage.Match.Operation.In)
	assert.Equal(t, "final", stage.Match.Status)
}

func TestGameChangeDecodesFullDocument(t *testing.T) {
	raw, err := bson.Marshal(bson.D{
		{Key: "_id", Value: bson.D{{Key: "_data", Value: "token"}}},
		{Key: "operationType", Value: "update"},
		{Key: "fullDocument", Value: bson.D{
			{Key: "id", Value: 401},
			{Key: "status", Value: "final"},
			{Key: "home_team", Value: "KC"},
			{Key: "away_team", Value: "BUF"},
			{Key: "home_score", Value: 24},
			{Key: "away_score", Value: 21},
		}},
	})
	require.NoError(t, err)

	var change gameChange
	require.NoError(t, bson.Unmarshal(raw, &change))
	assert.Equal(t, "update", change.Operation)
	assert.Equal(t, 401, change.FullDocument.ID)
	assert.Equal(t, models.GameStatusFinal, change.FullDocument.Status)
	assert.Equal(t, "KC", change.FullDocument.Winner())
}
