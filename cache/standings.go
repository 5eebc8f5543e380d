// Package cache keeps ranked standings in Redis so leaderboard reads do not
// re-rank a league on every request.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"primetime-picks/models"
)

// DefaultStandingsTTL bounds how long an unchanged board is kept.
const DefaultStandingsTTL = 10 * time.Minute

// RedisStandings stores one JSON blob per league.
type RedisStandings struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisStandings(client *redis.Client, ttl time.Duration) *RedisStandings {
	if ttl <= 0 {
		ttl = DefaultStandingsTTL
	}
	return &RedisStandings{client: client, ttl: ttl, prefix: "picks:standings"}
}

// Connect parses a redis:// URL and checks the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func (c *RedisStandings) key(leagueID int) string {
	return fmt.Sprintf("%s:%d", c.prefix, leagueID)
}

func (c *RedisStandings) genKey(leagueID int) string {
	return c.key(leagueID) + ":gen"
}

// setIfCurrent writes the board only while the generation key still holds
// the value the reader saw. A missing generation reads as 0.
var setIfCurrent = redis.NewScript(`
if (redis.call('GET', KEYS[1]) or '0') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

func (c *RedisStandings) Get(ctx context.Context, leagueID int) ([]models.LeaderboardEntry, int64, bool, error) {
	vals, err := c.client.MGet(ctx, c.genKey(leagueID), c.key(leagueID)).Result()
	if err != nil {
		return nil, 0, false, err
	}

	var gen int64
	if raw, ok := vals[0].(string); ok {
		if gen, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, 0, false, fmt.Errorf("parsing standings generation: %w", err)
		}
	}
	raw, ok := vals[1].(string)
	if !ok {
		return nil, gen, false, nil
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, gen, false, fmt.Errorf("unmarshaling standings: %w", err)
	}
	return entries, gen, true, nil
}

func (c *RedisStandings) Set(ctx context.Context, leagueID int, gen int64, entries []models.LeaderboardEntry) (bool, error) {
	data, err := json.Marshal(entries)
	if err != nil {
		return false, fmt.Errorf("marshaling standings: %w", err)
	}
	keys := []string{c.genKey(leagueID), c.key(leagueID)}
	stored, err := setIfCurrent.Run(ctx, c.client, keys, strconv.FormatInt(gen, 10), data, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// Invalidate drops the board and advances the generation in one transaction.
// The generation key has no TTL; expiring it would let a pre-invalidation
// board match again.
func (c *RedisStandings) Invalidate(ctx context.Context, leagueID int) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey(leagueID))
		pipe.Del(ctx, c.key(leagueID))
		return nil
	})
	return err
}
