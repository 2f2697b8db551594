package leaderboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:xp"

// Cache keeps a redis sorted set mirroring per-user XP. It is written
// through on every scoring change and read by callers that can tolerate
// eventual consistency; the database stays authoritative.
type Cache struct {
	client *redis.Client
}

// NewCache creates a leaderboard cache on top of an existing redis client.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// SetScore updates one member's XP in the sorted set.
func (c *Cache) SetScore(ctx context.Context, userID int64, exp int) error {
	err := c.client.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(exp),
		Member: strconv.FormatInt(userID, 10),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to update leaderboard score: %w", err)
	}
	return nil
}

// Member is one cached leaderboard row.
type Member struct {
	ID  int64
	Exp int
}

// TopMembers returns the highest-scored members, best first.
func (c *Cache) TopMembers(ctx context.Context, n int) ([]Member, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := c.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard range: %w", err)
	}

	members := make([]Member, 0, len(rows))
	for _, row := range rows {
		raw, ok := row.Member.(string)
		if !ok {
			return nil, fmt.Errorf("corrupt leaderboard member %v", row.Member)
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt leaderboard member %q: %w", raw, err)
		}
		members = append(members, Member{ID: id, Exp: int(row.Score)})
	}
	return members, nil
}

// Rank returns the 1-based rank of userID, or nil when absent.
func (c *Cache) Rank(ctx context.Context, userID int64) (*int, error) {
	pos, err := c.client.ZRevRank(ctx, leaderboardKey, strconv.FormatInt(userID, 10)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard rank: %w", err)
	}
	rank := int(pos) + 1
	return &rank, nil
}
