package statistic

import (
	"context"
	"sort"
	"testing"

	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// newSortedSetRedis returns a redis mock keeping a single sorted set in
// memory.
func newSortedSetRedis() (*testutil.MockRedisClient, map[string]float64) {
	set := map[string]float64{}
	exists := false

	sorted := func() []redis.Z {
		result := []redis.Z{}
		for member, score := range set {
			result = append(result, redis.Z{Member: member, Score: score})
		}
		sort.Slice(result, func(i, j int) bool {
			if result[i].Score != result[j].Score {
				return result[i].Score > result[j].Score
			}
			return result[i].Member.(string) < result[j].Member.(string)
		})
		return result
	}

	return &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return exists, nil
		},
		DelFunc: func(ctx context.Context, key ...string) error {
			exists = false
			for k := range set {
				delete(set, k)
			}
			return nil
		},
		ZAddFunc: func(ctx context.Context, key string, members ...redis.Z) error {
			exists = true
			for _, m := range members {
				set[m.Member.(string)] = m.Score
			}
			return nil
		},
		ZIncrByFunc: func(ctx context.Context, key string, incr int64, member string) error {
			exists = true
			set[member] += float64(incr)
			return nil
		},
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			all := sorted()
			if offset >= len(all) {
				return nil, nil
			}
			end := offset + limit
			if end > len(all) {
				end = len(all)
			}
			return all[offset:end], nil
		},
		ZRevRankFunc: func(ctx context.Context, key string, member string) (uint64, error) {
			for i, z := range sorted() {
				if z.Member == member {
					return uint64(i), nil
				}
			}
			return 0, redis.Nil
		},
	}, set
}

func TestLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	statsRepo := repository.NewChatterStatsRepository()
	require.NoError(t, statsRepo.Increase(ctx, testutil.User1.ID, 30, 3))
	require.NoError(t, statsRepo.Increase(ctx, testutil.User2.ID, 50, 5))

	redisClient, set := newSortedSetRedis()
	l := New(statsRepo, redisClient)

	// Nothing is cached until the first read.
	require.NoError(t, l.IncreaseXP(ctx, testutil.User1.ID, 100))
	require.Empty(t, set)

	entries, err := l.GetLeaderboard(ctx, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{UserID: testutil.User2.ID, TotalXP: 50},
		{UserID: testutil.User1.ID, TotalXP: 30},
	}, entries)

	require.NoError(t, l.IncreaseXP(ctx, testutil.User1.ID, 40))

	position, err := l.GetPosition(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, position)

	position, err = l.GetPosition(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, 0, position)

	entries, err = l.GetLeaderboard(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, []Entry{{UserID: testutil.User2.ID, TotalXP: 50}}, entries)

	// After a reset the leaderboard is loaded again from database.
	require.NoError(t, l.Reset(ctx))
	entries, err = l.GetLeaderboard(ctx, 0, 1)
	require.NoError(t, err)
	require.Equal(t, []Entry{{UserID: testutil.User2.ID, TotalXP: 50}}, entries)
}
