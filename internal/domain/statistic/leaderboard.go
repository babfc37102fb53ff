package statistic

import (
	"context"
	"errors"

	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/creatorhq/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:xp"

type Entry struct {
	UserID  string
	TotalXP int64
}

// Leaderboard ranks chatters by their total xp. It is served from a redis
// sorted set which is loaded from database whenever it is missing.
type Leaderboard interface {
	GetLeaderboard(ctx context.Context, offset, limit int) ([]Entry, error)

	// GetPosition returns the 1-based position of the user, or zero if the
	// user is not ranked.
	GetPosition(ctx context.Context, userID string) (int, error)
	IncreaseXP(ctx context.Context, userID string, xp int64) error

	// Reset drops the cached leaderboard, the next read loads it again.
	Reset(ctx context.Context) error
}

type leaderboard struct {
	chatterStatsRepo repository.ChatterStatsRepository
	redisClient      xredis.Client
}

func New(
	chatterStatsRepo repository.ChatterStatsRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{chatterStatsRepo: chatterStatsRepo, redisClient: redisClient}
}

func (l *leaderboard) GetLeaderboard(ctx context.Context, offset, limit int) ([]Entry, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	members, err := l.redisClient.ZRevRangeWithScores(ctx, leaderboardKey, offset, limit)
	if err != nil {
		return nil, err
	}

	result := []Entry{}
	for _, m := range members {
		userID, ok := m.Member.(string)
		if !ok {
			xcontext.Logger(ctx).Warnf("Invalid leaderboard member: %v", m.Member)
			continue
		}

		result = append(result, Entry{UserID: userID, TotalXP: int64(m.Score)})
	}

	return result, nil
}

func (l *leaderboard) GetPosition(ctx context.Context, userID string) (int, error) {
	if err := l.ensureLoaded(ctx); err != nil {
		return 0, err
	}

	rank, err := l.redisClient.ZRevRank(ctx, leaderboardKey, userID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, err
	}

	return int(rank) + 1, nil
}

func (l *leaderboard) IncreaseXP(ctx context.Context, userID string, xp int64) error {
	ok, err := l.redisClient.Exist(ctx, leaderboardKey)
	if err != nil {
		return err
	}

	// A missing leaderboard is loaded with the new value later.
	if !ok {
		return nil
	}

	return l.redisClient.ZIncrBy(ctx, leaderboardKey, xp, userID)
}

func (l *leaderboard) Reset(ctx context.Context) error {
	return l.redisClient.Del(ctx, leaderboardKey)
}

func (l *leaderboard) ensureLoaded(ctx context.Context) error {
	ok, err := l.redisClient.Exist(ctx, leaderboardKey)
	if err != nil {
		return err
	}

	if ok {
		return nil
	}

	stats, err := l.chatterStatsRepo.GetLeaderboard(ctx, 0, 0)
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		return nil
	}

	members := []redis.Z{}
	for _, s := range stats {
		members = append(members, redis.Z{Member: s.UserID, Score: float64(s.TotalXP)})
	}

	xcontext.Logger(ctx).Infof("Load %d chatters to leaderboard", len(members))
	return l.redisClient.ZAdd(ctx, leaderboardKey, members...)
}
