package domain

import (
	"context"
	"testing"
	"time"

	"github.com/creatorhq/backend/internal/domain/statistic"
	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/internal/model"
	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newMockStatisticDomain(redisClient *testutil.MockRedisClient) *statisticDomain {
	return NewStatisticDomain(
		repository.NewChatterStatsRepository(),
		repository.NewRankRepository(),
		repository.NewTransactionRepository(),
		redisClient,
		statistic.New(repository.NewChatterStatsRepository(), redisClient),
	)
}

func Test_statisticDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User3.ID)

	chatterStatsRepo := repository.NewChatterStatsRepository()
	require.NoError(t, chatterStatsRepo.Increase(ctx, testutil.User1.ID, 10, 0))
	require.NoError(t, chatterStatsRepo.Increase(ctx, testutil.User2.ID, 8, 0))

	d := newMockStatisticDomain(&testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return true, nil
		},
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			return []redis.Z{{Member: "user1", Score: 10}, {Member: "user2", Score: 8}}, nil
		},
		ZRevRankFunc: func(ctx context.Context, key, member string) (uint64, error) {
			if member == testutil.User3.ID {
				return 4, nil
			}

			return 0, redis.Nil
		},
	})

	resp, err := d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Offset: 0, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, &model.GetLeaderboardResponse{
		Entries: []model.LeaderboardEntry{
			{
				Position: 1,
				User:     model.ShortUser{ID: testutil.User1.ID, Name: testutil.User1.Name},
				TotalXP:  10,
			},
			{
				Position: 2,
				User:     model.ShortUser{ID: testutil.User2.ID, Name: testutil.User2.Name},
				TotalXP:  8,
			},
		},
		MyPosition: 5,
	}, resp)
}

func Test_statisticDomain_GetLeaderboard_NotRanked(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	d := newMockStatisticDomain(&testutil.MockRedisClient{})
	resp, err := d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Offset: 20})
	require.NoError(t, err)
	require.Empty(t, resp.Entries)
	require.Equal(t, 0, resp.MyPosition)
}

func Test_statisticDomain_GetMyStats(t *testing.T) {
	type args struct {
		xp      int64
		bananas int64
	}

	tests := []struct {
		name string
		args args
		want *model.Rank
	}{
		{
			name: "new chatter",
			args: args{},
			want: model.ConvertRank(testutil.RankRookie),
		},
		{
			name: "lower bound of a rank",
			args: args{xp: 100, bananas: 3},
			want: model.ConvertRank(testutil.RankPro),
		},
		{
			name: "upper bound of a rank",
			args: args{xp: 499},
			want: model.ConvertRank(testutil.RankPro),
		},
		{
			name: "open-ended rank",
			args: args{xp: 10000},
			want: model.ConvertRank(testutil.RankLegend),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			testutil.CreateFixtureDb(ctx)
			ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

			if tt.args.xp > 0 || tt.args.bananas > 0 {
				err := repository.NewChatterStatsRepository().Increase(ctx, testutil.User1.ID, tt.args.xp, tt.args.bananas)
				require.NoError(t, err)
			}

			d := newMockStatisticDomain(&testutil.MockRedisClient{})
			resp, err := d.GetMyStats(ctx, &model.GetMyStatsRequest{})
			require.NoError(t, err)
			require.Equal(t, model.ChatterStats{
				User:          model.ShortUser{ID: testutil.User1.ID, Name: testutil.User1.Name},
				TotalXP:       tt.args.xp,
				BananaBalance: tt.args.bananas,
				Rank:          tt.want,
			}, resp.Stats)
		})
	}
}

func Test_statisticDomain_GetRanks_Cache(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	cached := []entity.Rank{}
	setCalls := 0
	d := newMockStatisticDomain(&testutil.MockRedisClient{
		GetObjFunc: func(ctx context.Context, key string, v any) error {
			if setCalls == 0 {
				return redis.Nil
			}

			*v.(*[]entity.Rank) = cached
			return nil
		},
		SetObjFunc: func(ctx context.Context, key string, obj any, ttl time.Duration) error {
			require.Equal(t, ranksCacheKey, key)
			cached = obj.([]entity.Rank)
			setCalls++
			return nil
		},
	})

	resp, err := d.GetRanks(ctx, &model.GetRanksRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Ranks, 3)
	require.Equal(t, "Rookie", resp.Ranks[0].Name)
	require.Equal(t, "Legend", resp.Ranks[2].Name)
	require.Nil(t, resp.Ranks[2].MaxXP)

	// The second read is served from cache.
	resp, err = d.GetRanks(ctx, &model.GetRanksRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Ranks, 3)
	require.Equal(t, 1, setCalls)
}

func Test_statisticDomain_GetMyBananaTransactions(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	transactionRepo := repository.NewTransactionRepository()
	for i, amount := range []int64{5, -3, 7} {
		require.NoError(t, transactionRepo.CreateBanana(ctx, &entity.BananaTransaction{
			SnowFlakeBase: entity.SnowFlakeBase{ID: int64(i + 1)},
			UserID:        testutil.User1.ID,
			Amount:        amount,
			SourceType:    entity.SourceQuestCompletion,
		}))
	}

	require.NoError(t, transactionRepo.CreateBanana(ctx, &entity.BananaTransaction{
		SnowFlakeBase: entity.SnowFlakeBase{ID: 10},
		UserID:        testutil.User2.ID,
		Amount:        100,
	}))

	d := newMockStatisticDomain(&testutil.MockRedisClient{})
	resp, err := d.GetMyBananaTransactions(ctx, &model.GetMyBananaTransactionsRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 2)
	require.Equal(t, int64(7), resp.Transactions[0].Amount)
	require.Equal(t, int64(-3), resp.Transactions[1].Amount)

	resp, err = d.GetMyBananaTransactions(ctx, &model.GetMyBananaTransactionsRequest{Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	require.Equal(t, int64(5), resp.Transactions[0].Amount)
}
