package domain

import (
	"context"
	"errors"
	"time"

	"github.com/creatorhq/backend/internal/common"
	"github.com/creatorhq/backend/internal/domain/statistic"
	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/internal/model"
	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/errorx"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/creatorhq/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const (
	ranksCacheKey = "ranks"
	ranksCacheTTL = 10 * time.Minute
)

type StatisticDomain interface {
	GetMyStats(context.Context, *model.GetMyStatsRequest) (*model.GetMyStatsResponse, error)
	GetRanks(context.Context, *model.GetRanksRequest) (*model.GetRanksResponse, error)
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetMyBananaTransactions(
		context.Context, *model.GetMyBananaTransactionsRequest,
	) (*model.GetMyBananaTransactionsResponse, error)
}

type statisticDomain struct {
	chatterStatsRepo repository.ChatterStatsRepository
	rankRepo         repository.RankRepository
	transactionRepo  repository.TransactionRepository
	redisClient      xredis.Client
	leaderboard      statistic.Leaderboard
}

func NewStatisticDomain(
	chatterStatsRepo repository.ChatterStatsRepository,
	rankRepo repository.RankRepository,
	transactionRepo repository.TransactionRepository,
	redisClient xredis.Client,
	leaderboard statistic.Leaderboard,
) *statisticDomain {
	return &statisticDomain{
		chatterStatsRepo: chatterStatsRepo,
		rankRepo:         rankRepo,
		transactionRepo:  transactionRepo,
		redisClient:      redisClient,
		leaderboard:      leaderboard,
	}
}

func (d *statisticDomain) GetMyStats(
	ctx context.Context, req *model.GetMyStatsRequest,
) (*model.GetMyStatsResponse, error) {
	stats, err := d.chatterStatsRepo.GetOrCreate(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chatter stats: %v", err)
		return nil, errorx.Unknown
	}

	ranks, err := d.getRanks(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ranks: %v", err)
		return nil, errorx.Unknown
	}

	result := model.ChatterStats{
		User:          model.ConvertShortUser(&stats.User),
		TotalXP:       stats.TotalXP,
		BananaBalance: stats.BananaBalance,
	}

	for i := range ranks {
		if ranks[i].Contains(stats.TotalXP) {
			result.Rank = model.ConvertRank(&ranks[i])
			break
		}
	}

	return &model.GetMyStatsResponse{Stats: result}, nil
}

func (d *statisticDomain) GetRanks(
	ctx context.Context, req *model.GetRanksRequest,
) (*model.GetRanksResponse, error) {
	ranks, err := d.getRanks(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ranks: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Rank{}
	for i := range ranks {
		result = append(result, *model.ConvertRank(&ranks[i]))
	}

	return &model.GetRanksResponse{Ranks: result}, nil
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	offset := common.Offset(req.Offset)
	entries, err := d.leaderboard.GetLeaderboard(ctx, offset, common.Limit(ctx, req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, e := range entries {
		userIDs = append(userIDs, e.UserID)
	}

	stats, err := d.chatterStatsRepo.GetByUserIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chatter stats: %v", err)
		return nil, errorx.Unknown
	}

	userMap := map[string]entity.User{}
	for _, s := range stats {
		userMap[s.UserID] = s.User
	}

	result := []model.LeaderboardEntry{}
	for i, e := range entries {
		user, ok := userMap[e.UserID]
		if !ok {
			user = entity.User{Base: entity.Base{ID: e.UserID}}
		}

		result = append(result, model.LeaderboardEntry{
			Position: offset + i + 1,
			User:     model.ConvertShortUser(&user),
			TotalXP:  e.TotalXP,
		})
	}

	position, err := d.leaderboard.GetPosition(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard position: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetLeaderboardResponse{Entries: result, MyPosition: position}, nil
}

func (d *statisticDomain) GetMyBananaTransactions(
	ctx context.Context, req *model.GetMyBananaTransactionsRequest,
) (*model.GetMyBananaTransactionsResponse, error) {
	txs, err := d.transactionRepo.GetBananaByUserID(
		ctx, xcontext.RequestUserID(ctx), common.Offset(req.Offset), common.Limit(ctx, req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get banana transactions: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.BananaTransaction{}
	for i := range txs {
		result = append(result, model.ConvertBananaTransaction(&txs[i]))
	}

	return &model.GetMyBananaTransactionsResponse{Transactions: result}, nil
}

// getRanks reads the rank table through a short-lived redis cache. A broken
// cache falls back to the database.
func (d *statisticDomain) getRanks(ctx context.Context) ([]entity.Rank, error) {
	var ranks []entity.Rank
	err := d.redisClient.GetObj(ctx, ranksCacheKey, &ranks)
	if err == nil {
		return ranks, nil
	}

	if !errors.Is(err, redis.Nil) {
		xcontext.Logger(ctx).Warnf("Cannot get ranks from cache: %v", err)
	}

	ranks, err = d.rankRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := d.redisClient.SetObj(ctx, ranksCacheKey, ranks, ranksCacheTTL); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache ranks: %v", err)
	}

	return ranks, nil
}
