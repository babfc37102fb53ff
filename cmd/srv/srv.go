package main

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/creatorhq/backend/config"
	"github.com/creatorhq/backend/internal/domain"
	"github.com/creatorhq/backend/internal/domain/search"
	"github.com/creatorhq/backend/internal/domain/statistic"
	"github.com/creatorhq/backend/internal/model"
	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/migration"
	"github.com/creatorhq/backend/pkg/authenticator"
	"github.com/creatorhq/backend/pkg/kafka"
	"github.com/creatorhq/backend/pkg/logger"
	"github.com/creatorhq/backend/pkg/pubsub"
	"github.com/creatorhq/backend/pkg/router"
	"github.com/creatorhq/backend/pkg/storage"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/creatorhq/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	userRepo            repository.UserRepository
	questRepo           repository.QuestRepository
	questAssignmentRepo repository.QuestAssignmentRepository
	questSlotRepo       repository.QuestSlotRepository
	questCompletionRepo repository.QuestCompletionRepository
	chatterStatsRepo    repository.ChatterStatsRepository
	rankRepo            repository.RankRepository
	transactionRepo     repository.TransactionRepository
	shopItemRepo        repository.ShopItemRepository
	purchaseRepo        repository.PurchaseRepository

	questDomain           domain.QuestDomain
	questAssignmentDomain domain.QuestAssignmentDomain
	questSlotDomain       domain.QuestSlotDomain
	questCompletionDomain domain.QuestCompletionDomain
	statisticDomain       domain.StatisticDomain
	shopDomain            domain.ShopDomain

	redisClient xredis.Client
	leaderboard statistic.Leaderboard
	indexer     search.Indexer
	storage     storage.Storage
	publisher   pubsub.Publisher
	tokenEngine authenticator.TokenEngine[model.AccessToken]

	router *router.Router
}

// setup loads the configs and prepares a context carrying them with the
// logger and the snowflake node.
func (s *srv) setup(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewZapLogger(cfg.LogLevel, cfg.Env == "local"))
	s.ctx = xcontext.WithSnowFlake(s.ctx, node)
	return nil
}

func (s *srv) teardown(*cli.Context) error {
	if s.indexer != nil {
		s.indexer.Close()
	}

	if stopper, ok := s.publisher.(interface{ Stop(context.Context) error }); ok {
		if err := stopper.Stop(s.ctx); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot stop publisher: %v", err)
		}
	}

	return nil
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database

	logLevel := gormlogger.Error
	switch cfg.LogLevel {
	case "silent":
		logLevel = gormlogger.Silent
	case "warn":
		logLevel = gormlogger.Warn
	case "info":
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.ConnectionString()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
}

func (s *srv) migrateDB() {
	if err := migration.Migrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadLeaderboard() {
	s.leaderboard = statistic.New(s.chatterStatsRepo, s.redisClient)
}

func (s *srv) loadStorage() {
	var err error
	s.storage, err = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	var err error
	s.publisher, err = kafka.NewPublisher(
		xcontext.Configs(s.ctx).Kafka.GroupID,
		[]string{xcontext.Configs(s.ctx).Kafka.Addr},
	)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadSearchIndex() {
	s.indexer = search.NewBleveIndex(s.ctx)
}

func (s *srv) loadTokenEngine() {
	cfg := xcontext.Configs(s.ctx).Auth
	s.tokenEngine = authenticator.NewTokenEngine[model.AccessToken](cfg.TokenSecret, cfg.AccessToken)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.questRepo = repository.NewQuestRepository()
	s.questAssignmentRepo = repository.NewQuestAssignmentRepository()
	s.questSlotRepo = repository.NewQuestSlotRepository()
	s.questCompletionRepo = repository.NewQuestCompletionRepository()
	s.chatterStatsRepo = repository.NewChatterStatsRepository()
	s.rankRepo = repository.NewRankRepository()
	s.transactionRepo = repository.NewTransactionRepository()
	s.shopItemRepo = repository.NewShopItemRepository()
	s.purchaseRepo = repository.NewPurchaseRepository()
}

func (s *srv) loadDomains() {
	s.questDomain = domain.NewQuestDomain(s.questRepo, s.userRepo, s.indexer)
	s.questAssignmentDomain = domain.NewQuestAssignmentDomain(s.questAssignmentRepo, s.questRepo, s.userRepo)
	s.questSlotDomain = domain.NewQuestSlotDomain(s.questSlotRepo, s.questRepo, s.questAssignmentRepo)
	s.questCompletionDomain = domain.NewQuestCompletionDomain(
		s.questCompletionRepo,
		s.questSlotRepo,
		s.questAssignmentRepo,
		s.chatterStatsRepo,
		s.transactionRepo,
		s.userRepo,
		s.storage,
		s.publisher,
		s.leaderboard,
	)
	s.statisticDomain = domain.NewStatisticDomain(
		s.chatterStatsRepo, s.rankRepo, s.transactionRepo, s.redisClient, s.leaderboard)
	s.shopDomain = domain.NewShopDomain(
		s.shopItemRepo,
		s.purchaseRepo,
		s.chatterStatsRepo,
		s.transactionRepo,
		s.userRepo,
		s.storage,
		s.publisher,
	)
}
