package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/creatorhq/backend/internal/common"
	"github.com/creatorhq/backend/internal/middleware"
	"github.com/creatorhq/backend/pkg/router"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

const (
	rateLimitEvictInterval = time.Minute
	rateLimitMaxIdle       = 10 * time.Minute
)

func (s *srv) startApi(*cli.Context) error {
	s.loadDatabase()
	s.migrateDB()
	s.loadRedisClient()
	s.loadStorage()
	s.loadPublisher()
	s.loadSearchIndex()
	s.loadTokenEngine()
	s.loadRepos()
	s.loadLeaderboard()
	s.loadDomains()

	common.RegisterMetrics()

	if err := s.questDomain.IndexAll(s.ctx); err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot build the quest index: %v", err)
	}

	ctx, cancel := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s.loadAPIRouter(ctx)

	cfg := xcontext.Configs(s.ctx).ApiServer
	httpSrv := &http.Server{
		Addr:    cfg.Address(),
		Handler: s.router.Handler(),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown the server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.Port)
	var err error
	if cfg.Cert != "" && cfg.Key != "" {
		err = httpSrv.ListenAndServeTLS(cfg.Cert, cfg.Key)
	} else {
		err = httpSrv.ListenAndServe()
	}

	if err != nil && err != http.ErrServerClosed {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadAPIRouter(ctx context.Context) {
	cfg := xcontext.Configs(s.ctx).ApiServer

	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger(), middleware.Prometheus())
	s.router.Before(middleware.WithStartTime())
	s.router.Handle(http.MethodGet, "/metrics", promhttp.Handler())

	// Chatter API
	{
		chatterRouter := s.router.Branch()
		chatterRouter.Before(middleware.NewAuthVerifier(s.tokenEngine).Middleware())
		if cfg.RateLimit > 0 {
			limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitBurst)
			go limiter.RunEviction(ctx, rateLimitEvictInterval, rateLimitMaxIdle)
			chatterRouter.Before(limiter.Middleware())
		}

		// Quest slot API
		router.GET(chatterRouter, "/getDailyQuestSlots", s.questSlotDomain.GetDailySlots)
		router.POST(chatterRouter, "/rerollDailyQuestSlot", s.questSlotDomain.RerollDailySlot)
		router.GET(chatterRouter, "/getWeeklyQuestSlot", s.questSlotDomain.GetWeeklySlot)
		router.POST(chatterRouter, "/rerollWeeklyQuestSlot", s.questSlotDomain.RerollWeeklySlot)
		router.GET(chatterRouter, "/getMonthlyQuestSlot", s.questSlotDomain.GetMonthlySlot)
		router.POST(chatterRouter, "/rerollMonthlyQuestSlot", s.questSlotDomain.RerollMonthlySlot)
		router.GET(chatterRouter, "/getActiveAssignments", s.questAssignmentDomain.GetActive)

		// Quest completion API
		router.POST(chatterRouter, "/submitQuestCompletion", s.questCompletionDomain.Submit)
		router.GET(chatterRouter, "/getMyCompletions", s.questCompletionDomain.GetMyCompletions)

		// Statistic API
		router.GET(chatterRouter, "/getMyStats", s.statisticDomain.GetMyStats)
		router.GET(chatterRouter, "/getRanks", s.statisticDomain.GetRanks)
		router.GET(chatterRouter, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
		router.GET(chatterRouter, "/getMyBananaTransactions", s.statisticDomain.GetMyBananaTransactions)

		// Shop API
		router.GET(chatterRouter, "/getShopItems", s.shopDomain.GetShopItems)
		router.POST(chatterRouter, "/purchase", s.shopDomain.Purchase)
		router.GET(chatterRouter, "/getMyPurchases", s.shopDomain.GetMyPurchases)

		// Admin API
		adminRouter := chatterRouter.Branch()
		adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo).Middleware())

		router.POST(adminRouter, "/createQuest", s.questDomain.Create)
		router.POST(adminRouter, "/updateQuest", s.questDomain.Update)
		router.GET(adminRouter, "/getQuest", s.questDomain.Get)
		router.GET(adminRouter, "/getListQuest", s.questDomain.GetList)
		router.GET(adminRouter, "/searchQuest", s.questDomain.Search)
		router.POST(adminRouter, "/createAssignment", s.questAssignmentDomain.Create)
		router.GET(adminRouter, "/getPendingCompletions", s.questCompletionDomain.GetPending)
		router.POST(adminRouter, "/reviewCompletion", s.questCompletionDomain.Review)
		router.POST(adminRouter, "/createShopItem", s.shopDomain.CreateShopItem)
		router.POST(adminRouter, "/updateShopItem", s.shopDomain.UpdateShopItem)
		router.POST(adminRouter, "/redeemPurchase", s.shopDomain.RedeemPurchase)
	}
}
