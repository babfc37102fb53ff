package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/creatorhq/backend/internal/domain"
	"github.com/creatorhq/backend/internal/domain/cron"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadDatabase()
	s.loadRedisClient()
	s.loadRepos()
	s.loadLeaderboard()
	s.questSlotDomain = domain.NewQuestSlotDomain(s.questSlotRepo, s.questRepo, s.questAssignmentRepo)

	cfg := xcontext.Configs(s.ctx)
	location := cfg.Gamification.Location()

	cronJobManager := cron.NewCronJobManager()
	if cfg.Cron.PopulateSlots {
		cronJobManager.Register(cron.NewPopulateSlotsCronJob(s.userRepo, s.questSlotDomain, location))
	}

	if cfg.Cron.RefreshLeaderboard {
		cronJobManager.Register(cron.NewLeaderboardRefreshCronJob(s.leaderboard, location))
	}

	ctx, cancel := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cronJobManager.Start(ctx)
	return nil
}
