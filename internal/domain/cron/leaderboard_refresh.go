package cron

import (
	"context"
	"time"

	"github.com/creatorhq/backend/internal/domain/statistic"
	"github.com/creatorhq/backend/pkg/dateutil"
	"github.com/creatorhq/backend/pkg/xcontext"
)

// LeaderboardRefreshCronJob drops the cached leaderboard daily, the next read
// rebuilds it from the database.
type LeaderboardRefreshCronJob struct {
	leaderboard statistic.Leaderboard
	location    *time.Location
}

func NewLeaderboardRefreshCronJob(
	leaderboard statistic.Leaderboard,
	location *time.Location,
) *LeaderboardRefreshCronJob {
	return &LeaderboardRefreshCronJob{leaderboard: leaderboard, location: location}
}

func (job *LeaderboardRefreshCronJob) Do(ctx context.Context) {
	if err := job.leaderboard.Reset(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset leaderboard: %v", err)
	}
}

func (job *LeaderboardRefreshCronJob) RunNow() bool {
	return false
}

func (job *LeaderboardRefreshCronJob) Next() time.Time {
	return dateutil.NextDay(time.Now().In(job.location))
}
