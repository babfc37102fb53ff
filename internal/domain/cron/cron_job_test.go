package cron

import (
	"context"
	"testing"
	"time"

	"github.com/creatorhq/backend/internal/domain"
	"github.com/creatorhq/backend/internal/domain/statistic"
	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/testutil"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type mockJob struct {
	runNow bool
	called chan struct{}
}

func (j *mockJob) Do(ctx context.Context) {
	j.called <- struct{}{}
}

func (j *mockJob) RunNow() bool {
	return j.runNow
}

func (j *mockJob) Next() time.Time {
	return time.Now().Add(time.Hour)
}

func TestCronJobManager(t *testing.T) {
	ctx := testutil.MockContext()

	immediate := &mockJob{runNow: true, called: make(chan struct{}, 1)}
	scheduled := &mockJob{called: make(chan struct{}, 1)}

	manager := NewCronJobManager()
	manager.Register(immediate)
	manager.Register(scheduled)

	stopped := make(chan struct{})
	go func() {
		manager.Start(ctx)
		close(stopped)
	}()

	select {
	case <-immediate.called:
	case <-time.After(time.Second):
		require.FailNow(t, "the immediate job was not run")
	}

	// Wait for the immediate job to be scheduled again.
	time.Sleep(50 * time.Millisecond)
	manager.Cancel(ctx)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		require.FailNow(t, "the manager did not stop")
	}

	require.Len(t, scheduled.called, 0)
}

func TestCronJobManager_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(testutil.MockContext())

	manager := NewCronJobManager()
	manager.Register(&mockJob{called: make(chan struct{}, 1)})

	stopped := make(chan struct{})
	go func() {
		manager.Start(ctx)
		close(stopped)
	}()

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		require.FailNow(t, "the manager did not stop")
	}
}

func TestPopulateSlotsCronJob(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	questSlotDomain := domain.NewQuestSlotDomain(
		repository.NewQuestSlotRepository(),
		repository.NewQuestRepository(),
		repository.NewQuestAssignmentRepository(),
	)

	job := NewPopulateSlotsCronJob(repository.NewUserRepository(), questSlotDomain, time.UTC)
	job.Do(ctx)

	var slots []entity.QuestSlot
	require.NoError(t, xcontext.DB(ctx).Find(&slots).Error)

	perUser := map[string]int{}
	for _, s := range slots {
		perUser[s.UserID]++
	}

	// Only daily slots exist without a published weekly or monthly quest.
	require.Equal(t, map[string]int{
		testutil.User1.ID: 3,
		testutil.User2.ID: 3,
		testutil.User3.ID: 3,
	}, perUser)

	// Running again keeps the existing slots.
	job.Do(ctx)
	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.QuestSlot{}).Count(&count).Error)
	require.Equal(t, int64(9), count)

	require.True(t, job.RunNow())
	require.True(t, job.Next().After(time.Now()))
}

func TestLeaderboardRefreshCronJob(t *testing.T) {
	ctx := testutil.MockContext()

	deleted := []string{}
	leaderboard := statistic.New(repository.NewChatterStatsRepository(), &testutil.MockRedisClient{
		DelFunc: func(ctx context.Context, key ...string) error {
			deleted = append(deleted, key...)
			return nil
		},
	})

	job := NewLeaderboardRefreshCronJob(leaderboard, time.UTC)
	job.Do(ctx)
	require.Equal(t, []string{"leaderboard:xp"}, deleted)
	require.False(t, job.RunNow())
}
