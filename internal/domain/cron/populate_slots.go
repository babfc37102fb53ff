package cron

import (
	"context"
	"time"

	"github.com/creatorhq/backend/internal/domain"
	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/dateutil"
	"github.com/creatorhq/backend/pkg/xcontext"
)

// PopulateSlotsCronJob creates the quest slots of every chatter at the start
// of each day.
type PopulateSlotsCronJob struct {
	userRepo        repository.UserRepository
	questSlotDomain domain.QuestSlotDomain
	location        *time.Location
}

func NewPopulateSlotsCronJob(
	userRepo repository.UserRepository,
	questSlotDomain domain.QuestSlotDomain,
	location *time.Location,
) *PopulateSlotsCronJob {
	return &PopulateSlotsCronJob{
		userRepo:        userRepo,
		questSlotDomain: questSlotDomain,
		location:        location,
	}
}

func (job *PopulateSlotsCronJob) Do(ctx context.Context) {
	chatters, err := job.userRepo.GetByRole(ctx, entity.RoleChatter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chatters: %v", err)
		return
	}

	failed := 0
	for _, u := range chatters {
		if err := job.questSlotDomain.PopulateSlots(ctx, u.ID); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot populate slots of %s: %v", u.ID, err)
			failed++
		}
	}

	xcontext.Logger(ctx).Infof("Populated slots of %d chatters, %d failed", len(chatters)-failed, failed)
}

func (job *PopulateSlotsCronJob) RunNow() bool {
	return true
}

func (job *PopulateSlotsCronJob) Next() time.Time {
	return dateutil.NextDay(time.Now().In(job.location))
}
