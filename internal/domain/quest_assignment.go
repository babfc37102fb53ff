package domain

import (
	"context"
	"errors"
	"time"

	"github.com/creatorhq/backend/internal/common"
	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/internal/model"
	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/dateutil"
	"github.com/creatorhq/backend/pkg/enum"
	"github.com/creatorhq/backend/pkg/errorx"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/fatih/structs"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestAssignmentDomain interface {
	Create(context.Context, *model.CreateAssignmentRequest) (*model.CreateAssignmentResponse, error)
	GetActive(context.Context, *model.GetActiveAssignmentsRequest) (*model.GetActiveAssignmentsResponse, error)
}

type questAssignmentDomain struct {
	questAssignmentRepo repository.QuestAssignmentRepository
	questRepo           repository.QuestRepository
	globalRoleVerifier  *common.GlobalRoleVerifier

	now func() time.Time
}

func NewQuestAssignmentDomain(
	questAssignmentRepo repository.QuestAssignmentRepository,
	questRepo repository.QuestRepository,
	userRepo repository.UserRepository,
) *questAssignmentDomain {
	return &questAssignmentDomain{
		questAssignmentRepo: questAssignmentRepo,
		questRepo:           questRepo,
		globalRoleVerifier:  common.NewGlobalRoleVerifier(userRepo),
		now:                 time.Now,
	}
}

func (d *questAssignmentDomain) Create(
	ctx context.Context, req *model.CreateAssignmentRequest,
) (*model.CreateAssignmentResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	loc := xcontext.Configs(ctx).Gamification.Location()
	start, err := dateutil.ParseDate(req.StartDate, loc)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid start date")
	}

	end, err := dateutil.ParseDate(req.EndDate, loc)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid end date")
	}

	if end.Before(start) {
		return nil, errorx.New(errorx.BadRequest, "The end date must not be before the start date")
	}

	quest, err := d.questRepo.GetByID(ctx, req.QuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if quest.Cadence == entity.CadenceDaily && !start.Equal(end) {
		return nil, errorx.New(errorx.BadRequest, "A daily assignment must start and end on the same day")
	}

	assignment := &entity.QuestAssignment{
		Base:      entity.Base{ID: uuid.NewString()},
		QuestID:   quest.ID,
		StartDate: dateutil.Date(start),
		EndDate:   dateutil.Date(end),
		Data:      entity.Map(structs.Map(req)),
	}

	if err := d.questAssignmentRepo.Create(ctx, assignment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create assignment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateAssignmentResponse{ID: assignment.ID}, nil
}

func (d *questAssignmentDomain) GetActive(
	ctx context.Context, req *model.GetActiveAssignmentsRequest,
) (*model.GetActiveAssignmentsResponse, error) {
	loc := xcontext.Configs(ctx).Gamification.Location()
	date := dateutil.Date(d.now().In(loc))
	if req.Date != "" {
		t, err := dateutil.ParseDate(req.Date, loc)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid date")
		}
		date = dateutil.Date(t)
	}

	var cadence entity.QuestCadence
	if req.Cadence != "" {
		var err error
		cadence, err = enum.ToEnum[entity.QuestCadence](req.Cadence)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid cadence: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid cadence")
		}
	}

	assignments, err := d.questAssignmentRepo.GetPublished(ctx, cadence, date)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get published assignments: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.QuestAssignment{}
	for i := range assignments {
		result = append(result, *model.ConvertQuestAssignment(ctx, &assignments[i]))
	}

	return &model.GetActiveAssignmentsResponse{Assignments: result}, nil
}
