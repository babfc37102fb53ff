package domain

import (
	"context"
	"errors"

	"github.com/creatorhq/backend/internal/common"
	"github.com/creatorhq/backend/internal/domain/search"
	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/internal/model"
	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/enum"
	"github.com/creatorhq/backend/pkg/errorx"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/fatih/structs"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestDomain interface {
	Create(context.Context, *model.CreateQuestRequest) (*model.CreateQuestResponse, error)
	Update(context.Context, *model.UpdateQuestRequest) (*model.UpdateQuestResponse, error)
	Get(context.Context, *model.GetQuestRequest) (*model.GetQuestResponse, error)
	GetList(context.Context, *model.GetListQuestRequest) (*model.GetListQuestResponse, error)
	Search(context.Context, *model.SearchQuestRequest) (*model.SearchQuestResponse, error)

	// IndexAll rebuilds the search index from the database.
	IndexAll(context.Context) error
}

type questDomain struct {
	questRepo          repository.QuestRepository
	globalRoleVerifier *common.GlobalRoleVerifier
	indexer            search.Indexer
}

func NewQuestDomain(
	questRepo repository.QuestRepository,
	userRepo repository.UserRepository,
	indexer search.Indexer,
) *questDomain {
	return &questDomain{
		questRepo:          questRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
		indexer:            indexer,
	}
}

func (d *questDomain) Create(
	ctx context.Context, req *model.CreateQuestRequest,
) (*model.CreateQuestResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a title")
	}

	cadence, err := enum.ToEnum[entity.QuestCadence](req.Cadence)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid cadence: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid cadence")
	}

	if req.XPReward < 0 || req.BananaReward < 0 {
		return nil, errorx.New(errorx.BadRequest, "Rewards must not be negative")
	}

	quest := &entity.Quest{
		Base:           entity.Base{ID: uuid.NewString()},
		Title:          req.Title,
		GameName:       req.GameName,
		Description:    req.Description,
		Cadence:        cadence,
		XPReward:       req.XPReward,
		BananaReward:   req.BananaReward,
		ProgressTarget: req.ProgressTarget,
		IsActive:       true,
		CreatedBy:      xcontext.RequestUserID(ctx),
	}

	if quest.ProgressTarget <= 0 {
		quest.ProgressTarget = 1
	}

	if req.IsActive != nil {
		quest.IsActive = *req.IsActive
	}

	if err := d.questRepo.Create(ctx, quest); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create quest: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.indexer.IndexQuest(quest); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index quest %s: %v", quest.ID, err)
	}

	return &model.CreateQuestResponse{ID: quest.ID}, nil
}

func (d *questDomain) Update(
	ctx context.Context, req *model.UpdateQuestRequest,
) (*model.UpdateQuestResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	data := structs.Map(req)
	if req.XPReward != nil {
		if *req.XPReward < 0 {
			return nil, errorx.New(errorx.BadRequest, "Rewards must not be negative")
		}
		data["xp_reward"] = *req.XPReward
	}

	if req.BananaReward != nil {
		if *req.BananaReward < 0 {
			return nil, errorx.New(errorx.BadRequest, "Rewards must not be negative")
		}
		data["banana_reward"] = *req.BananaReward
	}

	if req.IsActive != nil {
		data["is_active"] = *req.IsActive
	}

	if len(data) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Nothing to update")
	}

	if err := d.questRepo.UpdateByID(ctx, req.ID, data); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot update quest: %v", err)
		return nil, errorx.Unknown
	}

	quest, err := d.questRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.indexer.IndexQuest(quest); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index quest %s: %v", quest.ID, err)
	}

	return &model.UpdateQuestResponse{}, nil
}

func (d *questDomain) Get(ctx context.Context, req *model.GetQuestRequest) (*model.GetQuestResponse, error) {
	quest, err := d.questRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetQuestResponse{Quest: model.ConvertQuest(quest)}, nil
}

func (d *questDomain) GetList(
	ctx context.Context, req *model.GetListQuestRequest,
) (*model.GetListQuestResponse, error) {
	filter := repository.SearchQuestFilter{
		ActiveOnly: req.ActiveOnly,
		Offset:     common.Offset(req.Offset),
		Limit:      common.Limit(ctx, req.Limit),
	}

	if req.Cadence != "" {
		cadence, err := enum.ToEnum[entity.QuestCadence](req.Cadence)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid cadence: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid cadence")
		}
		filter.Cadence = cadence
	}

	quests, err := d.questRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of quests: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetListQuestResponse{Quests: convertQuests(quests)}, nil
}

func (d *questDomain) Search(
	ctx context.Context, req *model.SearchQuestRequest,
) (*model.SearchQuestResponse, error) {
	if req.Q == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a query")
	}

	ids, err := d.indexer.SearchQuest(req.Q, 0, common.Limit(ctx, req.Limit))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search quests: %v", err)
		return nil, errorx.Unknown
	}

	if len(ids) == 0 {
		return &model.SearchQuestResponse{Quests: []model.Quest{}}, nil
	}

	quests, err := d.questRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quests: %v", err)
		return nil, errorx.Unknown
	}

	// Keep the order of relevance.
	questMap := map[string]entity.Quest{}
	for _, q := range quests {
		questMap[q.ID] = q
	}

	ordered := []entity.Quest{}
	for _, id := range ids {
		if q, ok := questMap[id]; ok {
			ordered = append(ordered, q)
		}
	}

	return &model.SearchQuestResponse{Quests: convertQuests(ordered)}, nil
}

func (d *questDomain) IndexAll(ctx context.Context) error {
	quests, err := d.questRepo.GetList(ctx, repository.SearchQuestFilter{})
	if err != nil {
		return err
	}

	for i := range quests {
		if err := d.indexer.IndexQuest(&quests[i]); err != nil {
			return err
		}
	}

	xcontext.Logger(ctx).Infof("Indexed %d quests", len(quests))
	return nil
}

func convertQuests(quests []entity.Quest) []model.Quest {
	result := []model.Quest{}
	for i := range quests {
		result = append(result, *model.ConvertQuest(&quests[i]))
	}

	return result
}
