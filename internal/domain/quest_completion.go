package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/creatorhq/backend/internal/common"
	"github.com/creatorhq/backend/internal/domain/questslot"
	"github.com/creatorhq/backend/internal/domain/statistic"
	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/internal/model"
	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/dateutil"
	"github.com/creatorhq/backend/pkg/enum"
	"github.com/creatorhq/backend/pkg/errorx"
	"github.com/creatorhq/backend/pkg/pubsub"
	"github.com/creatorhq/backend/pkg/storage"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const attachmentFormKey = "attachments"

type QuestCompletionDomain interface {
	Submit(context.Context, *model.SubmitQuestCompletionRequest) (*model.SubmitQuestCompletionResponse, error)
	GetMyCompletions(context.Context, *model.GetMyCompletionsRequest) (*model.GetMyCompletionsResponse, error)
	GetPending(context.Context, *model.GetPendingCompletionsRequest) (*model.GetPendingCompletionsResponse, error)
	Review(context.Context, *model.ReviewCompletionRequest) (*model.ReviewCompletionResponse, error)
}

type questCompletionDomain struct {
	questCompletionRepo repository.QuestCompletionRepository
	questSlotRepo       repository.QuestSlotRepository
	questAssignmentRepo repository.QuestAssignmentRepository
	chatterStatsRepo    repository.ChatterStatsRepository
	transactionRepo     repository.TransactionRepository
	globalRoleVerifier  *common.GlobalRoleVerifier
	storage             storage.Storage
	publisher           pubsub.Publisher
	leaderboard         statistic.Leaderboard

	now func() time.Time
}

func NewQuestCompletionDomain(
	questCompletionRepo repository.QuestCompletionRepository,
	questSlotRepo repository.QuestSlotRepository,
	questAssignmentRepo repository.QuestAssignmentRepository,
	chatterStatsRepo repository.ChatterStatsRepository,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	storage storage.Storage,
	publisher pubsub.Publisher,
	leaderboard statistic.Leaderboard,
) *questCompletionDomain {
	return &questCompletionDomain{
		questCompletionRepo: questCompletionRepo,
		questSlotRepo:       questSlotRepo,
		questAssignmentRepo: questAssignmentRepo,
		chatterStatsRepo:    chatterStatsRepo,
		transactionRepo:     transactionRepo,
		globalRoleVerifier:  common.NewGlobalRoleVerifier(userRepo),
		storage:             storage,
		publisher:           publisher,
		leaderboard:         leaderboard,
		now:                 time.Now,
	}
}

func (d *questCompletionDomain) Submit(
	ctx context.Context, req *model.SubmitQuestCompletionRequest,
) (*model.SubmitQuestCompletionResponse, error) {
	if req.SlotID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a quest slot")
	}

	userID := xcontext.RequestUserID(ctx)
	slot, err := d.questSlotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Quest slot not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest slot: %v", err)
		return nil, errorx.Unknown
	}

	if slot.UserID != userID {
		return nil, errorx.New(errorx.NotFound, "Quest slot not found")
	}

	if slot.Completed {
		return nil, errorx.New(errorx.AlreadyExists, "You have already submitted this quest")
	}

	attachments, err := d.uploadAttachments(ctx, slot)
	if err != nil {
		return nil, err
	}

	assignment, err := d.getOrCreateAssignment(ctx, slot)
	if err != nil {
		return nil, err
	}

	completion := &entity.QuestCompletion{
		Base:              entity.Base{ID: uuid.NewString()},
		UserID:            userID,
		QuestAssignmentID: assignment.ID,
		QuestSlotID:       sql.NullString{String: slot.ID, Valid: true},
		Status:            entity.CompletionPending,
		Attachments:       attachments,
	}

	if err := d.questCompletionRepo.Create(ctx, completion); err != nil {
		if repository.IsDuplicateError(err) {
			return nil, errorx.New(errorx.AlreadyExists, "You have already submitted this quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot create quest completion: %v", err)
		return nil, errorx.Unknown
	}

	// A failed flip is not compensated, the completion row stays.
	if err := d.questSlotRepo.MarkCompleted(ctx, slot.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark slot %s completed: %v", slot.ID, err)
	}

	common.PromCounters[common.QuestCompletionTotal].WithLabelValues(string(entity.CompletionPending)).Inc()
	publishEvent(ctx, d.publisher, common.CompletionSubmittedTopic, completion.ID, model.CompletionSubmittedEvent{
		CompletionID: completion.ID,
		UserID:       userID,
		QuestID:      slot.QuestID,
		SlotID:       slot.ID,
	})

	result, err := d.questCompletionRepo.GetByID(ctx, completion.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quest completion: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SubmitQuestCompletionResponse{Completion: model.ConvertQuestCompletion(ctx, result)}, nil
}

func (d *questCompletionDomain) GetMyCompletions(
	ctx context.Context, req *model.GetMyCompletionsRequest,
) (*model.GetMyCompletionsResponse, error) {
	filter := repository.QuestCompletionFilter{
		UserID: xcontext.RequestUserID(ctx),
		Offset: common.Offset(req.Offset),
		Limit:  common.Limit(ctx, req.Limit),
	}

	if req.Status != "" {
		status, err := enum.ToEnum[entity.CompletionStatus](req.Status)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid status: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid status")
		}
		filter.Status = []entity.CompletionStatus{status}
	}

	completions, err := d.questCompletionRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get completions: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMyCompletionsResponse{Completions: convertCompletions(ctx, completions)}, nil
}

func (d *questCompletionDomain) GetPending(
	ctx context.Context, req *model.GetPendingCompletionsRequest,
) (*model.GetPendingCompletionsResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	completions, err := d.questCompletionRepo.GetList(ctx, repository.QuestCompletionFilter{
		Status: []entity.CompletionStatus{entity.CompletionPending},
		Offset: common.Offset(req.Offset),
		Limit:  common.Limit(ctx, req.Limit),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pending completions: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPendingCompletionsResponse{Completions: convertCompletions(ctx, completions)}, nil
}

func (d *questCompletionDomain) Review(
	ctx context.Context, req *model.ReviewCompletionRequest,
) (*model.ReviewCompletionResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	completion, err := d.questCompletionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest completion")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest completion: %v", err)
		return nil, errorx.Unknown
	}

	if completion.Status != entity.CompletionPending {
		return nil, errorx.New(errorx.BadRequest, "The quest completion has been reviewed already")
	}

	status := entity.CompletionRejected
	var xp, bananas int64
	if req.Approve {
		status = entity.CompletionApproved
		xp = completion.QuestAssignment.Quest.XPReward
		bananas = completion.QuestAssignment.Quest.BananaReward
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.questCompletionRepo.Review(ctx, completion.ID, map[string]any{
		"status":         status,
		"reviewer_id":    xcontext.RequestUserID(ctx),
		"reviewed_at":    d.now(),
		"xp_earned":      xp,
		"bananas_earned": bananas,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "The quest completion has been reviewed already")
		}

		xcontext.Logger(ctx).Errorf("Cannot review quest completion: %v", err)
		return nil, errorx.Unknown
	}

	if status == entity.CompletionApproved {
		if err := d.award(ctx, completion, xp, bananas); err != nil {
			return nil, err
		}
	}

	ctx = xcontext.WithCommitDBTransaction(ctx)

	if xp > 0 {
		if err := d.leaderboard.IncreaseXP(ctx, completion.UserID, xp); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot increase leaderboard xp: %v", err)
		}
	}

	common.PromCounters[common.QuestCompletionTotal].WithLabelValues(string(status)).Inc()
	publishEvent(ctx, d.publisher, common.CompletionReviewedTopic, completion.ID, model.CompletionReviewedEvent{
		CompletionID:  completion.ID,
		UserID:        completion.UserID,
		Status:        string(status),
		XPEarned:      xp,
		BananasEarned: bananas,
	})

	result, err := d.questCompletionRepo.GetByID(ctx, completion.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quest completion: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReviewCompletionResponse{Completion: model.ConvertQuestCompletion(ctx, result)}, nil
}

// award credits the rewards to the chatter and records them in the ledgers.
// It must run inside the review transaction.
func (d *questCompletionDomain) award(
	ctx context.Context, completion *entity.QuestCompletion, xp, bananas int64,
) error {
	if err := d.chatterStatsRepo.Increase(ctx, completion.UserID, xp, bananas); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase chatter stats: %v", err)
		return errorx.Unknown
	}

	note := fmt.Sprintf("Quest completed: %s", completion.QuestAssignment.Quest.Title)
	if xp != 0 {
		err := d.transactionRepo.CreateXP(ctx, &entity.XPTransaction{
			SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
			UserID:        completion.UserID,
			Amount:        xp,
			SourceType:    entity.SourceQuestCompletion,
			SourceID:      completion.ID,
			Note:          note,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create xp transaction: %v", err)
			return errorx.Unknown
		}
	}

	if bananas != 0 {
		err := d.transactionRepo.CreateBanana(ctx, &entity.BananaTransaction{
			SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
			UserID:        completion.UserID,
			Amount:        bananas,
			SourceType:    entity.SourceQuestCompletion,
			SourceID:      completion.ID,
			Note:          note,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create banana transaction: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}

// getOrCreateAssignment returns the assignment of the slot's quest in the
// slot's period. Quests which were not published by an admin, for example
// random daily quests or rerolled ones, get a personal assignment.
func (d *questCompletionDomain) getOrCreateAssignment(
	ctx context.Context, slot *entity.QuestSlot,
) (*entity.QuestAssignment, error) {
	anchor, err := dateutil.ParseDate(slot.Date, xcontext.Configs(ctx).Gamification.Location())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid slot date %s: %v", slot.Date, err)
		return nil, errorx.Unknown
	}

	period := questslot.PeriodOf(questslot.CadenceOf(slot.SlotNumber), anchor)
	assignment, err := d.questAssignmentRepo.GetForPeriod(ctx, slot.QuestID, period.Start, period.End)
	if err == nil {
		return assignment, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get assignment: %v", err)
		return nil, errorx.Unknown
	}

	assignment = &entity.QuestAssignment{
		Base:       entity.Base{ID: uuid.NewString()},
		QuestID:    slot.QuestID,
		StartDate:  period.Start,
		EndDate:    period.End,
		AssignedBy: sql.NullString{String: slot.UserID, Valid: true},
	}
	if err := d.questAssignmentRepo.Create(ctx, assignment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create assignment: %v", err)
		return nil, errorx.Unknown
	}

	return assignment, nil
}

// uploadAttachments stores the evidence files of the request under
// <user>/<slot> in the submission bucket and returns their urls.
func (d *questCompletionDomain) uploadAttachments(ctx context.Context, slot *entity.QuestSlot) ([]string, error) {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return []string{}, nil
	}

	cfg := xcontext.Configs(ctx)
	if err := req.ParseMultipartForm(cfg.File.MaxSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return []string{}, nil
		}

		xcontext.Logger(ctx).Debugf("Cannot parse multipart form: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid attachments")
	}

	headers := req.MultipartForm.File[attachmentFormKey]
	if len(headers) > cfg.File.MaxFiles {
		return nil, errorx.New(errorx.BadRequest, "Too many attachments, the limit is %d", cfg.File.MaxFiles)
	}

	timestamp := d.now().UnixMilli()
	objects := []*storage.UploadObject{}
	for i, header := range headers {
		data, mime, err := readAttachment(ctx, header)
		if err != nil {
			return nil, err
		}

		objects = append(objects, &storage.UploadObject{
			Bucket:   cfg.Gamification.SubmissionBucket,
			Prefix:   fmt.Sprintf("%s/%s", slot.UserID, slot.ID),
			FileName: fmt.Sprintf("%d-%d%s", timestamp, i, filepath.Ext(header.Filename)),
			Mime:     mime,
			Data:     data,
		})
	}

	if len(objects) == 0 {
		return []string{}, nil
	}

	resps, err := d.storage.BulkUpload(ctx, objects)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload attachments: %v", err)
		return nil, errorx.Unknown
	}

	urls := []string{}
	for _, resp := range resps {
		urls = append(urls, resp.Url)
	}

	return urls, nil
}

func readAttachment(ctx context.Context, header *multipart.FileHeader) ([]byte, string, error) {
	cfg := xcontext.Configs(ctx).File
	if header.Size > cfg.MaxSize {
		return nil, "", errorx.New(errorx.BadRequest, "The file %s is too large", header.Filename)
	}

	file, err := header.Open()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot open attachment: %v", err)
		return nil, "", errorx.Unknown
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read attachment: %v", err)
		return nil, "", errorx.Unknown
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}

	if common.IsImage(mime) {
		data, err = common.DownscaleImage(mime, data, uint(cfg.MaxImageWidth))
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot process image: %v", err)
			return nil, "", errorx.New(errorx.BadRequest, "The file %s is not a valid image", header.Filename)
		}
	}

	return data, mime, nil
}

func convertCompletions(ctx context.Context, completions []entity.QuestCompletion) []model.QuestCompletion {
	result := []model.QuestCompletion{}
	for i := range completions {
		result = append(result, model.ConvertQuestCompletion(ctx, &completions[i]))
	}

	return result
}
