package domain

import (
	"context"
	"errors"
	"time"

	"github.com/creatorhq/backend/internal/common"
	"github.com/creatorhq/backend/internal/domain/questslot"
	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/internal/model"
	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/crypto"
	"github.com/creatorhq/backend/pkg/errorx"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type QuestSlotDomain interface {
	GetDailySlots(context.Context, *model.GetDailyQuestSlotsRequest) (*model.GetDailyQuestSlotsResponse, error)
	RerollDailySlot(context.Context, *model.RerollDailyQuestSlotRequest) (*model.RerollDailyQuestSlotResponse, error)
	GetWeeklySlot(context.Context, *model.GetWeeklyQuestSlotRequest) (*model.GetWeeklyQuestSlotResponse, error)
	RerollWeeklySlot(context.Context, *model.RerollWeeklyQuestSlotRequest) (*model.RerollWeeklyQuestSlotResponse, error)
	GetMonthlySlot(context.Context, *model.GetMonthlyQuestSlotRequest) (*model.GetMonthlyQuestSlotResponse, error)
	RerollMonthlySlot(context.Context, *model.RerollMonthlyQuestSlotRequest) (*model.RerollMonthlyQuestSlotResponse, error)

	// PopulateSlots creates the missing slots of every cadence for the user
	// without returning them.
	PopulateSlots(ctx context.Context, userID string) error
}

type questSlotDomain struct {
	questSlotRepo       repository.QuestSlotRepository
	questRepo           repository.QuestRepository
	questAssignmentRepo repository.QuestAssignmentRepository

	now      func() time.Time
	randIntn questslot.RandIntn
}

func NewQuestSlotDomain(
	questSlotRepo repository.QuestSlotRepository,
	questRepo repository.QuestRepository,
	questAssignmentRepo repository.QuestAssignmentRepository,
) *questSlotDomain {
	return &questSlotDomain{
		questSlotRepo:       questSlotRepo,
		questRepo:           questRepo,
		questAssignmentRepo: questAssignmentRepo,
		now:                 time.Now,
		randIntn:            crypto.RandIntn,
	}
}

func (d *questSlotDomain) GetDailySlots(
	ctx context.Context, req *model.GetDailyQuestSlotsRequest,
) (*model.GetDailyQuestSlotsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	period := questslot.PeriodOf(entity.CadenceDaily, d.today(ctx))

	slots, err := d.populateDailySlots(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	resp := &model.GetDailyQuestSlotsResponse{Date: period.Anchor, Slots: []model.QuestSlot{}}
	for i := range slots {
		resp.Slots = append(resp.Slots, model.ConvertQuestSlot(&slots[i]))
	}

	return resp, nil
}

func (d *questSlotDomain) RerollDailySlot(
	ctx context.Context, req *model.RerollDailyQuestSlotRequest,
) (*model.RerollDailyQuestSlotResponse, error) {
	numbers := d.dailySlotNumbers(ctx)
	if req.SlotNumber < numbers[0] || req.SlotNumber > numbers[len(numbers)-1] {
		return nil, errorx.New(errorx.BadRequest, "Invalid slot number")
	}

	userID := xcontext.RequestUserID(ctx)
	period := questslot.PeriodOf(entity.CadenceDaily, d.today(ctx))

	slots, err := d.questSlotRepo.GetByUserAndDate(ctx, userID, period.Anchor, numbers)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get daily slots: %v", err)
		return nil, errorx.Unknown
	}

	var slot *entity.QuestSlot
	boundQuestIDs := []string{}
	for i := range slots {
		boundQuestIDs = append(boundQuestIDs, slots[i].QuestID)
		if slots[i].SlotNumber == req.SlotNumber {
			slot = &slots[i]
		}
	}

	if slot == nil {
		return nil, errorx.New(errorx.NotFound, "Quest slot not found")
	}

	if slot.HasRerolled {
		return nil, errorx.New(errorx.AlreadyRerolled, "You can only re-roll each quest once per day")
	}

	result, err := d.reroll(ctx, slot, boundQuestIDs)
	if err != nil {
		return nil, err
	}

	return &model.RerollDailyQuestSlotResponse{Slot: *result}, nil
}

func (d *questSlotDomain) GetWeeklySlot(
	ctx context.Context, req *model.GetWeeklyQuestSlotRequest,
) (*model.GetWeeklyQuestSlotResponse, error) {
	slot, period, err := d.getPeriodSlot(ctx, entity.CadenceWeekly)
	if err != nil {
		return nil, err
	}

	return &model.GetWeeklyQuestSlotResponse{Date: period.Anchor, Slot: slot}, nil
}

func (d *questSlotDomain) RerollWeeklySlot(
	ctx context.Context, req *model.RerollWeeklyQuestSlotRequest,
) (*model.RerollWeeklyQuestSlotResponse, error) {
	slot, err := d.rerollPeriodSlot(ctx, entity.CadenceWeekly)
	if err != nil {
		return nil, err
	}

	return &model.RerollWeeklyQuestSlotResponse{Slot: *slot}, nil
}

func (d *questSlotDomain) GetMonthlySlot(
	ctx context.Context, req *model.GetMonthlyQuestSlotRequest,
) (*model.GetMonthlyQuestSlotResponse, error) {
	slot, period, err := d.getPeriodSlot(ctx, entity.CadenceMonthly)
	if err != nil {
		return nil, err
	}

	return &model.GetMonthlyQuestSlotResponse{Date: period.Anchor, Slot: slot}, nil
}

func (d *questSlotDomain) RerollMonthlySlot(
	ctx context.Context, req *model.RerollMonthlyQuestSlotRequest,
) (*model.RerollMonthlyQuestSlotResponse, error) {
	slot, err := d.rerollPeriodSlot(ctx, entity.CadenceMonthly)
	if err != nil {
		return nil, err
	}

	return &model.RerollMonthlyQuestSlotResponse{Slot: *slot}, nil
}

func (d *questSlotDomain) PopulateSlots(ctx context.Context, userID string) error {
	today := d.today(ctx)
	if _, err := d.populateDailySlots(ctx, userID, questslot.PeriodOf(entity.CadenceDaily, today)); err != nil {
		return err
	}

	for _, cadence := range []entity.QuestCadence{entity.CadenceWeekly, entity.CadenceMonthly} {
		_, err := d.populatePeriodSlot(ctx, userID, cadence, questslot.PeriodOf(cadence, today))
		if err != nil {
			return err
		}
	}

	return nil
}

func (d *questSlotDomain) today(ctx context.Context) time.Time {
	return d.now().In(xcontext.Configs(ctx).Gamification.Location())
}

func (d *questSlotDomain) dailySlotNumbers(ctx context.Context) []int {
	count := xcontext.Configs(ctx).Gamification.DailySlots
	if count <= 0 {
		count = questslot.DefaultDailySlotCount
	}

	if count >= questslot.WeeklySlotNumber {
		count = questslot.WeeklySlotNumber - 1
	}

	return questslot.DailySlotNumbers(count)
}

// populateDailySlots fills the empty daily slots of the user, first with the
// daily assignments published for today, then with random active daily
// quests. Slots which exist already are never touched.
func (d *questSlotDomain) populateDailySlots(
	ctx context.Context, userID string, period questslot.Period,
) ([]entity.QuestSlot, error) {
	numbers := d.dailySlotNumbers(ctx)
	slots, err := d.questSlotRepo.GetByUserAndDate(ctx, userID, period.Anchor, numbers)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get daily slots: %v", err)
		return nil, errorx.Unknown
	}

	missing := questslot.MissingSlotNumbers(numbers, slots)
	if len(missing) == 0 {
		return slots, nil
	}

	used := []string{}
	for _, s := range slots {
		used = append(used, s.QuestID)
	}

	assignments, err := d.questAssignmentRepo.GetPublished(ctx, entity.CadenceDaily, period.Anchor)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get published daily assignments: %v", err)
		return nil, errorx.Unknown
	}

	questIDs := []string{}
	for _, a := range assignments {
		if len(questIDs) == len(missing) {
			break
		}

		if slices.Contains(used, a.QuestID) || slices.Contains(questIDs, a.QuestID) {
			continue
		}

		questIDs = append(questIDs, a.QuestID)
	}

	if len(questIDs) < len(missing) {
		pool, err := d.questRepo.GetActiveByCadence(ctx, entity.CadenceDaily)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get active daily quests: %v", err)
			return nil, errorx.Unknown
		}

		questIDs = append(questIDs,
			questslot.PickDistinct(pool, append(used, questIDs...), len(missing)-len(questIDs), d.randIntn)...)
	}

	newSlots := []*entity.QuestSlot{}
	for i, questID := range questIDs {
		newSlots = append(newSlots, &entity.QuestSlot{
			Base:       entity.Base{ID: uuid.NewString()},
			UserID:     userID,
			Date:       period.Anchor,
			SlotNumber: missing[i],
			QuestID:    questID,
		})
	}

	if len(newSlots) < len(missing) {
		xcontext.Logger(ctx).Warnf("Not enough daily quests to fill slots of user %s", userID)
	}

	if err := d.questSlotRepo.CreateIfNotExists(ctx, newSlots); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create daily slots: %v", err)
		return nil, errorx.Unknown
	}

	// Read again, another request may have filled some of these slots first.
	slots, err = d.questSlotRepo.GetByUserAndDate(ctx, userID, period.Anchor, numbers)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get daily slots: %v", err)
		return nil, errorx.Unknown
	}

	return slots, nil
}

// populatePeriodSlot returns the only slot of the weekly or monthly period,
// creating it from the first published assignment. It returns nil if there is
// no such assignment.
func (d *questSlotDomain) populatePeriodSlot(
	ctx context.Context, userID string, cadence entity.QuestCadence, period questslot.Period,
) (*entity.QuestSlot, error) {
	numbers := []int{questslot.SlotNumber(cadence)}
	slots, err := d.questSlotRepo.GetByUserAndDate(ctx, userID, period.Anchor, numbers)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get %s slot: %v", cadence, err)
		return nil, errorx.Unknown
	}

	if len(slots) > 0 {
		return &slots[0], nil
	}

	today := questslot.PeriodOf(entity.CadenceDaily, d.today(ctx)).Anchor
	assignments, err := d.questAssignmentRepo.GetPublished(ctx, cadence, today)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get published %s assignments: %v", cadence, err)
		return nil, errorx.Unknown
	}

	if len(assignments) == 0 {
		return nil, nil
	}

	slot := &entity.QuestSlot{
		Base:       entity.Base{ID: uuid.NewString()},
		UserID:     userID,
		Date:       period.Anchor,
		SlotNumber: numbers[0],
		QuestID:    assignments[0].QuestID,
	}
	if err := d.questSlotRepo.CreateIfNotExists(ctx, []*entity.QuestSlot{slot}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create %s slot: %v", cadence, err)
		return nil, errorx.Unknown
	}

	slots, err = d.questSlotRepo.GetByUserAndDate(ctx, userID, period.Anchor, numbers)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get %s slot: %v", cadence, err)
		return nil, errorx.Unknown
	}

	if len(slots) == 0 {
		return nil, nil
	}

	return &slots[0], nil
}

func (d *questSlotDomain) getPeriodSlot(
	ctx context.Context, cadence entity.QuestCadence,
) (*model.QuestSlot, questslot.Period, error) {
	period := questslot.PeriodOf(cadence, d.today(ctx))
	slot, err := d.populatePeriodSlot(ctx, xcontext.RequestUserID(ctx), cadence, period)
	if err != nil {
		return nil, period, err
	}

	if slot == nil {
		return nil, period, nil
	}

	result := model.ConvertQuestSlot(slot)
	return &result, period, nil
}

func (d *questSlotDomain) rerollPeriodSlot(ctx context.Context, cadence entity.QuestCadence) (*model.QuestSlot, error) {
	period := questslot.PeriodOf(cadence, d.today(ctx))
	slots, err := d.questSlotRepo.GetByUserAndDate(
		ctx, xcontext.RequestUserID(ctx), period.Anchor, []int{questslot.SlotNumber(cadence)})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get %s slot: %v", cadence, err)
		return nil, errorx.Unknown
	}

	if len(slots) == 0 {
		return nil, errorx.New(errorx.NotFound, "The %s quest slot is not found", cadence)
	}

	if slots[0].HasRerolled {
		return nil, errorx.New(errorx.AlreadyRerolled, "You can only re-roll the %s quest once", cadence)
	}

	return d.reroll(ctx, &slots[0], nil)
}

// reroll replaces the quest of slot with a random active quest of the same
// cadence, avoiding boundQuestIDs when possible.
func (d *questSlotDomain) reroll(
	ctx context.Context, slot *entity.QuestSlot, boundQuestIDs []string,
) (*model.QuestSlot, error) {
	if slot.Completed {
		return nil, errorx.New(errorx.SlotCompleted, "You cannot re-roll a completed quest")
	}

	cadence := questslot.CadenceOf(slot.SlotNumber)
	pool, err := d.questRepo.GetActiveByCadence(ctx, cadence)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active %s quests: %v", cadence, err)
		return nil, errorx.Unknown
	}

	candidates := questslot.RerollPool(pool, slot.QuestID, boundQuestIDs)
	if len(candidates) == 0 {
		return nil, errorx.New(errorx.NoQuestsAvailable, "There are no other quests to re-roll to")
	}

	newQuestID := candidates[d.randIntn(len(candidates))].ID
	if err := d.questSlotRepo.Reroll(ctx, slot.ID, slot.QuestID, newQuestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyRerolled, "The quest slot has been changed, please try again")
		}

		xcontext.Logger(ctx).Errorf("Cannot reroll slot: %v", err)
		return nil, errorx.Unknown
	}

	common.PromCounters[common.QuestSlotRerollTotal].WithLabelValues(string(cadence)).Inc()

	updated, err := d.questSlotRepo.GetByID(ctx, slot.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get slot after reroll: %v", err)
		return nil, errorx.Unknown
	}

	result := model.ConvertQuestSlot(updated)
	return &result, nil
}
