package domain

import (
	"context"
	"testing"
	"time"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/internal/model"
	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/errorx"
	"github.com/creatorhq/backend/pkg/testutil"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Thursday, the week starts at 2024-02-26.
var mockNow = time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC)

func newMockQuestSlotDomain() *questSlotDomain {
	d := NewQuestSlotDomain(
		repository.NewQuestSlotRepository(),
		repository.NewQuestRepository(),
		repository.NewQuestAssignmentRepository(),
	)
	d.now = func() time.Time { return mockNow }
	d.randIntn = func(int) int { return 0 }
	return d
}

func publishAssignment(t *testing.T, ctx context.Context, questID, start, end string) *entity.QuestAssignment {
	assignment := &entity.QuestAssignment{
		Base:      entity.Base{ID: uuid.NewString()},
		QuestID:   questID,
		StartDate: start,
		EndDate:   end,
	}
	require.NoError(t, repository.NewQuestAssignmentRepository().Create(ctx, assignment))
	return assignment
}

func Test_questSlotDomain_GetDailySlots(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	d := newMockQuestSlotDomain()
	resp, err := d.GetDailySlots(ctx, &model.GetDailyQuestSlotsRequest{})
	require.NoError(t, err)
	require.Equal(t, "2024-02-29", resp.Date)
	require.Len(t, resp.Slots, 3)

	questIDs := map[string]bool{}
	for i, slot := range resp.Slots {
		require.Equal(t, i+1, slot.SlotNumber)
		require.Equal(t, "2024-02-29", slot.Date)
		require.False(t, slot.HasRerolled)
		require.False(t, slot.Completed)
		require.NotNil(t, slot.Quest)
		require.Equal(t, "daily", slot.Quest.Cadence)
		require.True(t, slot.Quest.IsActive)
		questIDs[slot.QuestID] = true
	}
	require.Len(t, questIDs, 3)

	// The second call returns the same slots.
	again, err := d.GetDailySlots(ctx, &model.GetDailyQuestSlotsRequest{})
	require.NoError(t, err)
	require.Equal(t, resp, again)

	// Other users get their own slots.
	other, err := d.GetDailySlots(
		testutil.MockContextWithUserID(ctx, testutil.User2.ID), &model.GetDailyQuestSlotsRequest{})
	require.NoError(t, err)
	require.Len(t, other.Slots, 3)
	require.NotEqual(t, resp.Slots[0].ID, other.Slots[0].ID)
}

func Test_questSlotDomain_GetDailySlots_PublishedAssignmentsFirst(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	publishAssignment(t, ctx, testutil.DailyQuest4.ID, "2024-02-29", "2024-02-29")
	publishAssignment(t, ctx, testutil.DailyQuest2.ID, "2024-02-29", "2024-02-29")
	// Not published for today.
	publishAssignment(t, ctx, testutil.DailyQuest3.ID, "2024-02-28", "2024-02-28")

	d := newMockQuestSlotDomain()
	resp, err := d.GetDailySlots(ctx, &model.GetDailyQuestSlotsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	require.Equal(t, testutil.DailyQuest4.ID, resp.Slots[0].QuestID)
	require.Equal(t, testutil.DailyQuest2.ID, resp.Slots[1].QuestID)
	require.NotContains(t, []string{testutil.DailyQuest4.ID, testutil.DailyQuest2.ID}, resp.Slots[2].QuestID)
}

func Test_questSlotDomain_GetDailySlots_KeepExistingSlots(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	existing := &entity.QuestSlot{
		Base:        entity.Base{ID: "existing"},
		UserID:      testutil.User1.ID,
		Date:        "2024-02-29",
		SlotNumber:  2,
		QuestID:     testutil.DailyQuest1.ID,
		HasRerolled: true,
	}
	require.NoError(t, repository.NewQuestSlotRepository().CreateIfNotExists(ctx, []*entity.QuestSlot{existing}))

	d := newMockQuestSlotDomain()
	resp, err := d.GetDailySlots(ctx, &model.GetDailyQuestSlotsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	require.Equal(t, "existing", resp.Slots[1].ID)
	require.True(t, resp.Slots[1].HasRerolled)
	require.NotEqual(t, testutil.DailyQuest1.ID, resp.Slots[0].QuestID)
	require.NotEqual(t, testutil.DailyQuest1.ID, resp.Slots[2].QuestID)
}

func Test_questSlotDomain_RerollDailySlot(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	d := newMockQuestSlotDomain()
	slots, err := d.GetDailySlots(ctx, &model.GetDailyQuestSlotsRequest{})
	require.NoError(t, err)

	bound := []string{}
	for _, s := range slots.Slots {
		bound = append(bound, s.QuestID)
	}

	resp, err := d.RerollDailySlot(ctx, &model.RerollDailyQuestSlotRequest{SlotNumber: 1})
	require.NoError(t, err)
	require.Equal(t, slots.Slots[0].ID, resp.Slot.ID)
	require.True(t, resp.Slot.HasRerolled)
	// Four active daily quests and three bound ones leave a single candidate.
	require.NotContains(t, bound, resp.Slot.QuestID)
	require.NotEqual(t, testutil.InactiveDailyQuest.ID, resp.Slot.QuestID)
	require.Equal(t, resp.Slot.QuestID, resp.Slot.Quest.ID)

	_, err = d.RerollDailySlot(ctx, &model.RerollDailyQuestSlotRequest{SlotNumber: 1})
	require.Equal(t, errorx.New(errorx.AlreadyRerolled, "You can only re-roll each quest once per day"), err)

	// The quest released by the first reroll is the only free one.
	resp, err = d.RerollDailySlot(ctx, &model.RerollDailyQuestSlotRequest{SlotNumber: 2})
	require.NoError(t, err)
	require.Equal(t, slots.Slots[0].QuestID, resp.Slot.QuestID)
}

func Test_questSlotDomain_RerollDailySlot_Failed(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	d := newMockQuestSlotDomain()

	_, err := d.RerollDailySlot(ctx, &model.RerollDailyQuestSlotRequest{SlotNumber: 4})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid slot number"), err)

	_, err = d.RerollDailySlot(ctx, &model.RerollDailyQuestSlotRequest{SlotNumber: 1})
	require.Equal(t, errorx.New(errorx.NotFound, "Quest slot not found"), err)

	slots, err := d.GetDailySlots(ctx, &model.GetDailyQuestSlotsRequest{})
	require.NoError(t, err)
	require.NoError(t, repository.NewQuestSlotRepository().MarkCompleted(ctx, slots.Slots[2].ID))

	_, err = d.RerollDailySlot(ctx, &model.RerollDailyQuestSlotRequest{SlotNumber: 3})
	require.Equal(t, errorx.New(errorx.SlotCompleted, "You cannot re-roll a completed quest"), err)

	slot, err := repository.NewQuestSlotRepository().GetByID(ctx, slots.Slots[2].ID)
	require.NoError(t, err)
	require.False(t, slot.HasRerolled)
	require.Equal(t, slots.Slots[2].QuestID, slot.QuestID)
}

func Test_questSlotDomain_WeeklySlot(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	d := newMockQuestSlotDomain()

	// No assignment, no slot.
	resp, err := d.GetWeeklySlot(ctx, &model.GetWeeklyQuestSlotRequest{})
	require.NoError(t, err)
	require.Equal(t, "2024-02-26", resp.Date)
	require.Nil(t, resp.Slot)

	_, err = d.RerollWeeklySlot(ctx, &model.RerollWeeklyQuestSlotRequest{})
	require.Equal(t, errorx.New(errorx.NotFound, "The weekly quest slot is not found"), err)

	// A daily assignment never fills a weekly slot.
	publishAssignment(t, ctx, testutil.DailyQuest1.ID, "2024-02-26", "2024-03-03")
	publishAssignment(t, ctx, testutil.WeeklyQuest1.ID, "2024-02-26", "2024-03-03")

	resp, err = d.GetWeeklySlot(ctx, &model.GetWeeklyQuestSlotRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp.Slot)
	require.Equal(t, 100, resp.Slot.SlotNumber)
	require.Equal(t, "2024-02-26", resp.Slot.Date)
	require.Equal(t, testutil.WeeklyQuest1.ID, resp.Slot.QuestID)

	rerolled, err := d.RerollWeeklySlot(ctx, &model.RerollWeeklyQuestSlotRequest{})
	require.NoError(t, err)
	require.Equal(t, resp.Slot.ID, rerolled.Slot.ID)
	require.Equal(t, testutil.WeeklyQuest2.ID, rerolled.Slot.QuestID)
	require.True(t, rerolled.Slot.HasRerolled)

	_, err = d.RerollWeeklySlot(ctx, &model.RerollWeeklyQuestSlotRequest{})
	require.Equal(t, errorx.New(errorx.AlreadyRerolled, "You can only re-roll the weekly quest once"), err)

	// The rerolled quest is kept, the assignment does not come back.
	resp, err = d.GetWeeklySlot(ctx, &model.GetWeeklyQuestSlotRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.WeeklyQuest2.ID, resp.Slot.QuestID)
}

func Test_questSlotDomain_MonthlySlot(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	publishAssignment(t, ctx, testutil.MonthlyQuest1.ID, "2024-02-01", "2024-02-29")

	err := repository.NewQuestRepository().UpdateByID(
		ctx, testutil.MonthlyQuest2.ID, map[string]any{"is_active": false})
	require.NoError(t, err)

	d := newMockQuestSlotDomain()
	resp, err := d.GetMonthlySlot(ctx, &model.GetMonthlyQuestSlotRequest{})
	require.NoError(t, err)
	require.Equal(t, "2024-02-01", resp.Date)
	require.NotNil(t, resp.Slot)
	require.Equal(t, 200, resp.Slot.SlotNumber)
	require.Equal(t, testutil.MonthlyQuest1.ID, resp.Slot.QuestID)

	_, err = d.RerollMonthlySlot(ctx, &model.RerollMonthlyQuestSlotRequest{})
	require.Equal(t, errorx.New(errorx.NoQuestsAvailable, "There are no other quests to re-roll to"), err)

	slot, err := repository.NewQuestSlotRepository().GetByID(ctx, resp.Slot.ID)
	require.NoError(t, err)
	require.False(t, slot.HasRerolled)
}

func Test_questSlotDomain_PopulateSlots(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	publishAssignment(t, ctx, testutil.WeeklyQuest2.ID, "2024-02-26", "2024-03-03")

	d := newMockQuestSlotDomain()
	require.NoError(t, d.PopulateSlots(ctx, testutil.User3.ID))
	require.NoError(t, d.PopulateSlots(ctx, testutil.User3.ID))

	slotRepo := repository.NewQuestSlotRepository()
	daily, err := slotRepo.GetByUserAndDate(ctx, testutil.User3.ID, "2024-02-29", []int{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, daily, 3)

	weekly, err := slotRepo.GetByUserAndDate(ctx, testutil.User3.ID, "2024-02-26", []int{100})
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	require.Equal(t, testutil.WeeklyQuest2.ID, weekly[0].QuestID)

	monthly, err := slotRepo.GetByUserAndDate(ctx, testutil.User3.ID, "2024-02-01", []int{200})
	require.NoError(t, err)
	require.Empty(t, monthly)
}

func Test_questSlotDomain_GetDailySlots_TooManySlots(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	cfg := xcontext.Configs(ctx)
	cfg.Gamification.DailySlots = 150
	ctx = xcontext.WithConfigs(ctx, cfg)

	// A slot numbered like the weekly one, anchored on today.
	weekly := &entity.QuestSlot{
		Base:       entity.Base{ID: "weekly"},
		UserID:     testutil.User1.ID,
		Date:       "2024-02-29",
		SlotNumber: 100,
		QuestID:    testutil.DailyQuest1.ID,
	}
	require.NoError(t, repository.NewQuestSlotRepository().CreateIfNotExists(ctx, []*entity.QuestSlot{weekly}))

	d := newMockQuestSlotDomain()
	resp, err := d.GetDailySlots(ctx, &model.GetDailyQuestSlotsRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	for _, slot := range resp.Slots {
		require.Less(t, slot.SlotNumber, 100)
		require.NotEqual(t, "weekly", slot.ID)
	}
}

func Test_questSlotDomain_reroll_StaleSlot(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.User1.ID)

	d := newMockQuestSlotDomain()
	slots, err := d.GetDailySlots(ctx, &model.GetDailyQuestSlotsRequest{})
	require.NoError(t, err)

	questSlotRepo := repository.NewQuestSlotRepository()
	stale, err := questSlotRepo.GetByID(ctx, slots.Slots[0].ID)
	require.NoError(t, err)

	// Another request rerolls the slot after this one has read it.
	require.NoError(t, questSlotRepo.Reroll(ctx, stale.ID, stale.QuestID, testutil.DailyQuest4.ID))

	_, err = d.reroll(ctx, stale, nil)
	require.Equal(t, errorx.New(errorx.AlreadyRerolled, "The quest slot has been changed, please try again"), err)

	current, err := questSlotRepo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.DailyQuest4.ID, current.QuestID)
	require.True(t, current.HasRerolled)
}
