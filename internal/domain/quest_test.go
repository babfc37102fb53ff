package domain

import (
	"context"
	"testing"

	"github.com/creatorhq/backend/internal/domain/search"
	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/internal/model"
	"github.com/creatorhq/backend/internal/repository"
	"github.com/creatorhq/backend/pkg/errorx"
	"github.com/creatorhq/backend/pkg/testutil"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newMockQuestDomain(ctx context.Context) *questDomain {
	return NewQuestDomain(
		repository.NewQuestRepository(),
		repository.NewUserRepository(),
		search.NewBleveIndex(ctx),
	)
}

func Test_questDomain_Create_Failed(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		req     *model.CreateQuestRequest
		wantErr error
	}{
		{
			name:    "no permission",
			userID:  testutil.User1.ID,
			req:     &model.CreateQuestRequest{Title: "new-quest", Cadence: "daily"},
			wantErr: errorx.New(errorx.PermissionDenied, "Permission denied"),
		},
		{
			name:    "no title",
			userID:  testutil.Admin1.ID,
			req:     &model.CreateQuestRequest{Cadence: "daily"},
			wantErr: errorx.New(errorx.BadRequest, "Require a title"),
		},
		{
			name:    "invalid cadence",
			userID:  testutil.Admin1.ID,
			req:     &model.CreateQuestRequest{Title: "new-quest", Cadence: "yearly"},
			wantErr: errorx.New(errorx.BadRequest, "Invalid cadence"),
		},
		{
			name:    "negative reward",
			userID:  testutil.Admin1.ID,
			req:     &model.CreateQuestRequest{Title: "new-quest", Cadence: "weekly", XPReward: -1},
			wantErr: errorx.New(errorx.BadRequest, "Rewards must not be negative"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			testutil.CreateFixtureDb(ctx)
			ctx = testutil.MockContextWithUserID(ctx, tt.userID)

			_, err := newMockQuestDomain(ctx).Create(ctx, tt.req)
			require.Error(t, err)
			require.Equal(t, tt.wantErr, err)
		})
	}
}

func Test_questDomain_Create_Successfully(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.Admin1.ID)

	d := newMockQuestDomain(ctx)
	resp, err := d.Create(ctx, &model.CreateQuestRequest{
		Title:        "Upsell a bundle",
		Description:  "Convince a fan to buy the premium bundle",
		Cadence:      "weekly",
		XPReward:     150,
		BananaReward: 15,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	var result entity.Quest
	require.NoError(t, xcontext.DB(ctx).Take(&result, "id=?", resp.ID).Error)
	require.Equal(t, "Upsell a bundle", result.Title)
	require.Equal(t, entity.CadenceWeekly, result.Cadence)
	require.Equal(t, int64(150), result.XPReward)
	require.Equal(t, int64(15), result.BananaReward)
	require.Equal(t, 1, result.ProgressTarget)
	require.True(t, result.IsActive)
	require.Equal(t, testutil.Admin1.ID, result.CreatedBy)

	searchResp, err := d.Search(ctx, &model.SearchQuestRequest{Q: "bundle"})
	require.NoError(t, err)
	require.Len(t, searchResp.Quests, 1)
	require.Equal(t, resp.ID, searchResp.Quests[0].ID)
}

func Test_questDomain_Update(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	ctx = testutil.MockContextWithUserID(ctx, testutil.Admin1.ID)

	d := newMockQuestDomain(ctx)
	xp := int64(0)
	inactive := false
	_, err := d.Update(ctx, &model.UpdateQuestRequest{
		ID:       testutil.DailyQuest1.ID,
		Title:    "Send 100 mass messages",
		XPReward: &xp,
		IsActive: &inactive,
	})
	require.NoError(t, err)

	resp, err := d.Get(ctx, &model.GetQuestRequest{ID: testutil.DailyQuest1.ID})
	require.NoError(t, err)
	require.Equal(t, "Send 100 mass messages", resp.Quest.Title)
	require.Equal(t, int64(0), resp.Quest.XPReward)
	require.Equal(t, testutil.DailyQuest1.BananaReward, resp.Quest.BananaReward)
	require.False(t, resp.Quest.IsActive)

	_, err = d.Update(ctx, &model.UpdateQuestRequest{ID: "unknown", Title: "x"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found quest"), err)

	_, err = d.Update(ctx, &model.UpdateQuestRequest{ID: testutil.DailyQuest1.ID})
	require.Equal(t, errorx.New(errorx.BadRequest, "Nothing to update"), err)

	_, err = d.Update(testutil.MockContextWithUserID(ctx, testutil.User1.ID),
		&model.UpdateQuestRequest{ID: testutil.DailyQuest1.ID, Title: "x"})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)
}

func Test_questDomain_Get(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	d := newMockQuestDomain(ctx)
	resp, err := d.Get(ctx, &model.GetQuestRequest{ID: testutil.WeeklyQuest1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.WeeklyQuest1.Title, resp.Quest.Title)
	require.Equal(t, "weekly", resp.Quest.Cadence)

	_, err = d.Get(ctx, &model.GetQuestRequest{ID: "unknown"})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found quest"), err)
}

func Test_questDomain_GetList(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.GetListQuestRequest
		wantLen int
		wantErr error
	}{
		{
			name:    "all quests",
			req:     &model.GetListQuestRequest{Limit: 50},
			wantLen: len(testutil.Quests),
		},
		{
			name:    "daily quests",
			req:     &model.GetListQuestRequest{Cadence: "daily", Limit: 50},
			wantLen: 5,
		},
		{
			name:    "active daily quests",
			req:     &model.GetListQuestRequest{Cadence: "daily", ActiveOnly: true},
			wantLen: 4,
		},
		{
			name:    "paged",
			req:     &model.GetListQuestRequest{Offset: 8, Limit: 5},
			wantLen: 1,
		},
		{
			name:    "invalid cadence",
			req:     &model.GetListQuestRequest{Cadence: "yearly"},
			wantErr: errorx.New(errorx.BadRequest, "Invalid cadence"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			testutil.CreateFixtureDb(ctx)

			resp, err := newMockQuestDomain(ctx).GetList(ctx, tt.req)
			if tt.wantErr != nil {
				require.Equal(t, tt.wantErr, err)
				return
			}

			require.NoError(t, err)
			require.Len(t, resp.Quests, tt.wantLen)
		})
	}
}

func Test_questDomain_IndexAll(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	d := newMockQuestDomain(ctx)
	require.NoError(t, d.IndexAll(ctx))

	resp, err := d.Search(ctx, &model.SearchQuestRequest{Q: "customs"})
	require.NoError(t, err)
	require.Len(t, resp.Quests, 1)
	require.Equal(t, testutil.DailyQuest3.ID, resp.Quests[0].ID)

	resp, err = d.Search(ctx, &model.SearchQuestRequest{Q: "nothingmatches"})
	require.NoError(t, err)
	require.Empty(t, resp.Quests)

	_, err = d.Search(ctx, &model.SearchQuestRequest{})
	require.Equal(t, errorx.New(errorx.BadRequest, "Require a query"), err)
}
