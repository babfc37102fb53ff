package questslot

import (
	"testing"
	"time"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func quests(ids ...string) []entity.Quest {
	result := []entity.Quest{}
	for _, id := range ids {
		result = append(result, entity.Quest{Base: entity.Base{ID: id}})
	}
	return result
}

func first(int) int { return 0 }

func TestPickDistinct(t *testing.T) {
	tests := []struct {
		name string
		pool []entity.Quest
		used []string
		n    int
		want []string
	}{
		{
			name: "empty pool",
			pool: nil,
			n:    3,
			want: nil,
		},
		{
			name: "distinct",
			pool: quests("a", "b", "c", "d"),
			n:    3,
			want: []string{"a", "b", "c"},
		},
		{
			name: "avoid used quests",
			pool: quests("a", "b", "c", "d"),
			used: []string{"a", "c"},
			n:    2,
			want: []string{"b", "d"},
		},
		{
			name: "repeat when the pool is too small",
			pool: quests("a", "b"),
			n:    3,
			want: []string{"a", "b", "a"},
		},
		{
			name: "repeat used quests when nothing else is left",
			pool: quests("a"),
			used: []string{"a"},
			n:    1,
			want: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, PickDistinct(tt.pool, tt.used, tt.n, first))
		})
	}
}

func TestRerollPool(t *testing.T) {
	tests := []struct {
		name    string
		pool    []entity.Quest
		current string
		bound   []string
		want    []string
	}{
		{
			name:    "skip bound quests",
			pool:    quests("a", "b", "c", "d"),
			current: "a",
			bound:   []string{"a", "b", "c"},
			want:    []string{"d"},
		},
		{
			name:    "fallback to every quest but the current one",
			pool:    quests("a", "b", "c"),
			current: "a",
			bound:   []string{"a", "b", "c"},
			want:    []string{"b", "c"},
		},
		{
			name:    "nothing left",
			pool:    quests("a"),
			current: "a",
			bound:   []string{"a"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, q := range RerollPool(tt.pool, tt.current, tt.bound) {
				got = append(got, q.ID)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodOf(t *testing.T) {
	// Thursday.
	now := time.Date(2024, time.February, 29, 15, 0, 0, 0, time.UTC)

	require.Equal(t, Period{Anchor: "2024-02-29", Start: "2024-02-29", End: "2024-02-29"},
		PeriodOf(entity.CadenceDaily, now))
	require.Equal(t, Period{Anchor: "2024-02-26", Start: "2024-02-26", End: "2024-03-03"},
		PeriodOf(entity.CadenceWeekly, now))
	require.Equal(t, Period{Anchor: "2024-02-01", Start: "2024-02-01", End: "2024-02-29"},
		PeriodOf(entity.CadenceMonthly, now))
}

func TestMissingSlotNumbers(t *testing.T) {
	slots := []entity.QuestSlot{{SlotNumber: 2}}
	require.Equal(t, []int{1, 3}, MissingSlotNumbers(DailySlotNumbers(3), slots))
	require.Nil(t, MissingSlotNumbers([]int{2}, slots))
	require.Equal(t, entity.CadenceWeekly, CadenceOf(SlotNumber(entity.CadenceWeekly)))
	require.Equal(t, entity.CadenceMonthly, CadenceOf(SlotNumber(entity.CadenceMonthly)))
}
