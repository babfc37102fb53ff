package questslot

import (
	"time"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/dateutil"
)

const (
	// Daily slots are numbered from 1 to the configured daily slot count.
	FirstDailySlotNumber = 1
	WeeklySlotNumber     = 100
	MonthlySlotNumber    = 200

	DefaultDailySlotCount = 3
)

// RandIntn returns a uniform random value in [0, n).
type RandIntn func(n int) int

// Period is the time window a slot belongs to. Anchor is the value stored in
// the slot's date column.
type Period struct {
	Anchor string
	Start  string
	End    string
}

// PeriodOf returns the period of the cadence containing now. Now must already
// be in the configured timezone.
func PeriodOf(cadence entity.QuestCadence, now time.Time) Period {
	switch cadence {
	case entity.CadenceWeekly:
		start := dateutil.Date(dateutil.BeginningOfWeek(now))
		return Period{Anchor: start, Start: start, End: dateutil.Date(dateutil.EndOfWeek(now))}
	case entity.CadenceMonthly:
		start := dateutil.Date(dateutil.BeginningOfMonth(now))
		return Period{Anchor: start, Start: start, End: dateutil.Date(dateutil.EndOfMonth(now))}
	default:
		today := dateutil.Date(now)
		return Period{Anchor: today, Start: today, End: today}
	}
}

// SlotNumber returns the only slot number of a weekly or monthly period.
func SlotNumber(cadence entity.QuestCadence) int {
	switch cadence {
	case entity.CadenceWeekly:
		return WeeklySlotNumber
	case entity.CadenceMonthly:
		return MonthlySlotNumber
	default:
		return FirstDailySlotNumber
	}
}

// CadenceOf is the reverse of SlotNumber.
func CadenceOf(slotNumber int) entity.QuestCadence {
	switch slotNumber {
	case WeeklySlotNumber:
		return entity.CadenceWeekly
	case MonthlySlotNumber:
		return entity.CadenceMonthly
	default:
		return entity.CadenceDaily
	}
}

func DailySlotNumbers(count int) []int {
	numbers := make([]int, 0, count)
	for i := 0; i < count; i++ {
		numbers = append(numbers, FirstDailySlotNumber+i)
	}

	return numbers
}

// MissingSlotNumbers returns the numbers which have no slot yet, in ascending
// order.
func MissingSlotNumbers(numbers []int, slots []entity.QuestSlot) []int {
	filled := map[int]bool{}
	for _, s := range slots {
		filled[s.SlotNumber] = true
	}

	var missing []int
	for _, n := range numbers {
		if !filled[n] {
			missing = append(missing, n)
		}
	}

	return missing
}
