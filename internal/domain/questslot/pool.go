package questslot

import (
	"github.com/creatorhq/backend/internal/entity"
	"golang.org/x/exp/slices"
)

// PickDistinct picks n quest ids from pool. Quests in used and quests picked
// before are avoided as long as the pool has other candidates, after that
// they may repeat. It returns nil if the pool is empty.
func PickDistinct(pool []entity.Quest, used []string, n int, randIntn RandIntn) []string {
	if len(pool) == 0 || n <= 0 {
		return nil
	}

	taken := slices.Clone(used)
	result := make([]string, 0, n)
	for len(result) < n {
		candidates := Exclude(pool, taken...)
		if len(candidates) == 0 {
			candidates = pool
		}

		picked := candidates[randIntn(len(candidates))].ID
		result = append(result, picked)
		taken = append(taken, picked)
	}

	return result
}

// RerollPool returns the candidates to replace currentQuestID. Quests bound
// to the other slots of the period are skipped unless nothing else is left,
// in which case only the current quest is skipped.
func RerollPool(pool []entity.Quest, currentQuestID string, boundQuestIDs []string) []entity.Quest {
	candidates := Exclude(pool, append(boundQuestIDs, currentQuestID)...)
	if len(candidates) > 0 {
		return candidates
	}

	return Exclude(pool, currentQuestID)
}

func Exclude(pool []entity.Quest, questIDs ...string) []entity.Quest {
	result := make([]entity.Quest, 0, len(pool))
	for _, q := range pool {
		if !slices.Contains(questIDs, q.ID) {
			result = append(result, q)
		}
	}

	return result
}
