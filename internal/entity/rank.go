package entity

import "database/sql"

// Rank covers the xp range [MinXP, MaxXP]. A null MaxXP is open-ended.
type Rank struct {
	Base

	Name       string
	MinXP      int64
	MaxXP      sql.NullInt64
	BadgeColor string
	SortOrder  int
}

func (r Rank) Contains(xp int64) bool {
	if xp < r.MinXP {
		return false
	}

	return !r.MaxXP.Valid || xp <= r.MaxXP.Int64
}
