package migration

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type Migrator func(context.Context) error

// Migrators are applied in version order. A version is never run twice.
var Migrators = map[string]Migrator{
	"0000": migrate0000,
	"0001": migrate0001,
}

// AutoMigrate creates every table with its latest schema. When this migrator
// is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Quest{},
		&entity.QuestAssignment{},
		&entity.QuestSlot{},
		&entity.QuestCompletion{},
		&entity.ChatterStats{},
		&entity.Rank{},
		&entity.ShopItem{},
		&entity.Purchase{},
		&entity.XPTransaction{},
		&entity.BananaTransaction{},
		&entity.Migration{},
	)
}

// Migrate runs every migrator which has not been recorded yet.
func Migrate(ctx context.Context) error {
	db := xcontext.DB(ctx)
	if err := db.AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	versions := make([]string, 0, len(Migrators))
	for version := range Migrators {
		versions = append(versions, version)
	}
	sort.Strings(versions)

	for _, version := range versions {
		err := db.Take(&entity.Migration{}, "version=?", version).Error
		if err == nil {
			continue
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		xcontext.Logger(ctx).Infof("Applying migration %s", version)
		if err := Migrators[version](ctx); err != nil {
			return fmt.Errorf("migration %s: %w", version, err)
		}

		if err := db.Create(&entity.Migration{Version: version}).Error; err != nil {
			return err
		}
	}

	return nil
}
