package migration_test

import (
	"testing"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/migration"
	"github.com/creatorhq/backend/pkg/testutil"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	ctx := testutil.MockContext()

	require.NoError(t, migration.Migrate(ctx))
	// The second run must be a no-op.
	require.NoError(t, migration.Migrate(ctx))

	var versions []entity.Migration
	require.NoError(t, xcontext.DB(ctx).Order("version").Find(&versions).Error)
	require.Len(t, versions, len(migration.Migrators))
	require.Equal(t, "0000", versions[0].Version)

	var ranks []entity.Rank
	require.NoError(t, xcontext.DB(ctx).Order("sort_order").Find(&ranks).Error)
	require.Len(t, ranks, 4)
	require.False(t, ranks[3].MaxXP.Valid)
}
