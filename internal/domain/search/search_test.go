package search

import (
	"testing"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestBleveIndex_Quest(t *testing.T) {
	ctx := testutil.MockContext()
	index := NewBleveIndex(ctx)
	defer index.Close()

	require.NoError(t, index.IndexQuest(&entity.Quest{
		Base:        entity.Base{ID: "q1"},
		Title:       "Sell three customs",
		Description: "Sell custom videos to three different fans",
	}))
	require.NoError(t, index.IndexQuest(&entity.Quest{
		Base:  entity.Base{ID: "q2"},
		Title: "Reply to every fan",
	}))

	ids, err := index.SearchQuest("customs", 0, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"q1"}, ids)

	// Reindexing replaces the old document.
	require.NoError(t, index.IndexQuest(&entity.Quest{
		Base:  entity.Base{ID: "q1"},
		Title: "Send mass messages",
	}))

	ids, err = index.SearchQuest("customs", 0, 10)
	require.NoError(t, err)
	require.Empty(t, ids)

	ids, err = index.SearchQuest("messages", 0, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"q1"}, ids)
}
