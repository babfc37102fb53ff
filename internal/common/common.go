package common

import (
	"context"

	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/pkg/math"
)

const (
	CompletionSubmittedTopic = "completion_submitted"
	CompletionReviewedTopic  = "completion_reviewed"
	PurchaseCreatedTopic     = "purchase_created"
)

var EventTopics = []string{CompletionSubmittedTopic, CompletionReviewedTopic, PurchaseCreatedTopic}

// Limit returns the default page size for non-positive limits and clamps
// the others to the configured maximum.
func Limit(ctx context.Context, limit int) int {
	cfg := xcontext.Configs(ctx).ApiServer
	if limit <= 0 {
		return cfg.DefaultLimit
	}

	return math.MinInt(limit, cfg.MaxLimit)
}

func Offset(offset int) int {
	return math.MaxInt(offset, 0)
}
