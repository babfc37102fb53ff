package domain

import (
	"context"
	"encoding/json"

	"github.com/creatorhq/backend/pkg/pubsub"
	"github.com/creatorhq/backend/pkg/xcontext"
)

// publishEvent logs and drops the event if it cannot be published.
func publishEvent(ctx context.Context, publisher pubsub.Publisher, topic, key string, event any) {
	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", topic, err)
		return
	}

	if err := publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(key), Msg: b}); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish %s event: %v", topic, err)
	}
}
