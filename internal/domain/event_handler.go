package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/creatorhq/backend/internal/common"
	"github.com/creatorhq/backend/internal/model"
	"github.com/creatorhq/backend/pkg/pubsub"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

// EventHandler consumes the gamification events and writes them to the
// structured log.
type EventHandler struct{}

func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// Handle matches pubsub.SubscribeHandler.
func (h *EventHandler) Handle(ctx context.Context, topic string, pack *pubsub.Pack, t time.Time) {
	var event any
	switch topic {
	case common.CompletionSubmittedTopic:
		event = &model.CompletionSubmittedEvent{}
	case common.CompletionReviewedTopic:
		event = &model.CompletionReviewedEvent{}
	case common.PurchaseCreatedTopic:
		event = &model.PurchaseCreatedEvent{}
	default:
		xcontext.Logger(ctx).Warnf("Unknown topic %s", topic)
		return
	}

	if err := decodeEvent(pack.Msg, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode %s event %s: %v", topic, pack.Key, err)
		return
	}

	common.PromCounters[common.EventConsumedTotal].WithLabelValues(topic).Inc()

	switch e := event.(type) {
	case *model.CompletionSubmittedEvent:
		xcontext.Logger(ctx).Infof("Completion %s of quest %s submitted by %s at %s",
			e.CompletionID, e.QuestID, e.UserID, t.Format(time.RFC3339))
	case *model.CompletionReviewedEvent:
		xcontext.Logger(ctx).Infof("Completion %s of %s is %s, earned %d xp and %d bananas",
			e.CompletionID, e.UserID, e.Status, e.XPEarned, e.BananasEarned)
	case *model.PurchaseCreatedEvent:
		xcontext.Logger(ctx).Infof("Purchase %s of item %s by %s, spent %d bananas",
			e.PurchaseID, e.ShopItemID, e.UserID, e.BananaSpent)
	}
}

func decodeEvent(msg []byte, v any) error {
	m := map[string]any{}
	if err := json.Unmarshal(msg, &m); err != nil {
		return err
	}

	return mapstructure.Decode(m, v)
}
