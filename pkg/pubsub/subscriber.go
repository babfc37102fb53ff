package pubsub

import (
	"context"
	"time"
)

type SubscribeHandler func(context.Context, string, *Pack, time.Time)

type Subscriber interface {
	// Subscribe blocks and delivers messages to the handler until ctx is done.
	Subscribe(ctx context.Context) error
	Stop(ctx context.Context) error
}
