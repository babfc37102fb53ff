package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/creatorhq/backend/internal/common"
	"github.com/creatorhq/backend/internal/domain"
	"github.com/creatorhq/backend/pkg/kafka"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startSubscriber(*cli.Context) error {
	common.RegisterMetrics()

	cfg := xcontext.Configs(s.ctx).Kafka
	subscriber, err := kafka.NewSubscriber(
		cfg.GroupID,
		[]string{cfg.Addr},
		common.EventTopics,
		domain.NewEventHandler().Handle,
	)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		if err := subscriber.Stop(s.ctx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot stop subscriber: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Subscriber started on topics %v", common.EventTopics)
	return subscriber.Subscribe(ctx)
}
