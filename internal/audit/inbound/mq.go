package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/gotrust/internal/pkg/config"
	"github.com/shandysiswandi/gotrust/internal/pkg/goroutine"
	"github.com/shandysiswandi/gotrust/internal/pkg/instrument"
	"github.com/shandysiswandi/gotrust/internal/pkg/messaging"
	"github.com/shandysiswandi/gotrust/internal/pkg/uid"
	"github.com/shandysiswandi/gotrust/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHanlder := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.audit.consumer_names")

	var consumers = []struct {
		name               string
		topic              string // destination where publisher sent message
		nsqConsumerName    string // for nsq
		natsConsumerName   string // for nats
		kafkaConsumerName  string // for kafka
		pubsubConsumerName string // for google pubusb
		handler            messaging.Handler
	}{
		{
			name:               event.UserRegisteredDestinationConsumerAudit,
			topic:              event.UserRegisteredDestination,
			nsqConsumerName:    event.UserRegisteredDestinationConsumerAudit,
			natsConsumerName:   event.UserRegisteredDestinationConsumerAudit,
			kafkaConsumerName:  event.UserRegisteredDestinationConsumerAudit,
			pubsubConsumerName: event.UserRegisteredDestinationConsumerAudit,
			handler:            mqHanlder.UserRegisteredAudit,
		},
		{
			name:               event.SessionCreatedDestinationConsumerAudit,
			topic:              event.SessionCreatedDestination,
			nsqConsumerName:    event.SessionCreatedDestinationConsumerAudit,
			natsConsumerName:   event.SessionCreatedDestinationConsumerAudit,
			kafkaConsumerName:  event.SessionCreatedDestinationConsumerAudit,
			pubsubConsumerName: event.SessionCreatedDestinationConsumerAudit,
			handler:            mqHanlder.SessionCreatedAudit,
		},
		{
			name:               event.TokenCreatedDestinationConsumerAudit,
			topic:              event.TokenCreatedDestination,
			nsqConsumerName:    event.TokenCreatedDestinationConsumerAudit,
			natsConsumerName:   event.TokenCreatedDestinationConsumerAudit,
			kafkaConsumerName:  event.TokenCreatedDestinationConsumerAudit,
			pubsubConsumerName: event.TokenCreatedDestinationConsumerAudit,
			handler:            mqHanlder.TokenCreatedAudit,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.nsqConsumerName),
					messaging.WithQueueGroup(consumer.natsConsumerName),
					messaging.WithGroup(consumer.kafkaConsumerName),
					messaging.WithSubscription(consumer.pubsubConsumerName),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
					messaging.WithMaxInFlight(10),
				)
			})
		}
	}
}
