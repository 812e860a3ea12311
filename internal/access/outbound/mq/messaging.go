package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/gotrust/internal/access/usecase"
	"github.com/shandysiswandi/gotrust/internal/pkg/instrument"
	"github.com/shandysiswandi/gotrust/internal/pkg/messaging"
	"github.com/shandysiswandi/gotrust/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) publish(ctx context.Context, spanName, destination string, payload any) error {
	ctx, span := m.ins.Tracer("access.outbound.mq").Start(ctx, spanName)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishUserRegistered(ctx context.Context, msg usecase.UserRegisteredEvent) error {
	return m.publish(ctx, "PublishUserRegistered", event.UserRegisteredDestination, event.UserRegisteredMessage{
		UserID:            msg.UserID,
		Email:             msg.Email,
		VerificationToken: msg.VerificationToken,
	})
}

func (m *Messaging) PublishSessionCreated(ctx context.Context, msg usecase.SessionCreatedEvent) error {
	return m.publish(ctx, "PublishSessionCreated", event.SessionCreatedDestination, event.SessionCreatedMessage{
		UserID:    msg.UserID,
		SessionID: msg.SessionID,
		Provider:  msg.Provider,
		IP:        msg.IP,
		UserAgent: msg.UserAgent,
	})
}

func (m *Messaging) PublishTokenCreated(ctx context.Context, msg usecase.TokenCreatedEvent) error {
	return m.publish(ctx, "PublishTokenCreated", event.TokenCreatedDestination, event.TokenCreatedMessage{
		UserID:  msg.UserID,
		TokenID: msg.TokenID,
		Type:    msg.Type,
	})
}
