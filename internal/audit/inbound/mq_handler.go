package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/gotrust/internal/audit/usecase"
	"github.com/shandysiswandi/gotrust/internal/pkg/instrument"
	"github.com/shandysiswandi/gotrust/internal/pkg/messaging"
	"github.com/shandysiswandi/gotrust/internal/pkg/uid"
	"github.com/shandysiswandi/gotrust/internal/pkg/valueobject"
	"github.com/shandysiswandi/gotrust/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) UserRegisteredAudit(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("audit.inbound.mq").Start(ctx, "UserRegisteredAudit")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: user registered audit", "msg_body", string(body))

	var payload event.UserRegisteredMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of user registered audit", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.Record(ctx, usecase.RecordInput{
		Actor:    payload.UserID,
		Action:   "user.registered",
		Resource: "user:" + payload.UserID,
		Metadata: valueobject.JSONMap{"email": payload.Email},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to record user registered audit", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) SessionCreatedAudit(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("audit.inbound.mq").Start(ctx, "SessionCreatedAudit")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: session created audit", "msg_body", string(body))

	var payload event.SessionCreatedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of session created audit", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.Record(ctx, usecase.RecordInput{
		Actor:    payload.UserID,
		Action:   "session.created",
		Resource: "session:" + payload.SessionID,
		Metadata: valueobject.JSONMap{
			"provider":   payload.Provider,
			"ip":         payload.IP,
			"user_agent": payload.UserAgent,
		},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to record session created audit", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) TokenCreatedAudit(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("audit.inbound.mq").Start(ctx, "TokenCreatedAudit")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: token created audit", "msg_body", string(body))

	var payload event.TokenCreatedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of token created audit", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.Record(ctx, usecase.RecordInput{
		Actor:    payload.UserID,
		Action:   "token.created",
		Resource: "token:" + payload.TokenID,
		Metadata: valueobject.JSONMap{"type": payload.Type},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to record token created audit", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
