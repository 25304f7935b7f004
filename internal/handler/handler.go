package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/repository"
	"github.com/dentalops/dental-admin-api/pkg/logger"
)

// BaseHandler carries the pieces every resource handler needs: the
// outbox for change events and a logger. Event emission is best
// effort; a failed emit never fails the request that caused it.
type BaseHandler struct {
	OutboxRepo repository.OutboxRepository
	Logger     *logger.Logger
}

func NewBaseHandler(outboxRepo repository.OutboxRepository, log *logger.Logger) *BaseHandler {
	return &BaseHandler{OutboxRepo: outboxRepo, Logger: log}
}

// EmitEvent records a change event in the outbox for the worker to
// publish.
func (h *BaseHandler) EmitEvent(ctx context.Context, eventType string, payload interface{}) {
	if h.OutboxRepo == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		h.Logger.Error(err, "failed to marshal event payload", "event_type", eventType)
		return
	}
	event := &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   data,
		Status:    model.OutboxStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.OutboxRepo.Create(ctx, event); err != nil {
		h.Logger.Error(err, "failed to create outbox event", "event_type", eventType)
	}
}
