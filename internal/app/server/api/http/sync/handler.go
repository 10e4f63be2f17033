package sync

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"hmis/internal/domain/sync"
)

type Handler struct {
	service    sync.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service sync.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.statusOp(), h.status)
	huma.Register(api, h.legacyStatusOp(), h.status)
	huma.Register(api, h.reconcileOp(), h.reconcile)
	huma.Register(api, h.legacyReconcileOp(), h.reconcile)
}

func (h *Handler) reconcile(ctx context.Context, input *batchInput) (*batchOutput, error) {
	entity, err := sync.ParseEntity(input.Entity)
	if err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}

	report, err := h.service.Reconcile(ctx, entity, input.RawBody)
	if err != nil {
		if errors.Is(err, sync.ErrNotArray) {
			return nil, huma.Error400BadRequest(sync.NotArrayMessage(entity))
		}
		h.log.Error("sync batch failed", "entity", entity, "error", err)
		return nil, huma.Error500InternalServerError(err.Error())
	}

	return &batchOutput{Body: sync.NewBatchResponse(report)}, nil
}

func (h *Handler) status(ctx context.Context, _ *struct{}) (*statusOutput, error) {
	st, err := h.service.Status(ctx)
	if err != nil {
		h.log.Error("failed to get sync status", "error", err)
		return nil, huma.Error500InternalServerError(err.Error())
	}
	return &statusOutput{Body: sync.NewStatusResponse(st)}, nil
}
