package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"hmis/internal/utils/clock"
)

type Handler struct {
	log        *slog.Logger
	now        clock.Func
	middleware huma.Middlewares
}

func NewHandler(log *slog.Logger, now clock.Func, middleware huma.Middlewares) *Handler {
	if now == nil {
		now = clock.UTC
	}
	return &Handler{
		log:        log,
		now:        now,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
	huma.Register(api, h.rootHealthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(_ context.Context, _ *struct{}) (*Output, error) {
	h.log.Debug("health check request received")

	return &Output{
		Body: Response{
			Status:    "ok",
			Timestamp: clock.Format(h.now()),
		},
	}, nil
}
