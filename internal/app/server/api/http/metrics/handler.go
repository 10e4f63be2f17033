package metrics

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"hmis/internal/domain/metrics"
)

type Handler struct {
	service    metrics.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service metrics.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

type dashboardOutput struct {
	Body metrics.Dashboard
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "metrics-dashboard",
		Method:      http.MethodGet,
		Path:        "/api/metrics",
		Summary:     "Показатели за сегодня",
		Tags:        []string{"metrics"},
		Middlewares: h.middleware,
	}, h.dashboard)
}

func (h *Handler) dashboard(ctx context.Context, _ *struct{}) (*dashboardOutput, error) {
	d, err := h.service.Dashboard(ctx)
	if err != nil {
		h.log.Error("failed to build dashboard", "error", err)
		return nil, huma.Error500InternalServerError(err.Error())
	}
	return &dashboardOutput{Body: d}, nil
}
