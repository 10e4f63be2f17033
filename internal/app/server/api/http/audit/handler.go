package audit

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"hmis/internal/domain/audit"
)

type Handler struct {
	service    audit.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service audit.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

type listInput struct {
	Limit int `query:"limit" doc:"Max entries, 50 by default, at most 500"`
}

type listOutput struct {
	Body []audit.Entry
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "audit-logs-list",
		Method:      http.MethodGet,
		Path:        "/api/audit-logs",
		Summary:     "Журнал аудита, новые первыми",
		Tags:        []string{"audit"},
		Middlewares: h.middleware,
	}, h.list)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	entries, err := h.service.List(ctx, input.Limit)
	if err != nil {
		h.log.Error("failed to list audit entries", "error", err)
		return nil, huma.Error500InternalServerError(err.Error())
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	return &listOutput{Body: entries}, nil
}
