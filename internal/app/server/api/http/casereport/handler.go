package casereport

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"hmis/internal/app/server/api/http/httperr"
	"hmis/internal/domain/casereport"
)

type Handler struct {
	service    casereport.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service casereport.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	reports, err := h.service.List(ctx, strings.TrimSpace(input.USN))
	if err != nil {
		h.log.Error("failed to list case reports", "error", err)
		return nil, huma.Error500InternalServerError(err.Error())
	}
	return &listOutput{Body: casereport.NewViews(reports)}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	var in casereport.Input
	if err := httperr.Decode(input.RawBody, &in); err != nil {
		return nil, err
	}

	number, err := h.service.Create(ctx, in)
	if err != nil {
		if errors.Is(err, casereport.ErrRequiredFields) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error("failed to save case report", "error", err)
		return nil, huma.Error500InternalServerError(err.Error())
	}
	return &createOutput{Body: createResponse{OK: true, ReportNumber: number}}, nil
}
