package intimation

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"hmis/internal/app/server/api/http/httperr"
	"hmis/internal/domain/intimation"
)

type Handler struct {
	service    intimation.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service intimation.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
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
	list, err := h.service.List(ctx, strings.TrimSpace(input.USN))
	if err != nil {
		h.log.Error("failed to list sick intimations", "error", err)
		return nil, huma.Error500InternalServerError(err.Error())
	}
	return &listOutput{Body: intimation.NewViews(list)}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	var in intimation.Input
	if err := httperr.Decode(input.RawBody, &in); err != nil {
		return nil, err
	}

	number, err := h.service.Create(ctx, in)
	switch {
	case err == nil:
		return &createOutput{Body: createResponse{OK: true, IntimationNumber: number}}, nil
	case errors.Is(err, intimation.ErrRequiredFields), errors.Is(err, intimation.ErrMissingFields):
		return nil, huma.Error400BadRequest(err.Error())
	}
	h.log.Error("failed to save sick intimation", "error", err)
	return nil, huma.Error500InternalServerError(err.Error())
}
