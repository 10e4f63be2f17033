package vital

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"hmis/internal/app/server/api/http/httperr"
	"hmis/internal/domain/vital"
)

type Handler struct {
	service    vital.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service vital.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
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
	vitals, err := h.service.List(ctx, strings.TrimSpace(input.USN))
	if err != nil {
		h.log.Error("failed to list vitals", "error", err)
		return nil, huma.Error500InternalServerError(err.Error())
	}
	return &listOutput{Body: vital.NewViews(vitals)}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*vitalOutput, error) {
	var in vital.Input
	if err := httperr.Decode(input.RawBody, &in); err != nil {
		return nil, err
	}

	v, err := h.service.Create(ctx, in)
	switch {
	case err == nil:
		return &vitalOutput{Body: vital.NewView(*v)}, nil
	case errors.Is(err, vital.ErrMissingFields), errors.Is(err, vital.ErrInvalidNumeric):
		return nil, huma.Error400BadRequest(err.Error())
	case errors.Is(err, vital.ErrPatientNotFound):
		return nil, huma.Error404NotFound(err.Error())
	}
	h.log.Error("failed to create vitals", "error", err)
	return nil, huma.Error500InternalServerError(err.Error())
}
