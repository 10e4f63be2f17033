package appointment

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"hmis/internal/app/server/api/http/httperr"
	"hmis/internal/domain/appointment"
)

type Handler struct {
	service    appointment.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service appointment.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	list, err := h.service.List(ctx, input.USN)
	if err != nil {
		return nil, h.fail("list appointments", err)
	}
	return &listOutput{Body: appointment.NewViews(list)}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	var in appointment.Input
	if err := httperr.Decode(input.RawBody, &in); err != nil {
		return nil, err
	}

	id, err := h.service.Create(ctx, in)
	if err != nil {
		return nil, h.fail("create appointment", err)
	}

	out := &createOutput{}
	out.Body.ID = id
	return out, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*okOutput, error) {
	var in appointment.Input
	if len(input.RawBody) > 0 {
		if err := httperr.Decode(input.RawBody, &in); err != nil {
			return nil, err
		}
	}

	if err := h.service.Update(ctx, input.ID, in); err != nil {
		return nil, h.fail("update appointment", err)
	}
	return newOK(), nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*okOutput, error) {
	if err := h.service.Delete(ctx, input.ID); err != nil {
		return nil, h.fail("delete appointment", err)
	}
	return newOK(), nil
}

func (h *Handler) fail(op string, err error) error {
	switch {
	case errors.Is(err, appointment.ErrRequiredFields):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, appointment.ErrPatientNotFound), errors.Is(err, appointment.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	}
	h.log.Error("failed to "+op, "error", err)
	return huma.Error500InternalServerError(err.Error())
}
