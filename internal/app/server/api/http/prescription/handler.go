package prescription

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"hmis/internal/app/server/api/http/httperr"
	"hmis/internal/domain/prescription"
)

type Handler struct {
	service    prescription.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service prescription.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.sheetOp(), h.sheet)
	huma.Register(api, h.addItemOp(), h.addItem)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	list, err := h.service.List(ctx, strings.TrimSpace(input.USN))
	if err != nil {
		return nil, h.fail("list prescriptions", err)
	}
	return &listOutput{Body: prescription.NewViews(list)}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*prescriptionOutput, error) {
	var in prescription.Input
	if err := httperr.Decode(input.RawBody, &in); err != nil {
		return nil, err
	}

	p, err := h.service.Create(ctx, in)
	if err != nil {
		return nil, h.fail("create prescription", err)
	}
	return &prescriptionOutput{Body: prescription.NewView(*p)}, nil
}

func (h *Handler) sheet(ctx context.Context, input *idInput) (*sheetOutput, error) {
	sheet, err := h.service.Sheet(ctx, input.ID)
	if err != nil {
		return nil, h.fail("load prescription sheet", err)
	}
	return &sheetOutput{Body: prescription.NewSheetView(*sheet)}, nil
}

func (h *Handler) addItem(ctx context.Context, input *addItemInput) (*itemOutput, error) {
	var in prescription.ItemInput
	if err := httperr.Decode(input.RawBody, &in); err != nil {
		return nil, err
	}

	item, err := h.service.AddItem(ctx, input.ID, in)
	if err != nil {
		return nil, h.fail("add prescription item", err)
	}
	return &itemOutput{Body: prescription.NewItemView(*item)}, nil
}

func (h *Handler) fail(op string, err error) error {
	switch {
	case errors.Is(err, prescription.ErrRequiredFields),
		errors.Is(err, prescription.ErrItemRequiredFields),
		errors.Is(err, prescription.ErrBadMedications):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, prescription.ErrPatientNotFound),
		errors.Is(err, prescription.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	}
	h.log.Error("failed to "+op, "error", err)
	return huma.Error500InternalServerError(err.Error())
}
