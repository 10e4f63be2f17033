package lab

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"hmis/internal/app/server/api/http/httperr"
	"hmis/internal/domain/lab"
)

type Handler struct {
	service    lab.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service lab.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.testsOp(), h.tests)
	huma.Register(api, h.createOrderOp(), h.createOrder)
	huma.Register(api, h.listOrdersOp(), h.listOrders)
	huma.Register(api, h.setResultOp(), h.setResult)
}

func (h *Handler) tests(ctx context.Context, _ *struct{}) (*testsOutput, error) {
	tests, err := h.service.Tests(ctx)
	if err != nil {
		return nil, h.fail("list lab tests", err)
	}
	return &testsOutput{Body: lab.NewTestViews(tests)}, nil
}

func (h *Handler) createOrder(ctx context.Context, input *createOrderInput) (*createOrderOutput, error) {
	var in lab.OrderInput
	if err := httperr.Decode(input.RawBody, &in); err != nil {
		return nil, err
	}

	id, err := h.service.CreateOrder(ctx, in)
	if err != nil {
		return nil, h.fail("create lab order", err)
	}

	out := &createOrderOutput{}
	out.Body.ID = id
	return out, nil
}

func (h *Handler) listOrders(ctx context.Context, input *listOrdersInput) (*ordersOutput, error) {
	lines, err := h.service.ListOrders(ctx, input.USN)
	if err != nil {
		return nil, h.fail("list lab orders", err)
	}
	return &ordersOutput{Body: lab.NewOrderLineViews(lines)}, nil
}

func (h *Handler) setResult(ctx context.Context, input *resultInput) (*resultOutput, error) {
	var in lab.ResultInput
	if len(input.RawBody) > 0 {
		if err := httperr.Decode(input.RawBody, &in); err != nil {
			return nil, err
		}
	}

	if err := h.service.SetResult(ctx, input.ItemID, in); err != nil {
		return nil, h.fail("set lab result", err)
	}

	out := &resultOutput{}
	out.Body.OK = true
	return out, nil
}

func (h *Handler) fail(op string, err error) error {
	switch {
	case errors.Is(err, lab.ErrRequiredFields):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, lab.ErrPatientNotFound),
		errors.Is(err, lab.ErrTestNotFound),
		errors.Is(err, lab.ErrItemNotFound):
		return huma.Error404NotFound(err.Error())
	}
	h.log.Error("failed to "+op, "error", err)
	return huma.Error500InternalServerError(err.Error())
}
