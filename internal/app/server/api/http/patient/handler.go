package patient

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"hmis/internal/app/server/api/http/httperr"
	"hmis/internal/domain/patient"
)

type Handler struct {
	service    patient.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service patient.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.searchOp(), h.search)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	patients, err := h.service.List(ctx)
	if err != nil {
		return nil, h.fail("list patients", err)
	}
	return &listOutput{Body: patient.NewViews(patients)}, nil
}

func (h *Handler) create(ctx context.Context, input *writeInput) (*patientOutput, error) {
	var in patient.Input
	if err := httperr.Decode(input.RawBody, &in); err != nil {
		return nil, err
	}

	p, err := h.service.Create(ctx, in)
	if err != nil {
		return nil, h.fail("create patient", err)
	}
	return &patientOutput{Body: patient.NewView(*p)}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*patientOutput, error) {
	var in patient.Input
	if err := httperr.Decode(input.RawBody, &in); err != nil {
		return nil, err
	}

	p, err := h.service.Update(ctx, input.USN, in)
	if err != nil {
		return nil, h.fail("update patient", err)
	}
	return &patientOutput{Body: patient.NewView(*p)}, nil
}

func (h *Handler) delete(ctx context.Context, input *usnInput) (*deleteOutput, error) {
	deleted, err := h.service.Delete(ctx, input.USN)
	if err != nil {
		return nil, h.fail("delete patient", err)
	}
	return &deleteOutput{Body: deleteResponse{OK: true, Deleted: deleted}}, nil
}

func (h *Handler) search(ctx context.Context, input *searchInput) (*chartOutput, error) {
	chart, err := h.service.Search(ctx, input.Q)
	if err != nil {
		return nil, h.fail("search patient", err)
	}
	return &chartOutput{Body: patient.NewChartView(*chart)}, nil
}

func (h *Handler) fail(op string, err error) error {
	switch {
	case errors.Is(err, patient.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, patient.ErrRequiredFields),
		errors.Is(err, patient.ErrAllFields),
		errors.Is(err, patient.ErrAgeNotNumber),
		errors.Is(err, patient.ErrEmptyQuery),
		errors.Is(err, patient.ErrUSNRequired):
		return huma.Error400BadRequest(err.Error())
	}
	h.log.Error("failed to "+op, "error", err)
	return huma.Error500InternalServerError(err.Error())
}
