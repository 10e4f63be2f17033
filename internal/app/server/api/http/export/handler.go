package export

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"hmis/internal/domain/export"
)

const csvContentType = "text/csv; charset=utf-8"

type Handler struct {
	service    export.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service export.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

type kindInput struct {
	Kind string `path:"kind" doc:"patients, vitals, prescriptions or complete"`
}

type fileOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "export-csv",
		Method:      http.MethodGet,
		Path:        "/api/export/{kind}",
		Summary:     "Выгрузка в CSV",
		Tags:        []string{"export"},
		Middlewares: h.middleware,
	}, h.exportKind)

	huma.Register(api, huma.Operation{
		OperationID: "export-legacy-csv",
		Method:      http.MethodGet,
		Path:        "/export.csv",
		Summary:     "Плоская выгрузка пациентов с последними замерами и рецептами",
		Tags:        []string{"export"},
		Middlewares: h.middleware,
	}, h.exportLegacy)
}

func (h *Handler) exportKind(ctx context.Context, input *kindInput) (*fileOutput, error) {
	kind := export.Kind(input.Kind)
	if kind == export.KindLegacy {
		return nil, huma.Error404NotFound(export.ErrUnknownKind.Error())
	}
	return h.export(ctx, kind)
}

func (h *Handler) exportLegacy(ctx context.Context, _ *struct{}) (*fileOutput, error) {
	return h.export(ctx, export.KindLegacy)
}

func (h *Handler) export(ctx context.Context, kind export.Kind) (*fileOutput, error) {
	file, err := h.service.Export(ctx, kind)
	if err != nil {
		if errors.Is(err, export.ErrUnknownKind) {
			return nil, huma.Error404NotFound(err.Error())
		}
		h.log.Error("failed to build export", "kind", kind, "error", err)
		return nil, huma.Error500InternalServerError(err.Error())
	}

	return &fileOutput{
		ContentType:        csvContentType,
		ContentDisposition: "attachment; filename=" + file.Name,
		Body:               file.Body,
	}, nil
}
