package export

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hmis/internal/domain/export"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Export(ctx context.Context, kind export.Kind) (*export.File, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*export.File), args.Error(1)
}

func newTestAPI(t *testing.T, svc export.Servicer) humatest.TestAPI {
	config := huma.DefaultConfig("Test API", "1.0.0")
	config.CreateHooks = nil
	_, api := humatest.New(t, config)
	NewHandler(svc, slog.Default(), huma.Middlewares{}).SetupRoutes(api)
	return api
}

func TestHandler_ExportKind(t *testing.T) {
	svc := new(MockService)
	svc.On("Export", mock.Anything, export.KindPatients).Return(&export.File{
		Name: "patients.csv",
		Body: []byte("USN,Full Name\r\nP1,Asha Rao\r\n"),
	}, nil)
	svc.On("Export", mock.Anything, export.Kind("nope")).Return(nil, export.ErrUnknownKind)
	api := newTestAPI(t, svc)

	resp := api.Get("/api/export/patients")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=patients.csv", resp.Header().Get("Content-Disposition"))
	assert.Equal(t, "USN,Full Name\r\nP1,Asha Rao\r\n", resp.Body.String())

	resp = api.Get("/api/export/nope")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandler_ExportLegacy(t *testing.T) {
	svc := new(MockService)
	svc.On("Export", mock.Anything, export.KindLegacy).Return(&export.File{Name: "hmis-export.csv", Body: []byte("USN\r\n")}, nil)
	api := newTestAPI(t, svc)

	resp := api.Get("/export.csv")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "attachment; filename=hmis-export.csv", resp.Header().Get("Content-Disposition"))
}

func TestHandler_LegacyKindIsNotUnderAPI(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)

	_, err := h.exportKind(context.Background(), &kindInput{Kind: "legacy"})

	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.GetStatus())
	svc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
}
