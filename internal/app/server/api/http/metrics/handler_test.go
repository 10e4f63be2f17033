package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hmis/internal/domain/metrics"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Dashboard(ctx context.Context) (metrics.Dashboard, error) {
	args := m.Called(ctx)
	return args.Get(0).(metrics.Dashboard), args.Error(1)
}

func TestHandler_Dashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		svc := new(MockService)
		want := metrics.Dashboard{Patients: 12, AppointmentsToday: 3, LabsPending: 2, VitalsToday: 5}
		svc.On("Dashboard", ctx).Return(want, nil)

		out, err := NewHandler(svc, slog.Default(), nil).dashboard(ctx, &struct{}{})

		require.NoError(t, err)
		assert.Equal(t, want, out.Body)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Dashboard", ctx).Return(metrics.Dashboard{}, errors.New("no such table: vitals"))

		_, err := NewHandler(svc, slog.Default(), nil).dashboard(ctx, &struct{}{})

		var se huma.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 500, se.GetStatus())
	})
}
