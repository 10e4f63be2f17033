package lab

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hmis/internal/domain/lab"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Tests(ctx context.Context) ([]lab.Test, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lab.Test), args.Error(1)
}

func (m *MockService) CreateOrder(ctx context.Context, in lab.OrderInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockService) ListOrders(ctx context.Context, usn string) ([]lab.OrderLine, error) {
	args := m.Called(ctx, usn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]lab.OrderLine), args.Error(1)
}

func (m *MockService) SetResult(ctx context.Context, itemID int64, in lab.ResultInput) error {
	args := m.Called(ctx, itemID, in)
	return args.Error(0)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func TestHandler_Tests(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := context.Background()
	svc.On("Tests", ctx).Return([]lab.Test{{ID: 1, Code: "CBC", Name: "Complete Blood Count", IsActive: true}}, nil)

	out, err := h.tests(ctx, &struct{}{})

	require.NoError(t, err)
	require.Len(t, out.Body, 1)
	assert.Equal(t, 1, out.Body[0].IsActive)
}

func TestHandler_CreateOrder(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "created"},
		{name: "required fields", serviceErr: lab.ErrRequiredFields, wantStatus: http.StatusBadRequest},
		{name: "unknown patient", serviceErr: lab.ErrPatientNotFound, wantStatus: http.StatusNotFound},
		{name: "unknown test", serviceErr: lab.ErrTestNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			h := NewHandler(svc, slog.Default(), nil)
			ctx := context.Background()
			svc.On("CreateOrder", ctx, mock.Anything).Return(int64(21), tt.serviceErr)

			out, err := h.createOrder(ctx, &createOrderInput{RawBody: []byte(`{"usn":"P1","test_code":"CBC"}`)})

			if tt.wantStatus != 0 {
				assert.Equal(t, tt.wantStatus, statusOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(21), out.Body.ID)
		})
	}
}

func TestHandler_ListOrders(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := context.Background()
	svc.On("ListOrders", ctx, "P1").Return([]lab.OrderLine{
		{
			Order:      lab.Order{ID: 1, USN: "P1", Status: lab.StatusOrdered},
			ItemID:     3,
			Code:       "GLU",
			ItemStatus: lab.StatusOrdered,
		},
	}, nil)

	out, err := h.listOrders(ctx, &listOrdersInput{USN: "P1"})

	require.NoError(t, err)
	require.Len(t, out.Body, 1)
	assert.Equal(t, int64(3), out.Body[0].ItemID)
}

func TestHandler_SetResult(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := context.Background()

	svc.On("SetResult", ctx, int64(3), mock.MatchedBy(func(in lab.ResultInput) bool {
		return in.ResultValue.Value == "5.4"
	})).Return(nil)
	svc.On("SetResult", ctx, int64(99), mock.Anything).Return(lab.ErrItemNotFound)

	out, err := h.setResult(ctx, &resultInput{ItemID: 3, RawBody: []byte(`{"result_value":5.4}`)})
	require.NoError(t, err)
	assert.True(t, out.Body.OK)

	_, err = h.setResult(ctx, &resultInput{ItemID: 99, RawBody: []byte(`{"result_value":"1"}`)})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
