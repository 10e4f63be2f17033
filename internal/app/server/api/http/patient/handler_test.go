package patient

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hmis/internal/domain/patient"
	"hmis/internal/domain/vital"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context) ([]patient.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]patient.Patient), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, in patient.Input) (*patient.Patient, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patient.Patient), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, usn string, in patient.Input) (*patient.Patient, error) {
	args := m.Called(ctx, usn, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patient.Patient), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, usn string) (bool, error) {
	args := m.Called(ctx, usn)
	return args.Bool(0), args.Error(1)
}

func (m *MockService) Search(ctx context.Context, q string) (*patient.Chart, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*patient.Chart), args.Error(1)
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, status, se.GetStatus())
}

var asha = patient.Patient{
	USN:      "1NH21CS001",
	FullName: "Asha Rao",
	Age:      20,
	Gender:   "F",
	Contact:  "9845000001",
	Address:  "Hostel A",
}

func TestHandler_List(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := context.Background()
	svc.On("List", ctx).Return([]patient.Patient{asha}, nil)

	out, err := h.list(ctx, &struct{}{})

	require.NoError(t, err)
	require.Len(t, out.Body, 1)
	assert.Equal(t, "Asha Rao", out.Body[0].FullName)
	assert.Equal(t, asha.Contact, out.Body[0].Phone)
	assert.Equal(t, patient.SurrogateID(asha.USN), out.Body[0].ID)
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{name: "created", body: `{"usn":"1NH21CS001","fullName":"Asha Rao","age":"20","gender":"F"}`},
		{name: "invalid json", body: `{"usn":`, wantStatus: http.StatusBadRequest},
		{name: "required fields", body: `{"usn":"1NH21CS001"}`, serviceErr: patient.ErrRequiredFields, wantStatus: http.StatusBadRequest},
		{name: "age not a number", body: `{"usn":"1NH21CS001","age":"twenty"}`, serviceErr: patient.ErrAgeNotNumber, wantStatus: http.StatusBadRequest},
		{name: "store failure", body: `{"usn":"1NH21CS001"}`, serviceErr: errors.New("disk I/O error"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			svc := new(MockService)
			h := NewHandler(svc, slog.Default(), nil)
			ctx := context.Background()
			if tt.serviceErr != nil {
				svc.On("Create", ctx, mock.Anything).Return(nil, tt.serviceErr)
			} else {
				svc.On("Create", ctx, mock.Anything).Return(&asha, nil)
			}

			// Act
			out, err := h.create(ctx, &writeInput{RawBody: []byte(tt.body)})

			// Assert
			if tt.wantStatus != 0 {
				requireStatus(t, err, tt.wantStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, asha.USN, out.Body.USN)
		})
	}

	t.Run("invalid json does not reach the service", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)

		_, err := h.create(context.Background(), &writeInput{RawBody: []byte(`[`)})

		requireStatus(t, err, http.StatusBadRequest)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestHandler_Update(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := context.Background()

	svc.On("Update", ctx, "1NH21CS001", mock.Anything).Return(&asha, nil)
	svc.On("Update", ctx, "NOPE", mock.Anything).Return(nil, patient.ErrNotFound)
	svc.On("Update", ctx, "PART", mock.Anything).Return(nil, patient.ErrAllFields)

	out, err := h.update(ctx, &updateInput{USN: "1NH21CS001", RawBody: []byte(`{}`)})
	require.NoError(t, err)
	assert.Equal(t, "Hostel A", out.Body.Address)

	_, err = h.update(ctx, &updateInput{USN: "NOPE", RawBody: []byte(`{}`)})
	requireStatus(t, err, http.StatusNotFound)

	_, err = h.update(ctx, &updateInput{USN: "PART", RawBody: []byte(`{}`)})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestHandler_Delete(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := context.Background()

	svc.On("Delete", ctx, "1NH21CS001").Return(true, nil)
	svc.On("Delete", ctx, "GONE").Return(false, nil)

	out, err := h.delete(ctx, &usnInput{USN: "1NH21CS001"})
	require.NoError(t, err)
	assert.Equal(t, deleteResponse{OK: true, Deleted: true}, out.Body)

	out, err = h.delete(ctx, &usnInput{USN: "GONE"})
	require.NoError(t, err)
	assert.Equal(t, deleteResponse{OK: true, Deleted: false}, out.Body)
}

func TestHandler_Search(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := context.Background()

	chart := &patient.Chart{
		Patient: asha,
		Vitals:  []vital.Vital{{ID: 1, USN: asha.USN, Weight: 56, Height: 160}},
	}
	svc.On("Search", ctx, "9845000001").Return(chart, nil)
	svc.On("Search", ctx, "").Return(nil, patient.ErrEmptyQuery)
	svc.On("Search", ctx, "000").Return(nil, patient.ErrNotFound)

	out, err := h.search(ctx, &searchInput{Q: "9845000001"})
	require.NoError(t, err)
	assert.Equal(t, asha.USN, out.Body.Patient.USN)
	assert.Len(t, out.Body.Vitals, 1)
	assert.NotNil(t, out.Body.Prescriptions)
	assert.Empty(t, out.Body.Prescriptions)

	_, err = h.search(ctx, &searchInput{})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = h.search(ctx, &searchInput{Q: "000"})
	requireStatus(t, err, http.StatusNotFound)
}
