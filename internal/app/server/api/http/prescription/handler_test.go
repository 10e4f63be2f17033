package prescription

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hmis/internal/domain/prescription"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, usn string) ([]prescription.Prescription, error) {
	args := m.Called(ctx, usn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]prescription.Prescription), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, in prescription.Input) (*prescription.Prescription, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescription.Prescription), args.Error(1)
}

func (m *MockService) AddItem(ctx context.Context, prescriptionID int64, in prescription.ItemInput) (*prescription.Item, error) {
	args := m.Called(ctx, prescriptionID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescription.Item), args.Error(1)
}

func (m *MockService) Sheet(ctx context.Context, id int64) (*prescription.Sheet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prescription.Sheet), args.Error(1)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	return se.GetStatus()
}

func TestHandler_List(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := context.Background()
	svc.On("List", ctx, "").Return([]prescription.Prescription{{ID: 1, USN: "P1", Diagnosis: "Cold"}}, nil)

	out, err := h.list(ctx, &listInput{})

	require.NoError(t, err)
	require.Len(t, out.Body, 1)
	assert.NotNil(t, out.Body[0].Medications)
	assert.Empty(t, out.Body[0].Medications)
}

func TestHandler_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)
		svc.On("Create", ctx, mock.MatchedBy(func(in prescription.Input) bool {
			return in.USN.Value == "P1" && len(in.Medications) == 1
		})).Return(&prescription.Prescription{
			ID:          3,
			USN:         "P1",
			Diagnosis:   "Fever",
			Medications: []prescription.Medication{{Name: "Paracetamol"}},
			Status:      prescription.DefaultStatus,
		}, nil)

		out, err := h.create(ctx, &createInput{RawBody: []byte(`{"usn":"P1","diagnosis":"Fever","medications":["Paracetamol"]}`)})

		require.NoError(t, err)
		assert.Equal(t, int64(3), out.Body.ID)
		assert.Equal(t, "Paracetamol", out.Body.Medications[0].Name)
	})

	t.Run("errors", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, slog.Default(), nil)
		svc.On("Create", ctx, mock.MatchedBy(func(in prescription.Input) bool { return in.USN.Value == "" })).
			Return(nil, prescription.ErrRequiredFields)
		svc.On("Create", ctx, mock.MatchedBy(func(in prescription.Input) bool { return in.USN.Value == "Z9" })).
			Return(nil, prescription.ErrPatientNotFound)

		_, err := h.create(ctx, &createInput{RawBody: []byte(`{}`)})
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

		_, err = h.create(ctx, &createInput{RawBody: []byte(`{"usn":"Z9","diagnosis":"x"}`)})
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))

		_, err = h.create(ctx, &createInput{RawBody: []byte(`{"usn":"P1","medications":{"name":1}}`)})
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	})
}

func TestHandler_AddItem(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := context.Background()
	days := 5

	svc.On("AddItem", ctx, int64(3), mock.Anything).Return(&prescription.Item{
		ID:             9,
		PrescriptionID: 3,
		MedicationID:   2,
		MedicationName: "Cetirizine",
		DurationDays:   &days,
	}, nil)
	svc.On("AddItem", ctx, int64(4), mock.Anything).Return(nil, prescription.ErrNotFound)

	out, err := h.addItem(ctx, &addItemInput{ID: 3, RawBody: []byte(`{"medName":"Cetirizine","durationDays":5}`)})
	require.NoError(t, err)
	assert.Equal(t, "Cetirizine", out.Body.MedicationName)
	assert.Equal(t, 5, *out.Body.DurationDays)

	_, err = h.addItem(ctx, &addItemInput{ID: 4, RawBody: []byte(`{"medName":"Cetirizine"}`)})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestHandler_Sheet(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, slog.Default(), nil)
	ctx := context.Background()

	svc.On("Sheet", ctx, int64(3)).Return(&prescription.Sheet{
		Prescription: prescription.Prescription{ID: 3, USN: "P1"},
		Patient:      &prescription.PatientInfo{USN: "P1", FullName: "Asha Rao"},
	}, nil)
	svc.On("Sheet", ctx, int64(8)).Return(nil, prescription.ErrNotFound)

	out, err := h.sheet(ctx, &idInput{ID: 3})
	require.NoError(t, err)
	require.NotNil(t, out.Body.Patient)
	assert.Equal(t, "Asha Rao", out.Body.Patient.FullName)
	assert.Empty(t, out.Body.Items)

	_, err = h.sheet(ctx, &idInput{ID: 8})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
