package sync

import (
	"context"
	"errors"
	"maps"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hmis/internal/domain/casereport"
	"hmis/internal/domain/intimation"
	"hmis/internal/domain/patient"
	"hmis/internal/domain/prescription"
	"hmis/internal/domain/vital"
	"hmis/internal/utils/clock"
)

// fakeBatch хранит записи в памяти и откатывает запись целиком при ошибке в Within.
type fakeBatch struct {
	patients      map[string]patient.Patient
	vitals        map[int64]vital.Vital
	prescriptions map[int64]prescription.Prescription
	caseReports   map[string]casereport.CaseReport
	intimations   map[string]intimation.Intimation

	nextID      int64
	failUpsert  error
	panicOnUSN  string
	committed   bool
	rolledBack  bool
	commitError error
}

func newFakeBatch() *fakeBatch {
	return &fakeBatch{
		patients:      map[string]patient.Patient{},
		vitals:        map[int64]vital.Vital{},
		prescriptions: map[int64]prescription.Prescription{},
		caseReports:   map[string]casereport.CaseReport{},
		intimations:   map[string]intimation.Intimation{},
	}
}

func (b *fakeBatch) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	patients := maps.Clone(b.patients)
	caseReports := maps.Clone(b.caseReports)
	intimations := maps.Clone(b.intimations)
	if err := fn(ctx); err != nil {
		b.patients, b.caseReports, b.intimations = patients, caseReports, intimations
		return err
	}
	return nil
}

func (b *fakeBatch) PatientExists(_ context.Context, usn string) (bool, error) {
	_, ok := b.patients[usn]
	return ok, nil
}

func (b *fakeBatch) EnsurePatient(_ context.Context, p patient.Patient) error {
	if _, ok := b.patients[p.USN]; !ok {
		b.patients[p.USN] = p
	}
	return nil
}

func (b *fakeBatch) UpsertPatient(_ context.Context, p patient.Patient) error {
	if p.USN == b.panicOnUSN {
		panic("boom")
	}
	b.patients[p.USN] = p
	return nil
}

func (b *fakeBatch) UpsertVital(_ context.Context, v vital.Vital) error {
	if b.failUpsert != nil {
		return b.failUpsert
	}
	if v.ID == 0 {
		b.nextID++
		v.ID = 1000 + b.nextID
	}
	b.vitals[v.ID] = v
	return nil
}

func (b *fakeBatch) UpsertPrescription(_ context.Context, p prescription.Prescription) error {
	if p.ID == 0 {
		b.nextID++
		p.ID = 1000 + b.nextID
	}
	b.prescriptions[p.ID] = p
	return nil
}

func (b *fakeBatch) UpsertCaseReport(_ context.Context, r casereport.CaseReport) error {
	if b.failUpsert != nil {
		return b.failUpsert
	}
	b.caseReports[r.ReportNumber] = r
	return nil
}

func (b *fakeBatch) UpsertSickIntimation(_ context.Context, it intimation.Intimation) error {
	b.intimations[it.IntimationNumber] = it
	return nil
}

func (b *fakeBatch) Commit() error {
	if b.commitError != nil {
		return b.commitError
	}
	b.committed = true
	return nil
}

func (b *fakeBatch) Rollback() error {
	b.rolledBack = true
	return nil
}

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) BeginBatch(ctx context.Context) (Batch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Batch), args.Error(1)
}

func (m *MockRepository) Counts(ctx context.Context) (Counts, error) {
	args := m.Called(ctx)
	return args.Get(0).(Counts), args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, entity, entityID, action string, details any) error {
	args := m.Called(ctx, entity, entityID, action, details)
	return args.Error(0)
}

var fixedNow = time.Date(2024, 2, 29, 18, 45, 0, 0, time.UTC)

func newTestService(batch *fakeBatch) (*Service, *MockRepository, *MockRecorder) {
	repo := new(MockRepository)
	rec := new(MockRecorder)
	repo.On("BeginBatch", mock.Anything).Return(batch, nil)
	rec.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return NewService(repo, rec, slog.Default(), clock.Fixed(fixedNow)), repo, rec
}

func TestService_Reconcile_PatientsScenario(t *testing.T) {
	// Arrange
	batch := newFakeBatch()
	svc, _, rec := newTestService(batch)
	body := []byte(`[{"usn":"A1","fullName":"Jane Doe"}, {"usn":"","fullName":"No Key"}]`)

	// Act
	report, err := svc.Reconcile(context.Background(), EntityPatients, body)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, BatchResponse{Status: "success", SyncedCount: 1, TotalReceived: 2, SkippedCount: 1}, NewBatchResponse(report))
	assert.Len(t, batch.patients, 1)
	assert.Contains(t, batch.patients, "A1")
	assert.True(t, batch.committed)
	assert.Equal(t, ReasonMissingKey, report.Results[1].Reason)

	rec.AssertCalled(t, "Record", mock.Anything, "sync:patients", mock.Anything, "reconcile",
		map[string]int{"total_received": 2, "synced_count": 1, "skipped_count": 1})
}

func TestService_Reconcile_VitalForUnknownPatient(t *testing.T) {
	batch := newFakeBatch()
	svc, _, _ := newTestService(batch)
	body := []byte(`[{"usn":"Z9","weight":60,"height":160,"bloodPressureSystolic":120,"bloodPressureDiastolic":80,"heartRate":70,"temperature":98.6}]`)

	report, err := svc.Reconcile(context.Background(), EntityVitals, body)

	require.NoError(t, err)
	assert.Equal(t, 0, report.Synced)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, ReasonPatientNotFound, report.Results[0].Reason)
	assert.Empty(t, batch.vitals)
}

func TestService_Reconcile_CaseReportCreatesPlaceholder(t *testing.T) {
	batch := newFakeBatch()
	svc, _, _ := newTestService(batch)
	body := []byte(`[{"reportNumber":"CR-1","usn":"NEWPT"}]`)

	report, err := svc.Reconcile(context.Background(), EntityCaseReports, body)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Synced)
	assert.Equal(t, patient.Patient{USN: "NEWPT", FullName: "Unknown", Age: 0, Gender: "Unknown"}, batch.patients["NEWPT"])
	require.Contains(t, batch.caseReports, "CR-1")
	assert.Equal(t, clock.Format(fixedNow), batch.caseReports["CR-1"].CreatedAt)
}

func TestService_Reconcile_StoreErrorRollsBackRecord(t *testing.T) {
	batch := newFakeBatch()
	batch.failUpsert = errors.New("constraint failed")
	svc, _, _ := newTestService(batch)
	body := []byte(`[{"reportNumber":"CR-1","usn":"NEWPT","patientName":"Asha"}]`)

	report, err := svc.Reconcile(context.Background(), EntityCaseReports, body)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, ReasonStoreError, report.Results[0].Reason)
	assert.Empty(t, batch.patients, "placeholder must be rolled back with its record")
	assert.True(t, batch.committed)
}

func TestService_Reconcile_PanicIsIsolated(t *testing.T) {
	batch := newFakeBatch()
	batch.panicOnUSN = "BAD"
	svc, _, _ := newTestService(batch)
	body := []byte(`[{"usn":"BAD","fullName":"X"},{"usn":"OK","fullName":"Y"}]`)

	report, err := svc.Reconcile(context.Background(), EntityPatients, body)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Synced)
	assert.Equal(t, ReasonStoreError, report.Results[0].Reason)
	assert.Contains(t, batch.patients, "OK")
}

func TestService_Reconcile_Idempotent(t *testing.T) {
	batch := newFakeBatch()
	svc, _, _ := newTestService(batch)
	body := []byte(`[
		{"id":7,"usn":"A1","weight":60,"height":160,"bloodPressureSystolic":120,"bloodPressureDiastolic":80,"heartRate":70,"temperature":98.6},
		{"id":8,"usn":"A1","weight":61,"height":160,"bloodPressureSystolic":118,"bloodPressureDiastolic":79,"heartRate":72,"temperature":98.4}
	]`)
	batch.patients["A1"] = patient.Patient{USN: "A1", FullName: "Jane"}

	first, err := svc.Reconcile(context.Background(), EntityVitals, body)
	require.NoError(t, err)
	snapshot := maps.Clone(batch.vitals)

	second, err := svc.Reconcile(context.Background(), EntityVitals, body)
	require.NoError(t, err)

	assert.Equal(t, 2, first.Synced)
	assert.Equal(t, 2, second.Synced)
	assert.Equal(t, snapshot, batch.vitals)
}

func TestService_Reconcile_Errors(t *testing.T) {
	t.Run("not an array", func(t *testing.T) {
		batch := newFakeBatch()
		svc, repo, _ := newTestService(batch)

		_, err := svc.Reconcile(context.Background(), EntityVitals, []byte(`{"usn":"A1"}`))

		assert.ErrorIs(t, err, ErrNotArray)
		repo.AssertNotCalled(t, "BeginBatch", mock.Anything)
	})

	t.Run("begin fails", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("BeginBatch", mock.Anything).Return(nil, errors.New("database is locked"))
		svc := NewService(repo, new(MockRecorder), slog.Default(), clock.Fixed(fixedNow))

		_, err := svc.Reconcile(context.Background(), EntityPatients, []byte(`[]`))

		assert.ErrorContains(t, err, "failed to begin sync batch")
	})

	t.Run("commit fails", func(t *testing.T) {
		batch := newFakeBatch()
		batch.commitError = errors.New("disk I/O error")
		svc, _, rec := newTestService(batch)

		_, err := svc.Reconcile(context.Background(), EntityPatients, []byte(`[{"usn":"A1","fullName":"Jane"}]`))

		assert.ErrorContains(t, err, "failed to commit sync batch")
		assert.True(t, batch.rolledBack)
		rec.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("audit failure is not fatal", func(t *testing.T) {
		repo := new(MockRepository)
		rec := new(MockRecorder)
		repo.On("BeginBatch", mock.Anything).Return(newFakeBatch(), nil)
		rec.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("no table"))
		svc := NewService(repo, rec, slog.Default(), clock.Fixed(fixedNow))

		report, err := svc.Reconcile(context.Background(), EntityPatients, []byte(`[{"usn":"A1","fullName":"Jane"}]`))

		require.NoError(t, err)
		assert.Equal(t, 1, report.Synced)
	})
}

func TestService_Reconcile_IgnoresCancellation(t *testing.T) {
	batch := newFakeBatch()
	svc, _, _ := newTestService(batch)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.Reconcile(ctx, EntityPatients, []byte(`[{"usn":"A1","fullName":"Jane"},{"usn":"B2","fullName":"Ravi"}]`))

	require.NoError(t, err)
	assert.Equal(t, 2, report.Synced)
}

func TestService_Status(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockRecorder), slog.Default(), clock.Fixed(fixedNow))
	repo.On("Counts", mock.Anything).Return(Counts{Patients: 2, Vitals: 5}, nil)

	st, err := svc.Status(context.Background())

	require.NoError(t, err)
	resp := NewStatusResponse(st)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Counts.Patients)
	assert.Equal(t, "2024-02-29T18:45:00.000000Z", resp.LastUpdated)
}
