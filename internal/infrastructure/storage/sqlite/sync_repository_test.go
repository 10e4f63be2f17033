package sqlite_test

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hmis/internal/app/server/config"
	"hmis/internal/domain/audit"
	"hmis/internal/domain/casereport"
	"hmis/internal/domain/intimation"
	"hmis/internal/domain/patient"
	"hmis/internal/domain/prescription"
	"hmis/internal/domain/sync"
	"hmis/internal/domain/vital"
	"hmis/internal/infrastructure/storage/sqlite"
	"hmis/internal/utils/clock"
)

var syncNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

type syncEnv struct {
	db       *sql.DB
	svc      *sync.Service
	patients *sqlite.PatientRepository
	vitals   *sqlite.VitalRepository
	rx       *sqlite.PrescriptionRepository
	reports  *sqlite.CaseReportRepository
	notes    *sqlite.IntimationRepository
	audit    *sqlite.AuditRepository
}

func newSyncEnv(t *testing.T) *syncEnv {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{DB: config.DB{Path: filepath.Join(t.TempDir(), "hmis.db")}}

	store, err := sqlite.New(cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	db := store.DB()
	auditRepo := sqlite.NewAuditRepository(db, log)
	recorder := audit.NewService(auditRepo, log, clock.Fixed(syncNow))

	return &syncEnv{
		db:       db,
		svc:      sync.NewService(sqlite.NewSyncRepository(db, log), recorder, log, clock.Fixed(syncNow)),
		patients: sqlite.NewPatientRepository(db, log),
		vitals:   sqlite.NewVitalRepository(db, log),
		rx:       sqlite.NewPrescriptionRepository(db, log),
		reports:  sqlite.NewCaseReportRepository(db, log),
		notes:    sqlite.NewIntimationRepository(db, log),
		audit:    auditRepo,
	}
}

func (e *syncEnv) reconcile(t *testing.T, entity sync.Entity, body string) *sync.Report {
	t.Helper()
	report, err := e.svc.Reconcile(context.Background(), entity, []byte(body))
	require.NoError(t, err)
	return report
}

func TestSync_PatientScenario(t *testing.T) {
	env := newSyncEnv(t)

	report := env.reconcile(t, sync.EntityPatients,
		`[{"usn":"A1","fullName":"Jane Doe"}, {"usn":"","fullName":"No Key"}]`)

	assert.Equal(t, 2, report.Received)
	assert.Equal(t, 1, report.Synced)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, sync.NewBatchResponse(report), sync.BatchResponse{
		Status: sync.StatusSuccess, SyncedCount: 1, TotalReceived: 2, SkippedCount: 1,
	})

	list, err := env.patients.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A1", list[0].USN)
}

func TestSync_DefaultSubstitution(t *testing.T) {
	env := newSyncEnv(t)

	env.reconcile(t, sync.EntityPatients,
		`[{"usn":"A1","fullName":"Jane Doe","gender":"  ","age":""},{"usn":"A2","fullName":"Ravi","age":"abc"},{"usn":"A3","fullName":"Kiran","age":1e300}]`)

	for _, usn := range []string{"A1", "A2", "A3"} {
		p, err := env.patients.Get(context.Background(), usn)
		require.NoError(t, err)
		assert.Equal(t, patient.UnknownGender, p.Gender)
		assert.Equal(t, 0, p.Age)
		assert.Equal(t, "", p.Contact)
		assert.Equal(t, "", p.Address)
	}
}

func TestSync_VitalForMissingPatientIsSkipped(t *testing.T) {
	env := newSyncEnv(t)

	report := env.reconcile(t, sync.EntityVitals, `[{
		"usn":"Z9","weight":70,"height":175,"bloodPressureSystolic":120,
		"bloodPressureDiastolic":80,"heartRate":72,"temperature":98.6}]`)

	assert.Equal(t, 0, report.Synced)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, sync.ReasonPatientNotFound, report.Results[0].Reason)

	list, err := env.vitals.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSync_CaseReportCreatesPlaceholderPatient(t *testing.T) {
	env := newSyncEnv(t)
	ctx := context.Background()

	report := env.reconcile(t, sync.EntityCaseReports,
		`[{"reportNumber":"CR-1","usn":"NEWPT","diagnosis":"Migraine"}]`)
	assert.Equal(t, 1, report.Synced)

	p, err := env.patients.Get(ctx, "NEWPT")
	require.NoError(t, err)
	assert.Equal(t, patient.UnknownName, p.FullName)
	assert.Equal(t, patient.UnknownGender, p.Gender)

	list, err := env.reports.List(ctx, "NEWPT")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "CR-1", list[0].ReportNumber)
	assert.Equal(t, casereport.DefaultReportType, list[0].ReportType)
	assert.Equal(t, clock.Format(syncNow), list[0].CreatedAt)
}

func TestSync_SickIntimationCreatesPlaceholderPatient(t *testing.T) {
	env := newSyncEnv(t)
	ctx := context.Background()

	report := env.reconcile(t, sync.EntitySickIntimations, `[
		{"intimationNumber":"SI-1","usn":"NEWPT","patientName":"Kiran","sickLeaveFrom":"2024-03-01","sickLeaveTo":"2024-03-03","reason":"Fever"},
		{"intimationNumber":"SI-2","usn":"NEWPT","reason":"Fever"}
	]`)
	assert.Equal(t, 1, report.Synced)
	assert.Equal(t, sync.ReasonMissingField, report.Results[1].Reason)

	p, err := env.patients.Get(ctx, "NEWPT")
	require.NoError(t, err)
	assert.Equal(t, "Kiran", p.FullName)

	list, err := env.notes.List(ctx, "NEWPT")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].RestRecommended)
	assert.Equal(t, intimation.DefaultStatus, list[0].Status)
}

func TestSync_PartialFailureIsolation(t *testing.T) {
	env := newSyncEnv(t)
	ctx := context.Background()
	env.reconcile(t, sync.EntityPatients, `[{"usn":"P1","fullName":"Asha"}]`)

	report := env.reconcile(t, sync.EntityVitals, `[
		{"id":1,"usn":"P1","weight":70,"height":175,"bloodPressureSystolic":120,"bloodPressureDiastolic":80,"heartRate":72,"temperature":98.6},
		{"id":2,"usn":"P1","weight":"heavy","height":175,"bloodPressureSystolic":120,"bloodPressureDiastolic":80,"heartRate":72,"temperature":98.6},
		"not an object",
		{"id":3,"usn":"P1","height":175},
		{"id":4,"usn":"P1","weight":60,"height":160,"bloodPressureSystolic":110,"bloodPressureDiastolic":70,"heartRate":80,"temperature":99}
	]`)

	assert.Equal(t, 5, report.Received)
	assert.Equal(t, 2, report.Synced)
	assert.Equal(t, 3, report.Skipped)

	list, err := env.vitals.List(ctx, "P1")
	require.NoError(t, err)
	ids := make([]int64, 0, len(list))
	for _, v := range list {
		ids = append(ids, v.ID)
	}
	assert.ElementsMatch(t, []int64{1, 4}, ids)
}

func TestSync_StoreErrorRollsBackOnlyThatRecord(t *testing.T) {
	env := newSyncEnv(t)
	ctx := context.Background()

	_, err := env.db.ExecContext(ctx, `
		CREATE TRIGGER reject_report BEFORE INSERT ON case_reports
		WHEN NEW.report_number = 'CR-BAD'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	require.NoError(t, err)

	report := env.reconcile(t, sync.EntityCaseReports, `[
		{"reportNumber":"CR-1","usn":"NEWA"},
		{"reportNumber":"CR-BAD","usn":"NEWB"},
		{"reportNumber":"CR-3","usn":"NEWA"}
	]`)
	assert.Equal(t, 2, report.Synced)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, sync.ReasonStoreError, report.Results[1].Reason)
	assert.Error(t, report.Results[1].Err)

	// заглушка пациента откатывается вместе с отклонённой записью
	_, err = env.patients.Get(ctx, "NEWB")
	assert.ErrorIs(t, err, patient.ErrNotFound)
	_, err = env.patients.Get(ctx, "NEWA")
	assert.NoError(t, err)

	list, err := env.reports.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSync_Idempotence(t *testing.T) {
	env := newSyncEnv(t)
	ctx := context.Background()
	env.reconcile(t, sync.EntityPatients, `[{"usn":"P1","fullName":"Asha"}]`)

	body := `[
		{"id":7,"usn":"P1","diagnosis":"Cold","medications":[{"name":"Cetirizine","dosage":"10mg","frequency":"OD","duration":"5 days"}]},
		{"id":8,"usn":"Z9","diagnosis":"Flu"}
	]`

	first := env.reconcile(t, sync.EntityPrescriptions, body)
	firstList, err := env.rx.List(ctx, "")
	require.NoError(t, err)

	second := env.reconcile(t, sync.EntityPrescriptions, body)
	secondList, err := env.rx.List(ctx, "")
	require.NoError(t, err)

	assert.Equal(t, 1, first.Synced)
	assert.Equal(t, first.Synced, second.Synced)
	assert.Equal(t, firstList, secondList)

	status, err := env.svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Counts.Prescriptions)
	assert.Equal(t, 1, status.Counts.Patients)
}

func TestSync_MedicationRoundTrip(t *testing.T) {
	env := newSyncEnv(t)
	ctx := context.Background()
	env.reconcile(t, sync.EntityPatients, `[{"usn":"P1","fullName":"Asha"}]`)

	env.reconcile(t, sync.EntityPrescriptions, `[{"id":1,"usn":"P1","diagnosis":"Fever","medications":[
		{"name":"Paracetamol","dosage":"500mg","frequency":"TID","duration":"3 days"},
		{"name":"ORS","dosage":"","frequency":"after each stool","duration":""}
	]}]`)

	got, err := env.rx.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []prescription.Medication{
		{Name: "Paracetamol", Dosage: "500mg", Frequency: "TID", Duration: "3 days"},
		{Name: "ORS", Frequency: "after each stool"},
	}, got.Medications)
	assert.Equal(t, prescription.DefaultPrescribedBy, got.PrescribedBy)
}

func TestSync_ResyncedPatientKeepsVitals(t *testing.T) {
	env := newSyncEnv(t)
	ctx := context.Background()
	env.reconcile(t, sync.EntityPatients, `[{"usn":"P1","fullName":"Asha"}]`)
	env.reconcile(t, sync.EntityVitals, `[{"id":1,"usn":"P1","weight":70,"height":175,"bloodPressureSystolic":120,"bloodPressureDiastolic":80,"heartRate":72,"temperature":98.6}]`)

	env.reconcile(t, sync.EntityPatients, `[{"usn":"P1","fullName":"Asha Rao","age":21}]`)

	list, err := env.vitals.List(ctx, "P1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, vital.DefaultRecordedBy, list[0].RecordedBy)
	assert.Equal(t, clock.Format(syncNow), list[0].RecordedAt)
}

func TestSync_NotArrayWritesNothing(t *testing.T) {
	env := newSyncEnv(t)

	_, err := env.svc.Reconcile(context.Background(), sync.EntityPatients, []byte(`{"usn":"A1","fullName":"Jane"}`))
	assert.ErrorIs(t, err, sync.ErrNotArray)

	entries, err := env.audit.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSync_BatchIsAudited(t *testing.T) {
	env := newSyncEnv(t)

	env.reconcile(t, sync.EntityPatients, `[{"usn":"A1","fullName":"Jane"},{"usn":"A2"}]`)

	entries, err := env.audit.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sync:patients", entries[0].Entity)
	assert.Equal(t, "reconcile", entries[0].Action)
	assert.JSONEq(t, `{"total_received":2,"synced_count":1,"skipped_count":1}`, entries[0].Details)
	assert.NotEmpty(t, entries[0].EntityID)
}
