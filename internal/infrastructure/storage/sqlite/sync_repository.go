package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/domain/casereport"
	"hmis/internal/domain/intimation"
	"hmis/internal/domain/patient"
	"hmis/internal/domain/prescription"
	"hmis/internal/domain/sync"
	"hmis/internal/domain/vital"
)

// SyncRepository открывает пакеты синхронизации. Один пакет - одна транзакция,
// каждая запись пакета выполняется под своей точкой сохранения.
type SyncRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSyncRepository(db *sql.DB, log *slog.Logger) *SyncRepository {
	return &SyncRepository{
		db:  db,
		log: log.With("component", "sync_repository"),
	}
}

func (r *SyncRepository) BeginBatch(ctx context.Context) (sync.Batch, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Error("failed to begin sync batch", "error", err)
		return nil, fmt.Errorf("begin sync batch: %w", err)
	}
	return &syncBatch{tx: tx, log: r.log}, nil
}

func (r *SyncRepository) Counts(ctx context.Context) (sync.Counts, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM patients),
			(SELECT COUNT(*) FROM vitals),
			(SELECT COUNT(*) FROM prescriptions),
			(SELECT COUNT(*) FROM case_reports),
			(SELECT COUNT(*) FROM sick_intimations)`

	var c sync.Counts
	err := r.db.QueryRowContext(ctx, query).Scan(
		&c.Patients, &c.Vitals, &c.Prescriptions, &c.CaseReports, &c.SickIntimations,
	)
	if err != nil {
		r.log.Error("failed to count records", "error", err)
		return sync.Counts{}, fmt.Errorf("count records: %w", err)
	}
	return c, nil
}

type syncBatch struct {
	tx  *sql.Tx
	log *slog.Logger
}

// Within откатывает к точке сохранения всё, что сделала fn, если она вернула ошибку.
func (b *syncBatch) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, err := b.tx.ExecContext(ctx, `SAVEPOINT record`); err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}

	if err := fn(ctx); err != nil {
		if _, rbErr := b.tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT record`); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback to savepoint: %w", rbErr))
		}
		if _, relErr := b.tx.ExecContext(ctx, `RELEASE SAVEPOINT record`); relErr != nil {
			return errors.Join(err, fmt.Errorf("release savepoint: %w", relErr))
		}
		return err
	}

	if _, err := b.tx.ExecContext(ctx, `RELEASE SAVEPOINT record`); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

func (b *syncBatch) PatientExists(ctx context.Context, usn string) (bool, error) {
	return patientExists(ctx, b.tx, usn)
}

func (b *syncBatch) EnsurePatient(ctx context.Context, p patient.Patient) error {
	return ensurePatient(ctx, b.tx, p)
}

func (b *syncBatch) UpsertPatient(ctx context.Context, p patient.Patient) error {
	return upsertPatient(ctx, b.tx, p)
}

func (b *syncBatch) UpsertVital(ctx context.Context, v vital.Vital) error {
	_, err := upsertVital(ctx, b.tx, v)
	return err
}

func (b *syncBatch) UpsertPrescription(ctx context.Context, p prescription.Prescription) error {
	_, err := upsertPrescription(ctx, b.tx, p)
	return err
}

func (b *syncBatch) UpsertCaseReport(ctx context.Context, r casereport.CaseReport) error {
	return upsertCaseReport(ctx, b.tx, r)
}

func (b *syncBatch) UpsertSickIntimation(ctx context.Context, it intimation.Intimation) error {
	return upsertSickIntimation(ctx, b.tx, it)
}

func (b *syncBatch) Commit() error {
	if err := b.tx.Commit(); err != nil {
		b.log.Error("failed to commit sync batch", "error", err)
		return err
	}
	return nil
}

// Rollback после успешного Commit ничего не делает.
func (b *syncBatch) Rollback() error {
	if err := b.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
