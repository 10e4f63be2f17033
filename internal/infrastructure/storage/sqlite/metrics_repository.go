package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/domain/lab"
	"hmis/internal/domain/metrics"
)

type MetricsRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewMetricsRepository(db *sql.DB, log *slog.Logger) *MetricsRepository {
	return &MetricsRepository{
		db:  db,
		log: log.With("component", "metrics_repository"),
	}
}

// Dashboard сравнивает дату по первым десяти символам метки времени.
func (r *MetricsRepository) Dashboard(ctx context.Context, day string) (metrics.Dashboard, error) {
	const query = `
		SELECT
			(SELECT COUNT(1) FROM patients),
			(SELECT COUNT(1) FROM appointments WHERE substr(starts_at, 1, 10) = ?),
			(SELECT COUNT(1) FROM lab_order_items WHERE status <> ?),
			(SELECT COUNT(1) FROM vitals WHERE substr(recorded_at, 1, 10) = ?)`

	var d metrics.Dashboard
	err := r.db.QueryRowContext(ctx, query, day, lab.StatusCompleted, day).Scan(
		&d.Patients, &d.AppointmentsToday, &d.LabsPending, &d.VitalsToday,
	)
	if err != nil {
		r.log.Error("failed to collect metrics", "day", day, "error", err)
		return metrics.Dashboard{}, fmt.Errorf("collect metrics: %w", err)
	}
	return d, nil
}
