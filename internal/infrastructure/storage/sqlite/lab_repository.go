package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"hmis/internal/domain/lab"
)

type LabRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewLabRepository(db *sql.DB, log *slog.Logger) *LabRepository {
	return &LabRepository{
		db:  db,
		log: log.With("component", "lab_repository"),
	}
}

func (r *LabRepository) ActiveTests(ctx context.Context) ([]lab.Test, error) {
	const query = `
		SELECT id, code, name, specimen, unit, ref_range, is_active
		FROM lab_tests
		WHERE is_active = 1
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Error("failed to list lab tests", "error", err)
		return nil, fmt.Errorf("list lab tests: %w", err)
	}
	defer rows.Close()

	list := make([]lab.Test, 0)
	for rows.Next() {
		t, err := scanLabTest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lab test: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lab tests: %w", err)
	}
	return list, nil
}

func (r *LabRepository) FindActiveTest(ctx context.Context, code string) (lab.Test, error) {
	const query = `
		SELECT id, code, name, specimen, unit, ref_range, is_active
		FROM lab_tests
		WHERE code = ? AND is_active = 1`

	t, err := scanLabTest(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lab.Test{}, lab.ErrTestNotFound
		}
		r.log.Error("failed to find lab test", "code", code, "error", err)
		return lab.Test{}, fmt.Errorf("find lab test: %w", err)
	}
	return t, nil
}

func (r *LabRepository) PatientExists(ctx context.Context, usn string) (bool, error) {
	return patientExists(ctx, r.db, usn)
}

func (r *LabRepository) CreateOrder(ctx context.Context, o lab.Order, testID int64) (int64, error) {
	const (
		insertOrder = `INSERT INTO lab_orders (usn, ordered_at, status, notes) VALUES (?, ?, ?, ?)`
		insertItem  = `INSERT INTO lab_order_items (lab_order_id, lab_test_id, status) VALUES (?, ?, ?)`
	)

	var orderID int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, insertOrder, o.USN, o.OrderedAt, o.Status, arg(o.Notes))
		if err != nil {
			return fmt.Errorf("insert lab order: %w", err)
		}
		if orderID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("insert lab order: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertItem, orderID, testID, lab.StatusOrdered); err != nil {
			return fmt.Errorf("insert lab order item: %w", err)
		}
		return nil
	})
	if err != nil {
		r.log.Error("failed to create lab order", "usn", o.USN, "error", err)
		return 0, err
	}
	return orderID, nil
}

func (r *LabRepository) ListOrders(ctx context.Context, usn string, limit int) ([]lab.OrderLine, error) {
	query := `
		SELECT lo.id, lo.usn, lo.ordered_at, lo.status, lo.notes,
		       loi.id, lt.code, lt.name, loi.status, loi.result_value, loi.result_at
		FROM lab_orders lo
		JOIN lab_order_items loi ON loi.lab_order_id = lo.id
		JOIN lab_tests lt ON lt.id = loi.lab_test_id`
	args := make([]any, 0, 2)
	if usn != "" {
		query += ` WHERE lo.usn = ?`
		args = append(args, usn)
	}
	query += ` ORDER BY lo.ordered_at DESC, lo.id DESC, loi.id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list lab orders", "usn", usn, "error", err)
		return nil, fmt.Errorf("list lab orders: %w", err)
	}
	defer rows.Close()

	list := make([]lab.OrderLine, 0)
	for rows.Next() {
		var (
			l                   lab.OrderLine
			notes, value, resAt sql.Null[string]
		)
		if err := rows.Scan(
			&l.ID, &l.USN, &l.OrderedAt, &l.Status, &notes,
			&l.ItemID, &l.Code, &l.Name, &l.ItemStatus, &value, &resAt,
		); err != nil {
			return nil, fmt.Errorf("scan lab order: %w", err)
		}
		l.Notes, l.ResultValue, l.ResultAt = ptr(notes), ptr(value), ptr(resAt)
		list = append(list, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lab orders: %w", err)
	}
	return list, nil
}

// SetResult закрывает позицию, а затем заказ, если в нём не осталось незакрытых позиций.
func (r *LabRepository) SetResult(ctx context.Context, res lab.Result) (bool, error) {
	const (
		completeItem = `
			UPDATE lab_order_items
			SET result_value = ?, result_notes = ?, result_at = ?, status = ?
			WHERE id = ?`
		completeOrder = `
			UPDATE lab_orders
			SET status = CASE WHEN NOT EXISTS (
				SELECT 1 FROM lab_order_items
				WHERE lab_order_id = lab_orders.id AND status <> ?
			) THEN ? ELSE status END
			WHERE id = (SELECT lab_order_id FROM lab_order_items WHERE id = ?)`
	)

	found := false
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		out, err := tx.ExecContext(ctx, completeItem, res.Value, arg(res.Notes), res.At, lab.StatusCompleted, res.ItemID)
		if err != nil {
			return fmt.Errorf("update lab order item: %w", err)
		}
		n, err := out.RowsAffected()
		if err != nil {
			return fmt.Errorf("update lab order item: %w", err)
		}
		if n == 0 {
			return nil
		}
		found = true

		if _, err := tx.ExecContext(ctx, completeOrder, lab.StatusCompleted, lab.StatusCompleted, res.ItemID); err != nil {
			return fmt.Errorf("update lab order: %w", err)
		}
		return nil
	})
	if err != nil {
		r.log.Error("failed to set lab result", "item_id", res.ItemID, "error", err)
		return false, err
	}
	return found, nil
}

func scanLabTest(row scanner) (lab.Test, error) {
	var (
		t                        lab.Test
		specimen, unit, refRange sql.Null[string]
	)
	if err := row.Scan(&t.ID, &t.Code, &t.Name, &specimen, &unit, &refRange, &t.IsActive); err != nil {
		return lab.Test{}, err
	}
	t.Specimen, t.Unit, t.RefRange = ptr(specimen), ptr(unit), ptr(refRange)
	return t, nil
}
