package client

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/blake2b"

	"hmis/internal/domain/sync"
	"hmis/internal/utils/clock"
)

// SQLiteQueue - локальная очередь записей, снятых без связи с сервером.
type SQLiteQueue struct {
	db  *sql.DB
	now clock.Func
}

func NewSQLiteQueue(path string, now clock.Func) (*SQLiteQueue, error) {
	if now == nil {
		now = clock.UTC
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы очереди: %w", err)
	}

	q := &SQLiteQueue{db: db, now: now}
	if err := q.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return q, nil
}

func (q *SQLiteQueue) initTables() error {
	_, err := q.db.Exec(`
		CREATE TABLE IF NOT EXISTS queue (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			entity TEXT NOT NULL,
			payload TEXT NOT NULL,
			digest TEXT NOT NULL,
			created_at TEXT NOT NULL,
			UNIQUE (entity, digest)
		);

		CREATE INDEX IF NOT EXISTS idx_queue_entity ON queue(entity, id);

		CREATE TABLE IF NOT EXISTS sync_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id TEXT NOT NULL,
			entity TEXT NOT NULL,
			sent INTEGER NOT NULL,
			synced INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			at TEXT NOT NULL
		);
	`)
	return err
}

func (q *SQLiteQueue) Close() error {
	return q.db.Close()
}

// Digest - blake2b-256 от компактной записи JSON, в hex.
func Digest(payload []byte) (string, error) {
	compact, err := compactJSON(payload)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(compact)
	return hex.EncodeToString(sum[:]), nil
}

// Add кладет записи в очередь одной транзакцией, повторы по digest пропускаются.
func (q *SQLiteQueue) Add(ctx context.Context, entity sync.Entity, payloads []json.RawMessage) (EnqueueResult, error) {
	var res EnqueueResult

	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO queue (entity, payload, digest, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (entity, digest) DO NOTHING
	`)
	if err != nil {
		return res, fmt.Errorf("ошибка подготовки запроса: %w", err)
	}
	defer stmt.Close()

	createdAt := clock.Format(q.now())
	for _, p := range payloads {
		compact, err := compactJSON(p)
		if err != nil {
			return EnqueueResult{}, err
		}
		digest, err := Digest(compact)
		if err != nil {
			return EnqueueResult{}, err
		}

		r, err := stmt.ExecContext(ctx, string(entity), string(compact), digest, createdAt)
		if err != nil {
			return EnqueueResult{}, fmt.Errorf("ошибка добавления записи: %w", err)
		}
		n, err := r.RowsAffected()
		if err != nil {
			return EnqueueResult{}, fmt.Errorf("ошибка добавления записи: %w", err)
		}
		if n == 0 {
			res.Duplicates++
			continue
		}
		res.Added++
	}

	if err := tx.Commit(); err != nil {
		return EnqueueResult{}, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return res, nil
}

// List возвращает до limit записей вида entity в порядке добавления. limit <= 0 - без ограничения.
func (q *SQLiteQueue) List(ctx context.Context, entity sync.Entity, limit int) ([]Item, error) {
	query := `SELECT id, entity, payload, digest, created_at FROM queue`
	var args []any
	if entity != "" {
		query += ` WHERE entity = ?`
		args = append(args, string(entity))
	}
	query += ` ORDER BY id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения очереди: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			it      Item
			entity  string
			payload string
		)
		if err := rows.Scan(&it.ID, &entity, &payload, &it.Digest, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения записи очереди: %w", err)
		}
		it.Entity = sync.Entity(entity)
		it.Payload = json.RawMessage(payload)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения очереди: %w", err)
	}
	return items, nil
}

func (q *SQLiteQueue) Remove(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	if _, err := q.db.ExecContext(ctx, `DELETE FROM queue WHERE id IN (`+placeholders+`)`, args...); err != nil {
		return fmt.Errorf("ошибка удаления из очереди: %w", err)
	}
	return nil
}

// Pending считает записи в очереди по видам.
func (q *SQLiteQueue) Pending(ctx context.Context) (Pending, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT entity, COUNT(*) FROM queue GROUP BY entity`)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета очереди: %w", err)
	}
	defer rows.Close()

	out := make(Pending)
	for rows.Next() {
		var (
			entity string
			n      int
		)
		if err := rows.Scan(&entity, &n); err != nil {
			return nil, fmt.Errorf("ошибка подсчета очереди: %w", err)
		}
		out[sync.Entity(entity)] = n
	}
	return out, rows.Err()
}

func (q *SQLiteQueue) LogBatch(ctx context.Context, l BatchLog) error {
	if l.At == "" {
		l.At = clock.Format(q.now())
	}

	var errText any
	if l.Error != "" {
		errText = l.Error
	}

	_, err := q.db.ExecContext(ctx, `
		INSERT INTO sync_log (batch_id, entity, sent, synced, skipped, error, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, l.BatchID, string(l.Entity), l.Sent, l.Synced, l.Skipped, errText, l.At)
	if err != nil {
		return fmt.Errorf("ошибка записи журнала синхронизации: %w", err)
	}
	return nil
}

// History возвращает последние limit записей sync_log, новые первыми.
func (q *SQLiteQueue) History(ctx context.Context, limit int) ([]BatchLog, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT batch_id, entity, sent, synced, skipped, COALESCE(error, ''), at
		FROM sync_log ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала синхронизации: %w", err)
	}
	defer rows.Close()

	var out []BatchLog
	for rows.Next() {
		var (
			l      BatchLog
			entity string
		)
		if err := rows.Scan(&l.BatchID, &entity, &l.Sent, &l.Synced, &l.Skipped, &l.Error, &l.At); err != nil {
			return nil, fmt.Errorf("ошибка чтения журнала синхронизации: %w", err)
		}
		l.Entity = sync.Entity(entity)
		out = append(out, l)
	}
	return out, rows.Err()
}

func compactJSON(b []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	return buf.Bytes(), nil
}
