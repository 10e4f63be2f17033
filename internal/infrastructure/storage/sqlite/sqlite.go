package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// Регистрирует драйвер sqlite3 для database/sql
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"hmis/internal/app/server/config"
	"hmis/internal/infrastructure/migration"
)

// Параметры соединения: внешние ключи нужны для каскадного удаления,
// immediate-транзакции не дают двум писателям упереться друг в друга.
const dsnParams = "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"

type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

// New применяет миграции и открывает базу.
func New(cfg *config.Config, log *slog.Logger) (*Storage, error) {
	mg := migration.NewMigration(cfg, nil)
	if err := mg.Up(); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	db, err := sql.Open("sqlite3", DSN(cfg.DB.Path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("database opened", slog.String("path", cfg.DB.Path))
	return &Storage{db: db, log: log}, nil
}

// DSN добавляет к пути файла параметры соединения.
func DSN(path string) string {
	return "file:" + path + dsnParams
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) DB() *sql.DB {
	return s.db
}

// querier - общее у *sql.DB и *sql.Tx. Через него одни и те же запросы
// работают и в CRUD-репозиториях, и внутри пакета синхронизации.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner - общее у *sql.Row и *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// arg превращает nil-указатель в NULL.
func arg[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func ptr[T any](n sql.Null[T]) *T {
	if !n.Valid {
		return nil
	}
	v := n.V
	return &v
}

func orDefault(n sql.NullString, def string) string {
	if !n.Valid {
		return def
	}
	return n.String
}

// idArg передаёт 0 как NULL, чтобы база выдала новый id.
func idArg(id int64) any {
	if id <= 0 {
		return nil
	}
	return id
}

// withTx выполняет fn в транзакции и фиксирует её, если fn не вернула ошибку.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
