package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"hmis/internal/app/server/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator - часть *migrate.Migrate, которой пользуется Migration.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine открывает мигратор над источником схемы и базой.
type MigrationEngine func(src source.Driver, databaseURL string) (Migrator, error)

type Migration struct {
	cfg    *config.Config
	engine MigrationEngine
}

func NewMigration(conf *config.Config, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		cfg:    conf,
		engine: engine,
	}
}

// DefaultEngine - реальная реализация: схема зашита в бинарник
func DefaultEngine(src source.Driver, databaseURL string) (Migrator, error) {
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

// DatabaseURL строит адрес базы для драйвера sqlite3 из golang-migrate.
func DatabaseURL(path string) string {
	return "sqlite3://" + path
}

// Up создает недостающие таблицы. Схема состоит из IF NOT EXISTS, база
// старой сборки без таблицы версий проходит без ошибок.
func (mg *Migration) Up() (err error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := mg.engine(src, DatabaseURL(mg.cfg.DB.Path))
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
