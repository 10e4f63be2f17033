package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/slog"

	"hmis/internal/app/client/config"
	"hmis/internal/domain/export"
	"hmis/internal/domain/sync"
)

type appKey struct{}

// App - офлайн-клиент: локальная очередь, HTTP клиент и синхронизация.
type App struct {
	config *config.Config
	log    *slog.Logger
	queue  *SQLiteQueue
	api    *httpClient
	sync   *SyncService
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.QueuePath), 0o700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории очереди: %w", err)
	}

	queue, err := NewSQLiteQueue(cfg.QueuePath, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации очереди: %w", err)
	}

	api := NewHTTPClient(cfg, log)

	return &App{
		config: cfg,
		log:    log,
		queue:  queue,
		api:    api,
		sync:   NewSyncService(queue, api, log, cfg.BatchSize),
	}, nil
}

func (a *App) Close() error {
	return a.queue.Close()
}

// WithApp кладет приложение в контекст команды.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// FromContext достает приложение, положенное WithApp.
func FromContext(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

// Enqueue кладет в очередь каждый элемент JSON-массива data.
func (a *App) Enqueue(ctx context.Context, entity sync.Entity, data []byte) (EnqueueResult, error) {
	payloads, err := SplitArray(data)
	if err != nil {
		return EnqueueResult{}, err
	}

	res, err := a.queue.Add(ctx, entity, payloads)
	if err != nil {
		return EnqueueResult{}, err
	}

	a.log.Info("records queued", "entity", string(entity), "added", res.Added, "duplicates", res.Duplicates)
	return res, nil
}

func (a *App) Queued(ctx context.Context, entity sync.Entity, limit int) ([]Item, error) {
	return a.queue.List(ctx, entity, limit)
}

func (a *App) Pending(ctx context.Context) (Pending, error) {
	return a.queue.Pending(ctx)
}

func (a *App) History(ctx context.Context, limit int) ([]BatchLog, error) {
	return a.queue.History(ctx, limit)
}

func (a *App) Sync(ctx context.Context, entities ...sync.Entity) ([]BatchResult, error) {
	return a.sync.Sync(ctx, entities...)
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.api.HealthCheck(ctx)
}

func (a *App) ServerStatus(ctx context.Context) (*sync.StatusResponse, error) {
	return a.api.Status(ctx)
}

func (a *App) Export(ctx context.Context, kind export.Kind) (*export.File, error) {
	return a.api.Export(ctx, kind)
}

// SplitArray разбирает JSON-массив объектов на отдельные записи.
func SplitArray(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, ErrNotArray
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	for i, it := range items {
		it = bytes.TrimSpace(it)
		if len(it) == 0 || it[0] != '{' {
			return nil, fmt.Errorf("%w: элемент %d", ErrBadRecord, i)
		}
	}
	return items, nil
}
