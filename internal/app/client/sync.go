package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"hmis/internal/domain/sync"
)

// Queue - то, что нужно SyncService от локальной очереди.
type Queue interface {
	List(ctx context.Context, entity sync.Entity, limit int) ([]Item, error)
	Remove(ctx context.Context, ids []int64) error
	LogBatch(ctx context.Context, l BatchLog) error
}

// Pusher отправляет пакет на сервер.
type Pusher interface {
	PushBatch(ctx context.Context, entity sync.Entity, payloads []json.RawMessage) (*sync.BatchResponse, error)
}

// BatchResult - итог одного отправленного пакета.
type BatchResult struct {
	BatchID  string
	Entity   sync.Entity
	Sent     int
	Synced   int
	Skipped  int
	Received int
}

// SyncService выталкивает очередь на сервер по видам в порядке зависимостей.
// Пакет удаляется из очереди только после ответа success.
type SyncService struct {
	queue     Queue
	api       Pusher
	log       *slog.Logger
	batchSize int
	newID     func() string
}

func NewSyncService(queue Queue, api Pusher, log *slog.Logger, batchSize int) *SyncService {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &SyncService{
		queue:     queue,
		api:       api,
		log:       log.With("component", "sync"),
		batchSize: batchSize,
		newID:     uuid.NewString,
	}
}

// Sync отправляет очередь. Пустой entities - все виды. При первой ошибке пакет
// остается в очереди, синхронизация останавливается, уже отправленные пакеты возвращаются.
func (s *SyncService) Sync(ctx context.Context, entities ...sync.Entity) ([]BatchResult, error) {
	order, err := syncOrder(entities)
	if err != nil {
		return nil, err
	}

	var results []BatchResult
	for _, entity := range order {
		for {
			res, n, err := s.pushNext(ctx, entity)
			if err != nil {
				return results, err
			}
			if n == 0 {
				break
			}
			results = append(results, res)
			if n < s.batchSize {
				break
			}
		}
	}
	return results, nil
}

func (s *SyncService) pushNext(ctx context.Context, entity sync.Entity) (BatchResult, int, error) {
	items, err := s.queue.List(ctx, entity, s.batchSize)
	if err != nil {
		return BatchResult{}, 0, err
	}
	if len(items) == 0 {
		return BatchResult{}, 0, nil
	}

	batchID := s.newID()
	payloads := make([]json.RawMessage, 0, len(items))
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		payloads = append(payloads, it.Payload)
		ids = append(ids, it.ID)
	}

	log := s.log.With("batch_id", batchID, "entity", string(entity), "sent", len(items))

	resp, err := s.api.PushBatch(ctx, entity, payloads)
	if err == nil && resp.Status != sync.StatusSuccess {
		err = fmt.Errorf("%w: status %q", ErrBatchState, resp.Status)
	}
	if err != nil {
		log.Warn("batch kept in queue", "error", err)
		if logErr := s.queue.LogBatch(ctx, BatchLog{BatchID: batchID, Entity: entity, Sent: len(items), Error: err.Error()}); logErr != nil {
			log.Error("failed to write sync log", "error", logErr)
		}
		return BatchResult{}, 0, fmt.Errorf("%s: %w", entity, err)
	}

	if err := s.queue.Remove(ctx, ids); err != nil {
		return BatchResult{}, 0, err
	}

	res := BatchResult{
		BatchID:  batchID,
		Entity:   entity,
		Sent:     len(items),
		Synced:   resp.SyncedCount,
		Skipped:  resp.SkippedCount,
		Received: resp.TotalReceived,
	}
	if err := s.queue.LogBatch(ctx, BatchLog{
		BatchID: batchID,
		Entity:  entity,
		Sent:    res.Sent,
		Synced:  res.Synced,
		Skipped: res.Skipped,
	}); err != nil {
		log.Error("failed to write sync log", "error", err)
	}

	log.Info("batch synced", "synced_count", res.Synced, "skipped_count", res.Skipped)
	return res, len(items), nil
}

// syncOrder оставляет из sync.Entities только запрошенные, сохраняя порядок зависимостей.
func syncOrder(requested []sync.Entity) ([]sync.Entity, error) {
	if len(requested) == 0 {
		return sync.Entities, nil
	}

	want := make(map[sync.Entity]bool, len(requested))
	for _, e := range requested {
		if _, err := sync.ParseEntity(string(e)); err != nil {
			return nil, err
		}
		want[e] = true
	}

	order := make([]sync.Entity, 0, len(want))
	for _, e := range sync.Entities {
		if want[e] {
			order = append(order, e)
		}
	}
	return order, nil
}
