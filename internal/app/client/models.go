package client

import (
	"encoding/json"
	"errors"

	"hmis/internal/domain/sync"
)

var (
	ErrNotArray   = errors.New("ожидался JSON-массив записей")
	ErrBadRecord  = errors.New("элемент массива не является JSON-объектом")
	ErrBatchState = errors.New("сервер не подтвердил пакет")
)

// Item - запись в локальной очереди.
type Item struct {
	ID        int64
	Entity    sync.Entity
	Payload   json.RawMessage
	Digest    string
	CreatedAt string
}

// Pending - число записей в очереди по видам.
type Pending map[sync.Entity]int

// BatchLog - строка журнала sync_log.
type BatchLog struct {
	BatchID string
	Entity  sync.Entity
	Sent    int
	Synced  int
	Skipped int
	Error   string
	At      string
}

// EnqueueResult - итог добавления файла в очередь.
type EnqueueResult struct {
	Added      int
	Duplicates int
}
