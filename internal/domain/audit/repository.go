package audit

import "context"

type Repository interface {
	Insert(ctx context.Context, e Entry) (int64, error)
	// List возвращает последние записи, новые первыми.
	List(ctx context.Context, limit int) ([]Entry, error)
}
