package lab

import "context"

// Repository интерфейс хранилища лабораторных заказов
type Repository interface {
	// ActiveTests возвращает действующие анализы по названию.
	ActiveTests(ctx context.Context) ([]Test, error)
	// FindActiveTest возвращает ErrTestNotFound для неизвестного или отключённого кода.
	FindActiveTest(ctx context.Context, code string) (Test, error)
	PatientExists(ctx context.Context, usn string) (bool, error)
	// CreateOrder создаёт заказ с одной позицией и возвращает id заказа.
	CreateOrder(ctx context.Context, o Order, testID int64) (int64, error)
	ListOrders(ctx context.Context, usn string, limit int) ([]OrderLine, error)
	// SetResult закрывает позицию и, если открытых позиций не осталось, весь заказ.
	SetResult(ctx context.Context, r Result) (bool, error)
}
