package metrics

import "context"

type Repository interface {
	// Dashboard считает показатели за день day в формате YYYY-MM-DD.
	Dashboard(ctx context.Context, day string) (Dashboard, error)
}
