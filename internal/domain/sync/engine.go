package sync

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
)

// Engine применяет пакет кандидатов к открытой транзакции. Ошибка отдельной записи
// превращается в пропуск и не прерывает пакет.
type Engine struct {
	log *slog.Logger
}

func NewEngine(log *slog.Logger) *Engine {
	return &Engine{log: log.With(slog.String("component", "sync_engine"))}
}

// Reconcile обрабатывает все записи по порядку. now подставляется как время по умолчанию.
func (e *Engine) Reconcile(ctx context.Context, entity Entity, b Batch, candidates []Candidate, now string) *Report {
	report := &Report{
		Entity:   entity,
		Received: len(candidates),
		Results:  make([]Result, 0, len(candidates)),
	}

	for i, c := range candidates {
		res := e.apply(ctx, b, c, now)
		res.Index = i
		if res.Outcome == OutcomeSkipped {
			attrs := []any{
				slog.String("entity", string(entity)),
				slog.Int("index", i),
				slog.String("key", res.Key),
				slog.String("reason", string(res.Reason)),
			}
			if res.Err != nil {
				attrs = append(attrs, "error", res.Err)
			}
			e.log.Warn("Record skipped", attrs...)
		}
		report.add(res)
	}

	return report
}

func (e *Engine) apply(ctx context.Context, b Batch, c Candidate, now string) Result {
	res := Result{Key: c.Key(), Outcome: OutcomeSkipped}

	plan, reason := c.Normalize(now)
	if reason != "" {
		res.Reason = reason
		if m, ok := c.(Malformed); ok {
			res.Err = m.Err
		}
		return res
	}

	err := b.Within(ctx, func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic while applying record: %v", r)
			}
		}()
		return plan.Apply(ctx, b)
	})
	if err != nil {
		var se *SkipError
		if errors.As(err, &se) {
			res.Reason = se.Reason
			return res
		}
		res.Reason = ReasonStoreError
		res.Err = err
		return res
	}

	res.Outcome = OutcomeSynced
	return res
}
