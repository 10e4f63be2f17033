package sync

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) reconcileOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-reconcile",
		Method:      http.MethodPost,
		Path:        "/api/sync/{entity}",
		Summary:     "Принять пакет записей от офлайн-клиента",
		Description: "Каждая запись применяется отдельно, непригодные пропускаются. Пакет фиксируется одной транзакцией.",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) legacyReconcileOp() huma.Operation {
	op := h.reconcileOp()
	op.OperationID = "sync-reconcile-root"
	op.Path = "/sync/{entity}"
	op.Summary = "Принять пакет записей (путь без /api)"
	return op
}

func (h *Handler) statusOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-status",
		Method:      http.MethodGet,
		Path:        "/api/sync/status",
		Summary:     "Число записей в синхронизируемых таблицах",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) legacyStatusOp() huma.Operation {
	op := h.statusOp()
	op.OperationID = "sync-status-root"
	op.Path = "/sync/status"
	return op
}
