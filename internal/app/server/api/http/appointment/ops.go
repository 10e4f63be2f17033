package appointment

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "appointments-list",
		Method:      http.MethodGet,
		Path:        "/api/appointments",
		Summary:     "Записи на прием",
		Description: "Без фильтра возвращает последние 200 записей.",
		Tags:        []string{"appointments"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "appointments-create",
		Method:        http.MethodPost,
		Path:          "/api/appointments",
		Summary:       "Записать на прием",
		Tags:          []string{"appointments"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "appointments-update",
		Method:      http.MethodPost,
		Path:        "/api/appointments/{id}/update",
		Summary:     "Изменить запись",
		Description: "Меняются только переданные непустые поля.",
		Tags:        []string{"appointments"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "appointments-delete",
		Method:      http.MethodPost,
		Path:        "/api/appointments/{id}/delete",
		Summary:     "Удалить запись",
		Tags:        []string{"appointments"},
		Middlewares: h.middleware,
	}
}
