package prescription

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "prescriptions-list",
		Method:      http.MethodGet,
		Path:        "/api/prescriptions",
		Summary:     "Рецепты, новые первыми",
		Tags:        []string{"prescriptions"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "prescriptions-create",
		Method:        http.MethodPost,
		Path:          "/api/prescriptions",
		Summary:       "Выписать рецепт",
		Tags:          []string{"prescriptions"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) sheetOp() huma.Operation {
	return huma.Operation{
		OperationID: "prescriptions-sheet",
		Method:      http.MethodGet,
		Path:        "/api/prescriptions/{id}",
		Summary:     "Данные печатной формы рецепта",
		Tags:        []string{"prescriptions"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) addItemOp() huma.Operation {
	return huma.Operation{
		OperationID:   "prescriptions-add-item",
		Method:        http.MethodPost,
		Path:          "/api/prescriptions/{id}/items",
		Summary:       "Добавить позицию в рецепт",
		Description:   "Препарат ищется в справочнике по названию и заводится, если его там нет.",
		Tags:          []string{"prescriptions"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}
