package lab

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) testsOp() huma.Operation {
	return huma.Operation{
		OperationID: "lab-tests-list",
		Method:      http.MethodGet,
		Path:        "/api/lab-tests",
		Summary:     "Активные анализы из справочника",
		Tags:        []string{"lab"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOrderOp() huma.Operation {
	return huma.Operation{
		OperationID:   "lab-orders-create",
		Method:        http.MethodPost,
		Path:          "/api/lab-orders",
		Summary:       "Назначить анализ",
		Tags:          []string{"lab"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) listOrdersOp() huma.Operation {
	return huma.Operation{
		OperationID: "lab-orders-list",
		Method:      http.MethodGet,
		Path:        "/api/lab-orders",
		Summary:     "Назначения с позициями",
		Tags:        []string{"lab"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) setResultOp() huma.Operation {
	return huma.Operation{
		OperationID: "lab-results-set",
		Method:      http.MethodPost,
		Path:        "/api/lab-results/{item_id}",
		Summary:     "Внести результат анализа",
		Description: "Позиция закрывается, назначение закрывается, когда в нем не остается открытых позиций.",
		Tags:        []string{"lab"},
		Middlewares: h.middleware,
	}
}
