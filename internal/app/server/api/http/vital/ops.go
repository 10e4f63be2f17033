package vital

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "vitals-list",
		Method:      http.MethodGet,
		Path:        "/api/vitals",
		Summary:     "Замеры, новые первыми",
		Tags:        []string{"vitals"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "vitals-create",
		Method:        http.MethodPost,
		Path:          "/api/vitals",
		Summary:       "Записать замер",
		Description:   "Возвращает сохраненную строку вместе с вычисленным BMI.",
		Tags:          []string{"vitals"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}
