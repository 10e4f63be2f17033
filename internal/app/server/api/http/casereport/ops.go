package casereport

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "case-reports-list",
		Method:      http.MethodGet,
		Path:        "/api/case-reports",
		Summary:     "Истории болезни, новые первыми",
		Tags:        []string{"case-reports"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "case-reports-create",
		Method:        http.MethodPost,
		Path:          "/api/case-reports",
		Summary:       "Сохранить историю болезни",
		Description:   "Запись с тем же номером перезаписывается. Отсутствующий пациент заводится заглушкой.",
		Tags:          []string{"case-reports"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}
