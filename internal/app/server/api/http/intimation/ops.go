package intimation

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "sick-intimations-list",
		Method:      http.MethodGet,
		Path:        "/api/sick-intimations",
		Summary:     "Извещения о болезни, новые первыми",
		Tags:        []string{"sick-intimations"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "sick-intimations-create",
		Method:        http.MethodPost,
		Path:          "/api/sick-intimations",
		Summary:       "Сохранить извещение о болезни",
		Tags:          []string{"sick-intimations"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}
