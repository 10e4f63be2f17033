package patient

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "patients-list",
		Method:      http.MethodGet,
		Path:        "/api/patients",
		Summary:     "Список пациентов по имени",
		Tags:        []string{"patients"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "patients-create",
		Method:        http.MethodPost,
		Path:          "/api/patients",
		Summary:       "Зарегистрировать пациента",
		Description:   "Создает карточку или перезаписывает карточку с тем же USN.",
		Tags:          []string{"patients"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "patients-update",
		Method:      http.MethodPut,
		Path:        "/api/patients/{usn}",
		Summary:     "Обновить карточку пациента",
		Tags:        []string{"patients"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "patients-delete",
		Method:      http.MethodDelete,
		Path:        "/api/patients/{usn}",
		Summary:     "Удалить пациента вместе с документами",
		Tags:        []string{"patients"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) searchOp() huma.Operation {
	return huma.Operation{
		OperationID: "patients-search",
		Method:      http.MethodGet,
		Path:        "/api/patients/search",
		Summary:     "Найти пациента по USN или телефону",
		Tags:        []string{"patients"},
		Middlewares: h.middleware,
	}
}
