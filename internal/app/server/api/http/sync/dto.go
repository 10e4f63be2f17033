package sync

import "hmis/internal/domain/sync"

// batchInput - пакет принимается как есть: разбор массива и приведение полей
// выполняет движок синхронизации, а не валидатор схемы.
type batchInput struct {
	Entity  string `path:"entity" doc:"patients, vitals, prescriptions, case-reports or sick-intimations"`
	RawBody []byte
}

type batchOutput struct {
	Body sync.BatchResponse
}

type statusOutput struct {
	Body sync.StatusResponse
}
