package health

// Output - ответ проверки доступности
type Output struct {
	Body Response
}

type Response struct {
	Status    string `json:"status" example:"ok" doc:"Health status of the service"`
	Timestamp string `json:"timestamp" doc:"Server time, UTC"`
}
