// Package httperr задаёт форму ошибок API: {"error": "<message>"}.
// Её читают фронтенд и офлайн-клиенты, поэтому стандартная модель huma подменяется.
package httperr

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// Error - тело ответа с ошибкой.
type Error struct {
	status  int
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetStatus() int {
	return e.status
}

// New собирает ошибку API. Детали валидации huma дописываются к сообщению через "; ".
func New(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}
	return &Error{status: status, Message: msg}
}

// Install подменяет конструктор ошибок huma. Вызывается один раз при сборке API.
func Install() {
	huma.NewError = New
}

// Decode разбирает тело запроса. Битый JSON - 400 "Invalid JSON".
func Decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return New(http.StatusBadRequest, "Invalid JSON")
	}
	return nil
}
