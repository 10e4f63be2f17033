package sync

import (
	"errors"
	"fmt"
)

var (
	ErrNotArray      = errors.New("batch is not an array")
	ErrUnknownEntity = errors.New("unknown sync entity")
)

// SkipError - отказ применить запись, который считается пропуском, а не сбоем хранилища.
type SkipError struct {
	Reason SkipReason
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("record skipped: %s", e.Reason)
}

func skip(reason SkipReason) error {
	return &SkipError{Reason: reason}
}

// NotArrayMessage - текст ошибки 400, которого ждут офлайн-клиенты.
func NotArrayMessage(e Entity) string {
	return "Expected array of " + e.Noun()
}
