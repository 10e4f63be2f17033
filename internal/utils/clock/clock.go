package clock

import "time"

// Layout - формат всех временных меток в базе: ISO-8601 в UTC с микросекундами.
const Layout = "2006-01-02T15:04:05.000000Z07:00"

// DateLayout - формат даты для сравнения по дню.
const DateLayout = "2006-01-02"

// Func - источник текущего времени, подменяется в тестах.
type Func func() time.Time

// UTC возвращает текущее время в UTC.
func UTC() time.Time {
	return time.Now().UTC()
}

// Format приводит время к UTC и форматирует по Layout.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Fixed возвращает часы, которые всегда показывают t.
func Fixed(t time.Time) Func {
	return func() time.Time { return t }
}
