// Package flex содержит скалярные типы для разбора JSON, собранного офлайн-клиентами:
// числа могут прийти строкой, строки числом, любое поле может быть null.
package flex

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrNotScalar = errors.New("value is not a scalar")

// String принимает строку, число, bool или null.
type String struct {
	Value string
	Set   bool
}

func (s *String) UnmarshalJSON(b []byte) error {
	*s = String{}
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		return nil
	case b[0] == '"':
		if err := json.Unmarshal(b, &s.Value); err != nil {
			return err
		}
	case b[0] == '{', b[0] == '[':
		return ErrNotScalar
	default:
		// число или bool сохраняем как есть
		s.Value = string(b)
	}
	s.Set = true
	return nil
}

func (s String) MarshalJSON() ([]byte, error) {
	if !s.Set {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// Trim возвращает значение без пробелов по краям.
func (s String) Trim() string {
	return strings.TrimSpace(s.Value)
}

// Or возвращает обрезанное значение или def, если оно пустое.
func (s String) Or(def string) string {
	if v := s.Trim(); v != "" {
		return v
	}
	return def
}

// Ptr возвращает nil для отсутствующего значения.
func (s String) Ptr() *string {
	if !s.Set {
		return nil
	}
	v := s.Value
	return &v
}

// TrimPtr возвращает nil для отсутствующего или пустого значения.
func (s String) TrimPtr() *string {
	v := s.Trim()
	if v == "" {
		return nil
	}
	return &v
}

// Int принимает целое число, дробное (отбрасывается дробная часть) или строку с целым.
// Неразбираемое значение не ошибка: Invalid выставляется в true.
type Int struct {
	Value   int
	Set     bool
	Invalid bool
}

func (i *Int) UnmarshalJSON(b []byte) error {
	*i = Int{}
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		return nil
	case b[0] == '"':
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		i.Set = true
		v, err := strconv.Atoi(raw)
		if err != nil {
			i.Invalid = true
			return nil
		}
		i.Value = v
	case b[0] == '{', b[0] == '[':
		return ErrNotScalar
	default:
		i.Set = true
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			i.Invalid = true
			return nil
		}
		i.Value = int(f)
	}
	return nil
}

func (i Int) MarshalJSON() ([]byte, error) {
	if !i.Valid() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(i.Value)), nil
}

// Valid сообщает, что значение передано и разобрано.
func (i Int) Valid() bool {
	return i.Set && !i.Invalid
}

// Or возвращает значение или def, если оно отсутствует или не разобрано.
func (i Int) Or(def int) int {
	if i.Valid() {
		return i.Value
	}
	return def
}

// Ptr возвращает nil, если значения нет.
func (i Int) Ptr() *int {
	if !i.Valid() {
		return nil
	}
	v := i.Value
	return &v
}

// Float принимает число или строку с числом.
type Float struct {
	Value   float64
	Set     bool
	Invalid bool
}

func (f *Float) UnmarshalJSON(b []byte) error {
	*f = Float{}
	b = bytes.TrimSpace(b)
	var raw string
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		return nil
	case b[0] == '"':
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
	case b[0] == '{', b[0] == '[':
		return ErrNotScalar
	default:
		raw = string(b)
	}
	f.Set = true
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		f.Invalid = true
		return nil
	}
	f.Value = v
	return nil
}

func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func (f Float) Valid() bool {
	return f.Set && !f.Invalid
}

func (f Float) Ptr() *float64 {
	if !f.Valid() {
		return nil
	}
	v := f.Value
	return &v
}

// Bool принимает true/false, числа (0 - ложь) и строки "true", "1", "yes", "on".
type Bool struct {
	Value bool
	Set   bool
}

func (v *Bool) UnmarshalJSON(b []byte) error {
	*v = Bool{}
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		return nil
	case bytes.Equal(b, []byte("true")):
		v.Value = true
	case bytes.Equal(b, []byte("false")):
		v.Value = false
	case b[0] == '"':
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1", "yes", "on":
			v.Value = true
		case "":
			return nil
		}
	case b[0] == '{', b[0] == '[':
		return ErrNotScalar
	default:
		n, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return nil
		}
		v.Value = n != 0
	}
	v.Set = true
	return nil
}

func (v Bool) MarshalJSON() ([]byte, error) {
	if !v.Set {
		return []byte("null"), nil
	}
	return json.Marshal(v.Value)
}

// Or возвращает значение или def, если поле не передано.
func (v Bool) Or(def bool) bool {
	if v.Set {
		return v.Value
	}
	return def
}
