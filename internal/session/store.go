// Package session хранит сессии сценария посещения между HTTP-запросами.
package session

import (
	"errors"

	"github.com/shenikar/geo_checkin/internal/visit"
)

// ErrNotFound - сессия не найдена или истекла
var ErrNotFound = errors.New("session not found")

// UpdateFunc получает текущую сессию и возвращает новую. Ошибка отменяет сохранение.
type UpdateFunc func(current *visit.Session) (*visit.Session, error)
