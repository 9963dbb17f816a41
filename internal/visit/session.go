// Package visit - конечный автомат сценария посещения: позиция, подтверждение, загрузка фото.
package visit

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/geo_checkin/internal/geo"
	"github.com/shenikar/geo_checkin/internal/models"
)

// State - видимое пользователю состояние сценария
type State string

const (
	StateIdle             State = "idle"
	StateLocated          State = "located"
	StateInside           State = "inside"
	StateOutside          State = "outside"
	StateConfirmRequested State = "confirm_requested"
	StateConfirmed        State = "confirmed"
	StateUploadInProgress State = "upload_in_progress"
	StateUploadDone       State = "upload_done"
)

// UploadState - состояние загрузки фотографии
type UploadState string

const (
	UploadNone       UploadState = "none"
	UploadInProgress UploadState = "in_progress"
	UploadDone       UploadState = "done"
)

// Session - состояние одного взаимодействия пользователя. Не персистентно:
// живет до истечения TTL в хранилище сессий.
type Session struct {
	ID     uuid.UUID `json:"id"`
	UserID string    `json:"user_id"`

	UserPosition   *geo.Point         `json:"user_position,omitempty"`
	ClosestSite    *models.RankedSite `json:"closest_site,omitempty"`
	IsInside       bool               `json:"is_inside"`
	VisitConfirmed bool               `json:"visit_confirmed"`
	Upload         UploadState        `json:"upload_state"`

	// ConfirmedSite - ближайшая геозона в момент подтверждения
	ConfirmedSite *models.RankedSite `json:"confirmed_site,omitempty"`
	PhotoPath     string             `json:"photo_path,omitempty"`
	LastError     string             `json:"last_error,omitempty"`
	// LocateRequests растет на каждый запрос обновления позиции
	LocateRequests int `json:"locate_requests"`
	Fixes          int `json:"fixes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession создает сессию в состоянии Idle
func NewSession(userID string, now time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Upload:    UploadNone,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// State вычисляет текущее состояние из полей сессии.
// Подтверждение одностороннее: после него позиция вне геозоны не возвращает Outside.
func (s *Session) State() State {
	switch {
	case s.Upload == UploadDone:
		return StateUploadDone
	case s.Upload == UploadInProgress:
		return StateUploadInProgress
	case s.VisitConfirmed:
		return StateConfirmed
	case s.UserPosition == nil:
		return StateIdle
	case s.ClosestSite == nil:
		return StateLocated
	case s.IsInside:
		return StateInside
	default:
		return StateOutside
	}
}

// Clone возвращает глубокую копию
func (s *Session) Clone() *Session {
	c := *s
	if s.UserPosition != nil {
		p := *s.UserPosition
		c.UserPosition = &p
	}
	if s.ClosestSite != nil {
		cs := *s.ClosestSite
		c.ClosestSite = &cs
	}
	if s.ConfirmedSite != nil {
		cs := *s.ConfirmedSite
		c.ConfirmedSite = &cs
	}
	return &c
}
