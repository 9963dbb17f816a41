package visit

import (
	"errors"
	"fmt"
	"time"

	"github.com/shenikar/geo_checkin/internal/geo"
	"github.com/shenikar/geo_checkin/internal/models"
	"github.com/shenikar/geo_checkin/internal/proximity"
)

// ErrRejected - переход запрещен в текущем состоянии, сессия не изменяется
var ErrRejected = errors.New("transition rejected")

// Event - событие сценария
type Event interface {
	eventName() string
}

// Fix - получена позиция пользователя. Closest - результат ранжирования (nil для пустого реестра).
type Fix struct {
	Position geo.Point
	Closest  *models.RankedSite
}

// Refresh - пользователь запросил новую позицию
type Refresh struct{}

// Confirm - пользователь подтверждает посещение
type Confirm struct{}

// StartUpload - пользователь выбрал файл
type StartUpload struct{}

// UploadSucceeded - хранилище приняло фото
type UploadSucceeded struct {
	Path string
}

// UploadFailed - загрузка не удалась, можно повторить
type UploadFailed struct {
	Reason string
}

func (Fix) eventName() string             { return "fix" }
func (Refresh) eventName() string         { return "refresh" }
func (Confirm) eventName() string         { return "confirm" }
func (StartUpload) eventName() string     { return "start_upload" }
func (UploadSucceeded) eventName() string { return "upload_succeeded" }
func (UploadFailed) eventName() string    { return "upload_failed" }

// Transition - результат применения события
type Transition struct {
	From    State
	To      State
	Session *Session
	// Path - промежуточные состояния; Confirm проходит через ConfirmRequested
	Path []State
}

// Apply - чистая функция перехода (session, event) -> session.
// Исходная сессия не изменяется. При запрещенном переходе возвращается ErrRejected.
func Apply(s *Session, ev Event, now time.Time) (Transition, error) {
	from := s.State()
	next := s.Clone()
	path := []State{}

	switch e := ev.(type) {
	case Fix:
		if err := e.Position.Validate(); err != nil {
			return Transition{}, fmt.Errorf("invalid fix: %w", err)
		}
		pos := e.Position
		next.UserPosition = &pos
		next.Fixes++
		if e.Closest != nil {
			closest := *e.Closest
			next.ClosestSite = &closest
			next.IsInside = proximity.IsInside(closest)
		} else {
			next.ClosestSite = nil
			next.IsInside = false
		}

	case Refresh:
		next.LocateRequests++

	case Confirm:
		if from != StateInside {
			return Transition{}, rejected(ev, from)
		}
		path = append(path, StateConfirmRequested)
		next.VisitConfirmed = true
		site := *next.ClosestSite
		next.ConfirmedSite = &site

	case StartUpload:
		if from != StateConfirmed || next.ClosestSite == nil {
			return Transition{}, rejected(ev, from)
		}
		next.Upload = UploadInProgress
		next.LastError = ""

	case UploadSucceeded:
		if from != StateUploadInProgress {
			return Transition{}, rejected(ev, from)
		}
		next.Upload = UploadDone
		next.PhotoPath = e.Path

	case UploadFailed:
		if from != StateUploadInProgress {
			return Transition{}, rejected(ev, from)
		}
		next.Upload = UploadNone
		next.LastError = e.Reason

	default:
		return Transition{}, fmt.Errorf("unknown event %T", ev)
	}

	next.UpdatedAt = now
	to := next.State()
	return Transition{From: from, To: to, Session: next, Path: append(path, to)}, nil
}

func rejected(ev Event, state State) error {
	return fmt.Errorf("%w: %s in state %s", ErrRejected, ev.eventName(), state)
}
