package service

//go:generate mockgen -source=checkin.go -destination=mocks/mock_checkin.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/geo_checkin/internal/config"
	"github.com/shenikar/geo_checkin/internal/errs"
	"github.com/shenikar/geo_checkin/internal/geo"
	"github.com/shenikar/geo_checkin/internal/metrics"
	"github.com/shenikar/geo_checkin/internal/models"
	"github.com/shenikar/geo_checkin/internal/proximity"
	"github.com/shenikar/geo_checkin/internal/session"
	"github.com/shenikar/geo_checkin/internal/visit"
	"github.com/shenikar/geo_checkin/internal/webhook"
	"github.com/sirupsen/logrus"
)

// ErrSessionNotFound - сессия не существует или истекла
var ErrSessionNotFound = errors.New("session not found")

// SiteRegistry - источник списка геозон
type SiteRegistry interface {
	ListSites() []models.Site
}

// SessionStore хранит сессии сценария посещения
type SessionStore interface {
	Create(ctx context.Context, s *visit.Session) error
	Get(ctx context.Context, id uuid.UUID) (*visit.Session, error)
	Update(ctx context.Context, id uuid.UUID, fn session.UpdateFunc) (*visit.Session, error)
}

// VisitRepository определяет контракт для работы с бд посещений
type VisitRepository interface {
	SaveVisit(ctx context.Context, visit *models.Visit) error
	SavePhoto(ctx context.Context, photo *models.PhotoRecord) error
	ListVisitsBySite(ctx context.Context, siteID string, page, pageSize int) ([]*models.Visit, error)
	CountVisitors(ctx context.Context, minutes int) (int, error)
}

// VisitLog - журнал посещений во внешней таблице
type VisitLog interface {
	AppendRow(ctx context.Context, rangeName string, values []any) error
}

// PhotoUploader сохраняет фото посещения
type PhotoUploader interface {
	Upload(ctx context.Context, photo []byte, siteName, userID string) (*models.UploadResult, error)
}

// CheckinService определяет контракт бизнес-логики отметок посещений
type CheckinService interface {
	ListSites(ctx context.Context) []models.Site
	RankSites(ctx context.Context, position geo.Point) (*proximity.Result, error)
	StartSession(ctx context.Context, userID string) (*visit.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*visit.Session, error)
	ReportFix(ctx context.Context, id uuid.UUID, position geo.Point) (*visit.Session, error)
	RequestRefresh(ctx context.Context, id uuid.UUID) (*visit.Session, error)
	ConfirmVisit(ctx context.Context, id uuid.UUID) (*visit.Session, error)
	UploadSessionPhoto(ctx context.Context, id uuid.UUID, photo []byte) (*visit.Session, error)
	UploadPhoto(ctx context.Context, siteName, userID string, photo []byte) (*models.UploadResult, error)
	ListSiteVisits(ctx context.Context, siteID string, page, pageSize int) ([]*models.Visit, error)
	GetStats(ctx context.Context) (int, error)
}

type checkinService struct {
	registry  SiteRegistry
	sessions  SessionStore
	repo      VisitRepository
	uploader  PhotoUploader
	visitLog  VisitLog
	publisher webhook.WebhookPublisher
	logger    *logrus.Logger
	cfg       *config.Config
	now       func() time.Time
}

// NewCheckinService создает сервис. visitLog может быть nil, если таблица не настроена.
func NewCheckinService(
	registry SiteRegistry,
	sessions SessionStore,
	repo VisitRepository,
	uploader PhotoUploader,
	visitLog VisitLog,
	publisher webhook.WebhookPublisher,
	logger *logrus.Logger,
	cfg *config.Config,
) CheckinService {
	return &checkinService{
		registry:  registry,
		sessions:  sessions,
		repo:      repo,
		uploader:  uploader,
		visitLog:  visitLog,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// ListSites возвращает текущий список геозон
func (s *checkinService) ListSites(_ context.Context) []models.Site {
	return s.registry.ListSites()
}

// RankSites ранжирует геозоны относительно позиции без сессии
func (s *checkinService) RankSites(_ context.Context, position geo.Point) (*proximity.Result, error) {
	if err := position.Validate(); err != nil {
		return nil, errs.Validation("position", err.Error())
	}
	result := proximity.Evaluate(position, s.registry.ListSites())
	return &result, nil
}

// StartSession создает сессию в состоянии Idle
func (s *checkinService) StartSession(ctx context.Context, userID string) (*visit.Session, error) {
	if userID == "" {
		userID = s.cfg.DefaultUserID
	}
	log := s.logger.WithFields(logrus.Fields{
		"service": "checkin",
		"method":  "StartSession",
		"user_id": userID,
	})

	sess := visit.NewSession(userID, s.now())
	if err := s.sessions.Create(ctx, sess); err != nil {
		log.WithError(err).Error("Failed to create session")
		return nil, fmt.Errorf("service: could not create session: %w", err)
	}

	log.WithField("session_id", sess.ID).Info("Session started")
	return sess, nil
}

// GetSession возвращает сессию по ID
func (s *checkinService) GetSession(ctx context.Context, id uuid.UUID) (*visit.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, s.storeError(err)
	}
	return sess, nil
}

// ReportFix применяет новую позицию: ранжирует геозоны и обновляет состояние сессии
func (s *checkinService) ReportFix(ctx context.Context, id uuid.UUID, position geo.Point) (*visit.Session, error) {
	if err := position.Validate(); err != nil {
		return nil, errs.Validation("position", err.Error())
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":    "checkin",
		"method":     "ReportFix",
		"session_id": id,
	})

	closest := proximity.Closest(proximity.Rank(position, s.registry.ListSites()))
	tr, err := s.apply(ctx, id, visit.Fix{Position: position, Closest: closest})
	if err != nil {
		log.WithError(err).Warn("Failed to apply fix")
		return nil, err
	}

	metrics.FixesTotal.WithLabelValues(string(tr.To)).Inc()
	entry := log.WithField("state", tr.To)
	if closest != nil {
		entry = entry.WithFields(logrus.Fields{
			"closest_site": closest.ID,
			"distance":     closest.DistanceMeters,
		})
	}
	entry.Debug("Fix applied")
	return tr.Session, nil
}

// RequestRefresh отмечает запрос новой позиции; состояние не меняется
func (s *checkinService) RequestRefresh(ctx context.Context, id uuid.UUID) (*visit.Session, error) {
	tr, err := s.apply(ctx, id, visit.Refresh{})
	if err != nil {
		return nil, err
	}
	return tr.Session, nil
}

// ConfirmVisit подтверждает посещение ближайшей геозоны. Побочные эффекты (бд, таблица, вебхук)
// выполняются после сохранения сессии; их ошибки только логируются.
func (s *checkinService) ConfirmVisit(ctx context.Context, id uuid.UUID) (*visit.Session, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "checkin",
		"method":     "ConfirmVisit",
		"session_id": id,
	})

	tr, err := s.apply(ctx, id, visit.Confirm{})
	if err != nil {
		if errors.Is(err, visit.ErrRejected) {
			metrics.TransitionsRejected.WithLabelValues("confirm").Inc()
		}
		log.WithError(err).Warn("Visit confirmation rejected")
		return nil, err
	}
	metrics.VisitsConfirmed.Inc()

	sess := tr.Session
	site := sess.ConfirmedSite
	log = log.WithFields(logrus.Fields{
		"user_id": sess.UserID,
		"site_id": site.ID,
	})
	log.Info("Visit confirmed")

	v := &models.Visit{
		SessionID:      sess.ID,
		UserID:         sess.UserID,
		SiteID:         site.ID,
		SiteName:       site.Name,
		Latitude:       sess.UserPosition.Latitude,
		Longitude:      sess.UserPosition.Longitude,
		DistanceMeters: site.DistanceMeters,
		ConfirmedAt:    sess.UpdatedAt,
	}
	if err := s.repo.SaveVisit(ctx, v); err != nil {
		log.WithError(err).Error("Failed to save visit in repository")
	}

	if s.visitLog != nil {
		row := []any{
			v.ConfirmedAt.UTC().Format(time.RFC3339),
			v.UserID,
			v.SiteID,
			v.SiteName,
			fmt.Sprintf("%f,%f", v.Latitude, v.Longitude),
			fmt.Sprintf("%.1f", v.DistanceMeters),
		}
		if err := s.visitLog.AppendRow(ctx, s.cfg.SheetVisitsRange, row); err != nil {
			log.WithError(err).Warn("Failed to append visit to sheet")
		}
	}

	s.publish(ctx, log, webhook.WebhookEvent{
		Type:           webhook.EventVisitConfirmed,
		SessionID:      sess.ID,
		UserID:         sess.UserID,
		SiteID:         site.ID,
		SiteName:       site.Name,
		Latitude:       v.Latitude,
		Longitude:      v.Longitude,
		DistanceMeters: site.DistanceMeters,
		Timestamp:      v.ConfirmedAt,
	})
	return sess, nil
}

// UploadSessionPhoto загружает фото для подтвержденного посещения.
// Сохранение файла выполняется вне обновления сессии; при ошибке сессия возвращается в Confirmed.
func (s *checkinService) UploadSessionPhoto(ctx context.Context, id uuid.UUID, photo []byte) (*visit.Session, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "checkin",
		"method":     "UploadSessionPhoto",
		"session_id": id,
	})

	tr, err := s.apply(ctx, id, visit.StartUpload{})
	if err != nil {
		if errors.Is(err, visit.ErrRejected) {
			metrics.TransitionsRejected.WithLabelValues("upload").Inc()
		}
		log.WithError(err).Warn("Photo upload rejected")
		return nil, err
	}
	sess := tr.Session
	site := sess.ClosestSite

	// завершающие события применяются и после отмены запроса, иначе сессия застрянет в UploadInProgress
	done := context.WithoutCancel(ctx)

	result, uploadErr := s.uploader.Upload(ctx, photo, site.Name, sess.UserID)
	if uploadErr != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		log.WithError(uploadErr).Warn("Photo upload failed")
		if _, err := s.apply(done, id, visit.UploadFailed{Reason: uploadErr.Error()}); err != nil {
			log.WithError(err).Error("Failed to record upload failure")
		}
		return nil, uploadErr
	}

	tr, err = s.apply(done, id, visit.UploadSucceeded{Path: result.Path})
	if err != nil {
		log.WithError(err).Error("Failed to record upload success")
		return nil, err
	}
	s.recordPhoto(done, log, site.Name, result)
	s.publish(done, log, webhook.WebhookEvent{
		Type:      webhook.EventPhotoUploaded,
		SessionID: sess.ID,
		UserID:    sess.UserID,
		SiteID:    site.ID,
		SiteName:  site.Name,
		PhotoPath: result.Path,
		Timestamp: tr.Session.UpdatedAt,
	})
	return tr.Session, nil
}

// UploadPhoto - загрузка без сессии: геозона передается по имени
func (s *checkinService) UploadPhoto(ctx context.Context, siteName, userID string, photo []byte) (*models.UploadResult, error) {
	if userID == "" {
		userID = s.cfg.DefaultUserID
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":   "checkin",
		"method":    "UploadPhoto",
		"site_name": siteName,
		"user_id":   userID,
	})

	result, err := s.uploader.Upload(ctx, photo, siteName, userID)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		log.WithError(err).Warn("Photo upload failed")
		return nil, err
	}

	s.recordPhoto(ctx, log, siteName, result)
	s.publish(ctx, log, webhook.WebhookEvent{
		Type:      webhook.EventPhotoUploaded,
		UserID:    userID,
		SiteName:  siteName,
		PhotoPath: result.Path,
		Timestamp: s.now(),
	})
	return result, nil
}

// ListSiteVisits возвращает подтвержденные посещения геозоны с пагинацией
func (s *checkinService) ListSiteVisits(ctx context.Context, siteID string, page, pageSize int) ([]*models.Visit, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "checkin",
		"method":    "ListSiteVisits",
		"site_id":   siteID,
		"page":      page,
		"page_size": pageSize,
	})

	visits, err := s.repo.ListVisitsBySite(ctx, siteID, page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list visits from repository")
		return nil, fmt.Errorf("service: could not list visits: %w", err)
	}
	log.WithField("count", len(visits)).Debug("Visits listed")
	return visits, nil
}

// GetStats возвращает количество уникальных посетителей за окно статистики
func (s *checkinService) GetStats(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "checkin",
		"method":  "GetStats",
		"window":  s.cfg.StatsTimeWindowMinutes,
	})

	count, err := s.repo.CountVisitors(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		log.WithError(err).Error("Failed to count visitors")
		return 0, fmt.Errorf("service: could not get stats: %w", err)
	}
	return count, nil
}

// apply атомарно применяет событие к сессии в хранилище
func (s *checkinService) apply(ctx context.Context, id uuid.UUID, ev visit.Event) (visit.Transition, error) {
	var tr visit.Transition
	_, err := s.sessions.Update(ctx, id, func(current *visit.Session) (*visit.Session, error) {
		var err error
		tr, err = visit.Apply(current, ev, s.now())
		if err != nil {
			return nil, err
		}
		return tr.Session, nil
	})
	if err != nil {
		return visit.Transition{}, s.storeError(err)
	}
	return tr, nil
}

func (s *checkinService) storeError(err error) error {
	if errors.Is(err, session.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}

func (s *checkinService) recordPhoto(ctx context.Context, log *logrus.Entry, siteName string, result *models.UploadResult) {
	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	metrics.UploadBytes.Observe(float64(result.SizeBytes))
	if err := s.repo.SavePhoto(ctx, result.ToPhotoRecord(siteName, s.now())); err != nil {
		log.WithError(err).Error("Failed to save photo record")
	}
	log.WithField("path", result.Path).Info("Photo uploaded")
}

func (s *checkinService) publish(ctx context.Context, log *logrus.Entry, event webhook.WebhookEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).WithField("event", event.Type).Error("Failed to publish webhook event")
	}
}
