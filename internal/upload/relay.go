// Package upload сохраняет фотографии посещений под путем, определяемым геозоной и пользователем.
package upload

import (
	"context"
	"path"
	"strings"

	"github.com/shenikar/geo_checkin/internal/errs"
	"github.com/shenikar/geo_checkin/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	photoExt = ".jpg"
	thumbDir = "thumbs"
)

// Relay принимает фото и сохраняет его в PhotoStore
type Relay struct {
	store      PhotoStore
	urlPrefix  string
	thumbnails bool
	logger     *logrus.Logger
}

// NewRelay создает релей. urlPrefix - публичный префикс путей, например "/uploads".
func NewRelay(store PhotoStore, urlPrefix string, thumbnails bool, logger *logrus.Logger) *Relay {
	return &Relay{
		store:      store,
		urlPrefix:  "/" + strings.Trim(urlPrefix, "/"),
		thumbnails: thumbnails,
		logger:     logger,
	}
}

// Upload сохраняет фото в <site>/<user>.jpg, миниатюру - в <site>/thumbs/<user>.jpg. Повторная загрузка той же пары перезаписывает файл.
func (r *Relay) Upload(ctx context.Context, photo []byte, siteName, userID string) (*models.UploadResult, error) {
	if len(photo) == 0 {
		return nil, errs.Validation("file", "is empty")
	}
	siteKey, err := sanitizeRequired("parishName", siteName)
	if err != nil {
		return nil, err
	}
	userKey, err := sanitizeRequired("userId", userID)
	if err != nil {
		return nil, err
	}

	log := r.logger.WithFields(logrus.Fields{
		"component": "upload",
		"site_key":  siteKey,
		"user_key":  userKey,
		"size":      len(photo),
	})

	relPath := path.Join(siteKey, userKey+photoExt)
	if err := r.store.Save(ctx, relPath, photo); err != nil {
		log.WithError(err).Error("Failed to save photo")
		if errs.IsStorage(err) {
			return nil, err
		}
		return nil, &errs.StorageError{Op: "save", Path: relPath, Err: err}
	}

	meta := ReadMetadata(photo)
	result := &models.UploadResult{
		Path:      r.publicPath(relPath),
		SiteKey:   siteKey,
		UserKey:   userKey,
		SizeBytes: int64(len(photo)),
		TakenAt:   meta.TakenAt,
		Latitude:  meta.Latitude,
		Longitude: meta.Longitude,
	}

	if r.thumbnails {
		result.ThumbnailPath = r.saveThumbnail(ctx, log, photo, siteKey, userKey)
	}

	log.WithField("path", result.Path).Info("Photo saved")
	return result, nil
}

// saveThumbnail - миниатюра не обязательна, ошибки только логируются
func (r *Relay) saveThumbnail(ctx context.Context, log *logrus.Entry, photo []byte, siteKey, userKey string) string {
	thumb, err := Thumbnail(photo)
	if err != nil {
		log.WithError(err).Debug("Skipping thumbnail")
		return ""
	}
	relPath := path.Join(siteKey, thumbDir, userKey+photoExt)
	if err := r.store.Save(ctx, relPath, thumb); err != nil {
		log.WithError(err).Warn("Failed to save thumbnail")
		return ""
	}
	return r.publicPath(relPath)
}

func (r *Relay) publicPath(relPath string) string {
	return path.Join(r.urlPrefix, relPath)
}
