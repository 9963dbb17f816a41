package models

import "time"

// UploadResult - результат сохранения фотографии
type UploadResult struct {
	// Path - относительный публичный путь, например /uploads/catedral_de_tunja/user_123.jpg
	Path          string
	ThumbnailPath string
	SiteKey       string
	UserKey       string
	SizeBytes     int64
	TakenAt       *time.Time
	Latitude      *float64
	Longitude     *float64
}

// ToPhotoRecord преобразует результат загрузки в запись для хранилища.
// Пользователь берется из ключа пути, чтобы запись и файл совпадали.
func (r *UploadResult) ToPhotoRecord(siteName string, uploadedAt time.Time) *PhotoRecord {
	return &PhotoRecord{
		UserID:     r.UserKey,
		SiteKey:    r.SiteKey,
		SiteName:   siteName,
		Path:       r.Path,
		SizeBytes:  r.SizeBytes,
		TakenAt:    r.TakenAt,
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		UploadedAt: uploadedAt,
	}
}
