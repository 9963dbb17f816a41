package models

import (
	"time"

	"github.com/google/uuid"
)

// Visit - подтвержденное посещение геозоны
type Visit struct {
	ID             uuid.UUID `json:"id"`
	SessionID      uuid.UUID `json:"session_id"`
	UserID         string    `json:"user_id"`
	SiteID         string    `json:"site_id"`
	SiteName       string    `json:"site_name"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	DistanceMeters float64   `json:"distance_meters"`
	ConfirmedAt    time.Time `json:"confirmed_at"`
}

// PhotoRecord - запись о загруженной фотографии. Одна запись на пару пользователь+геозона,
// повторная загрузка перезаписывает предыдущую.
type PhotoRecord struct {
	UserID     string     `json:"user_id"`
	SiteKey    string     `json:"site_key"`
	SiteName   string     `json:"site_name"`
	Path       string     `json:"path"`
	SizeBytes  int64      `json:"size_bytes"`
	TakenAt    *time.Time `json:"taken_at,omitempty"`
	Latitude   *float64   `json:"latitude,omitempty"`
	Longitude  *float64   `json:"longitude,omitempty"`
	UploadedAt time.Time  `json:"uploaded_at"`
}
