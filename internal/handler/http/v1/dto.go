package v1

import (
	"time"

	"github.com/google/uuid"
)

// LocationRequest DTO с координатами пользователя
// @Description DTO с координатами пользователя
type LocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// PositionResponse DTO координат
// @Description DTO координат
type PositionResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SiteResponse DTO геозоны
// @Description DTO геозоны
type SiteResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
}

// RankedSiteResponse DTO геозоны с расстоянием до пользователя
// @Description DTO геозоны с расстоянием до пользователя
type RankedSiteResponse struct {
	SiteResponse
	DistanceMeters float64 `json:"distance_meters"`
	IsInside       bool    `json:"is_inside"`
}

// RankResponse DTO результата ранжирования
// @Description DTO результата ранжирования
type RankResponse struct {
	Sites    []RankedSiteResponse `json:"sites"`
	Closest  *RankedSiteResponse  `json:"closest,omitempty"`
	IsInside bool                 `json:"is_inside"`
}

// SessionResponse DTO сессии посещения
// @Description DTO сессии посещения
type SessionResponse struct {
	ID             uuid.UUID           `json:"id"`
	UserID         string              `json:"user_id"`
	State          string              `json:"state"`
	UserPosition   *PositionResponse   `json:"user_position,omitempty"`
	ClosestSite    *RankedSiteResponse `json:"closest_site,omitempty"`
	IsInside       bool                `json:"is_inside"`
	VisitConfirmed bool                `json:"visit_confirmed"`
	UploadState    string              `json:"upload_state"`
	ConfirmedSite  *RankedSiteResponse `json:"confirmed_site,omitempty"`
	PhotoPath      string              `json:"photo_path,omitempty"`
	LastError      string              `json:"last_error,omitempty"`
	LocateRequests int                 `json:"locate_requests"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// VisitResponse DTO подтвержденного посещения
// @Description DTO подтвержденного посещения
type VisitResponse struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"user_id"`
	SiteID         string    `json:"site_id"`
	SiteName       string    `json:"site_name"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	DistanceMeters float64   `json:"distance_meters"`
	ConfirmedAt    time.Time `json:"confirmed_at"`
}

// UploadResponse DTO ответа на загрузку фото
// @Description DTO ответа на загрузку фото
type UploadResponse struct {
	Success       bool   `json:"success"`
	Path          string `json:"path,omitempty"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
	Message       string `json:"message,omitempty"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	VisitorCount  int `json:"visitor_count"`
	WindowMinutes int `json:"window_minutes"`
}
