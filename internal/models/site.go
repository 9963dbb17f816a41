package models

import "github.com/shenikar/geo_checkin/internal/geo"

// Site - именованная геозона (центр + радиус в метрах). Идентичность определяется ID.
type Site struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Center       geo.Point `json:"center"`
	RadiusMeters float64   `json:"radius_meters"`
}

// RankedSite - геозона с расстоянием до текущей позиции пользователя.
// Пересчитывается на каждой новой позиции и нигде не сохраняется.
type RankedSite struct {
	Site
	DistanceMeters float64 `json:"distance_meters"`
}
