package registry

import (
	"github.com/shenikar/geo_checkin/internal/geo"
	"github.com/shenikar/geo_checkin/internal/models"
)

// DefaultSites - встроенный список геозон
func DefaultSites() []models.Site {
	return []models.Site{
		{
			ID:           "1",
			Name:         "Santuario Nino Jesus de Puente",
			Center:       geo.Point{Latitude: 5.892120242899102, Longitude: -73.6521367558167},
			RadiusMeters: 100,
		},
		{
			ID:           "2",
			Name:         "Catedral de Tunja",
			Center:       geo.Point{Latitude: 5.53528, Longitude: -73.36778},
			RadiusMeters: 100,
		},
		{
			ID:           "3",
			Name:         "Basílica de Nuestra Señora del Rosario de Chiquinquirá",
			Center:       geo.Point{Latitude: 5.61667, Longitude: -73.81667},
			RadiusMeters: 100,
		},
		// тестовая точка в центре карты по умолчанию
		{
			ID:           "test-london",
			Name:         "Test Location (London)",
			Center:       geo.Point{Latitude: 51.505, Longitude: -0.09},
			RadiusMeters: 500,
		},
	}
}
