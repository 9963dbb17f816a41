// Package proximity ранжирует геозоны по расстоянию до позиции пользователя.
package proximity

import (
	"sort"

	"github.com/shenikar/geo_checkin/internal/geo"
	"github.com/shenikar/geo_checkin/internal/models"
)

// Rank вычисляет расстояние до каждой геозоны и сортирует по возрастанию.
// При равных расстояниях сохраняется порядок реестра.
func Rank(position geo.Point, sites []models.Site) []models.RankedSite {
	ranked := make([]models.RankedSite, len(sites))
	for i, site := range sites {
		ranked[i] = models.RankedSite{
			Site:           site,
			DistanceMeters: geo.Distance(position, site.Center),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceMeters < ranked[j].DistanceMeters
	})
	return ranked
}

// Closest возвращает ближайшую геозону или nil для пустого списка
func Closest(ranked []models.RankedSite) *models.RankedSite {
	if len(ranked) == 0 {
		return nil
	}
	closest := ranked[0]
	return &closest
}

// IsInside - граница включается: distance == radius считается внутри
func IsInside(site models.RankedSite) bool {
	return site.DistanceMeters <= site.RadiusMeters
}

// Result - ранжирование одной позиции
type Result struct {
	Ranked   []models.RankedSite
	Closest  *models.RankedSite
	IsInside bool
}

// Evaluate ранжирует геозоны и определяет, находится ли позиция внутри ближайшей
func Evaluate(position geo.Point, sites []models.Site) Result {
	ranked := Rank(position, sites)
	res := Result{Ranked: ranked, Closest: Closest(ranked)}
	if res.Closest != nil {
		res.IsInside = IsInside(*res.Closest)
	}
	return res
}
