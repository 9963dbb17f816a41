package v1

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/shenikar/geo_checkin/internal/models"
	"github.com/shenikar/geo_checkin/internal/proximity"
	"github.com/shenikar/geo_checkin/internal/visit"
)

// ModelToSiteResponse преобразует геозону в DTO
func ModelToSiteResponse(site models.Site) SiteResponse {
	return SiteResponse{
		ID:           site.ID,
		Name:         site.Name,
		Latitude:     site.Center.Latitude,
		Longitude:    site.Center.Longitude,
		RadiusMeters: site.RadiusMeters,
	}
}

// ModelsToSiteResponses преобразует слайс геозон в слайс DTO
func ModelsToSiteResponses(sites []models.Site) []SiteResponse {
	responses := make([]SiteResponse, len(sites))
	for i, site := range sites {
		responses[i] = ModelToSiteResponse(site)
	}
	return responses
}

func rankedToResponse(r *models.RankedSite) *RankedSiteResponse {
	if r == nil {
		return nil
	}
	return &RankedSiteResponse{
		SiteResponse:   ModelToSiteResponse(r.Site),
		DistanceMeters: r.DistanceMeters,
		IsInside:       proximity.IsInside(*r),
	}
}

// ResultToRankResponse преобразует результат ранжирования в DTO
func ResultToRankResponse(result *proximity.Result) *RankResponse {
	sites := make([]RankedSiteResponse, len(result.Ranked))
	for i := range result.Ranked {
		sites[i] = *rankedToResponse(&result.Ranked[i])
	}
	return &RankResponse{
		Sites:    sites,
		Closest:  rankedToResponse(result.Closest),
		IsInside: result.IsInside,
	}
}

// SessionToResponse преобразует сессию в DTO; состояние вычисляется из полей
func SessionToResponse(s *visit.Session) *SessionResponse {
	resp := &SessionResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		State:          string(s.State()),
		ClosestSite:    rankedToResponse(s.ClosestSite),
		IsInside:       s.IsInside,
		VisitConfirmed: s.VisitConfirmed,
		UploadState:    string(s.Upload),
		ConfirmedSite:  rankedToResponse(s.ConfirmedSite),
		PhotoPath:      s.PhotoPath,
		LastError:      s.LastError,
		LocateRequests: s.LocateRequests,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if s.UserPosition != nil {
		resp.UserPosition = &PositionResponse{
			Latitude:  s.UserPosition.Latitude,
			Longitude: s.UserPosition.Longitude,
		}
	}
	return resp
}

// ModelsToVisitResponses преобразует слайс посещений в слайс DTO
func ModelsToVisitResponses(visits []*models.Visit) []*VisitResponse {
	responses := make([]*VisitResponse, len(visits))
	for i, v := range visits {
		responses[i] = &VisitResponse{
			ID:             v.ID,
			UserID:         v.UserID,
			SiteID:         v.SiteID,
			SiteName:       v.SiteName,
			Latitude:       v.Latitude,
			Longitude:      v.Longitude,
			DistanceMeters: v.DistanceMeters,
			ConfirmedAt:    v.ConfirmedAt,
		}
	}
	return responses
}

// SitesToFeatureCollection строит слой карты: точка на каждую геозону с радиусом в свойствах.
// Если передан результат ранжирования, добавляются расстояние, признак ближайшей
// и попадание внутрь каждой геозоны (при перекрытии внутри может быть несколько).
func SitesToFeatureCollection(sites []models.Site, result *proximity.Result) *geojson.FeatureCollection {
	ranked := make(map[string]models.RankedSite)
	closestID := ""
	if result != nil {
		for _, r := range result.Ranked {
			ranked[r.ID] = r
		}
		if result.Closest != nil {
			closestID = result.Closest.ID
		}
	}

	fc := geojson.NewFeatureCollection()
	for _, site := range sites {
		// GeoJSON хранит координаты в порядке lng, lat
		f := geojson.NewFeature(orb.Point{site.Center.Longitude, site.Center.Latitude})
		f.ID = site.ID
		f.Properties["name"] = site.Name
		f.Properties["radius_meters"] = site.RadiusMeters
		if r, ok := ranked[site.ID]; ok {
			f.Properties["distance_meters"] = r.DistanceMeters
			f.Properties["closest"] = site.ID == closestID
			f.Properties["inside"] = proximity.IsInside(r)
		}
		fc.Append(f)
	}
	return fc
}
