package registry

import (
	"strconv"
	"strings"

	"github.com/shenikar/geo_checkin/internal/errs"
	"github.com/shenikar/geo_checkin/internal/geo"
	"github.com/shenikar/geo_checkin/internal/models"
)

// Колонки строки реестра: A=ID, B=название, C=не используется, D="lat,lng"
const (
	colID     = 0
	colName   = 1
	colCenter = 3
)

// ParseRows разбирает строки таблицы в геозоны. Некорректные строки отбрасываются,
// причины возвращаются вторым значением только для логирования.
func ParseRows(rows [][]string, defaultRadius float64) ([]models.Site, []*errs.ParseError) {
	sites := make([]models.Site, 0, len(rows))
	var dropped []*errs.ParseError

	for i, row := range rows {
		site, err := parseRow(row, defaultRadius)
		if err != nil {
			err.Row = i + 1
			dropped = append(dropped, err)
			continue
		}
		sites = append(sites, site)
	}
	return sites, dropped
}

func parseRow(row []string, radius float64) (models.Site, *errs.ParseError) {
	if len(row) <= colCenter {
		return models.Site{}, &errs.ParseError{Reason: "expected at least 4 columns"}
	}
	id := strings.TrimSpace(row[colID])
	name := strings.TrimSpace(row[colName])
	center := strings.TrimSpace(row[colCenter])
	if id == "" || name == "" || center == "" {
		return models.Site{}, &errs.ParseError{Reason: "id, name and location are required"}
	}

	point, err := ParseLatLng(center)
	if err != nil {
		return models.Site{}, &errs.ParseError{Reason: err.Error()}
	}

	return models.Site{
		ID:           id,
		Name:         name,
		Center:       point,
		RadiusMeters: radius,
	}, nil
}

// ParseLatLng разбирает строку вида "5.5,-73.5"
func ParseLatLng(s string) (geo.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.Point{}, &errs.ParseError{Reason: "location must be \"lat,lng\""}
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.Point{}, &errs.ParseError{Reason: "latitude is not a number"}
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.Point{}, &errs.ParseError{Reason: "longitude is not a number"}
	}
	p := geo.Point{Latitude: lat, Longitude: lng}
	if err := p.Validate(); err != nil {
		return geo.Point{}, &errs.ParseError{Reason: err.Error()}
	}
	return p, nil
}
