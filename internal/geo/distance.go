package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMeters - средний радиус Земли в сферической модели
const EarthRadiusMeters = 6371000.0

// Point - географическая координата (WGS 84)
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate проверяет, что координаты находятся в допустимых диапазонах
func (p Point) Validate() error {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return fmt.Errorf("coordinates cannot be NaN")
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got %v", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got %v", p.Longitude)
	}
	return nil
}

// Distance возвращает расстояние по дуге большого круга в метрах (формула гаверсинусов).
// Для совпадающих точек результат ровно 0.
func Distance(a, b Point) float64 {
	if a == b {
		return 0
	}
	lat1 := toRad(a.Latitude)
	lat2 := toRad(b.Latitude)
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// h может чуть выйти за 1 из-за погрешности округления у антиподов
	h = math.Min(1, math.Max(0, h))

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMeters * c
}

// Offset смещает точку на заданное расстояние по направлению bearing (в градусах от севера).
// Используется для построения тестовых позиций вокруг центра геозоны.
func Offset(p Point, meters, bearingDeg float64) Point {
	d := meters / EarthRadiusMeters
	brng := toRad(bearingDeg)
	lat1 := toRad(p.Latitude)
	lon1 := toRad(p.Longitude)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(math.Sin(brng)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	return Point{Latitude: toDeg(lat2), Longitude: normalizeLon(toDeg(lon2))}
}

func normalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
