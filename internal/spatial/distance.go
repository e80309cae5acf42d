package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineDistance calculates the great-circle distance between two points
// in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// PathDistanceKm sums the great-circle legs of an ordered [lng, lat] polyline.
func PathDistanceKm(points [][]float64) float64 {
	var meters float64
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if len(a) < 2 || len(b) < 2 {
			continue
		}
		meters += HaversineDistance(a[1], a[0], b[1], b[0])
	}
	return meters / 1000
}

// Bearing calculates the initial bearing (forward azimuth) from point 1 to
// point 2 in degrees, 0-360, where 0 is North and 90 is East.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lonDiff := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(lonDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lonDiff)
	bearing := math.Atan2(y, x) * 180 / math.Pi

	return math.Mod(bearing+360, 360)
}

// Bounds is a latitude/longitude bounding box for map fitting.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// BoundingBox returns the box enclosing the given coordinates, or nil when
// the list is empty. Points are (lat, lng) pairs.
func BoundingBox(lats, lngs []float64) *Bounds {
	if len(lats) == 0 || len(lats) != len(lngs) {
		return nil
	}
	b := &Bounds{MinLat: lats[0], MaxLat: lats[0], MinLng: lngs[0], MaxLng: lngs[0]}
	for i := 1; i < len(lats); i++ {
		b.MinLat = math.Min(b.MinLat, lats[i])
		b.MaxLat = math.Max(b.MaxLat, lats[i])
		b.MinLng = math.Min(b.MinLng, lngs[i])
		b.MaxLng = math.Max(b.MaxLng, lngs[i])
	}
	return b
}
