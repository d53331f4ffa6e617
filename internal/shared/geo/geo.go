package geo

import "math"

const earthRadiusKm = 6371

// Point is the canonical geographic position used everywhere inside the
// module. External surfaces that speak [lng, lat] tuples (GeoJSON-style
// line geometry) convert at the boundary via FromLngLat / LngLat.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FromLngLat converts a [lng, lat] tuple into a Point.
func FromLngLat(c [2]float64) Point {
	return Point{Lat: c[1], Lng: c[0]}
}

// LngLat converts the point back into a [lng, lat] tuple.
func (p Point) LngLat() [2]float64 {
	return [2]float64{p.Lng, p.Lat}
}

// HaversineMeters returns the great-circle distance between two points in
// meters, using the haversine formula with a mean Earth radius of 6371 km.
func HaversineMeters(a, b Point) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c * 1000
}

// LineDistanceMeters sums the haversine distance over consecutive pairs of
// an ordered point sequence. Sequences shorter than two points have zero
// distance.
func LineDistanceMeters(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += HaversineMeters(pts[i-1], pts[i])
	}
	return total
}

// SpeedKmh returns the average speed between two timestamped positions in
// km/h. Timestamps are milliseconds since epoch; zero or negative elapsed
// time (duplicate or out-of-order samples) yields 0.
func SpeedKmh(a, b Point, fromMs, toMs int64) float64 {
	elapsedSec := float64(toMs-fromMs) / 1000
	if elapsedSec <= 0 {
		return 0
	}
	return HaversineMeters(a, b) / elapsedSec * 3.6
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180)
}
