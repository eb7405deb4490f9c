// Package geo implements the geofence check for location-based check-ins.
// All functions are pure and safe for concurrent use.
package geo

import "math"

// EarthRadiusMeters is the mean earth radius used for great-circle distances.
const EarthRadiusMeters = 6371008.8

// ValidCoordinate reports whether lat/lon form a usable GPS fix.
// NaN, infinities and out-of-range values are rejected.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Distance returns the haversine great-circle distance in meters between two points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// WithinRadius reports whether the claimed point lies inside the inclusive
// circular geofence around origin, along with the computed distance. A missing
// or malformed fix never passes: invalid coordinates fail closed.
func WithinRadius(originLat, originLon, claimedLat, claimedLon, radiusMeters float64) (float64, bool) {
	if !ValidCoordinate(originLat, originLon) || !ValidCoordinate(claimedLat, claimedLon) {
		return 0, false
	}
	d := Distance(originLat, originLon, claimedLat, claimedLon)
	return d, d <= radiusMeters
}
