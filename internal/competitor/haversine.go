package competitor

import "math"

// earthRadiusM is the spherical-earth mean radius in meters.
const earthRadiusM = 6371 * 1000

// haversineMeters returns the great-circle distance between two coordinates
// in meters, on a spherical-earth approximation.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
