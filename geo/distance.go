package geo

import (
	"math"

	"github.com/carecompass/carecompass-api/schema"
)

const earthRadiusMiles = 3958.8

// Distance returns the great-circle distance between two coordinates in
// miles, using the haversine formula. Distance(a, a) is 0 and the result
// does not depend on argument order.
func Distance(a, b schema.Location) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLng := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
