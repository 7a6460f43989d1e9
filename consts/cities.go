package consts

import (
	"github.com/carecompass/carecompass-api/schema"
)

// CityCoordinates is a small built-in lookup for common location inputs so
// that frequently typed cities resolve without a geocoding round trip. Keys
// are lower-cased, trimmed location strings.
var CityCoordinates map[string]schema.Location

func init() {
	CityCoordinates = make(map[string]schema.Location)

	CityCoordinates["nashville"] = schema.Location{Latitude: 36.1627, Longitude: -86.7816}
	CityCoordinates["nashville, tn"] = schema.Location{Latitude: 36.1627, Longitude: -86.7816}
	CityCoordinates["downtown nashville"] = schema.Location{Latitude: 36.1627, Longitude: -86.7816}
	CityCoordinates["east nashville"] = schema.Location{Latitude: 36.1833, Longitude: -86.7500}
	CityCoordinates["west nashville"] = schema.Location{Latitude: 36.1500, Longitude: -86.8500}
	CityCoordinates["brentwood"] = schema.Location{Latitude: 36.0331, Longitude: -86.7828}
	CityCoordinates["franklin"] = schema.Location{Latitude: 35.9251, Longitude: -86.8689}
	CityCoordinates["murfreesboro"] = schema.Location{Latitude: 35.8456, Longitude: -86.3903}
	CityCoordinates["san francisco"] = schema.Location{Latitude: 37.7749, Longitude: -122.4194}
	CityCoordinates["sf"] = schema.Location{Latitude: 37.7749, Longitude: -122.4194}
	CityCoordinates["oakland"] = schema.Location{Latitude: 37.8044, Longitude: -122.2712}
	CityCoordinates["berkeley"] = schema.Location{Latitude: 37.8716, Longitude: -122.2727}
	CityCoordinates["san jose"] = schema.Location{Latitude: 37.3382, Longitude: -121.8863}
	CityCoordinates["palo alto"] = schema.Location{Latitude: 37.4419, Longitude: -122.1430}
	CityCoordinates["daly city"] = schema.Location{Latitude: 37.6879, Longitude: -122.4702}
}
