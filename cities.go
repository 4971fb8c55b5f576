package refdata

import (
	"errors"
	"fmt"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/golang/geo/s2"
)

// ErrUnknownCity is returned when no city matches a lookup.
var ErrUnknownCity = errors.New("unknown city")

// earthRadiusKm is the IUGG mean earth radius.
const earthRadiusKm = 6371.0088

// City is a named point in WGS84 decimal degrees.
type City struct {
	Name string  `parquet:"city"`
	Lat  float64 `parquet:"lat"`
	Lon  float64 `parquet:"lon"`
}

// LatLng returns the city location as an s2.LatLng.
func (c City) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.Lat, c.Lon)
}

// Geohash returns the geohash of the city location at the given precision
// (number of characters, 1-12).
func (c City) Geohash(precision int) string {
	if precision < 1 {
		precision = 1
	}
	if precision > 12 {
		precision = 12
	}
	return geohash.EncodeWithPrecision(c.Lat, c.Lon, precision)
}

// indiaCities lists major Indian cities used for spatial proximity analysis.
var indiaCities = []City{
	{"Mumbai", 19.08, 72.88},
	{"Delhi", 28.61, 77.21},
	{"Bengaluru", 12.97, 77.59},
	{"Chennai", 13.08, 80.27},
	{"Kolkata", 22.57, 88.36},
	{"Hyderabad", 17.39, 78.49},
	{"Pune", 18.52, 73.86},
	{"Ahmedabad", 23.02, 72.57},
	{"Jaipur", 26.91, 75.79},
	{"Lucknow", 26.85, 80.95},
	{"Kochi", 9.93, 76.27},
	{"Guwahati", 26.14, 91.74},
	{"Chandigarh", 30.73, 76.78},
	{"Bhopal", 23.26, 77.41},
	{"Dehradun", 30.32, 78.03},
	{"Thiruvananthapuram", 8.52, 76.94},
}

// IndiaCities returns a copy of the city table in display order.
func IndiaCities() []City {
	out := make([]City, len(indiaCities))
	copy(out, indiaCities)
	return out
}

// LookupCity returns the city with the given name (case-insensitive).
func LookupCity(name string) (City, bool) {
	name = strings.TrimSpace(name)
	for _, c := range indiaCities {
		if strings.EqualFold(name, c.Name) {
			return c, true
		}
	}
	return City{}, false
}

// FindCity resolves a city name with up to maxDist typos tolerated.
func FindCity(name string, maxDist int) (City, error) {
	if c, ok := LookupCity(name); ok {
		return c, nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return City{}, fmt.Errorf("%w: empty name", ErrUnknownCity)
	}
	i := closestName(name, len(indiaCities), func(i int) string { return indiaCities[i].Name }, maxDist)
	if i < 0 {
		return City{}, fmt.Errorf("%w: %q", ErrUnknownCity, name)
	}
	return indiaCities[i], nil
}

// DistanceKm returns the great-circle distance between two cities.
func DistanceKm(a, b City) float64 {
	return a.LatLng().Distance(b.LatLng()).Radians() * earthRadiusKm
}
