package refdata

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// ErrNoCityInRange is returned by Nearest when the closest city is farther
// than the index's MaxDistanceKm.
var ErrNoCityInRange = errors.New("no city in range")

// proximityCellLevel sets the S2 cell granularity of CityIndex.
//
// Level 5 cells are roughly 250-300km across, so the 3x3 neighbourhood of
// a query cell usually holds at least one major city for points on the
// Indian mainland. Queries whose nearest candidate is not provably the
// global nearest fall back to a full scan.
const proximityCellLevel = 5

// Neighbor pairs a city with its distance from a query point.
type Neighbor struct {
	City       City
	DistanceKm float64
}

// CityIndex answers nearest-city and radius queries over a set of cities.
// Safe for concurrent use after construction.
type CityIndex struct {
	// MaxDistanceKm makes Nearest fail with ErrNoCityInRange when the
	// closest city is farther away. Zero disables the cutoff.
	MaxDistanceKm float64

	cities    []City
	hashes    []string
	cellIndex map[s2.CellID][]int
}

// NewCityIndex builds an index over cities. The slice is copied.
func NewCityIndex(cities []City) *CityIndex {
	idx := &CityIndex{
		cities:    make([]City, len(cities)),
		hashes:    make([]string, len(cities)),
		cellIndex: make(map[s2.CellID][]int),
	}
	copy(idx.cities, cities)
	for i, c := range idx.cities {
		cell := s2.CellIDFromLatLng(c.LatLng()).Parent(proximityCellLevel)
		idx.cellIndex[cell] = append(idx.cellIndex[cell], i)
		idx.hashes[i] = c.Geohash(12)
	}
	return idx
}

// NewIndiaCityIndex builds an index over the India city table.
func NewIndiaCityIndex() *CityIndex {
	return NewCityIndex(indiaCities)
}

// Len returns the number of indexed cities.
func (x *CityIndex) Len() int {
	return len(x.cities)
}

// cellAndNeighbors returns the given cell plus its edge and corner neighbours.
func cellAndNeighbors(cell s2.CellID) []s2.CellID {
	cells := make([]s2.CellID, 0, 9)
	cells = append(cells, cell)

	edgeNeighbors := cell.EdgeNeighbors()
	for i := 0; i < 4; i++ {
		cells = append(cells, edgeNeighbors[i])
	}

	seen := make(map[s2.CellID]bool)
	for _, c := range cells {
		seen[c] = true
	}
	for i := 0; i < 4; i++ {
		for _, corner := range edgeNeighbors[i].EdgeNeighbors() {
			if !seen[corner] {
				cells = append(cells, corner)
				seen[corner] = true
			}
		}
	}
	return cells
}

func validCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("invalid coordinate (%v, %v)", lat, lng)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("coordinate (%v, %v) out of range", lat, lng)
	}
	return nil
}

// closer orders neighbours by distance, then name.
func closer(a, b Neighbor) bool {
	if a.DistanceKm != b.DistanceKm {
		return a.DistanceKm < b.DistanceKm
	}
	return a.City.Name < b.City.Name
}

// Nearest returns the city closest to (lat, lng) and its distance in km.
func (x *CityIndex) Nearest(lat, lng float64) (City, float64, error) {
	if err := validCoordinate(lat, lng); err != nil {
		return City{}, 0, err
	}
	if len(x.cities) == 0 {
		return City{}, 0, ErrNoCityInRange
	}

	queryLL := s2.LatLngFromDegrees(lat, lng)
	queryCell := s2.CellIDFromLatLng(queryLL).Parent(proximityCellLevel)

	best := Neighbor{DistanceKm: math.Inf(1)}
	found := false
	for _, cell := range cellAndNeighbors(queryCell) {
		for _, i := range x.cellIndex[cell] {
			n := x.neighbor(queryLL, i)
			if !found || closer(n, best) {
				best, found = n, true
			}
		}
	}

	// Anything outside the neighbourhood is at least one cell width away.
	guaranteedKm := s2.MinWidthMetric.Value(proximityCellLevel) * earthRadiusKm
	if !found || best.DistanceKm > guaranteedKm {
		found = false
		for i := range x.cities {
			n := x.neighbor(queryLL, i)
			if !found || closer(n, best) {
				best, found = n, true
			}
		}
	}

	if x.MaxDistanceKm > 0 && best.DistanceKm > x.MaxDistanceKm {
		return City{}, 0, fmt.Errorf("%w: closest is %s at %.1fkm", ErrNoCityInRange, best.City.Name, best.DistanceKm)
	}
	return best.City, best.DistanceKm, nil
}

// Within returns all cities within radiusKm of (lat, lng), closest first.
func (x *CityIndex) Within(lat, lng, radiusKm float64) ([]Neighbor, error) {
	if err := validCoordinate(lat, lng); err != nil {
		return nil, err
	}
	if radiusKm < 0 || math.IsNaN(radiusKm) {
		return nil, fmt.Errorf("invalid radius %v", radiusKm)
	}

	queryLL := s2.LatLngFromDegrees(lat, lng)
	region := s2.CapFromCenterAngle(s2.PointFromLatLng(queryLL), s1.Angle(radiusKm/earthRadiusKm))

	var out []Neighbor
	for i, c := range x.cities {
		if region.ContainsPoint(s2.PointFromLatLng(c.LatLng())) {
			out = append(out, x.neighbor(queryLL, i))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return closer(out[i], out[j]) })
	return out, nil
}

// ByGeohashPrefix returns the cities whose geohash starts with prefix,
// in index order.
func (x *CityIndex) ByGeohashPrefix(prefix string) []City {
	prefix = toLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}
	var out []City
	for i, h := range x.hashes {
		if strings.HasPrefix(h, prefix) {
			out = append(out, x.cities[i])
		}
	}
	return out
}

func (x *CityIndex) neighbor(query s2.LatLng, i int) Neighbor {
	c := x.cities[i]
	return Neighbor{
		City:       c,
		DistanceKm: query.Distance(c.LatLng()).Radians() * earthRadiusKm,
	}
}
