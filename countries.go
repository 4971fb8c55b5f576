package refdata

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownCountry is returned when no country matches a lookup.
var ErrUnknownCountry = errors.New("unknown country")

// CountryRef holds reference statistics for one country.
type CountryRef struct {
	Code            string  `parquet:"countrycode"`       // ISO 3166-1 alpha-2 code (e.g., "IN")
	Name            string  `parquet:"country_name"`      // Display name
	PopulationM     float64 `parquet:"population_m"`      // Population in millions
	AreaMkm2        float64 `parquet:"area_mkm2"`         // Land area in millions of km²
	EstPlantSpecies int64   `parquet:"est_plant_species"` // Estimated native vascular plant species
}

// PopulationDensity returns people per km².
func (c CountryRef) PopulationDensity() float64 {
	return c.PopulationM / c.AreaMkm2
}

// SpeciesPerMkm2 returns estimated plant species per million km².
func (c CountryRef) SpeciesPerMkm2() float64 {
	return float64(c.EstPlantSpecies) / c.AreaMkm2
}

// SpeciesPerMillionPeople returns estimated plant species per million inhabitants.
func (c CountryRef) SpeciesPerMillionPeople() float64 {
	return float64(c.EstPlantSpecies) / c.PopulationM
}

// countryRef is the reference table in display order.
// Sources: World Bank 2023 (population, area), Kew State of the World's
// Plants / national floras (species richness).
var countryRef = []CountryRef{
	{"FR", "France", 68.2, 0.640, 6000},
	{"GB", "UK", 67.7, 0.244, 3300},
	{"DE", "Germany", 84.5, 0.357, 4100},
	{"NL", "Netherlands", 17.9, 0.042, 2200},
	{"US", "USA", 339.9, 9.834, 19500},
	{"AU", "Australia", 26.6, 7.692, 21000},
	{"SE", "Sweden", 10.5, 0.450, 2600},
	{"ES", "Spain", 48.1, 0.506, 7500},
	{"DK", "Denmark", 5.9, 0.043, 1900},
	{"CH", "Switzerland", 8.8, 0.041, 3600},
	{"IN", "India", 1428.6, 3.287, 18000},
	{"CN", "China", 1425.7, 9.597, 33000},
	{"BR", "Brazil", 216.4, 8.516, 33000},
	{"ZA", "South Africa", 60.4, 1.221, 21000},
	{"MX", "Mexico", 128.9, 1.964, 26000},
	{"CO", "Colombia", 52.1, 1.142, 27000},
	{"JP", "Japan", 125.1, 0.378, 7000},
	{"NZ", "New Zealand", 5.2, 0.268, 2400},
	{"NO", "Norway", 5.5, 0.385, 3200},
	{"FI", "Finland", 5.6, 0.338, 1600},
	{"PK", "Pakistan", 240.5, 0.881, 6000},
	{"BD", "Bangladesh", 172.9, 0.148, 5000},
	{"LK", "Sri Lanka", 22.2, 0.066, 3500},
	{"NP", "Nepal", 30.9, 0.147, 7000},
	{"BT", "Bhutan", 0.8, 0.038, 5600},
	{"MM", "Myanmar", 54.8, 0.677, 11000},
}

// countryIndex maps country code to its row in countryRef.
// Computed once; the first row wins if a code were ever duplicated,
// which Validate reports.
var countryIndex = sync.OnceValue(func() map[string]int {
	idx := make(map[string]int, len(countryRef))
	for i, c := range countryRef {
		if _, ok := idx[c.Code]; !ok {
			idx[c.Code] = i
		}
	}
	return idx
})

// CountryRefs returns a copy of the country reference table in display order.
func CountryRefs() []CountryRef {
	out := make([]CountryRef, len(countryRef))
	copy(out, countryRef)
	return out
}

// CountryCodes returns the table keys in display order.
func CountryCodes() []string {
	codes := make([]string, len(countryRef))
	for i, c := range countryRef {
		codes[i] = c.Code
	}
	return codes
}

// LookupCountry returns the row for an ISO alpha-2 code (case-insensitive).
func LookupCountry(code string) (CountryRef, bool) {
	i, ok := countryIndex()[toUpper(strings.TrimSpace(code))]
	if !ok {
		return CountryRef{}, false
	}
	return countryRef[i], true
}

// maxFuzzyDistance caps the edit distance accepted by FindCountry and FindCity.
const maxFuzzyDistance = 3

// FindCountry resolves a display name or code to a row. An exact
// case-insensitive match on code or name wins; otherwise the name with
// the smallest edit distance within maxDist is returned, ties going to
// the earlier row.
func FindCountry(name string, maxDist int) (CountryRef, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CountryRef{}, fmt.Errorf("%w: empty name", ErrUnknownCountry)
	}
	if c, ok := LookupCountry(name); ok {
		return c, nil
	}
	for _, c := range countryRef {
		if strings.EqualFold(name, c.Name) {
			return c, nil
		}
	}

	i := closestName(name, len(countryRef), func(i int) string { return countryRef[i].Name }, maxDist)
	if i < 0 {
		return CountryRef{}, fmt.Errorf("%w: %q", ErrUnknownCountry, name)
	}
	return countryRef[i], nil
}

// RankBy returns the table sorted by metric, highest first. Ties are
// broken by country code so the order is deterministic.
func RankBy(metric func(CountryRef) float64) []CountryRef {
	out := CountryRefs()
	sort.SliceStable(out, func(i, j int) bool {
		mi, mj := metric(out[i]), metric(out[j])
		if mi != mj {
			return mi > mj
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// closestName returns the index of the candidate nearest to query by
// Levenshtein distance, or -1 if none is within maxDist.
func closestName(query string, n int, name func(int) string, maxDist int) int {
	if maxDist <= 0 {
		return -1
	}
	if maxDist > maxFuzzyDistance {
		maxDist = maxFuzzyDistance
	}

	q := toLower(query)
	best, bestDist := -1, maxDist+1
	for i := 0; i < n; i++ {
		d := levenshtein.ComputeDistance(q, toLower(name(i)))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func toLower(s string) string {
	return strings.ToLower(s)
}

func toUpper(s string) string {
	return strings.ToUpper(s)
}
