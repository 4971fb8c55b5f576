package refdata

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Expected table sizes for integrity checks.
const (
	expectedCountryCount = 26
	expectedCityCount    = 16
)

// Validate checks the integrity of every constant and table in the package.
// All problems are reported together.
func Validate() error {
	return validateFixtures(pathConstants(), countryRef, indiaCities)
}

// Validate runs the fixture checks and logs the outcome on the configured logger.
func (c *Config) Validate() error {
	err := Validate()
	if err != nil {
		c.logger.Error("reference data failed validation", zap.Error(err))
		return err
	}
	c.logger.Info("reference data valid",
		zap.Int("countries", len(countryRef)),
		zap.Int("cities", len(indiaCities)),
	)
	return nil
}

func pathConstants() map[string]string {
	return map[string]string{
		"ParquetPath":      ParquetPath,
		"SplotPath":        SplotPath,
		"FilteredGBIFPath": FilteredGBIFPath,
		"CacheDir":         CacheDir,
		"INatDatasetKey":   INatDatasetKey,
	}
}

func validateFixtures(paths map[string]string, countries []CountryRef, cities []City) error {
	var errs []error
	errs = append(errs, validatePaths(paths)...)
	errs = append(errs, validateCountries(countries)...)
	errs = append(errs, validateCities(cities)...)
	return errors.Join(errs...)
}

func validatePaths(paths map[string]string) []error {
	var errs []error
	for _, name := range []string{"ParquetPath", "SplotPath", "FilteredGBIFPath", "CacheDir", "INatDatasetKey"} {
		if strings.TrimSpace(paths[name]) == "" {
			errs = append(errs, fmt.Errorf("%s is empty", name))
		}
	}
	if key := paths["INatDatasetKey"]; key != "" {
		if _, err := uuid.Parse(key); err != nil {
			errs = append(errs, fmt.Errorf("INatDatasetKey %q: %w", key, err))
		}
	}
	return errs
}

func validateCountries(countries []CountryRef) []error {
	var errs []error
	if len(countries) != expectedCountryCount {
		errs = append(errs, fmt.Errorf("country count: got %d, want %d", len(countries), expectedCountryCount))
	}

	seen := make(map[string]bool, len(countries))
	for i, c := range countries {
		if len(c.Code) != 2 || toUpper(c.Code) != c.Code {
			errs = append(errs, fmt.Errorf("country row %d: code %q is not an upper-case alpha-2 code", i, c.Code))
		}
		if seen[c.Code] {
			errs = append(errs, fmt.Errorf("country row %d: duplicate code %q", i, c.Code))
		}
		seen[c.Code] = true

		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Errorf("country %s: empty name", c.Code))
		}
		if !positive(c.PopulationM) {
			errs = append(errs, fmt.Errorf("country %s: population %v must be positive", c.Code, c.PopulationM))
		}
		if !positive(c.AreaMkm2) {
			errs = append(errs, fmt.Errorf("country %s: area %v must be positive", c.Code, c.AreaMkm2))
		}
		if c.EstPlantSpecies <= 0 {
			errs = append(errs, fmt.Errorf("country %s: species estimate %d must be positive", c.Code, c.EstPlantSpecies))
		}
	}
	return errs
}

func validateCities(cities []City) []error {
	var errs []error
	if len(cities) != expectedCityCount {
		errs = append(errs, fmt.Errorf("city count: got %d, want %d", len(cities), expectedCityCount))
	}
	for i, c := range cities {
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Errorf("city row %d: empty name", i))
		}
		if err := validCoordinate(c.Lat, c.Lon); err != nil {
			errs = append(errs, fmt.Errorf("city %q: %w", c.Name, err))
		}
	}
	return errs
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}
