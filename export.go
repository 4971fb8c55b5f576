package refdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"
)

// Cache file names written by ExportAll.
const (
	countryRefFile  = "country_ref.parquet"
	indiaCitiesFile = "india_cities.parquet"
)

// WriteCountryRefs writes the country reference table to a Parquet file.
func WriteCountryRefs(path string) error {
	if err := parquet.WriteFile(path, countryRef); err != nil {
		return fmt.Errorf("writing country table %s: %w", path, err)
	}
	return nil
}

// ReadCountryRefs reads a country table written by WriteCountryRefs.
func ReadCountryRefs(path string) ([]CountryRef, error) {
	rows, err := parquet.ReadFile[CountryRef](path)
	if err != nil {
		return nil, fmt.Errorf("reading country table %s: %w", path, err)
	}
	return rows, nil
}

// WriteCities writes the India city table to a Parquet file.
func WriteCities(path string) error {
	if err := parquet.WriteFile(path, indiaCities); err != nil {
		return fmt.Errorf("writing city table %s: %w", path, err)
	}
	return nil
}

// ReadCities reads a city table written by WriteCities.
func ReadCities(path string) ([]City, error) {
	rows, err := parquet.ReadFile[City](path)
	if err != nil {
		return nil, fmt.Errorf("reading city table %s: %w", path, err)
	}
	return rows, nil
}

// ExportAll writes both reference tables into the cache directory and
// returns the paths written.
func (c *Config) ExportAll() ([]string, error) {
	dir := c.Resolve().Cache
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	targets := []struct {
		file  string
		write func(string) error
		rows  int
	}{
		{countryRefFile, WriteCountryRefs, len(countryRef)},
		{indiaCitiesFile, WriteCities, len(indiaCities)},
	}

	written := make([]string, 0, len(targets))
	for _, t := range targets {
		path := filepath.Join(dir, t.file)
		if err := t.write(path); err != nil {
			return written, err
		}
		c.logger.Info("exported table", zap.String("path", path), zap.Int("rows", t.rows))
		written = append(written, path)
	}
	return written, nil
}
