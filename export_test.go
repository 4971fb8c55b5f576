package refdata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParquetTables_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	countryPath := filepath.Join(dir, "countries.parquet")
	if err := WriteCountryRefs(countryPath); err != nil {
		t.Fatalf("WriteCountryRefs() error = %v", err)
	}
	countries, err := ReadCountryRefs(countryPath)
	if err != nil {
		t.Fatalf("ReadCountryRefs() error = %v", err)
	}
	want := CountryRefs()
	if len(countries) != len(want) {
		t.Fatalf("read %d countries, want %d", len(countries), len(want))
	}
	for i := range want {
		if countries[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, countries[i], want[i])
		}
	}

	cityPath := filepath.Join(dir, "cities.parquet")
	if err := WriteCities(cityPath); err != nil {
		t.Fatalf("WriteCities() error = %v", err)
	}
	cities, err := ReadCities(cityPath)
	if err != nil {
		t.Fatalf("ReadCities() error = %v", err)
	}
	if len(cities) != 16 || cities[0] != (City{"Mumbai", 19.08, 72.88}) {
		t.Errorf("ReadCities() = %d rows, first %+v", len(cities), cities[0])
	}
}

func TestReadCities_Missing(t *testing.T) {
	if _, err := ReadCities(filepath.Join(t.TempDir(), "missing.parquet")); err == nil {
		t.Error("ReadCities(missing) error = nil")
	}
}

func TestConfig_ExportAll(t *testing.T) {
	base := t.TempDir()
	cfg := NewConfig(WithBaseDir(base), WithCacheDir("nested/cache"))

	written, err := cfg.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("ExportAll() wrote %d files, want 2", len(written))
	}
	for _, path := range written {
		if filepath.Dir(path) != filepath.Join(base, "nested", "cache") {
			t.Errorf("wrote %s outside the cache directory", path)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("stat %s: %v", path, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}
