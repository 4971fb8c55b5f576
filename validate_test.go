package refdata

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestValidate runs every fixture check on the package tables.
func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestValidateFixtures_ReportsEveryProblem(t *testing.T) {
	paths := pathConstants()
	paths["SplotPath"] = ""
	paths["INatDatasetKey"] = "not-a-uuid"

	countries := CountryRefs()
	countries[1].Code = countries[0].Code
	countries[2].Name = ""
	countries[3].AreaMkm2 = 0

	cities := IndiaCities()
	cities[0].Lat = 95
	cities[1].Lon = -200
	cities = cities[:len(cities)-1]

	err := validateFixtures(paths, countries, cities)
	if err == nil {
		t.Fatal("validateFixtures() = nil, want error")
	}

	msg := err.Error()
	for _, want := range []string{
		"SplotPath is empty",
		"INatDatasetKey",
		`duplicate code "FR"`,
		"empty name",
		"area 0 must be positive",
		"city count: got 15, want 16",
		`city "Mumbai"`,
		`city "Delhi"`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestValidateCountries_BadCode(t *testing.T) {
	countries := CountryRefs()
	countries[0].Code = "fra"

	errs := validateCountries(countries)
	if len(errs) != 1 {
		t.Fatalf("validateCountries() returned %d errors, want 1: %v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Error(), "alpha-2") {
		t.Errorf("error = %v, want alpha-2 complaint", errs[0])
	}
}

func TestConfig_ValidateLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	cfg := NewConfig(WithLogger(zap.New(core)))

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	entries := logs.FilterMessage("reference data valid").All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["countries"]; got != int64(26) {
		t.Errorf("logged countries = %v, want 26", got)
	}
}
