// Package refdata provides reference constants and fixture tables for the
// India GBIF analysis notebooks.
package refdata

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Dataset locations, relative to a notebook two levels below the project root.
const (
	ParquetPath      = "../../data/raw/all_tracheophyta_non-cult_2026-02-17.parquet/[0-9]*"
	SplotPath        = "../../data/interim/splot/filtered_surveys/try6/splot_filtered.parquet"
	FilteredGBIFPath = "../../data/interim/gbif/filtered_occurrences/try6/gbif_filtered.parquet"
	CacheDir         = "_cache"
)

// INatDatasetKey is the GBIF dataset key of iNaturalist Research-grade Observations.
const INatDatasetKey = "50c9509d-22c7-4a22-a47d-8c48425ef4a7"

// DatasetID identifies one of the external datasets.
type DatasetID string

const (
	DatasetGBIFRaw      DatasetID = "gbifRaw"
	DatasetSplot        DatasetID = "splotFiltered"
	DatasetGBIFFiltered DatasetID = "gbifFiltered"
)

// Dataset describes an external Parquet dataset consumed by the notebooks.
type Dataset struct {
	ID   DatasetID // Identifier used in config overrides
	Path string    // Default location
	Glob bool      // Path is a glob over a multi-file dataset
}

// Datasets lists the external datasets in a stable order.
var Datasets = []Dataset{
	{ID: DatasetGBIFRaw, Path: ParquetPath, Glob: true},
	{ID: DatasetSplot, Path: SplotPath},
	{ID: DatasetGBIFFiltered, Path: FilteredGBIFPath},
}

// LookupDataset returns the dataset with the given id.
func LookupDataset(id DatasetID) (Dataset, bool) {
	for _, d := range Datasets {
		if d.ID == id {
			return d, true
		}
	}
	return Dataset{}, false
}

// ExpandParts returns the files matched by a glob dataset path, sorted.
// A pattern that matches nothing is an error, since every glob dataset
// is expected to have at least one part file on disk.
func ExpandParts(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("expanding %s: no files match", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}
