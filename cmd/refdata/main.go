// Command refdata inspects, validates, and exports the notebook reference data.
//
// Usage:
//
//	go run ./cmd/refdata validate
//	go run ./cmd/refdata nearest --lat 19.2 --lon 72.9
//	go run ./cmd/refdata export --config refdata.yaml
//	go run ./cmd/refdata plot --out species_area.png
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/andreiashu/refdata"
	"github.com/andreiashu/refdata/plotstyle"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	nearestLat   float64
	nearestLon   float64
	nearestMaxKm float64

	plotOut string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "refdata",
	Short:         "Reference data for the India GBIF analysis notebooks",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			return nil
		}
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the integrity of every constant and table",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "Print the country reference table with derived metrics",
	Args:  cobra.NoArgs,
	RunE:  runCountries,
}

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "Print the India city table",
	Args:  cobra.NoArgs,
	RunE:  runCities,
}

var nearestCmd = &cobra.Command{
	Use:   "nearest",
	Short: "Find the major city closest to a coordinate",
	Args:  cobra.NoArgs,
	RunE:  runNearest,
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Print resolved dataset paths",
	Args:  cobra.NoArgs,
	RunE:  runPaths,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write both tables as Parquet into the cache directory",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the species-area chart with the notebook style",
	Args:  cobra.NoArgs,
	RunE:  runPlot,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	nearestCmd.Flags().Float64Var(&nearestLat, "lat", 0, "Latitude in decimal degrees")
	nearestCmd.Flags().Float64Var(&nearestLon, "lon", 0, "Longitude in decimal degrees")
	nearestCmd.Flags().Float64Var(&nearestMaxKm, "max-km", 0, "Fail if the closest city is farther than this (0 = no limit)")
	nearestCmd.MarkFlagRequired("lat")
	nearestCmd.MarkFlagRequired("lon")

	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "species_area.png", "Output PNG path")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(countriesCmd)
	rootCmd.AddCommand(citiesCmd)
	rootCmd.AddCommand(nearestCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(plotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig builds the library config from --config, if given.
func loadConfig() (*refdata.Config, error) {
	if configPath == "" {
		return refdata.NewConfig(refdata.WithLogger(logger)), nil
	}
	return refdata.LoadConfig(configPath, refdata.WithLogger(logger))
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "OK: %d countries, %d cities\n", len(refdata.CountryRefs()), len(refdata.IndiaCities()))
	return nil
}

func runCountries(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tPOP (M)\tAREA (Mkm²)\tSPECIES\tPEOPLE/km²\tSPECIES/Mkm²")
	for _, c := range refdata.CountryRefs() {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.3f\t%d\t%.1f\t%.0f\n",
			c.Code, c.Name, c.PopulationM, c.AreaMkm2, c.EstPlantSpecies,
			c.PopulationDensity(), c.SpeciesPerMkm2())
	}
	return tw.Flush()
}

func runCities(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CITY\tLAT\tLON\tGEOHASH")
	for _, c := range refdata.IndiaCities() {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%s\n", c.Name, c.Lat, c.Lon, c.Geohash(6))
	}
	return tw.Flush()
}

func runNearest(cmd *cobra.Command, args []string) error {
	idx := refdata.NewIndiaCityIndex()
	idx.MaxDistanceKm = nearestMaxKm

	city, dist, err := idx.Nearest(nearestLat, nearestLon)
	if err != nil {
		return err
	}
	logger.Debug("nearest city",
		zap.Float64("lat", nearestLat),
		zap.Float64("lon", nearestLon),
		zap.String("city", city.Name),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f km\n", city.Name, dist)
	return nil
}

func runPaths(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p := cfg.Resolve()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\t%s\n", refdata.DatasetGBIFRaw, p.GBIFRaw)
	fmt.Fprintf(out, "%s\t%s\n", refdata.DatasetSplot, p.Splot)
	fmt.Fprintf(out, "%s\t%s\n", refdata.DatasetGBIFFiltered, p.GBIFFiltered)
	fmt.Fprintf(out, "cache\t%s\n", p.Cache)
	fmt.Fprintf(out, "inatDatasetKey\t%s\n", refdata.INatDatasetKey)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	written, err := cfg.ExportAll()
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	plotstyle.SetupPlotting()
	style := plotstyle.Current()

	p, err := plotstyle.SpeciesAreaPlot(style, refdata.CountryRefs())
	if err != nil {
		return err
	}
	if err := style.Save(p, plotstyle.FigureWidth, plotstyle.FigureHeight, plotOut); err != nil {
		return err
	}
	logger.Info("wrote plot", zap.String("path", plotOut), zap.Int("dpi", style.DPI))
	fmt.Fprintln(cmd.OutOrStdout(), plotOut)
	return nil
}
