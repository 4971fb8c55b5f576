package plotstyle

import (
	"errors"
	"fmt"

	"github.com/andreiashu/refdata"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// SpeciesAreaPlot charts estimated plant species against land area on
// log-log axes, one labelled point per country.
func SpeciesAreaPlot(s Style, refs []refdata.CountryRef) (*plot.Plot, error) {
	if len(refs) == 0 {
		return nil, errors.New("species-area plot: no countries")
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("species-area plot: %w", err)
	}

	xys := make(plotter.XYs, len(refs))
	labels := make([]string, len(refs))
	for i, r := range refs {
		xys[i].X = r.AreaMkm2
		xys[i].Y = float64(r.EstPlantSpecies)
		labels[i] = r.Code
	}

	p := NewPlot(s)
	p.Title.Text = "Plant species richness vs land area"
	p.X.Label.Text = "Land area (million km²)"
	p.Y.Label.Text = "Estimated native plant species"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("species-area plot: %w", err)
	}
	sc.GlyphStyle.Radius = s.LineWidth(baseMarkerSize) / 2

	lb, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("species-area plot: %w", err)
	}
	for i := range lb.TextStyle {
		lb.TextStyle[i].Font.Size = s.FontSize(baseTickSize) * 0.8
	}

	p.Add(sc, lb)
	return p, nil
}
