// Package plotstyle holds the chart style shared by the analysis notebooks
// and applies it to gonum plots.
package plotstyle

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Theme selects background, grid, and tick appearance.
type Theme string

const (
	ThemeTicks     Theme = "ticks"
	ThemeWhite     Theme = "white"
	ThemeWhiteGrid Theme = "whitegrid"
	ThemeDark      Theme = "dark"
	ThemeDarkGrid  Theme = "darkgrid"
)

// Context scales fonts, lines, and markers for the output medium.
type Context string

const (
	ContextPaper    Context = "paper"
	ContextNotebook Context = "notebook"
	ContextTalk     Context = "talk"
	ContextPoster   Context = "poster"
)

var contextScale = map[Context]float64{
	ContextPaper:    0.8,
	ContextNotebook: 1,
	ContextTalk:     1.5,
	ContextPoster:   2,
}

// Sizes in points for the notebook context at font scale 1.
const (
	baseTitleSize  = 12
	baseLabelSize  = 12
	baseTickSize   = 11
	baseLegendSize = 11
	baseLineWidth  = 1.5
	baseAxisWidth  = 1.25
	baseGridWidth  = 1
	baseMarkerSize = 6
	baseTickLength = 6
)

// Default figure size.
const (
	FigureWidth  = 6.4 * vg.Inch
	FigureHeight = 4.8 * vg.Inch
)

var (
	darkBackground = color.RGBA{R: 0xea, G: 0xea, B: 0xf2, A: 0xff}
	lightGridColor = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
)

// Style is a complete chart style.
type Style struct {
	Theme     Theme
	Context   Context
	FontScale float64 // Relative multiplier applied to every font size
	DPI       int     // Raster output resolution
}

// Default returns the notebook style: ticks theme, paper context,
// font scale 1.4, 150 DPI.
func Default() Style {
	return Style{
		Theme:     ThemeTicks,
		Context:   ContextPaper,
		FontScale: 1.4,
		DPI:       150,
	}
}

// Validate reports whether every field of s holds a known, usable value.
func (s Style) Validate() error {
	switch s.Theme {
	case ThemeTicks, ThemeWhite, ThemeWhiteGrid, ThemeDark, ThemeDarkGrid:
	default:
		return fmt.Errorf("unknown theme %q", s.Theme)
	}
	if _, ok := contextScale[s.Context]; !ok {
		return fmt.Errorf("unknown context %q", s.Context)
	}
	if !(s.FontScale > 0) {
		return fmt.Errorf("font scale %v must be positive", s.FontScale)
	}
	if s.DPI <= 0 {
		return fmt.Errorf("dpi %d must be positive", s.DPI)
	}
	return nil
}

func (s Style) scale() float64 {
	if f, ok := contextScale[s.Context]; ok {
		return f
	}
	return 1
}

// FontSize returns base points scaled by the context and the font scale.
func (s Style) FontSize(base float64) vg.Length {
	return vg.Points(base * s.scale() * s.FontScale)
}

// LineWidth returns base points scaled by the context.
func (s Style) LineWidth(base float64) vg.Length {
	return vg.Points(base * s.scale())
}

func (s Style) dark() bool {
	return s.Theme == ThemeDark || s.Theme == ThemeDarkGrid
}

func (s Style) gridded() bool {
	return s.Theme == ThemeWhiteGrid || s.Theme == ThemeDarkGrid
}

// GridLineStyle returns the grid line style for the theme.
func (s Style) GridLineStyle() draw.LineStyle {
	ls := draw.LineStyle{Color: lightGridColor, Width: s.LineWidth(baseGridWidth)}
	if s.dark() {
		ls.Color = color.White
	}
	return ls
}

// Apply styles the text, axes, and background of p. Gridded themes add a
// grid plotter, so Apply should be called once per plot.
func (s Style) Apply(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = s.FontSize(baseTitleSize)
	p.Legend.TextStyle.Font.Size = s.FontSize(baseLegendSize)

	p.BackgroundColor = color.White
	if s.dark() {
		p.BackgroundColor = darkBackground
	}

	tickLength := s.LineWidth(baseTickLength)
	if s.Theme != ThemeTicks {
		tickLength = 0
	}
	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		a.Label.TextStyle.Font.Size = s.FontSize(baseLabelSize)
		a.Tick.Label.Font.Size = s.FontSize(baseTickSize)
		a.LineStyle.Width = s.LineWidth(baseAxisWidth)
		a.Tick.LineStyle.Width = s.LineWidth(baseAxisWidth)
		a.Tick.Length = tickLength
	}

	if s.gridded() {
		g := plotter.NewGrid()
		g.Vertical = s.GridLineStyle()
		g.Horizontal = s.GridLineStyle()
		p.Add(g)
	}
}

// NewPlot returns a plot with s applied.
func NewPlot(s Style) *plot.Plot {
	p := plot.New()
	s.Apply(p)
	return p
}

// WriterTo renders p as a PNG of the given size at the style resolution.
func (s Style) WriterTo(p *plot.Plot, w, h vg.Length) (io.WriterTo, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(s.DPI))
	p.Draw(draw.New(c))
	return vgimg.PngCanvas{Canvas: c}, nil
}

// Save renders p as a PNG file.
func (s Style) Save(p *plot.Plot, w, h vg.Length, path string) (err error) {
	wt, err := s.WriterTo(p, w, h)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if _, err := wt.WriteTo(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

var (
	currentMu sync.RWMutex
	current   = Style{
		Theme:     ThemeWhite,
		Context:   ContextNotebook,
		FontScale: 1,
		DPI:       int(vgimg.DefaultDPI),
	}
)

// Current returns the process-wide default style.
func Current() Style {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetupPlotting makes Default the process-wide style and updates gonum's
// global plotter defaults to match. Calling it again leaves the same state.
// It must not run concurrently with plot rendering.
func SetupPlotting() {
	setCurrent(Default())
}

func setCurrent(s Style) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = s

	plotter.DefaultLineStyle.Width = s.LineWidth(baseLineWidth)
	plotter.DefaultGlyphStyle.Radius = s.LineWidth(baseMarkerSize) / 2
	plotter.DefaultGridLineStyle = s.GridLineStyle()
	plotter.DefaultFontSize = s.FontSize(baseTickSize)
}
