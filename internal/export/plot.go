// Package export renders curve files as images.
package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/heatsim/internal/storage"
)

var linePalette = []color.Color{
	color.RGBA{R: 0xe6, G: 0x55, B: 0x0d, A: 0xff},
	color.RGBA{R: 0x31, G: 0x82, B: 0xbd, A: 0xff},
	color.RGBA{R: 0x31, G: 0xa3, B: 0x54, A: 0xff},
	color.RGBA{R: 0x75, G: 0x6b, B: 0xb1, A: 0xff},
}

// Options control image output.
type Options struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
	LogY   bool
}

func (o Options) withDefaults() Options {
	if o.XLabel == "" {
		o.XLabel = "x"
	}
	if o.YLabel == "" {
		o.YLabel = "u"
	}
	if o.Width == 0 {
		o.Width = 6 * vg.Inch
	}
	if o.Height == 0 {
		o.Height = 4 * vg.Inch
	}
	return o
}

// Plot builds a line plot of curves.
func Plot(curves []*storage.Curve, opts Options) (*plot.Plot, error) {
	if len(curves) == 0 {
		return nil, fmt.Errorf("export: no curves")
	}
	opts = opts.withDefaults()

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	if opts.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{}
	}
	p.Add(plotter.NewGrid())

	for i, c := range curves {
		pts := make(plotter.XYs, 0, c.Len())
		for j := range c.Y {
			if opts.LogY && c.Y[j] <= 0 {
				continue
			}
			pts = append(pts, plotter.XY{X: c.X[j], Y: c.Y[j]})
		}
		if len(pts) == 0 {
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("export: %s: %w", c.Name, err)
		}
		line.Color = linePalette[i%len(linePalette)]
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(c.Name, line)
	}
	p.Legend.Top = true
	return p, nil
}

// Save writes curves to path. The format follows the extension: .svg uses
// CurvesToSVG, anything gonum/plot supports (.png, .pdf, .eps, ...) is
// rendered with it.
func Save(path string, curves []*storage.Curve, opts Options) error {
	opts = opts.withDefaults()
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		svg := CurvesToSVG(curves, int(opts.Width.Points()), int(opts.Height.Points()))
		if svg == "" {
			return fmt.Errorf("export: nothing to draw")
		}
		return os.WriteFile(path, []byte(svg), 0644)
	}

	p, err := Plot(curves, opts)
	if err != nil {
		return err
	}
	return p.Save(opts.Width, opts.Height, path)
}
