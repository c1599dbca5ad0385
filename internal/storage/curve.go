package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/san-kum/heatsim/internal/heat"
)

// Curve file kinds. Each maps to a file name under the run's prefix.
const (
	KindStart  = "start"
	KindFinal  = "final"
	KindChange = "change"
	KindError  = "error"
)

const curveExt = ".curve"

// Curve is a parsed two-column curve file.
type Curve struct {
	Name string
	X    []float64
	Y    []float64
}

func (c *Curve) Len() int { return len(c.Y) }

// Curves names and writes the curve files of one run.
type Curves struct {
	dir    string
	prefix string
}

func NewCurves(dir, prefix string) *Curves {
	if dir == "" {
		dir = "."
	}
	return &Curves{dir: dir, prefix: prefix}
}

func (c *Curves) Init() error {
	return os.MkdirAll(c.dir, 0755)
}

func (c *Curves) Dir() string { return c.dir }

// SolnPath is the snapshot at step k. Step 0 is the start curve.
func (c *Curves) SolnPath(k int) string {
	return c.path(fmt.Sprintf("soln_%05d", k))
}

func (c *Curves) ExactPath(k int) string {
	return c.path(fmt.Sprintf("exact_%05d", k))
}

// KindPath maps a named kind to its file.
func (c *Curves) KindPath(kind string) string {
	switch kind {
	case KindStart:
		return c.SolnPath(0)
	case KindFinal:
		return c.path("soln_final")
	default:
		return c.path(kind)
	}
}

func (c *Curves) path(stem string) string {
	return filepath.Join(c.dir, c.prefix+"_"+stem+curveExt)
}

// WriteSoln writes a temperature profile sampled every dx.
func (c *Curves) WriteSoln(path string, dx float64, vals []float64) error {
	return WriteCurve(path, "temperature", dx, vals)
}

func (c *Curves) WriteExact(path string, dx float64, vals []float64) error {
	return WriteCurve(path, "exact_temperature", dx, vals)
}

// WriteHistory writes a per-step history using dt as the x spacing.
func (c *Curves) WriteHistory(kind string, dt float64, vals []float64) error {
	name := c.prefix + "_l2"
	if kind == KindChange {
		name = c.prefix + "_l2_change"
	}
	return WriteCurve(c.KindPath(kind), name, dt, vals)
}

// WriteCurve writes "# name" then one "%8.4g %8.4g" line per value, with
// x = i*dx. Failures are reported as *heat.IOError.
func WriteCurve(path, name string, dx float64, vals []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return &heat.IOError{Path: path, Err: err}
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# %s\n", name)
	for i, v := range vals {
		fmt.Fprintf(w, "%8.4g %8.4g\n", float64(i)*dx, v)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return &heat.IOError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &heat.IOError{Path: path, Err: err}
	}
	return nil
}

// ReadCurve parses a curve file. Lines starting with '#' name the curve;
// blank lines are skipped.
func ReadCurve(path string) (*Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c := &Curve{Name: strings.TrimSuffix(filepath.Base(path), curveExt)}
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			if name := strings.TrimSpace(text[1:]); name != "" {
				c.Name = name
			}
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: expected 2 columns, got %d", path, line, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		c.X = append(c.X, x)
		c.Y = append(c.Y, y)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return c, nil
}
