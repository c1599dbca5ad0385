package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/heatsim/internal/storage"
)

// Stroke colours for successive curves in an SVG.
var svgPalette = []string{"#ff9f43", "#48dbfb", "#5fd068", "#ff9ff3", "#feca57"}

// CurvesToSVG draws curves as polylines on a shared, padded range. It
// returns "" when no curve has at least two points.
func CurvesToSVG(curves []*storage.Curve, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	drawable := 0
	for _, c := range curves {
		if c.Len() < 2 {
			continue
		}
		drawable++
		for i := range c.Y {
			minX, maxX = math.Min(minX, c.X[i]), math.Max(maxX, c.X[i])
			minY, maxY = math.Min(minY, c.Y[i]), math.Max(maxY, c.Y[i])
		}
	}
	if drawable == 0 {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	minY -= rangeY * 0.1
	rangeX *= 1.1
	rangeY *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	k := 0
	for _, c := range curves {
		if c.Len() < 2 {
			continue
		}
		stroke := svgPalette[k%len(svgPalette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
		for i := range c.Y {
			x := (c.X[i] - minX) / rangeX * float64(width)
			y := float64(height) - (c.Y[i]-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
		sb.WriteString(fmt.Sprintf(`<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16*(k+1), stroke, escape(c.Name)))
		k++
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
