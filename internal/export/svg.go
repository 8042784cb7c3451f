package export

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/san-kum/spinnet/internal/spin"
	"github.com/san-kum/spinnet/internal/viz"
)

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// GraphToSVG draws the network as static vector art: one line per edge,
// coloured by spin with stroke width 2j, and one glowing circle per node.
// Each edge carries a title with its spin and its area in units u.
func GraphToSVG(g *spin.Graph, b spin.Bounds, u spin.Units) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<defs>
<radialGradient id="glow">
<stop offset="0" stop-color="#00d4ff" stop-opacity="1"/>
<stop offset="0.5" stop-color="#0096ff" stop-opacity="0.5"/>
<stop offset="1" stop-color="#0064ff" stop-opacity="0"/>
</radialGradient>
</defs>
<rect width="100%%" height="100%%" fill="#000000"/>
<g stroke-linecap="round">
`, b.Width, b.Height, b.Width, b.Height))

	for _, e := range g.Edges {
		brightness := math.Abs(math.Sin(e.Phase))*0.5 + 0.5
		c := viz.HSLA(viz.EdgeHue(e.Spin), 100, 60, 1)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-opacity="%.2f" stroke-width="%.1f"><title>j=%v area=%.4g</title></line>
`, e.A.Pos.X, e.A.Pos.Y, e.B.Pos.X, e.B.Pos.Y, hex(c), brightness*0.8, e.Spin*2, e.Spin, e.Area(u)))
	}
	sb.WriteString("</g>\n<g>\n")

	for _, n := range g.Nodes {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="url(#glow)"/>
<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#00ffff"/>
`, n.Pos.X, n.Pos.Y, n.Radius*3, n.Pos.X, n.Pos.Y, n.Radius))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots values as a polyline scaled to fill width x height.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
