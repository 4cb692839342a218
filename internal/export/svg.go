package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/dpend/internal/pendulum"
)

const brailleBlank = 0x2800

// Braille dot-to-bit mapping, [row][col] within one cell.
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// BrailleToSVG renders a grid of braille runes as dots, one circle per set
// sub-pixel. scale is the sub-pixel pitch in SVG units.
func BrailleToSVG(grid [][]rune, scale float64, fg, bg string) string {
	if len(grid) == 0 {
		return ""
	}

	cols := 0
	for _, row := range grid {
		cols = max(cols, len(row))
	}
	width := float64(cols) * scale * 2
	height := float64(len(grid)) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, bg, fg)

	dotRadius := scale * 0.4
	for row, cells := range grid {
		for col, r := range cells {
			if r <= brailleBlank || r > brailleBlank+0xff {
				continue
			}
			pattern := int(r - brailleBlank)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrailToSVG draws a bob trail as a polyline. The view is centred on the
// pivot and spans reach metres in every direction, so trails from different
// runs of the same pendulum line up.
func TrailToSVG(points []pendulum.Point, reach float64, size int, stroke string) string {
	var finite []pendulum.Point
	for _, p := range points {
		if !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0) {
			finite = append(finite, p)
		}
	}
	if len(finite) < 2 || !(reach > 0) {
		return ""
	}

	half := float64(size) / 2
	scale := half / (reach * 1.1)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<circle cx="%.1f" cy="%.1f" r="3" fill="#888888"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		size, size, size, size, half, half, stroke)

	for i, p := range finite {
		x := half + p.X*scale
		y := half - p.Y*scale
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
