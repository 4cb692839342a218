package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

// Series is one named line of a terminal chart.
type Series struct {
	Name   string
	Values []float64
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan,
	asciigraph.Magenta,
	asciigraph.Yellow,
	asciigraph.Green,
}

// PlotSeries draws one or more series on a shared axis. Series are
// downsampled to width points and cut at the first non-finite value.
func PlotSeries(caption string, width, height int, series ...Series) string {
	data := make([][]float64, 0, len(series))
	names := make([]string, 0, len(series))
	colors := make([]asciigraph.AnsiColor, 0, len(series))
	for i, s := range series {
		v := Downsample(finitePrefix(s.Values), width)
		if len(v) == 0 {
			continue
		}
		data = append(data, v)
		names = append(names, s.Name)
		colors = append(colors, seriesColors[i%len(seriesColors)])
	}
	if len(data) == 0 {
		return "no finite samples"
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(names...),
	)
}

// Downsample keeps at most n evenly spaced samples, always including the
// first and last.
func Downsample(values []float64, n int) []float64 {
	if n <= 1 || len(values) <= n {
		return values
	}
	out := make([]float64, n)
	step := float64(len(values)-1) / float64(n-1)
	for i := range out {
		out[i] = values[int(math.Round(float64(i)*step))]
	}
	return out
}

func finitePrefix(values []float64) []float64 {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return values[:i]
		}
	}
	return values
}
