package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/dpend/internal/pendulum"
)

const bobRadius = 2

// Scene draws the pendulum on two braille layers so the arms can be coloured
// apart from the trail. Both layers share one projection.
type Scene struct {
	body  *Canvas
	trail *Canvas
	scale float64
	cx    int
	cy    int
}

// NewScene fits a pendulum of the given reach into a w x h cell canvas with
// the pivot at the centre.
func NewScene(w, h int, reach float64) *Scene {
	s := &Scene{body: NewCanvas(w, h), trail: NewCanvas(w, h)}
	s.cx = s.body.SubWidth() / 2
	s.cy = s.body.SubHeight() / 2
	half := min(s.body.SubWidth(), s.body.SubHeight()) / 2
	s.scale = 0.92 * float64(half-bobRadius) / reach
	return s
}

// Project maps metres, y up, to sub-pixels, y down.
func (s *Scene) Project(p pendulum.Point) (int, int) {
	return s.cx + int(math.Round(p.X*s.scale)), s.cy - int(math.Round(p.Y*s.scale))
}

// Draw renders the arms, bobs and trail. Non-finite positions are skipped.
func (s *Scene) Draw(pos pendulum.Positions, trail []pendulum.Point) {
	s.body.Clear()
	s.trail.Clear()

	var prevX, prevY int
	havePrev := false
	for _, p := range trail {
		if !finitePoint(p) {
			havePrev = false
			continue
		}
		x, y := s.Project(p)
		if havePrev {
			s.trail.DrawLine(prevX, prevY, x, y)
		} else {
			s.trail.Set(x, y)
		}
		prevX, prevY, havePrev = x, y, true
	}

	s.body.Disc(s.cx, s.cy, 1)
	if !finitePoint(pos.Bob1) || !finitePoint(pos.Bob2) {
		return
	}
	b1x, b1y := s.Project(pos.Bob1)
	b2x, b2y := s.Project(pos.Bob2)
	s.body.DrawLine(s.cx, s.cy, b1x, b1y)
	s.body.DrawLine(b1x, b1y, b2x, b2y)
	s.body.Disc(b1x, b1y, bobRadius)
	s.body.Disc(b2x, b2y, bobRadius)
}

// Grid merges both layers into one braille grid.
func (s *Scene) Grid() [][]rune {
	out := make([][]rune, s.body.Height)
	for row := range out {
		out[row] = make([]rune, s.body.Width)
		for col := range out[row] {
			out[row][col] = s.body.Grid[row][col] | s.trail.Grid[row][col]
		}
	}
	return out
}

// Render colours each cell by its topmost layer, batching runs of equal
// colour into one styled segment.
func (s *Scene) Render(theme Theme) string {
	armStyle := lipgloss.NewStyle().Foreground(theme.Arm)
	trailStyle := lipgloss.NewStyle().Foreground(theme.Trail)

	var b strings.Builder
	var run strings.Builder
	current := -1

	flush := func() {
		if run.Len() == 0 {
			return
		}
		switch current {
		case 1:
			b.WriteString(armStyle.Render(run.String()))
		case 2:
			b.WriteString(trailStyle.Render(run.String()))
		default:
			b.WriteString(run.String())
		}
		run.Reset()
	}

	for row := 0; row < s.body.Height; row++ {
		for col := 0; col < s.body.Width; col++ {
			layer := 0
			switch {
			case !s.body.Blank(col, row):
				layer = 1
			case !s.trail.Blank(col, row):
				layer = 2
			}
			if layer != current {
				flush()
				current = layer
			}
			run.WriteRune(s.body.Grid[row][col] | s.trail.Grid[row][col])
		}
		flush()
		current = -1
		b.WriteByte('\n')
	}
	return b.String()
}

func finitePoint(p pendulum.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
