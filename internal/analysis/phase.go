package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/dpend/internal/dynamo"
)

type Point struct {
	X, Y float64
}

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point
}

// Bounds returns the extent of the portrait. Non-finite points are skipped.
func (p *PhasePortrait2D) Bounds() (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, pt := range p.Points {
		if !finite(pt.X) || !finite(pt.Y) {
			continue
		}
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	return minX, maxX, minY, maxY
}

func checkIndices(x0 dynamo.State, idx ...int) error {
	for _, i := range idx {
		if i < 0 || i >= len(x0) {
			return fmt.Errorf("%w: index %d outside state of length %d", dynamo.ErrDimensionMismatch, i, len(x0))
		}
	}
	return nil
}

// GeneratePhasePortrait runs a simulation and records phase space trajectory
func GeneratePhasePortrait(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	xIdx, yIdx int,
	dt, duration float64,
) (*PhasePortrait2D, error) {
	if err := checkIndices(x0, xIdx, yIdx); err != nil {
		return nil, err
	}
	if err := (dynamo.Config{Dt: dt, Duration: duration}).Validate(); err != nil {
		return nil, err
	}

	steps := dynamo.Config{Dt: dt, Duration: duration}.Steps()
	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, steps+1),
	}

	x := x0.Clone()
	portrait.Points = append(portrait.Points, Point{X: x[xIdx], Y: x[yIdx]})
	t := 0.0
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, t, dt)
		t += dt
		portrait.Points = append(portrait.Points, Point{X: x[xIdx], Y: x[yIdx]})
	}

	return portrait, nil
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX, minY, maxY := portrait.Bounds()
	if minX > maxX {
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
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range portrait.Points {
		if !finite(p.X) || !finite(p.Y) {
			continue
		}
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Axes where they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// PoincareSection records points when a trajectory crosses a plane
type PoincareSection struct {
	Points []Point
}

// GeneratePoincareSection records (x[recordX], x[recordY]) every time
// x[crossIdx] crosses threshold upward. Recorded values are linearly
// interpolated to the crossing.
//
// For the pendulum, crossing θ1 = 0 and recording (θ2, ω2) gives the usual
// section. Angles are not wrapped, so only crossings of the given level count.
func GeneratePoincareSection(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	crossIdx int,
	threshold float64,
	recordX, recordY int,
	dt, duration float64,
) (*PoincareSection, error) {
	if err := checkIndices(x0, crossIdx, recordX, recordY); err != nil {
		return nil, err
	}
	if err := (dynamo.Config{Dt: dt, Duration: duration}).Validate(); err != nil {
		return nil, err
	}

	section := &PoincareSection{}

	steps := dynamo.Config{Dt: dt, Duration: duration}.Steps()
	x := x0.Clone()
	t := 0.0
	for i := 0; i < steps; i++ {
		prev := x
		x = integ.Step(sys, x, t, dt)
		t += dt

		if prev[crossIdx] < threshold && x[crossIdx] >= threshold {
			frac := (threshold - prev[crossIdx]) / (x[crossIdx] - prev[crossIdx])
			section.Points = append(section.Points, Point{
				X: prev[recordX] + frac*(x[recordX]-prev[recordX]),
				Y: prev[recordY] + frac*(x[recordY]-prev[recordY]),
			})
		}
	}

	return section, nil
}

// PoincareSectionToASCII converts section data to ASCII plot
func PoincareSectionToASCII(section *PoincareSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No crossings detected"
	}
	return PhasePortraitToASCII(&PhasePortrait2D{Points: section.Points}, width, height)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
