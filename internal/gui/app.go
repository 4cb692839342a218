// Package gui shows the pendulum in a native window using raylib.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/dpend/internal/audio"
	"github.com/san-kum/dpend/internal/pendulum"
	"github.com/san-kum/dpend/internal/sim"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 768
	// PixelsPerMetre is the arm scale when the pendulum fits the window.
	PixelsPerMetre = 100.0
)

var (
	ColBg    = rl.NewColor(245, 245, 245, 255) // whitesmoke
	ColArm   = rl.NewColor(128, 128, 128, 255)
	ColTrail = rl.NewColor(95, 158, 160, 255) // cadet blue
	ColText  = rl.NewColor(90, 90, 90, 255)
	ColWarn  = rl.NewColor(200, 60, 40, 255)
)

type Options struct {
	Width, Height int
	FPS           int
	TrailLength   int
	Title         string
	// Synth, if set, follows the pendulum every frame.
	Synth *audio.Synth
}

// App owns the window loop. Each frame advances the simulator by the frame
// time, so the animation runs in real time at any frame rate.
type App struct {
	Sim      *sim.Simulator
	Trail    *sim.Trail
	Opts     Options
	Running  bool
	Diverged bool
	Scale    float64
}

func NewApp(s *sim.Simulator, opts Options) *App {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Title == "" {
		opts.Title = "dpend"
	}
	a := &App{
		Sim:     s,
		Trail:   sim.NewTrail(opts.TrailLength),
		Opts:    opts,
		Running: true,
		Scale:   fitScale(s.Params().Reach(), opts.Width, opts.Height),
	}
	a.Trail.Push(s.Positions().Bob2)
	return a
}

// fitScale keeps 100 px/m unless the pendulum would leave the
// window.
func fitScale(reach float64, w, h int) float64 {
	limit := 0.45 * float64(min(w, h)) / reach
	return min(PixelsPerMetre, limit)
}

// Run opens the window and blocks until it is closed or Esc is pressed.
func Run(s *sim.Simulator, opts Options) error {
	a := NewApp(s, opts)

	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(a.Opts.Width), int32(a.Opts.Height), a.Opts.Title)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return fmt.Errorf("gui: could not open window")
	}
	rl.SetTargetFPS(int32(a.Opts.FPS))
	rl.SetExitKey(rl.KeyEscape)

	a.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update(float64(rl.GetFrameTime()))
		a.Draw()
	}
}

// Update handles input and advances the simulation by one step of dt. The
// first frame reports a zero frame time and is skipped.
func (a *App) Update(dt float64) {
	defer a.sound()
	if rl.IsKeyPressed(rl.KeySpace) && !a.Diverged {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Sim.Reset()
		a.Trail.Reset()
		a.Trail.Push(a.Sim.Positions().Bob2)
		a.Running = true
		a.Diverged = false
	}

	if !a.Running || dt <= 0 {
		return
	}
	if err := a.Sim.Advance(dt); err != nil {
		a.Running = false
		return
	}
	if !a.Sim.State().IsFinite() {
		a.Running = false
		a.Diverged = true
		return
	}
	a.Trail.Push(a.Sim.Positions().Bob2)
}

// sound feeds the synth; a paused or diverged pendulum is silent.
func (a *App) sound() {
	if a.Opts.Synth == nil {
		return
	}
	if a.Running {
		a.Opts.Synth.Update(a.Sim.State())
	} else {
		a.Opts.Synth.Update(pendulum.State{})
	}
}

// ToScreen maps metres with y up and the pivot at the origin to window
// pixels with the pivot at the centre.
func (a *App) ToScreen(p pendulum.Point) rl.Vector2 {
	cx, cy := float64(a.Opts.Width)/2, float64(a.Opts.Height)/2
	return rl.NewVector2(float32(cx+p.X*a.Scale), float32(cy-p.Y*a.Scale))
}
