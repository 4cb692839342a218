package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	bobRadius   = 7
	armWidth    = 4
	trailWidth  = 2
	fontSize    = 20
	textPadding = 12
)

func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(ColBg)

	a.drawTrail()
	a.drawPendulum()
	a.drawHUD()
}

// drawTrail is drawn first so the arms sit on top of it.
func (a *App) drawTrail() {
	pts := a.Trail.Points()
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(a.ToScreen(pts[i-1]), a.ToScreen(pts[i]), trailWidth, ColTrail)
	}
}

func (a *App) drawPendulum() {
	pivot := rl.NewVector2(float32(a.Opts.Width)/2, float32(a.Opts.Height)/2)
	rl.DrawCircleV(pivot, bobRadius, ColArm)
	if a.Diverged {
		return
	}

	pos := a.Sim.Positions()
	b1, b2 := a.ToScreen(pos.Bob1), a.ToScreen(pos.Bob2)

	rl.DrawLineEx(pivot, b1, armWidth, ColArm)
	rl.DrawCircleV(b1, bobRadius, ColArm)
	rl.DrawLineEx(b1, b2, armWidth, ColArm)
	rl.DrawCircleV(b2, bobRadius, ColArm)
}

func (a *App) drawHUD() {
	s := a.Sim.State()
	lines := []string{
		fmt.Sprintf("t = %.2f s   %s", a.Sim.Time(), a.Sim.Integrator()),
		fmt.Sprintf("th1 = %+.3f  th2 = %+.3f", s.Theta1, s.Theta2),
		fmt.Sprintf("E = %.4f J", a.Sim.Energy()),
		fmt.Sprintf("%d fps", rl.GetFPS()),
	}
	for i, line := range lines {
		rl.DrawText(line, textPadding, int32(textPadding+i*(fontSize+4)), fontSize, ColText)
	}

	status := "space: pause  r: reset  esc: quit"
	col := ColText
	switch {
	case a.Diverged:
		status, col = "diverged - press r to reset", ColWarn
	case !a.Running:
		status = "paused - " + status
	}
	rl.DrawText(status, textPadding, int32(a.Opts.Height-fontSize-textPadding), fontSize, col)
}
