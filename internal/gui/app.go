package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orbitsim/internal/sim"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColGrid    = rl.NewColor(40, 40, 40, 255)
)

const (
	screenWidth  = 1600
	screenHeight = 960
	panStep      = 10
	gridSlices   = 1000
	gridSpacing  = 50
)

// App owns the window camera and advances the simulator once per frame.
type App struct {
	Sim     *sim.Simulator
	Title   string
	Camera  rl.Camera3D
	Running bool
	Trails  bool
	quit    bool
}

func initWindow(title string, fps int) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(screenWidth, screenHeight, title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(s *sim.Simulator, title string) *App {
	return &App{
		Sim:   s,
		Title: title,
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 500, 1000),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			110,
			rl.CameraPerspective,
		),
		Running: true,
		Trails:  true,
	}
}

// Run opens a window showing s and blocks until it is closed.
func Run(s *sim.Simulator, title string, fps int) {
	if fps <= 0 {
		fps = 60
	}
	initWindow(title, fps)
	defer rl.CloseWindow()
	NewApp(s, title).RunLoop()
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.Trails = !a.Trails
	}
	if !a.Running && rl.IsKeyPressed(rl.KeyN) {
		a.Sim.Step()
	}

	var d rl.Vector3
	if rl.IsKeyDown(rl.KeyW) {
		d.Z -= panStep
	}
	if rl.IsKeyDown(rl.KeyS) {
		d.Z += panStep
	}
	if rl.IsKeyDown(rl.KeyA) {
		d.X -= panStep
	}
	if rl.IsKeyDown(rl.KeyD) {
		d.X += panStep
	}
	if rl.IsKeyDown(rl.KeySpace) {
		d.Y += panStep
	}
	if rl.IsKeyDown(rl.KeyLeftShift) {
		d.Y -= panStep
	}
	a.Camera.Position = rl.Vector3Add(a.Camera.Position, d)
	a.Camera.Target = rl.Vector3Add(a.Camera.Target, d)

	if a.Running {
		a.Sim.Step()
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.Camera)
	rl.DrawGrid(gridSlices, gridSpacing)
	a.drawStar()
	a.drawBodies()
	rl.EndMode3D()

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawText(a.Title, 30, 30, 24, ColSelect)
	rl.DrawText(fmt.Sprintf("tick %d  bodies %d  %s", a.Sim.Tick(), len(a.Sim.Bodies()), a.Sim.Config().Order), 30, 62, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	rl.DrawText(status, screenWidth-140, 30, 16, col)
	rl.DrawText("[WASD] PAN  [SPACE/SHIFT] UP/DOWN  [P] PAUSE  [N] STEP  [T] TRAILS  [Q] QUIT", 30, screenHeight-30, 14, ColTextDim)
	rl.DrawFPS(screenWidth-100, screenHeight-30)
}
