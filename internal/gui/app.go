// Package gui is the interactive raylib front end: it polls input,
// feeds events to a session, steps it in real time, and paints the
// frame's draw list.
package gui

import (
	"fmt"
	"log/slog"
	"os"

	raygui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/skovran/physbox/internal/audio"
	"github.com/skovran/physbox/internal/config"
	"github.com/skovran/physbox/internal/phys"
	"github.com/skovran/physbox/internal/session"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
)

var modeBlurbs = map[config.Mode]string{
	config.ModeOrbit:     "planets circling a serrated sun",
	config.ModeBallistic: "aim the cannon, watch the arc",
	config.ModeCollision: "grab a ball and throw it",
	config.ModeSettling:  "five fluids, one race to the bottom",
}

type App struct {
	Cfg       *config.Config
	Sess      *session.Session
	Frame     *session.Frame
	Running   bool
	InMenu    bool
	ShowPanel bool
	Modes     []config.Mode
	Selected  int
	Font      rl.Font
	Audio     *audio.Processor
	Log       *slog.Logger
}

func initWindow(w, h float64) {
	rl.InitWindow(int32(w), int32(h), "physbox")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(cfg *config.Config, interactive bool, logger *slog.Logger) *App {
	proc := audio.NewProcessor()
	if err := proc.Start(); err != nil {
		logger.Warn("audio unavailable, running silent", "err", err)
	}

	app := &App{
		Modes:  config.Modes(),
		Font:   loadFont(),
		InMenu: interactive,
		Audio:  proc,
		Log:    logger,
	}
	if !interactive {
		app.startSession(cfg)
	}
	return app
}

// RunInteractive opens the window on the mode menu and blocks until
// the window closes.
func RunInteractive(logger *slog.Logger) {
	initWindow(config.DefaultWidth, config.DefaultHeight)
	defer rl.CloseWindow()
	app := NewApp(nil, true, logger)
	app.RunLoop()
}

// Run opens the window straight into a session built from cfg.
func Run(cfg *config.Config, logger *slog.Logger) {
	initWindow(cfg.World.Width, cfg.World.Height)
	defer rl.CloseWindow()
	app := NewApp(cfg, false, logger)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
	a.Audio.Stop()
}

func (a *App) startSession(cfg *config.Config) {
	s, err := session.New(cfg)
	if err != nil {
		a.Log.Error("session rejected config", "mode", cfg.Mode, "err", err)
		a.InMenu = true
		return
	}
	a.Cfg = cfg
	a.Sess = s
	a.Frame = s.Snapshot()
	rl.SetWindowSize(int(cfg.World.Width), int(cfg.World.Height))
	a.Running = true
	a.InMenu = false
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.Audio.Stop()
		os.Exit(0)
	}

	if a.InMenu {
		a.updateMenu()
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		a.Running = false
		return
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.ShowPanel = !a.ShowPanel
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Sess.Queue(session.Event{Kind: session.KeyReset})
	}
	if rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyEnter) {
		a.Sess.Queue(session.Event{Kind: session.KeyStart})
	}

	mouse := rl.GetMousePosition()
	if !(a.ShowPanel && a.overPanel(mouse)) {
		at := phys.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)}
		switch {
		case rl.IsMouseButtonPressed(rl.MouseLeftButton):
			a.Sess.Queue(session.Event{Kind: session.PointerPress, At: at})
		case rl.IsMouseButtonReleased(rl.MouseLeftButton):
			a.Sess.Queue(session.Event{Kind: session.PointerRelease, At: at})
		case rl.IsMouseButtonDown(rl.MouseLeftButton):
			a.Sess.Queue(session.Event{Kind: session.PointerMove, At: at})
		}
	}

	// A paused frame steps zero time: input still lands, physics
	// stands still.
	dt := float64(rl.GetFrameTime())
	if !a.Running {
		dt = 0
	}
	a.Sess.Step(dt)
	a.Frame = a.Sess.Snapshot()
	a.Audio.UpdateFrame(a.Frame)
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected--
	}
	if a.Selected >= len(a.Modes) {
		a.Selected = 0
	}
	if a.Selected < 0 {
		a.Selected = len(a.Modes) - 1
	}

	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		a.startSession(config.DefaultFor(a.Modes[a.Selected]))
	}
	// Esc resumes a live session instead of stranding it.
	if rl.IsKeyPressed(rl.KeyEscape) && a.Sess != nil {
		a.InMenu = false
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		a.drawFrame(a.Frame)
		a.drawHUD()
		if a.ShowPanel {
			a.drawPanel()
		}
	}

	rl.EndDrawing()
}

func (a *App) drawHUD() {
	a.drawText("physbox", 30, 20, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Cfg.Mode), 150, 24, 16, ColText)
	a.drawText(fmt.Sprintf("t %.1fs", a.Frame.Time), 150, 44, 14, ColTextDim)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, int(a.Cfg.World.Width)-110, 20, 16, col)

	helpY := int(a.Cfg.World.Height) - 30
	a.drawText("[R] RESET  [SPACE] START  [P] PAUSE  [TAB] TUNING  [ESC] MENU  [Q] QUIT", 30, helpY, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), int(a.Cfg.World.Width)-90, helpY, 14, ColTextDim)

	if !a.Audio.Active {
		a.drawText("AUDIO [OFF]", int(a.Cfg.World.Width)-110, 44, 14, rl.Red)
	}
}

func (a *App) drawMenu() {
	a.drawText("physbox", 50, 50, 40, ColSelect)
	a.drawText("Select Mode", 50, 100, 16, ColTextDim)

	y := 160
	for i, m := range a.Modes {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", m), 50, y, 20, ColSelect)
			a.drawText(modeBlurbs[m], 250, y+3, 14, ColText)
		} else {
			a.drawText(fmt.Sprintf("  %s", m), 50, y, 20, ColText)
		}
		y += 34
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 50, 560, 14, ColTextDim)
}

const (
	panelWidth  = 250
	panelHeight = 190
)

func (a *App) panelOrigin() (float32, float32) {
	return float32(a.Cfg.World.Width) - panelWidth - 20, 70
}

func (a *App) overPanel(mouse rl.Vector2) bool {
	px, py := a.panelOrigin()
	return mouse.X >= px-10 && mouse.X <= px+panelWidth &&
		mouse.Y >= py-10 && mouse.Y <= py+panelHeight
}

// drawPanel exposes the continuous knobs of the active mode. The
// sliders write straight into the live config; geometry changes only
// take hold on the next reset.
func (a *App) drawPanel() {
	x, y := a.panelOrigin()
	rl.DrawRectangle(int32(x)-10, int32(y)-10, panelWidth+10, panelHeight, rl.NewColor(18, 18, 18, 235))
	a.drawText("tuning", int(x), int(y), 16, ColAccent)
	y += 26

	switch a.Cfg.Mode {
	case config.ModeOrbit:
		o := &a.Cfg.Orbit
		o.TimeScale = a.slider(x, &y, "time scale", o.TimeScale, 1, 60)
		o.Gravity = a.slider(x, &y, "gravity", o.Gravity, 0.01, 0.5)
	case config.ModeBallistic:
		b := &a.Cfg.Ballistic
		b.Gravity = a.slider(x, &y, "gravity", b.Gravity, 100, 1500)
		b.MaxSpeed = a.slider(x, &y, "max launch speed", b.MaxSpeed, 200, 2000)
	case config.ModeCollision:
		c := &a.Cfg.Collision
		c.Restitution = a.slider(x, &y, "bounciness", c.Restitution, 0, 1)
		c.ThrowScale = a.slider(x, &y, "throw strength", c.ThrowScale, 1, 12)
	case config.ModeSettling:
		st := &a.Cfg.Settling
		st.Gravity = a.slider(x, &y, "gravity", st.Gravity, 100, 1500)
		st.WaveSpeed = a.slider(x, &y, "wave speed", st.WaveSpeed, 0, 10)
	}

	if raygui.Button(rl.Rectangle{X: x, Y: y, Width: 100, Height: 26}, "Reset") {
		a.Sess.Queue(session.Event{Kind: session.KeyReset})
	}
	if a.Cfg.Mode == config.ModeSettling {
		if raygui.Button(rl.Rectangle{X: x + 110, Y: y, Width: 100, Height: 26}, "Drop") {
			a.Sess.Queue(session.Event{Kind: session.KeyStart})
		}
	}
}

func (a *App) slider(x float32, y *float32, label string, val, min, max float64) float64 {
	a.drawText(label, int(x), int(*y), 14, ColText)
	*y += 18
	out := raygui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: 180, Height: 16},
		"", fmt.Sprintf("%.2f", val),
		float32(val), float32(min), float32(max),
	)
	*y += 28
	return float64(out)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
