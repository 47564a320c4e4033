package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/skovran/physbox/internal/config"
	"github.com/skovran/physbox/internal/phys"
	"github.com/skovran/physbox/internal/session"
)

const (
	width          = 80
	height         = 24
	energyCapacity = 240

	// The canvas block is padded 1 row down and 2 columns right; the
	// mouse mapping has to undo that.
	canvasOffsetX = 2
	canvasOffsetY = 1
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model runs one session inside a Bubble Tea program: ticks step the
// physics, terminal mouse events become pointer input, and the frame
// is rasterized onto a braille canvas.
type Model struct {
	sess     *session.Session
	cfg      *config.Config
	frame    *session.Frame
	canvas   *Canvas
	view     Viewport
	running  bool
	energy   []float64
	showHelp bool
}

func NewModel(cfg *config.Config) (Model, error) {
	s, err := session.New(cfg)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		sess:    s,
		cfg:     cfg,
		canvas:  NewCanvas(width, height),
		view:    viewportFor(cfg),
		running: true,
		energy:  make([]float64, 0, energyCapacity),
	}
	m.frame = s.Snapshot()
	return m, nil
}

// Run blocks until the user quits.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

func viewportFor(cfg *config.Config) Viewport {
	return Viewport{WorldW: cfg.World.Width, WorldH: cfg.World.Height, Cols: width, Rows: height}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.sess.Queue(session.Event{Kind: session.KeyReset})
		case "s", "enter":
			m.sess.Queue(session.Event{Kind: session.KeyStart})
		case "m":
			m.nextMode()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		at := m.view.CellToWorld(msg.X-canvasOffsetX, msg.Y-canvasOffsetY)
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.sess.Queue(session.Event{Kind: session.PointerPress, At: at})
			}
		case tea.MouseActionMotion:
			m.sess.Queue(session.Event{Kind: session.PointerMove, At: at})
		case tea.MouseActionRelease:
			m.sess.Queue(session.Event{Kind: session.PointerRelease, At: at})
		}
	case TickMsg:
		// Paused ticks still step zero time so queued input lands.
		dt := 1.0 / 60
		if !m.running {
			dt = 0
		}
		m.sess.Step(dt)
		m.frame = m.sess.Snapshot()
		m.energy = append(m.energy, kinetic(m.frame))
		if len(m.energy) > energyCapacity {
			m.energy = m.energy[1:]
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) nextMode() {
	modes := config.Modes()
	next := modes[0]
	for i, md := range modes {
		if md == m.cfg.Mode {
			next = modes[(i+1)%len(modes)]
			break
		}
	}
	cfg := config.DefaultFor(next)
	s, err := session.New(cfg)
	if err != nil {
		return
	}
	m.cfg = cfg
	m.sess = s
	m.frame = s.Snapshot()
	m.view = viewportFor(cfg)
	m.energy = m.energy[:0]
}

func kinetic(f *session.Frame) float64 {
	total := 0.0
	for i := range f.Particles {
		total += 0.5 * f.Particles[i].Vel.LenSq()
	}
	return total
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(string(m.cfg.Mode))) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.frame.Time)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(m.frame.Particles))) + "\n")

	switch m.cfg.Mode {
	case config.ModeBallistic:
		s.WriteString(labelStyle.Render("Phase") + valueStyle.Render(m.frame.Phase.String()) + "\n")
		if r := m.frame.Result; r != nil {
			s.WriteString(labelStyle.Render("Range") + valueStyle.Render(fmt.Sprintf("%.1f px", r.Range)) + "\n")
			s.WriteString(labelStyle.Render("Max height") + valueStyle.Render(fmt.Sprintf("%.1f px", r.MaxHeight)) + "\n")
			s.WriteString(labelStyle.Render("Angle") + valueStyle.Render(fmt.Sprintf("%.1f deg", r.Angle)) + "\n")
		}
	case config.ModeCollision:
		s.WriteString(labelStyle.Render("Contacts") + valueStyle.Render(fmt.Sprintf("%d", len(m.frame.Contacts))) + "\n")
	case config.ModeSettling:
		state := "falling"
		if m.sess.Settled() {
			state = "settled"
		}
		s.WriteString(labelStyle.Render("Fluids") + valueStyle.Render(state) + "\n")
	}

	for _, l := range m.frame.Labels {
		if l.Tag == session.TagHUD {
			s.WriteString("\n" + valueStyle.Render(strings.ReplaceAll(l.Text, "\n", " / ")) + "\n")
			break
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset S:Start\nM:Mode  ?:Help  Q:Quit\nMouse: drag to aim/throw"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset mode               ║
║  S/Enter  - Start (drop the balls)   ║
║  M        - Next mode                ║
║  Mouse    - Drag to aim or throw     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// draw rasterizes the frame's draw list onto the braille canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	f := m.frame
	if f == nil {
		return
	}

	for _, r := range f.Rects {
		m.drawRect(r)
	}
	for _, p := range f.Polys {
		m.drawPoly(p)
	}
	for _, c := range f.Circles {
		x, y := m.view.Point(c.Center)
		switch c.Tag {
		case session.TagBody:
			m.canvas.FillCircle(x, y, m.view.Radius(c.Radius))
		case session.TagOrbitPath:
			m.canvas.DrawCircle(x, y, m.view.Radius(c.Radius))
		default:
			m.canvas.Set(x, y)
		}
	}
	for _, seg := range f.Segments {
		x0, y0 := m.view.Point(seg.From)
		x1, y1 := m.view.Point(seg.To)
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
}

func (m *Model) drawRect(r session.RectShape) {
	corners := rectCorners(r)
	for i := 0; i < 4; i++ {
		x0, y0 := m.view.Point(corners[i])
		x1, y1 := m.view.Point(corners[(i+1)%4])
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
}

func (m *Model) drawPoly(p session.Poly) {
	n := len(p.Points)
	for i := 0; i < n-1; i++ {
		x0, y0 := m.view.Point(p.Points[i])
		x1, y1 := m.view.Point(p.Points[i+1])
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
	if p.Closed && n > 2 {
		x0, y0 := m.view.Point(p.Points[n-1])
		x1, y1 := m.view.Point(p.Points[0])
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
}

// rectCorners expands a RectShape the way the GPU renderer does:
// rotate the local corners about Origin, then translate to Pos.
// Positive angles turn clockwise on a y-down screen.
func rectCorners(r session.RectShape) [4]phys.Vec2 {
	rad := r.Angle * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	local := [4]phys.Vec2{
		{},
		{X: r.Size.X},
		{X: r.Size.X, Y: r.Size.Y},
		{Y: r.Size.Y},
	}
	var out [4]phys.Vec2
	for i, l := range local {
		dx, dy := l.X-r.Origin.X, l.Y-r.Origin.Y
		out[i] = phys.Vec2{X: r.Pos.X + dx*c - dy*s, Y: r.Pos.Y + dx*s + dy*c}
	}
	return out
}
