package session_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/skovran/physbox/internal/config"
	"github.com/skovran/physbox/internal/phys"
	"github.com/skovran/physbox/internal/session"
)

// dt mirrors a 100 Hz frame clock. At this step every velocity
// increment under the default gravity is exactly 5.0, so the step
// counts below are exact, not approximate.
const dt = 0.01

var _ = Describe("projectile phase machine", func() {
	var (
		cfg *config.Config
		s   *session.Session
		pad phys.Vec2
	)

	BeforeEach(func() {
		cfg = config.DefaultFor(config.ModeBallistic)
		var err error
		s, err = session.New(cfg)
		Expect(err).NotTo(HaveOccurred())
		pad = phys.Vec2{
			X: cfg.Ballistic.CannonX,
			Y: cfg.World.Height - cfg.Ballistic.GroundHeight - cfg.Ballistic.CannonWidth/2,
		}
	})

	// send delivers input on a zero-length frame so that stepping
	// stays under each test's explicit control.
	send := func(kind session.EventKind, at phys.Vec2) {
		s.Queue(session.Event{Kind: kind, At: at})
		s.Step(0)
	}
	stepN := func(n int) {
		for i := 0; i < n; i++ {
			s.Step(dt)
		}
	}
	stepUntil := func(done func() bool, max int) int {
		for n := 1; n <= max; n++ {
			s.Step(dt)
			if done() {
				return n
			}
		}
		Fail(fmt.Sprintf("condition not reached within %d steps", max))
		return 0
	}
	ball := func() phys.Particle { return s.Particles()[0] }

	It("starts idle with the ball racked on the pad", func() {
		Expect(s.Phase()).To(Equal(session.PhaseIdle))
		Expect(ball().Pos).To(Equal(pad))
		Expect(s.Result()).To(BeNil())
	})

	It("begins aiming on a press and cancels on a pivot release", func() {
		send(session.PointerPress, phys.Vec2{X: 300, Y: 200})
		Expect(s.Phase()).To(Equal(session.PhaseAiming))

		// Releasing on the pivot gives the shot no direction.
		send(session.PointerRelease, pad)
		Expect(s.Phase()).To(Equal(session.PhaseIdle))
		Expect(s.Result()).To(BeNil())
		Expect(ball().Pos).To(Equal(pad))
		Expect(ball().Vel).To(Equal(phys.Vec2{}))
	})

	It("previews the trajectory from the muzzle while aiming", func() {
		send(session.PointerPress, pad.Add(phys.Vec2{X: 60, Y: -80}))

		var dots []session.Circle
		for _, c := range s.Snapshot().Circles {
			if c.Tag == session.TagPreview {
				dots = append(dots, c)
			}
		}
		// Samples every 0.1 s until the parabola would leave the
		// window bottom: fifteen of them for this aim.
		Expect(dots).To(HaveLen(15))
		Expect(dots[0].Center).To(Equal(phys.Vec2{X: 80, Y: 546}))

		send(session.PointerRelease, pad.Add(phys.Vec2{X: 60, Y: -80}))
		for _, c := range s.Snapshot().Circles {
			Expect(c.Tag).NotTo(Equal(session.TagPreview), "preview must vanish once the shot flies")
		}
	})

	It("flies a 3-4-5 launch through apex pause, landing, and re-rack", func() {
		By("launching from the muzzle at capped drag-vector speed")
		send(session.PointerPress, phys.Vec2{X: 300, Y: 200})
		// 60-80-100 drag: speed 100*4=400, velocity (240, -320).
		send(session.PointerRelease, pad.Add(phys.Vec2{X: 60, Y: -80}))
		Expect(s.Phase()).To(Equal(session.PhaseFlying))
		Expect(ball().Pos).To(Equal(phys.Vec2{X: 80, Y: 546}))
		Expect(ball().Vel.X).To(BeNumerically("~", 240, 1e-9))
		Expect(ball().Vel.Y).To(BeNumerically("~", -320, 1e-9))

		By("climbing to the apex in exactly vy/(g dt) steps")
		up := stepUntil(func() bool { return s.Phase() == session.PhaseApexPause }, 100)
		Expect(up).To(Equal(64))
		Expect(ball().Vel.Y).To(BeZero())
		Expect(ball().Pos.Y).To(BeNumerically("~", 445.2, 1e-6))

		By("hanging frozen for the pause")
		apexPos := ball().Pos
		pause := stepUntil(func() bool { return s.Phase() == session.PhaseFlying }, 230)
		Expect(pause).To(BeNumerically(">=", 200))
		Expect(pause).To(BeNumerically("<=", 202))
		Expect(ball().Pos).To(Equal(apexPos), "the apex pause freezes the ball")

		By("falling to the ground line")
		down := stepUntil(func() bool { return s.Phase() == session.PhaseLanded }, 200)
		Expect(down).To(Equal(77))
		Expect(ball().Bottom()).To(Equal(cfg.World.Height))
		Expect(ball().Vel).To(Equal(phys.Vec2{}))

		By("publishing the flight summary")
		r := s.Result()
		Expect(r).NotTo(BeNil())
		Expect(r.Range).To(BeNumerically("~", 368.4, 1e-6))
		Expect(r.MaxHeight).To(BeNumerically("~", 140.8, 1e-6))
		Expect(r.Angle).To(BeNumerically("~", 53.13010235415598, 1e-9))
		Expect(r.MaxSpeed).To(BeNumerically("~", 400, 1e-9))

		hud := ""
		for _, l := range s.Snapshot().Labels {
			if l.Tag == session.TagHUD {
				hud = l.Text
			}
		}
		Expect(hud).To(ContainSubstring("Range: 368.4 px"))
		Expect(hud).To(ContainSubstring("Angle: 53.1 deg"))

		By("re-racking after the display timer")
		show := stepUntil(func() bool { return s.Phase() == session.PhaseIdle }, 430)
		Expect(show).To(BeNumerically(">=", 400))
		Expect(show).To(BeNumerically("<=", 402))
		Expect(ball().Pos).To(Equal(pad))
		Expect(s.Result()).To(BeNil())
	})

	It("matches the closed-form parabola for a 45 degree shot", func() {
		send(session.PointerPress, phys.Vec2{X: 300, Y: 200})
		send(session.PointerRelease, pad.Add(phys.Vec2{X: 100, Y: -100}))
		Expect(s.Phase()).To(Equal(session.PhaseFlying))

		launch := ball()
		vx, vy := launch.Vel.X, -launch.Vel.Y
		Expect(vx).To(BeNumerically("~", vy, 1e-9))
		g := cfg.Ballistic.Gravity

		By("reaching the apex at t = vy/g")
		up := stepUntil(func() bool { return s.Phase() == session.PhaseApexPause }, 200)
		Expect(float64(up) * dt).To(BeNumerically("~", vy/g, 2*dt))

		By("rising vy^2/2g above the muzzle, less one Euler step")
		rise := launch.Pos.Y - ball().Pos.Y
		Expect(rise).To(BeNumerically("~", vy*vy/(2*g), vy*dt))

		By("recrossing the launch height on a mirrored arc")
		stepUntil(func() bool { return s.Phase() == session.PhaseFlying }, 230)
		stepUntil(func() bool { return ball().Pos.Y >= launch.Pos.Y }, 200)
		Expect(ball().Vel.Y).To(BeNumerically("~", vy, 2*g*dt),
			"the fall returns the launch vertical speed")
		travelled := ball().Pos.X - launch.Pos.X
		Expect(travelled).To(BeNumerically("~", 2*vx*vy/g, 2*vx*dt),
			"horizontal range matches vx * 2vy/g")
	})

	It("caps launch speed and returns a vertical shot to the pad", func() {
		send(session.PointerPress, phys.Vec2{X: 300, Y: 200})
		// 500 px straight up would be speed 2000; the cap holds it
		// at 1000.
		send(session.PointerRelease, pad.Add(phys.Vec2{Y: -500}))
		Expect(ball().Vel).To(Equal(phys.Vec2{Y: -1000}))

		By("sailing above the window top, no ceiling in this mode")
		up := stepUntil(func() bool { return s.Phase() == session.PhaseApexPause }, 250)
		Expect(up).To(Equal(200))
		Expect(ball().Pos.Y).To(BeNumerically("~", -459, 1e-6))

		stepUntil(func() bool { return s.Phase() == session.PhaseFlying }, 230)
		down := stepUntil(func() bool { return s.Phase() == session.PhaseLanded }, 300)
		Expect(down).To(Equal(205))

		r := s.Result()
		Expect(r).NotTo(BeNil())
		Expect(r.Range).To(BeZero())
		Expect(r.MaxHeight).To(BeNumerically("~", 1045, 1e-6))
		Expect(r.Angle).To(BeNumerically("~", 90, 1e-9))
		Expect(r.MaxSpeed).To(Equal(1000.0))
	})

	It("ignores input that does not fit the phase", func() {
		send(session.PointerRelease, phys.Vec2{X: 200, Y: 200})
		Expect(s.Phase()).To(Equal(session.PhaseIdle))

		send(session.PointerMove, phys.Vec2{X: 200, Y: 200})
		Expect(s.Phase()).To(Equal(session.PhaseIdle))
		Expect(ball().Pos).To(Equal(pad))

		send(session.PointerPress, phys.Vec2{X: 300, Y: 200})
		send(session.PointerRelease, pad.Add(phys.Vec2{X: 60, Y: -80}))
		stepN(10)
		inFlight := ball().Vel
		send(session.PointerPress, phys.Vec2{X: 400, Y: 100})
		Expect(s.Phase()).To(Equal(session.PhaseFlying))
		Expect(ball().Vel).To(Equal(inFlight))
	})

	It("re-racks immediately on the reset key", func() {
		send(session.PointerPress, phys.Vec2{X: 300, Y: 200})
		send(session.PointerRelease, pad.Add(phys.Vec2{X: 60, Y: -80}))
		stepN(10)

		send(session.KeyReset, phys.Vec2{})
		Expect(s.Phase()).To(Equal(session.PhaseIdle))
		Expect(ball().Pos).To(Equal(pad))
		Expect(ball().Vel).To(Equal(phys.Vec2{}))
		Expect(s.Result()).To(BeNil())

		// The cannon keeps pointing where the last shot went.
		for _, r := range s.Snapshot().Rects {
			if r.Tag == session.TagStructure && r.Index == 1 {
				Expect(r.Angle).To(BeNumerically("~", -53.13010235415598, 1e-9))
			}
		}
	})
})
