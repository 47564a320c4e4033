// Package audio turns the simulation into sound: a short plink per
// contact, pitched by impact speed, over a low hum that follows the
// total kinetic energy.
package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/skovran/physbox/internal/session"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	maxVoices = 12
	// Wall hits carry no closing speed; give them a fixed thump.
	wallImpact = 120.0
)

// voice is one decaying plink.
type voice struct {
	freq  float64
	phase float64
	amp   float64
}

type Processor struct {
	stream *portaudio.Stream

	mu      sync.Mutex
	pending []float64
	energy  float64

	voices   []voice
	humLevel float64
	humPhase float64
	filter   [2]float64
	Active   bool
}

func NewProcessor() *Processor {
	return &Processor{}
}

// Start opens the default output device. Callers should treat an
// error as "run silent", not fatal.
func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: init: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio: start stream: %w", err)
	}
	a.stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if a.stream != nil {
		a.stream.Stop()
		a.stream.Close()
		a.stream = nil
	}
	portaudio.Terminate()
	a.Active = false
}

// UpdateFrame feeds the latest frame; call once per step from the
// render loop. Contacts and wall hits queue plinks, kinetic energy
// drives the hum.
func (a *Processor) UpdateFrame(f *session.Frame) {
	if f == nil {
		return
	}
	ke := 0.0
	for i := range f.Particles {
		ke += 0.5 * f.Particles[i].Vel.LenSq()
	}

	a.mu.Lock()
	a.energy = ke
	for _, c := range f.Contacts {
		a.pending = append(a.pending, c.Impact)
	}
	for range f.WallHits {
		a.pending = append(a.pending, wallImpact)
	}
	if len(a.pending) > 2*maxVoices {
		a.pending = a.pending[len(a.pending)-2*maxVoices:]
	}
	a.mu.Unlock()
}

// Triangle wave: smooth, flute-like, no harsh buzz.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One-pole low pass.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (a *Processor) process(out [][]float32) {
	a.mu.Lock()
	impacts := a.pending
	a.pending = nil
	target := a.energy
	a.mu.Unlock()

	for _, imp := range impacts {
		f := 220 + math.Min(imp, 1000)*1.1
		amp := math.Min(imp/400, 1.0) * 0.5
		if len(a.voices) == maxVoices {
			a.voices = a.voices[1:]
		}
		a.voices = append(a.voices, voice{freq: f, amp: amp})
	}

	const dt = 1.0 / float64(SampleRate)
	// Plinks fade to silence in roughly a third of a second.
	decay := math.Exp(-5.0 / (0.3 * float64(SampleRate)))

	for i := 0; i < len(out[0]); i++ {
		// Hum drifts toward the energy level slowly enough to breathe.
		a.humLevel = a.humLevel*0.9995 + target*0.0005
		humAmp := math.Min(a.humLevel/40000, 0.15)
		a.humPhase += 55.0 * dt
		sample := triangle(a.humPhase) * humAmp

		live := a.voices[:0]
		for j := range a.voices {
			v := a.voices[j]
			sample += math.Sin(2*math.Pi*v.phase) * v.amp
			v.phase += v.freq * dt
			v.amp *= decay
			if v.amp > 1e-4 {
				live = append(live, v)
			}
		}
		a.voices = live

		var l, r float64
		l, a.filter[0] = lpf(sample, 1500, dt, a.filter[0])
		r, a.filter[1] = lpf(sample, 1500, dt, a.filter[1])

		out[0][i] = float32(l * 0.6)
		out[1][i] = float32(r * 0.6)
	}
}
