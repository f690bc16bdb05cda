package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// pulseTone is an endless sine tone with a slow amplitude pulse
// Used for the proximity signal, which loops until stopped
type pulseTone struct {
	rate      beep.SampleRate
	freq      float64
	pulseFreq float64
	amplitude float64
	phase     float64
	pulse     float64
}

func newPulseTone(rate beep.SampleRate, freq, pulseFreq, amplitude float64) *pulseTone {
	return &pulseTone{rate: rate, freq: freq, pulseFreq: pulseFreq, amplitude: amplitude}
}

func (p *pulseTone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		env := 0.5 + 0.5*math.Sin(2*math.Pi*p.pulse)
		val := p.amplitude * env * math.Sin(2*math.Pi*p.phase)
		samples[i][0] = val
		samples[i][1] = val

		p.phase += p.freq / float64(p.rate)
		p.phase -= math.Floor(p.phase)
		p.pulse += p.pulseFreq / float64(p.rate)
		p.pulse -= math.Floor(p.pulse)
	}
	return len(samples), true
}

func (p *pulseTone) Err() error { return nil }

// sting is a short decaying tone with a downward pitch bend
type sting struct {
	rate      beep.SampleRate
	freq      float64
	amplitude float64
	duration  int
	position  int
	phase     float64
}

func newSting(rate beep.SampleRate, freq, amplitude float64, d time.Duration) *sting {
	return &sting{rate: rate, freq: freq, amplitude: amplitude, duration: rate.N(d)}
}

func (s *sting) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		progress := float64(s.position) / float64(s.duration)
		env := math.Exp(-4 * progress)
		val := s.amplitude * env * math.Sin(2*math.Pi*s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += s.freq * (1 - 0.5*progress) / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sting) Err() error { return nil }

// volumeExponent maps a linear [0,1] volume onto the base-2 exponent used by effects.Volume
// Returns silent for non-positive volumes
func volumeExponent(v float64) (exp float64, silent bool) {
	if v <= 0 {
		return 0, true
	}
	return math.Log2(min(v, 1)), false
}
