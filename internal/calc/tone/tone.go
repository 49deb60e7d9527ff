// Package tone renders a struck-bowl preview of a frequency as WAV audio.
package tone

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/mjibson/go-dsp/fft"
)

const (
	DefaultSampleRate = 44100
	MaxDuration       = 30 * time.Second
	Amplitude         = 0.8
	attack            = 10 * time.Millisecond
	analysisWindow    = time.Second
)

var ErrInvalidTone = errors.New("invalid tone")

type Options struct {
	SampleRate int
	Duration   time.Duration
}

func (o Options) validate(hz float64) error {
	if !(hz > 0) || math.IsInf(hz, 0) {
		return fmt.Errorf("%w: frequency %v", ErrInvalidTone, hz)
	}
	if o.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidTone, o.SampleRate)
	}
	if hz >= float64(o.SampleRate)/2 {
		return fmt.Errorf("%w: %v Hz is above Nyquist for %d Hz", ErrInvalidTone, hz, o.SampleRate)
	}
	if o.Duration <= 0 || o.Duration > MaxDuration {
		return fmt.Errorf("%w: duration %v", ErrInvalidTone, o.Duration)
	}
	return nil
}

// Strike is a sine at hz with a short linear attack and an exponential
// decay that loses about 95% of its amplitude over d.
func Strike(hz float64, sr beep.SampleRate, d time.Duration) beep.Streamer {
	n := sr.N(d)
	rise := float64(sr.N(attack))
	tau := d.Seconds() / 3
	pos := 0
	return beep.Take(n, beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			t := float64(pos) / float64(sr)
			env := math.Exp(-t / tau)
			if p := float64(pos); p < rise {
				env *= p / rise
			}
			v := Amplitude * env * math.Sin(2*math.Pi*hz*t)
			samples[i] = [2]float64{v, v}
			pos++
		}
		return len(samples), true
	}))
}

// Write encodes a mono 16-bit WAV of the strike at hz.
func Write(w io.WriteSeeker, hz float64, opts Options) error {
	if err := opts.validate(hz); err != nil {
		return err
	}
	sr := beep.SampleRate(opts.SampleRate)
	format := beep.Format{SampleRate: sr, NumChannels: 1, Precision: 2}
	if err := wav.Encode(w, Strike(hz, sr, opts.Duration), format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}

// Peak renders the head of the strike and returns the frequency of the
// strongest FFT bin. Resolution is one bin, SampleRate/N.
func Peak(hz float64, opts Options) (float64, error) {
	if err := opts.validate(hz); err != nil {
		return 0, err
	}
	sr := beep.SampleRate(opts.SampleRate)
	buf := make([][2]float64, sr.N(min(opts.Duration, analysisWindow)))
	n, _ := Strike(hz, sr, opts.Duration).Stream(buf)
	if n < 2 {
		return 0, fmt.Errorf("%w: window too short", ErrInvalidTone)
	}
	mono := make([]float64, n)
	for i := range mono {
		mono[i] = buf[i][0]
	}
	bins := fft.FFTReal(mono)
	best, bestMag := 0, 0.0
	for i := 1; i <= n/2; i++ {
		if m := cmplx.Abs(bins[i]); m > bestMag {
			best, bestMag = i, m
		}
	}
	return float64(best) * float64(opts.SampleRate) / float64(n), nil
}
