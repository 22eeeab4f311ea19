// Package audio plays the CHIP-8 beeper through the system speaker.
package audio

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Beeper is a tone that is switched on and off with the sound timer.
type Beeper struct {
	ctrl   *beep.Ctrl
	sample beep.StreamSeekCloser
}

// New opens the speaker and queues a paused tone. With an empty sample
// path the tone is a square wave of the given frequency, otherwise the
// mp3 file is looped.
func New(frequency, volume float64, sample string) (*Beeper, error) {
	b := &Beeper{}

	var tone beep.Streamer
	if sample == "" {
		tone = squareWave(sampleRate, frequency, volume)
	} else {
		s, err := b.openSample(sample, volume)
		if err != nil {
			return nil, err
		}
		tone = s
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		b.closeSample()
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	b.ctrl = &beep.Ctrl{Streamer: tone, Paused: true}
	speaker.Play(b.ctrl)
	return b, nil
}

func (b *Beeper) openSample(path string, volume float64) (beep.Streamer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sample: %w", err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decoding sample: %w", err)
	}
	b.sample = streamer

	var s beep.Streamer = beep.Loop(-1, streamer)
	if format.SampleRate != sampleRate {
		s = beep.Resample(4, format.SampleRate, sampleRate, s)
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(volume),
		Silent:   volume == 0,
	}, nil
}

// Set starts or stops the tone.
func (b *Beeper) Set(active bool) {
	speaker.Lock()
	b.ctrl.Paused = !active
	speaker.Unlock()
}

// Close silences the tone and releases the sample file.
func (b *Beeper) Close() error {
	speaker.Lock()
	b.ctrl.Paused = true
	b.ctrl.Streamer = nil
	speaker.Unlock()
	return b.closeSample()
}

func (b *Beeper) closeSample() error {
	if b.sample == nil {
		return nil
	}
	err := b.sample.Close()
	b.sample = nil
	return err
}

// squareWave returns an endless square wave alternating between volume
// and -volume.
func squareWave(sr beep.SampleRate, frequency, volume float64) beep.Streamer {
	period := float64(sr) / frequency
	var pos float64

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := volume
			if pos >= period/2 {
				v = -volume
			}
			samples[i][0], samples[i][1] = v, v

			pos++
			if pos >= period {
				pos -= period
			}
		}
		return len(samples), true
	})
}
