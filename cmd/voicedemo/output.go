package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/youpy/go-wav"

	"github.com/cwbudde/algo-synthvoice/dsp/dither"
)

// writeWAV stores the stereo buffers as PCM at the quantizer's bit depth.
func writeWAV(path string, left, right []float64, sampleRate int, q *dither.Quantizer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := wav.NewWriter(f, uint32(len(left)), 2, uint32(sampleRate), uint16(q.BitDepth()))
	if err := w.WriteSamples(pcmSamples(q, left, right)); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	return nil
}

func pcmSamples(q *dither.Quantizer, left, right []float64) []wav.Sample {
	samples := make([]wav.Sample, len(left))
	for i := range samples {
		samples[i].Values[0] = q.Quantize(left[i])
		samples[i].Values[1] = q.Quantize(right[i])
	}
	return samples
}

// interleaveFloat32 encodes the stereo buffers as little-endian float32
// frames.
func interleaveFloat32(left, right []float64) []byte {
	buf := make([]byte, len(left)*8)
	for i := range left {
		binary.LittleEndian.PutUint32(buf[i*8:], math.Float32bits(float32(left[i])))
		binary.LittleEndian.PutUint32(buf[i*8+4:], math.Float32bits(float32(right[i])))
	}
	return buf
}

// playback plays the buffers on the default output device and blocks until
// they finish.
func playback(left, right []float64, sampleRate int) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(bytes.NewReader(interleaveFloat32(left, right)))
	defer player.Close()

	logger.Debug("playing", "frames", len(left), "rate", sampleRate)
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	return nil
}
