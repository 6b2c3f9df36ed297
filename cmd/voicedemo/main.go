// Command voicedemo renders a short scripted phrase through one of the voice
// types and writes it to a WAV file, plays it, or both.
//
// Usage:
//
//	voicedemo [flags]
//
// Examples:
//
//	voicedemo -voice drone -out drone.wav
//	voicedemo -voice oscillator -duration 4 -play
//	voicedemo -voice drums -static -v -out kit.wav
//	voicedemo -interp hermite -bits 24 -dither none -out lead.wav
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cwbudde/algo-synthvoice/dsp/core"
	"github.com/cwbudde/algo-synthvoice/dsp/dither"
	"github.com/cwbudde/algo-synthvoice/dsp/interp"
	"github.com/cwbudde/algo-synthvoice/dsp/window"
	"github.com/cwbudde/algo-synthvoice/measure/level"
	"github.com/cwbudde/algo-synthvoice/measure/pitch"
	"github.com/cwbudde/algo-synthvoice/synth"
)

var logger = slog.Default()

func initLogger(debug bool) {
	lvl := slog.LevelInfo
	if debug {
		lvl = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}

func main() {
	voiceName := flag.String("voice", "oscillator", "voice to render: "+strings.Join(scriptNames(), ", "))
	duration := flag.Float64("duration", 3, "render length in seconds")
	sampleRate := flag.Int("rate", 44100, "sample rate in Hz")
	blockSize := flag.Int("block", 256, "control block size in frames")
	static := flag.Bool("static", false, "use static filters refreshed by Update instead of block filters")
	out := flag.String("out", "", "write the rendered audio to this WAV file")
	bits := flag.Int("bits", 16, "WAV bit depth (16 or 24)")
	ditherName := flag.String("dither", "triangular", "WAV dither: none, rectangular, triangular, gaussian")
	interpName := flag.String("interp", "linear", "waveform interpolation: linear, hermite")
	windowName := flag.String("window", "hann", "analysis window for pitch detection: hann, blackman, blackman-harris")
	play := flag.Bool("play", false, "play the rendered audio")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: voicedemo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Renders a scripted phrase through a synth voice.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	initLogger(*verbose)

	script, ok := scripts[*voiceName]
	if !ok {
		die("unknown voice", "voice", *voiceName, "known", strings.Join(scriptNames(), ","))
	}
	if *duration <= 0 {
		die("duration must be > 0", "duration", *duration)
	}

	mode, err := interp.ParseMode(*interpName)
	if err != nil {
		die("bad -interp", "err", err)
	}
	win, err := window.ParseType(*windowName)
	if err != nil {
		die("bad -window", "err", err)
	}
	ditherType, err := dither.ParseDitherType(*ditherName)
	if err != nil {
		die("bad -dither", "err", err)
	}
	q, err := dither.NewQuantizer(dither.WithBitDepth(*bits), dither.WithDitherType(ditherType))
	if err != nil {
		die("create quantizer", "err", err)
	}

	opts := []synth.Option{synth.WithInterpolation(mode)}
	if *static {
		opts = append(opts, synth.WithStaticFilters())
	}
	engine, err := synth.New(core.ApplyProcessorOptions(
		core.WithSampleRate(float64(*sampleRate)),
		core.WithBlockSize(*blockSize),
	), opts...)
	if err != nil {
		die("create synthesizer", "err", err)
	}

	left, right, err := render(engine, script, *duration)
	if err != nil {
		die("render", "voice", *voiceName, "err", err)
	}
	report(left, right, pitch.Config{SampleRate: float64(*sampleRate), WindowType: win})

	if *out != "" {
		if err := writeWAV(*out, left, right, *sampleRate, q); err != nil {
			die("write wav", "path", *out, "err", err)
		}
		logger.Info("wrote wav", "path", *out, "frames", len(left))
	}

	if *play {
		if err := playback(left, right, *sampleRate); err != nil {
			die("play", "err", err)
		}
	}
}

func report(left, right []float64, cfg pitch.Config) {
	mono := make([]float64, len(left))
	for i := range mono {
		mono[i] = (left[i] + right[i]) / 2
	}

	stats := level.Calculate(mono)
	logger.Info("level",
		"rms_db", fmt.Sprintf("%.1f", stats.RMS_dB),
		"peak_db", fmt.Sprintf("%.1f", stats.Peak_dB),
		"clipped", stats.Clipped,
	)

	res, err := pitch.Estimate(mono, cfg)
	if err != nil {
		logger.Debug("no pitch detected", "err", err)
		return
	}
	logger.Info("pitch",
		"hz", fmt.Sprintf("%.2f", res.Frequency),
		"note", fmt.Sprintf("%.2f", res.Note),
	)
}

func die(msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}
