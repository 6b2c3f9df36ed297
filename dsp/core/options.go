package core

// ProcessorConfig defines common synthesis engine settings.
//
// BlockSize is the control period in frames: modulation blocks are
// advanced once per BlockSize frames while audio is rendered per sample.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns defaults matching small embedded synthesizers.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 44100,
		BlockSize:  256,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the control period in frames.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Nyquist returns half the configured sample rate.
func (cfg ProcessorConfig) Nyquist() float64 {
	return cfg.SampleRate / 2
}

// ControlPeriod returns the duration of one control block in seconds.
func (cfg ProcessorConfig) ControlPeriod() float64 {
	if cfg.SampleRate <= 0 || cfg.BlockSize <= 0 {
		return 0
	}
	return float64(cfg.BlockSize) / cfg.SampleRate
}
