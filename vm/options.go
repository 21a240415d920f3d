package vm

import (
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"
)

// DefaultBanner is written after a program halts.
const DefaultBanner = "\n----- Program Finished -----\n"

// Option configures an Interpreter.
type Option func(*config)

type config struct {
	out       io.Writer
	source    DirectionSource
	pcg       *rand.PCG // state of the default source, nil when one is injected
	seed      *uint64
	stepLimit uint64
	banner    string
	trace     bool
	runID     uuid.UUID
}

func newConfig(opts []Option) *config {
	cfg := &config{
		out:    os.Stdout,
		banner: DefaultBanner,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.source == nil {
		if cfg.pcg == nil {
			seed := uint64(time.Now().UnixNano())
			if cfg.seed != nil {
				seed = *cfg.seed
			}
			cfg.pcg = newPCG(seed)
		}
		cfg.source = rand.New(cfg.pcg)
	} else {
		cfg.pcg = nil
	}
	if cfg.runID == uuid.Nil {
		cfg.runID = uuid.New()
	}
	return cfg
}

// WithOutput sets the writer receiving . and , output and the banner.
// Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.out = w }
}

// WithDirectionSource injects the source used by the ? instruction.
// It takes precedence over WithSeed.
func WithDirectionSource(src DirectionSource) Option {
	return func(c *config) { c.source = src }
}

// withPCG resumes the default direction source from saved state. It takes
// precedence over WithSeed.
func withPCG(p *rand.PCG) Option {
	return func(c *config) { c.pcg = p }
}

// WithSeed seeds the default direction source, making ? deterministic.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = &seed }
}

// WithStepLimit stops a run with StepLimitExceeded once n instructions
// have executed. Zero means no limit.
func WithStepLimit(n uint64) Option {
	return func(c *config) { c.stepLimit = n }
}

// WithBanner replaces the completion notice written on halt.
func WithBanner(s string) Option {
	return func(c *config) { c.banner = s }
}

// WithTrace logs every executed instruction at debug level.
func WithTrace(on bool) Option {
	return func(c *config) { c.trace = on }
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id uuid.UUID) Option {
	return func(c *config) { c.runID = id }
}
