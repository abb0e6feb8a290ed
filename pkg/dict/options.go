package dict

import (
	"github.com/zeusync/pydict/pkg/iterable"
	"github.com/zeusync/pydict/pkg/log"
)

// Option configures a Dict.
type Option func(*Config)

// Config holds the settings a Dict carries into its merges and copies.
type Config struct {
	Logger       log.Log // Receives debug diagnostics; never nil after construction
	ReuseResults bool    // Extract pairs with a reused iterator result
}

// DefaultConfig returns the settings used when no option is given.
func DefaultConfig() Config {
	return Config{
		Logger:       log.Nop(),
		ReuseResults: true,
	}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l log.Log) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithReusedResults toggles result reuse while extracting pairs.
func WithReusedResults(enabled bool) Option {
	return func(c *Config) { c.ReuseResults = enabled }
}

func newConfig(opts []Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Config) iteratorOptions() []iterable.IteratorOption {
	if c.ReuseResults {
		return []iterable.IteratorOption{iterable.WithReusedResult()}
	}
	return nil
}

func (c Config) mergeOptions() []iterable.MergeOption {
	return []iterable.MergeOption{
		iterable.WithMergeLogger(c.Logger),
		iterable.WithReusedResults(c.ReuseResults),
	}
}
