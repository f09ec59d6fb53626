package cachesweep

import "github.com/bft-labs/aisparser/pkg/receiver"

// WithCacheSweep returns a receiver Option that sweeps expired stations
// from the vessel cache.
//
// Usage:
//
//	r, err := receiver.New(cfg,
//	    cachesweep.WithCacheSweep(cachesweep.Config{
//	        Interval: 30 * time.Second,
//	    }),
//	)
func WithCacheSweep(cfg Config) receiver.Option {
	return receiver.WithPlugin(New(cfg))
}

// WithDefaultCacheSweep enables sweeping once a minute.
func WithDefaultCacheSweep() receiver.Option {
	return WithCacheSweep(DefaultConfig())
}
