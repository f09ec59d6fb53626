package configwatcher

import "github.com/bft-labs/aisparser/pkg/receiver"

// WithConfigWatcher returns a receiver Option that reloads vessel_max_age
// and log_level whenever the config file changes.
//
// Usage:
//
//	r, err := receiver.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        Path:          "/etc/aisparser/config.toml",
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) receiver.Option {
	return receiver.WithPlugin(New(cfg))
}

// WithDefaultConfigWatcher watches ~/.aisparser/config.toml.
func WithDefaultConfigWatcher() receiver.Option {
	return WithConfigWatcher(DefaultConfig())
}
