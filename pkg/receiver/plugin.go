package receiver

import (
	"context"

	"github.com/bft-labs/aisparser/pkg/log"
	"github.com/bft-labs/aisparser/pkg/vessel"
)

// Plugin extends a Receiver with background work tied to its lifetime.
// Plugins are initialized in registration order on Start and shut down in
// reverse order on Stop.
type Plugin interface {
	Name() string
	Initialize(ctx context.Context, cfg PluginConfig) error
	Shutdown(ctx context.Context) error
}

// PluginConfig is what a plugin gets to work with.
type PluginConfig struct {
	StateDir  string
	SessionID string
	Cache     *vessel.Cache
	Logger    log.Logger
}
