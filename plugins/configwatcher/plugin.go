// Package configwatcher reloads runtime settings from the aisparser config
// file while a receiver runs. It watches the file's directory and, after a
// short debounce, applies vessel_max_age and log_level from the new file.
package configwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/aisparser/internal/cliconfig"
	"github.com/bft-labs/aisparser/pkg/log"
	"github.com/bft-labs/aisparser/pkg/receiver"
	"github.com/bft-labs/aisparser/pkg/vessel"
)

// Plugin watches a TOML config file and applies reloadable settings.
type Plugin struct {
	mu sync.Mutex

	path          string
	debounceDelay time.Duration
	setLevel      func(string)

	cache    *vessel.Cache
	logger   log.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
	reloads  int
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// Path is the TOML file to watch.
	Path string

	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// SetLevel applies a log level name. Default: log.SetLevel
	SetLevel func(string)
}

// DefaultConfig returns a Config watching the default config path.
func DefaultConfig() Config {
	return Config{
		Path:          cliconfig.DefaultConfigPath(),
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	if cfg.SetLevel == nil {
		cfg.SetLevel = log.SetLevel
	}
	return &Plugin{
		path:          cfg.Path,
		debounceDelay: cfg.DebounceDelay,
		setLevel:      cfg.SetLevel,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize starts watching the config file.
func (p *Plugin) Initialize(ctx context.Context, cfg receiver.PluginConfig) error {
	p.mu.Lock()
	p.cache = cfg.Cache
	p.logger = cfg.Logger
	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}
	p.mu.Unlock()

	if p.path == "" {
		p.logger.Warn("config watcher disabled: no config file")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	p.logger.Info("config watcher plugin initialized", log.String("path", p.path))
	return nil
}

// Shutdown stops the watcher and any pending reload.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

// Reloads returns how many times the file was applied.
func (p *Plugin) Reloads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reloads
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	name := filepath.Base(p.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.reload()
	})
}

// reload applies the reloadable subset of the file. A file that fails to
// parse leaves the running settings untouched.
func (p *Plugin) reload() {
	fc, err := cliconfig.LoadFileConfig(p.path)
	if err != nil {
		p.logger.Warn("config reload failed", log.String("path", p.path), log.Err(err))
		return
	}

	if fc.VesselMaxAge != "" && p.cache != nil {
		age, err := time.ParseDuration(fc.VesselMaxAge)
		if err != nil || age < 0 {
			p.logger.Warn("config reload: invalid vessel_max_age", log.String("value", fc.VesselMaxAge))
		} else if age != p.cache.MaxAge() {
			p.cache.SetMaxAge(age)
			p.logger.Info("vessel max age changed", log.Duration("max_age", age))
		}
	}
	if fc.LogLevel != "" {
		p.setLevel(fc.LogLevel)
		p.logger.Info("log level changed", log.String("level", fc.LogLevel))
	}

	p.mu.Lock()
	p.reloads++
	p.mu.Unlock()
}

var _ receiver.Plugin = (*Plugin)(nil)
