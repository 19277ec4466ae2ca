package sources

import (
	"github.com/jonathan/job-assistant/internal/fetch"
	"github.com/jonathan/job-assistant/internal/types"
	"go.uber.org/zap"
)

// Options configures how registry adapters fetch pages.
type Options struct {
	HTTP       *fetch.Options
	UseBrowser bool
	Browser    fetch.Renderer
	Logger     *zap.Logger
}

// Registry is the ordered set of adapters queried by a search.
type Registry struct {
	adapters []Adapter
}

// NewRegistry builds one adapter per enabled board, preserving board order.
// Boards marked render use the browser only when UseBrowser is set.
func NewRegistry(boards []Board, opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	httpRenderer := fetch.HTTPRenderer{Client: fetch.NewClient(opts.HTTP)}
	browser := opts.Browser
	if browser == nil && opts.UseBrowser {
		timeout := fetch.DefaultTimeout
		if opts.HTTP != nil && opts.HTTP.Timeout > 0 {
			timeout = opts.HTTP.Timeout
		}
		browser = fetch.NewBrowserRenderer(timeout, logger)
	}

	r := &Registry{}
	for _, b := range boards {
		if !b.IsEnabled() {
			logger.Debug("board disabled", zap.String("source", b.Name))
			continue
		}
		var renderer fetch.Renderer = httpRenderer
		if b.Render && opts.UseBrowser {
			renderer = browser
		}
		r.adapters = append(r.adapters, NewBoardAdapter(b, renderer, logger))
	}
	return r
}

// Register appends an adapter after the existing ones.
func (r *Registry) Register(a Adapter) {
	r.adapters = append(r.adapters, a)
}

// Adapters returns the adapters in registration order.
func (r *Registry) Adapters() []Adapter {
	out := make([]Adapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}

// Names returns the source tags in registration order.
func (r *Registry) Names() []types.Source {
	names := make([]types.Source, len(r.adapters))
	for i, a := range r.adapters {
		names[i] = a.Name()
	}
	return names
}
