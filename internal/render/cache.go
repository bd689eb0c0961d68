package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxIdlePerOptions caps how many idle renderers are kept for one option set.
const maxIdlePerOptions = 4

// rendererPool hands out glamour renderers keyed by their Options.
// A TermRenderer must not be used by two goroutines at once, so each
// renderer is owned by its caller between get and put.
type rendererPool struct {
	mu   sync.Mutex
	idle map[Options][]*glamour.TermRenderer
}

var globalPool = &rendererPool{
	idle: make(map[Options][]*glamour.TermRenderer),
}

func (p *rendererPool) get(opts Options) (*glamour.TermRenderer, error) {
	p.mu.Lock()
	if list := p.idle[opts]; len(list) > 0 {
		r := list[len(list)-1]
		p.idle[opts] = list[:len(list)-1]
		p.mu.Unlock()
		return r, nil
	}
	p.mu.Unlock()

	return createRenderer(opts)
}

func (p *rendererPool) put(opts Options, renderer *glamour.TermRenderer) {
	if renderer == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	list := p.idle[opts]
	if len(list) >= maxIdlePerOptions {
		return
	}
	p.idle[opts] = append(list, renderer)
}

// idleCount reports the idle renderers kept for opts
func (p *rendererPool) idleCount(opts Options) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle[opts])
}

func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithStylePath(opts.Style)
	if cfg, ok := BuiltinStyle(opts.Style); ok {
		styleOpt = glamour.WithStyles(cfg)
	}

	rendererOpts := []glamour.TermRendererOption{
		styleOpt,
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}
