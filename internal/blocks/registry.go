// Package blocks contains the block decorators: functions that rearrange an
// authored row/cell grid into the markup a block's styles expect. A block
// arrives as <div class="name">...rows...</div>; the decorator for "name"
// rewrites its children in place.
package blocks

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/salamswapnil/eds-ued/internal/assets"
	"github.com/salamswapnil/eds-ued/internal/dom"
)

// Env carries what decorators need beyond the block node itself. One Env
// spans a fragment pass, so cross-block state like the eager-image budget
// accumulates in document order.
type Env struct {
	Resolver         *assets.Resolver
	PictureWidths    []int
	EagerImageCount  int
	CardSummaryLimit int
	Logger           *zap.Logger

	imagesEmitted int
}

// EagerImage consumes one image slot and reports whether it still falls
// inside the eager budget. The first EagerImageCount images emitted during a
// fragment pass load eagerly, the rest lazily.
func (e *Env) EagerImage() bool {
	if e == nil {
		return false
	}
	e.imagesEmitted++
	return e.imagesEmitted <= e.EagerImageCount
}

// Resolve applies the asset resolver when one is configured.
func (e *Env) Resolve(ref string) string {
	if e == nil || e.Resolver == nil {
		return ref
	}
	return e.Resolver.Resolve(ref)
}

// Log returns the configured logger or a no-op one.
func (e *Env) Log() *zap.Logger {
	if e == nil || e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Decorator rewrites a block's children in place.
type Decorator func(block *html.Node, env *Env) error

// Registry maps block names to decorators.
type Registry struct {
	mu         sync.RWMutex
	decorators map[string]Decorator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{decorators: make(map[string]Decorator)}
}

// DefaultRegistry returns a registry with all built-in decorators.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("hero", decorateHero)
	r.Register("cards", decorateCards)
	r.Register("columns", decorateColumns)
	r.Register("quote", decorateQuote)
	return r
}

// Register adds or replaces the decorator for a block name.
func (r *Registry) Register(name string, d Decorator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decorators[name] = d
}

// Get returns the decorator for a block name.
func (r *Registry) Get(name string) (Decorator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decorators[name]
	return d, ok
}

// Names returns the registered block names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.decorators))
	for name := range r.decorators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BlockName returns the block name of an element: its first class token.
func BlockName(block *html.Node) string {
	classes := strings.Fields(dom.Attr(block, "class"))
	if len(classes) == 0 {
		return ""
	}
	return classes[0]
}

// Decorate dispatches the block to its registered decorator and records the
// outcome in data-block-status. Unregistered blocks are tagged "skipped" and
// left untouched.
func (r *Registry) Decorate(block *html.Node, env *Env) error {
	name := BlockName(block)
	d, ok := r.Get(name)
	if !ok {
		dom.SetAttr(block, "data-block-status", "skipped")
		return nil
	}
	if err := d(block, env); err != nil {
		dom.SetAttr(block, "data-block-status", "error")
		return fmt.Errorf("decorating %s block: %w", name, err)
	}
	dom.SetAttr(block, "data-block-status", "decorated")
	return nil
}
