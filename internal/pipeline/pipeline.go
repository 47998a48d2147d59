// Package pipeline wires the dom helpers, block decorators and asset
// resolver into the full fragment decoration pass, plus file, directory and
// watch front-ends for it.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/salamswapnil/eds-ued/internal/assets"
	"github.com/salamswapnil/eds-ued/internal/blocks"
	"github.com/salamswapnil/eds-ued/internal/config"
	"github.com/salamswapnil/eds-ued/internal/dom"
)

// Pipeline decorates server-rendered HTML fragments.
type Pipeline struct {
	cfg      *config.Config
	registry *blocks.Registry
	resolver *assets.Resolver
	enabled  map[string]bool // nil = all registered blocks
	log      *zap.Logger
}

// New builds a Pipeline from config. A nil logger is replaced by a no-op one.
func New(cfg *config.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	var enabled map[string]bool
	if len(cfg.EnabledBlocks) > 0 {
		enabled = make(map[string]bool, len(cfg.EnabledBlocks))
		for _, name := range cfg.EnabledBlocks {
			enabled[name] = true
		}
	}
	return &Pipeline{
		cfg:      cfg,
		registry: blocks.DefaultRegistry(),
		resolver: assets.NewResolver(cfg.AssetBase, cfg.ExternalHosts),
		enabled:  enabled,
		log:      logger,
	}
}

// Registry exposes the block registry so callers can add custom decorators.
func (p *Pipeline) Registry() *blocks.Registry {
	return p.registry
}

// DecorateFragment reads an HTML fragment, decorates it and writes the
// result. Individual block decoration failures are logged and the block is
// left in its authored form; only parse and render failures are returned.
func (p *Pipeline) DecorateFragment(r io.Reader, w io.Writer) error {
	log := p.log.With(zap.String("run_id", uuid.NewString()))

	nodes, err := dom.ParseFragment(r)
	if err != nil {
		return fmt.Errorf("failed to parse fragment: %w", err)
	}

	env := &blocks.Env{
		Resolver:         p.resolver,
		PictureWidths:    p.cfg.PictureWidths,
		EagerImageCount:  p.cfg.EagerImageCount,
		CardSummaryLimit: p.cfg.CardSummaryLimit,
		Logger:           log,
	}

	secs, top := sectionize(nodes)

	decorated := 0
	for _, section := range secs {
		dom.AddClass(section, "section")
		for _, child := range dom.ElementChildren(section) {
			name := blocks.BlockName(child)
			if name == "" {
				continue
			}
			if p.enabled != nil && !p.enabled[name] {
				dom.SetAttr(child, "data-block-status", "skipped")
				continue
			}
			if err := p.registry.Decorate(child, env); err != nil {
				log.Warn("block decoration failed",
					zap.String("block", name), zap.Error(err))
				continue
			}
			if dom.Attr(child, "data-block-status") == "decorated" {
				decorated++
			}
		}
	}

	for _, n := range top {
		assets.RewriteMedia(n, p.resolver)
	}

	if err := dom.RenderFragment(w, top); err != nil {
		return fmt.Errorf("failed to render fragment: %w", err)
	}

	log.Debug("fragment decorated", zap.Int("blocks", decorated))
	return nil
}

// sectionize splits a fragment's top-level nodes into section divs. Content
// that is not already a div is moved into a synthetic section inserted where
// the first orphan appeared, so stray paragraphs still get section
// treatment. It returns the sections and the rewritten top-level node list.
func sectionize(nodes []*html.Node) (sections, top []*html.Node) {
	var orphan *html.Node
	for _, n := range nodes {
		switch {
		case n.Type == html.ElementNode && n.Data == "div":
			sections = append(sections, n)
			top = append(top, n)
		case n.Type == html.ElementNode || (n.Type == html.TextNode && !dom.IsWhitespace(n)):
			if orphan == nil {
				orphan = dom.Elem("div", nil)
				sections = append(sections, orphan)
				top = append(top, orphan)
			}
			dom.Append(orphan, n)
		default:
			top = append(top, n)
		}
	}
	return sections, top
}

// DecorateFile decorates a single file. in and out may be the same path.
func (p *Pipeline) DecorateFile(ctx context.Context, in, out string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", in, err)
	}

	var buf bytes.Buffer
	if err := p.DecorateFragment(bytes.NewReader(data), &buf); err != nil {
		return fmt.Errorf("failed to decorate %s: %w", in, err)
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	p.log.Info("file decorated", zap.String("in", in), zap.String("out", out))
	return nil
}
