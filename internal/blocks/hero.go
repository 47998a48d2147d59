package blocks

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/salamswapnil/eds-ued/internal/assets"
	"github.com/salamswapnil/eds-ued/internal/dom"
	"github.com/salamswapnil/eds-ued/internal/fields"
)

// decorateHero splits the authored grid into a background layer and a
// content layer:
//
//	<div class="hero">
//	  <div class="hero-background"><picture>...</picture></div>
//	  <div class="hero-content">eyebrow, heading, copy, CTAs</div>
//	</div>
//
// The first authored image becomes a responsive picture, eager while the
// fragment's eager-image budget lasts. A paragraph appearing before the
// first heading becomes the eyebrow. Links get button classes: <strong><a>
// is primary, <em><a> is secondary.
func decorateHero(block *html.Node, env *Env) error {
	content := dom.Elem("div", map[string]string{"class": "hero-content"})

	var background *html.Node
	if img := fields.FirstImage(block); img != nil {
		src := env.Resolve(dom.Attr(img, "src"))
		alt := dom.Attr(img, "alt")
		background = dom.Elem("div", map[string]string{"class": "hero-background"},
			assets.OptimizedPicture(src, alt, env.EagerImage(), env.PictureWidths))
		detachImage(img)
	}

	// Flatten remaining cell contents into the content layer, preserving
	// document order.
	for _, row := range fields.Rows(block) {
		for _, cell := range fields.Cells(row) {
			for _, child := range dom.Children(cell) {
				if dom.IsWhitespace(child) {
					continue
				}
				dom.Append(content, child)
			}
		}
	}

	markEyebrow(content)
	decorateCTAs(content)

	if background != nil {
		dom.ReplaceChildren(block, background, content)
	} else {
		dom.ReplaceChildren(block, content)
	}
	return nil
}

// detachImage removes the image along with its enclosing picture and, when
// the paragraph held nothing else, the empty wrapper paragraph too.
func detachImage(img *html.Node) {
	target := img
	if p := img.Parent; p != nil && p.Data == "picture" {
		target = p
	}
	if p := target.Parent; p != nil && p.Data == "p" && strings.TrimSpace(dom.TextContent(p)) == "" {
		target = p
	}
	dom.Detach(target)
}

// markEyebrow tags a leading paragraph as the eyebrow when a heading follows.
func markEyebrow(content *html.Node) {
	children := dom.ElementChildren(content)
	for i, c := range children {
		if isHeading(c) {
			if i > 0 && children[i-1].Data == "p" {
				dom.AddClass(children[i-1], "hero-eyebrow")
			}
			return
		}
	}
}

// decorateCTAs applies button classes to hero links.
func decorateCTAs(content *html.Node) {
	for _, a := range dom.FindAll(content, dom.ByTag("a")) {
		dom.AddClass(a, "button")
		switch parentTag(a) {
		case "strong":
			dom.AddClass(a, "primary")
		case "em":
			dom.AddClass(a, "secondary")
		}
	}
}

func parentTag(n *html.Node) string {
	if n.Parent == nil || n.Parent.Type != html.ElementNode {
		return ""
	}
	return n.Parent.Data
}

func isHeading(n *html.Node) bool {
	if n.Type != html.ElementNode || len(n.Data) != 2 {
		return false
	}
	return n.Data[0] == 'h' && n.Data[1] >= '1' && n.Data[1] <= '6'
}
