package blocks

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/salamswapnil/eds-ued/internal/assets"
	"github.com/salamswapnil/eds-ued/internal/dom"
	"github.com/salamswapnil/eds-ued/internal/fields"
)

// decorateCards turns each authored row into a list item:
//
//	<ul>
//	  <li>
//	    <div class="cards-card-image"><picture>...</picture></div>
//	    <div class="cards-card-body">...</div>
//	  </li>
//	</ul>
//
// Image cells become responsive pictures, lazy once the fragment's
// eager-image budget is spent. Body copy is trimmed
// to the configured card summary limit with the text limiter, so a long
// authored teaser never overflows the card while its markup stays balanced.
func decorateCards(block *html.Node, env *Env) error {
	ul := dom.Elem("ul", nil)

	for _, row := range fields.Rows(block) {
		li := dom.Elem("li", nil)
		for _, cell := range fields.Cells(row) {
			if img := imageOnly(cell); img != nil {
				src := env.Resolve(dom.Attr(img, "src"))
				alt := dom.Attr(img, "alt")
				div := dom.Elem("div", map[string]string{"class": "cards-card-image"},
					assets.OptimizedPicture(src, alt, env.EagerImage(), env.PictureWidths))
				dom.Append(li, div)
				continue
			}
			body := dom.Elem("div", map[string]string{"class": "cards-card-body"})
			for _, child := range dom.Children(cell) {
				dom.Append(body, child)
			}
			if env != nil && env.CardSummaryLimit > 0 {
				dom.TrimTextToCharLimit(body, env.CardSummaryLimit)
			}
			dom.Append(li, body)
		}
		dom.Append(ul, li)
	}

	dom.ReplaceChildren(block, ul)
	return nil
}

// imageOnly returns the cell's image when the cell holds nothing but that
// image (and whitespace), else nil.
func imageOnly(cell *html.Node) *html.Node {
	img := fields.FirstImage(cell)
	if img == nil {
		return nil
	}
	if strings.TrimSpace(dom.TextContent(cell)) != "" {
		return nil
	}
	return img
}
