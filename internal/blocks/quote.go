package blocks

import (
	"golang.org/x/net/html"

	"github.com/salamswapnil/eds-ued/internal/dom"
	"github.com/salamswapnil/eds-ued/internal/fields"
)

// decorateQuote wraps the first cell in a blockquote and the optional second
// row in an attribution line:
//
//	<div class="quote">
//	  <blockquote>...</blockquote>
//	  <div class="quote-attribution">...</div>
//	</div>
func decorateQuote(block *html.Node, env *Env) error {
	rows := fields.Rows(block)
	if len(rows) == 0 {
		return nil
	}

	bq := dom.Elem("blockquote", nil)
	if cell := fields.Field(block, 0, 0); cell != nil {
		for _, child := range dom.Children(cell) {
			dom.Append(bq, child)
		}
	}

	replacement := []*html.Node{bq}
	if len(rows) > 1 {
		attribution := dom.Elem("div", map[string]string{"class": "quote-attribution"})
		if cell := fields.Field(block, 1, 0); cell != nil {
			for _, child := range dom.Children(cell) {
				dom.Append(attribution, child)
			}
		}
		replacement = append(replacement, attribution)
	}

	dom.ReplaceChildren(block, replacement...)
	return nil
}
