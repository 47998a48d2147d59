package blocks

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/salamswapnil/eds-ued/internal/dom"
	"github.com/salamswapnil/eds-ued/internal/fields"
)

// decorateColumns tags the block with its column count and marks image-only
// cells so styles can stretch them:
//
//	<div class="columns columns-2-cols">
//	  <div><div>text</div><div class="columns-img-col"><img ...></div></div>
//	</div>
func decorateColumns(block *html.Node, env *Env) error {
	rows := fields.Rows(block)
	if len(rows) == 0 {
		return nil
	}

	cols := len(fields.Cells(rows[0]))
	dom.AddClass(block, fmt.Sprintf("columns-%d-cols", cols))

	for _, row := range rows {
		for _, cell := range fields.Cells(row) {
			if fields.FirstImage(cell) != nil && strings.TrimSpace(dom.TextContent(cell)) == "" {
				dom.AddClass(cell, "columns-img-col")
			}
		}
	}
	return nil
}
