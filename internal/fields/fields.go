// Package fields extracts authored content from block markup. Blocks arrive
// from the renderer as nested div grids: one div per row, one div per cell.
package fields

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/salamswapnil/eds-ued/internal/dom"
)

// Rows returns the direct row divs of a block.
func Rows(block *html.Node) []*html.Node {
	return dom.ElementChildren(block)
}

// Cells returns the direct cell divs of a row.
func Cells(row *html.Node) []*html.Node {
	return dom.ElementChildren(row)
}

// Field returns the cell at the given row and cell index, or nil when the
// grid is smaller than asked for.
func Field(block *html.Node, row, cell int) *html.Node {
	rows := Rows(block)
	if row < 0 || row >= len(rows) {
		return nil
	}
	cells := Cells(rows[row])
	if cell < 0 || cell >= len(cells) {
		return nil
	}
	return cells[cell]
}

// Config reads two-cell key/value rows into a map. Keys are normalized to
// lower-kebab; values are the cell's link href, image src, or trimmed text,
// in that preference order. Rows that are not key/value pairs are skipped.
func Config(block *html.Node) map[string]string {
	cfg := make(map[string]string)
	for _, row := range Rows(block) {
		cells := Cells(row)
		if len(cells) != 2 {
			continue
		}
		key := NormalizeKey(dom.TextContent(cells[0]))
		if key == "" {
			continue
		}
		cfg[key] = cellValue(cells[1])
	}
	return cfg
}

// NormalizeKey lowercases a label and collapses runs of non-alphanumerics
// into single dashes: "Background Image" -> "background-image".
func NormalizeKey(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			dash = false
			sb.WriteRune(r)
		default:
			dash = true
		}
	}
	return sb.String()
}

func cellValue(cell *html.Node) string {
	if a := dom.FindFirst(cell, dom.ByTag("a")); a != nil {
		if href := dom.Attr(a, "href"); href != "" {
			return href
		}
	}
	if img := dom.FindFirst(cell, dom.ByTag("img")); img != nil {
		if src := dom.Attr(img, "src"); src != "" {
			return src
		}
	}
	return strings.TrimSpace(dom.TextContent(cell))
}

// FirstImage returns the first img descendant of the block, or nil.
func FirstImage(block *html.Node) *html.Node {
	return dom.FindFirst(block, dom.ByTag("img"))
}

// FirstLink returns the first anchor descendant of the block, or nil.
func FirstLink(block *html.Node) *html.Node {
	return dom.FindFirst(block, dom.ByTag("a"))
}

// FirstHeading returns the first h1-h6 descendant of the block, or nil.
func FirstHeading(block *html.Node) *html.Node {
	return dom.FindFirst(block, func(n *html.Node) bool {
		if n.Type != html.ElementNode || len(n.Data) != 2 {
			return false
		}
		return n.Data[0] == 'h' && n.Data[1] >= '1' && n.Data[1] <= '6'
	})
}
