package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// TrimTextToCharLimit mutates the tree rooted at root so that the total
// effective text retained across all text-node descendants does not exceed
// limit runes, preserving document order and nesting for everything kept.
//
// Accounting rules, all observable behavior:
//
//   - Whitespace-only text nodes count as zero length and are never removed
//     or altered.
//   - A text node that overflows the remaining budget keeps exactly the first
//     limit-count runes, but the running counter still advances by the node's
//     full original effective length. The overshoot is what stops any later
//     sibling from being visited.
//   - Once the counter reaches the limit, every subsequently visited node
//     whose subtree contains effective text is detached from its parent
//     entirely, not blanked. Subtrees with no effective text pass through,
//     which is why a whitespace-only tree survives limit 0 unchanged. The
//     root itself cannot be detached when it has no parent; its contributing
//     content is pruned instead.
//
// A nil root or negative limit is a no-op.
func TrimTextToCharLimit(root *html.Node, limit int) {
	if root == nil || limit < 0 {
		return
	}
	count := 0
	var trim func(*html.Node)
	trim = func(n *html.Node) {
		if count >= limit {
			if EffectiveTextLen(n) == 0 {
				return
			}
			if n.Parent != nil {
				Detach(n)
				return
			}
			// A parentless root cannot remove itself; prune its content.
			if n.Type == html.TextNode {
				n.Data = ""
				return
			}
			for _, child := range Children(n) {
				trim(child)
			}
			return
		}
		if n.Type == html.TextNode {
			length := effectiveLen(n.Data)
			if length > 0 && count+length > limit {
				n.Data = string([]rune(n.Data)[:limit-count])
			}
			count += length
			return
		}
		for _, child := range Children(n) {
			trim(child)
		}
	}
	trim(root)
}

// EffectiveTextLen returns the total effective text length of n's subtree:
// each text node contributes its full rune length if it has any
// non-whitespace character, else zero.
func EffectiveTextLen(n *html.Node) int {
	if n == nil {
		return 0
	}
	if n.Type == html.TextNode {
		return effectiveLen(n.Data)
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += EffectiveTextLen(c)
	}
	return total
}

func effectiveLen(s string) int {
	if strings.TrimSpace(s) == "" {
		return 0
	}
	return len([]rune(s))
}
