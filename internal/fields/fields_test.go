package fields

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/salamswapnil/eds-ued/internal/dom"
)

func parseBlock(t *testing.T, fragment string) *html.Node {
	t.Helper()
	nodes, err := dom.ParseFragment(strings.NewReader(fragment))
	require.NoError(t, err)
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			return n
		}
	}
	t.Fatal("no element in fragment")
	return nil
}

func TestRowsAndCells(t *testing.T) {
	block := parseBlock(t, `<div>
		<div><div>r0c0</div><div>r0c1</div></div>
		<div><div>r1c0</div></div>
	</div>`)

	rows := Rows(block)
	require.Len(t, rows, 2)
	assert.Len(t, Cells(rows[0]), 2)
	assert.Len(t, Cells(rows[1]), 1)
}

func TestField(t *testing.T) {
	block := parseBlock(t, `<div><div><div>a</div><div>b</div></div></div>`)

	f := Field(block, 0, 1)
	require.NotNil(t, f)
	assert.Equal(t, "b", dom.TextContent(f))

	assert.Nil(t, Field(block, 1, 0))
	assert.Nil(t, Field(block, 0, 5))
	assert.Nil(t, Field(block, -1, 0))
}

func TestConfig(t *testing.T) {
	block := parseBlock(t, `<div>
		<div><div>Background Image</div><div><img src="/media_1.png"></div></div>
		<div><div>CTA</div><div><a href="/signup">Sign up</a></div></div>
		<div><div>Title</div><div>  Welcome Home  </div></div>
		<div><div>single cell row is skipped</div></div>
	</div>`)

	cfg := Config(block)
	assert.Equal(t, map[string]string{
		"background-image": "/media_1.png",
		"cta":              "/signup",
		"title":            "Welcome Home",
	}, cfg)
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Background Image", "background-image"},
		{"  CTA  ", "cta"},
		{"Card Limit (chars)", "card-limit-chars"},
		{"already-kebab", "already-kebab"},
		{"___", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in), "input %q", tt.in)
	}
}

func TestFirstHelpers(t *testing.T) {
	block := parseBlock(t, `<div>
		<div><div><h2>Heading</h2><p><a href="/x">link</a></p></div></div>
		<div><div><img src="/media_2.png"></div></div>
	</div>`)

	img := FirstImage(block)
	require.NotNil(t, img)
	assert.Equal(t, "/media_2.png", dom.Attr(img, "src"))

	link := FirstLink(block)
	require.NotNil(t, link)
	assert.Equal(t, "/x", dom.Attr(link, "href"))

	h := FirstHeading(block)
	require.NotNil(t, h)
	assert.Equal(t, "h2", h.Data)

	empty := parseBlock(t, `<div><div><div>text only</div></div></div>`)
	assert.Nil(t, FirstImage(empty))
	assert.Nil(t, FirstLink(empty))
	assert.Nil(t, FirstHeading(empty))
}
