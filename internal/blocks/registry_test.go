package blocks

import (
	"errors"
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

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, html.Render(&sb, n))
	return sb.String()
}

func TestBlockName(t *testing.T) {
	assert.Equal(t, "hero", BlockName(parseBlock(t, `<div class="hero block">x</div>`)))
	assert.Equal(t, "", BlockName(parseBlock(t, `<div>x</div>`)))
}

func TestDefaultRegistryNames(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"cards", "columns", "hero", "quote"}, r.Names())
}

func TestRegistryDecorateDispatch(t *testing.T) {
	r := NewRegistry()
	called := false
	r.Register("custom", func(block *html.Node, env *Env) error {
		called = true
		return nil
	})

	block := parseBlock(t, `<div class="custom"></div>`)
	require.NoError(t, r.Decorate(block, nil))
	assert.True(t, called)
	assert.Equal(t, "decorated", dom.Attr(block, "data-block-status"))
}

func TestRegistryDecorateUnknownSkips(t *testing.T) {
	r := NewRegistry()
	block := parseBlock(t, `<div class="mystery"><div><div>kept</div></div></div>`)
	require.NoError(t, r.Decorate(block, nil))
	assert.Equal(t, "skipped", dom.Attr(block, "data-block-status"))
	assert.Contains(t, render(t, block), "kept")
}

func TestRegistryDecorateError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("bad", func(block *html.Node, env *Env) error { return boom })

	block := parseBlock(t, `<div class="bad"></div>`)
	err := r.Decorate(block, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "error", dom.Attr(block, "data-block-status"))
}

func TestEnvDefaults(t *testing.T) {
	var env *Env
	assert.Equal(t, "/x.png", env.Resolve("/x.png"))
	assert.NotNil(t, env.Log())
	assert.False(t, env.EagerImage())
}

func TestEnvEagerImage(t *testing.T) {
	env := &Env{EagerImageCount: 2}
	assert.True(t, env.EagerImage())
	assert.True(t, env.EagerImage())
	assert.False(t, env.EagerImage())
	assert.False(t, env.EagerImage())

	// A zero budget means every image is lazy.
	assert.False(t, (&Env{}).EagerImage())
}
