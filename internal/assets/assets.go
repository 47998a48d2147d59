// Package assets resolves authored media references against the site's asset
// base and builds responsive picture markup for them.
package assets

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"

	"github.com/salamswapnil/eds-ued/internal/dom"
)

// DefaultWidths are the source-set breakpoints used when none are configured.
var DefaultWidths = []int{750, 1200, 2000}

// Resolver rewrites relative media references onto a configured asset base.
type Resolver struct {
	base          string
	baseURL       *url.URL // set when base is an absolute URL
	externalHosts map[string]bool
}

// NewResolver creates a Resolver. base is the path or URL prefix that
// relative media references are joined onto (e.g. "/content/site" or
// "https://cdn.example.com/site"). externalHosts lists hosts whose absolute
// URLs are considered part of the site rather than external.
func NewResolver(base string, externalHosts []string) *Resolver {
	hosts := make(map[string]bool, len(externalHosts))
	for _, h := range externalHosts {
		hosts[strings.ToLower(h)] = true
	}
	r := &Resolver{base: strings.TrimRight(base, "/"), externalHosts: hosts}
	if u, err := url.Parse(r.base); err == nil && u.IsAbs() {
		r.baseURL = u
	}
	return r
}

// Resolve joins a relative media reference onto the asset base. Absolute
// URLs, anchors and non-media paths pass through unchanged. Query and
// fragment are preserved.
func (r *Resolver) Resolve(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "data:") {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	p := strings.TrimPrefix(u.Path, "./")
	if !strings.HasPrefix(path.Base(p), "media_") {
		return ref
	}
	if r.baseURL != nil {
		joined := r.baseURL.JoinPath(strings.TrimLeft(p, "/"))
		joined.RawQuery = u.RawQuery
		joined.Fragment = u.Fragment
		return joined.String()
	}
	u.Path = r.base + "/" + strings.TrimLeft(p, "/")
	return u.String()
}

// IsExternal reports whether ref points outside the site: an absolute URL
// whose host is not in the configured allowlist.
func (r *Resolver) IsExternal(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil || !u.IsAbs() {
		return false
	}
	return !r.externalHosts[strings.ToLower(u.Hostname())]
}

// OptimizedPicture builds a <picture> with a webp <source> per width and a
// fallback <img>. eager controls the loading attribute on the fallback.
func OptimizedPicture(src, alt string, eager bool, widths []int) *html.Node {
	if len(widths) == 0 {
		widths = DefaultWidths
	}
	base, query := splitQuery(src)

	picture := dom.Elem("picture", nil)
	for _, w := range widths {
		source := dom.Elem("source", map[string]string{
			"type":   "image/webp",
			"srcset": fmt.Sprintf("%s?width=%d&format=webply&optimize=medium%s", base, w, query),
			"media":  fmt.Sprintf("(min-width: %dpx)", w),
		})
		dom.Append(picture, source)
	}

	loading := "lazy"
	if eager {
		loading = "eager"
	}
	img := dom.Elem("img", map[string]string{
		"src":     fmt.Sprintf("%s?width=%d&format=png&optimize=medium%s", base, widths[len(widths)-1], query),
		"alt":     alt,
		"loading": loading,
	})
	dom.Append(picture, img)
	return picture
}

// RewriteMedia resolves src, srcset and media hrefs throughout a fragment.
func RewriteMedia(root *html.Node, r *Resolver) {
	if root == nil || r == nil {
		return
	}
	rewrite := func(n *html.Node, key string) {
		if v := dom.Attr(n, key); v != "" {
			dom.SetAttr(n, key, r.Resolve(v))
		}
	}
	for _, img := range dom.FindAll(root, dom.ByTag("img")) {
		rewrite(img, "src")
	}
	for _, source := range dom.FindAll(root, dom.ByTag("source")) {
		rewrite(source, "srcset")
	}
	for _, a := range dom.FindAll(root, dom.ByTag("a")) {
		rewrite(a, "href")
	}
}

// splitQuery separates a trailing "?..." so width parameters can be injected
// before any authored suffix.
func splitQuery(src string) (base, query string) {
	if i := strings.IndexByte(src, '?'); i >= 0 {
		return src[:i], "&" + src[i+1:]
	}
	return src, ""
}
