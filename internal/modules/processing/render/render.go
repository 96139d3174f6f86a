// Package render turns article bodies into sanitised HTML. Bodies are
// Markdown with single newlines kept as line breaks, and may embed
// [[IMAGE:<url>]] tokens produced by the content-image upload.
package render

import (
	"bytes"
	"html/template"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

const imageAlt = "Article Image"

var (
	imageTokenPattern = regexp.MustCompile(`\[\[IMAGE:(.*?)\]\]`)
	imageParagraph    = regexp.MustCompile(`(?is)<p>\s*(<img\s[^>]*>)\s*</p>`)
)

var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^article-content-image$`)).OnElements("figure")
	p.AllowAttrs("loading").Matching(regexp.MustCompile(`^lazy$`)).OnElements("img")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}()

// expandImageTokens rewrites [[IMAGE:url]] tokens as standalone Markdown
// images. Only absolute http(s) URLs and root-relative paths such as those
// served by the local media store are expanded; anything else stays as text.
func expandImageTokens(text string) string {
	return imageTokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		raw := strings.TrimSpace(imageTokenPattern.FindStringSubmatch(token)[1])
		u, err := url.Parse(raw)
		if err != nil || !imageURLAllowed(u) {
			return token
		}
		return "\n\n![" + imageAlt + "](<" + u.String() + ">)\n\n"
	})
}

func imageURLAllowed(u *url.URL) bool {
	switch u.Scheme {
	case "http", "https":
		return u.Host != ""
	case "":
		return u.Host == "" && strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(u.Path, "//")
	default:
		return false
	}
}

// HTML renders content. An empty body renders as the empty string.
func HTML(content string) string {
	text := strings.TrimSpace(content)
	if text == "" {
		return ""
	}
	text = expandImageTokens(strings.ReplaceAll(text, "\r\n", "\n"))

	var out bytes.Buffer
	if err := engine.Convert([]byte(text), &out); err != nil {
		return strings.ReplaceAll(template.HTMLEscapeString(text), "\n", "<br>")
	}
	html := imageParagraph.ReplaceAllStringFunc(out.String(), func(p string) string {
		img := imageParagraph.FindStringSubmatch(p)[1]
		img = strings.Replace(img, "<img ", `<img loading="lazy" `, 1)
		return `<figure class="article-content-image">` + img + `</figure>`
	})
	return policy.Sanitize(html)
}
