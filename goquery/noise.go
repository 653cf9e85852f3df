package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var (
	scriptMatcher     = cascadia.MustCompile("script, style, noscript, template, link[rel=stylesheet]")
	navigationMatcher = cascadia.MustCompile("nav, footer, [role=navigation], [role=contentinfo]")
	chromeMatcher     = cascadia.MustCompile("header, aside, form, [role=banner], [role=complementary]")
	embedMatcher      = cascadia.MustCompile("iframe, object, embed")
	hiddenMatcher     = cascadia.MustCompile("[hidden], [aria-hidden=true]")
	styledMatcher     = cascadia.MustCompile("[style]")
	labelledMatcher   = cascadia.MustCompile("[class], [id]")
)

// trackingAttrPrefixes are data attributes injected by analytics and ad
// tooling. They carry no content.
var trackingAttrPrefixes = []string{
	"data-track",
	"data-analytics",
	"data-ga",
	"data-gtm",
	"data-event",
	"data-pixel",
	"data-vars",
	"data-click",
	"data-impression",
	"data-segment",
	"data-ad-",
}

// adTokens are class/id tokens that mark advertisement containers.
// Matching is per token so "header" or "shadow" never match "ad".
var adTokens = map[string]bool{
	"ad":            true,
	"ads":           true,
	"adsbygoogle":   true,
	"adslot":        true,
	"adunit":        true,
	"advert":        true,
	"advertisement": true,
	"advertising":   true,
	"dfp":           true,
	"promo":         true,
	"sponsor":       true,
	"sponsored":     true,
}

// parse builds a fresh working copy of the document. The x/net/html
// parser is permissive, so malformed markup still yields a tree.
func parse(rawHTML string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
}

// removeScripts drops script, style and similar non-rendered blocks.
func removeScripts(doc *goquery.Document) {
	doc.FindMatcher(scriptMatcher).Remove()
}

// removeHidden drops elements hidden through inline style or attributes.
func removeHidden(doc *goquery.Document) {
	doc.FindMatcher(hiddenMatcher).Remove()
	doc.FindMatcher(styledMatcher).FilterFunction(func(_ int, s *goquery.Selection) bool {
		style, _ := s.Attr("style")
		return isHiddenStyle(style)
	}).Remove()
}

// isHiddenStyle reports whether an inline style hides its element.
func isHiddenStyle(style string) bool {
	s := strings.ToLower(strings.Join(strings.Fields(style), ""))
	return strings.Contains(s, "display:none") || strings.Contains(s, "visibility:hidden")
}

// removeAds drops containers whose class or id marks them as ads.
func removeAds(doc *goquery.Document) {
	doc.FindMatcher(labelledMatcher).FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		return hasToken(class+" "+id, adTokens)
	}).Remove()
}

// hasToken splits a class/id string on whitespace, hyphens and
// underscores and reports whether any piece is in tokens.
func hasToken(s string, tokens map[string]bool) bool {
	for _, field := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '-' || r == '_'
	}) {
		if tokens[field] {
			return true
		}
	}
	return false
}

// stripTrackingAttrs removes analytics data attributes and inline event
// handlers from every element.
func stripTrackingAttrs(doc *goquery.Document) {
	for _, n := range doc.Find("*").Nodes {
		kept := n.Attr[:0]
		for _, attr := range n.Attr {
			if isTrackingAttr(attr.Key) {
				continue
			}
			kept = append(kept, attr)
		}
		n.Attr = kept
	}
}

func isTrackingAttr(key string) bool {
	key = strings.ToLower(key)
	if strings.HasPrefix(key, "on") {
		return true
	}
	for _, prefix := range trackingAttrPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// removeComments drops all comment nodes below n.
func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}

// collapseWhitespace shrinks whitespace-only text nodes to a single
// character and drops runs of them left behind by removed elements.
// Preformatted blocks are left alone.
func collapseWhitespace(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case isBlankText(c):
			if prev := c.PrevSibling; prev != nil && isBlankText(prev) {
				if strings.Contains(c.Data, "\n") {
					prev.Data = "\n"
				}
				n.RemoveChild(c)
			} else if strings.Contains(c.Data, "\n") {
				c.Data = "\n"
			} else if c.Data != "" {
				c.Data = " "
			}
		case c.Type == html.ElementNode && (c.Data == "pre" || c.Data == "textarea"):
		default:
			collapseWhitespace(c)
		}
		c = next
	}
}

func isBlankText(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

// stripNoise applies the cleanup every strategy output shares: scripts,
// hidden elements, tracking attributes and comments.
func stripNoise(doc *goquery.Document) {
	removeScripts(doc)
	removeHidden(doc)
	stripTrackingAttrs(doc)
	for _, n := range doc.Nodes {
		removeComments(n)
	}
}
