package goquery

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/recipeprep"
	"golang.org/x/net/html"
)

// Ensure SectionStrategy implements recipeprep.Strategy at compile time.
var _ recipeprep.Strategy = (*SectionStrategy)(nil)

// Section scoring weights. The density component saturates at
// densityCap, so structure is needed to reach a high score.
const (
	densityScale   = 1000 // points per keyword-per-word
	densityCap     = 60
	headingBonus   = 20
	listBonus      = 20
	companionBonus = 10
	minListItems   = 2

	minSectionWords = 8
)

var (
	headingMatcher   = cascadia.MustCompile("h1, h2, h3, h4, h5, h6")
	containerMatcher = cascadia.MustCompile("article, [itemtype*=Recipe], [itemtype*=recipe]")
	listMatcher      = cascadia.MustCompile("ul, ol")
	listItemMatcher  = cascadia.MustCompile("li")
)

// containerTokens mark class/id values of recipe card containers,
// such as "wprm-recipe-container" or "tasty-recipes".
var containerTokens = []string{"recipe", "ingredient", "instruction", "direction"}

// SectionStrategy finds recipe-shaped sections (a heading plus the content
// that follows it, or a recipe container) by keyword density and structure.
type SectionStrategy struct {
	minConfidence   float64
	minSectionScore float64

	// words holds every accepted form of the single-word keywords.
	words   map[string]bool
	phrases []string
}

// NewSectionStrategy creates a new SectionStrategy.
func NewSectionStrategy(cfg recipeprep.SectionBasedConfig) *SectionStrategy {
	s := &SectionStrategy{
		minConfidence:   float64(cfg.MinConfidence),
		minSectionScore: float64(cfg.MinSectionScore),
		words:           make(map[string]bool),
	}
	for _, k := range cfg.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		switch {
		case k == "":
		case strings.Contains(k, " "):
			s.phrases = append(s.phrases, k)
		default:
			for _, form := range inflections(k) {
				s.words[form] = true
			}
		}
	}
	return s
}

// Name returns the strategy's identifier.
func (s *SectionStrategy) Name() recipeprep.StrategyName {
	return recipeprep.StrategySectionBased
}

// section is one scoring unit: a heading with its following siblings, or
// a single container element.
type section struct {
	nodes []*html.Node
	score float64
	order int
}

// Evaluate scores every section of a cleaned working copy and accepts the
// best non-overlapping ones when their combined confidence is high enough.
func (s *SectionStrategy) Evaluate(doc *recipeprep.Document) (*recipeprep.Outcome, error) {
	d, err := parse(doc.HTML)
	if err != nil {
		return nil, recipeprep.Errorf(recipeprep.EINVALID, "failed to parse HTML: %v", err)
	}

	stripNoise(d)
	d.FindMatcher(navigationMatcher).Remove()
	d.FindMatcher(chromeMatcher).Remove()

	sections := s.partition(d)
	if len(sections) == 0 {
		return recipeprep.Reject(0, "no sections found"), nil
	}
	for _, sec := range sections {
		sec.score = s.score(d, sec)
	}

	matched := s.selectSections(sections)
	if len(matched) == 0 {
		return recipeprep.Reject(bestScore(sections), fmt.Sprintf("no section reached %.0f", s.minSectionScore)), nil
	}

	confidence := matched[0].score + companionBonus*float64(len(matched)-1)
	confidence = math.Min(100, confidence)
	if confidence < s.minConfidence {
		return recipeprep.Reject(confidence, fmt.Sprintf("confidence %.0f below %.0f", confidence, s.minConfidence)), nil
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].order < matched[j].order })

	out, err := renderSections(matched)
	if err != nil {
		return nil, recipeprep.Errorf(recipeprep.EINTERNAL, "failed to render sections: %v", err)
	}

	return &recipeprep.Outcome{
		Accepted: true,
		HTML:     out,
		Score:    confidence,
		Reason:   fmt.Sprintf("confidence %.0f from %d section(s)", confidence, len(matched)),
	}, nil
}

// partition splits the document into heading sections and container
// sections. Sections may overlap; selectSections resolves that.
func (s *SectionStrategy) partition(d *goquery.Document) []*section {
	order := documentOrder(d)

	var sections []*section
	d.FindMatcher(headingMatcher).Each(func(_ int, sel *goquery.Selection) {
		h := sel.Get(0)
		sections = append(sections, &section{nodes: headingNodes(h), order: order[h]})
	})

	isContainer := func(_ int, sel *goquery.Selection) bool {
		if sel.FindMatcher(listMatcher).Length() == 0 {
			return false
		}
		if sel.IsMatcher(containerMatcher) {
			return true
		}
		class, _ := sel.Attr("class")
		id, _ := sel.Attr("id")
		label := strings.ToLower(class + " " + id)
		for _, token := range containerTokens {
			if strings.Contains(label, token) {
				return true
			}
		}
		return false
	}
	d.Find("article, [itemtype], [class], [id]").FilterFunction(isContainer).Each(func(_ int, sel *goquery.Selection) {
		n := sel.Get(0)
		sections = append(sections, &section{nodes: []*html.Node{n}, order: order[n]})
	})

	return sections
}

// headingNodes returns h followed by its siblings up to the next heading
// of the same or a higher level.
func headingNodes(h *html.Node) []*html.Node {
	level := headingLevel(h)
	nodes := []*html.Node{h}
	for sib := h.NextSibling; sib != nil; sib = sib.NextSibling {
		switch sib.Type {
		case html.ElementNode:
			if containsHeading(sib, level) {
				return nodes
			}
			nodes = append(nodes, sib)
		case html.TextNode:
			if strings.TrimSpace(sib.Data) != "" {
				nodes = append(nodes, sib)
			}
		}
	}
	return nodes
}

// containsHeading reports whether n is or contains a heading at level
// or above.
func containsHeading(n *html.Node, level int) bool {
	if l := headingLevel(n); l > 0 && l <= level {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if containsHeading(c, level) {
			return true
		}
	}
	return false
}

// headingLevel returns 1-6 for h1-h6 and 0 for anything else.
func headingLevel(n *html.Node) int {
	if n.Type != html.ElementNode || len(n.Data) != 2 || n.Data[0] != 'h' {
		return 0
	}
	if l := int(n.Data[1] - '0'); l >= 1 && l <= 6 {
		return l
	}
	return 0
}

// score combines keyword density with structural bonuses, capped at 100.
// Density is damped for sections shorter than minSectionWords so a bare
// keyword heading cannot score on its own.
func (s *SectionStrategy) score(d *goquery.Document, sec *section) float64 {
	words := splitWords(nodesText(sec.nodes))
	if len(words) == 0 {
		return 0
	}

	density := float64(s.keywordHits(words)) / float64(len(words))
	score := math.Min(densityCap, density*densityScale)
	score *= math.Min(1, float64(len(words))/minSectionWords)

	sel := d.FindNodes(sec.nodes...)
	keywordHeading := false
	sel.FindMatcher(headingMatcher).AddSelection(sel.FilterMatcher(headingMatcher)).Each(func(_ int, h *goquery.Selection) {
		if s.keywordHits(splitWords(h.Text())) > 0 {
			keywordHeading = true
		}
	})
	if keywordHeading {
		score += headingBonus
		if hasList(sel) {
			score += listBonus
		}
	}

	return math.Min(100, score)
}

// inflectionSuffixes are the endings a keyword may carry and still match,
// so "cook" matches "cooking" but not "cookies".
var inflectionSuffixes = []string{"", "s", "es", "ing", "ed"}

// inflections returns the whole-word forms matched for keyword k. A final
// "e" may be dropped before "ing" or "ed", as in "baking" and "baked".
func inflections(k string) []string {
	forms := make([]string, 0, 2*len(inflectionSuffixes))
	for _, suffix := range inflectionSuffixes {
		forms = append(forms, k+suffix)
	}
	if stem, ok := strings.CutSuffix(k, "e"); ok && stem != "" {
		forms = append(forms, stem+"ing", stem+"ed")
	}
	return forms
}

// keywordHits counts words equal to an accepted keyword form. Multi-word
// keywords are counted as phrases in the joined text.
func (s *SectionStrategy) keywordHits(words []string) int {
	hits := 0
	for _, w := range words {
		if s.words[w] {
			hits++
		}
	}
	if len(s.phrases) > 0 {
		joined := " " + strings.Join(words, " ") + " "
		for _, k := range s.phrases {
			hits += strings.Count(joined, " "+k+" ")
		}
	}
	return hits
}

// splitWords lowercases text and splits it into letter runs.
func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// hasList reports whether the selection holds a list with several items.
func hasList(sel *goquery.Selection) bool {
	found := false
	sel.FindMatcher(listMatcher).AddSelection(sel.FilterMatcher(listMatcher)).EachWithBreak(func(_ int, l *goquery.Selection) bool {
		found = l.FindMatcher(listItemMatcher).Length() >= minListItems
		return !found
	})
	return found
}

// selectSections picks sections above the per-section floor, highest
// score first, skipping any that overlap an already selected section.
func (s *SectionStrategy) selectSections(sections []*section) []*section {
	candidates := make([]*section, 0, len(sections))
	for _, sec := range sections {
		if sec.score >= s.minSectionScore && sec.score > 0 {
			candidates = append(candidates, sec)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].order < candidates[j].order
	})

	var selected []*section
	for _, c := range candidates {
		overlapping := false
		for _, sel := range selected {
			if overlaps(c, sel) {
				overlapping = true
				break
			}
		}
		if !overlapping {
			selected = append(selected, c)
		}
	}
	return selected
}

func overlaps(a, b *section) bool {
	for _, x := range a.nodes {
		for _, y := range b.nodes {
			if isAncestorOrSelf(x, y) || isAncestorOrSelf(y, x) {
				return true
			}
		}
	}
	return false
}

func isAncestorOrSelf(ancestor, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

func bestScore(sections []*section) float64 {
	best := 0.0
	for _, sec := range sections {
		best = math.Max(best, sec.score)
	}
	return best
}

// documentOrder numbers every node in a depth-first walk.
func documentOrder(d *goquery.Document) map[*html.Node]int {
	order := make(map[*html.Node]int)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		order[n] = len(order)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range d.Nodes {
		walk(n)
	}
	return order
}

// nodesText concatenates the text content of nodes.
func nodesText(nodes []*html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return b.String()
}

// renderSections serializes the selected sections in document order.
func renderSections(sections []*section) (string, error) {
	var buf bytes.Buffer
	for i, sec := range sections {
		if i > 0 {
			buf.WriteByte('\n')
		}
		for _, n := range sec.nodes {
			collapseWhitespace(n)
			if err := html.Render(&buf, n); err != nil {
				return "", err
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
