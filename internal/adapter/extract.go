package adapter

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractStrategy is one way of locating job-card containers in a page.
// Strategies are ordered most-specific first; the chain stops at the first
// strategy that yields at least one candidate and never mixes results from
// two strategies. Any single selector goes stale when a source redesigns;
// the chain trades precision for continuity of service.
type extractStrategy struct {
	name string
	find func(doc *goquery.Document) *goquery.Selection
}

// selectCards runs the strategy chain and returns the first non-empty
// candidate set plus the name of the strategy that produced it.
func selectCards(doc *goquery.Document, strategies []extractStrategy) (*goquery.Selection, string) {
	for _, s := range strategies {
		if cards := s.find(doc); cards.Length() > 0 {
			return cards, s.name
		}
	}
	return nil, ""
}

// selectorStrategy builds a strategy from a plain CSS selector.
func selectorStrategy(name, selector string) extractStrategy {
	return extractStrategy{
		name: name,
		find: func(doc *goquery.Document) *goquery.Selection {
			return doc.Find(selector)
		},
	}
}

const heuristicCardCap = 30

// genericCardStrategy is the last-resort heuristic: any div containing
// both a heading and a hyperlink, carrying at least one CSS class, whose
// immediate parent is not itself a plain div (skips deeply nested
// wrappers). Capped so a pathological page can't flood the result.
func genericCardStrategy() extractStrategy {
	return extractStrategy{
		name: "generic-heuristic",
		find: func(doc *goquery.Document) *goquery.Selection {
			cards := doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
				if s.Find("h2, h3").Length() == 0 {
					return false
				}
				if s.Find("a[href]").Length() == 0 {
					return false
				}
				class, ok := s.Attr("class")
				if !ok || strings.TrimSpace(class) == "" {
					return false
				}
				return goquery.NodeName(s.Parent()) != "div"
			})
			if cards.Length() > heuristicCardCap {
				cards = cards.Slice(0, heuristicCardCap)
			}
			return cards
		},
	}
}

// firstText returns the trimmed text of the first selector that matches
// inside card, or "" when none do. Field extraction fails soft: a missing
// company or location becomes a default, never a discarded record.
func firstText(card *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if el := card.Find(sel).First(); el.Length() > 0 {
			if text := strings.TrimSpace(el.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// firstAttr returns the named attribute of the first selector that
// matches inside card, or "".
func firstAttr(card *goquery.Selection, attr string, selectors ...string) string {
	for _, sel := range selectors {
		if el := card.Find(sel).First(); el.Length() > 0 {
			if v, ok := el.Attr(attr); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}

var (
	htmlTagRegexp    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRegexp = regexp.MustCompile(`\s+`)
)

// stripTags flattens an HTML fragment to single-spaced plain text.
func stripTags(fragment string) string {
	plain := htmlTagRegexp.ReplaceAllString(fragment, " ")
	return strings.TrimSpace(whitespaceRegexp.ReplaceAllString(plain, " "))
}
