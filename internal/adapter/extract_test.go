package adapter

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestSelectCards_FirstNonEmptyWins(t *testing.T) {
	doc := docFromHTML(t, `
		<body>
			<div class="new-card"><h3>A</h3><a href="/a">a</a></div>
			<div class="old-card"><h3>B</h3><a href="/b">b</a></div>
		</body>`)

	strategies := []extractStrategy{
		selectorStrategy("stale", "div.retired-card"),
		selectorStrategy("old", "div.old-card"),
		selectorStrategy("new", "div.new-card"),
	}

	cards, name := selectCards(doc, strategies)
	if name != "old" {
		t.Fatalf("expected strategy old, got %q", name)
	}
	if cards.Length() != 1 {
		t.Fatalf("expected 1 card, got %d", cards.Length())
	}
	// Candidates from a later strategy must never be mixed in.
	if text := strings.TrimSpace(cards.Find("h3").Text()); text != "B" {
		t.Errorf("expected card B, got %q", text)
	}
}

func TestSelectCards_AllEmpty(t *testing.T) {
	doc := docFromHTML(t, `<body><p>maintenance page</p></body>`)
	cards, name := selectCards(doc, []extractStrategy{selectorStrategy("only", "div.card")})
	if cards != nil || name != "" {
		t.Fatalf("expected no cards, got %v (%q)", cards, name)
	}
}

func TestGenericCardStrategy(t *testing.T) {
	doc := docFromHTML(t, `
		<body>
			<section>
				<div class="result"><h2>Engineer</h2><a href="/j/1">view</a></div>
				<div class="result"><h2>Analyst</h2><a href="/j/2">view</a></div>
			</section>
			<section>
				<div><h2>no class attr</h2><a href="/x">x</a></div>
				<div class="nav">no heading <a href="/y">y</a></div>
				<div class="promo"><h2>no link</h2></div>
			</section>
		</body>`)

	cards, name := selectCards(doc, []extractStrategy{genericCardStrategy()})
	if name != "generic-heuristic" {
		t.Fatalf("expected generic-heuristic, got %q", name)
	}
	if cards.Length() != 2 {
		t.Fatalf("expected 2 heuristic cards, got %d", cards.Length())
	}
}

func TestGenericCardStrategy_Cap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<body><section>")
	for i := 0; i < heuristicCardCap+10; i++ {
		b.WriteString(`<div class="c"><h2>t</h2><a href="/j">j</a></div>`)
	}
	b.WriteString("</section></body>")

	cards, _ := selectCards(docFromHTML(t, b.String()), []extractStrategy{genericCardStrategy()})
	if cards.Length() != heuristicCardCap {
		t.Fatalf("expected cap at %d, got %d", heuristicCardCap, cards.Length())
	}
}

func TestFirstText(t *testing.T) {
	doc := docFromHTML(t, `<div id="card"><span class="empty">  </span><p class="loc">Sydney NSW</p></div>`)
	card := doc.Find("#card")

	if got := firstText(card, "span.empty", "p.loc"); got != "Sydney NSW" {
		t.Errorf("expected empty selector to be skipped, got %q", got)
	}
	if got := firstText(card, "h1", "h2"); got != "" {
		t.Errorf("expected empty string on no match, got %q", got)
	}
}

func TestFirstAttr(t *testing.T) {
	doc := docFromHTML(t, `<div id="card"><a class="dead">x</a><a class="live" href="/job/9">y</a></div>`)
	card := doc.Find("#card")

	if got := firstAttr(card, "href", "a.dead", "a.live"); got != "/job/9" {
		t.Errorf("expected /job/9, got %q", got)
	}
}

func TestStripTags(t *testing.T) {
	got := stripTags("<b>Location: </b> Sydney<br/>Great   role")
	if got != "Location: Sydney Great role" {
		t.Errorf("unexpected stripped text: %q", got)
	}
}
