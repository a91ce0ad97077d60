package search

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseDoc(t *testing.T, htmlStr string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		t.Fatalf("building test document: %v", err)
	}
	return doc
}

func TestParseResults_ExtractsFields(t *testing.T) {
	doc := parseDoc(t, `
<div class="result__body">
  <a class="result__a" href="https://a.example/x">  First Result  </a>
  <a class="result__snippet">  A snippet.  </a>
</div>
<div class="result__body">
  <a class="result__a" href="https://b.example/y">Second Result</a>
  <div class="result__snippet">Div snippet.</div>
</div>`)

	results := ParseResults(doc)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	first := results[0]
	if first.Title != "First Result" {
		t.Errorf("title not trimmed: %q", first.Title)
	}
	if first.URL != "https://a.example/x" {
		t.Errorf("unexpected url: %q", first.URL)
	}
	if first.Snippet != "A snippet." {
		t.Errorf("snippet not trimmed: %q", first.Snippet)
	}
	if first.Source != "a.example" {
		t.Errorf("source should be the URL host, got %q", first.Source)
	}

	if results[1].Snippet != "Div snippet." {
		t.Errorf("div snippet fallback failed: %q", results[1].Snippet)
	}
	if results[1].Source != "b.example" {
		t.Errorf("unexpected source: %q", results[1].Source)
	}
}

func TestParseResults_DocumentOrderPreserved(t *testing.T) {
	doc := parseDoc(t, `
<div class="result__body"><a class="result__a" href="https://one.example/">1</a></div>
<div class="result__body"><a class="result__a" href="https://two.example/">2</a></div>
<div class="result__body"><a class="result__a" href="https://three.example/">3</a></div>`)

	results := ParseResults(doc)
	want := []string{"https://one.example/", "https://two.example/", "https://three.example/"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, u := range want {
		if results[i].URL != u {
			t.Errorf("rank %d: expected %q, got %q", i, u, results[i].URL)
		}
	}
}

func TestParseResults_SkipsBlocksWithoutLink(t *testing.T) {
	doc := parseDoc(t, `
<div class="result__body"><span>promoted module, no link</span></div>
<div class="result__body"><a class="result__a" href="https://real.example/">Real</a></div>
<div class="result__body"><a class="result__a">link without href</a></div>
<div class="result__body"><a class="result__a" href="">empty href</a></div>`)

	results := ParseResults(doc)
	if len(results) != 1 {
		t.Fatalf("expected malformed blocks dropped silently, got %d results", len(results))
	}
	for _, r := range results {
		if r.URL == "" {
			t.Error("parsed results must never carry an empty URL")
		}
	}
}

func TestParseResults_SnippetPrefersAnchorOverDiv(t *testing.T) {
	doc := parseDoc(t, `
<div class="result__body">
  <a class="result__a" href="https://x.example/">X</a>
  <a class="result__snippet">anchor snippet</a>
  <div class="result__snippet">div snippet</div>
</div>`)

	results := ParseResults(doc)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Snippet != "anchor snippet" {
		t.Errorf("expected anchor snippet preferred, got %q", results[0].Snippet)
	}
}

func TestParseResults_MissingSnippetAndRelativeURL(t *testing.T) {
	doc := parseDoc(t, `
<div class="result__body"><a class="result__a" href="/relative/path">No Snippet</a></div>`)

	results := ParseResults(doc)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Snippet != "" {
		t.Errorf("missing snippet should be empty, got %q", results[0].Snippet)
	}
	// Known limitation: relative URLs have no authority component
	if results[0].Source != "" {
		t.Errorf("relative URL should yield empty source, got %q", results[0].Source)
	}
}

func TestParseResults_EmptyDocument(t *testing.T) {
	if got := ParseResults(parseDoc(t, "<html><body></body></html>")); len(got) != 0 {
		t.Errorf("empty page should parse to zero results, got %d", len(got))
	}
}
