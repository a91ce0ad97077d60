package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"keyword-crawler/pkg/fetch"
	"keyword-crawler/pkg/utils"
)

// testLogger returns a logger entry that discards output
func testLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

// serpPage renders a minimal results page with one block per URL.
func serpPage(urls ...string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i, u := range urls {
		fmt.Fprintf(&b, `<div class="result__body"><a class="result__a" href="%s">Result %d</a><a class="result__snippet">snippet %d</a></div>`, u, i, i)
	}
	b.WriteString("</body></html>")
	return b.String()
}

// mockSearchServer serves pages keyed by the requested offset and records
// every (q, s) pair it sees.
func mockSearchServer(t *testing.T, pages map[string]string) (*httptest.Server, *[]string, *[]string) {
	t.Helper()
	var queries, offsets []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing search form: %v", err)
		}
		queries = append(queries, r.PostFormValue("q"))
		offset := r.PostFormValue("s")
		offsets = append(offsets, offset)

		page, ok := pages[offset]
		if !ok {
			page = serpPage() // empty page for unknown offsets
		}
		w.Write([]byte(page))
	}))
	t.Cleanup(server.Close)
	return server, &queries, &offsets
}

func newTestPaginator(endpoint string) *Paginator {
	client := &http.Client{Timeout: 5 * time.Second}
	limiter := fetch.NewLimiter(0, testLogger())
	return NewPaginator(client, endpoint, "test-agent", limiter, testLogger())
}

func TestCollect_NonPositiveMaxResultsMakesNoRequests(t *testing.T) {
	requestCount := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
	}))
	t.Cleanup(server.Close)

	p := newTestPaginator(server.URL)
	for _, maxResults := range []int{0, -5} {
		results, err := p.Collect(context.Background(), "anything", maxResults)
		if err != nil {
			t.Fatalf("maxResults=%d: unexpected error: %v", maxResults, err)
		}
		if len(results) != 0 {
			t.Errorf("maxResults=%d: expected empty result set, got %d", maxResults, len(results))
		}
	}
	if requestCount.Load() != 0 {
		t.Errorf("expected zero network calls, got %d", requestCount.Load())
	}
}

func TestCollect_StopsOnEmptyPage(t *testing.T) {
	server, queries, offsets := mockSearchServer(t, map[string]string{
		"0": serpPage("https://a.example/x", "https://b.example/y"),
		// offset 2 falls through to an empty page
	})

	results, err := newTestPaginator(server.URL).Collect(context.Background(), "rust programming", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].URL != "https://a.example/x" || results[1].URL != "https://b.example/y" {
		t.Errorf("rank order lost: %+v", results)
	}

	if want := []string{"0", "2"}; len(*offsets) != 2 || (*offsets)[0] != want[0] || (*offsets)[1] != want[1] {
		t.Errorf("expected offsets %v, got %v", want, *offsets)
	}
	for _, q := range *queries {
		if q != "rust programming" {
			t.Errorf("expected keyword sent on every page request, got %q", q)
		}
	}
}

func TestCollect_OffsetAdvancesByScannedNotKept(t *testing.T) {
	pageOne := serpPage(
		"https://1.example/", "https://2.example/", "https://3.example/",
		"https://4.example/", "https://5.example/",
	)
	pageTwo := serpPage(
		"https://6.example/", "https://7.example/", "https://8.example/",
	)
	server, _, offsets := mockSearchServer(t, map[string]string{"0": pageOne, "5": pageTwo})

	// Cap hits mid-page on the second page: 5 scanned + 2 kept of 3
	results, err := newTestPaginator(server.URL).Collect(context.Background(), "kw", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 7 {
		t.Fatalf("expected accumulation capped at 7, got %d", len(results))
	}

	// The second request must skip all 5 scanned results from page one,
	// even though only page-one results counted toward the cap so far.
	if want := []string{"0", "5"}; len(*offsets) != 2 || (*offsets)[0] != want[0] || (*offsets)[1] != want[1] {
		t.Errorf("expected offsets %v, got %v", want, *offsets)
	}
}

func TestCollect_CapMidFirstPage(t *testing.T) {
	server, _, offsets := mockSearchServer(t, map[string]string{
		"0": serpPage("https://1.example/", "https://2.example/", "https://3.example/"),
	})

	results, err := newTestPaginator(server.URL).Collect(context.Background(), "kw", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if len(*offsets) != 1 {
		t.Errorf("cap reached on first page, expected no further requests, got %d", len(*offsets))
	}
}

func TestCollect_DuplicateURLsPassThrough(t *testing.T) {
	server, _, _ := mockSearchServer(t, map[string]string{
		"0": serpPage("https://same.example/", "https://same.example/"),
	})

	results, err := newTestPaginator(server.URL).Collect(context.Background(), "kw", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("duplicates must not be collapsed, got %d results", len(results))
	}
}

func TestCollect_ServerErrorIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	results, err := newTestPaginator(server.URL).Collect(context.Background(), "kw", 10)
	if err == nil {
		t.Fatal("expected error for non-2xx search response")
	}
	if !errors.Is(err, utils.ErrSearchUnavailable) {
		t.Errorf("expected ErrSearchUnavailable, got: %v", err)
	}
	if results != nil {
		t.Errorf("no partial results on fatal search failure, got %d", len(results))
	}
}

func TestCollect_UnreachableEndpointIsFatal(t *testing.T) {
	p := newTestPaginator("http://127.0.0.1:1/html")

	_, err := p.Collect(context.Background(), "kw", 10)
	if err == nil {
		t.Fatal("expected error for unreachable endpoint")
	}
	if !errors.Is(err, utils.ErrSearchUnavailable) {
		t.Errorf("expected ErrSearchUnavailable, got: %v", err)
	}
}
