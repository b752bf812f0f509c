package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/law-makers/toolscout/internal/engine"
	"github.com/law-makers/toolscout/internal/engine/extract"
	"github.com/law-makers/toolscout/internal/engine/static"
	"github.com/law-makers/toolscout/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<html><body>
<div class="tool w-dyn-item">
  <a class="tool-item-link" href="/tools/chat-a">Chat A</a>
  <div class="collection-list-8"><div class="text-block-53">Chat</div></div>
  <p>Freemium</p>
</div>
<div class="tool w-dyn-item">
  <a class="tool-item-link" href="/tools/beats">Beats</a>
  <div class="collection-list-8"><div class="text-block-53">Music</div></div>
  <p>Paid</p>
</div>
<div class="tool w-dyn-item">
  <a class="tool-item-link" href="/tools/chat-b">Chat B</a>
  <div class="collection-list-8"><div class="text-block-53">Chat</div><div class="text-block-53">Productivity</div></div>
  <p>Paid</p>
</div>
</body></html>`

type fakeRenderer struct {
	html    string
	err     error
	panics  bool
	delay   time.Duration
	calls   []models.RenderOptions
	mu      sync.Mutex
	active  int32
	maxSeen int32
}

func (f *fakeRenderer) Name() string { return "FakeRenderer" }

func (f *fakeRenderer) Render(_ context.Context, opts models.RenderOptions) (*models.PageData, error) {
	n := atomic.AddInt32(&f.active, 1)
	defer atomic.AddInt32(&f.active, -1)

	f.mu.Lock()
	f.calls = append(f.calls, opts)
	if n > f.maxSeen {
		f.maxSeen = n
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.panics {
		panic("browser crashed")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.PageData{URL: opts.URL, HTML: f.html}, nil
}

func testOptions() Options {
	return Options{
		ListingURL:    "https://www.futuretools.io",
		NewlyAddedURL: "https://www.futuretools.io/newly-added",
		ShortBudget:   10,
		LongBudget:    100,
	}
}

func newTestPipeline(r engine.Renderer) *Pipeline {
	return New(r, extract.New("https://www.futuretools.io"), testOptions())
}

func recordNames(res models.ScrapeResult) []string {
	var out []string
	for _, r := range res.Records {
		out = append(out, r.Name)
	}
	return out
}

func TestScrapeNewlyAdded_UsesShortBudget(t *testing.T) {
	r := &fakeRenderer{html: listingHTML}
	res := newTestPipeline(r).ScrapeNewlyAdded(context.Background())

	require.Len(t, r.calls, 1)
	assert.Equal(t, "https://www.futuretools.io/newly-added", r.calls[0].URL)
	assert.Equal(t, 10, r.calls[0].ScrollBudget)
	assert.Equal(t, models.ModeNewlyAdded, res.Mode)
	assert.Equal(t, 3, res.Count)
	assert.NotEmpty(t, res.RunID)
	assert.False(t, res.CompletedAt.IsZero())
}

func TestScrapeAllTools_UsesLongBudget(t *testing.T) {
	r := &fakeRenderer{html: listingHTML}
	res := newTestPipeline(r).ScrapeAllTools(context.Background())

	require.Len(t, r.calls, 1)
	assert.Equal(t, "https://www.futuretools.io", r.calls[0].URL)
	assert.Equal(t, 100, r.calls[0].ScrollBudget)
	assert.Equal(t, []string{"Chat A", "Beats", "Chat B"}, recordNames(res))
	assert.Equal(t, "https://www.futuretools.io/tools/beats", res.Records[1].URL)
}

func TestScrapeByCategory(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		pricing    []string
		want       []string
	}{
		{"category only", []string{"Chat"}, nil, []string{"Chat A", "Chat B"}},
		{"category and pricing", []string{"Chat"}, []string{"Paid"}, []string{"Chat B"}},
		{"pricing only", nil, []string{"Freemium"}, []string{"Chat A"}},
		{"no filters", nil, nil, []string{"Chat A", "Beats", "Chat B"}},
		{"all categories", models.Categories, nil, []string{"Chat A", "Beats", "Chat B"}},
		{"nothing matches", []string{"Gaming"}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeRenderer{html: listingHTML}
			res := newTestPipeline(r).ScrapeByCategory(context.Background(), tt.categories, tt.pricing)

			require.Len(t, r.calls, 1, "by-category renders once")
			assert.Equal(t, 100, r.calls[0].ScrollBudget)
			assert.Equal(t, tt.want, recordNames(res))
			assert.Equal(t, len(tt.want), res.Count)
			assert.NotNil(t, res.Records)
		})
	}
}

func TestScrape_ZeroCards(t *testing.T) {
	res := newTestPipeline(&fakeRenderer{html: `<html><body><p>maintenance</p></body></html>`}).
		ScrapeAllTools(context.Background())

	assert.Equal(t, 0, res.Count)
	assert.NotNil(t, res.Records)
	assert.Empty(t, res.Records)
}

func TestScrape_RenderErrorYieldsEmptyResult(t *testing.T) {
	r := &fakeRenderer{err: engine.SessionError("failed to navigate", errors.New("net::ERR_NAME_NOT_RESOLVED"))}
	res := newTestPipeline(r).ScrapeNewlyAdded(context.Background())

	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.Records)
	assert.False(t, res.CompletedAt.IsZero())
}

func TestScrape_RenderPanicYieldsEmptyResult(t *testing.T) {
	p := newTestPipeline(&fakeRenderer{panics: true})

	var res models.ScrapeResult
	assert.NotPanics(t, func() { res = p.ScrapeAllTools(context.Background()) })
	assert.Equal(t, 0, res.Count)
	assert.NotNil(t, res.Records)

	// the lock is released after a panic
	p.renderer = &fakeRenderer{html: listingHTML}
	assert.Equal(t, 3, p.ScrapeAllTools(context.Background()).Count)
}

func TestScrape_CallsAreSerialized(t *testing.T) {
	r := &fakeRenderer{html: listingHTML, delay: 20 * time.Millisecond}
	p := newTestPipeline(r)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.ScrapeNewlyAdded(context.Background())
		}()
	}
	wg.Wait()

	assert.Len(t, r.calls, 4)
	assert.Equal(t, int32(1), r.maxSeen)
}

func TestRun_Dispatch(t *testing.T) {
	r := &fakeRenderer{html: listingHTML}
	p := newTestPipeline(r)

	res, err := p.Run(context.Background(), models.ScrapeRequest{Mode: models.ModeByCategory, Categories: []string{"Music"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Beats"}, recordNames(res))

	_, err = p.Run(context.Background(), models.ScrapeRequest{Mode: "weekly"})
	require.Error(t, err)
	assert.Equal(t, engine.ErrCodeValidation, engine.CodeOf(err))
}

func TestPipeline_WithStaticRenderer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/newly-added" {
			_, _ = w.Write([]byte(listingHTML))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	opts := testOptions()
	opts.ListingURL = srv.URL + "/missing"
	opts.NewlyAddedURL = srv.URL + "/newly-added"
	p := New(static.NewRenderer(nil, srv.Client(), 0, ""), extract.New(srv.URL), opts)

	res := p.ScrapeNewlyAdded(context.Background())
	require.Equal(t, 3, res.Count)
	assert.Equal(t, srv.URL+"/tools/chat-a", res.Records[0].URL)

	assert.Equal(t, 0, p.ScrapeAllTools(context.Background()).Count, "404 is a session error, not a crash")
}
