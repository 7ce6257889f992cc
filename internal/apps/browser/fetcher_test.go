package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/webdesk/internal/infrastructure/resilience"
)

const page = `<!DOCTYPE html>
<html>
<head><title>  Platform   Status </title><style>body{color:red}</style></head>
<body>
  <script>alert("x")</script>
  <h1>All systems</h1><p>Operational &amp; healthy.</p>
</body>
</html>`

func testOptions() FetcherOptions {
	return FetcherOptions{
		Timeout:      2 * time.Second,
		Retries:      0,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: time.Millisecond,
	}
}

func TestFetchExtractsTitleAndExcerpt(t *testing.T) {
	var ua atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua.Store(r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f := NewFetcher(testOptions(), nil)
	p, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, srv.URL, p.URL)
	assert.Equal(t, http.StatusOK, p.Status)
	assert.Equal(t, "Platform Status", p.Title)
	assert.Equal(t, "All systems Operational & healthy.", p.Excerpt)
	assert.Equal(t, "WebDesk-Browser/1.0", ua.Load())
}

func TestFetchTruncatesExcerpt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>" + strings.Repeat("word ", 100) + "</p></body></html>"))
	}))
	defer srv.Close()

	opts := testOptions()
	opts.ExcerptLength = 20
	p, err := NewFetcher(opts, nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "word word word word...", p.Excerpt)
}

func TestFetchStopsReadingAtBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><head><title>Endless</title></head><body><p>"))
		chunk := []byte(strings.Repeat("x", 32<<10))
		// Streams for longer than the client timeout; stops once the client hangs up
		for i := 0; i < 500; i++ {
			if _, err := w.Write(chunk); err != nil {
				return
			}
			w.(http.Flusher).Flush()
			time.Sleep(20 * time.Millisecond)
		}
	}))
	defer srv.Close()

	opts := testOptions()
	opts.MaxBodyBytes = 4 << 10
	start := time.Now()
	p, err := NewFetcher(opts, nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Endless", p.Title)
	assert.Less(t, time.Since(start), opts.Timeout)
}

func TestFetchClientErrorDoesNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(testOptions(), nil)
	for i := 0; i < 6; i++ {
		_, err := f.Fetch(context.Background(), srv.URL)
		assert.ErrorIs(t, err, ErrStatus)
	}
	assert.Equal(t, resilience.StateClosed, f.Breaker().State())
}

func TestFetchServerErrorsOpenBreaker(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewFetcher(testOptions(), nil)
	for i := 0; i < 5; i++ {
		_, err := f.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
	}
	assert.Equal(t, resilience.StateOpen, f.Breaker().State())

	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(5), hits.Load())
}

func TestFetchHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := testOptions()
	opts.RateLimit = 1
	_, err := NewFetcher(opts, nil).Fetch(ctx, "http://127.0.0.1:1")
	assert.Error(t, err)
}
