package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"reelview/models"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func newTestClient(t *testing.T, apiKey string, fn roundTripFunc) *Client {
	t.Helper()
	return NewClient(Options{
		APIKey:        apiKey,
		BaseURL:       "https://catalog.test/3",
		Language:      "en",
		HTTPClient:    &http.Client{Transport: fn},
		RetryAttempts: 3,
		RetryDelay:    time.Millisecond,
	})
}

func TestNormalizeLanguage(t *testing.T) {
	tests := map[string]string{
		"":        "en-US",
		"en":      "en-US",
		"en_US":   "en-US",
		"pt-br":   "pt-BR",
		"fr-FR":   "fr-FR",
		"es":      "es-US",
		"!!bad!!": "en-US",
	}
	for input, expect := range tests {
		if got := normalizeLanguage(input); got != expect {
			t.Fatalf("normalizeLanguage(%q) = %q, want %q", input, got, expect)
		}
	}
}

func TestSearchSendsQueryAndDropsPeople(t *testing.T) {
	var gotURL string
	client := newTestClient(t, "v3key", func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		return jsonResponse(http.StatusOK, `{
			"page": 2,
			"total_pages": 4,
			"total_results": 70,
			"results": [
				{"id": 1, "media_type": "movie", "title": "Batman Begins", "poster_path": "/bb.jpg", "vote_average": 7.7, "vote_count": 20000},
				{"id": 2, "media_type": "person", "name": "Christian Bale"},
				{"id": 3, "media_type": "tv", "name": "Batman: The Animated Series", "poster_path": null}
			]
		}`), nil
	})

	page, err := client.Search(context.Background(), "batman", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if page.Page != 2 || page.TotalPages != 4 || page.TotalResults != 70 {
		t.Fatalf("unexpected pagination: %+v", page)
	}
	if len(page.Results) != 2 {
		t.Fatalf("expected person entry to be dropped, got %d results", len(page.Results))
	}
	if page.Results[0].ID != 1 || page.Results[1].ID != 3 {
		t.Fatalf("unexpected result order: %+v", page.Results)
	}
	if page.Results[1].PosterPath != "" {
		t.Fatalf("expected null poster to decode as empty, got %q", page.Results[1].PosterPath)
	}

	for _, want := range []string{"/3/search/multi?", "query=batman", "page=2", "api_key=v3key", "language=en-US"} {
		if !strings.Contains(gotURL, want) {
			t.Fatalf("expected url %q to contain %q", gotURL, want)
		}
	}
}

func TestBearerTokenSentAsHeader(t *testing.T) {
	token := "aaa.bbb.ccc"
	client := newTestClient(t, token, func(req *http.Request) (*http.Response, error) {
		if got := req.Header.Get("Authorization"); got != "Bearer "+token {
			t.Fatalf("unexpected authorization header %q", got)
		}
		if req.URL.Query().Get("api_key") != "" {
			t.Fatal("bearer token must not leak into the query string")
		}
		return jsonResponse(http.StatusOK, `{"page":1,"total_pages":1,"results":[]}`), nil
	})

	if _, err := client.Trending(context.Background(), models.MediaTypeTv, 1); err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
}

func TestTrendingFillsMediaTypeAndCoercesPagination(t *testing.T) {
	client := newTestClient(t, "k", func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/3/trending/tv/week" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"total_pages":0,"results":[{"id":9,"name":"Dark"}]}`), nil
	})

	page, err := client.Trending(context.Background(), models.MediaTypeTv, 3)
	if err != nil {
		t.Fatalf("Trending failed: %v", err)
	}
	if page.Page != 3 {
		t.Fatalf("expected missing page to default to requested page, got %d", page.Page)
	}
	if page.TotalPages != 1 {
		t.Fatalf("expected total pages coerced to 1, got %d", page.TotalPages)
	}
	if page.Results[0].MediaType != models.MediaTypeTv {
		t.Fatalf("expected media type tv, got %q", page.Results[0].MediaType)
	}
}

func TestInvalidArgumentsNeverHitUpstream(t *testing.T) {
	client := newTestClient(t, "k", func(req *http.Request) (*http.Response, error) {
		t.Fatalf("unexpected request to %s", req.URL)
		return nil, nil
	})
	ctx := context.Background()

	if _, err := client.Search(ctx, "x", 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("page 0: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := client.SearchTv(ctx, "x", MaxPage+1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("page 501: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := client.Trending(ctx, "person", 1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("bad media type: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := client.Movie(ctx, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("id 0: expected ErrInvalidArgument, got %v", err)
	}
}

func TestNotFoundIsUnrecoverable(t *testing.T) {
	var calls int32
	client := newTestClient(t, "k", func(req *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return jsonResponse(http.StatusNotFound, `{"status_code":34}`), nil
	})

	_, err := client.Movie(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != http.StatusNotFound {
		t.Fatalf("expected *UpstreamError with 404, got %v", err)
	}
	if strings.Contains(err.Error(), "api_key") {
		t.Fatalf("error must not expose credentials: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected a single attempt for 404, got %d", got)
	}
}

func TestServerErrorsAreRetried(t *testing.T) {
	var calls int32
	client := newTestClient(t, "k", func(req *http.Request) (*http.Response, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return jsonResponse(http.StatusServiceUnavailable, `{}`), nil
		}
		return jsonResponse(http.StatusOK, `{"id":7,"name":"Severance","number_of_seasons":2,"genres":[{"id":18,"name":"Drama"}]}`), nil
	})

	details, err := client.TvShow(context.Background(), 7)
	if err != nil {
		t.Fatalf("TvShow failed: %v", err)
	}
	if details.DisplayName() != "Severance" || details.NumberOfSeasons != 2 || details.MediaType != models.MediaTypeTv {
		t.Fatalf("unexpected details: %+v", details)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestRetriesExhausted(t *testing.T) {
	client := newTestClient(t, "k", func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusTooManyRequests, `{}`), nil
	})

	_, err := client.Search(context.Background(), "x", 1)
	var upstream *UpstreamError
	if !errors.As(err, &upstream) || upstream.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 upstream error, got %v", err)
	}
}

func TestMalformedPayloadRejected(t *testing.T) {
	bodies := map[string]string{
		"not json":        `<html>oops</html>`,
		"missing results": `{"page":1,"total_pages":1}`,
		"string id":       `{"page":1,"total_pages":1,"results":[{"id":"abc"}]}`,
		"negative total":  `{"page":1,"total_pages":-1,"results":[]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, "k", func(req *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, body), nil
			})
			if _, err := client.Search(context.Background(), "x", 1); !errors.Is(err, ErrInvalidPayload) {
				t.Fatalf("expected ErrInvalidPayload, got %v", err)
			}
		})
	}
}

func TestGetByIDDispatchesOnMediaType(t *testing.T) {
	client := newTestClient(t, "k", func(req *http.Request) (*http.Response, error) {
		switch req.URL.Path {
		case "/3/movie/5":
			return jsonResponse(http.StatusOK, `{"id":5,"title":"Alien","runtime":117}`), nil
		case "/3/tv/6":
			return jsonResponse(http.StatusOK, `{"id":6,"name":"Andor"}`), nil
		}
		return jsonResponse(http.StatusNotFound, `{}`), nil
	})
	ctx := context.Background()

	movie, err := client.GetByID(ctx, models.MediaTypeMovie, 5)
	if err != nil || movie.Title != "Alien" || movie.MediaType != models.MediaTypeMovie {
		t.Fatalf("unexpected movie %+v err=%v", movie, err)
	}
	show, err := client.GetByID(ctx, models.MediaTypeTv, 6)
	if err != nil || show.Name != "Andor" || show.MediaType != models.MediaTypeTv {
		t.Fatalf("unexpected show %+v err=%v", show, err)
	}
	if _, err := client.GetByID(ctx, models.MediaTypeTv, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConcurrentIdenticalRequestsShareOneCall(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	client := newTestClient(t, "k", func(req *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return jsonResponse(http.StatusOK, `{"page":1,"total_pages":1,"results":[{"id":1,"title":"Heat"}]}`), nil
	})

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Trending(context.Background(), models.MediaTypeMovie, 1)
			errs <- err
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Trending failed: %v", err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}

func TestCanceledCallerDoesNotWait(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	client := newTestClient(t, "k", func(req *http.Request) (*http.Response, error) {
		<-release
		return jsonResponse(http.StatusOK, `{"results":[]}`), nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.SearchMovies(ctx, "x", 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
