package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/idilsaglam/notes/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	logger, _ := test.NewNullLogger()
	c, err := New(srv.URL+"/", WithLogger(logger))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNewRejectsNonHTTPScheme(t *testing.T) {
	if _, err := New("ftp://example.com"); err == nil {
		t.Fatal("expected error for ftp scheme")
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	c, err := New("http://localhost:8000/")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.BaseURL() != "http://localhost:8000" {
		t.Fatalf("unexpected base url %q", c.BaseURL())
	}
}

func TestFetchJSONNonSuccessCarriesBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Action item not found"}`)
	})

	err := c.FetchJSON(context.Background(), http.MethodPut, "/action-items/9/complete", nil, nil)
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T (%v)", err, err)
	}
	if reqErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", reqErr.Status)
	}
	if err.Error() != `{"detail":"Action item not found"}` {
		t.Fatalf("expected raw body as message, got %q", err.Error())
	}
}

func TestFetchJSONEmptyErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	err := c.FetchJSON(context.Background(), http.MethodGet, "/notes/", nil, nil)
	if err == nil || err.Error() != "request failed: GET /notes/: 500 Internal Server Error" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFetchJSONSetsRequestID(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(HeaderRequestID)
		io.WriteString(w, `[]`)
	})
	if _, err := c.ListNotes(context.Background()); err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(got) != 36 {
		t.Fatalf("expected uuid request id, got %q", got)
	}
}

func TestSearchNotesEncodesSpaceAsPercent20(t *testing.T) {
	var rawQuery, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		rawQuery = r.URL.RawQuery
		io.WriteString(w, `[{"id":1,"title":"t","content":"foo bar"}]`)
	})

	notes, err := c.SearchNotes(context.Background(), "foo bar")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if path != "/notes/search/" || rawQuery != "q=foo%20bar" {
		t.Fatalf("unexpected request %s?%s", path, rawQuery)
	}
	if len(notes) != 1 || notes[0].Content != "foo bar" {
		t.Fatalf("unexpected notes: %#v", notes)
	}
}

func TestEscapeQueryMatchesEncodeURIComponent(t *testing.T) {
	cases := map[string]string{
		"foo bar":     "foo%20bar",
		"a+b c&d":     "a%2Bb%20c%26d",
		"it's (ok)!*": "it's%20(ok)!*",
		"~_.-":        "~_.-",
		"café/é?=#":   "caf%C3%A9%2F%C3%A9%3F%3D%23",
		"":            "",
	}
	for in, want := range cases {
		if got := EscapeQuery(in); got != want {
			t.Fatalf("EscapeQuery(%q): want %q got %q", in, want, got)
		}
	}
}

func TestCreateNotePostsJSON(t *testing.T) {
	var method, ctype string
	var body map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		ctype = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":7,"title":"A","content":"B"}`)
	})

	n, err := c.CreateNote(context.Background(), model.NoteCreate{Title: "A", Content: "B"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if method != http.MethodPost || ctype != "application/json" {
		t.Fatalf("unexpected method/content-type %s %s", method, ctype)
	}
	if body["title"] != "A" || body["content"] != "B" || len(body) != 2 {
		t.Fatalf("unexpected body %#v", body)
	}
	if n.ID != 7 {
		t.Fatalf("expected created id 7, got %d", n.ID)
	}
}

func TestCompleteActionItemPath(t *testing.T) {
	var method, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		io.WriteString(w, `{"id":3,"description":"x","completed":true}`)
	})
	a, err := c.CompleteActionItem(context.Background(), 3)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if method != http.MethodPut || path != "/action-items/3/complete" {
		t.Fatalf("unexpected request %s %s", method, path)
	}
	if !a.Completed {
		t.Fatal("expected completed item")
	}
}

func TestFetchJSONBadPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	})
	_, err := c.ListActionItems(context.Background())
	if err == nil {
		t.Fatal("expected decode error")
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		t.Fatal("decode failure must not be a RequestError")
	}
}

func TestListDecodesNaiveBackendTimestamps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/notes/":
			io.WriteString(w, `[{"id":1,"title":"A","content":"B",`+
				`"created_at":"2025-01-02T03:04:05.123456","updated_at":"2025-01-02T03:04:05.123456"}]`)
		case "/action-items/":
			io.WriteString(w, `[{"id":2,"description":"x","completed":false,`+
				`"created_at":"2025-01-02 03:04:05","updated_at":null}]`)
		}
	})

	notes, err := c.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "A" || notes[0].CreatedAt.Year() != 2025 {
		t.Fatalf("unexpected notes %#v", notes)
	}

	items, err := c.ListActionItems(context.Background())
	if err != nil {
		t.Fatalf("list action items: %v", err)
	}
	if len(items) != 1 || items[0].CreatedAt.Hour() != 3 || !items[0].UpdatedAt.IsZero() {
		t.Fatalf("unexpected items %#v", items)
	}
}

func TestFetchJSONEmptySuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if _, err := c.ListNotes(context.Background()); err == nil {
		t.Fatal("an empty body cannot be a note list")
	}
	if err := c.FetchJSON(context.Background(), http.MethodPut, "/action-items/1/complete", nil, nil); err != nil {
		t.Fatalf("empty body is fine when nothing is decoded: %v", err)
	}
}
