package view

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/idilsaglam/notes/internal/api"
	"github.com/idilsaglam/notes/internal/model"
)

// recordingList keeps every Replace call.
type recordingList struct {
	mu    sync.Mutex
	calls [][]Entry
}

func (l *recordingList) Replace(e []Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, e)
}

func (l *recordingList) last() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.calls) == 0 {
		return nil
	}
	return l.calls[len(l.calls)-1]
}

type noteForm struct {
	title, content string
	resets         int
}

func (f *noteForm) Title() string   { return f.title }
func (f *noteForm) Content() string { return f.content }
func (f *noteForm) Reset()          { f.title, f.content = "", ""; f.resets++ }

type actionForm struct {
	desc   string
	resets int
}

func (f *actionForm) Description() string { return f.desc }
func (f *actionForm) Reset()              { f.desc = ""; f.resets++ }

type searchBox struct{ q string }

func (b *searchBox) Query() string { return b.q }
func (b *searchBox) Clear()        { b.q = "" }

type recordedRequest struct {
	Method, URI, Body string
}

// backendRecorder is a canned HTTP backend that records request order.
type backendRecorder struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]string // "METHOD URI" -> body
}

func (b *backendRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, recordedRequest{r.Method, r.URL.RequestURI(), string(body)})
	resp, ok := b.routes[r.Method+" "+r.URL.RequestURI()]
	b.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "no route")
		return
	}
	io.WriteString(w, resp)
}

func newController(t *testing.T, routes map[string]string) (*Controller, *backendRecorder, *recordingList, *recordingList) {
	t.Helper()
	rec := &backendRecorder{routes: routes}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	logger, _ := test.NewNullLogger()
	client, err := api.New(srv.URL, api.WithLogger(logger))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	notes, actions := &recordingList{}, &recordingList{}
	return NewController(client, notes, actions, logger), rec, notes, actions
}

func TestStartLoadsNotesThenActions(t *testing.T) {
	c, rec, notes, actions := newController(t, map[string]string{
		"GET /notes/":        `[]`,
		"GET /action-items/": `[{"id":1,"description":"x","completed":false}]`,
	})
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(rec.requests) != 2 || rec.requests[0].URI != "/notes/" || rec.requests[1].URI != "/action-items/" {
		t.Fatalf("unexpected requests %#v", rec.requests)
	}
	if got := notes.last(); len(got) != 1 || got[0].Text != NoResults {
		t.Fatalf("unexpected notes %#v", got)
	}
	if got := actions.last(); len(got) != 1 || got[0].Text != "x [open]" {
		t.Fatalf("unexpected actions %#v", got)
	}
}

func TestCompleteActionPutThenSingleReload(t *testing.T) {
	c, rec, _, actions := newController(t, map[string]string{
		"PUT /action-items/4/complete": `{"id":4,"description":"x","completed":true}`,
		"GET /action-items/":           `[{"id":4,"description":"x","completed":true}]`,
	})
	if err := c.CompleteAction(context.Background(), 4); err != nil {
		t.Fatalf("complete: %v", err)
	}
	want := []recordedRequest{
		{Method: http.MethodPut, URI: "/action-items/4/complete"},
		{Method: http.MethodGet, URI: "/action-items/"},
	}
	if len(rec.requests) != len(want) {
		t.Fatalf("expected %d requests, got %#v", len(want), rec.requests)
	}
	for i := range want {
		if rec.requests[i].Method != want[i].Method || rec.requests[i].URI != want[i].URI {
			t.Fatalf("request %d: want %v got %v", i, want[i], rec.requests[i])
		}
	}
	if got := actions.last(); len(got) != 1 || got[0].Completable {
		t.Fatalf("completed item must not keep its control: %#v", got)
	}
}

func TestCompleteActionFailureSkipsReload(t *testing.T) {
	c, rec, _, actions := newController(t, map[string]string{})
	err := c.CompleteAction(context.Background(), 99)
	var reqErr *api.RequestError
	if !errors.As(err, &reqErr) || reqErr.Body != "no route" {
		t.Fatalf("expected request error with body, got %v", err)
	}
	if len(rec.requests) != 1 {
		t.Fatalf("expected only the PUT, got %#v", rec.requests)
	}
	if len(actions.calls) != 0 {
		t.Fatal("list must not be touched on failure")
	}
}

func TestSubmitNotePostsResetsAndReloads(t *testing.T) {
	c, rec, notes, _ := newController(t, map[string]string{
		"POST /notes/": `{"id":1,"title":"A","content":"B"}`,
		"GET /notes/":  `[{"id":1,"title":"A","content":"B"}]`,
	})
	form := &noteForm{title: "A", content: "B"}
	if err := c.SubmitNote(context.Background(), form); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(rec.requests) != 2 {
		t.Fatalf("expected POST then GET, got %#v", rec.requests)
	}
	post := rec.requests[0]
	if post.Method != http.MethodPost || post.URI != "/notes/" || post.Body != `{"title":"A","content":"B"}` {
		t.Fatalf("unexpected post %#v", post)
	}
	if rec.requests[1].Method != http.MethodGet || rec.requests[1].URI != "/notes/" {
		t.Fatalf("unexpected reload %#v", rec.requests[1])
	}
	if form.resets != 1 || form.title != "" {
		t.Fatalf("form not reset: %#v", form)
	}
	if got := notes.last(); len(got) != 1 || got[0].Text != "A: B" {
		t.Fatalf("unexpected notes %#v", got)
	}
}

func TestSubmitNoteFailureKeepsForm(t *testing.T) {
	c, _, _, _ := newController(t, map[string]string{})
	form := &noteForm{title: "A", content: "B"}
	if err := c.SubmitNote(context.Background(), form); err == nil {
		t.Fatal("expected error")
	}
	if form.resets != 0 || form.title != "A" {
		t.Fatal("form must survive a failed submit")
	}
}

func TestSubmitActionPostsDescription(t *testing.T) {
	c, rec, _, actions := newController(t, map[string]string{
		"POST /action-items/": `{"id":2,"description":"call bob","completed":false}`,
		"GET /action-items/":  `[{"id":2,"description":"call bob","completed":false}]`,
	})
	form := &actionForm{desc: "call bob"}
	if err := c.SubmitAction(context.Background(), form); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.requests[0].Body != `{"description":"call bob"}` {
		t.Fatalf("unexpected body %q", rec.requests[0].Body)
	}
	if rec.requests[1].URI != "/action-items/" || form.resets != 1 {
		t.Fatalf("expected reset and reload, got %#v", rec.requests)
	}
	if got := actions.last(); len(got) != 1 || !got[0].Completable {
		t.Fatalf("unexpected actions %#v", got)
	}
}

func TestSearchEncodesQuery(t *testing.T) {
	c, rec, notes, _ := newController(t, map[string]string{
		"GET /notes/search/?q=foo%20bar": `[]`,
	})
	if err := c.Search(context.Background(), &searchBox{q: "foo bar"}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rec.requests) != 1 || rec.requests[0].URI != "/notes/search/?q=foo%20bar" {
		t.Fatalf("unexpected requests %#v", rec.requests)
	}
	if got := notes.last(); len(got) != 1 || got[0].Text != NoResults {
		t.Fatalf("unexpected notes %#v", got)
	}
}

func TestSearchBlankQueryIsIgnored(t *testing.T) {
	c, rec, _, _ := newController(t, map[string]string{})
	if err := c.Search(context.Background(), &searchBox{q: "   "}); err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rec.requests) != 0 {
		t.Fatalf("blank query must not hit the backend: %#v", rec.requests)
	}
}

func TestClearSearchReloadsAll(t *testing.T) {
	c, rec, _, _ := newController(t, map[string]string{"GET /notes/": `[]`})
	box := &searchBox{q: "foo"}
	if err := c.ClearSearch(context.Background(), box); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if box.q != "" {
		t.Fatal("box not cleared")
	}
	if len(rec.requests) != 1 || rec.requests[0].URI != "/notes/" {
		t.Fatalf("unexpected requests %#v", rec.requests)
	}
}

// gatedBackend blocks ListNotes calls until released, to force overlap.
type gatedBackend struct {
	Backend
	started chan struct{}
	release map[int]chan struct{}
	mu      sync.Mutex
	calls   int
}

func (g *gatedBackend) ListNotes(ctx context.Context) ([]model.Note, error) {
	g.mu.Lock()
	g.calls++
	n := g.calls
	ch := g.release[n]
	g.mu.Unlock()
	g.started <- struct{}{}
	<-ch
	return []model.Note{{ID: int64(n), Title: "call", Content: string(rune('0' + n))}}, nil
}

func TestStaleNotesResponseIsDropped(t *testing.T) {
	g := &gatedBackend{
		started: make(chan struct{}, 2),
		release: map[int]chan struct{}{1: make(chan struct{}), 2: make(chan struct{})},
	}
	notes := &recordingList{}
	logger, _ := test.NewNullLogger()
	c := NewController(g, notes, &recordingList{}, logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { defer wg.Done(); _ = c.LoadNotes(context.Background()) }()
	<-g.started
	wg.Add(1)
	go func() { defer wg.Done(); _ = c.LoadNotes(context.Background()) }()
	<-g.started

	// newer load resolves first, older one last
	close(g.release[2])
	close(g.release[1])
	wg.Wait()

	if len(notes.calls) != 1 {
		t.Fatalf("expected a single render, got %d", len(notes.calls))
	}
	if got := notes.last(); got[0].Text != "call: 2" {
		t.Fatalf("expected newest projection, got %#v", got)
	}
}

// stallingList holds its first Replace until released, recording it only
// afterwards.
type stallingList struct {
	recordingList
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (l *stallingList) Replace(e []Entry) {
	first := false
	l.once.Do(func() { first = true })
	if first {
		close(l.entered)
		<-l.release
	}
	l.recordingList.Replace(e)
}

// countingBackend answers ListNotes immediately, numbering each call.
type countingBackend struct {
	Backend
	mu       sync.Mutex
	calls    int
	answered chan int
}

func (b *countingBackend) ListNotes(ctx context.Context) ([]model.Note, error) {
	b.mu.Lock()
	b.calls++
	n := b.calls
	b.mu.Unlock()
	b.answered <- n
	return []model.Note{{ID: int64(n), Title: "call", Content: string(rune('0' + n))}}, nil
}

func TestNewerLoadWaitsForInFlightRender(t *testing.T) {
	b := &countingBackend{answered: make(chan int, 2)}
	notes := &stallingList{entered: make(chan struct{}), release: make(chan struct{})}
	logger, _ := test.NewNullLogger()
	c := NewController(b, notes, &recordingList{}, logger)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); _ = c.LoadNotes(context.Background()) }()
	<-b.answered
	<-notes.entered

	// the first load passed its check and is mid-Replace
	go func() { defer wg.Done(); _ = c.LoadNotes(context.Background()) }()
	<-b.answered
	time.Sleep(20 * time.Millisecond)
	close(notes.release)
	wg.Wait()

	if len(notes.calls) != 2 {
		t.Fatalf("expected two renders, got %d", len(notes.calls))
	}
	if got := notes.last(); got[0].Text != "call: 2" {
		t.Fatalf("older render overwrote the newer one: %#v", got)
	}
}
