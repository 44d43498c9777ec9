package suite

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/checkers-client/internal/transport/cgi"
	"github.com/rocketscienceinc/checkers-client/internal/view"
	"github.com/rocketscienceinc/checkers-client/internal/view/htmldoc"
)

const (
	maxWaitDuration = 10 * time.Second

	BoardPath = "/cgi-bin/checkers.cgi"
	MovePath  = "/cgi-bin/update_board.cgi"
)

// Request - what the fake CGI endpoint received.
type Request struct {
	Method      string
	ContentType string
	RequestID   string
	Form        url.Values
}

// Endpoint - canned response of one fake CGI program.
type Endpoint struct {
	mu       sync.Mutex
	status   int
	body     string
	hold     chan struct{}
	requests []Request
}

func (that *Endpoint) Respond(status int, body string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.status = status
	that.body = body
}

// Hold - requests block until the returned func is called.
func (that *Endpoint) Hold() func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	hold := make(chan struct{})
	that.hold = hold

	var once sync.Once
	return func() { once.Do(func() { close(hold) }) }
}

func (that *Endpoint) Requests() []Request {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]Request(nil), that.requests...)
}

func (that *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	form, _ := url.ParseQuery(string(body))

	that.mu.Lock()
	that.requests = append(that.requests, Request{
		Method:      r.Method,
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get("X-Request-ID"),
		Form:        form,
	})
	status, respBody, hold := that.status, that.body, that.hold
	that.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, respBody)
}

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Server *httptest.Server
	Board  *Endpoint
	Move   *Endpoint

	Doc    *htmldoc.Document
	View   *view.View
	Client *cgi.Client
}

// New - starts fake board and move endpoints and a fresh page wired to them.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	board := &Endpoint{status: http.StatusOK, body: BoardHTML(InitialPieces(), "")}
	move := &Endpoint{status: http.StatusOK, body: BoardHTML(InitialPieces(), "")}

	mux := http.NewServeMux()
	mux.Handle(BoardPath, board)
	mux.Handle(MovePath, move)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	doc := htmldoc.NewDefault()

	v, err := view.New(doc)
	if err != nil {
		t.Fatalf("could not build view: %v", err)
	}

	client := cgi.New(logger, server.Client(), server.URL+BoardPath, server.URL+MovePath, maxWaitDuration)

	return ctx, &Suite{
		T:      t,
		Logger: logger,
		Server: server,
		Board:  board,
		Move:   move,
		Doc:    doc,
		View:   v,
		Client: client,
	}
}
