package cgi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/checkers-client/internal/apperror"
)

const (
	formContentType = "application/x-www-form-urlencoded"
	requestIDHeader = "X-Request-ID"

	maxBodySize = 1 << 20
)

var ErrBodyTooLarge = errors.New("response body too large")

// Client - talks to the board and move CGI endpoints.
type Client struct {
	logger   *slog.Logger
	http     *http.Client
	boardURL string
	moveURL  string
	timeout  time.Duration
}

func New(logger *slog.Logger, httpClient *http.Client, boardURL, moveURL string, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		logger:   logger.With("component", "cgi-client"),
		http:     httpClient,
		boardURL: boardURL,
		moveURL:  moveURL,
		timeout:  timeout,
	}
}

// FetchBoard - GETs the current board fragment.
func (that *Client) FetchBoard(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, that.boardURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build board request: %w", err)
	}

	return that.do(ctx, req)
}

// PostMove - POSTs the move form, url-encoded.
func (that *Client) PostMove(ctx context.Context, form url.Values) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, that.moveURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("could not build move request: %w", err)
	}

	req.Header.Set("Content-Type", formContentType)

	return that.do(ctx, req)
}

func (that *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	if that.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, that.timeout)
		defer cancel()
	}

	requestID := uuid.NewString()
	req = req.WithContext(ctx)
	req.Header.Set(requestIDHeader, requestID)

	log := that.logger.With("method", req.Method, "url", req.URL.String(), "request_id", requestID)
	log.Debug("sending request")

	resp, err := that.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", apperror.ErrNetwork, err)
	}

	if len(body) > maxBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, maxBodySize)
	}

	log.Debug("received response", "status", resp.StatusCode, "headers", resp.Header, "body", string(body))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &apperror.StatusError{StatusCode: resp.StatusCode}
	}

	return body, nil
}
