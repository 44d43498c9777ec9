package controller

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/rocketscienceinc/checkers-client/internal/entity"
	"github.com/rocketscienceinc/checkers-client/internal/view"
)

type boardTransport interface {
	FetchBoard(ctx context.Context) ([]byte, error)
	PostMove(ctx context.Context, form url.Values) ([]byte, error)
}

type fragmentParser interface {
	ParseBoard(body []byte) (*entity.BoardFragment, error)
	ParseMove(body []byte) (*entity.BoardFragment, error)
}

// Controller - drives the page: loads the board, submits moves, shows the turn.
type Controller struct {
	logger    *slog.Logger
	view      *view.View
	transport boardTransport
	parser    fragmentParser

	// page serializes Load and Submit from request to apply, so board and token always come from one response.
	page       sync.Mutex
	submitting atomic.Bool
}

func New(logger *slog.Logger, v *view.View, transport boardTransport, parser fragmentParser) *Controller {
	return &Controller{
		logger:    logger.With("component", "controller"),
		view:      v,
		transport: transport,
		parser:    parser,
	}
}

// applyFragment must only be called once the whole response has been validated.
func (that *Controller) applyFragment(fragment *entity.BoardFragment) {
	that.view.ApplyBoard(fragment)

	if fragment.Turn.Known() {
		that.UpdateTurnIndicator(fragment.Turn.IsWhite())
	}
}
