package controller

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/checkers-client/internal/entity"
)

// Load - fetches the board fragment and mounts it. On failure the page keeps its previous board and token.
func (that *Controller) Load(ctx context.Context) error {
	log := that.logger.With("method", "Load")

	that.page.Lock()
	defer that.page.Unlock()

	fragment, err := that.loadFragment(ctx)
	if err != nil {
		log.Error("failed to load board", "error", err)
		that.view.ShowMessage(entity.ErrorMessage(fmt.Sprintf("Error loading board: %s", err)))

		return fmt.Errorf("failed to load board: %w", err)
	}

	that.applyFragment(fragment)
	log.Info("board loaded", "state", fragment.State)

	return nil
}

func (that *Controller) loadFragment(ctx context.Context) (*entity.BoardFragment, error) {
	body, err := that.transport.FetchBoard(ctx)
	if err != nil {
		return nil, err
	}

	return that.parser.ParseBoard(body)
}
