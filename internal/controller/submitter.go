package controller

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rocketscienceinc/checkers-client/internal/apperror"
	"github.com/rocketscienceinc/checkers-client/internal/entity"
)

const moveSucceeded = "Move completed successfully"

// Submit - posts the move form and replaces the board with the response.
// The submit control stays disabled while the request runs; overlapping calls are rejected
// and a concurrent Load waits for it to finish.
func (that *Controller) Submit(ctx context.Context) error {
	log := that.logger.With("method", "Submit")

	if !that.submitting.CompareAndSwap(false, true) {
		log.Warn("submit ignored", "error", apperror.ErrSubmitInFlight)
		that.view.ShowMessage(entity.ErrorMessage(fmt.Sprintf("Error: %s", apperror.ErrSubmitInFlight)))

		return apperror.ErrSubmitInFlight
	}
	defer that.submitting.Store(false)

	form := that.view.MoveForm
	form.SetSubmitDisabled(true)
	defer form.SetSubmitDisabled(false)

	that.page.Lock()
	defer that.page.Unlock()

	fields := form.Fields()
	log.Debug("submitting move", "form", fields.Encode())

	fragment, err := that.submitFragment(ctx, fields)
	if err != nil {
		log.Error("failed to submit move", "error", err)
		that.view.ShowMessage(entity.ErrorMessage(fmt.Sprintf("Error: %s", err)))

		return fmt.Errorf("failed to submit move: %w", err)
	}

	that.applyFragment(fragment)
	that.view.ShowMessage(entity.SuccessMessage(moveSucceeded))
	log.Info("move applied", "state", fragment.State)

	return nil
}

// SubmitMove - fills the move fields and submits. Rows are 1-based and columns 0-based, as the server reads them.
func (that *Controller) SubmitMove(ctx context.Context, move entity.Move) error {
	for name, value := range move.Fields() {
		that.view.MoveForm.SetField(name, value)
	}

	return that.Submit(ctx)
}

func (that *Controller) submitFragment(ctx context.Context, fields url.Values) (*entity.BoardFragment, error) {
	body, err := that.transport.PostMove(ctx, fields)
	if err != nil {
		return nil, err
	}

	return that.parser.ParseMove(body)
}
