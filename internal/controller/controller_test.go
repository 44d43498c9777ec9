package controller_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/checkers-client/internal/apperror"
	"github.com/rocketscienceinc/checkers-client/internal/controller"
	"github.com/rocketscienceinc/checkers-client/internal/entity"
	"github.com/rocketscienceinc/checkers-client/internal/fragment"
	"github.com/rocketscienceinc/checkers-client/testing/suite"
)

func newController(st *suite.Suite, turnAttr string) *controller.Controller {
	return controller.New(st.Logger, st.View, st.Client, fragment.NewParser(turnAttr))
}

func TestController_Load(t *testing.T) {
	t.Run("Concrete fragment", func(t *testing.T) {
		// Given: the board endpoint returns a bare container with a state attribute
		ctx, st := suite.New(t)
		st.Board.Respond(http.StatusOK, `<div id="board" data-board-state="W:12,13;B:21,22"><!--...--></div>`)
		ctrl := newController(st, "")

		// When: the board is loaded
		err := ctrl.Load(ctx)

		// Then: both token fields carry the state and the board holds the fragment
		require.NoError(t, err)
		assert.Equal(t, "W:12,13;B:21,22", st.View.BoardAsString.Value())
		assert.Equal(t, "W:12,13;B:21,22", st.View.CurrentBoardState.Value())
		assert.Equal(t, "<!--...-->", st.View.Board.InnerHTML())
	})

	t.Run("Server board", func(t *testing.T) {
		ctx, st := suite.New(t)
		body := suite.BoardHTML(suite.InitialPieces(), "")
		st.Board.Respond(http.StatusOK, body)
		ctrl := newController(st, "")

		err := ctrl.Load(ctx)
		require.NoError(t, err)

		expected, err := fragment.NewParser("").ParseBoard([]byte(body))
		require.NoError(t, err)
		assert.Equal(t, expected.ContentHTML, st.View.Board.InnerHTML())
		assert.Equal(t, suite.State(suite.InitialPieces()), st.View.BoardAsString.Value())
		assert.Equal(t, suite.State(suite.InitialPieces()), st.View.CurrentBoardState.Value())
		assert.Len(t, st.Board.Requests(), 1)
		assert.Equal(t, http.MethodGet, st.Board.Requests()[0].Method)
	})

	t.Run("No board state", func(t *testing.T) {
		// Given: a page already showing a board, and a response without any state
		ctx, st := suite.New(t)
		st.View.Board.SetInnerHTML("<p>previous</p>")
		st.View.BoardAsString.SetValue("prev")
		st.View.CurrentBoardState.SetValue("prev")
		st.Board.Respond(http.StatusOK, `<div id="board"><p>new</p></div>`)
		ctrl := newController(st, "")

		// When: the board is loaded
		err := ctrl.Load(ctx)

		// Then: nothing but the message changes
		require.ErrorIs(t, err, apperror.ErrMissingState)
		assert.Equal(t, "prev", st.View.BoardAsString.Value())
		assert.Equal(t, "prev", st.View.CurrentBoardState.Value())
		assert.Equal(t, "<p>previous</p>", st.View.Board.InnerHTML())
		assert.Contains(t, st.View.Message.Text(), "No board state found")
		assert.Contains(t, st.View.Message.InnerHTML(), `class="error"`)
	})

	t.Run("Missing container", func(t *testing.T) {
		ctx, st := suite.New(t)
		st.Board.Respond(http.StatusOK, `<p>maintenance</p>`)
		ctrl := newController(st, "")

		err := ctrl.Load(ctx)

		require.ErrorIs(t, err, apperror.ErrMissingElement)
		assert.Contains(t, st.View.Message.Text(), "Error loading board")
	})

	t.Run("HTTP status", func(t *testing.T) {
		ctx, st := suite.New(t)
		st.View.Board.SetInnerHTML("<p>previous</p>")
		st.Board.Respond(http.StatusInternalServerError, "boom")
		ctrl := newController(st, "")

		err := ctrl.Load(ctx)

		require.ErrorIs(t, err, apperror.ErrHTTPStatus)
		assert.Equal(t, "Error loading board: HTTP error! status: 500", st.View.Message.Text())
		assert.Equal(t, "<p>previous</p>", st.View.Board.InnerHTML())
	})

	t.Run("Network failure", func(t *testing.T) {
		ctx, st := suite.New(t)
		st.Server.Close()
		ctrl := newController(st, "")

		err := ctrl.Load(ctx)

		require.ErrorIs(t, err, apperror.ErrNetwork)
		assert.Contains(t, st.View.Message.Text(), "Error loading board")
		assert.Empty(t, st.View.BoardAsString.Value())
	})

	t.Run("Turn from response", func(t *testing.T) {
		ctx, st := suite.New(t)
		st.Board.Respond(http.StatusOK, suite.BoardHTML(suite.InitialPieces(), "black"))
		ctrl := newController(st, "data-turn")

		require.NoError(t, ctrl.Load(ctx))

		assert.Equal(t, "Current Turn: Black", st.View.TurnIndicator.Text())
		assert.Equal(t, "black-turn", st.View.TurnIndicator.Class())
	})

	t.Run("Turn ignored unless configured", func(t *testing.T) {
		ctx, st := suite.New(t)
		st.Board.Respond(http.StatusOK, suite.BoardHTML(suite.InitialPieces(), "black"))
		ctrl := newController(st, "")

		require.NoError(t, ctrl.Load(ctx))

		assert.Equal(t, "Current Turn: White", st.View.TurnIndicator.Text())
	})
}

func TestController_Submit(t *testing.T) {
	afterMove := func() [8][8]int {
		pieces := suite.InitialPieces()
		pieces[5][1], pieces[4][0] = suite.Empty, suite.White
		return pieces
	}

	t.Run("Success", func(t *testing.T) {
		// Given: a loaded board and a move endpoint answering with the next position
		ctx, st := suite.New(t)
		ctrl := newController(st, "")
		require.NoError(t, ctrl.Load(ctx))

		st.Move.Respond(http.StatusOK, suite.BoardHTML(afterMove(), ""))

		// When: white moves b6 to a5
		err := ctrl.SubmitMove(ctx, entity.Move{FromRow: 5, FromCol: 1, ToRow: 4, ToCol: 0})

		// Then: the form was posted url-encoded with the previous state
		require.NoError(t, err)
		requests := st.Move.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, http.MethodPost, requests[0].Method)
		assert.Equal(t, "application/x-www-form-urlencoded", requests[0].ContentType)
		assert.Equal(t, "6", requests[0].Form.Get("fromRow"))
		assert.Equal(t, "1", requests[0].Form.Get("fromCol"))
		assert.Equal(t, "5", requests[0].Form.Get("toRow"))
		assert.Equal(t, "0", requests[0].Form.Get("toCol"))
		assert.Equal(t, suite.State(suite.InitialPieces()), requests[0].Form.Get("boardAsString"))

		// Then: the page shows the new position
		assert.Equal(t, suite.State(afterMove()), st.View.BoardAsString.Value())
		assert.Equal(t, suite.State(afterMove()), st.View.CurrentBoardState.Value())
		assert.Equal(t, "Move completed successfully", st.View.Message.Text())
		assert.Contains(t, st.View.Message.InnerHTML(), `class="success"`)
		assert.False(t, st.View.MoveForm.SubmitDisabled())
	})

	t.Run("Invalid response keeps the board", func(t *testing.T) {
		ctx, st := suite.New(t)
		ctrl := newController(st, "")
		require.NoError(t, ctrl.Load(ctx))
		before := st.View.Board.InnerHTML()

		st.Move.Respond(http.StatusOK, `<div id="board">half a page</div>`)

		err := ctrl.Submit(ctx)

		require.ErrorIs(t, err, apperror.ErrInvalidResponse)
		assert.Equal(t, before, st.View.Board.InnerHTML())
		assert.Equal(t, suite.State(suite.InitialPieces()), st.View.BoardAsString.Value())
		assert.Equal(t, "Error: Invalid server response", st.View.Message.Text())
		assert.False(t, st.View.MoveForm.SubmitDisabled())
	})

	t.Run("Missing board keeps the board", func(t *testing.T) {
		ctx, st := suite.New(t)
		ctrl := newController(st, "")
		require.NoError(t, ctrl.Load(ctx))
		before := st.View.Board.InnerHTML()

		st.Move.Respond(http.StatusOK, `<input type="hidden" id="currentBoardState" value="x">`)

		err := ctrl.Submit(ctx)

		require.ErrorIs(t, err, apperror.ErrInvalidResponse)
		assert.Equal(t, before, st.View.Board.InnerHTML())
		assert.False(t, st.View.MoveForm.SubmitDisabled())
	})

	t.Run("Transport failure", func(t *testing.T) {
		ctx, st := suite.New(t)
		ctrl := newController(st, "")
		st.Server.Close()

		err := ctrl.Submit(ctx)

		require.ErrorIs(t, err, apperror.ErrNetwork)
		assert.Contains(t, st.View.Message.Text(), "Error: network error")
		assert.False(t, st.View.MoveForm.SubmitDisabled())
	})

	t.Run("HTTP status", func(t *testing.T) {
		ctx, st := suite.New(t)
		ctrl := newController(st, "")
		st.Move.Respond(http.StatusBadGateway, "")

		err := ctrl.Submit(ctx)

		require.ErrorIs(t, err, apperror.ErrHTTPStatus)
		assert.Equal(t, "Error: HTTP error! status: 502", st.View.Message.Text())
		assert.False(t, st.View.MoveForm.SubmitDisabled())
	})

	t.Run("Control disabled while in flight, second submit rejected", func(t *testing.T) {
		// Given: a move endpoint that holds the request
		ctx, st := suite.New(t)
		ctrl := newController(st, "")
		release := st.Move.Hold()
		t.Cleanup(release)

		var (
			wg       sync.WaitGroup
			firstErr error
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			firstErr = ctrl.Submit(ctx)
		}()

		require.Eventually(t, func() bool { return len(st.Move.Requests()) == 1 }, 5*time.Second, 10*time.Millisecond)

		// Then: the submit control is disabled during the request
		assert.True(t, st.View.MoveForm.SubmitDisabled())

		// When: a second submit arrives
		err := ctrl.Submit(ctx)

		// Then: it is rejected without reaching the server
		require.ErrorIs(t, err, apperror.ErrSubmitInFlight)
		assert.Len(t, st.Move.Requests(), 1)

		// When: the first request completes
		release()
		wg.Wait()

		// Then: the control is enabled again
		require.NoError(t, firstErr)
		assert.False(t, st.View.MoveForm.SubmitDisabled())
	})

	t.Run("Reload during a move applies one response at a time", func(t *testing.T) {
		// Given: a move held at the server and a board endpoint returning a different position
		ctx, st := suite.New(t)
		ctrl := newController(st, "")
		release := st.Move.Hold()
		t.Cleanup(release)

		st.Move.Respond(http.StatusOK, suite.BoardHTML(afterMove(), ""))
		reloaded := suite.InitialPieces()
		reloaded[2][0], reloaded[3][1] = suite.Empty, suite.Black
		reloadBody := suite.BoardHTML(reloaded, "")
		st.Board.Respond(http.StatusOK, reloadBody)

		var (
			wg        sync.WaitGroup
			submitErr error
			loadErr   error
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			submitErr = ctrl.Submit(ctx)
		}()
		require.Eventually(t, func() bool { return len(st.Move.Requests()) == 1 }, 5*time.Second, 10*time.Millisecond)

		// When: a reload starts while the move is in flight, then the move completes
		wg.Add(1)
		go func() {
			defer wg.Done()
			loadErr = ctrl.Load(ctx)
		}()
		release()
		wg.Wait()

		// Then: the reload waited and the page holds its board together with its own token
		require.NoError(t, submitErr)
		require.NoError(t, loadErr)

		expected, err := fragment.NewParser("").ParseBoard([]byte(reloadBody))
		require.NoError(t, err)
		assert.Equal(t, expected.ContentHTML, st.View.Board.InnerHTML())
		assert.Equal(t, suite.State(reloaded), st.View.BoardAsString.Value())
		assert.Equal(t, suite.State(reloaded), st.View.CurrentBoardState.Value())
		assert.False(t, st.View.MoveForm.SubmitDisabled())
	})

	t.Run("Cancelled context re-enables the control", func(t *testing.T) {
		ctx, st := suite.New(t)
		ctrl := newController(st, "")
		release := st.Move.Hold()
		t.Cleanup(release)

		ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		err := ctrl.Submit(ctx)

		require.ErrorIs(t, err, apperror.ErrNetwork)
		assert.False(t, st.View.MoveForm.SubmitDisabled())
	})
}

func TestController_UpdateTurnIndicator(t *testing.T) {
	_, st := suite.New(t)
	ctrl := newController(st, "")

	ctrl.UpdateTurnIndicator(false)
	assert.Equal(t, "Current Turn: Black", st.View.TurnIndicator.Text())
	assert.Equal(t, "black-turn", st.View.TurnIndicator.Class())

	ctrl.UpdateTurnIndicator(true)
	assert.Equal(t, "Current Turn: White", st.View.TurnIndicator.Text())
	assert.Equal(t, "white-turn", st.View.TurnIndicator.Class())
}
