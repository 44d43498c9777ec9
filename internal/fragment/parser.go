package fragment

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/rocketscienceinc/checkers-client/internal/apperror"
	"github.com/rocketscienceinc/checkers-client/internal/entity"
)

// Parser - turns server bodies into board fragments.
type Parser struct {
	// TurnAttr, if set, is read from the board container to fill BoardFragment.Turn.
	TurnAttr string
}

func NewParser(turnAttr string) *Parser {
	return &Parser{TurnAttr: turnAttr}
}

// ParseBoard - parses a board endpoint response.
// The token comes from the container's data-board-state attribute, falling back to the currentBoardState field.
func (that *Parser) ParseBoard(body []byte) (*entity.BoardFragment, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse board response: %w", err)
	}

	board := byID(doc, entity.BoardID)
	if board.Length() == 0 {
		return nil, fmt.Errorf("board container %q: %w", entity.BoardID, apperror.ErrMissingElement)
	}

	state := nonEmptyAttr(board, entity.BoardStateAttr)
	if state == "" {
		state = nonEmptyAttr(byID(doc, entity.CurrentBoardStateID), "value")
	}

	if state == "" {
		return nil, apperror.ErrMissingState
	}

	return that.fragment(board, state)
}

// ParseMove - parses a move endpoint response. Both the board container and the state field must be present.
func (that *Parser) ParseMove(body []byte) (*entity.BoardFragment, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse move response: %w", err)
	}

	board := byID(doc, entity.BoardID)
	stateField := byID(doc, entity.CurrentBoardStateID)
	if board.Length() == 0 || stateField.Length() == 0 {
		return nil, apperror.ErrInvalidResponse
	}

	return that.fragment(board, stateField.AttrOr("value", ""))
}

func (that *Parser) fragment(board *goquery.Selection, state string) (*entity.BoardFragment, error) {
	content, err := board.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to render board content: %w", err)
	}

	fragment := &entity.BoardFragment{
		ContentHTML: content,
		State:       entity.BoardState(state),
	}

	if that.TurnAttr != "" {
		fragment.Turn = entity.ParseTurn(board.AttrOr(that.TurnAttr, ""))
	}

	return fragment, nil
}

func byID(doc *goquery.Document, id string) *goquery.Selection {
	return doc.FindMatcher(goquery.Single(`[id="` + id + `"]`))
}

func nonEmptyAttr(sel *goquery.Selection, name string) string {
	value, ok := sel.Attr(name)
	if !ok || value == "" {
		return ""
	}

	return value
}
