// Package view holds the typed page model the controller writes to.
// Hosts supply a Document; New checks every element the controller needs up front.
package view

import (
	"html"
	"net/url"

	"github.com/rocketscienceinc/checkers-client/internal/apperror"
	"github.com/rocketscienceinc/checkers-client/internal/entity"
)

// Element - a single addressable node of the page.
type Element interface {
	InnerHTML() string
	SetInnerHTML(markup string)
	Value() string
	SetValue(value string)
	Text() string
	SetText(text string)
	Class() string
	SetClass(class string)
}

// Form - the move form and its submit control.
type Form interface {
	Fields() url.Values
	SetField(name, value string)
	SubmitDisabled() bool
	SetSubmitDisabled(disabled bool)
}

// Document - element lookup provided by whatever hosts the page.
type Document interface {
	Element(id string) (Element, bool)
	Form(id string) (Form, bool)
}

type View struct {
	Board             Element
	BoardAsString     Element
	CurrentBoardState Element
	Message           Element
	TurnIndicator     Element
	MoveForm          Form
}

// New - resolves all required elements, or reports every missing id in one error.
func New(doc Document) (*View, error) {
	var missing []string

	element := func(id string) Element {
		el, ok := doc.Element(id)
		if !ok {
			missing = append(missing, id)
		}
		return el
	}

	v := &View{
		Board:             element(entity.BoardID),
		BoardAsString:     element(entity.BoardAsStringID),
		CurrentBoardState: element(entity.CurrentBoardStateID),
		Message:           element(entity.MessageID),
		TurnIndicator:     element(entity.TurnIndicatorID),
	}

	form, ok := doc.Form(entity.MoveFormID)
	if !ok {
		missing = append(missing, entity.MoveFormID)
	}
	v.MoveForm = form

	if len(missing) > 0 {
		return nil, &apperror.MissingElementsError{IDs: missing}
	}

	return v, nil
}

// ShowMessage - replaces the message element content.
func (that *View) ShowMessage(msg entity.Message) {
	that.Message.SetInnerHTML(`<div class="` + string(msg.Kind) + `">` + html.EscapeString(msg.Text) + `</div>`)
}

// ApplyBoard - swaps in the board content and mirrors the state token into both fields.
func (that *View) ApplyBoard(fragment *entity.BoardFragment) {
	that.Board.SetInnerHTML(fragment.ContentHTML)
	that.BoardAsString.SetValue(fragment.State.String())
	that.CurrentBoardState.SetValue(fragment.State.String())
}
