package entity

import "strings"

const (
	BoardID             = "board"
	BoardAsStringID     = "boardAsString"
	CurrentBoardStateID = "currentBoardState"
	MessageID           = "message"
	TurnIndicatorID     = "turnIndicator"
	MoveFormID          = "moveForm"

	BoardStateAttr = "data-board-state"
)

// BoardState - opaque game state token. It is copied around verbatim and never inspected.
type BoardState string

func (that BoardState) IsEmpty() bool {
	return that == ""
}

func (that BoardState) String() string {
	return string(that)
}

const (
	TurnUnknown Turn = iota
	TurnWhite
	TurnBlack
)

type Turn int

// ParseTurn - maps "white"/"black" (any case) to a Turn.
func ParseTurn(s string) Turn {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return TurnWhite
	case "black":
		return TurnBlack
	default:
		return TurnUnknown
	}
}

func (that Turn) Known() bool {
	return that != TurnUnknown
}

func (that Turn) IsWhite() bool {
	return that == TurnWhite
}

// BoardFragment - board markup returned by the server together with its state token.
type BoardFragment struct {
	ContentHTML string
	State       BoardState
	Turn        Turn
}
