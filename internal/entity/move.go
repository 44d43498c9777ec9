package entity

import "strconv"

const BoardSize = 8

// Move - source and destination squares, zero-based from the top-left of the rendered board.
type Move struct {
	FromRow int
	FromCol int
	ToRow   int
	ToCol   int
}

// Fields - form values for the move. The server expects 1-based rows and 0-based columns.
func (that Move) Fields() map[string]string {
	return map[string]string{
		"fromRow": strconv.Itoa(that.FromRow + 1),
		"fromCol": strconv.Itoa(that.FromCol),
		"toRow":   strconv.Itoa(that.ToRow + 1),
		"toCol":   strconv.Itoa(that.ToCol),
	}
}
