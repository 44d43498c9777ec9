package suite

import (
	"fmt"
	"strings"
)

const (
	Empty = 0
	Black = 1
	White = 2

	boardSize = 8
)

// InitialPieces - starting position: black on the top three rows, white on the bottom three, dark squares only.
func InitialPieces() [boardSize][boardSize]int {
	var pieces [boardSize][boardSize]int
	for r := 0; r < boardSize; r++ {
		for c := 0; c < boardSize; c++ {
			if (r+c)%2 != 0 {
				continue
			}
			switch {
			case r < 3:
				pieces[r][c] = Black
			case r > 4:
				pieces[r][c] = White
			}
		}
	}

	return pieces
}

// State - the comma separated token the checkers server uses.
func State(pieces [boardSize][boardSize]int) string {
	cells := make([]string, 0, boardSize*boardSize)
	for _, row := range pieces {
		for _, p := range row {
			cells = append(cells, fmt.Sprint(p))
		}
	}

	return strings.Join(cells, ",")
}

// BoardHTML - a response shaped like the checkers server's: board table plus hidden state field.
// An empty turn leaves the data-turn attribute out.
func BoardHTML(pieces [boardSize][boardSize]int, turn string) string {
	state := State(pieces)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head></head>\n<body>\n")
	fmt.Fprintf(&b, "<div id='board' class='table-container' data-board-state='%s'", state)
	if turn != "" {
		fmt.Fprintf(&b, " data-turn='%s'", turn)
	}
	b.WriteString(">")
	b.WriteString(BoardTable(pieces))
	b.WriteString("</div>\n")
	fmt.Fprintf(&b, "<input type='hidden' id='currentBoardState' value='%s'>\n", state)
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

// BoardTable - the table markup that ends up inside #board.
func BoardTable(pieces [boardSize][boardSize]int) string {
	var b strings.Builder

	b.WriteString("<table class='game-board'>\n<tr>")
	for c := 'A'; c < 'A'+boardSize; c++ {
		fmt.Fprintf(&b, "<td style='font-weight: bold; background-color: white;'>%c</td>", c)
	}
	b.WriteString("</tr>\n")

	for r := 0; r < boardSize; r++ {
		b.WriteString("<tr>")
		for c := 0; c < boardSize; c++ {
			color := "Cornsilk"
			if (r+c)%2 == 0 {
				color = "DarkSlateGrey"
			}
			fmt.Fprintf(&b, "<td style='background-color: %s;'>", color)
			switch pieces[r][c] {
			case Black:
				b.WriteString("<img class='draggable' src='BlackCircle.png' width='45' height='45' draggable='true'>")
			case White:
				b.WriteString("<img class='draggable' src='WhiteCircle.png' width='45' height='45' draggable='true'>")
			}
			b.WriteString("</td>")
		}
		fmt.Fprintf(&b, "<td style='font-weight: bold; background-color: white;'>%d</td>", r+1)
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>")

	return b.String()
}
