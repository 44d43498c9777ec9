// Package render reads the server's board table into a grid terminal hosts can draw.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoGrid = errors.New("board markup has no square grid")

const (
	NoPiece Piece = iota
	BlackPiece
	WhitePiece
)

type Piece int

func (that Piece) Rune() rune {
	switch that {
	case BlackPiece:
		return 'b'
	case WhitePiece:
		return 'w'
	default:
		return ' '
	}
}

type Square struct {
	Dark  bool
	Piece Piece
}

type Grid struct {
	Squares   [][]Square
	ColLabels []string
	RowLabels []string
}

// Parse - extracts squares from table markup. Cells with text are labels, the rest are squares.
func Parse(markup string) (*Grid, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse board markup: %w", err)
	}

	grid := &Grid{}
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var (
			squares []Square
			labels  []string
		)

		tr.Find("td, th").Each(func(_ int, td *goquery.Selection) {
			text := strings.TrimSpace(td.Text())
			if text != "" && td.Find("img").Length() == 0 {
				labels = append(labels, text)
				return
			}
			squares = append(squares, square(td, len(grid.Squares), len(squares)))
		})

		if len(squares) == 0 {
			if len(grid.Squares) == 0 {
				grid.ColLabels = labels
			}
			return
		}

		grid.Squares = append(grid.Squares, squares)
		grid.RowLabels = append(grid.RowLabels, strings.Join(labels, " "))
	})

	if len(grid.Squares) == 0 {
		return nil, ErrNoGrid
	}

	return grid, nil
}

func square(td *goquery.Selection, row, col int) Square {
	sq := Square{Dark: (row+col)%2 == 0}

	style := strings.ToLower(td.AttrOr("style", "") + " " + td.AttrOr("class", ""))
	switch {
	case strings.Contains(style, "dark"):
		sq.Dark = true
	case strings.Contains(style, "cornsilk"), strings.Contains(style, "light"):
		sq.Dark = false
	}

	src := strings.ToLower(td.Find("img").AttrOr("src", ""))
	switch {
	case strings.Contains(src, "black"):
		sq.Piece = BlackPiece
	case strings.Contains(src, "white"):
		sq.Piece = WhitePiece
	}

	return sq
}

// Text - plain rendering with column letters on top and row labels on the left.
func (that *Grid) Text() string {
	var b strings.Builder

	b.WriteString("   ")
	for i := range that.Squares[0] {
		label := string(rune('A' + i))
		if i < len(that.ColLabels) {
			label = that.ColLabels[i]
		}
		fmt.Fprintf(&b, " %s", label)
	}
	b.WriteByte('\n')

	for r, row := range that.Squares {
		label := fmt.Sprint(r + 1)
		if that.RowLabels[r] != "" {
			label = that.RowLabels[r]
		}
		fmt.Fprintf(&b, "%2s ", label)

		for _, sq := range row {
			cell := sq.Piece.Rune()
			if cell == ' ' && sq.Dark {
				cell = '.'
			}
			fmt.Fprintf(&b, " %c", cell)
		}
		b.WriteByte('\n')
	}

	return b.String()
}
