// Package host holds what the terminal hosts share.
package host

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/checkers-client/internal/entity"
)

// Controller - the operations a host can trigger.
type Controller interface {
	Load(ctx context.Context) error
	Submit(ctx context.Context) error
	SubmitMove(ctx context.Context, move entity.Move) error
	UpdateTurnIndicator(isWhiteTurn bool)
}

// ParseSquare - reads "b3" style squares: column letter a-h, row number 1-8 as labelled on the board.
func ParseSquare(s string) (row, col int, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return 0, 0, fmt.Errorf("invalid square %q", s)
	}

	col = int(s[0] - 'a')
	if col < 0 || col >= entity.BoardSize {
		return 0, 0, fmt.Errorf("invalid column in %q", s)
	}

	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 1 || n > entity.BoardSize {
		return 0, 0, fmt.Errorf("invalid row in %q", s)
	}

	return n - 1, col, nil
}
