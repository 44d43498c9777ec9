// Package tui hosts the page in a terminal screen.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/rocketscienceinc/checkers-client/internal/entity"
	"github.com/rocketscienceinc/checkers-client/internal/host"
	"github.com/rocketscienceinc/checkers-client/internal/render"
	"github.com/rocketscienceinc/checkers-client/internal/view"
)

const (
	boardLeft = 4
	boardTop  = 1

	helpLine = "arrows: move  enter: pick/submit  r: reload  q: quit"
)

var (
	darkStyle     = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray)
	lightStyle    = tcell.StyleDefault.Background(tcell.ColorCornsilk)
	labelStyle    = tcell.StyleDefault.Bold(true)
	errorStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	successStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	selectedColor = tcell.ColorGoldenrod
)

type Host struct {
	logger *slog.Logger
	ctrl   host.Controller
	view   *view.View
	screen tcell.Screen

	cursorRow, cursorCol int
	picked               bool
	fromRow, fromCol     int
	pending              atomic.Int32
}

func New(logger *slog.Logger, ctrl host.Controller, v *view.View, screen tcell.Screen) *Host {
	return &Host{
		logger: logger.With("component", "tui-host"),
		ctrl:   ctrl,
		view:   v,
		screen: screen,
	}
}

// Run - initializes the screen and processes key events until quit or ctx is done.
func (that *Host) Run(ctx context.Context) error {
	if err := that.screen.Init(); err != nil {
		return err
	}
	defer that.screen.Fini()

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := that.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	that.draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if quit := that.handle(ctx, ev); quit {
				return nil
			}
			that.draw()
		}
	}
}

func (that *Host) handle(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		that.screen.Sync()
	case *tcell.EventKey:
		return that.handleKey(ctx, ev)
	}

	return false
}

func (that *Host) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		that.cursorRow = max(that.cursorRow-1, 0)
	case tcell.KeyDown:
		that.cursorRow = min(that.cursorRow+1, entity.BoardSize-1)
	case tcell.KeyLeft:
		that.cursorCol = max(that.cursorCol-1, 0)
	case tcell.KeyRight:
		that.cursorCol = min(that.cursorCol+1, entity.BoardSize-1)
	case tcell.KeyEnter:
		that.pick(ctx)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'r':
			that.async(func() error { return that.ctrl.Load(ctx) })
		}
	}

	return false
}

// pick - first Enter marks the source square, the second submits the move.
func (that *Host) pick(ctx context.Context) {
	if !that.picked {
		that.picked = true
		that.fromRow, that.fromCol = that.cursorRow, that.cursorCol
		return
	}

	that.picked = false
	move := entity.Move{
		FromRow: that.fromRow,
		FromCol: that.fromCol,
		ToRow:   that.cursorRow,
		ToCol:   that.cursorCol,
	}

	that.async(func() error { return that.ctrl.SubmitMove(ctx, move) })
}

// async - runs a request off the event loop and asks for a redraw when it ends.
func (that *Host) async(fn func() error) {
	that.pending.Add(1)

	go func() {
		defer func() {
			that.pending.Add(-1)
			_ = that.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}()

		if err := fn(); err != nil {
			that.logger.Debug("request failed", "error", err)
		}
	}()
}

func (that *Host) draw() {
	that.screen.Clear()

	y := boardTop
	grid, err := render.Parse(that.view.Board.InnerHTML())
	if err == nil {
		y = that.drawGrid(grid)
	} else {
		y = drawText(that.screen, 0, y, tcell.StyleDefault, strings.TrimSpace(that.view.Board.Text())) + 1
	}

	y++
	drawText(that.screen, 0, y, labelStyle, that.view.TurnIndicator.Text())
	y++

	style := successStyle
	if strings.Contains(that.view.Message.InnerHTML(), `class="error"`) {
		style = errorStyle
	}
	drawText(that.screen, 0, y, style, strings.TrimSpace(that.view.Message.Text()))
	y++

	if that.pending.Load() > 0 || that.view.MoveForm.SubmitDisabled() {
		drawText(that.screen, 0, y, tcell.StyleDefault.Dim(true), "waiting for server...")
	}
	y++

	drawText(that.screen, 0, y+1, tcell.StyleDefault.Dim(true), helpLine)

	that.screen.Show()
}

// drawGrid returns the first free line below the board.
func (that *Host) drawGrid(grid *render.Grid) int {
	for c := range grid.Squares[0] {
		label := string(rune('A' + c))
		if c < len(grid.ColLabels) {
			label = grid.ColLabels[c]
		}
		drawText(that.screen, boardLeft+c*2, boardTop-1, labelStyle, label)
	}

	for r, row := range grid.Squares {
		drawText(that.screen, 0, boardTop+r, labelStyle, grid.RowLabels[r])

		for c, sq := range row {
			style := lightStyle
			if sq.Dark {
				style = darkStyle
			}
			if that.picked && r == that.fromRow && c == that.fromCol {
				style = style.Background(selectedColor)
			}
			if r == that.cursorRow && c == that.cursorCol {
				style = style.Reverse(true)
			}

			ch := ' '
			switch sq.Piece {
			case render.BlackPiece:
				ch = '●'
				style = style.Foreground(tcell.ColorBlack)
			case render.WhitePiece:
				ch = '●'
				style = style.Foreground(tcell.ColorWhite)
			}

			x := boardLeft + c*2
			that.screen.SetContent(x, boardTop+r, ch, nil, style)
			that.screen.SetContent(x+1, boardTop+r, ' ', nil, style)
		}
	}

	return boardTop + len(grid.Squares)
}

// drawText returns the line it wrote on.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}

	return y
}
