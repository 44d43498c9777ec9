// Package line hosts the page on a plain text stream, one command per line.
package line

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/checkers-client/internal/entity"
	"github.com/rocketscienceinc/checkers-client/internal/host"
	"github.com/rocketscienceinc/checkers-client/internal/render"
	"github.com/rocketscienceinc/checkers-client/internal/view"
)

const help = `commands:
  move <from> <to>     submit a move, squares like b6 a5
  set <field> <value>  set a move form field
  submit               submit the move form as it is
  reload               fetch the board again
  turn white|black     set the turn indicator
  show                 print the page
  quit`

type Host struct {
	logger *slog.Logger
	ctrl   host.Controller
	view   *view.View
	in     io.Reader
	out    io.Writer
}

func New(logger *slog.Logger, ctrl host.Controller, v *view.View, in io.Reader, out io.Writer) *Host {
	return &Host{
		logger: logger.With("component", "line-host"),
		ctrl:   ctrl,
		view:   v,
		in:     in,
		out:    out,
	}
}

// Run - reads commands until quit, EOF or ctx is done.
func (that *Host) Run(ctx context.Context) error {
	that.show()

	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		quit, err := that.exec(ctx, strings.Fields(scanner.Text()))
		if err != nil {
			fmt.Fprintln(that.out, err)
		}
		if quit {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read commands: %w", err)
	}

	return nil
}

func (that *Host) exec(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	log := that.logger.With("method", "exec", "command", args[0])

	var err error
	switch args[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(that.out, help)
		return false, nil
	case "show":
	case "reload":
		err = that.ctrl.Load(ctx)
	case "submit":
		err = that.ctrl.Submit(ctx)
	case "move":
		move, parseErr := parseMove(args[1:])
		if parseErr != nil {
			return false, parseErr
		}
		err = that.ctrl.SubmitMove(ctx, move)
	case "set":
		if len(args) != 3 {
			return false, errors.New("usage: set <field> <value>")
		}
		that.view.MoveForm.SetField(args[1], args[2])
	case "turn":
		if len(args) != 2 || !entity.ParseTurn(args[1]).Known() {
			return false, errors.New("usage: turn white|black")
		}
		that.ctrl.UpdateTurnIndicator(entity.ParseTurn(args[1]).IsWhite())
	default:
		return false, fmt.Errorf("unknown command %q, try help", args[0])
	}

	// the controller already put the failure on the page
	if err != nil {
		log.Debug("command failed", "error", err)
	}

	that.show()

	return false, nil
}

func parseMove(args []string) (entity.Move, error) {
	if len(args) != 2 {
		return entity.Move{}, errors.New("usage: move <from> <to>")
	}

	fromRow, fromCol, err := host.ParseSquare(args[0])
	if err != nil {
		return entity.Move{}, err
	}

	toRow, toCol, err := host.ParseSquare(args[1])
	if err != nil {
		return entity.Move{}, err
	}

	return entity.Move{FromRow: fromRow, FromCol: fromCol, ToRow: toRow, ToCol: toCol}, nil
}

func (that *Host) show() {
	markup := that.view.Board.InnerHTML()

	if grid, err := render.Parse(markup); err == nil {
		fmt.Fprint(that.out, grid.Text())
	} else if text := strings.TrimSpace(that.view.Board.Text()); text != "" {
		fmt.Fprintln(that.out, text)
	}

	fmt.Fprintln(that.out, that.view.TurnIndicator.Text())

	if msg := strings.TrimSpace(that.view.Message.Text()); msg != "" {
		fmt.Fprintln(that.out, msg)
	}
}
