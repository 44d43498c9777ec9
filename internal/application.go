package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/checkers-client/internal/config"
	"github.com/rocketscienceinc/checkers-client/internal/controller"
	"github.com/rocketscienceinc/checkers-client/internal/fragment"
	"github.com/rocketscienceinc/checkers-client/internal/host/line"
	"github.com/rocketscienceinc/checkers-client/internal/host/tui"
	"github.com/rocketscienceinc/checkers-client/internal/transport/cgi"
	"github.com/rocketscienceinc/checkers-client/internal/view"
	"github.com/rocketscienceinc/checkers-client/internal/view/htmldoc"
)

type runner interface {
	Run(ctx context.Context) error
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	doc, err := htmldoc.Open(conf.Page.ShellPath)
	if err != nil {
		return fmt.Errorf("could not open page: %w", err)
	}

	ctrl, v, err := NewController(logger, conf, doc, http.DefaultClient)
	if err != nil {
		return err
	}

	if err = ctrl.Load(ctx); err != nil {
		log.Warn("initial board load failed, use reload to retry", "error", err)
	}

	var host runner
	switch strings.ToLower(conf.UI) {
	case config.UITUI:
		screen, screenErr := tcell.NewScreen()
		if screenErr != nil {
			return fmt.Errorf("could not create screen: %w", screenErr)
		}
		host = tui.New(logger, ctrl, v, screen)
	default:
		host = line.New(logger, ctrl, v, os.Stdin, os.Stdout)
	}

	log.Info("Starting host", "ui", conf.UI)
	if err = host.Run(ctx); err != nil {
		return fmt.Errorf("host error: %w", err)
	}

	return nil
}

// NewController - wires the controller to doc and the configured endpoints.
func NewController(logger *slog.Logger, conf *config.Config, doc view.Document, httpClient *http.Client) (*controller.Controller, *view.View, error) {
	v, err := view.New(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("page is missing required elements: %w", err)
	}

	boardURL, err := conf.Server.BoardURL()
	if err != nil {
		return nil, nil, err
	}

	moveURL, err := conf.Server.MoveURL()
	if err != nil {
		return nil, nil, err
	}

	client := cgi.New(logger, httpClient, boardURL, moveURL, conf.Server.RequestTimeout)
	parser := fragment.NewParser(conf.Turn.Attribute)

	return controller.New(logger, v, client, parser), v, nil
}
