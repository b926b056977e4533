package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/allape/gogger"
	"github.com/allape/openspin/config"
	"github.com/allape/openspin/factory"
	"github.com/allape/openspin/spin"
	"github.com/allape/openspin/spin/dial"
	"github.com/allape/openspin/spin/session"
	"github.com/gin-gonic/gin"
)

var l = gogger.New("main")

func main() {
	err := run(config.Path(os.Args))
	if err != nil {
		l.Error().Println(err)
		os.Exit(1)
	}
}

// run returns instead of exiting, so every deferred close still runs.
func run(configPath string) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("get config: %w", err)
	}

	doc := factory.DocumentFromConfig(conf)

	viewers, err := factory.ViewersFromConfig(conf, doc)
	defer func() {
		for _, viewer := range viewers {
			_ = viewer.Close()
		}
	}()
	if err != nil {
		return fmt.Errorf("viewers from config: %w", err)
	}

	frameCodec, err := factory.CodecFromConfig(conf)
	if err != nil {
		return fmt.Errorf("codec from config: %w", err)
	}

	sessions := make([]*session.Server, 0, len(viewers))
	for _, viewer := range viewers {
		sessions = append(sessions, session.New(viewer, frameCodec))
	}
	defer func() {
		for _, ss := range sessions {
			_ = ss.Close()
		}
	}()

	d, err := factory.DialFromConfig(conf)
	if err != nil {
		return fmt.Errorf("dial from config: %w", err)
	}
	if d != nil {
		defer func() {
			_ = d.Close()
		}()
		go forwardDial(d, findViewer(viewers, conf.Dial.Viewer))
	}

	gin.SetMode(gin.ReleaseMode)

	httpServer := &http.Server{
		Addr:    conf.Websocket.Addr,
		Handler: NewServer(conf, sessions).Router(),
	}

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- httpServer.ListenAndServe()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	l.Info().Println("started on", conf.Websocket.Addr, "with", len(viewers), "viewer(s)")

	select {
	case sig := <-sigs:
		l.Info().Println("exiting with", sig)
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

func findViewer(viewers []*spin.Viewer, id string) *spin.Viewer {
	for _, viewer := range viewers {
		if viewer.ID == id {
			return viewer
		}
	}
	return nil
}

// forwardDial turns a hardware dial into drags on viewer until the dial closes.
func forwardDial(d dial.Driver, viewer *spin.Viewer) {
	if viewer == nil {
		l.Warn().Println("dial has no viewer to drive")
		return
	}
	for delta := range d.Deltas() {
		viewer.HandleDrag(delta.X, delta.Y)
	}
	l.Info().Println("dial closed")
}
