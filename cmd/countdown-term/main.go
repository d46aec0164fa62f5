package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"
	"countdown/internal/logging"
	"countdown/internal/notify"
	"countdown/internal/term"
	"countdown/internal/ui/presenter"
)

const shutdownTimeout = time.Second

func main() {
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	tick := flag.Duration("tick", model.DefaultTickInterval, "Refresh interval (10ms-1s)")
	sound := flag.Bool("sound", true, "Play a chime when time is up")
	initial := flag.String("duration", "", "Initial countdown length (HH:MM:SS, MM:SS or SS)")
	flag.Parse()

	level, levelErr := logging.ParseLevel(*logLevel)

	shell, err := term.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "countdown: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(shell.Stdout(), level)
	if levelErr != nil {
		logger.Warn("falling back to info logging", "error", levelErr)
	}

	engine := countdown.New(model.TimerConfig{TickInterval: *tick}, countdown.Options{Logger: logger})
	defer engine.Close()

	var notifier notify.Notifier
	if *sound {
		notifier = notify.NewChime(notify.DefaultChimeConfig())
	}
	view := presenter.New(engine, shell, notifier, logger)
	shell.Bind(engine, view)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go view.Run(ctx, engine.Subscribe(16))

	if *initial != "" {
		duration, err := countdown.ParseClock(*initial)
		if err != nil {
			logger.Error("invalid -duration", "value", *initial, "error", err)
			os.Exit(2)
		}
		_ = view.Apply(presenter.FieldsFor(duration))
	} else {
		_ = view.Apply(view.Fields())
	}
	view.Refresh()

	logger.Info("countdown started", "engine_id", engine.ID(), "tick", model.ClampTickInterval(*tick).String())
	done := make(chan struct{})
	go func() {
		defer close(done)
		shell.Run(ctx, cancel)
	}()

	<-ctx.Done()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		logger.Warn("prompt did not stop in time")
	}
}
