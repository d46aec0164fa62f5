package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"
	"countdown/internal/logging"
	"countdown/internal/notify"
	"countdown/internal/platform"
	"countdown/internal/storage"
	"countdown/internal/ui/display"
	"countdown/internal/ui/preferences"
	"countdown/internal/ui/presenter"
	"countdown/internal/ui/tray"
	"countdown/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName = "Countdown"
	appID   = "com.countdown.app"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	layout := flag.String("layout", "", "Window layout override: compact, full")
	tick := flag.Duration("tick", 0, "Refresh interval override (10ms-1s)")
	flag.Parse()

	level, err := logging.ParseLevel(*logLevel)
	logger := logging.New(os.Stderr, level)
	if err != nil {
		logger.Warn("falling back to info logging", "error", err)
	}
	slog.SetDefault(logger)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("countdown already running, asked it to show")
			return
		}
		logger.Error("single instance", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = guard.Release()
	}()

	service := platform.NewService()
	store := openStore(service, logger)
	settings, err := store.Load()
	if err != nil {
		logger.Warn("using default settings", "path", store.Path(), "error", err)
	}
	if enabled, err := service.AutostartEnabled(appName); err == nil {
		settings.Autostart = enabled
	} else {
		logger.Debug("autostart state unknown", "error", err)
	}
	if *layout != "" {
		settings.Layout = preferences.ParseLayout(*layout)
	}
	if *tick > 0 {
		settings.TickInterval = model.ClampTickInterval(*tick)
	}
	var current atomic.Pointer[preferences.Settings]
	current.Store(&settings)

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.AppIcon())

	engine := countdown.New(settings.TimerConfig(), countdown.Options{Logger: logger})
	ctx, cancel := context.WithCancel(context.Background())
	quit := func() {
		cancel()
		engine.Close()
		fyneApp.Quit()
	}

	notifier := notify.Multi{
		notify.When(func() bool { return current.Load().NotifyEnabled }, desktopNotifier(fyneApp)),
		notify.When(func() bool { return current.Load().SoundEnabled }, notify.NewChime(notify.DefaultChimeConfig())),
	}

	var view *presenter.Presenter
	countdownWindow := display.New(fyneApp, displayConfig(settings), display.Callbacks{
		OnStart:         func(fields presenter.Fields) { _ = view.Start(fields) },
		OnPause:         func() { view.Pause() },
		OnReset:         func() { view.Reset() },
		OnQuickSet:      func(minutes int) { _ = view.QuickSet(minutes) },
		OnFieldsChanged: func(fields presenter.Fields) { view.SetFields(fields) },
		OnClose:         quit,
	})
	view = presenter.New(engine, countdownWindow, notifier, logger)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		previous := current.Load()
		current.Store(&updated)
		engine.UpdateConfig(updated.TimerConfig())
		countdownWindow.UpdateConfig(displayConfig(updated))
		if err := store.Save(updated); err != nil {
			logger.Error("save settings", "path", store.Path(), "error", err)
		}
		if previous.Autostart != updated.Autostart {
			if err := platform.SetAutostart(service, appName, updated.Autostart); err != nil {
				logger.Error("update autostart", "enabled", updated.Autostart, "error", err)
			}
		}
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:        countdownWindow.Show,
			OnToggle:      func() { _ = view.Toggle() },
			OnReset:       view.Reset,
			OnQuickSet:    func(minutes int) { _ = view.QuickSet(minutes) },
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		})
		desktopApp.SetSystemTrayIcon(resources.AppIcon())
		countdownWindow.Window().SetCloseIntercept(countdownWindow.Hide)

		go countdown.Dispatch(ctx, engine.Subscribe(16), countdown.Handlers{
			OnSnapshot: func(snapshot countdown.Snapshot) {
				fyne.Do(func() {
					trayManager.SetSnapshot(snapshot)
				})
			},
			OnStateChanged: func(state countdown.State) {
				logger.Info("countdown state", "state", state)
			},
		})
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	guard.OnActivate(func() {
		fyne.Do(countdownWindow.Show)
	})

	go view.Run(ctx, engine.Subscribe(16))
	view.Refresh()

	logger.Info("countdown started",
		"engine_id", engine.ID(),
		"layout", settings.Layout,
		"tick", settings.TickInterval.String(),
		"settings", store.Path(),
		"instance_lock", guard.Address(),
	)
	countdownWindow.Show()
	fyneApp.Run()
	cancel()
	engine.Close()
}

func openStore(service platform.Service, logger *slog.Logger) *storage.Store {
	configDir, err := service.GetConfigDir()
	if err != nil {
		logger.Warn("config dir unavailable, using working directory", "error", err)
		configDir = "."
	}
	return storage.NewStoreAt(filepath.Join(configDir, appName))
}

func displayConfig(settings preferences.Settings) display.Config {
	return display.Config{
		Layout:       settings.Layout,
		FlashEnabled: settings.FlashEnabled,
	}
}

func desktopNotifier(fyneApp fyne.App) notify.Notifier {
	return notify.Func(func(notification notify.Notification) error {
		fyne.Do(func() {
			fyneApp.SendNotification(fyne.NewNotification(notification.Title, notification.Body))
		})
		return nil
	})
}
