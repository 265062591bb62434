// Package app is the main entrypoint into the application, responsible for
// configuring and starting the application, services, dependency injection,
// etc.
package app

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/camdeck/darkroom/internal/logging"
	"github.com/camdeck/darkroom/internal/photo"
	"github.com/camdeck/darkroom/internal/tui/top"
	"github.com/camdeck/darkroom/internal/version"
)

func Start(stdout, stderr io.Writer, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Parse configuration from flags, env vars, and config file.
	cfg, err := Parse(stderr, args)
	if err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Version {
		fmt.Fprintln(stdout, "darkroom", version.Version)
		return nil
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Log to a file as well as keeping messages in memory; the alternate
	// screen buffer makes stderr useless while the app runs.
	logFile, err := os.OpenFile(
		filepath.Join(cfg.DataDir, "darkroom.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0o644,
	)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	cfg.Logging.AdditionalWriters = append(cfg.Logging.AdditionalWriters, logFile)
	logger := logging.NewLogger(cfg.Logging)

	svc := photo.NewService(photo.ServiceOptions{Logger: logger})
	photo.Seed(svc, cfg.SamplePhotos)
	logger.Info("seeded sample library", "photos", cfg.SamplePhotos)

	start, err := url.Parse(cfg.StartURL)
	if err != nil {
		return fmt.Errorf("parsing start url: %w", err)
	}

	var debug io.Writer
	if cfg.Debug {
		f, err := os.Create(filepath.Join(cfg.DataDir, "messages.log"))
		if err != nil {
			return fmt.Errorf("opening messages log: %w", err)
		}
		defer f.Close()
		debug = f
	}

	model, err := top.New(top.Options{
		Service:          svc,
		Logger:           logger,
		StartURL:         start,
		PageSize:         cfg.PageSize,
		LongPressDelay:   cfg.LongPress,
		MoveThreshold:    cfg.MoveThreshold,
		DragSelectOnMove: cfg.DragSelect,
		Debug:            debug,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		// use the full size of the terminal with its "alternate screen buffer"
		tea.WithAltScreen(),
		// All-motion tracking is required for the press, drag, and hover
		// stages of range selection.
		tea.WithMouseAllMotion(),
	)

	// Relay photo events to the TUI so stale pages redraw.
	photoEvents := svc.Subscribe(ctx)
	go func() {
		for ev := range photoEvents {
			p.Send(ev)
		}
	}()
	logEvents := logger.Subscribe(ctx)
	go func() {
		for ev := range logEvents {
			p.Send(ev)
		}
	}()

	// Blocks until user quits
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
