package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/nstehr/rampart/agent"
	"github.com/nstehr/rampart/ipc"
	"github.com/nstehr/rampart/journal"
	"github.com/nstehr/rampart/rules"
)

const banner = `
██████╗  █████╗ ███╗   ███╗██████╗  █████╗ ██████╗ ████████╗
██╔══██╗██╔══██╗████╗ ████║██╔══██╗██╔══██╗██╔══██╗╚══██╔══╝
██████╔╝███████║██╔████╔██║██████╔╝███████║██████╔╝   ██║
██╔══██╗██╔══██║██║╚██╔╝██║██╔═══╝ ██╔══██║██╔══██╗   ██║
██║  ██║██║  ██║██║ ╚═╝ ██║██║     ██║  ██║██║  ██║   ██║
╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝

Doctrine-Driven Tower Defense`

func main() {
	doctrinePath := flag.String("doctrine", envOrDefault("RAMPART_DOCTRINE", ""), "doctrine YAML file (built-in defaults if empty)")
	journalPath := flag.String("journal", envOrDefault("RAMPART_JOURNAL", ""), "sqlite game journal (disabled if empty)")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	// stdout carries the engine protocol; everything else goes to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(*debug),
	}))
	slog.SetDefault(logger)

	fmt.Fprintln(os.Stderr, banner)

	if err := run(*doctrinePath, *journalPath); err != nil {
		slog.Error("rampart failed", "error", err)
		os.Exit(1)
	}
}

func run(doctrinePath, journalPath string) error {
	d := rules.DefaultDoctrine()
	if doctrinePath != "" {
		var err error
		if d, err = rules.LoadDoctrine(doctrinePath); err != nil {
			return err
		}
	}
	engine, err := rules.NewEngine(rules.CompileDoctrine(d))
	if err != nil {
		return fmt.Errorf("compile doctrine %q: %w", d.Name, err)
	}

	var (
		rec agent.Recorder = journal.Nop{}
		j   *journal.Journal
	)
	if journalPath != "" {
		if j, err = journal.Open(journalPath, d.Name); err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		rec = j
		slog.Info("journal open", "path", journalPath, "game", j.GameID())
	}

	slog.Info("starting rampart", "doctrine", d.Name, "rules", len(engine.Rules()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := agent.New(d, engine, rec)
	c := ipc.NewConnection(os.Stdin, os.Stdout, nil)
	c.RegisterHandler(ipc.TypeConfig, a.HandleConfig)
	c.RegisterHandler(ipc.TypeTurn, a.HandleTurn)
	c.RegisterHandler(ipc.TypeAction, a.HandleAction)
	c.RegisterHandler(ipc.TypeEnd, a.HandleEnd)

	eg, ctx := errgroup.WithContext(ctx)
	if j != nil {
		eg.Go(func() error {
			return j.Run(ctx)
		})
	}
	eg.Go(func() error {
		if j != nil {
			defer j.Close()
		}
		err := c.ReadLoop(ctx)
		if errors.Is(err, context.Canceled) {
			slog.Info("shutting down")
			return nil
		}
		return err
	})

	return eg.Wait()
}

func logLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(envOrDefault("LOG_LEVEL", "INFO")))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
