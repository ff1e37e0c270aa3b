package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tailored-agentic-units/sovereign/agent"
	"github.com/tailored-agentic-units/sovereign/command"
	"github.com/tailored-agentic-units/sovereign/identity"
	"github.com/tailored-agentic-units/sovereign/notify"
	"github.com/tailored-agentic-units/sovereign/observability"
)

const (
	demoKey     = "sample_data"
	demoValue   = "This is a decentralized storage example."
	demoMessage = "Hello from Self-Sovereign AI!"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	var (
		configFile = flag.String("config", "", "Path to agent config file, JSON or YAML (optional)")
		endpoint   = flag.String("endpoint", "", "Notification endpoint URL (overrides config)")
		timeout    = flag.Duration("timeout", 0, "Notification timeout (overrides config)")
		scheme     = flag.String("scheme", "", "Identity scheme: did or nostr (overrides config)")
		demo       = flag.Bool("demo", false, "Run the store/retrieve/notify demonstration and exit")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging to stderr")
		tracing    = flag.Bool("trace", false, "Write OpenTelemetry spans for notifications to stderr")
	)
	flag.Parse()

	cfg := agent.DefaultConfig()
	if *configFile != "" {
		loaded, err := agent.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	if *endpoint != "" {
		cfg.Notify.Endpoint = *endpoint
	}
	if *timeout > 0 {
		cfg.Notify.Timeout = notify.Duration(*timeout)
	}
	if *scheme != "" {
		cfg.Scheme = *scheme
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *tracing {
		shutdown, err := setupTracing(os.Stderr)
		if err != nil {
			log.Fatalf("Failed to set up tracing: %v", err)
		}
		defer func() { _ = shutdown(context.Background()) }()
	}

	metrics := prometheus.NewRegistry()
	observability.RegisterObserver("slog", observability.NewSlogObserver(logger))
	observability.RegisterObserver("prometheus", observability.NewPrometheusObserver(metrics))
	if len(cfg.Observers) == 0 {
		cfg.Observers = []string{"slog", "prometheus"}
	}

	a, err := agent.New(&cfg)
	if err != nil {
		log.Fatalf("Failed to create agent: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *demo {
		if err := runDemo(ctx, a, os.Stdout); err != nil {
			exitCode = 1
		}
		return
	}

	registry := command.NewRegistry()
	registerCommands(registry, a, metrics)

	if failed := runShell(ctx, registry, os.Stdin, os.Stdout); failed > 0 {
		exitCode = 1
	}
	return
}

// runDemo replays the reference sequence: show the identity, store and read
// back a value, then send one notification.
func runDemo(ctx context.Context, a *agent.Agent, w io.Writer) error {
	id := a.Identity()
	fmt.Fprintf(w, "%s: %s\n", identityLabel(id.Scheme), id.ID)
	fmt.Fprintf(w, "Public Key: %s\n\n", id.PublicKey)

	a.StoreData(ctx, demoKey, demoValue)
	fmt.Fprintf(w, "Data stored successfully: (%s, %s)\n", demoKey, demoValue)

	if value, ok := a.RetrieveData(ctx, demoKey); ok {
		fmt.Fprintf(w, "Retrieved Data: %s\n", value)
	} else {
		fmt.Fprintln(w, "Data not found.")
	}

	body, err := a.Notify(ctx, demoMessage)
	if err != nil {
		fmt.Fprintf(w, "Failed to communicate: %v\n", err)
		return err
	}

	fmt.Fprintf(w, "Message sent: %s\n", demoMessage)
	fmt.Fprintf(w, "Response: %s\n", body)
	return nil
}

func identityLabel(scheme identity.Scheme) string {
	if scheme == identity.SchemeNostr {
		return "Nostr"
	}
	return "DID"
}

// runShell executes one command per input line until EOF or cancellation
// and returns the number of commands that failed. Lines are read on a
// separate goroutine so cancellation interrupts a blocked read; that
// goroutine exits with the process.
func runShell(ctx context.Context, registry *command.Registry, r io.Reader, w io.Writer) int {
	failed := 0
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		var line string
		select {
		case <-ctx.Done():
			return failed
		case l, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						failed++
						fmt.Fprintf(w, "error: reading input: %v\n", err)
					}
				default:
				}
				return failed
			}
			line = l
		}

		result, err := registry.Execute(ctx, line)
		switch {
		case errors.Is(err, command.ErrEmptyLine):
			continue
		case err != nil:
			failed++
			fmt.Fprintf(w, "error: %v\n", err)
		case result.IsError:
			failed++
			fmt.Fprintf(w, "error: %s\n", result.Output)
		case result.Output != "":
			fmt.Fprintln(w, result.Output)
		}
	}
}
