package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tailored-agentic-units/sovereign/observability"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  string
	}{
		{name: "trace range", level: 1, want: "TRACE"},
		{name: "verbose maps to DEBUG", level: observability.LevelVerbose, want: "DEBUG"},
		{name: "info maps to INFO", level: observability.LevelInfo, want: "INFO"},
		{name: "warning maps to WARN", level: observability.LevelWarning, want: "WARN"},
		{name: "error maps to ERROR", level: observability.LevelError, want: "ERROR"},
		{name: "fatal range", level: 21, want: "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  slog.Level
	}{
		{name: "verbose maps to Debug", level: observability.LevelVerbose, want: slog.LevelDebug},
		{name: "info maps to Info", level: observability.LevelInfo, want: slog.LevelInfo},
		{name: "warning maps to Warn", level: observability.LevelWarning, want: slog.LevelWarn},
		{name: "error maps to Error", level: observability.LevelError, want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.SlogLevel(); got != tt.want {
				t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNewEvent(t *testing.T) {
	before := time.Now()
	event := observability.NewEvent("agent.store", observability.LevelInfo, "agent.StoreData", map[string]any{"key": "k"})

	if event.Type != "agent.store" || event.Source != "agent.StoreData" {
		t.Errorf("unexpected event: %+v", event)
	}
	if event.Timestamp.Before(before) {
		t.Error("timestamp predates construction")
	}
}

func TestNoOpObserver(t *testing.T) {
	obs := observability.NoOpObserver{}
	obs.OnEvent(context.Background(), observability.NewEvent("test.event", observability.LevelInfo, "test", nil))
}

func TestObserverFunc(t *testing.T) {
	var got observability.EventType
	obs := observability.ObserverFunc(func(_ context.Context, e observability.Event) {
		got = e.Type
	})

	obs.OnEvent(context.Background(), observability.Event{Type: "test.event"})
	if got != "test.event" {
		t.Errorf("got %q, want %q", got, "test.event")
	}
}

func TestMultiObserver(t *testing.T) {
	var events1, events2 []observability.Event
	multi := observability.NewMultiObserver(
		&captureObserver{events: &events1},
		&captureObserver{events: &events2},
	)

	multi.OnEvent(context.Background(), observability.Event{Type: "test.event", Level: observability.LevelInfo})

	if len(events1) != 1 || len(events2) != 1 {
		t.Fatalf("observers received %d and %d events, want 1 each", len(events1), len(events2))
	}
	if events1[0].Type != "test.event" {
		t.Errorf("observer 1 event type = %q, want %q", events1[0].Type, "test.event")
	}
}

func TestMultiObserver_NilFilteringAndFlattening(t *testing.T) {
	var events []observability.Event
	obs := &captureObserver{events: &events}

	inner := observability.NewMultiObserver(obs, obs)
	multi := observability.NewMultiObserver(nil, inner, nil, obs)

	if multi.Len() != 3 {
		t.Errorf("Len() = %d, want 3", multi.Len())
	}

	multi.OnEvent(context.Background(), observability.Event{Type: "test.event"})
	if len(events) != 3 {
		t.Errorf("received %d events, want 3", len(events))
	}
}

func TestSlogObserver_LevelMapping(t *testing.T) {
	tests := []struct {
		name      string
		level     observability.Level
		minLevel  slog.Level
		expectLog bool
	}{
		{name: "verbose at debug handler", level: observability.LevelVerbose, minLevel: slog.LevelDebug, expectLog: true},
		{name: "verbose at info handler", level: observability.LevelVerbose, minLevel: slog.LevelInfo, expectLog: false},
		{name: "info at info handler", level: observability.LevelInfo, minLevel: slog.LevelInfo, expectLog: true},
		{name: "info at warn handler", level: observability.LevelInfo, minLevel: slog.LevelWarn, expectLog: false},
		{name: "warning at warn handler", level: observability.LevelWarning, minLevel: slog.LevelWarn, expectLog: true},
		{name: "error at error handler", level: observability.LevelError, minLevel: slog.LevelError, expectLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: tt.minLevel}))

			obs := observability.NewSlogObserver(logger)
			obs.OnEvent(context.Background(), observability.NewEvent("test.event", tt.level, "test", nil))

			if hasOutput := buf.Len() > 0; hasOutput != tt.expectLog {
				t.Errorf("log output = %v, want %v (buf: %q)", hasOutput, tt.expectLog, buf.String())
			}
		})
	}
}

func TestSlogObserver_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	obs := observability.NewSlogObserver(logger)
	obs.OnEvent(context.Background(), observability.NewEvent(
		"agent.store",
		observability.LevelInfo,
		"agent.StoreData",
		map[string]any{"value": "v", "key": "sample_data"},
	))

	output := buf.String()
	for _, want := range []string{"agent.store", "source=agent.StoreData", "key=sample_data", "value=v"} {
		if !strings.Contains(output, want) {
			t.Errorf("missing %q in output: %s", want, output)
		}
	}
	if strings.Index(output, "key=") > strings.Index(output, "value=") {
		t.Errorf("data attributes not sorted: %s", output)
	}
}

func TestSlogObserver_NilLogger(t *testing.T) {
	obs := observability.NewSlogObserver(nil)
	obs.OnEvent(context.Background(), observability.NewEvent("test.event", observability.LevelVerbose, "test", nil))
}

func TestPrometheusObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs := observability.NewPrometheusObserver(reg)
	ctx := context.Background()

	obs.OnEvent(ctx, observability.NewEvent("agent.store", observability.LevelInfo, "test", nil))
	obs.OnEvent(ctx, observability.NewEvent("agent.store", observability.LevelInfo, "test", nil))
	obs.OnEvent(ctx, observability.NewEvent("agent.notify.failed", observability.LevelWarning, "test", map[string]any{
		observability.DurationKey: 150 * time.Millisecond,
	}))

	if got := testutil.ToFloat64(obs.Events.WithLabelValues("agent.store", "INFO")); got != 2 {
		t.Errorf("agent.store count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(obs.Events.WithLabelValues("agent.notify.failed", "WARN")); got != 1 {
		t.Errorf("agent.notify.failed count = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(obs.Duration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestPrometheusObserver_Nil(t *testing.T) {
	var obs *observability.PrometheusObserver
	obs.OnEvent(context.Background(), observability.Event{Type: "test.event"})
}

func TestRegistry_GetObserver(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "noop exists", key: "noop", wantErr: false},
		{name: "slog exists", key: "slog", wantErr: false},
		{name: "unknown fails", key: "nonexistent", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := observability.GetObserver(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetObserver(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, observability.ErrUnknownObserver) {
				t.Errorf("GetObserver(%q) error = %v, want ErrUnknownObserver", tt.key, err)
			}
			if !tt.wantErr && obs == nil {
				t.Errorf("GetObserver(%q) returned nil observer", tt.key)
			}
		})
	}
}

func TestRegistry_RegisterAndResolve(t *testing.T) {
	var events []observability.Event
	observability.RegisterObserver("test-capture", &captureObserver{events: &events})

	obs, err := observability.ResolveObservers("noop", "test-capture")
	if err != nil {
		t.Fatalf("ResolveObservers failed: %v", err)
	}
	obs.OnEvent(context.Background(), observability.Event{Type: "test.event"})

	if len(events) != 1 {
		t.Errorf("received %d events, want 1", len(events))
	}

	names := observability.ObserverNames()
	found := false
	for _, n := range names {
		if n == "test-capture" {
			found = true
		}
	}
	if !found {
		t.Errorf("ObserverNames() = %v, missing test-capture", names)
	}
}

func TestRegistry_ResolveObservers_Errors(t *testing.T) {
	if _, err := observability.ResolveObservers("slog", "missing"); !errors.Is(err, observability.ErrUnknownObserver) {
		t.Errorf("got error %v, want ErrUnknownObserver", err)
	}

	obs, err := observability.ResolveObservers()
	if err != nil || obs == nil {
		t.Errorf("ResolveObservers() = (%v, %v), want default slog observer", obs, err)
	}
}

type captureObserver struct {
	events *[]observability.Event
}

func (c *captureObserver) OnEvent(ctx context.Context, event observability.Event) {
	*c.events = append(*c.events, event)
}
