package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/tailored-agentic-units/sovereign/agent"
	"github.com/tailored-agentic-units/sovereign/command"
)

func registerCommands(r *command.Registry, a *agent.Agent, metrics prometheus.Gatherer) {
	must(r.Register(command.Command{
		Name:        "store",
		Args:        []string{"key", "value"},
		Description: "Stores value under key, replacing any previous value.",
	}, func(ctx context.Context, args []string) (command.Result, error) {
		a.StoreData(ctx, args[0], args[1])
		return command.Result{Output: fmt.Sprintf("Data stored successfully: (%s, %s)", args[0], args[1])}, nil
	}))

	must(r.Register(command.Command{
		Name:        "get",
		Args:        []string{"key"},
		Description: "Prints the value stored under key.",
	}, func(ctx context.Context, args []string) (command.Result, error) {
		value, ok := a.RetrieveData(ctx, args[0])
		if !ok {
			return command.Result{Output: "Data not found."}, nil
		}
		return command.Result{Output: value}, nil
	}))

	must(r.Register(command.Command{
		Name:        "notify",
		Args:        []string{"message"},
		Description: "Sends message to the notification endpoint and prints the response.",
	}, func(ctx context.Context, args []string) (command.Result, error) {
		body, err := a.Notify(ctx, args[0])
		if err != nil {
			return command.Result{Output: err.Error(), IsError: true}, nil
		}
		return command.Result{Output: body}, nil
	}))

	must(r.Register(command.Command{
		Name:        "whoami",
		Description: "Prints the agent identity.",
	}, func(context.Context, []string) (command.Result, error) {
		id := a.Identity()
		return command.Result{Output: fmt.Sprintf("ID: %s\nPublic Key: %s\nScheme: %s", id.ID, id.PublicKey, id.Scheme)}, nil
	}))

	must(r.Register(command.Command{
		Name:        "keys",
		Description: "Lists stored keys.",
	}, func(context.Context, []string) (command.Result, error) {
		return command.Result{Output: strings.Join(a.Keys(), "\n")}, nil
	}))

	must(r.Register(command.Command{
		Name:        "history",
		Description: "Lists the audited operations of this session.",
	}, func(context.Context, []string) (command.Result, error) {
		var b strings.Builder
		for _, rec := range a.Trail().Records() {
			status := "ok"
			if rec.Failed {
				status = "failed"
			}
			fmt.Fprintf(&b, "%s %-8s %-6s %s %s\n", rec.Timestamp.Format(time.RFC3339), rec.Action, status, rec.Key, rec.Detail)
		}
		return command.Result{Output: strings.TrimRight(b.String(), "\n")}, nil
	}))

	must(r.Register(command.Command{
		Name:        "metrics",
		Description: "Prints event counters collected this session.",
	}, func(context.Context, []string) (command.Result, error) {
		families, err := metrics.Gather()
		if err != nil {
			return command.Result{}, err
		}
		return command.Result{Output: formatMetrics(families)}, nil
	}))

	must(r.Register(command.Command{
		Name:        "help",
		Description: "Lists available commands.",
	}, func(context.Context, []string) (command.Result, error) {
		var b strings.Builder
		for _, c := range r.List() {
			fmt.Fprintf(&b, "  %-24s %s\n", c.Usage(), c.Description)
		}
		return command.Result{Output: strings.TrimRight(b.String(), "\n")}, nil
	}))
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("failed to register command: %v", err))
	}
}

func formatMetrics(families []*dto.MetricFamily) string {
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName() + formatLabels(m.GetLabel())
			switch {
			case m.Counter != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case m.Histogram != nil:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s count=%d sum=%gs", name, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
