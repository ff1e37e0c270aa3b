// Package agent implements the self-sovereign agent: one locally generated
// identity, one private key-value store, and a single outbound notification.
//
// The agent initializes from configuration via New, creating its subsystems
// internally. Functional options replace any subsystem, mainly for tests.
//
//	a, err := agent.New(&cfg)
//	a.StoreData(ctx, "sample_data", "value")
//	body, err := a.Notify(ctx, "Hello from Self-Sovereign AI!")
package agent

//go:generate mockgen -source=agent.go -destination=mock/sender.go -package=mock

import (
	"context"
	"fmt"
	"time"

	"github.com/tailored-agentic-units/sovereign/audit"
	"github.com/tailored-agentic-units/sovereign/identity"
	"github.com/tailored-agentic-units/sovereign/memory"
	"github.com/tailored-agentic-units/sovereign/notify"
	"github.com/tailored-agentic-units/sovereign/observability"
)

// Sender delivers one notification payload to an endpoint and returns the
// response body. *notify.Client is the default implementation.
type Sender interface {
	Send(ctx context.Context, endpoint string, payload any) (string, error)
}

// Option configures an Agent after config-driven initialization.
type Option func(*Agent)

// WithIdentity overrides the generated identity.
func WithIdentity(id identity.Identity) Option {
	return func(a *Agent) { a.identity = id }
}

// WithStore overrides the in-memory store. The store must not be shared
// with another agent.
func WithStore(s memory.Store) Option {
	return func(a *Agent) { a.store = s }
}

// WithTrail overrides the config-created audit trail.
func WithTrail(t audit.Trail) Option {
	return func(a *Agent) { a.trail = t }
}

// WithSender overrides the config-created notification client.
func WithSender(s Sender) Option {
	return func(a *Agent) { a.sender = s }
}

// WithEndpoint overrides the configured notification endpoint.
func WithEndpoint(endpoint string) Option {
	return func(a *Agent) { a.endpoint = endpoint }
}

// WithObserver overrides the config-resolved observer.
func WithObserver(o observability.Observer) Option {
	return func(a *Agent) { a.observer = o }
}

// Agent owns exactly one identity and one store. Store operations are safe
// for concurrent use and never wait on the network.
type Agent struct {
	identity identity.Identity
	store    memory.Store
	trail    audit.Trail
	sender   Sender
	observer observability.Observer
	endpoint string
}

// New creates an Agent from configuration: it generates an identity for the
// configured scheme and creates an empty store. cfg is merged over
// DefaultConfig, so zero fields take their defaults. Options applied after
// initialization can override any subsystem.
func New(cfg *Config, opts ...Option) (*Agent, error) {
	merged := DefaultConfig()
	if cfg != nil {
		merged.Merge(cfg)
	}
	cfg = &merged

	scheme, err := identity.ParseScheme(cfg.Scheme)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	id, err := identity.New(scheme)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	observer, err := observability.ResolveObservers(cfg.Observers...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observers: %w", err)
	}

	a := &Agent{
		identity: id,
		store:    memory.NewMap(),
		trail:    audit.New(&cfg.Audit),
		sender:   notify.NewClient(&cfg.Notify),
		observer: observer,
		endpoint: cfg.Notify.Endpoint,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.observer == nil {
		a.observer = observability.NoOpObserver{}
	}
	if a.store == nil {
		a.store = memory.NewMap()
	}
	if a.trail == nil {
		a.trail = audit.New(&cfg.Audit)
	}
	if a.sender == nil {
		a.sender = notify.NewClient(&cfg.Notify)
	}

	a.observer.OnEvent(context.Background(), observability.NewEvent(
		EventCreated,
		observability.LevelInfo,
		"agent.New",
		map[string]any{
			"id":         a.identity.ID,
			"public_key": a.identity.PublicKey,
			"scheme":     string(a.identity.Scheme),
		},
	))

	return a, nil
}

// Identity returns the agent's identity.
func (a *Agent) Identity() identity.Identity {
	return a.identity
}

// Endpoint returns the notification endpoint.
func (a *Agent) Endpoint() string {
	return a.endpoint
}

// Trail returns the agent's audit trail.
func (a *Agent) Trail() audit.Trail {
	return a.trail
}

// Keys returns the stored keys in sorted order.
func (a *Agent) Keys() []string {
	return a.store.Keys()
}

// StoreData inserts or overwrites key and reports the write to the audit
// trail and observer.
func (a *Agent) StoreData(ctx context.Context, key, value string) {
	a.store.Set(key, value)

	a.trail.Record(audit.Record{Action: audit.ActionStore, Key: key})

	a.observer.OnEvent(ctx, observability.NewEvent(
		EventStore,
		observability.LevelInfo,
		"agent.StoreData",
		map[string]any{
			"key":          key,
			"value_length": len(value),
		},
	))
}

// RetrieveData returns the value stored for key and whether it was present.
func (a *Agent) RetrieveData(ctx context.Context, key string) (string, bool) {
	val, ok := a.store.Get(key)

	detail := "absent"
	if ok {
		detail = "found"
	}
	a.trail.Record(audit.Record{Action: audit.ActionRetrieve, Key: key, Detail: detail})

	a.observer.OnEvent(ctx, observability.NewEvent(
		EventRetrieve,
		observability.LevelVerbose,
		"agent.RetrieveData",
		map[string]any{
			"key":   key,
			"found": ok,
		},
	))

	return val, ok
}

// Notify sends {"from": identity, "message": message} to the configured
// endpoint in a single attempt and returns the response body. Failures are
// returned as *NotifyError; the store is never modified.
func (a *Agent) Notify(ctx context.Context, message string) (string, error) {
	payload := notify.Payload{
		From:    a.identity.Sender(),
		Message: message,
	}

	a.observer.OnEvent(ctx, observability.NewEvent(
		EventNotifyStart,
		observability.LevelVerbose,
		"agent.Notify",
		map[string]any{
			"endpoint":       a.endpoint,
			"message_length": len(message),
		},
	))

	start := time.Now()
	body, err := a.sender.Send(ctx, a.endpoint, payload)
	elapsed := time.Since(start)

	if err != nil {
		nerr := &NotifyError{From: payload.From, Endpoint: a.endpoint, Err: err}

		a.trail.Record(audit.Record{Action: audit.ActionNotify, Detail: err.Error(), Failed: true})

		data := map[string]any{
			"endpoint":                a.endpoint,
			"error":                   err.Error(),
			observability.DurationKey: elapsed,
		}
		if kind, ok := notify.KindOf(err); ok {
			data["kind"] = string(kind)
		}
		a.observer.OnEvent(ctx, observability.NewEvent(EventNotifyFailed, observability.LevelWarning, "agent.Notify", data))

		return "", nerr
	}

	a.trail.Record(audit.Record{Action: audit.ActionNotify, Detail: message})

	a.observer.OnEvent(ctx, observability.NewEvent(
		EventNotifyDone,
		observability.LevelInfo,
		"agent.Notify",
		map[string]any{
			"endpoint":                a.endpoint,
			"response_length":         len(body),
			observability.DurationKey: elapsed,
		},
	))

	return body, nil
}
