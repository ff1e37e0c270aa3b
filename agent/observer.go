package agent

import "github.com/tailored-agentic-units/sovereign/observability"

// Agent event types.
const (
	EventCreated      observability.EventType = "agent.created"
	EventStore        observability.EventType = "agent.store"
	EventRetrieve     observability.EventType = "agent.retrieve"
	EventNotifyStart  observability.EventType = "agent.notify.start"
	EventNotifyDone   observability.EventType = "agent.notify.complete"
	EventNotifyFailed observability.EventType = "agent.notify.failed"
)
