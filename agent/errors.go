package agent

import "fmt"

// NotifyError reports a failed Notify. It wraps the error returned by the
// Sender, a *notify.TransportError for the default client.
type NotifyError struct {
	From     string
	Endpoint string
	Err      error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("agent %s: notify failed: %v", e.From, e.Err)
}

func (e *NotifyError) Unwrap() error {
	return e.Err
}
