package chatbot

import "fmt"

// WebhookError wraps failures while processing an inbound Telegram update.
type WebhookError struct {
	Stage   string
	Wrapped error
}

func (e WebhookError) Error() string {
	return fmt.Sprintf("webhook processing failed at %s: %v", e.Stage, e.Wrapped)
}

func (e WebhookError) Unwrap() error {
	return e.Wrapped
}

// NewWebhookError creates a new WebhookError
func NewWebhookError(stage string, wrapped error) WebhookError {
	return WebhookError{Stage: stage, Wrapped: wrapped}
}
