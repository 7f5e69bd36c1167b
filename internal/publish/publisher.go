package publish

import "context"

// StatusPublisher pushes tick status events to an external sink. Publishing
// is best-effort: callers log a returned error and move on.
type StatusPublisher interface {
	Publish(ctx context.Context, event string, payload any) error
}

// NopPublisher drops every event. Used when no sink is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
