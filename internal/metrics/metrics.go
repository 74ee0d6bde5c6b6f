package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	submissionsReceived metric.Int64Counter
	submissionsRejected metric.Int64Counter
	eventsPublished     metric.Int64Counter
	notificationsSent   metric.Int64Counter
	notificationsFailed metric.Int64Counter
	notificationsCapped metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.submissionsReceived, err = meter.Int64Counter(
		"contact_service.submissions.received",
		metric.WithDescription("Total number of contact submissions stored"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}

	m.submissionsRejected, err = meter.Int64Counter(
		"contact_service.submissions.rejected",
		metric.WithDescription("Total number of contact submissions rejected"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}

	m.eventsPublished, err = meter.Int64Counter(
		"contact_service.events.published",
		metric.WithDescription("Total number of submission events handed to the transport"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	m.notificationsSent, err = meter.Int64Counter(
		"contact_service.notifications.sent",
		metric.WithDescription("Total number of notification emails sent"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return nil, err
	}

	m.notificationsFailed, err = meter.Int64Counter(
		"contact_service.notifications.failed",
		metric.WithDescription("Total number of notification emails that failed to send"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return nil, err
	}

	m.notificationsCapped, err = meter.Int64Counter(
		"contact_service.notifications.capped",
		metric.WithDescription("Total number of notifications skipped by the daily limit"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Metrics) RecordSubmissionReceived(ctx context.Context) {
	if m != nil && m.submissionsReceived != nil {
		m.submissionsReceived.Add(ctx, 1)
	}
}

func (m *Metrics) RecordSubmissionRejected(ctx context.Context, reason string) {
	if m != nil && m.submissionsRejected != nil {
		m.submissionsRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

func (m *Metrics) RecordEventPublished(ctx context.Context, ok bool) {
	if m != nil && m.eventsPublished != nil {
		m.eventsPublished.Add(ctx, 1, metric.WithAttributes(attribute.Bool("ok", ok)))
	}
}

func (m *Metrics) RecordNotificationSent(ctx context.Context) {
	if m != nil && m.notificationsSent != nil {
		m.notificationsSent.Add(ctx, 1)
	}
}

func (m *Metrics) RecordNotificationFailed(ctx context.Context) {
	if m != nil && m.notificationsFailed != nil {
		m.notificationsFailed.Add(ctx, 1)
	}
}

func (m *Metrics) RecordNotificationCapped(ctx context.Context) {
	if m != nil && m.notificationsCapped != nil {
		m.notificationsCapped.Add(ctx, 1)
	}
}

// NewMock creates a no-op Metrics instance for testing
func NewMock() *Metrics {
	return &Metrics{}
}
