package telemetry

import (
	"context"
	"fmt"
	"leave-calendar/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	OutcomeMerged  = "merged"
	OutcomeFailed  = "failed"
	OutcomePartial = "partial"
)

// MergeMetrics counters for merge passes.
type MergeMetrics struct {
	passes       metric.Int64Counter
	groups       metric.Int64Counter
	consolidated metric.Int64Counter
}

func NewMergeMetrics(meter metric.Meter) (*MergeMetrics, error) {
	passes, err := meter.Int64Counter("leave_merge.passes",
		metric.WithDescription("Completed merge passes"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: passes counter: %w", err)
	}
	groups, err := meter.Int64Counter("leave_merge.groups",
		metric.WithDescription("Processed leave groups by outcome"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: groups counter: %w", err)
	}
	consolidated, err := meter.Int64Counter("leave_merge.events_consolidated",
		metric.WithDescription("Single-day events replaced by range events"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: consolidated counter: %w", err)
	}

	return &MergeMetrics{
		passes:       passes,
		groups:       groups,
		consolidated: consolidated,
	}, nil
}

// RecordPass adds one pass and its per-group outcomes.
func (m *MergeMetrics) RecordPass(ctx context.Context, summary *models.MergeSummary) {
	m.passes.Add(ctx, 1)

	merged := int64(summary.Succeeded)
	partial := int64(summary.PartialFailures)
	failed := int64(summary.Failed) - partial

	m.addGroups(ctx, OutcomeMerged, merged)
	m.addGroups(ctx, OutcomeFailed, failed)
	m.addGroups(ctx, OutcomePartial, partial)

	if summary.TotalEventsConsolidated > 0 {
		m.consolidated.Add(ctx, int64(summary.TotalEventsConsolidated))
	}
}

func (m *MergeMetrics) addGroups(ctx context.Context, outcome string, n int64) {
	if n <= 0 {
		return
	}
	m.groups.Add(ctx, n, metric.WithAttributes(attribute.String("outcome", outcome)))
}
