package aggregator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/unowned-components/internal/collector"
	"github.com/kurihiro0119/unowned-components/internal/domain"
)

// Aggregator defines the interface for aggregating issue counts
type Aggregator interface {
	// AggregateIssues reduces issues into counts keyed by component name
	AggregateIssues(issues []domain.Issue) domain.ComponentIssueCounts

	// CountIssuesByComponent collects every issue referencing componentIDs and counts them per component name.
	// Components without issues are not present in the result.
	CountIssuesByComponent(ctx context.Context, projectKey string, componentIDs []string) (domain.ComponentIssueCounts, error)
}

// aggregator implements the Aggregator interface
type aggregator struct {
	collector collector.Collector
	log       logrus.FieldLogger
}

// NewAggregator creates a new aggregator
func NewAggregator(coll collector.Collector, log logrus.FieldLogger) Aggregator {
	return &aggregator{
		collector: coll,
		log:       log,
	}
}

// AggregateIssues reduces issues into counts keyed by component name.
// An issue referencing several components counts once for each of them.
func (a *aggregator) AggregateIssues(issues []domain.Issue) domain.ComponentIssueCounts {
	counts := make(domain.ComponentIssueCounts)
	for _, issue := range issues {
		counts.Add(issue)
	}
	return counts
}

// CountIssuesByComponent returns nil counts on any collection error
func (a *aggregator) CountIssuesByComponent(ctx context.Context, projectKey string, componentIDs []string) (domain.ComponentIssueCounts, error) {
	issues, err := a.collector.CollectIssues(ctx, projectKey, componentIDs)
	if err != nil {
		return nil, err
	}

	counts := a.AggregateIssues(issues)
	a.log.WithFields(logrus.Fields{
		"issues":     len(issues),
		"components": len(counts),
	}).Debug("issues aggregated")

	return counts, nil
}
