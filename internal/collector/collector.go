package collector

import (
	"context"

	"github.com/kurihiro0119/unowned-components/internal/domain"
	"github.com/kurihiro0119/unowned-components/internal/jira"
)

// Collector defines the interface for collecting data from the issue tracker
type Collector interface {
	// ComponentsWithoutLead returns the IDs of the project's components that have no lead,
	// in the order the tracker returned them
	ComponentsWithoutLead(ctx context.Context, projectKey string) ([]string, error)

	// CollectIssues retrieves every issue of the project referencing any of componentIDs
	CollectIssues(ctx context.Context, projectKey string, componentIDs []string) ([]domain.Issue, error)
}

// IssueTracker is the tracker API used by the collector. Implemented by *jira.Client.
type IssueTracker interface {
	ProjectComponents(ctx context.Context, projectKey string) ([]domain.Component, error)
	SearchIssues(ctx context.Context, req jira.SearchRequest) (*domain.IssuePage, error)
}

var _ IssueTracker = (*jira.Client)(nil)

// ProgressCallback is called after every fetched page with the issues fetched so far
type ProgressCallback func(fetched, total int)
