package collector

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/unowned-components/internal/domain"
	apperrors "github.com/kurihiro0119/unowned-components/internal/errors"
	"github.com/kurihiro0119/unowned-components/internal/jira"
)

// searchFields limits the search payload to what the aggregation reads
var searchFields = []string{"components"}

// jiraCollector implements Collector using the Jira REST API
type jiraCollector struct {
	tracker    IssueTracker
	pageSize   int
	log        logrus.FieldLogger
	onProgress ProgressCallback
}

// Option configures a jiraCollector
type Option func(*jiraCollector)

// WithPageSize overrides the search page size
func WithPageSize(n int) Option {
	return func(c *jiraCollector) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithProgress registers a callback invoked after every page
func WithProgress(cb ProgressCallback) Option {
	return func(c *jiraCollector) {
		c.onProgress = cb
	}
}

// NewJiraCollector creates a new Jira collector
func NewJiraCollector(tracker IssueTracker, log logrus.FieldLogger, opts ...Option) Collector {
	c := &jiraCollector{
		tracker:  tracker,
		pageSize: domain.DefaultPageSize,
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ComponentsWithoutLead fetches all components in one request and keeps those without a lead.
// The components endpoint is not paginated here.
func (c *jiraCollector) ComponentsWithoutLead(ctx context.Context, projectKey string) ([]string, error) {
	components, err := c.tracker.ProjectComponents(ctx, projectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list components for %s: %w", projectKey, err)
	}

	ids := make([]string, 0, len(components))
	for _, component := range components {
		if component.HasLead() {
			continue
		}
		// A component without an id cannot be queried.
		if component.ID == "" {
			c.log.WithField("name", component.Name).Debug("skipping component without id")
			continue
		}
		ids = append(ids, component.ID)
	}

	c.log.WithFields(logrus.Fields{
		"project":    projectKey,
		"components": len(components),
		"unowned":    len(ids),
	}).Debug("components fetched")

	return ids, nil
}

// CollectIssues pages through the search results until startAt reaches the latest total
func (c *jiraCollector) CollectIssues(ctx context.Context, projectKey string, componentIDs []string) ([]domain.Issue, error) {
	if len(componentIDs) == 0 {
		return nil, apperrors.NewInvalidRequestError("component ids cannot be empty")
	}

	jql := BuildJQL(projectKey, componentIDs)
	cursor := domain.NewPageCursor(c.pageSize)

	var allIssues []domain.Issue
	for {
		page, err := c.tracker.SearchIssues(ctx, jira.SearchRequest{
			JQL:        jql,
			Fields:     searchFields,
			StartAt:    cursor.StartAt,
			MaxResults: cursor.MaxResults,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search issues at offset %d: %w", cursor.StartAt, err)
		}

		allIssues = append(allIssues, page.Issues...)
		c.log.WithFields(logrus.Fields{
			"start_at": cursor.StartAt,
			"total":    page.Total,
			"fetched":  len(allIssues),
		}).Debug("issue page fetched")
		if c.onProgress != nil {
			c.onProgress(len(allIssues), page.Total)
		}

		cursor.Advance(page.Total)
		if !cursor.HasNext() {
			break
		}
	}

	return allIssues, nil
}

// BuildJQL builds the query matching project issues in any of componentIDs.
// Numeric IDs are used as is, anything else is quoted.
func BuildJQL(projectKey string, componentIDs []string) string {
	ids := make([]string, len(componentIDs))
	for i, id := range componentIDs {
		if _, err := strconv.ParseUint(id, 10, 64); err == nil {
			ids[i] = id
		} else {
			ids[i] = strconv.Quote(id)
		}
	}
	return fmt.Sprintf("project = %q AND component in (%s)", projectKey, strings.Join(ids, ","))
}
