package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/unowned-components/internal/domain"
	apperrors "github.com/kurihiro0119/unowned-components/internal/errors"
	"github.com/kurihiro0119/unowned-components/internal/jira"
	"github.com/kurihiro0119/unowned-components/internal/jira/jiratest"
)

type fakeTracker struct {
	projectComponents func(ctx context.Context, projectKey string) ([]domain.Component, error)
	searchIssues      func(ctx context.Context, req jira.SearchRequest) (*domain.IssuePage, error)

	searches []jira.SearchRequest
}

func (f *fakeTracker) ProjectComponents(ctx context.Context, projectKey string) ([]domain.Component, error) {
	if f.projectComponents != nil {
		return f.projectComponents(ctx, projectKey)
	}
	return nil, nil
}

func (f *fakeTracker) SearchIssues(ctx context.Context, req jira.SearchRequest) (*domain.IssuePage, error) {
	f.searches = append(f.searches, req)
	if f.searchIssues != nil {
		return f.searchIssues(ctx, req)
	}
	return &domain.IssuePage{}, nil
}

// pagedSource serves total issues, each referencing component "C", reporting totalAt(page) as total.
func pagedSource(total int, totalAt func(page int) int) func(ctx context.Context, req jira.SearchRequest) (*domain.IssuePage, error) {
	page := 0
	return func(_ context.Context, req jira.SearchRequest) (*domain.IssuePage, error) {
		reported := total
		if totalAt != nil {
			reported = totalAt(page)
		}
		page++

		var issues []domain.Issue
		for i := req.StartAt; i < total && i < req.StartAt+req.MaxResults; i++ {
			issues = append(issues, domain.Issue{
				Key:        fmt.Sprintf("SP-%d", i+1),
				Components: []domain.IssueComponent{{Name: "C"}},
			})
		}
		return &domain.IssuePage{StartAt: req.StartAt, MaxResults: req.MaxResults, Total: reported, Issues: issues}, nil
	}
}

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

func TestComponentsWithoutLead(t *testing.T) {
	tests := []struct {
		name       string
		components []domain.Component
		err        error
		want       []string
		wantErr    bool
	}{
		{
			name: "keeps lead-less components in order",
			components: []domain.Component{
				{ID: "3", Name: "C"},
				{ID: "1", Name: "A", Lead: &domain.Lead{AccountID: "x"}},
				{ID: "2", Name: "B"},
				{ID: "4", Name: "D", Lead: &domain.Lead{}},
			},
			want: []string{"3", "2"},
		},
		{
			name: "components without id are skipped",
			components: []domain.Component{
				{ID: "", Name: "Orphan"},
				{ID: "10001", Name: "Frontend"},
			},
			want: []string{"10001"},
		},
		{
			name:       "all owned",
			components: []domain.Component{{ID: "1", Lead: &domain.Lead{}}},
			want:       []string{},
		},
		{
			name:       "no components",
			components: nil,
			want:       []string{},
		},
		{
			name:    "tracker error",
			err:     errors.New("boom"),
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := &fakeTracker{
				projectComponents: func(_ context.Context, projectKey string) ([]domain.Component, error) {
					assert.Equal(t, "SP", projectKey)
					return tt.components, tt.err
				},
			}
			c := NewJiraCollector(tracker, testLogger())

			got, err := c.ComponentsWithoutLead(context.Background(), "SP")
			require.Equal(t, tt.wantErr, err != nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollectIssues_Pagination(t *testing.T) {
	tests := []struct {
		name         string
		total        int
		pageSize     int
		wantRequests int
	}{
		{name: "single partial page", total: 3, pageSize: 50, wantRequests: 1},
		{name: "exactly one page", total: 50, pageSize: 50, wantRequests: 1},
		{name: "one over a page", total: 51, pageSize: 50, wantRequests: 2},
		{name: "several pages", total: 120, pageSize: 50, wantRequests: 3},
		{name: "small pages", total: 10, pageSize: 3, wantRequests: 4},
		{name: "no issues still asks once", total: 0, pageSize: 50, wantRequests: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := &fakeTracker{searchIssues: pagedSource(tt.total, nil)}
			c := NewJiraCollector(tracker, testLogger(), WithPageSize(tt.pageSize))

			issues, err := c.CollectIssues(context.Background(), "SP", []string{"10000", "10001"})
			require.NoError(t, err)

			assert.Len(t, issues, tt.total)
			require.Len(t, tracker.searches, tt.wantRequests)
			for i, req := range tracker.searches {
				assert.Equal(t, i*tt.pageSize, req.StartAt)
				assert.Equal(t, tt.pageSize, req.MaxResults)
				assert.Equal(t, []string{"components"}, req.Fields)
				assert.Equal(t, `project = "SP" AND component in (10000,10001)`, req.JQL)
			}
		})
	}
}

func TestCollectIssues_DefaultPageSize(t *testing.T) {
	tracker := &fakeTracker{searchIssues: pagedSource(120, nil)}
	c := NewJiraCollector(tracker, testLogger())

	issues, err := c.CollectIssues(context.Background(), "SP", []string{"1"})
	require.NoError(t, err)

	assert.Len(t, issues, 120)
	require.Len(t, tracker.searches, 3)
	assert.Equal(t, 100, tracker.searches[2].StartAt)
	assert.Equal(t, domain.DefaultPageSize, tracker.searches[2].MaxResults)
}

func TestCollectIssues_TotalReReadEveryPage(t *testing.T) {
	t.Run("total grows", func(t *testing.T) {
		tracker := &fakeTracker{searchIssues: pagedSource(120, func(page int) int {
			if page == 0 {
				return 60
			}
			return 120
		})}
		c := NewJiraCollector(tracker, testLogger())

		issues, err := c.CollectIssues(context.Background(), "SP", []string{"1"})
		require.NoError(t, err)
		assert.Len(t, issues, 120)
		assert.Len(t, tracker.searches, 3)
	})

	t.Run("total shrinks", func(t *testing.T) {
		tracker := &fakeTracker{searchIssues: pagedSource(500, func(page int) int {
			if page == 0 {
				return 500
			}
			return 80
		})}
		c := NewJiraCollector(tracker, testLogger())

		issues, err := c.CollectIssues(context.Background(), "SP", []string{"1"})
		require.NoError(t, err)
		assert.Len(t, issues, 100)
		assert.Len(t, tracker.searches, 2)
	})
}

func TestCollectIssues_ErrorMidPagination(t *testing.T) {
	cause := &apperrors.ServiceError{StatusCode: http.StatusServiceUnavailable}
	source := pagedSource(200, nil)
	tracker := &fakeTracker{
		searchIssues: func(ctx context.Context, req jira.SearchRequest) (*domain.IssuePage, error) {
			if req.StartAt == 100 {
				return nil, cause
			}
			return source(ctx, req)
		},
	}
	c := NewJiraCollector(tracker, testLogger())

	issues, err := c.CollectIssues(context.Background(), "SP", []string{"1"})
	assert.Nil(t, issues)
	assert.ErrorIs(t, err, cause)
	assert.Len(t, tracker.searches, 3)
}

func TestCollectIssues_EmptyIDs(t *testing.T) {
	tracker := &fakeTracker{}
	c := NewJiraCollector(tracker, testLogger())

	_, err := c.CollectIssues(context.Background(), "SP", nil)
	assert.True(t, apperrors.IsInvalidRequest(err))
	assert.Empty(t, tracker.searches)
}

func TestCollectIssues_Progress(t *testing.T) {
	var got [][2]int
	tracker := &fakeTracker{searchIssues: pagedSource(70, nil)}
	c := NewJiraCollector(tracker, testLogger(), WithProgress(func(fetched, total int) {
		got = append(got, [2]int{fetched, total})
	}))

	_, err := c.CollectIssues(context.Background(), "SP", []string{"1"})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{50, 70}, {70, 70}}, got)
}

func TestBuildJQL(t *testing.T) {
	assert.Equal(t, `project = "SP" AND component in (10000)`, BuildJQL("SP", []string{"10000"}))
	assert.Equal(t, `project = "SP" AND component in (1,2,3)`, BuildJQL("SP", []string{"1", "2", "3"}))
	assert.Equal(t, `project = "S\"P" AND component in ("web ui",7)`, BuildJQL(`S"P`, []string{"web ui", "7"}))
}

func TestCollector_AgainstFakeServer(t *testing.T) {
	srv := jiratest.NewServer()
	defer srv.Close()
	srv.SetComponents("SP", []map[string]any{
		{"id": "10000", "name": "Backend", "lead": map[string]any{"accountId": "a1"}},
		{"id": "10001", "name": "Frontend"},
		{"id": "10002", "name": "Docs"},
	})
	issues := make([]jiratest.Issue, 0, 75)
	for i := 0; i < 75; i++ {
		issues = append(issues, jiratest.Issue{Key: fmt.Sprintf("SP-%d", i), Components: []string{"Frontend"}})
	}
	srv.SetIssues(issues)

	c := NewJiraCollector(jira.NewClient(http.DefaultClient, srv.URL), testLogger())

	ids, err := c.ComponentsWithoutLead(context.Background(), "SP")
	require.NoError(t, err)
	assert.Equal(t, []string{"10001", "10002"}, ids)

	got, err := c.CollectIssues(context.Background(), "SP", ids)
	require.NoError(t, err)
	assert.Len(t, got, 75)

	calls := srv.SearchCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, 0, calls[0].StartAt)
	assert.Equal(t, 50, calls[1].StartAt)
	assert.Equal(t, `project = "SP" AND component in (10001,10002)`, calls[1].JQL)
}
